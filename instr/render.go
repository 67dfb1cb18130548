package instr

import (
	"fmt"

	"github.com/arloliu/dex2smali/dexerr"
)

// Pool is the narrow, read-only view over a dex pool set that Render needs
// to turn operand indices into smali text. The dex package's aggregate
// type satisfies this; instr never imports dex, avoiding a cycle.
type Pool interface {
	String(idx uint32) (string, error)
	Type(idx uint16) (string, error)
	FieldRef(idx uint16) (string, error)
	MethodRef(idx uint16) (string, error)
	ProtoRef(idx uint16) (string, error)
	CallSiteRef(idx uint16) (string, error)
	MethodHandleRef(idx uint16) (string, error)
}

// LabelSet resolves a branch target, given as a byte offset into the
// enclosing code-unit stream, to its assigned label name. Rendering a
// branch whose target has no assigned label is a MissingLabel error:
// spec.md supersedes the original disassembler's raw-offset rendering
// (see DESIGN.md, "branch-offset rendering") with label text throughout.
type LabelSet interface {
	Label(targetPC int) (string, bool)
}

func reg(n byte) string    { return fmt.Sprintf("v%d", n) }
func regU(n uint16) string { return fmt.Sprintf("v%d", n) }

func listArgs(args [5]byte, argCnt byte) string {
	s := ""
	for i := byte(0); i < argCnt && i < 5; i++ {
		s += " " + reg(args[i])
	}
	if len(s) > 0 {
		s = s[1:]
	}
	return s
}

func rangeArgs(firstArg uint16, argCnt byte) string {
	s := ""
	for i := byte(0); i < argCnt; i++ {
		s += " " + regU(firstArg+uint16(i))
	}
	if len(s) > 0 {
		s = s[1:]
	}
	return s
}

// branchTarget converts a code-unit offset (as carried by branch/switch
// instructions) relative to pcBytes into an absolute byte offset: offsets
// are counted in 16-bit code units, so one unit is 2 bytes.
func branchTarget(pcBytes int, offsetUnits int64) int {
	return pcBytes + int(offsetUnits)*2
}

func label(labels LabelSet, pcBytes int, offsetUnits int64) (string, error) {
	target := branchTarget(pcBytes, offsetUnits)
	name, ok := labels.Label(target)
	if !ok {
		return "", fmt.Errorf("%w: target byte offset %d", dexerr.ErrMissingLabel, target)
	}
	return ":" + name, nil
}

// Render renders i as smali-style text: "<mnemonic> <args>", dereferencing
// string/type/field/method/proto/call-site/method-handle operands through
// pool and branch offsets through labels. pcBytes is i's own byte offset
// within its enclosing code-unit stream.
func Render(i Instruction, pool Pool, pcBytes int, labels LabelSet) (string, error) {
	mnemonic, args, err := render(i, pool, pcBytes, labels)
	if err != nil {
		return "", err
	}
	return mnemonic + " " + args, nil
}

func render(i Instruction, pool Pool, pcBytes int, labels LabelSet) (string, string, error) {
	switch v := i.(type) {
	case Nop:
		return "nop", "", nil
	case ReturnVoid:
		return "return-void", "", nil

	case Move:
		return "move", fmt.Sprintf("%s %s", reg(v.Dst), reg(v.Src)), nil
	case MoveFrom16:
		return "move/from16", fmt.Sprintf("%s %s", reg(v.Dst), regU(v.Src)), nil
	case Move16:
		return "move/16", fmt.Sprintf("%s %s", regU(v.Dst), regU(v.Src)), nil
	case MoveWide:
		return "move-wide", fmt.Sprintf("%s %s", reg(v.Dst), reg(v.Src)), nil
	case MoveWideFrom16:
		return "move-wide/from16", fmt.Sprintf("%s %s", reg(v.Dst), regU(v.Src)), nil
	case MoveWide16:
		return "move-wide/16", fmt.Sprintf("%s %s", regU(v.Dst), regU(v.Src)), nil
	case MoveObject:
		return "move-object", fmt.Sprintf("%s %s", reg(v.Dst), reg(v.Src)), nil
	case MoveObjectFrom16:
		return "move-object/from16", fmt.Sprintf("%s %s", reg(v.Dst), regU(v.Src)), nil
	case MoveObject16:
		return "move-object/16", fmt.Sprintf("%s %s", regU(v.Dst), regU(v.Src)), nil
	case MoveResult:
		return "move-result", reg(v.Dst), nil
	case MoveResultWide:
		return "move-result-wide", reg(v.Dst), nil
	case MoveResultObject:
		return "move-result-object", reg(v.Dst), nil
	case MoveException:
		return "move-exception", reg(v.Dst), nil

	case Return:
		return "return", reg(v.Value), nil
	case ReturnWide:
		return "return-wide", reg(v.Value), nil
	case ReturnObject:
		return "return-object", reg(v.Value), nil

	case Const4:
		return "const/4", fmt.Sprintf("%s %d", reg(v.Dst), v.Value), nil
	case Const16:
		return "const/16", fmt.Sprintf("%s %d", reg(v.Dst), v.Value), nil
	case Const:
		return "const", fmt.Sprintf("%s %d", reg(v.Dst), v.Value), nil
	case ConstHigh16:
		return "const/high16", fmt.Sprintf("%s %d", reg(v.Dst), v.Value), nil
	case ConstWide16:
		return "const-wide/16", fmt.Sprintf("%s %d", reg(v.Dst), v.Value), nil
	case ConstWide32:
		return "const-wide/32", fmt.Sprintf("%s %d", reg(v.Dst), v.Value), nil
	case ConstWide:
		return "const-wide", fmt.Sprintf("%s %d", reg(v.Dst), v.Value), nil
	case ConstWideHigh16:
		return "const-wide/high16", fmt.Sprintf("%s %d", reg(v.Dst), v.Value), nil
	case ConstString:
		s, err := pool.String(uint32(v.StringIdx))
		if err != nil {
			return "", "", err
		}
		return "const-string", fmt.Sprintf("%s %q", reg(v.Dst), s), nil
	case ConstStringJumbo:
		s, err := pool.String(v.StringIdx)
		if err != nil {
			return "", "", err
		}
		return "const-string/jumbo", fmt.Sprintf("%s %q", reg(v.Dst), s), nil
	case ConstClass:
		t, err := pool.Type(v.TypeIdx)
		if err != nil {
			return "", "", err
		}
		return "const-class", fmt.Sprintf("%s %s", reg(v.Dst), t), nil
	case MonitorEnter:
		return "monitor-enter", reg(v.Reference), nil
	case MonitorExit:
		return "monitor-exit", reg(v.Reference), nil
	case CheckCast:
		t, err := pool.Type(v.TypeIdx)
		if err != nil {
			return "", "", err
		}
		return "check-cast", fmt.Sprintf("%s %s", reg(v.Reference), t), nil
	case InstanceOf:
		t, err := pool.Type(v.TypeIdx)
		if err != nil {
			return "", "", err
		}
		return "instance-of", fmt.Sprintf("%s %s %s", reg(v.Dst), reg(v.Reference), t), nil

	case ArrayLength:
		return "array-length", fmt.Sprintf("%s %s", reg(v.Dst), reg(v.Array)), nil
	case NewInstance:
		t, err := pool.Type(v.TypeIdx)
		if err != nil {
			return "", "", err
		}
		return "new-instance", fmt.Sprintf("%s %s", reg(v.Dst), t), nil
	case NewArray:
		t, err := pool.Type(v.TypeIdx)
		if err != nil {
			return "", "", err
		}
		return "new-array", fmt.Sprintf("%s %s %s", reg(v.Dst), reg(v.Size), t), nil
	case FilledNewArray:
		t, err := pool.Type(v.TypeIdx)
		if err != nil {
			return "", "", err
		}
		return "filled-new-array", fmt.Sprintf("%s %s", listArgs(v.Args, v.ArgCnt), t), nil
	case FilledNewArrayRange:
		t, err := pool.Type(v.TypeIdx)
		if err != nil {
			return "", "", err
		}
		return "filled-new-array/range", fmt.Sprintf("%s %s", rangeArgs(v.FirstArg, v.ArgCnt), t), nil
	case FillArrayData:
		lbl, err := label(labels, pcBytes, int64(v.Offset))
		if err != nil {
			return "", "", err
		}
		return "fill-array-data", fmt.Sprintf("%s %s", reg(v.Array), lbl), nil
	case Throw:
		return "throw", reg(v.Exception), nil
	case Goto:
		lbl, err := label(labels, pcBytes, int64(v.Offset))
		if err != nil {
			return "", "", err
		}
		return "goto", lbl, nil
	case Goto16:
		lbl, err := label(labels, pcBytes, int64(v.Offset))
		if err != nil {
			return "", "", err
		}
		return "goto/16", lbl, nil
	case Goto32:
		lbl, err := label(labels, pcBytes, int64(v.Offset))
		if err != nil {
			return "", "", err
		}
		return "goto/32", lbl, nil
	case PackedSwitch:
		lbl, err := label(labels, pcBytes, int64(v.Offset))
		if err != nil {
			return "", "", err
		}
		return "packed-switch", fmt.Sprintf("%s %s", reg(v.Value), lbl), nil
	case SparseSwitch:
		lbl, err := label(labels, pcBytes, int64(v.Offset))
		if err != nil {
			return "", "", err
		}
		return "sparse-switch", fmt.Sprintf("%s %s", reg(v.Value), lbl), nil

	case CmplFloat:
		return "cmpl-float", fmt.Sprintf("%s %s %s", reg(v.Dst), reg(v.SrcA), reg(v.SrcB)), nil
	case CmpgFloat:
		return "cmpg-float", fmt.Sprintf("%s %s %s", reg(v.Dst), reg(v.SrcA), reg(v.SrcB)), nil
	case CmplDouble:
		return "cmpl-double", fmt.Sprintf("%s %s %s", reg(v.Dst), reg(v.SrcA), reg(v.SrcB)), nil
	case CmpgDouble:
		return "cmpg-double", fmt.Sprintf("%s %s %s", reg(v.Dst), reg(v.SrcA), reg(v.SrcB)), nil
	case CmpLong:
		return "cmp-long", fmt.Sprintf("%s %s %s", reg(v.Dst), reg(v.SrcA), reg(v.SrcB)), nil

	case IfEq:
		return renderIf2(v.Base, "if-eq", v.A, v.B, v.Offset, pcBytes, labels)
	case IfNe:
		return renderIf2(v.Base, "if-ne", v.A, v.B, v.Offset, pcBytes, labels)
	case IfLt:
		return renderIf2(v.Base, "if-lt", v.A, v.B, v.Offset, pcBytes, labels)
	case IfGe:
		return renderIf2(v.Base, "if-ge", v.A, v.B, v.Offset, pcBytes, labels)
	case IfGt:
		return renderIf2(v.Base, "if-gt", v.A, v.B, v.Offset, pcBytes, labels)
	case IfLe:
		return renderIf2(v.Base, "if-le", v.A, v.B, v.Offset, pcBytes, labels)

	case IfEqz:
		return renderIfz(v.Base, "if-eqz", v.Value, v.Offset, pcBytes, labels)
	case IfNez:
		return renderIfz(v.Base, "if-nez", v.Value, v.Offset, pcBytes, labels)
	case IfLtz:
		return renderIfz(v.Base, "if-ltz", v.Value, v.Offset, pcBytes, labels)
	case IfGez:
		return renderIfz(v.Base, "if-gez", v.Value, v.Offset, pcBytes, labels)
	case IfGtz:
		return renderIfz(v.Base, "if-gtz", v.Value, v.Offset, pcBytes, labels)
	case IfLez:
		return renderIfz(v.Base, "if-lez", v.Value, v.Offset, pcBytes, labels)

	case Aget:
		return "aget", renderArrayOp(v.arrayOp), nil
	case AgetWide:
		return "aget-wide", renderArrayOp(v.arrayOp), nil
	case AgetObject:
		return "aget-object", renderArrayOp(v.arrayOp), nil
	case AgetBoolean:
		return "aget-boolean", renderArrayOp(v.arrayOp), nil
	case AgetByte:
		return "aget-byte", renderArrayOp(v.arrayOp), nil
	case AgetChar:
		return "aget-char", renderArrayOp(v.arrayOp), nil
	case AgetShort:
		return "aget-short", renderArrayOp(v.arrayOp), nil
	case Aput:
		return "aput", renderArrayOp(v.arrayOp), nil
	case AputWide:
		return "aput-wide", renderArrayOp(v.arrayOp), nil
	case AputObject:
		return "aput-object", renderArrayOp(v.arrayOp), nil
	case AputBoolean:
		return "aput-boolean", renderArrayOp(v.arrayOp), nil
	case AputByte:
		return "aput-byte", renderArrayOp(v.arrayOp), nil
	case AputChar:
		return "aput-char", renderArrayOp(v.arrayOp), nil
	case AputShort:
		return "aput-short", renderArrayOp(v.arrayOp), nil

	case Iget:
		return renderInstanceField(v.instanceFieldOp, "iget", pool)
	case IgetWide:
		return renderInstanceField(v.instanceFieldOp, "iget-wide", pool)
	case IgetObject:
		return renderInstanceField(v.instanceFieldOp, "iget-object", pool)
	case IgetBoolean:
		return renderInstanceField(v.instanceFieldOp, "iget-boolean", pool)
	case IgetByte:
		return renderInstanceField(v.instanceFieldOp, "iget-byte", pool)
	case IgetChar:
		return renderInstanceField(v.instanceFieldOp, "iget-char", pool)
	case IgetShort:
		return renderInstanceField(v.instanceFieldOp, "iget-short", pool)
	case Iput:
		return renderInstanceField(v.instanceFieldOp, "iput", pool)
	case IputWide:
		return renderInstanceField(v.instanceFieldOp, "iput-wide", pool)
	case IputObject:
		return renderInstanceField(v.instanceFieldOp, "iput-object", pool)
	case IputBoolean:
		return renderInstanceField(v.instanceFieldOp, "iput-boolean", pool)
	case IputByte:
		return renderInstanceField(v.instanceFieldOp, "iput-byte", pool)
	case IputChar:
		return renderInstanceField(v.instanceFieldOp, "iput-char", pool)
	case IputShort:
		return renderInstanceField(v.instanceFieldOp, "iput-short", pool)

	case Sget:
		return renderStaticField(v.staticFieldOp, "sget", pool)
	case SgetWide:
		return renderStaticField(v.staticFieldOp, "sget-wide", pool)
	case SgetObject:
		return renderStaticField(v.staticFieldOp, "sget-object", pool)
	case SgetBoolean:
		return renderStaticField(v.staticFieldOp, "sget-boolean", pool)
	case SgetByte:
		return renderStaticField(v.staticFieldOp, "sget-byte", pool)
	case SgetChar:
		return renderStaticField(v.staticFieldOp, "sget-char", pool)
	case SgetShort:
		return renderStaticField(v.staticFieldOp, "sget-short", pool)
	case Sput:
		return renderStaticField(v.staticFieldOp, "sput", pool)
	case SputWide:
		return renderStaticField(v.staticFieldOp, "sput-wide", pool)
	case SputObject:
		return renderStaticField(v.staticFieldOp, "sput-object", pool)
	case SputBoolean:
		return renderStaticField(v.staticFieldOp, "sput-boolean", pool)
	case SputByte:
		return renderStaticField(v.staticFieldOp, "sput-byte", pool)
	case SputChar:
		return renderStaticField(v.staticFieldOp, "sput-char", pool)
	case SputShort:
		return renderStaticField(v.staticFieldOp, "sput-short", pool)

	case InvokeVirtual:
		return renderInvoke(v.invokeOp, "invoke-virtual", pool)
	case InvokeSuper:
		return renderInvoke(v.invokeOp, "invoke-super", pool)
	case InvokeDirect:
		return renderInvoke(v.invokeOp, "invoke-direct", pool)
	case InvokeStatic:
		return renderInvoke(v.invokeOp, "invoke-static", pool)
	case InvokeInterface:
		return renderInvoke(v.invokeOp, "invoke-interface", pool)

	case InvokeVirtualRange:
		return renderInvokeRange(v.invokeRangeOp, "invoke-virtual/range", pool)
	case InvokeSuperRange:
		return renderInvokeRange(v.invokeRangeOp, "invoke-super/range", pool)
	case InvokeDirectRange:
		return renderInvokeRange(v.invokeRangeOp, "invoke-direct/range", pool)
	case InvokeStaticRange:
		return renderInvokeRange(v.invokeRangeOp, "invoke-static/range", pool)
	case InvokeInterfaceRange:
		return renderInvokeRange(v.invokeRangeOp, "invoke-interface/range", pool)

	case NegInt:
		return "neg-int", renderUnary(v.unaryOp), nil
	case NotInt:
		return "not-int", renderUnary(v.unaryOp), nil
	case NegLong:
		return "neg-long", renderUnary(v.unaryOp), nil
	case NotLong:
		return "not-long", renderUnary(v.unaryOp), nil
	case NegFloat:
		return "neg-float", renderUnary(v.unaryOp), nil
	case NegDouble:
		return "neg-double", renderUnary(v.unaryOp), nil
	case IntToLong:
		return "int-to-long", renderUnary(v.unaryOp), nil
	case IntToFloat:
		return "int-to-float", renderUnary(v.unaryOp), nil
	case IntToDouble:
		return "int-to-double", renderUnary(v.unaryOp), nil
	case LongToInt:
		return "long-to-int", renderUnary(v.unaryOp), nil
	case LongToFloat:
		return "long-to-float", renderUnary(v.unaryOp), nil
	case LongToDouble:
		return "long-to-double", renderUnary(v.unaryOp), nil
	case FloatToInt:
		return "float-to-int", renderUnary(v.unaryOp), nil
	case FloatToLong:
		return "float-to-long", renderUnary(v.unaryOp), nil
	case FloatToDouble:
		return "float-to-double", renderUnary(v.unaryOp), nil
	case DoubleToInt:
		return "double-to-int", renderUnary(v.unaryOp), nil
	case DoubleToLong:
		return "double-to-long", renderUnary(v.unaryOp), nil
	case DoubleToFloat:
		return "double-to-float", renderUnary(v.unaryOp), nil
	case IntToByte:
		return "int-to-byte", renderUnary(v.unaryOp), nil
	case IntToChar:
		return "int-to-char", renderUnary(v.unaryOp), nil
	case IntToShort:
		return "int-to-short", renderUnary(v.unaryOp), nil

	case AddInt:
		return "add-int", renderBinary(v.binaryOp), nil
	case SubInt:
		return "sub-int", renderBinary(v.binaryOp), nil
	case MulInt:
		return "mul-int", renderBinary(v.binaryOp), nil
	case DivInt:
		return "div-int", renderBinary(v.binaryOp), nil
	case RemInt:
		return "rem-int", renderBinary(v.binaryOp), nil
	case AndInt:
		return "and-int", renderBinary(v.binaryOp), nil
	case OrInt:
		return "or-int", renderBinary(v.binaryOp), nil
	case XorInt:
		return "xor-int", renderBinary(v.binaryOp), nil
	case ShlInt:
		return "shl-int", renderBinary(v.binaryOp), nil
	case ShrInt:
		return "shr-int", renderBinary(v.binaryOp), nil
	case UshrInt:
		return "ushr-int", renderBinary(v.binaryOp), nil
	case AddLong:
		return "add-long", renderBinary(v.binaryOp), nil
	case SubLong:
		return "sub-long", renderBinary(v.binaryOp), nil
	case MulLong:
		return "mul-long", renderBinary(v.binaryOp), nil
	case DivLong:
		return "div-long", renderBinary(v.binaryOp), nil
	case RemLong:
		return "rem-long", renderBinary(v.binaryOp), nil
	case AndLong:
		return "and-long", renderBinary(v.binaryOp), nil
	case OrLong:
		return "or-long", renderBinary(v.binaryOp), nil
	case XorLong:
		return "xor-long", renderBinary(v.binaryOp), nil
	case ShlLong:
		return "shl-long", renderBinary(v.binaryOp), nil
	case ShrLong:
		return "shr-long", renderBinary(v.binaryOp), nil
	case UshrLong:
		return "ushr-long", renderBinary(v.binaryOp), nil
	case AddFloat:
		return "add-float", renderBinary(v.binaryOp), nil
	case SubFloat:
		return "sub-float", renderBinary(v.binaryOp), nil
	case MulFloat:
		return "mul-float", renderBinary(v.binaryOp), nil
	case DivFloat:
		return "div-float", renderBinary(v.binaryOp), nil
	case RemFloat:
		return "rem-float", renderBinary(v.binaryOp), nil
	case AddDouble:
		return "add-double", renderBinary(v.binaryOp), nil
	case SubDouble:
		return "sub-double", renderBinary(v.binaryOp), nil
	case MulDouble:
		return "mul-double", renderBinary(v.binaryOp), nil
	case DivDouble:
		return "div-double", renderBinary(v.binaryOp), nil
	case RemDouble:
		return "rem-double", renderBinary(v.binaryOp), nil

	case AddInt2Addr:
		return "add-int/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case SubInt2Addr:
		return "sub-int/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case MulInt2Addr:
		return "mul-int/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case DivInt2Addr:
		return "div-int/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case RemInt2Addr:
		return "rem-int/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case AndInt2Addr:
		return "and-int/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case OrInt2Addr:
		return "or-int/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case XorInt2Addr:
		return "xor-int/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case ShlInt2Addr:
		return "shl-int/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case ShrInt2Addr:
		return "shr-int/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case UshrInt2Addr:
		return "ushr-int/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case AddLong2Addr:
		return "add-long/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case SubLong2Addr:
		return "sub-long/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case MulLong2Addr:
		return "mul-long/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case DivLong2Addr:
		return "div-long/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case RemLong2Addr:
		return "rem-long/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case AndLong2Addr:
		return "and-long/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case OrLong2Addr:
		return "or-long/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case XorLong2Addr:
		return "xor-long/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case ShlLong2Addr:
		return "shl-long/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case ShrLong2Addr:
		return "shr-long/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case UshrLong2Addr:
		return "ushr-long/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case AddFloat2Addr:
		return "add-float/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case SubFloat2Addr:
		return "sub-float/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case MulFloat2Addr:
		return "mul-float/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case DivFloat2Addr:
		return "div-float/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case RemFloat2Addr:
		return "rem-float/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case AddDouble2Addr:
		return "add-double/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case SubDouble2Addr:
		return "sub-double/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case MulDouble2Addr:
		return "mul-double/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case DivDouble2Addr:
		return "div-double/2addr", renderBinary2Addr(v.binary2AddrOp), nil
	case RemDouble2Addr:
		return "rem-double/2addr", renderBinary2Addr(v.binary2AddrOp), nil

	case AddIntLit16:
		return "add-int/lit16", renderLit16(v.lit16Op), nil
	case RsubInt:
		return "rsub-int", renderLit16(v.lit16Op), nil
	case MulIntLit16:
		return "mul-int/lit16", renderLit16(v.lit16Op), nil
	case DivIntLit16:
		return "div-int/lit16", renderLit16(v.lit16Op), nil
	case RemIntLit16:
		return "rem-int/lit16", renderLit16(v.lit16Op), nil
	case AndIntLit16:
		return "and-int/lit16", renderLit16(v.lit16Op), nil
	case OrIntLit16:
		return "or-int/lit16", renderLit16(v.lit16Op), nil
	case XorIntLit16:
		return "xor-int/lit16", renderLit16(v.lit16Op), nil

	case AddIntLit8:
		return "add-int/lit8", renderLit8(v.lit8Op), nil
	case RsubIntLit8:
		return "rsub-int/lit8", renderLit8(v.lit8Op), nil
	case MulIntLit8:
		return "mul-int/lit8", renderLit8(v.lit8Op), nil
	case DivIntLit8:
		return "div-int/lit8", renderLit8(v.lit8Op), nil
	case RemIntLit8:
		return "rem-int/lit8", renderLit8(v.lit8Op), nil
	case AndIntLit8:
		return "and-int/lit8", renderLit8(v.lit8Op), nil
	case OrIntLit8:
		return "or-int/lit8", renderLit8(v.lit8Op), nil
	case XorIntLit8:
		return "xor-int/lit8", renderLit8(v.lit8Op), nil
	case ShlIntLit8:
		return "shl-int/lit8", renderLit8(v.lit8Op), nil
	case ShrIntLit8:
		return "shr-int/lit8", renderLit8(v.lit8Op), nil
	case UshrIntLit8:
		return "ushr-int/lit8", renderLit8(v.lit8Op), nil

	case InvokePolymorphic:
		method, err := pool.MethodRef(v.MethodIdx)
		if err != nil {
			return "", "", err
		}
		proto, err := pool.ProtoRef(v.ProtoIdx)
		if err != nil {
			return "", "", err
		}
		return "invoke-polymorphic", fmt.Sprintf("%s %s %s", listArgs(v.Args, v.ArgCnt), method, proto), nil
	case InvokePolymorphicRange:
		method, err := pool.MethodRef(v.MethodIdx)
		if err != nil {
			return "", "", err
		}
		proto, err := pool.ProtoRef(v.ProtoIdx)
		if err != nil {
			return "", "", err
		}
		return "invoke-polymorphic/range", fmt.Sprintf("%s %s %s", rangeArgs(v.FirstArg, v.ArgCnt), method, proto), nil
	case InvokeCustom:
		cs, err := pool.CallSiteRef(v.CallSiteIdx)
		if err != nil {
			return "", "", err
		}
		return "invoke-custom", fmt.Sprintf("%s %s", listArgs(v.Args, v.ArgCnt), cs), nil
	case InvokeCustomRange:
		cs, err := pool.CallSiteRef(v.CallSiteIdx)
		if err != nil {
			return "", "", err
		}
		return "invoke-custom/range", fmt.Sprintf("%s %s", rangeArgs(v.FirstArg, v.ArgCnt), cs), nil
	case ConstMethodHandle:
		mh, err := pool.MethodHandleRef(v.MethodHandleIdx)
		if err != nil {
			return "", "", err
		}
		return "const-method-handle", fmt.Sprintf("%s %s", reg(v.Dst), mh), nil
	case ConstMethodType:
		proto, err := pool.ProtoRef(v.ProtoIdx)
		if err != nil {
			return "", "", err
		}
		return "const-method-type", fmt.Sprintf("%s %s", reg(v.Dst), proto), nil
	}

	return "", "", dexerr.NewUnknownOpcode(byte(i.Opcode()))
}

func renderIf2(_ Base, mnemonic string, a, b byte, offset int16, pcBytes int, labels LabelSet) (string, string, error) {
	lbl, err := label(labels, pcBytes, int64(offset))
	if err != nil {
		return "", "", err
	}
	return mnemonic, fmt.Sprintf("%s %s %s", reg(a), reg(b), lbl), nil
}

func renderIfz(_ Base, mnemonic string, value byte, offset int16, pcBytes int, labels LabelSet) (string, string, error) {
	lbl, err := label(labels, pcBytes, int64(offset))
	if err != nil {
		return "", "", err
	}
	return mnemonic, fmt.Sprintf("%s %s", reg(value), lbl), nil
}

func renderArrayOp(op arrayOp) string {
	return fmt.Sprintf("%s %s %s", reg(op.Reg), reg(op.Array), reg(op.Index))
}

func renderUnary(op unaryOp) string {
	return fmt.Sprintf("%s %s", reg(op.Dst), reg(op.Src))
}

func renderBinary(op binaryOp) string {
	return fmt.Sprintf("%s %s %s", reg(op.Dst), reg(op.SrcA), reg(op.SrcB))
}

func renderBinary2Addr(op binary2AddrOp) string {
	return fmt.Sprintf("%s %s", reg(op.Dst), reg(op.Src))
}

func renderLit16(op lit16Op) string {
	return fmt.Sprintf("%s %s %d", reg(op.Dst), reg(op.Src), op.Value)
}

func renderLit8(op lit8Op) string {
	return fmt.Sprintf("%s %s %d", reg(op.Dst), reg(op.Src), op.Value)
}

func renderInstanceField(op instanceFieldOp, mnemonic string, pool Pool) (string, string, error) {
	field, err := pool.FieldRef(op.FieldIdx)
	if err != nil {
		return "", "", err
	}
	return mnemonic, fmt.Sprintf("%s %s %s", reg(op.Reg), reg(op.Object), field), nil
}

func renderStaticField(op staticFieldOp, mnemonic string, pool Pool) (string, string, error) {
	field, err := pool.FieldRef(op.FieldIdx)
	if err != nil {
		return "", "", err
	}
	return mnemonic, fmt.Sprintf("%s %s", reg(op.Reg), field), nil
}

func renderInvoke(op invokeOp, mnemonic string, pool Pool) (string, string, error) {
	method, err := pool.MethodRef(op.MethodIdx)
	if err != nil {
		return "", "", err
	}
	return mnemonic, fmt.Sprintf("%s %s", listArgs(op.Args, op.ArgCnt), method), nil
}

func renderInvokeRange(op invokeRangeOp, mnemonic string, pool Pool) (string, string, error) {
	method, err := pool.MethodRef(op.MethodIdx)
	if err != nil {
		return "", "", err
	}
	return mnemonic, fmt.Sprintf("%s %s", rangeArgs(op.FirstArg, op.ArgCnt), method), nil
}
