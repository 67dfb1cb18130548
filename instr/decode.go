package instr

import (
	"github.com/arloliu/dex2smali/dexerr"
	"github.com/arloliu/dex2smali/leb128"
)

// Decode decodes exactly one instruction from the start of buf. buf must be
// at least SizeBytes(buf[0]) long; callers (see DecodeStream) are
// responsible for slicing the window before calling.
func Decode(buf []byte) (Instruction, error) {
	if len(buf) == 0 {
		return nil, dexerr.ErrEmptyBuffer
	}

	opcode := buf[0]
	expected, err := SizeBytes(opcode)
	if err != nil {
		return nil, err
	}
	if len(buf) < expected {
		return nil, dexerr.NewTruncatedInstruction(opcode, expected, len(buf))
	}

	base := Base{Op: Opcode(opcode)}
	u16 := func(off int) uint16 { v, _ := leb128.ReadU16LE(buf, off); return v }
	u32 := func(off int) uint32 { v, _ := leb128.ReadU32LE(buf, off); return v }
	u64 := func(off int) uint64 { v, _ := leb128.ReadU64LE(buf, off); return v }

	switch {
	case opcode == 0x00:
		return Nop{base}, nil
	case opcode == 0x01:
		dst, src := nibbles(buf[1])
		return Move{base, dst, src}, nil
	case opcode == 0x02:
		return MoveFrom16{base, buf[1], u16(2)}, nil
	case opcode == 0x03:
		return Move16{base, u16(2), u16(4)}, nil
	case opcode == 0x04:
		dst, src := nibbles(buf[1])
		return MoveWide{base, dst, src}, nil
	case opcode == 0x05:
		return MoveWideFrom16{base, buf[1], u16(2)}, nil
	case opcode == 0x06:
		return MoveWide16{base, u16(2), u16(4)}, nil
	case opcode == 0x07:
		dst, src := nibbles(buf[1])
		return MoveObject{base, dst, src}, nil
	case opcode == 0x08:
		return MoveObjectFrom16{base, buf[1], u16(2)}, nil
	case opcode == 0x09:
		return MoveObject16{base, u16(2), u16(4)}, nil
	case opcode == 0x0A:
		return MoveResult{base, buf[1]}, nil
	case opcode == 0x0B:
		return MoveResultWide{base, buf[1]}, nil
	case opcode == 0x0C:
		return MoveResultObject{base, buf[1]}, nil
	case opcode == 0x0D:
		return MoveException{base, buf[1]}, nil

	case opcode == 0x0E:
		return ReturnVoid{base}, nil
	case opcode == 0x0F:
		return Return{base, buf[1]}, nil
	case opcode == 0x10:
		return ReturnWide{base, buf[1]}, nil
	case opcode == 0x11:
		return ReturnObject{base, buf[1]}, nil

	case opcode == 0x12:
		dst, value := nibbles(buf[1])
		return Const4{base, dst, int8(value<<4) >> 4}, nil
	case opcode == 0x13:
		return Const16{base, buf[1], int16(u16(2))}, nil
	case opcode == 0x14:
		return Const{base, buf[1], int32(u32(2))}, nil
	case opcode == 0x15:
		return ConstHigh16{base, buf[1], int16(u16(2))}, nil
	case opcode == 0x16:
		return ConstWide16{base, buf[1], int16(u16(2))}, nil
	case opcode == 0x17:
		return ConstWide32{base, buf[1], int32(u32(2))}, nil
	case opcode == 0x18:
		return ConstWide{base, buf[1], int64(u64(2))}, nil
	case opcode == 0x19:
		return ConstWideHigh16{base, buf[1], int16(u16(2))}, nil
	case opcode == 0x1A:
		return ConstString{base, buf[1], u16(2)}, nil
	case opcode == 0x1B:
		return ConstStringJumbo{base, buf[1], u32(2)}, nil
	case opcode == 0x1C:
		return ConstClass{base, buf[1], u16(2)}, nil
	case opcode == 0x1D:
		return MonitorEnter{base, buf[1]}, nil
	case opcode == 0x1E:
		return MonitorExit{base, buf[1]}, nil
	case opcode == 0x1F:
		return CheckCast{base, buf[1], u16(2)}, nil
	case opcode == 0x20:
		dst, ref := nibbles(buf[1])
		return InstanceOf{base, dst, ref, u16(2)}, nil

	case opcode == 0x21:
		dst, array := nibbles(buf[1])
		return ArrayLength{base, dst, array}, nil
	case opcode == 0x22:
		return NewInstance{base, buf[1], u16(2)}, nil
	case opcode == 0x23:
		dst, size := nibbles(buf[1])
		return NewArray{base, dst, size, u16(2)}, nil
	case opcode == 0x24:
		g, a := nibbles(buf[1])
		typeIdx := u16(2)
		c, d := nibbles(buf[4])
		e, f := nibbles(buf[5])
		return FilledNewArray{base, typeIdx, [5]byte{c, d, e, f, g}, a}, nil
	case opcode == 0x25:
		return FilledNewArrayRange{base, u16(2), u16(4), buf[1]}, nil
	case opcode == 0x26:
		return FillArrayData{base, buf[1], int32(u32(2))}, nil
	case opcode == 0x27:
		return Throw{base, buf[1]}, nil
	case opcode == 0x28:
		return Goto{base, int8(buf[1])}, nil
	case opcode == 0x29:
		return Goto16{base, int16(u16(2))}, nil
	case opcode == 0x2A:
		return Goto32{base, int32(u32(2))}, nil
	case opcode == 0x2B:
		return PackedSwitch{base, buf[1], int32(u32(2))}, nil
	case opcode == 0x2C:
		return SparseSwitch{base, buf[1], int32(u32(2))}, nil

	case opcode >= 0x2D && opcode <= 0x31:
		dst, srcA, srcB := buf[1], buf[2], buf[3]
		switch opcode {
		case 0x2D:
			return CmplFloat{base, dst, srcA, srcB}, nil
		case 0x2E:
			return CmpgFloat{base, dst, srcA, srcB}, nil
		case 0x2F:
			return CmplDouble{base, dst, srcA, srcB}, nil
		case 0x30:
			return CmpgDouble{base, dst, srcA, srcB}, nil
		default:
			return CmpLong{base, dst, srcA, srcB}, nil
		}

	case opcode >= 0x32 && opcode <= 0x37:
		a, b := nibbles(buf[1])
		off := int16(u16(2))
		switch opcode {
		case 0x32:
			return IfEq{base, a, b, off}, nil
		case 0x33:
			return IfNe{base, a, b, off}, nil
		case 0x34:
			return IfLt{base, a, b, off}, nil
		case 0x35:
			return IfGe{base, a, b, off}, nil
		case 0x36:
			return IfGt{base, a, b, off}, nil
		default:
			return IfLe{base, a, b, off}, nil
		}

	case opcode >= 0x38 && opcode <= 0x3D:
		value := buf[1]
		off := int16(u16(2))
		switch opcode {
		case 0x38:
			return IfEqz{base, value, off}, nil
		case 0x39:
			return IfNez{base, value, off}, nil
		case 0x3A:
			return IfLtz{base, value, off}, nil
		case 0x3B:
			return IfGez{base, value, off}, nil
		case 0x3C:
			return IfGtz{base, value, off}, nil
		default:
			return IfLez{base, value, off}, nil
		}

	case opcode >= 0x44 && opcode <= 0x51:
		reg, array, index := buf[1], buf[2], buf[3]
		op := arrayOp{base, reg, array, index}
		switch opcode {
		case 0x44:
			return Aget{op}, nil
		case 0x45:
			return AgetWide{op}, nil
		case 0x46:
			return AgetObject{op}, nil
		case 0x47:
			return AgetBoolean{op}, nil
		case 0x48:
			return AgetByte{op}, nil
		case 0x49:
			return AgetChar{op}, nil
		case 0x4A:
			return AgetShort{op}, nil
		case 0x4B:
			return Aput{op}, nil
		case 0x4C:
			return AputWide{op}, nil
		case 0x4D:
			return AputObject{op}, nil
		case 0x4E:
			return AputBoolean{op}, nil
		case 0x4F:
			return AputByte{op}, nil
		case 0x50:
			return AputChar{op}, nil
		default:
			return AputShort{op}, nil
		}

	case opcode >= 0x52 && opcode <= 0x5F:
		value, object := nibbles(buf[1])
		fieldIdx := u16(2)
		op := instanceFieldOp{base, value, object, fieldIdx}
		switch opcode {
		case 0x52:
			return Iget{op}, nil
		case 0x53:
			return IgetWide{op}, nil
		case 0x54:
			return IgetObject{op}, nil
		case 0x55:
			return IgetBoolean{op}, nil
		case 0x56:
			return IgetByte{op}, nil
		case 0x57:
			return IgetChar{op}, nil
		case 0x58:
			return IgetShort{op}, nil
		case 0x59:
			return Iput{op}, nil
		case 0x5A:
			return IputWide{op}, nil
		case 0x5B:
			return IputObject{op}, nil
		case 0x5C:
			return IputBoolean{op}, nil
		case 0x5D:
			return IputByte{op}, nil
		case 0x5E:
			return IputChar{op}, nil
		default:
			return IputShort{op}, nil
		}

	case opcode >= 0x60 && opcode <= 0x6D:
		value := buf[1]
		fieldIdx := u16(2)
		op := staticFieldOp{base, value, fieldIdx}
		switch opcode {
		case 0x60:
			return Sget{op}, nil
		case 0x61:
			return SgetWide{op}, nil
		case 0x62:
			return SgetObject{op}, nil
		case 0x63:
			return SgetBoolean{op}, nil
		case 0x64:
			return SgetByte{op}, nil
		case 0x65:
			return SgetChar{op}, nil
		case 0x66:
			return SgetShort{op}, nil
		case 0x67:
			return Sput{op}, nil
		case 0x68:
			return SputWide{op}, nil
		case 0x69:
			return SputObject{op}, nil
		case 0x6A:
			return SputBoolean{op}, nil
		case 0x6B:
			return SputByte{op}, nil
		case 0x6C:
			return SputChar{op}, nil
		default:
			return SputShort{op}, nil
		}

	case opcode >= 0x6E && opcode <= 0x72:
		g, argCnt := nibbles(buf[1])
		methodIdx := u16(2)
		c, d := nibbles(buf[4])
		e, f := nibbles(buf[5])
		op := invokeOp{base, methodIdx, [5]byte{c, d, e, f, g}, argCnt}
		switch opcode {
		case 0x6E:
			return InvokeVirtual{op}, nil
		case 0x6F:
			return InvokeSuper{op}, nil
		case 0x70:
			return InvokeDirect{op}, nil
		case 0x71:
			return InvokeStatic{op}, nil
		default:
			return InvokeInterface{op}, nil
		}

	case opcode >= 0x74 && opcode <= 0x78:
		argCnt := buf[1]
		methodIdx := u16(2)
		firstArg := u16(4)
		op := invokeRangeOp{base, methodIdx, firstArg, argCnt}
		switch opcode {
		case 0x74:
			return InvokeVirtualRange{op}, nil
		case 0x75:
			return InvokeSuperRange{op}, nil
		case 0x76:
			return InvokeDirectRange{op}, nil
		case 0x77:
			return InvokeStaticRange{op}, nil
		default:
			return InvokeInterfaceRange{op}, nil
		}

	case opcode >= 0x7B && opcode <= 0x8F:
		dst, src := nibbles(buf[1])
		op := unaryOp{base, dst, src}
		switch opcode {
		case 0x7B:
			return NegInt{op}, nil
		case 0x7C:
			return NotInt{op}, nil
		case 0x7D:
			return NegLong{op}, nil
		case 0x7E:
			return NotLong{op}, nil
		case 0x7F:
			return NegFloat{op}, nil
		case 0x80:
			return NegDouble{op}, nil
		case 0x81:
			return IntToLong{op}, nil
		case 0x82:
			return IntToFloat{op}, nil
		case 0x83:
			return IntToDouble{op}, nil
		case 0x84:
			return LongToInt{op}, nil
		case 0x85:
			return LongToFloat{op}, nil
		case 0x86:
			return LongToDouble{op}, nil
		case 0x87:
			return FloatToInt{op}, nil
		case 0x88:
			return FloatToLong{op}, nil
		case 0x89:
			return FloatToDouble{op}, nil
		case 0x8A:
			return DoubleToInt{op}, nil
		case 0x8B:
			return DoubleToLong{op}, nil
		case 0x8C:
			return DoubleToFloat{op}, nil
		case 0x8D:
			return IntToByte{op}, nil
		case 0x8E:
			return IntToChar{op}, nil
		default:
			return IntToShort{op}, nil
		}

	case opcode >= 0x90 && opcode <= 0xAF:
		dst, srcA, srcB := buf[1], buf[2], buf[3]
		op := binaryOp{base, dst, srcA, srcB}
		switch opcode {
		case 0x90:
			return AddInt{op}, nil
		case 0x91:
			return SubInt{op}, nil
		case 0x92:
			return MulInt{op}, nil
		case 0x93:
			return DivInt{op}, nil
		case 0x94:
			return RemInt{op}, nil
		case 0x95:
			return AndInt{op}, nil
		case 0x96:
			return OrInt{op}, nil
		case 0x97:
			return XorInt{op}, nil
		case 0x98:
			return ShlInt{op}, nil
		case 0x99:
			return ShrInt{op}, nil
		case 0x9A:
			return UshrInt{op}, nil
		case 0x9B:
			return AddLong{op}, nil
		case 0x9C:
			return SubLong{op}, nil
		case 0x9D:
			return MulLong{op}, nil
		case 0x9E:
			return DivLong{op}, nil
		case 0x9F:
			return RemLong{op}, nil
		case 0xA0:
			return AndLong{op}, nil
		case 0xA1:
			return OrLong{op}, nil
		case 0xA2:
			return XorLong{op}, nil
		case 0xA3:
			return ShlLong{op}, nil
		case 0xA4:
			return ShrLong{op}, nil
		case 0xA5:
			return UshrLong{op}, nil
		case 0xA6:
			return AddFloat{op}, nil
		case 0xA7:
			return SubFloat{op}, nil
		case 0xA8:
			return MulFloat{op}, nil
		case 0xA9:
			return DivFloat{op}, nil
		case 0xAA:
			return RemFloat{op}, nil
		case 0xAB:
			return AddDouble{op}, nil
		case 0xAC:
			return SubDouble{op}, nil
		case 0xAD:
			return MulDouble{op}, nil
		case 0xAE:
			return DivDouble{op}, nil
		default:
			return RemDouble{op}, nil
		}

	case opcode >= 0xB0 && opcode <= 0xCF:
		dst, src := nibbles(buf[1])
		op := binary2AddrOp{base, dst, src}
		switch opcode {
		case 0xB0:
			return AddInt2Addr{op}, nil
		case 0xB1:
			return SubInt2Addr{op}, nil
		case 0xB2:
			return MulInt2Addr{op}, nil
		case 0xB3:
			return DivInt2Addr{op}, nil
		case 0xB4:
			return RemInt2Addr{op}, nil
		case 0xB5:
			return AndInt2Addr{op}, nil
		case 0xB6:
			return OrInt2Addr{op}, nil
		case 0xB7:
			return XorInt2Addr{op}, nil
		case 0xB8:
			return ShlInt2Addr{op}, nil
		case 0xB9:
			return ShrInt2Addr{op}, nil
		case 0xBA:
			return UshrInt2Addr{op}, nil
		case 0xBB:
			return AddLong2Addr{op}, nil
		case 0xBC:
			return SubLong2Addr{op}, nil
		case 0xBD:
			return MulLong2Addr{op}, nil
		case 0xBE:
			return DivLong2Addr{op}, nil
		case 0xBF:
			return RemLong2Addr{op}, nil
		case 0xC0:
			return AndLong2Addr{op}, nil
		case 0xC1:
			return OrLong2Addr{op}, nil
		case 0xC2:
			return XorLong2Addr{op}, nil
		case 0xC3:
			return ShlLong2Addr{op}, nil
		case 0xC4:
			return ShrLong2Addr{op}, nil
		case 0xC5:
			return UshrLong2Addr{op}, nil
		case 0xC6:
			return AddFloat2Addr{op}, nil
		case 0xC7:
			return SubFloat2Addr{op}, nil
		case 0xC8:
			return MulFloat2Addr{op}, nil
		case 0xC9:
			return DivFloat2Addr{op}, nil
		case 0xCA:
			return RemFloat2Addr{op}, nil
		case 0xCB:
			return AddDouble2Addr{op}, nil
		case 0xCC:
			return SubDouble2Addr{op}, nil
		case 0xCD:
			return MulDouble2Addr{op}, nil
		case 0xCE:
			return DivDouble2Addr{op}, nil
		default:
			return RemDouble2Addr{op}, nil
		}

	case opcode >= 0xD0 && opcode <= 0xD7:
		dst, src := nibbles(buf[1])
		value := int16(u16(2))
		op := lit16Op{base, dst, src, value}
		switch opcode {
		case 0xD0:
			return AddIntLit16{op}, nil
		case 0xD1:
			return RsubInt{op}, nil
		case 0xD2:
			return MulIntLit16{op}, nil
		case 0xD3:
			return DivIntLit16{op}, nil
		case 0xD4:
			return RemIntLit16{op}, nil
		case 0xD5:
			return AndIntLit16{op}, nil
		case 0xD6:
			return OrIntLit16{op}, nil
		default:
			return XorIntLit16{op}, nil
		}

	case opcode >= 0xD8 && opcode <= 0xE2:
		dst, src := buf[1], buf[2]
		value := int8(buf[3])
		op := lit8Op{base, dst, src, value}
		switch opcode {
		case 0xD8:
			return AddIntLit8{op}, nil
		case 0xD9:
			return RsubIntLit8{op}, nil
		case 0xDA:
			return MulIntLit8{op}, nil
		case 0xDB:
			return DivIntLit8{op}, nil
		case 0xDC:
			return RemIntLit8{op}, nil
		case 0xDD:
			return AndIntLit8{op}, nil
		case 0xDE:
			return OrIntLit8{op}, nil
		case 0xDF:
			return XorIntLit8{op}, nil
		case 0xE0:
			return ShlIntLit8{op}, nil
		case 0xE1:
			return ShrIntLit8{op}, nil
		default:
			return UshrIntLit8{op}, nil
		}

	case opcode == 0xFA:
		g, argCnt := nibbles(buf[1])
		methodIdx := u16(2)
		c, d := nibbles(buf[4])
		e, f := nibbles(buf[5])
		protoIdx := u16(6)
		return InvokePolymorphic{base, methodIdx, protoIdx, [5]byte{c, d, e, f, g}, argCnt}, nil
	case opcode == 0xFB:
		argCnt := buf[1]
		methodIdx := u16(2)
		firstArg := u16(4)
		protoIdx := u16(6)
		return InvokePolymorphicRange{base, methodIdx, protoIdx, firstArg, argCnt}, nil
	case opcode == 0xFC:
		g, argCnt := nibbles(buf[1])
		callSiteIdx := u16(2)
		c, d := nibbles(buf[4])
		e, f := nibbles(buf[5])
		return InvokeCustom{base, callSiteIdx, [5]byte{c, d, e, f, g}, argCnt}, nil
	case opcode == 0xFD:
		argCnt := buf[1]
		callSiteIdx := u16(2)
		firstArg := u16(4)
		return InvokeCustomRange{base, callSiteIdx, firstArg, argCnt}, nil
	case opcode == 0xFE:
		return ConstMethodHandle{base, buf[1], u16(2)}, nil
	case opcode == 0xFF:
		return ConstMethodType{base, buf[1], u16(2)}, nil
	}

	return nil, dexerr.NewUnknownOpcode(opcode)
}

// Decoded pairs an instruction with the byte offset it started at, within
// its enclosing code-unit stream.
type Decoded struct {
	PC   int
	Inst Instruction
}

// Diagnostic records a per-instruction decode failure that stopped a
// method's instruction list early, per spec.md §4.4's "stop the method,
// emit a diagnostic, other methods unaffected" policy.
type Diagnostic struct {
	PC  int
	Err error
}

// DecodeStream runs the cursor algorithm of spec.md §4.4 over an entire
// instruction-unit stream, stopping at the first decode failure and
// returning it as a Diagnostic rather than propagating the error: the
// caller (code.ParseCodeItem) keeps whatever instructions decoded
// successfully before the failure.
func DecodeStream(stream []byte) ([]Decoded, *Diagnostic) {
	var out []Decoded
	p := 0
	for p < len(stream) {
		inst, err := Decode(stream[p:])
		if err != nil {
			return out, &Diagnostic{PC: p, Err: err}
		}
		out = append(out, Decoded{PC: p, Inst: inst})
		p += SizeBytesOf(inst)
	}
	return out, nil
}
