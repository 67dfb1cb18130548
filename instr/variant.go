package instr

// Base carries the originating opcode for every concrete instruction
// variant, so SizeBytes and rendering can recover the opcode without a
// second decode pass. The instruction set is a closed sum type (see
// DESIGN.md): switching on the opcode, not a per-variant virtual method,
// is how the decoder and renderer both already work.
type Base struct {
	Op Opcode
}

// Opcode returns the opcode this instruction was decoded from.
func (b Base) Opcode() Opcode { return b.Op }

// Instruction is the closed set of all ~230 decoded Dalvik instruction
// variants.
type Instruction interface {
	Opcode() Opcode
}

// SizeBytesOf returns the fixed size, in bytes, of i's opcode.
func SizeBytesOf(i Instruction) int {
	n, _ := SizeBytes(byte(i.Opcode()))
	return n
}

// --- 00-0D: moves ---

type Nop struct{ Base }
type Move struct {
	Base
	Dst, Src byte
}
type MoveFrom16 struct {
	Base
	Dst byte
	Src uint16
}
type Move16 struct {
	Base
	Dst, Src uint16
}
type MoveWide struct {
	Base
	Dst, Src byte
}
type MoveWideFrom16 struct {
	Base
	Dst byte
	Src uint16
}
type MoveWide16 struct {
	Base
	Dst, Src uint16
}
type MoveObject struct {
	Base
	Dst, Src byte
}
type MoveObjectFrom16 struct {
	Base
	Dst byte
	Src uint16
}
type MoveObject16 struct {
	Base
	Dst, Src uint16
}
type MoveResult struct {
	Base
	Dst byte
}
type MoveResultWide struct {
	Base
	Dst byte
}
type MoveResultObject struct {
	Base
	Dst byte
}
type MoveException struct {
	Base
	Dst byte
}

// --- 0E-11: returns ---

type ReturnVoid struct{ Base }
type Return struct {
	Base
	Value byte
}
type ReturnWide struct {
	Base
	Value byte
}
type ReturnObject struct {
	Base
	Value byte
}

// --- 12-20: constants and checks ---

type Const4 struct {
	Base
	Dst   byte
	Value int8
}
type Const16 struct {
	Base
	Dst   byte
	Value int16
}
type Const struct {
	Base
	Dst   byte
	Value int32
}
type ConstHigh16 struct {
	Base
	Dst   byte
	Value int16
}
type ConstWide16 struct {
	Base
	Dst   byte
	Value int16
}
type ConstWide32 struct {
	Base
	Dst   byte
	Value int32
}
type ConstWide struct {
	Base
	Dst   byte
	Value int64
}
type ConstWideHigh16 struct {
	Base
	Dst   byte
	Value int16
}
type ConstString struct {
	Base
	Dst       byte
	StringIdx uint16
}
type ConstStringJumbo struct {
	Base
	Dst       byte
	StringIdx uint32
}
type ConstClass struct {
	Base
	Dst     byte
	TypeIdx uint16
}
type MonitorEnter struct {
	Base
	Reference byte
}
type MonitorExit struct {
	Base
	Reference byte
}
type CheckCast struct {
	Base
	Reference byte
	TypeIdx   uint16
}
type InstanceOf struct {
	Base
	Dst, Reference byte
	TypeIdx        uint16
}

// --- 21-2C: arrays and jumps ---

type ArrayLength struct {
	Base
	Dst, Array byte
}
type NewInstance struct {
	Base
	Dst     byte
	TypeIdx uint16
}
type NewArray struct {
	Base
	Dst, Size byte
	TypeIdx   uint16
}
type FilledNewArray struct {
	Base
	TypeIdx uint16
	Args    [5]byte
	ArgCnt  byte
}
type FilledNewArrayRange struct {
	Base
	TypeIdx  uint16
	FirstArg uint16
	ArgCnt   byte
}
type FillArrayData struct {
	Base
	Array  byte
	Offset int32
}
type Throw struct {
	Base
	Exception byte
}
type Goto struct {
	Base
	Offset int8
}
type Goto16 struct {
	Base
	Offset int16
}
type Goto32 struct {
	Base
	Offset int32
}
type PackedSwitch struct {
	Base
	Value  byte
	Offset int32
}
type SparseSwitch struct {
	Base
	Value  byte
	Offset int32
}

// --- 2D-31: wide comparisons ---

type CmplFloat struct {
	Base
	Dst, SrcA, SrcB byte
}
type CmpgFloat struct {
	Base
	Dst, SrcA, SrcB byte
}
type CmplDouble struct {
	Base
	Dst, SrcA, SrcB byte
}
type CmpgDouble struct {
	Base
	Dst, SrcA, SrcB byte
}
type CmpLong struct {
	Base
	Dst, SrcA, SrcB byte
}

// --- 32-37: two-register conditional branches ---

type IfEq struct {
	Base
	A, B   byte
	Offset int16
}
type IfNe struct {
	Base
	A, B   byte
	Offset int16
}
type IfLt struct {
	Base
	A, B   byte
	Offset int16
}
type IfGe struct {
	Base
	A, B   byte
	Offset int16
}
type IfGt struct {
	Base
	A, B   byte
	Offset int16
}
type IfLe struct {
	Base
	A, B   byte
	Offset int16
}

// --- 38-3D: zero-register conditional branches ---

type IfEqz struct {
	Base
	Value  byte
	Offset int16
}
type IfNez struct {
	Base
	Value  byte
	Offset int16
}
type IfLtz struct {
	Base
	Value  byte
	Offset int16
}
type IfGez struct {
	Base
	Value  byte
	Offset int16
}
type IfGtz struct {
	Base
	Value  byte
	Offset int16
}
type IfLez struct {
	Base
	Value  byte
	Offset int16
}

// --- 44-51: array get/put ---

type arrayOp struct {
	Base
	Reg, Array, Index byte
}

type Aget struct{ arrayOp }
type AgetWide struct{ arrayOp }
type AgetObject struct{ arrayOp }
type AgetBoolean struct{ arrayOp }
type AgetByte struct{ arrayOp }
type AgetChar struct{ arrayOp }
type AgetShort struct{ arrayOp }
type Aput struct{ arrayOp }
type AputWide struct{ arrayOp }
type AputObject struct{ arrayOp }
type AputBoolean struct{ arrayOp }
type AputByte struct{ arrayOp }
type AputChar struct{ arrayOp }
type AputShort struct{ arrayOp }

// --- 52-6D: instance and static field get/put ---

type instanceFieldOp struct {
	Base
	Reg, Object byte
	FieldIdx    uint16
}

type Iget struct{ instanceFieldOp }
type IgetWide struct{ instanceFieldOp }
type IgetObject struct{ instanceFieldOp }
type IgetBoolean struct{ instanceFieldOp }
type IgetByte struct{ instanceFieldOp }
type IgetChar struct{ instanceFieldOp }
type IgetShort struct{ instanceFieldOp }
type Iput struct{ instanceFieldOp }
type IputWide struct{ instanceFieldOp }
type IputObject struct{ instanceFieldOp }
type IputBoolean struct{ instanceFieldOp }
type IputByte struct{ instanceFieldOp }
type IputChar struct{ instanceFieldOp }
type IputShort struct{ instanceFieldOp }

type staticFieldOp struct {
	Base
	Reg      byte
	FieldIdx uint16
}

type Sget struct{ staticFieldOp }
type SgetWide struct{ staticFieldOp }
type SgetObject struct{ staticFieldOp }
type SgetBoolean struct{ staticFieldOp }
type SgetByte struct{ staticFieldOp }
type SgetChar struct{ staticFieldOp }
type SgetShort struct{ staticFieldOp }
type Sput struct{ staticFieldOp }
type SputWide struct{ staticFieldOp }
type SputObject struct{ staticFieldOp }
type SputBoolean struct{ staticFieldOp }
type SputByte struct{ staticFieldOp }
type SputChar struct{ staticFieldOp }
type SputShort struct{ staticFieldOp }

// --- 6E-78: invokes ---

type invokeOp struct {
	Base
	MethodIdx uint16
	Args      [5]byte
	ArgCnt    byte
}

type InvokeVirtual struct{ invokeOp }
type InvokeSuper struct{ invokeOp }
type InvokeDirect struct{ invokeOp }
type InvokeStatic struct{ invokeOp }
type InvokeInterface struct{ invokeOp }

type invokeRangeOp struct {
	Base
	MethodIdx uint16
	FirstArg  uint16
	ArgCnt    byte
}

type InvokeVirtualRange struct{ invokeRangeOp }
type InvokeSuperRange struct{ invokeRangeOp }
type InvokeDirectRange struct{ invokeRangeOp }
type InvokeStaticRange struct{ invokeRangeOp }
type InvokeInterfaceRange struct{ invokeRangeOp }

// --- 7B-8F: unary numeric ops and type conversions ---

type unaryOp struct {
	Base
	Dst, Src byte
}

type NegInt struct{ unaryOp }
type NotInt struct{ unaryOp }
type NegLong struct{ unaryOp }
type NotLong struct{ unaryOp }
type NegFloat struct{ unaryOp }
type NegDouble struct{ unaryOp }
type IntToLong struct{ unaryOp }
type IntToFloat struct{ unaryOp }
type IntToDouble struct{ unaryOp }
type LongToInt struct{ unaryOp }
type LongToFloat struct{ unaryOp }
type LongToDouble struct{ unaryOp }
type FloatToInt struct{ unaryOp }
type FloatToLong struct{ unaryOp }
type FloatToDouble struct{ unaryOp }
type DoubleToInt struct{ unaryOp }
type DoubleToLong struct{ unaryOp }
type DoubleToFloat struct{ unaryOp }
type IntToByte struct{ unaryOp }
type IntToChar struct{ unaryOp }
type IntToShort struct{ unaryOp }

// --- 90-AF: binary numeric, 3-register ---

type binaryOp struct {
	Base
	Dst, SrcA, SrcB byte
}

type AddInt struct{ binaryOp }
type SubInt struct{ binaryOp }
type MulInt struct{ binaryOp }
type DivInt struct{ binaryOp }
type RemInt struct{ binaryOp }
type AndInt struct{ binaryOp }
type OrInt struct{ binaryOp }
type XorInt struct{ binaryOp }
type ShlInt struct{ binaryOp }
type ShrInt struct{ binaryOp }
type UshrInt struct{ binaryOp }
type AddLong struct{ binaryOp }
type SubLong struct{ binaryOp }
type MulLong struct{ binaryOp }
type DivLong struct{ binaryOp }
type RemLong struct{ binaryOp }
type AndLong struct{ binaryOp }
type OrLong struct{ binaryOp }
type XorLong struct{ binaryOp }
type ShlLong struct{ binaryOp }
type ShrLong struct{ binaryOp }
type UshrLong struct{ binaryOp }
type AddFloat struct{ binaryOp }
type SubFloat struct{ binaryOp }
type MulFloat struct{ binaryOp }
type DivFloat struct{ binaryOp }
type RemFloat struct{ binaryOp }
type AddDouble struct{ binaryOp }
type SubDouble struct{ binaryOp }
type MulDouble struct{ binaryOp }
type DivDouble struct{ binaryOp }
type RemDouble struct{ binaryOp }

// --- B0-CF: binary numeric, 2-address ---

type binary2AddrOp struct {
	Base
	Dst, Src byte
}

type AddInt2Addr struct{ binary2AddrOp }
type SubInt2Addr struct{ binary2AddrOp }
type MulInt2Addr struct{ binary2AddrOp }
type DivInt2Addr struct{ binary2AddrOp }
type RemInt2Addr struct{ binary2AddrOp }
type AndInt2Addr struct{ binary2AddrOp }
type OrInt2Addr struct{ binary2AddrOp }
type XorInt2Addr struct{ binary2AddrOp }
type ShlInt2Addr struct{ binary2AddrOp }
type ShrInt2Addr struct{ binary2AddrOp }
type UshrInt2Addr struct{ binary2AddrOp }
type AddLong2Addr struct{ binary2AddrOp }
type SubLong2Addr struct{ binary2AddrOp }
type MulLong2Addr struct{ binary2AddrOp }
type DivLong2Addr struct{ binary2AddrOp }
type RemLong2Addr struct{ binary2AddrOp }
type AndLong2Addr struct{ binary2AddrOp }
type OrLong2Addr struct{ binary2AddrOp }
type XorLong2Addr struct{ binary2AddrOp }
type ShlLong2Addr struct{ binary2AddrOp }
type ShrLong2Addr struct{ binary2AddrOp }
type UshrLong2Addr struct{ binary2AddrOp }
type AddFloat2Addr struct{ binary2AddrOp }
type SubFloat2Addr struct{ binary2AddrOp }
type MulFloat2Addr struct{ binary2AddrOp }
type DivFloat2Addr struct{ binary2AddrOp }
type RemFloat2Addr struct{ binary2AddrOp }
type AddDouble2Addr struct{ binary2AddrOp }
type SubDouble2Addr struct{ binary2AddrOp }
type MulDouble2Addr struct{ binary2AddrOp }
type DivDouble2Addr struct{ binary2AddrOp }
type RemDouble2Addr struct{ binary2AddrOp }

// --- D0-D7: literal binary, 16-bit literal ---

type lit16Op struct {
	Base
	Dst, Src byte
	Value    int16
}

type AddIntLit16 struct{ lit16Op }
type RsubInt struct{ lit16Op }
type MulIntLit16 struct{ lit16Op }
type DivIntLit16 struct{ lit16Op }
type RemIntLit16 struct{ lit16Op }
type AndIntLit16 struct{ lit16Op }
type OrIntLit16 struct{ lit16Op }
type XorIntLit16 struct{ lit16Op }

// --- D8-E2: literal binary, 8-bit literal ---

type lit8Op struct {
	Base
	Dst, Src byte
	Value    int8
}

type AddIntLit8 struct{ lit8Op }
type RsubIntLit8 struct{ lit8Op }
type MulIntLit8 struct{ lit8Op }
type DivIntLit8 struct{ lit8Op }
type RemIntLit8 struct{ lit8Op }
type AndIntLit8 struct{ lit8Op }
type OrIntLit8 struct{ lit8Op }
type XorIntLit8 struct{ lit8Op }
type ShlIntLit8 struct{ lit8Op }
type ShrIntLit8 struct{ lit8Op }
type UshrIntLit8 struct{ lit8Op }

// --- FA-FF: polymorphic and dynamic invokes ---

type InvokePolymorphic struct {
	Base
	MethodIdx uint16
	ProtoIdx  uint16
	Args      [5]byte
	ArgCnt    byte
}
type InvokePolymorphicRange struct {
	Base
	MethodIdx uint16
	ProtoIdx  uint16
	FirstArg  uint16
	ArgCnt    byte
}
type InvokeCustom struct {
	Base
	CallSiteIdx uint16
	Args        [5]byte
	ArgCnt      byte
}
type InvokeCustomRange struct {
	Base
	CallSiteIdx uint16
	FirstArg    uint16
	ArgCnt      byte
}
type ConstMethodHandle struct {
	Base
	Dst             byte
	MethodHandleIdx uint16
}
type ConstMethodType struct {
	Base
	Dst      byte
	ProtoIdx uint16
}
