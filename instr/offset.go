package instr

// BranchOffset returns the branch offset (in 16-bit code units, relative
// to the start of the instruction) carried by i, if any. Grounded on
// original_source/instruction/offset.rs's enumeration of exactly which
// variants carry a branch offset; used by the label collector to find
// every branch target in a code item without re-decoding.
func BranchOffset(i Instruction) (int64, bool) {
	switch v := i.(type) {
	case Goto:
		return int64(v.Offset), true
	case Goto16:
		return int64(v.Offset), true
	case IfEq:
		return int64(v.Offset), true
	case IfNe:
		return int64(v.Offset), true
	case IfLt:
		return int64(v.Offset), true
	case IfGe:
		return int64(v.Offset), true
	case IfGt:
		return int64(v.Offset), true
	case IfLe:
		return int64(v.Offset), true
	case IfEqz:
		return int64(v.Offset), true
	case IfNez:
		return int64(v.Offset), true
	case IfLtz:
		return int64(v.Offset), true
	case IfGez:
		return int64(v.Offset), true
	case IfGtz:
		return int64(v.Offset), true
	case IfLez:
		return int64(v.Offset), true
	case Goto32:
		return int64(v.Offset), true
	case PackedSwitch:
		return int64(v.Offset), true
	case SparseSwitch:
		return int64(v.Offset), true
	case FillArrayData:
		return int64(v.Offset), true
	default:
		return 0, false
	}
}
