// Package code parses code_item (the method body header plus its
// instruction stream) and builds the per-method label set that instr's
// renderer needs for branch targets. Per spec.md §4.5, the try/handler
// tables that may follow the instruction stream are a declared non-goal
// and are never read by this package.
package code

import (
	"fmt"
	"sort"

	"github.com/arloliu/dex2smali/dexerr"
	"github.com/arloliu/dex2smali/instr"
	"github.com/arloliu/dex2smali/leb128"
)

const headerSize = 16

// Item is a fully decoded code_item: its fixed header, the instructions
// successfully decoded from its instruction stream, and the label set
// covering every branch target those instructions reach.
type Item struct {
	RegistersSize uint16
	InsSize       uint16
	OutsSize      uint16
	TriesSize     uint16
	DebugInfoOff  uint32
	InsnsSize     uint32 // in 16-bit code units

	Instructions []instr.Decoded
	Labels       *Labels
}

// Diagnostic records a problem found while parsing a code_item that did
// not stop the whole method: an instruction decode failure (the method's
// instruction list ends at that point) or an out-of-range branch target.
type Diagnostic struct {
	Detail string
}

func (d Diagnostic) String() string { return d.Detail }

// Labels maps an absolute byte offset within a code_item's instruction
// stream to its assigned label name, per spec.md §4.5's two-pass
// construction: collect every branch target, then assign ascending ids
// to the sorted distinct targets.
type Labels struct {
	names map[int]string
}

// Label implements instr.LabelSet.
func (l *Labels) Label(targetPC int) (string, bool) {
	name, ok := l.names[targetPC]
	return name, ok
}

// ParseCodeItem decodes the fixed 16-byte code_item header starting at
// buf[0], then the insns_size instruction-unit stream that follows, and
// builds the method's label set. Instruction decode failures stop the
// method's instruction list at that point (spec.md §4.4/§7) rather than
// failing the whole parse; that is reported via the returned Diagnostic
// slice, not an error.
func ParseCodeItem(buf []byte) (*Item, []Diagnostic, error) {
	if len(buf) < headerSize {
		return nil, nil, dexerr.NewTruncated("code_item header", headerSize, len(buf))
	}

	item := &Item{
		RegistersSize: le16(buf, 0),
		InsSize:       le16(buf, 2),
		OutsSize:      le16(buf, 4),
		TriesSize:     le16(buf, 6),
		DebugInfoOff:  le32(buf, 8),
		InsnsSize:     le32(buf, 12),
	}

	streamBytes := int(item.InsnsSize) * 2
	if len(buf) < headerSize+streamBytes {
		return nil, nil, dexerr.NewTruncated("insns", streamBytes, len(buf)-headerSize)
	}
	stream := buf[headerSize : headerSize+streamBytes]

	var diags []Diagnostic
	decoded, decodeDiag := instr.DecodeStream(stream)
	if decodeDiag != nil {
		diags = append(diags, Diagnostic{Detail: fmt.Sprintf(
			"instruction decode stopped at byte offset %d: %v", decodeDiag.PC, decodeDiag.Err)})
	}
	item.Instructions = decoded

	labels, rangeDiags := buildLabels(decoded, streamBytes)
	item.Labels = labels
	diags = append(diags, rangeDiags...)

	return item, diags, nil
}

func buildLabels(decoded []instr.Decoded, streamBytes int) (*Labels, []Diagnostic) {
	targetSet := map[int]struct{}{}
	for _, d := range decoded {
		offsetUnits, ok := instr.BranchOffset(d.Inst)
		if !ok {
			continue
		}
		target := d.PC + int(offsetUnits)*2
		targetSet[target] = struct{}{}
	}

	targets := make([]int, 0, len(targetSet))
	for t := range targetSet {
		targets = append(targets, t)
	}
	sort.Ints(targets)

	var diags []Diagnostic
	names := make(map[int]string, len(targets))
	for i, t := range targets {
		if t < 0 || t > streamBytes {
			diags = append(diags, Diagnostic{Detail: fmt.Sprintf(
				"branch target byte offset %d outside [0, %d]", t, streamBytes)})
		}
		names[t] = fmt.Sprintf("L%d", i)
	}

	return &Labels{names: names}, diags
}

func le16(buf []byte, off int) uint16 {
	v, _ := leb128.ReadU16LE(buf, off)
	return v
}

func le32(buf []byte, off int) uint32 {
	v, _ := leb128.ReadU32LE(buf, off)
	return v
}
