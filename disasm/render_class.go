package disasm

import (
	"fmt"

	"github.com/arloliu/dex2smali/accessflag"
	"github.com/arloliu/dex2smali/classdata"
	"github.com/arloliu/dex2smali/code"
	"github.com/arloliu/dex2smali/dex"
	"github.com/arloliu/dex2smali/instr"
	"github.com/arloliu/dex2smali/internal/bufpool"
	"github.com/arloliu/dex2smali/internal/deschash"
	"github.com/arloliu/dex2smali/pool"
	"github.com/arloliu/dex2smali/sink"
)

// noIndex is the DEX NO_INDEX sentinel (spec.md §6): a superclass_idx or
// source_file_idx of this value means "absent," and must never be
// dereferenced as a real pool index.
const noIndex = 0xFFFFFFFF

// renderClass emits one class's full smali text to a sink opened from
// factory, following spec.md §4.7's envelope. If the class's own name
// cannot be resolved, the class is skipped with a single Diagnostic. Any
// later failure (the superclass, its ClassDataItem, a field, a method's
// CodeItem) is recorded as a Diagnostic and renderClass moves on to the
// next independent unit of work rather than aborting the whole class.
func renderClass(d *dex.Dex, cd pool.ClassDef, factory sink.Factory, cache *deschash.Cache) []Diagnostic {
	p := &cachingPool{d: d, cache: cache}

	descriptor, err := d.Type(uint16(cd.ClassIdx))
	if err != nil {
		return []Diagnostic{{ClassDescriptor: fmt.Sprintf("class_idx=%d", cd.ClassIdx), Stage: "class", Detail: err.Error()}}
	}

	var diags []Diagnostic
	note := func(stage, detail string) {
		diags = append(diags, Diagnostic{ClassDescriptor: descriptor, Stage: stage, Detail: detail})
	}

	buf := bufpool.GetClassBuffer()
	defer bufpool.PutClassBuffer(buf)

	flags := accessflag.Project(accessflag.Flags(cd.AccessFlags), accessflag.ContextClass)
	fmt.Fprintf(buf, ".class %s %s\n", flags, descriptor)

	if cd.SuperclassIdx != noIndex {
		super, err := d.Type(uint16(cd.SuperclassIdx))
		if err != nil {
			note("super", err.Error())
		} else {
			fmt.Fprintf(buf, ".super %s\n", super)
		}
	}

	item, err := d.ClassDataAt(cd.ClassDataOff)
	if err != nil {
		note("class_data", err.Error())
		item = &classdata.ClassDataItem{}
	}

	for _, f := range append(append([]classdata.EncodedField{}, item.StaticFields...), item.InstanceFields...) {
		renderField(buf, d, f, note)
	}

	for _, m := range item.DirectMethods {
		renderMethod(buf, d, p, m, note)
	}
	for _, m := range item.VirtualMethods {
		renderMethod(buf, d, p, m, note)
	}

	w, err := factory.Open(descriptor)
	if err != nil {
		note("sink", err.Error())
		return diags
	}
	defer w.Close()

	if _, err := w.Write(buf.Bytes()); err != nil {
		note("sink", err.Error())
	}

	return diags
}

func renderField(buf *bufpool.Buffer, d *dex.Dex, f classdata.EncodedField, note func(stage, detail string)) {
	if int(f.FieldIdx) >= len(d.FieldIDs) {
		note("field", fmt.Sprintf("field_idx %d out of range", f.FieldIdx))
		return
	}
	fid := d.FieldIDs[f.FieldIdx]
	name, err := d.String(fid.NameIdx)
	if err != nil {
		note("field", err.Error())
		return
	}
	typ, err := d.Type(fid.TypeIdx)
	if err != nil {
		note("field", err.Error())
		return
	}
	fmt.Fprintf(buf, ".field %s:%s\n", name, typ)
}

func renderMethod(buf *bufpool.Buffer, d *dex.Dex, p instr.Pool, m classdata.EncodedMethod, note func(stage, detail string)) {
	if int(m.MethodIdx) >= len(d.MethodIDs) {
		note("method", fmt.Sprintf("method_idx %d out of range", m.MethodIdx))
		return
	}
	mid := d.MethodIDs[m.MethodIdx]
	name, err := d.String(mid.NameIdx)
	if err != nil {
		note("method", err.Error())
		return
	}
	proto, err := d.ProtoRef(mid.ProtoIdx)
	if err != nil {
		note("method", err.Error())
		return
	}
	flags := accessflag.Project(accessflag.Flags(m.AccessFlags), accessflag.ContextMethod)

	fmt.Fprintf(buf, ".method %s %s%s\n", flags, name, proto)

	if m.CodeOff != 0 {
		item, codeDiags, err := d.CodeItemAt(m.CodeOff)
		if err != nil {
			note("code_item", err.Error())
		} else {
			for _, cd := range codeDiags {
				note("code_item", cd.Detail)
			}
			renderInstructions(buf, p, item)
		}
	}

	fmt.Fprintf(buf, ".end method\n")
}

func renderInstructions(buf *bufpool.Buffer, p instr.Pool, item *code.Item) {
	for _, decoded := range item.Instructions {
		if label, ok := item.Labels.Label(decoded.PC); ok {
			fmt.Fprintf(buf, "    :%s\n", label)
		}
		text, err := instr.Render(decoded.Inst, p, decoded.PC, item.Labels)
		if err != nil {
			fmt.Fprintf(buf, "    # error rendering instruction at %d: %v\n", decoded.PC, err)
			continue
		}
		fmt.Fprintf(buf, "    %s\n", text)
	}
}
