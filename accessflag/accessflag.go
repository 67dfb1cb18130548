// Package accessflag projects the DEX access_flags bitset into its
// mnemonic form.
package accessflag

import "strings"

// Flags is the 32-bit access_flags bitset attached to classes, fields, and
// methods.
type Flags uint32

const (
	Public               Flags = 0x1
	Private              Flags = 0x2
	Protected            Flags = 0x4
	Static               Flags = 0x8
	Final                Flags = 0x10
	Synchronized         Flags = 0x20
	Volatile             Flags = 0x40 // field context
	Bridge               Flags = 0x40 // method context
	Transient            Flags = 0x80 // field context
	Varargs              Flags = 0x80 // method context
	Native               Flags = 0x100
	Interface            Flags = 0x200
	Abstract             Flags = 0x400
	Strict               Flags = 0x800
	Synthetic            Flags = 0x1000
	Annotation           Flags = 0x2000
	Enum                 Flags = 0x4000
	Constructor          Flags = 0x10000
	DeclaredSynchronized Flags = 0x20000
)

// Context disambiguates the overloaded 0x40 (Volatile/Bridge) and 0x80
// (Transient/Varargs) bits, per spec.md §9's Open Question: the bit
// positions are reused between field and method declarations with
// different meanings, and the core cannot recover which was meant without
// a caller-supplied hint.
type Context int

const (
	ContextField Context = iota
	ContextMethod
	ContextClass
)

// Project renders flags as a deterministic, space-separated mnemonic
// list in the enumeration order of spec.md §4.6. ctx resolves the 0x40
// and 0x80 overloads.
func Project(flags Flags, ctx Context) string {
	var mnemonics []string
	add := func(bit Flags, name string) {
		if flags&bit != 0 {
			mnemonics = append(mnemonics, name)
		}
	}

	add(Public, "public")
	add(Private, "private")
	add(Protected, "protected")
	add(Static, "static")
	add(Final, "final")
	add(Synchronized, "synchronized")

	if flags&0x40 != 0 {
		switch ctx {
		case ContextMethod:
			mnemonics = append(mnemonics, "bridge")
		default:
			mnemonics = append(mnemonics, "volatile")
		}
	}
	if flags&0x80 != 0 {
		switch ctx {
		case ContextMethod:
			mnemonics = append(mnemonics, "varargs")
		default:
			mnemonics = append(mnemonics, "transient")
		}
	}

	add(Native, "native")
	add(Interface, "interface")
	add(Abstract, "abstract")
	add(Strict, "strictfp")
	add(Synthetic, "synthetic")
	add(Annotation, "annotation")
	add(Enum, "enum")
	add(Constructor, "constructor")
	add(DeclaredSynchronized, "declared-synchronized")

	return strings.Join(mnemonics, " ")
}
