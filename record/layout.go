package record

import (
	"unsafe"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/structlayout/internal/layout"
)

// Field is the placement of one field inside a record.
type Field struct {
	Name   string
	Offset uintptr
	Size   uintptr
	Align  uintptr
}

// End returns the offset of the first byte after the field.
func (f Field) End() uintptr {
	return f.Offset + f.Size
}

// Layout is the complete placement of a record type.
type Layout struct {
	Name     string // packed, natural or canonical
	TypeName string
	Fields   []Field
	Size     uintptr
	Align    uintptr
}

// Padding returns the number of filler bytes between field i-1 and field i.
// For i == 0 it is the gap between the start of the record and field 0.
func (l Layout) Padding(i int) uintptr {
	if i < 0 || i >= len(l.Fields) {
		return 0
	}
	var prevEnd uintptr
	if i > 0 {
		prevEnd = l.Fields[i-1].End()
	}
	return l.Fields[i].Offset - prevEnd
}

// TrailingPadding returns the filler bytes after the last field.
func (l Layout) TrailingPadding() uintptr {
	if len(l.Fields) == 0 {
		return l.Size
	}
	return l.Size - l.Fields[len(l.Fields)-1].End()
}

// FieldSum returns the sum of field sizes, ignoring any padding.
func (l Layout) FieldSum() uintptr {
	var sum uintptr
	for _, f := range l.Fields {
		sum += f.Size
	}
	return sum
}

// Field returns the field with the given name.
func (l Layout) Field(name string) (Field, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

var (
	natural   = buildNatural()
	packed    = buildPacked()
	canonical = buildCanonical()
)

// Natural returns the layout of Record as chosen by the compiler.
func Natural() Layout {
	return natural.clone()
}

// Packed returns the layout of PackedRecord.
func Packed() Layout {
	return packed.clone()
}

// Canonical returns the Canonical ABI layout of the record when it is
// described as a WIT record and lowered into wasm32 linear memory.
func Canonical() Layout {
	return canonical.clone()
}

func (l Layout) clone() Layout {
	l.Fields = append([]Field(nil), l.Fields...)
	return l
}

func buildNatural() Layout {
	var r Record
	return Layout{
		Name:     "natural",
		TypeName: "Record",
		Fields: []Field{
			{NameA, unsafe.Offsetof(r.FieldA), unsafe.Sizeof(r.FieldA), unsafe.Alignof(r.FieldA)},
			{NameB, unsafe.Offsetof(r.FieldB), unsafe.Sizeof(r.FieldB), unsafe.Alignof(r.FieldB)},
			{NameC, unsafe.Offsetof(r.FieldC), unsafe.Sizeof(r.FieldC), unsafe.Alignof(r.FieldC)},
			{NameD, unsafe.Offsetof(r.FieldD), unsafe.Sizeof(r.FieldD), unsafe.Alignof(r.FieldD)},
		},
		Size:  unsafe.Sizeof(r),
		Align: unsafe.Alignof(r),
	}
}

func buildPacked() Layout {
	var p PackedRecord
	return Layout{
		Name:     "packed",
		TypeName: "PackedRecord",
		Fields: []Field{
			{NameA, unsafe.Offsetof(p.FieldA), unsafe.Sizeof(p.FieldA), unsafe.Alignof(p.FieldA)},
			{NameB, unsafe.Offsetof(p.FieldB), unsafe.Sizeof(p.FieldB), unsafe.Alignof(p.FieldB)},
			{NameC, unsafe.Offsetof(p.FieldC), unsafe.Sizeof(p.FieldC), unsafe.Alignof(p.FieldC)},
			{NameD, unsafe.Offsetof(p.FieldD), unsafe.Sizeof(p.FieldD), unsafe.Alignof(p.FieldD)},
		},
		Size:  unsafe.Sizeof(p),
		Align: unsafe.Alignof(p),
	}
}

// WITRecord returns the record as a WIT type definition.
func WITRecord() *wit.TypeDef {
	return &wit.TypeDef{
		Kind: &wit.Record{
			Fields: []wit.Field{
				{Name: NameA, Type: wit.U16{}},
				{Name: NameB, Type: wit.U16{}},
				{Name: NameC, Type: wit.S32{}},
				{Name: NameD, Type: wit.S32{}},
			},
		},
	}
}

func buildCanonical() Layout {
	info := layout.NewCalculator().Calculate(WITRecord())

	fields := make([]Field, len(info.Fields))
	for i, f := range info.Fields {
		fields[i] = Field{
			Name:   f.Name,
			Offset: uintptr(f.Offset),
			Size:   uintptr(f.Size),
			Align:  uintptr(f.Align),
		}
	}
	return Layout{
		Name:     "canonical",
		TypeName: "record",
		Fields:   fields,
		Size:     uintptr(info.Size),
		Align:    uintptr(info.Align),
	}
}

// Layouts returns every layout of the record, packed first.
func Layouts() []Layout {
	return []Layout{Packed(), Natural(), Canonical()}
}

// ByName returns the layout for "packed", "natural" or "canonical".
func ByName(name string) (Layout, bool) {
	for _, l := range Layouts() {
		if l.Name == name {
			return l, true
		}
	}
	return Layout{}, false
}
