package record

import (
	"bytes"
	"reflect"
	"testing"
)

func TestPackedLayout(t *testing.T) {
	l := Packed()

	wantOffs := []uintptr{0, 2, 4, 8}
	wantSizes := []uintptr{2, 2, 4, 4}
	wantNames := []string{NameA, NameB, NameC, NameD}

	if len(l.Fields) != 4 {
		t.Fatalf("fields: got %d, want 4", len(l.Fields))
	}
	for i, f := range l.Fields {
		if f.Name != wantNames[i] {
			t.Errorf("field %d name: got %q, want %q", i, f.Name, wantNames[i])
		}
		if f.Offset != wantOffs[i] {
			t.Errorf("%s offset: got %d, want %d", f.Name, f.Offset, wantOffs[i])
		}
		if f.Size != wantSizes[i] {
			t.Errorf("%s size: got %d, want %d", f.Name, f.Size, wantSizes[i])
		}
		if f.Align != 1 {
			t.Errorf("%s align: got %d, want 1", f.Name, f.Align)
		}
		if l.Padding(i) != 0 {
			t.Errorf("%s padding: got %d, want 0", f.Name, l.Padding(i))
		}
	}
	if l.Size != 12 {
		t.Errorf("size: got %d, want 12", l.Size)
	}
	if l.Size != l.FieldSum() {
		t.Errorf("packed size %d != field sum %d", l.Size, l.FieldSum())
	}
	if l.TrailingPadding() != 0 {
		t.Errorf("trailing padding: got %d, want 0", l.TrailingPadding())
	}
}

func TestPackedOffsetsChain(t *testing.T) {
	l := Packed()
	for i := 1; i < len(l.Fields); i++ {
		prev := l.Fields[i-1]
		if l.Fields[i].Offset != prev.Offset+prev.Size {
			t.Errorf("%s offset %d, want %s offset + size = %d",
				l.Fields[i].Name, l.Fields[i].Offset, prev.Name, prev.Offset+prev.Size)
		}
	}
}

func TestNaturalLayout(t *testing.T) {
	l := Natural()

	c, ok := l.Field(NameC)
	if !ok {
		t.Fatal("field_c missing")
	}
	if c.Offset%c.Align != 0 {
		t.Errorf("field_c offset %d not aligned to %d", c.Offset, c.Align)
	}
	if c.Align != 4 {
		t.Errorf("field_c align: got %d, want 4", c.Align)
	}

	var widest uintptr
	for _, f := range l.Fields {
		if f.Align > widest {
			widest = f.Align
		}
	}
	if l.Size%widest != 0 {
		t.Errorf("size %d not a multiple of widest alignment %d", l.Size, widest)
	}
	if l.Size < l.FieldSum() {
		t.Errorf("size %d smaller than field sum %d", l.Size, l.FieldSum())
	}

	// Padding before each field plus the field sizes account for every byte.
	var total uintptr
	for i, f := range l.Fields {
		total += l.Padding(i) + f.Size
	}
	total += l.TrailingPadding()
	if total != l.Size {
		t.Errorf("padding + sizes = %d, want %d", total, l.Size)
	}
}

// The unsafe-built table must agree with what reflect reports for the type.
func TestNaturalMatchesReflect(t *testing.T) {
	l := Natural()
	typ := reflect.TypeOf(Record{})

	var i int
	for j := 0; j < typ.NumField(); j++ {
		sf := typ.Field(j)
		if sf.Name == "_" {
			continue
		}
		f := l.Fields[i]
		if f.Offset != sf.Offset {
			t.Errorf("%s offset: got %d, reflect says %d", f.Name, f.Offset, sf.Offset)
		}
		if f.Size != sf.Type.Size() {
			t.Errorf("%s size: got %d, reflect says %d", f.Name, f.Size, sf.Type.Size())
		}
		i++
	}
	if i != len(l.Fields) {
		t.Errorf("reflect saw %d fields, table has %d", i, len(l.Fields))
	}
	if l.Size != typ.Size() {
		t.Errorf("size: got %d, reflect says %d", l.Size, typ.Size())
	}
}

func TestCanonicalLayout(t *testing.T) {
	l := Canonical()

	wantOffs := []uintptr{0, 2, 4, 8}
	for i, f := range l.Fields {
		if f.Offset != wantOffs[i] {
			t.Errorf("%s offset: got %d, want %d", f.Name, f.Offset, wantOffs[i])
		}
	}
	if l.Size != 12 {
		t.Errorf("size: got %d, want 12", l.Size)
	}
	if l.Align != 4 {
		t.Errorf("align: got %d, want 4", l.Align)
	}
}

func TestLayoutsAreCopies(t *testing.T) {
	l := Packed()
	l.Fields[0].Offset = 99

	if Packed().Fields[0].Offset != 0 {
		t.Error("mutating a returned layout changed the shared table")
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"packed", "natural", "canonical"} {
		l, ok := ByName(name)
		if !ok {
			t.Errorf("ByName(%q) not found", name)
			continue
		}
		if l.Name != name {
			t.Errorf("ByName(%q).Name = %q", name, l.Name)
		}
	}
	if _, ok := ByName("aligned"); ok {
		t.Error("ByName(aligned) should not exist")
	}
}

func TestPadding(t *testing.T) {
	l := Layout{
		Fields: []Field{
			{Name: "a", Offset: 0, Size: 1, Align: 1},
			{Name: "b", Offset: 4, Size: 4, Align: 4},
			{Name: "c", Offset: 8, Size: 1, Align: 1},
		},
		Size:  12,
		Align: 4,
	}

	want := []uintptr{0, 3, 0}
	for i, w := range want {
		if got := l.Padding(i); got != w {
			t.Errorf("Padding(%d) = %d, want %d", i, got, w)
		}
	}
	if got := l.Padding(7); got != 0 {
		t.Errorf("Padding(7) = %d, want 0", got)
	}
	if got := l.TrailingPadding(); got != 3 {
		t.Errorf("TrailingPadding() = %d, want 3", got)
	}
	if got := l.FieldSum(); got != 6 {
		t.Errorf("FieldSum() = %d, want 6", got)
	}
}

func TestPackRoundTrip(t *testing.T) {
	r := Sample()
	p := Pack(r)

	if got := p.Unpack(); got != r {
		t.Errorf("Unpack() = %+v, want %+v", got, r)
	}

	want := []byte{
		0xA2, 0xA1,
		0xB2, 0xB1,
		0x3C, 0x2C, 0x1C, 0x0C,
		0xA2, 0xB2, 0xC2, 0xD2,
	}
	if got := p.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("Bytes() = % x, want % x", got, want)
	}
}

func TestValues(t *testing.T) {
	got := Values(Sample())
	want := []uint64{0xA1A2, 0xB1B2, 0x0C1C2C3C, 0xD2C2B2A2}
	if len(got) != len(want) {
		t.Fatalf("len: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d: got 0x%x, want 0x%x", i, got[i], want[i])
		}
	}
}
