package probe

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/wippyai/structlayout/errors"
	"github.com/wippyai/structlayout/record"
	"github.com/wippyai/structlayout/report"
)

func newProbe(t *testing.T, opts ...Option) *Probe {
	t.Helper()
	ctx := context.Background()
	p, err := New(ctx, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { p.Close(ctx) })
	return p
}

func TestNewMemorySize(t *testing.T) {
	p := newProbe(t)
	if got := p.MemorySize(); got != 65536 {
		t.Errorf("memory size: got %d, want 65536", got)
	}
}

func TestVerifyLayouts(t *testing.T) {
	p := newProbe(t)
	values := record.Values(record.Sample())

	for _, l := range record.Layouts() {
		t.Run(l.Name, func(t *testing.T) {
			if err := p.Verify(l, values); err != nil {
				t.Errorf("Verify: %v", err)
			}
		})
	}
}

func TestPackedSnapshotMatchesBytes(t *testing.T) {
	p := newProbe(t)
	r := record.Sample()
	l := record.Packed()

	if err := p.Store(128, l, record.Values(r)); err != nil {
		t.Fatalf("Store: %v", err)
	}
	got, err := p.Snapshot(128, l)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if want := record.Pack(r).Bytes(); !bytes.Equal(got, want) {
		t.Errorf("snapshot % x, want % x", got, want)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	p := newProbe(t)
	l := record.Natural()
	values := record.Values(record.Sample())

	if err := p.Store(64, l, values); err != nil {
		t.Fatalf("Store: %v", err)
	}
	got, err := p.Load(64, l)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for i := range values {
		if got[i] != values[i] {
			t.Errorf("%s: got 0x%x, want 0x%x", l.Fields[i].Name, got[i], values[i])
		}
	}
}

func TestStoreOutOfBounds(t *testing.T) {
	p := newProbe(t)
	target := &errors.Error{Phase: errors.PhaseProbe, Kind: errors.KindOutOfBounds}

	tests := []struct {
		name string
		base uint32
	}{
		{"past_end", 65536 - 4},
		{"at_end", 65536},
		{"wraps", 0xFFFFFFF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Store(tt.base, record.Packed(), record.Values(record.Sample()))
			if !stderrors.Is(err, target) {
				t.Errorf("Store at %d: got %v, want out of bounds", tt.base, err)
			}
		})
	}

	if _, err := p.Snapshot(65530, record.Packed()); !stderrors.Is(err, target) {
		t.Errorf("Snapshot: got %v, want out of bounds", err)
	}
}

func TestStoreValueCount(t *testing.T) {
	p := newProbe(t)
	err := p.Store(0, record.Packed(), []uint64{1, 2})
	target := &errors.Error{Phase: errors.PhaseProbe, Kind: errors.KindMismatch}
	if !stderrors.Is(err, target) {
		t.Errorf("got %v, want mismatch", err)
	}
}

func TestVerifyOverlap(t *testing.T) {
	p := newProbe(t)

	// b overwrites the upper half of a.
	l := record.Layout{
		Name:     "overlap",
		TypeName: "Overlap",
		Fields: []record.Field{
			{Name: "a", Offset: 0, Size: 4, Align: 4},
			{Name: "b", Offset: 2, Size: 4, Align: 2},
		},
		Size:  8,
		Align: 4,
	}

	err := p.Verify(l, []uint64{0x11223344, 0x55667788})
	if err == nil {
		t.Fatal("expected mismatch")
	}
	errs := multierr.Errors(err)
	if len(errs) != 1 {
		t.Fatalf("mismatches: got %d, want 1", len(errs))
	}
	var e *errors.Error
	if !stderrors.As(errs[0], &e) {
		t.Fatalf("error %T is not *errors.Error", errs[0])
	}
	if e.Kind != errors.KindMismatch || e.Path[1] != "a" || e.Layout != "overlap" {
		t.Errorf("unexpected error %v", e)
	}
}

func TestUnsupportedFieldSize(t *testing.T) {
	p := newProbe(t)
	l := record.Layout{
		TypeName: "Odd",
		Fields:   []record.Field{{Name: "x", Offset: 0, Size: 3, Align: 1}},
		Size:     3,
		Align:    1,
	}
	err := p.Store(0, l, []uint64{1})
	target := &errors.Error{Phase: errors.PhaseProbe, Kind: errors.KindUnsupported}
	if !stderrors.Is(err, target) {
		t.Errorf("got %v, want unsupported", err)
	}
}

func TestTraceAccess(t *testing.T) {
	var buf bytes.Buffer
	p := newProbe(t, WithTrace(report.NewTrace(&buf)))

	if err := p.Store(16, record.Packed(), record.Values(record.Sample())); err != nil {
		t.Fatalf("Store: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines: got %d, want 4\n%s", len(lines), buf.String())
	}
	want := "[TRACE] A -> MEMORY ACCESS      [OFFSET: 0x14] | [SIZE: 4] field_c"
	if lines[2] != want {
		t.Errorf("got %q, want %q", lines[2], want)
	}
}
