package report

import (
	"fmt"
	"io"

	"github.com/wippyai/structlayout/errors"
	"github.com/wippyai/structlayout/record"
)

// Trace prints one structured line per operation.
type Trace struct {
	w       io.Writer
	padding bool
}

// TraceOption configures a Trace reporter.
type TraceOption func(*Trace)

// WithPadding makes Run emit a padding line for every gap in the layout.
func WithPadding() TraceOption {
	return func(t *Trace) {
		t.padding = true
	}
}

// NewTrace returns a Trace reporter writing to w.
func NewTrace(w io.Writer, opts ...TraceOption) *Trace {
	t := &Trace{w: w}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Line writes a single trace line.
func (t *Trace) Line(op Op, offset, size uintptr, label string) error {
	_, err := fmt.Fprintf(t.w, "[TRACE] %c -> %-*s [OFFSET: 0x%02X] | [SIZE: %d] %s\n",
		byte(op), statusWidth, op.Status(), offset, size, label)
	if err != nil {
		return errors.New(errors.PhaseReport, errors.KindWrite).
			Path(label).
			Detail("%s trace line", op.Status()).
			Cause(err).
			Build()
	}
	return nil
}

func (t *Trace) Field(_ uintptr, f record.Field) (uintptr, error) {
	if err := t.Line(OpOffset, f.Offset, f.Size, f.Name); err != nil {
		return 0, err
	}
	return PolicyOffsetEnd.Next(0, f), nil
}

// Final reports the record size as both offset and size.
func (t *Trace) Final(l record.Layout) error {
	return t.Line(OpFinal, l.Size, l.Size, l.TypeName)
}

// Access reports a memory access of size bytes at offset.
func (t *Trace) Access(offset, size uintptr, label string) error {
	return t.Line(OpAccess, offset, size, label)
}

// Padding reports size filler bytes starting at offset.
func (t *Trace) Padding(offset, size uintptr, label string) error {
	return t.Line(OpPadding, offset, size, label)
}

func (t *Trace) showsPadding() bool {
	return t.padding
}
