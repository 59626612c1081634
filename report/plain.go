package report

import (
	"fmt"
	"io"

	"github.com/wippyai/structlayout/errors"
	"github.com/wippyai/structlayout/record"
)

// Plain prints the offset of each field and the naive running size.
type Plain struct {
	w io.Writer
}

// NewPlain returns a Plain reporter writing to w.
func NewPlain(w io.Writer) *Plain {
	return &Plain{w: w}
}

func (p *Plain) Field(acc uintptr, f record.Field) (uintptr, error) {
	acc = PolicySum.Next(acc, f)
	_, err := fmt.Fprintf(p.w, "OFFSET OF %s: %d\nSIZE AFTER %s: %d (+%d)\n\n",
		f.Name, f.Offset, f.Name, acc, f.Size)
	if err != nil {
		return acc, errors.New(errors.PhaseReport, errors.KindWrite).
			Path(f.Name).
			Cause(err).
			Build()
	}
	return acc, nil
}

func (p *Plain) Final(l record.Layout) error {
	if _, err := fmt.Fprintf(p.w, "FINAL SIZE OF %s: %d\n", l.TypeName, l.Size); err != nil {
		return errors.New(errors.PhaseReport, errors.KindWrite).
			Path(l.TypeName).
			Layout(l.Name).
			Cause(err).
			Build()
	}
	return nil
}
