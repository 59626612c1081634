package report

import (
	"go.uber.org/zap"

	"github.com/wippyai/structlayout/record"
)

// Reporter writes one report entry per field and a final size entry.
type Reporter interface {
	// Field reports f and returns the accumulator after it.
	Field(acc uintptr, f record.Field) (uintptr, error)
	// Final reports the compiler-computed size of the record.
	Final(l record.Layout) error
}

// paddingReporter is implemented by reporters that can show gaps.
type paddingReporter interface {
	showsPadding() bool
	Padding(at, size uintptr, label string) error
}

// Run reports every field of l in declaration order, then the final size.
// It returns the accumulator after the last field.
func Run(r Reporter, l record.Layout) (uintptr, error) {
	pr, ok := r.(paddingReporter)
	showPadding := ok && pr.showsPadding()

	var acc uintptr
	for i, f := range l.Fields {
		if showPadding {
			if pad := l.Padding(i); pad > 0 {
				if err := pr.Padding(f.Offset-pad, pad, "before "+f.Name); err != nil {
					return acc, err
				}
			}
		}

		next, err := r.Field(acc, f)
		if err != nil {
			return acc, err
		}
		Logger().Debug("field reported",
			zap.String("layout", l.Name),
			zap.String("field", f.Name),
			zap.Uintptr("offset", f.Offset),
			zap.Uintptr("size", f.Size),
			zap.Uintptr("acc", next))
		acc = next
	}

	if showPadding {
		if pad := l.TrailingPadding(); pad > 0 {
			if err := pr.Padding(l.Size-pad, pad, "after "+l.TypeName); err != nil {
				return acc, err
			}
		}
	}

	if err := r.Final(l); err != nil {
		return acc, err
	}
	Logger().Debug("final size reported",
		zap.String("layout", l.Name),
		zap.Uintptr("size", l.Size),
		zap.Uintptr("acc", acc))
	return acc, nil
}
