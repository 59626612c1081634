package report

import "github.com/wippyai/structlayout/record"

// Policy decides how the accumulator advances past a field.
type Policy int

const (
	// PolicySum adds the field size to the accumulator.
	PolicySum Policy = iota
	// PolicyOffsetEnd sets the accumulator to the end of the field.
	PolicyOffsetEnd
)

func (p Policy) String() string {
	switch p {
	case PolicySum:
		return "sum"
	case PolicyOffsetEnd:
		return "offset-end"
	default:
		return "unknown"
	}
}

// Next returns the accumulator after f.
func (p Policy) Next(acc uintptr, f record.Field) uintptr {
	if p == PolicyOffsetEnd {
		return f.Offset + f.Size
	}
	return acc + f.Size
}

// Step is one field together with the accumulator after it.
type Step struct {
	Field       record.Field
	Padding     uintptr
	Accumulated uintptr
}

// Walk applies p over the fields of l, starting from zero.
func Walk(l record.Layout, p Policy) []Step {
	steps := make([]Step, len(l.Fields))
	var acc uintptr
	for i, f := range l.Fields {
		acc = p.Next(acc, f)
		steps[i] = Step{
			Field:       f,
			Padding:     l.Padding(i),
			Accumulated: acc,
		}
	}
	return steps
}
