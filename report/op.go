package report

// Op tags a trace line with the kind of operation it describes.
type Op byte

const (
	OpAccess  Op = 'A' // memory access at a field
	OpPadding Op = 'P' // filler bytes inserted by the compiler
	OpOffset  Op = 'O' // field offset computed
	OpFinal   Op = 'S' // final record size
)

// statusWidth is the column width of the status label in a trace line.
const statusWidth = 18

var statusLabels = map[Op]string{
	OpAccess:  "MEMORY ACCESS",
	OpPadding: "PADDING INSERTED",
	OpOffset:  "OFFSET COMPUTED",
	OpFinal:   "FINAL SIZE",
}

// Status returns the fixed label for op.
func (op Op) Status() string {
	if s, ok := statusLabels[op]; ok {
		return s
	}
	return "UNKNOWN"
}

func (op Op) String() string {
	return string(rune(op))
}
