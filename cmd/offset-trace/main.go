// Command offset-trace prints one trace line per field of the naturally
// aligned record and a final line with the record's size.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/wippyai/structlayout/record"
	"github.com/wippyai/structlayout/report"
)

func main() {
	out := bufio.NewWriter(os.Stdout)

	if _, err := report.Run(report.NewTrace(out), record.Natural()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	if err := out.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
