// Command offset prints the offset of every field of the packed record and
// the running size if no padding existed, then the record's final size.
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

	if _, err := report.Run(report.NewPlain(out), record.Packed()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	if err := out.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
