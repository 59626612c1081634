// Command inspect shows the packed, natural and canonical layouts of the
// record side by side, optionally verified in wasm linear memory.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/structlayout/probe"
	"github.com/wippyai/structlayout/record"
	"github.com/wippyai/structlayout/report"
)

func main() {
	var (
		layoutName = flag.String("layout", "", "Layout to show: packed, natural or canonical (default all)")
		mode       = flag.String("mode", "table", "Output mode: plain, trace or table")
		padding    = flag.Bool("padding", false, "Emit padding lines in trace mode")
		withProbe  = flag.Bool("probe", false, "Verify each layout in wasm linear memory")
		verbose    = flag.Bool("v", false, "Debug logging to stderr")
	)
	flag.Parse()

	if *verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()
		report.SetLogger(log.Named("report"))
		probe.SetLogger(log.Named("probe"))
	}

	layouts, err := selectLayouts(*layoutName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Usage: inspect [-layout packed|natural|canonical] [-mode plain|trace|table] [-padding] [-probe] [-v]")
		os.Exit(2)
	}

	if err := run(os.Stdout, layouts, *mode, *padding, *withProbe); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func selectLayouts(name string) ([]record.Layout, error) {
	if name == "" {
		return record.Layouts(), nil
	}
	l, ok := record.ByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown layout %q", name)
	}
	return []record.Layout{l}, nil
}

func run(out *os.File, layouts []record.Layout, mode string, padding, withProbe bool) error {
	ctx := context.Background()

	switch mode {
	case "plain", "trace":
		return writeReports(out, layouts, mode, padding)

	case "table":
		if term.IsTerminal(int(out.Fd())) {
			return runInteractive(layouts, withProbe)
		}
		var results map[string]error
		if withProbe {
			var err error
			results, err = probeLayouts(ctx, layouts)
			if err != nil {
				return err
			}
		}
		_, err := io.WriteString(out, renderStatic(layouts, results))
		return err

	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

func writeReports(w io.Writer, layouts []record.Layout, mode string, padding bool) error {
	for i, l := range layouts {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}

		var r report.Reporter
		if mode == "plain" {
			r = report.NewPlain(w)
		} else {
			var opts []report.TraceOption
			if padding {
				opts = append(opts, report.WithPadding())
			}
			r = report.NewTrace(w, opts...)
		}

		if _, err := report.Run(r, l); err != nil {
			return fmt.Errorf("%s layout: %w", l.Name, err)
		}
	}
	return nil
}

// probeLayouts verifies every layout in one probe. A layout that fails
// verification maps to its error; only a probe that cannot start is fatal.
func probeLayouts(ctx context.Context, layouts []record.Layout) (map[string]error, error) {
	p, err := probe.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("start probe: %w", err)
	}
	defer p.Close(ctx)

	values := record.Values(record.Sample())
	results := make(map[string]error, len(layouts))
	for _, l := range layouts {
		results[l.Name] = p.Verify(l, values)
	}
	return results, nil
}
