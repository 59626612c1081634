package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/structlayout/record"
	"github.com/wippyai/structlayout/report"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#98FB98"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

var columnTitles = []string{"Field", "WIT", "Offset", "Size", "Align", "Pad", "Sum", "End"}

// fieldRows returns one row per field with both accumulator policies.
func fieldRows(l record.Layout) [][]string {
	sum := report.Walk(l, report.PolicySum)
	end := report.Walk(l, report.PolicyOffsetEnd)
	witTypes := witFieldTypes()

	rows := make([][]string, len(l.Fields))
	for i, f := range l.Fields {
		rows[i] = []string{
			f.Name,
			witTypes[f.Name],
			fmt.Sprintf("0x%02X", f.Offset),
			strconv.FormatUint(uint64(f.Size), 10),
			strconv.FormatUint(uint64(f.Align), 10),
			strconv.FormatUint(uint64(sum[i].Padding), 10),
			strconv.FormatUint(uint64(sum[i].Accumulated), 10),
			strconv.FormatUint(uint64(end[i].Accumulated), 10),
		}
	}
	return rows
}

func summary(l record.Layout) string {
	return fmt.Sprintf("%s: size %d, align %d, fields %d, trailing padding %d",
		l.TypeName, l.Size, l.Align, l.FieldSum(), l.TrailingPadding())
}

func probeStatus(err error) string {
	if err != nil {
		return errorStyle.Render("probe: " + err.Error())
	}
	return resultStyle.Render("probe: all fields round-trip")
}

// renderStatic draws every layout as a bordered table, for output that is
// not a terminal.
func renderStatic(layouts []record.Layout, probed map[string]error) string {
	var b strings.Builder
	for i, l := range layouts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(titleStyle.Render(l.Name))
		b.WriteString("\n")

		t := ltable.New().
			Border(lipgloss.NormalBorder()).
			Headers(columnTitles...).
			Rows(fieldRows(l)...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == ltable.HeaderRow {
					return headerStyle.Padding(0, 1)
				}
				return lipgloss.NewStyle().Padding(0, 1)
			})
		b.WriteString(t.String())
		b.WriteString("\n")
		b.WriteString(summary(l))
		b.WriteString("\n")

		if probed != nil {
			b.WriteString(probeStatus(probed[l.Name]))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func witFieldTypes() map[string]string {
	types := make(map[string]string)
	if rec, ok := record.WITRecord().Kind.(*wit.Record); ok {
		for _, f := range rec.Fields {
			types[f.Name] = witTypeStr(f.Type)
		}
	}
	return types
}

func witTypeStr(t wit.Type) string {
	switch t.(type) {
	case wit.U8:
		return "u8"
	case wit.S8:
		return "s8"
	case wit.U16:
		return "u16"
	case wit.S16:
		return "s16"
	case wit.U32:
		return "u32"
	case wit.S32:
		return "s32"
	case wit.U64:
		return "u64"
	case wit.S64:
		return "s64"
	default:
		return fmt.Sprintf("%T", t)
	}
}
