package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const maxCellWidth = 40

// writeTable prints rows under header with columns padded to display width,
// so wide and combining characters in sheet terms stay aligned.
func writeTable(out io.Writer, header []string, rows [][]string) {
	widths := make([]int, len(header))
	cell := func(row []string, i int) string {
		if i >= len(row) {
			return ""
		}
		return runewidth.Truncate(row[i], maxCellWidth, "...")
	}
	measure := func(row []string) {
		for i := range widths {
			if w := runewidth.StringWidth(cell(row, i)); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(header)
	for _, r := range rows {
		measure(r)
	}

	line := func(row []string) {
		parts := make([]string, len(widths))
		for i, w := range widths {
			parts[i] = runewidth.FillRight(cell(row, i), w)
		}
		_, _ = fmt.Fprintln(out, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	line(header)
	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}
	line(rule)
	for _, r := range rows {
		line(r)
	}
}
