// Package output renders scan results for the static listing.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"goports/internal/netstat"
)

// Headers are the column titles shared by the static table and the TUI.
var Headers = []string{"Exe", "PID", "Local Address", "Remote Address", "Protocol"}

// TableOptions controls static table rendering.
type TableOptions struct {
	// NoHeader drops the header row.
	NoHeader bool
	// ExeWidth is the executable column width. Zero means DefaultExeWidth.
	ExeWidth int
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// styleCell styles a table with a header, which lipgloss reports as row 0.
func styleCell(row, col int) lipgloss.Style {
	if row == 0 {
		return headerStyle
	}
	return cellStyle
}

// Row formats one entry as table cells, in Headers order.
func Row(e netstat.Entry, exeWidth int) []string {
	if exeWidth == 0 {
		exeWidth = DefaultExeWidth
	}
	return []string{
		Sanitize(TruncateExe(e.Exe, exeWidth)),
		strconv.FormatUint(uint64(e.PID), 10),
		e.LocalAddr.String(),
		e.RemoteAddr.String(),
		e.Proto.String(),
	}
}

// WriteTable renders entries as a bordered table.
func WriteTable(w io.Writer, entries []netstat.Entry, opts TableOptions) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, Row(e, opts.ExeWidth))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Rows(rows...)
	if opts.NoHeader {
		t = t.BorderHeader(false).StyleFunc(func(row, col int) lipgloss.Style { return cellStyle })
	} else {
		t = t.Headers(Headers...).StyleFunc(styleCell)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// WriteJSON writes entries as an indented JSON array. A nil slice is written
// as [].
func WriteJSON(w io.Writer, entries []netstat.Entry) error {
	if entries == nil {
		entries = []netstat.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
