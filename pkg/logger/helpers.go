package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Icons and symbols for different log types
const (
	IconSuccess = "✅"
	IconError   = "❌"
	IconWarning = "⚠️"
	IconConfig  = "⚙️"
	IconWind    = "💨"
	IconSolar   = "☀️"
	IconEV      = "🔋"
	IconSave    = "💾"
	IconDelete  = "🗑️"
	IconRun     = "▶️"
	IconRefresh = "🔄"
)

var (
	sectionColor = color.New(color.FgCyan, color.Bold)
	subColor     = color.New(color.FgHiBlack)
	keyColor     = color.New(color.FgCyan)
	headerColor  = color.New(color.Bold)
)

// Success logs a success message with a green checkmark
func Success(args ...interface{}) {
	Info(IconSuccess + " " + fmt.Sprint(args...))
}

// Successf logs a formatted success message
func Successf(format string, args ...interface{}) {
	Success(fmt.Sprintf(format, args...))
}

// Progress logs a progress message with a refresh icon
func Progress(args ...interface{}) {
	Info(IconRefresh + " " + fmt.Sprint(args...))
}

// Progressf logs a formatted progress message
func Progressf(format string, args ...interface{}) {
	Progress(fmt.Sprintf(format, args...))
}

// LogSection creates a visual section separator
func LogSection(title string) {
	line := strings.Repeat("=", 50)
	w := output()
	_, _ = sectionColor.Fprintln(w, line)
	_, _ = sectionColor.Fprintln(w, title)
	_, _ = sectionColor.Fprintln(w, line)
}

// LogSubSection creates a visual subsection separator
func LogSubSection(title string) {
	line := strings.Repeat("-", 40)
	w := output()
	_, _ = subColor.Fprintln(w, line)
	_, _ = subColor.Fprintln(w, title)
	_, _ = subColor.Fprintln(w, line)
}

// LogKeyValue logs a key-value pair with nice formatting
func LogKeyValue(key string, value interface{}) {
	w := output()
	_, _ = keyColor.Fprintf(w, "%s:", key)
	_, _ = fmt.Fprintf(w, " %v\n", value)
}

// Table represents a simple table for logging
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a new table
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		rows:    [][]string{},
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(values ...string) {
	t.rows = append(t.rows, values)
}

// Print prints the table
func (t *Table) Print() {
	if len(t.headers) == 0 {
		return
	}
	w := output()

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	for i, h := range t.headers {
		_, _ = headerColor.Fprintf(w, "%-*s  ", widths[i], h)
	}
	_, _ = fmt.Fprintln(w)

	for i := range t.headers {
		_, _ = fmt.Fprint(w, strings.Repeat("-", widths[i])+"  ")
	}
	_, _ = fmt.Fprintln(w)

	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				_, _ = fmt.Fprintf(w, "%-*s  ", widths[i], cell)
			}
		}
		_, _ = fmt.Fprintln(w)
	}
}
