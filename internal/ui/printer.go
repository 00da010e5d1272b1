// Package ui renders sync outcomes as aligned, colored console lines.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chmouel/repoherd/internal/models"
	"github.com/chmouel/repoherd/internal/theme"
)

// Column widths match the original fixed-width progress format: counter,
// bracketed tag, repository path, note in parentheses.
const (
	counterWidth = 8
	tagWidth     = 9
	pathWidth    = 50
)

// Printer writes progress lines for a sync run.
type Printer struct {
	out    io.Writer
	styles theme.Styles
}

// NewPrinter returns a Printer writing to out. With colored false every
// style degrades to plain text.
func NewPrinter(out io.Writer, colored bool) *Printer {
	styles := theme.Plain()
	if colored {
		styles = theme.Default()
	}
	return &Printer{out: out, styles: styles}
}

// Header announces the total repository count before processing starts.
func (p *Printer) Header(total int) {
	banner := fmt.Sprintf("Processing %d repositories…", total)
	fmt.Fprintln(p.out, p.styles.Header.Render(banner))
}

// Outcome writes the single progress line for one repository.
func (p *Printer) Outcome(o models.Outcome) {
	counter := pad(fmt.Sprintf("[%d/%d]", o.Index, o.Total), counterWidth)
	tag := "[" + string(o.Tag) + "]"
	tagPad := strings.Repeat(" ", padWidth(tag, tagWidth))
	fmt.Fprintf(p.out, "%s%s%s%s (%s)\n",
		counter, p.tagStyle(o.Tag).Render(tag), tagPad, pad(o.RelPath, pathWidth), o.Note)
}

// Notify writes an out-of-band message, e.g. SSH key loading notices.
func (p *Printer) Notify(message, severity string) {
	switch severity {
	case "error":
		fmt.Fprintf(p.out, "%s   %s\n", p.styles.Error.Render("[ERROR]"), message)
	default:
		fmt.Fprintf(p.out, "%s    %s\n", p.styles.Key.Render("[KEY]"), message)
	}
}

func (p *Printer) tagStyle(tag models.Tag) lipgloss.Style {
	switch tag {
	case models.TagOK:
		return p.styles.OK
	case models.TagForce:
		return p.styles.Force
	case models.TagError:
		return p.styles.Error
	default:
		return p.styles.Skip
	}
}

// pad left-aligns s in a field of at least width characters. Styling is
// applied after padding so ANSI escapes never shift the columns.
func pad(s string, width int) string {
	return s + strings.Repeat(" ", padWidth(s, width))
}

func padWidth(s string, width int) int {
	if n := width - len(s); n > 1 {
		return n
	}
	return 1
}
