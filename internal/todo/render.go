package todo

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// EmptyMessage is printed when the list has no items.
const EmptyMessage = "Empty. There is no todo list."

// ColorMode controls whether styled output is emitted.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode parses a color mode name. An empty string means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(s) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways:
		return ColorAlways, nil
	case ColorNever:
		return ColorNever, nil
	default:
		return "", fmt.Errorf("invalid color mode %q, must be one of: auto, always, never", s)
	}
}

// Printer writes the numbered list.
type Printer struct {
	out   io.Writer
	done  lipgloss.Style
	plain bool
}

// NewPrinter returns a Printer writing to w. Finished items are struck
// through when the resolved color profile supports it, and wrapped in
// ~~tildes~~ otherwise.
func NewPrinter(w io.Writer, mode ColorMode) *Printer {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{
		out:   w,
		done:  r.NewStyle().Strikethrough(true).TabWidth(lipgloss.NoTabConversion),
		plain: r.ColorProfile() == termenv.Ascii,
	}
}

// Print writes one "N. content" line per item, or EmptyMessage.
func (p *Printer) Print(items []Item) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(p.out, EmptyMessage)
		return err
	}

	for i, item := range items {
		if _, err := fmt.Fprintf(p.out, "%d. %s\n", i+1, p.Content(item)); err != nil {
			return err
		}
	}
	return nil
}

// Content returns the item's content with the done marker applied.
func (p *Printer) Content(item Item) string {
	if !item.Done() {
		return item.Content
	}
	if p.plain {
		return "~~" + item.Content + "~~"
	}
	return p.done.Render(item.Content)
}
