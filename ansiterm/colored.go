// Package ansiterm implements docweave.RenderAnnotated over lipgloss
// styles, the render_colored sink from spec.md §6. Grounded on
// other_examples' ink markdown renderer, which drives lipgloss.Style.Render
// around already-composed text rather than emitting raw ANSI escapes by
// hand.
package ansiterm

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Style is the annotation type carried by docweave.Doc[Style] trees that
// render through this package.
type Style = lipgloss.Style

// sentinel is rendered through a Style in isolation so its ANSI prefix and
// suffix can be recovered by splitting around it. It must never appear in
// document text.
const sentinel = "\x00docweave-ansiterm-sentinel\x00"

// ColoredSink renders a Doc[Style] tree to w, translating each Annotated
// push/pop into the ANSI escape sequences lipgloss would wrap around the
// annotated span.
type ColoredSink struct {
	w       io.Writer
	suffix  []string
	lastErr error
}

// NewColoredSink wraps w.
func NewColoredSink(w io.Writer) *ColoredSink {
	return &ColoredSink{w: w}
}

// WriteString writes s verbatim.
func (c *ColoredSink) WriteString(s string) (int, error) {
	n, err := io.WriteString(c.w, s)
	if err != nil {
		c.lastErr = err
	}
	return n, err
}

// WriteStringAll writes s verbatim, returning only an error.
func (c *ColoredSink) WriteStringAll(s string) error {
	_, err := c.WriteString(s)
	return err
}

// FailDoc reports the terminal rendering failure for a Fail node.
func (c *ColoredSink) FailDoc() error {
	return errFailDoc
}

// PushAnnotation splits the style's rendering around a sentinel to recover
// its raw ANSI prefix/suffix, writes the prefix, and remembers the suffix
// for the matching PopAnnotation.
func (c *ColoredSink) PushAnnotation(style Style) error {
	prefix, suffix := splitStyle(style)
	if _, err := c.WriteString(prefix); err != nil {
		return err
	}
	c.suffix = append(c.suffix, suffix)
	return nil
}

// PopAnnotation writes the ANSI suffix recorded by the matching push.
func (c *ColoredSink) PopAnnotation() error {
	if len(c.suffix) == 0 {
		return errUnbalancedPop
	}
	suffix := c.suffix[len(c.suffix)-1]
	c.suffix = c.suffix[:len(c.suffix)-1]
	return c.WriteStringAll(suffix)
}

// splitStyle renders style around a sentinel marker and returns the ANSI
// bytes lipgloss placed before and after it. A style with no visual effect
// (e.g. the zero Style) yields two empty strings.
func splitStyle(style Style) (prefix, suffix string) {
	rendered := style.Render(sentinel)
	before, after, ok := strings.Cut(rendered, sentinel)
	if !ok {
		return "", ""
	}
	return before, after
}
