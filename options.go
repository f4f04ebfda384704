package docweave

import "fmt"

const (
	defaultLineWidth = 80
	defaultNewline   = "\n"
)

// RenderOptions configures a render: the column budget the layout engine
// fits against, the indent the document starts at, and the line terminator
// written for every Hardline. The zero value normalizes to width 80, indent
// 0, and "\n" — the same zero-value-defaulting shape as internal/format's
// Options/normalizeOptions, adapted from a formatter's (LineWidth, Indent,
// MaxBlankLines) to a layout engine's (LineWidth, Indent, Newline).
type RenderOptions struct {
	LineWidth int
	Indent    int
	Newline   string
}

// normalizeOptions validates opts and fills in zero-valued fields with their
// defaults. LineWidth and Indent are rejected outright if negative; a zero
// LineWidth defaults to defaultLineWidth, and a zero Newline defaults to
// "\n". Indent's zero value is left as 0, since an unindented start is
// already the correct default, not a sentinel standing in for one.
func normalizeOptions(opts RenderOptions) (RenderOptions, error) {
	if opts.LineWidth < 0 {
		return RenderOptions{}, fmt.Errorf("docweave: invalid LineWidth %d", opts.LineWidth)
	}
	if opts.Indent < 0 {
		return RenderOptions{}, fmt.Errorf("docweave: invalid Indent %d", opts.Indent)
	}
	if opts.LineWidth == 0 {
		opts.LineWidth = defaultLineWidth
	}
	if opts.Newline == "" {
		opts.Newline = defaultNewline
	}
	return opts, nil
}
