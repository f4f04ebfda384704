package docvet

import (
	"strings"

	"github.com/kpumuk/docweave"
)

// NoBareLineBreakInTextRule enforces invariant 1: Text nodes must never
// contain a line-break character; newlines must be expressed as Hardline or
// FlatAlt(Hardline, ...). docweave.Text already panics on construction, so
// this rule mostly guards trees assembled by future helpers that bypass it.
type NoBareLineBreakInTextRule[A any] struct{}

// ID returns the stable rule identifier.
func (NoBareLineBreakInTextRule[A]) ID() string { return "no_bare_linebreak_in_text" }

// Description returns a human-readable rule summary.
func (NoBareLineBreakInTextRule[A]) Description() string {
	return `Text nodes must not contain \n or \r`
}

// Check evaluates the rule against d.
func (NoBareLineBreakInTextRule[A]) Check(d docweave.Doc[A]) []Finding {
	var out []Finding
	walk(d, func(n docweave.Doc[A]) {
		s, ok := n.Text()
		if !ok {
			return
		}
		if strings.ContainsAny(s, "\n\r") {
			out = append(out, Finding{Message: "Text node contains a line break"})
		}
	})
	return out
}
