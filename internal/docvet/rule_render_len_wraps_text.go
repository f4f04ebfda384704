package docvet

import "github.com/kpumuk/docweave"

// RenderLenWrapsTextRule enforces invariant 4: a RenderLen node's child must
// be exactly one Text node.
type RenderLenWrapsTextRule[A any] struct{}

// ID returns the stable rule identifier.
func (RenderLenWrapsTextRule[A]) ID() string { return "render_len_wraps_text" }

// Description returns a human-readable rule summary.
func (RenderLenWrapsTextRule[A]) Description() string {
	return "every RenderLen node must wrap exactly one Text node"
}

// Check evaluates the rule against d.
func (RenderLenWrapsTextRule[A]) Check(d docweave.Doc[A]) []Finding {
	var out []Finding
	walk(d, func(n docweave.Doc[A]) {
		if n.Kind() != docweave.KindRenderLen {
			return
		}
		children := n.Children()
		if len(children) != 1 || children[0].Kind() != docweave.KindText {
			out = append(out, Finding{Message: "RenderLen does not wrap exactly one Text node"})
		}
	})
	return out
}
