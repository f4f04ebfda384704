package docvet

import "github.com/kpumuk/docweave"

// ZeroNestOffsetRule enforces invariant 3: Nest(0, d) should have collapsed
// to d at construction time, so no Nest node in a well-built tree ever
// carries a zero offset.
type ZeroNestOffsetRule[A any] struct{}

// ID returns the stable rule identifier.
func (ZeroNestOffsetRule[A]) ID() string { return "zero_nest_offset" }

// Description returns a human-readable rule summary.
func (ZeroNestOffsetRule[A]) Description() string {
	return "Nest(0, d) must collapse to d rather than surviving as a node"
}

// Check evaluates the rule against d.
func (ZeroNestOffsetRule[A]) Check(d docweave.Doc[A]) []Finding {
	var out []Finding
	walk(d, func(n docweave.Doc[A]) {
		if n.Kind() == docweave.KindNest && n.NestOffset() == 0 {
			out = append(out, Finding{Message: "Nest node carries a zero offset"})
		}
	})
	return out
}
