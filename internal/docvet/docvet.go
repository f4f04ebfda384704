// Package docvet provides static invariant checks over constructed Doc
// trees, the same rule/runner shape internal/lint used for Thrift syntax
// trees, retargeted at the Doc algebra's own invariants (spec.md §3) instead
// of Thrift-specific diagnostics.
package docvet

import (
	"github.com/kpumuk/docweave"
)

// Finding is a single invariant violation located in a Doc tree.
type Finding struct {
	RuleID  string
	Message string
}

// Rule statically checks a constructed Doc[A] tree for one invariant class.
type Rule[A any] interface {
	ID() string
	Description() string
	Check(d docweave.Doc[A]) []Finding
}

// Runner executes a rule set over a Doc tree and aggregates findings.
type Runner[A any] struct {
	rules []Rule[A]
}

// NewRunner builds a runner from an explicit rule set.
func NewRunner[A any](rules ...Rule[A]) *Runner[A] {
	copied := make([]Rule[A], len(rules))
	copy(copied, rules)
	return &Runner[A]{rules: copied}
}

// NewDefaultRunner builds the default rule set: invariants 1, 3 and 4 from
// spec.md §3. The builder already enforces each of them at construction
// time, so these rules only report trees assembled without it.
func NewDefaultRunner[A any]() *Runner[A] {
	return NewRunner[A](
		RenderLenWrapsTextRule[A]{},
		NoBareLineBreakInTextRule[A]{},
		ZeroNestOffsetRule[A]{},
	)
}

// Run executes every configured rule and returns aggregated findings.
func (r *Runner[A]) Run(d docweave.Doc[A]) []Finding {
	if r == nil {
		return nil
	}
	out := make([]Finding, 0, 8)
	for _, rule := range r.rules {
		for _, f := range rule.Check(d) {
			if f.RuleID == "" {
				f.RuleID = rule.ID()
			}
			out = append(out, f)
		}
	}
	return out
}

// walk visits d and every node reachable through its static children.
func walk[A any](d docweave.Doc[A], visit func(docweave.Doc[A])) {
	visit(d)
	for _, c := range d.Children() {
		walk(c, visit)
	}
}
