package docvet

import (
	"testing"

	"github.com/kpumuk/docweave"
)

func TestRenderLenWrapsTextRuleIsCleanForBuilderOutput(t *testing.T) {
	t.Parallel()

	plain := docweave.Group(docweave.Append(docweave.Text[string]("a"), docweave.Text[string]("b")))
	findings := RenderLenWrapsTextRule[string]{}.Check(plain)
	if len(findings) != 0 {
		t.Fatalf("findings=%+v, want none (no RenderLen node present)", findings)
	}

	good := docweave.Text[string]("héllo")
	findings = RenderLenWrapsTextRule[string]{}.Check(good)
	if len(findings) != 0 {
		t.Fatalf("findings=%+v, want none for a well-formed RenderLen/Text pair", findings)
	}
}

func TestNoBareLineBreakInTextRuleIsCleanForBuilderOutput(t *testing.T) {
	t.Parallel()

	doc := docweave.Concat(
		docweave.Text[string]("a"),
		docweave.Line[string](),
		docweave.Text[string]("b"),
	)
	if findings := (NoBareLineBreakInTextRule[string]{}).Check(doc); len(findings) != 0 {
		t.Fatalf("findings=%+v, want none: builder.Text already rejects embedded newlines", findings)
	}
}

func TestZeroNestOffsetRuleIsCleanForBuilderOutput(t *testing.T) {
	t.Parallel()

	doc := docweave.Nest(2, docweave.Text[string]("indented"))
	if findings := (ZeroNestOffsetRule[string]{}).Check(doc); len(findings) != 0 {
		t.Fatalf("findings=%+v, want none", findings)
	}

	// Nest(0, ...) collapses to its child at construction, so a zero-offset
	// Nest node can never appear in builder-produced output.
	collapsed := docweave.Nest(0, docweave.Text[string]("flat"))
	if collapsed.Kind() == docweave.KindNest {
		t.Fatalf("Nest(0, d) did not collapse to d")
	}
}

func TestDefaultRunnerIsCleanForBuilderOutput(t *testing.T) {
	t.Parallel()

	runner := NewDefaultRunner[string]()
	doc := docweave.Concat(
		docweave.Text[string]("a"),
		docweave.SoftLine[string](),
		docweave.Text[string]("b"),
	)
	if findings := runner.Run(doc); len(findings) != 0 {
		t.Fatalf("findings=%+v, want none for well-formed builder output", findings)
	}
}

func TestRunnerDefaultsFindingRuleID(t *testing.T) {
	t.Parallel()

	runner := NewRunner[string](stubRule{})
	findings := runner.Run(docweave.Nil[string]())
	if len(findings) != 1 {
		t.Fatalf("findings count=%d, want 1", len(findings))
	}
	if findings[0].RuleID != "stub" {
		t.Fatalf("RuleID=%q, want %q", findings[0].RuleID, "stub")
	}
}

type stubRule struct{}

func (stubRule) ID() string          { return "stub" }
func (stubRule) Description() string { return "always reports one finding" }
func (stubRule) Check(d docweave.Doc[string]) []Finding {
	return []Finding{{Message: "stub finding"}}
}
