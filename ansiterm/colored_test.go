package ansiterm

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/kpumuk/docweave"
)

var _ docweave.RenderAnnotated[Style] = (*ColoredSink)(nil)

func TestColoredSinkWrapsAnnotatedSpanInStyleEscapes(t *testing.T) {
	t.Parallel()

	bold := lipgloss.NewStyle().Bold(true)
	doc := docweave.Annotate(bold, docweave.Text[Style]("hi"))

	var buf strings.Builder
	sink := NewColoredSink(&buf)
	if err := docweave.Render(doc, 80, sink); err != nil {
		t.Fatalf("Render: %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, "hi") {
		t.Fatalf("output %q does not contain the literal text", got)
	}
	plain := lipgloss.NewStyle().Render("hi")
	if got == plain {
		t.Fatalf("output %q is unstyled; expected ANSI bold escapes around %q", got, "hi")
	}
}

func TestColoredSinkPopWithoutPushErrors(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	sink := NewColoredSink(&buf)
	if err := sink.PopAnnotation(); !errors.Is(err, errUnbalancedPop) {
		t.Fatalf("PopAnnotation err = %v, want errUnbalancedPop", err)
	}
}

func TestColoredSinkFailDocMatchesDocweaveSentinel(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	sink := NewColoredSink(&buf)
	if err := docweave.Render(docweave.Fail[Style](), 80, sink); !errors.Is(err, docweave.ErrFailDoc) {
		t.Fatalf("Render err = %v, want docweave.ErrFailDoc", err)
	}
}
