package docweave

import (
	"io"
	"strings"
)

// Render is the minimal write contract the layout engine requires of an
// output sink: partial writes (write_str), complete-or-error writes
// (write_str_all), and a way to synthesize the error value for a Fail node
// reached outside of a Union.
type Render interface {
	WriteString(s string) (int, error)
	WriteStringAll(s string) error
	FailDoc() error
}

// RenderAnnotated additionally lets the engine notify the sink of
// annotation scope boundaries as it walks Annotated nodes. Plain writers
// implement Push/PopAnnotation as no-ops; a colored writer (see the
// ansiterm subpackage) updates a style stack.
type RenderAnnotated[A any] interface {
	Render
	PushAnnotation(a A) error
	PopAnnotation() error
}

// IOWriteSink renders to an io.Writer, ignoring annotations. A is the
// annotation type the sink is instantiated for; Push/PopAnnotation are
// no-ops regardless of A, mirroring plain io.Write/fmt.Write sinks.
type IOWriteSink[A any] struct {
	w io.Writer
}

// NewIOWriteSink wraps w as a RenderAnnotated[A] sink with no-op annotation
// handling.
func NewIOWriteSink[A any](w io.Writer) *IOWriteSink[A] { return &IOWriteSink[A]{w: w} }

func (s *IOWriteSink[A]) WriteString(str string) (int, error) { return s.w.Write([]byte(str)) }

func (s *IOWriteSink[A]) WriteStringAll(str string) error {
	_, err := io.WriteString(s.w, str)
	return err
}

func (s *IOWriteSink[A]) FailDoc() error { return ErrFailDoc }

func (s *IOWriteSink[A]) PushAnnotation(A) error { return nil }

func (s *IOWriteSink[A]) PopAnnotation() error { return nil }

// StringSink renders into an in-memory string, ignoring annotations. Used
// by Pretty for the common "just give me a string" case.
type StringSink[A any] struct {
	b strings.Builder
}

func (s *StringSink[A]) WriteString(str string) (int, error) { return s.b.WriteString(str) }

func (s *StringSink[A]) WriteStringAll(str string) error {
	_, err := s.b.WriteString(str)
	return err
}

func (s *StringSink[A]) FailDoc() error { return ErrFailDoc }

func (s *StringSink[A]) PushAnnotation(A) error { return nil }

func (s *StringSink[A]) PopAnnotation() error { return nil }

// String returns the bytes written so far.
func (s *StringSink[A]) String() string { return s.b.String() }
