package docweave

import "strings"

// annotationEvent records a push or pop of an annotation at a byte offset
// into bufferSink's buffer, so the event stream can be replayed against a
// real sink once a Union's left arm is known to fit.
type annotationEvent[A any] struct {
	offset int
	pop    bool
	value  A
}

// bufferSink records writes and annotation events into a growable buffer
// instead of a real sink. The engine renders a Union's left arm into one of
// these; if the render fits, the buffer is replayed to the real sink, and
// if not, it is simply dropped. This keeps the engine from ever needing to
// rewind a live sink — see the "Speculative Union" design note.
type bufferSink[A any] struct {
	buf    strings.Builder
	events []annotationEvent[A]
}

func (b *bufferSink[A]) WriteString(s string) (int, error) { return b.buf.WriteString(s) }

func (b *bufferSink[A]) WriteStringAll(s string) error {
	_, err := b.buf.WriteString(s)
	return err
}

func (b *bufferSink[A]) FailDoc() error { return errBufferedFail }

func (b *bufferSink[A]) PushAnnotation(a A) error {
	b.events = append(b.events, annotationEvent[A]{offset: b.buf.Len(), value: a})
	return nil
}

func (b *bufferSink[A]) PopAnnotation() error {
	b.events = append(b.events, annotationEvent[A]{offset: b.buf.Len(), pop: true})
	return nil
}

// replay writes the buffered content and annotation events to out, in
// order, splitting the buffer at each event's recorded offset.
func (b *bufferSink[A]) replay(out RenderAnnotated[A]) error {
	s := b.buf.String()
	start := 0
	for _, ev := range b.events {
		if ev.offset > start {
			if err := out.WriteStringAll(s[start:ev.offset]); err != nil {
				return err
			}
		}
		start = ev.offset
		var err error
		if ev.pop {
			err = out.PopAnnotation()
		} else {
			err = out.PushAnnotation(ev.value)
		}
		if err != nil {
			return err
		}
	}
	if start < len(s) {
		return out.WriteStringAll(s[start:])
	}
	return nil
}
