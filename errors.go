package docweave

import "errors"

// ErrFailDoc is the default sinks' FailDoc error, returned by Render when a
// Fail node is reached outside of any Union's left arm.
var ErrFailDoc = errors.New("docweave: document failed to render")

// errBufferedFail signals that Fail fired inside a Union's speculative left
// arm. The engine treats it exactly like a width overflow: the buffered
// output is discarded and the right arm is rendered instead; it never
// escapes render.go.
var errBufferedFail = errors.New("docweave: fail inside union arm")
