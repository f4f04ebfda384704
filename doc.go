// Package docweave implements a Wadler/Leijen-style pretty-printing engine:
// an immutable document algebra, a builder surface that enforces its shallow
// invariants, and a stack-machine layout engine that renders a document to a
// sink within a caller-specified line width.
package docweave

// docKind tags which variant a Doc node is. Doc is a single struct type with
// kind-dependent fields rather than one Go type per variant, the same shape
// internal/format's Doc uses for its (smaller) node set.
type docKind uint8

const (
	kindNil docKind = iota
	kindAppend
	kindGroup
	kindFlatAlt
	kindNest
	kindUnion
	kindHardline
	kindText
	kindRenderLen
	kindAnnotated
	kindColumn
	kindNesting
	kindFail
)

// Doc is an immutable pretty-printing document, parameterized over the
// annotation type A carried by Annotated nodes (colors, styles, or any other
// scoped marker a sink wants to act on).
//
// Doc values are heap-owned: children are plain pointers and the Go garbage
// collector is the allocator, per the "Recursive Doc as tagged variant"
// design note — no arena or reference-counting scheme is exposed, since no
// component in this repository needs to share subtrees across renders.
type Doc[A any] struct {
	kind docKind

	// left/right hold the per-kind children:
	//   Append(left, right), Group(left), FlatAlt(left=B, right=F),
	//   Nest(left=child), Union(left=L, right=R), RenderLen(left=Text),
	//   Annotated(left=child)
	left  *Doc[A]
	right *Doc[A]

	text   string // Text
	length int    // RenderLen: precomputed display width of left's Text
	offset int    // Nest: signed indent delta

	ann A // Annotated

	fn func(int) Doc[A] // Column / Nesting
}

func nilDoc[A any]() Doc[A] { return Doc[A]{kind: kindNil} }

func appendDoc[A any](l, r Doc[A]) Doc[A] { return Doc[A]{kind: kindAppend, left: &l, right: &r} }

func groupDoc[A any](d Doc[A]) Doc[A] { return Doc[A]{kind: kindGroup, left: &d} }

func flatAltDoc[A any](b, f Doc[A]) Doc[A] { return Doc[A]{kind: kindFlatAlt, left: &b, right: &f} }

func nestDoc[A any](delta int, d Doc[A]) Doc[A] {
	return Doc[A]{kind: kindNest, offset: delta, left: &d}
}

func unionDoc[A any](l, r Doc[A]) Doc[A] { return Doc[A]{kind: kindUnion, left: &l, right: &r} }

func hardlineDoc[A any]() Doc[A] { return Doc[A]{kind: kindHardline} }

func textDoc[A any](s string) Doc[A] { return Doc[A]{kind: kindText, text: s} }

func renderLenDoc[A any](n int, t Doc[A]) Doc[A] {
	return Doc[A]{kind: kindRenderLen, length: n, left: &t}
}

func annotatedDoc[A any](a A, d Doc[A]) Doc[A] { return Doc[A]{kind: kindAnnotated, ann: a, left: &d} }

func columnDoc[A any](f func(int) Doc[A]) Doc[A] { return Doc[A]{kind: kindColumn, fn: f} }

func nestingDoc[A any](f func(int) Doc[A]) Doc[A] { return Doc[A]{kind: kindNesting, fn: f} }

func failDoc[A any]() Doc[A] { return Doc[A]{kind: kindFail} }

// IsNil reports whether d is the empty document.
func (d Doc[A]) IsNil() bool { return d.kind == kindNil }
