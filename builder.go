package docweave

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Nil is the empty document, the identity element of Append.
func Nil[A any]() Doc[A] { return nilDoc[A]() }

// Text returns a literal, line-break-free text document. It panics if s
// contains a line break — newlines must be expressed as Hardline or
// FlatAlt(Hardline, ...), never smuggled inside a leaf (invariant 1). Non-ASCII
// input is wrapped in RenderLen with length equal to its extended
// grapheme-cluster count, so the engine advances the column correctly
// regardless of UTF-8 byte width.
func Text[A any](s string) Doc[A] {
	if strings.ContainsAny(s, "\n\r") {
		panic(fmt.Sprintf("docweave: Text(%q) contains a line break; use Hardline or FlatAlt", s))
	}
	if isASCII(s) {
		return textDoc[A](s)
	}
	return renderLenDoc[A](uniseg.GraphemeClusterCount(s), textDoc[A](s))
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Append concatenates a then b. Nil on either side collapses to the other
// (invariant 2); associativity is otherwise left as constructed.
func Append[A any](a, b Doc[A]) Doc[A] {
	if a.kind == kindNil {
		return b
	}
	if b.kind == kindNil {
		return a
	}
	return appendDoc(a, b)
}

// Hardline is an unconditional newline; it forces its enclosing Group to
// Break regardless of whether the Group would otherwise fit.
func Hardline[A any]() Doc[A] { return hardlineDoc[A]() }

// Nest raises the current indent by delta (which may be negative; the
// engine saturates at 0) for every line break inside d. Delta = 0 or a Nil
// child is the identity (invariant 3).
func Nest[A any](delta int, d Doc[A]) Doc[A] {
	if delta == 0 || d.kind == kindNil {
		return d
	}
	return nestDoc(delta, d)
}

// Group marks d as a layout decision point: the engine renders it flattened
// on one line if the remainder fits within the width, else broken. Group is
// idempotent on already-textual leaves (Text, Nil): d is returned unchanged
// since there is no decision to make.
func Group[A any](d Doc[A]) Doc[A] {
	if d.kind == kindText || d.kind == kindNil {
		return d
	}
	return groupDoc(d)
}

// FlatAlt constructs an alternative where b is rendered when the enclosing
// Group is in Break mode and f when it is in Flat mode. The engine never
// examines f in Break mode or b in Flat mode.
func FlatAlt[A any](b, f Doc[A]) Doc[A] { return flatAltDoc(b, f) }

// Union constructs an alternative where l is tried first; if rendering l
// would overflow the width (or reach a Fail), its output is discarded and r
// is rendered instead. The engine renders l into a bufferSink and replays
// or drops that buffer (see the kindUnion case of best in render.go).
func Union[A any](l, r Doc[A]) Doc[A] { return unionDoc(l, r) }

// Annotate opens a scope in which every character the engine emits for d
// carries annotation a; the scope is closed with a balanced pop once d is
// fully rendered (invariant 5). Nested identical annotations are not merged.
func Annotate[A any](a A, d Doc[A]) Doc[A] { return annotatedDoc(a, d) }

// Column expands lazily to f(column) when the engine reaches this node,
// using the output column at that point. f must be deterministic: the same
// column must always produce an equivalent Doc, since the engine may invoke
// it once during fitting lookahead and again during emission.
func Column[A any](f func(col int) Doc[A]) Doc[A] { return columnDoc(f) }

// Nesting expands lazily to f(indent) when the engine reaches this node,
// using the current indentation level. f must be deterministic, for the
// same reason as Column.
func Nesting[A any](f func(ind int) Doc[A]) Doc[A] { return nestingDoc(f) }

// Fail aborts rendering of the current alternative. Used as the left arm of
// a Union to forbid a layout outright; reached outside of any Union, it
// surfaces as the sink's FailDoc error.
func Fail[A any]() Doc[A] { return failDoc[A]() }

// Line renders as a space when its enclosing Group is flattened, or a
// newline at the current indent when broken.
func Line[A any]() Doc[A] { return FlatAlt(Hardline[A](), Text[A](" ")) }

// LineBreak is Line but renders as nothing, not a space, when flattened.
func LineBreak[A any]() Doc[A] { return FlatAlt(Hardline[A](), Nil[A]()) }

// SoftLine renders as a space if the enclosing group fits on one line, else
// a newline.
func SoftLine[A any]() Doc[A] { return Group(Line[A]()) }

// SoftBreak is SoftLine but renders as nothing, not a space, when flat.
func SoftBreak[A any]() Doc[A] { return Group(LineBreak[A]()) }

// Space is a single literal space.
func Space[A any]() Doc[A] { return Text[A](" ") }

// Concat appends docs left to right.
func Concat[A any](docs ...Doc[A]) Doc[A] {
	out := Nil[A]()
	for _, d := range docs {
		out = Append(out, d)
	}
	return out
}

// Intersperse concatenates docs, inserting sep between consecutive entries.
func Intersperse[A any](docs []Doc[A], sep Doc[A]) Doc[A] {
	out := Nil[A]()
	for i, d := range docs {
		if i > 0 {
			out = Append(out, sep)
		}
		out = Append(out, d)
	}
	return out
}
