package docweave

// Kind identifies which Doc variant a node is. It is exposed read-only so
// tooling (internal/docvet) can walk a constructed tree without reaching
// into the engine's unexported fields.
type Kind uint8

const (
	KindNil Kind = iota
	KindAppend
	KindGroup
	KindFlatAlt
	KindNest
	KindUnion
	KindHardline
	KindText
	KindRenderLen
	KindAnnotated
	KindColumn
	KindNesting
	KindFail
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "Nil"
	case KindAppend:
		return "Append"
	case KindGroup:
		return "Group"
	case KindFlatAlt:
		return "FlatAlt"
	case KindNest:
		return "Nest"
	case KindUnion:
		return "Union"
	case KindHardline:
		return "Hardline"
	case KindText:
		return "Text"
	case KindRenderLen:
		return "RenderLen"
	case KindAnnotated:
		return "Annotated"
	case KindColumn:
		return "Column"
	case KindNesting:
		return "Nesting"
	case KindFail:
		return "Fail"
	default:
		return "Unknown"
	}
}

// Kind reports which variant d is.
func (d Doc[A]) Kind() Kind { return Kind(d.kind) }

// Text returns the literal text of a Text node; ok is false for every other
// variant.
func (d Doc[A]) Text() (string, bool) {
	if d.kind == kindText {
		return d.text, true
	}
	return "", false
}

// Children returns d's static structural children in render order. Column
// and Nesting have no static children: their subtree only exists once
// expanded against a concrete column or indent, which only the engine does.
func (d Doc[A]) Children() []Doc[A] {
	switch d.kind {
	case kindAppend, kindFlatAlt, kindUnion:
		return []Doc[A]{*d.left, *d.right}
	case kindGroup, kindNest, kindAnnotated, kindRenderLen:
		return []Doc[A]{*d.left}
	default:
		return nil
	}
}

// NestOffset returns a Nest node's signed indent delta (0 for every other
// variant).
func (d Doc[A]) NestOffset() int {
	if d.kind == kindNest {
		return d.offset
	}
	return 0
}

// RenderLength returns a RenderLen node's precomputed display width (0 for
// every other variant).
func (d Doc[A]) RenderLength() int {
	if d.kind == kindRenderLen {
		return d.length
	}
	return 0
}

// Annotation returns an Annotated node's annotation value; ok is false for
// every other variant.
func (d Doc[A]) Annotation() (value A, ok bool) {
	if d.kind == kindAnnotated {
		return d.ann, true
	}
	return value, false
}
