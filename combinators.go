package docweave

import "strings"

// Align reads the current output column c and nests d so that every line
// break inside it lands at column c, regardless of the indent in force when
// Align was reached.
func Align[A any](d Doc[A]) Doc[A] {
	return Column(func(c int) Doc[A] {
		return Nesting(func(i int) Doc[A] {
			return Nest(c-i, d)
		})
	})
}

// Hang nests d by delta and then aligns it, the combination used to lay out
// a block whose continuation lines indent relative to where the block
// started rather than the enclosing indent.
func Hang[A any](delta int, d Doc[A]) Doc[A] { return Align(Nest(delta, d)) }

// Indent prepends k literal spaces to d and hangs the remainder by k, so
// wrapped continuation lines line up under the first non-space column.
func Indent[A any](k int, d Doc[A]) Doc[A] {
	return Hang(k, Append(Text[A](strings.Repeat(" ", k)), d))
}

// Reflow splits text on whitespace and interspaces the words with SoftLine,
// so the result wraps like a paragraph at whatever width it's rendered at.
func Reflow[A any](text string) Doc[A] {
	words := strings.Fields(text)
	docs := make([]Doc[A], len(words))
	for i, w := range words {
		docs[i] = Text[A](w)
	}
	return Intersperse(docs, SoftLine[A]())
}

// Width renders d and invokes f with the number of columns d occupied,
// splicing f's result immediately after d. Implemented with a pair of
// Column reads bracketing d, the standard encoding since the engine has no
// separate "measure" pass.
func Width[A any](d Doc[A], f func(cols int) Doc[A]) Doc[A] {
	return Column(func(start int) Doc[A] {
		return Append(d, Column(func(end int) Doc[A] {
			return f(end - start)
		}))
	})
}

func enclose[A any](l, d, r Doc[A]) Doc[A] { return Append(Append(l, d), r) }

// Parens wraps d in ( ).
func Parens[A any](d Doc[A]) Doc[A] { return enclose(Text[A]("("), d, Text[A](")")) }

// Brackets wraps d in [ ].
func Brackets[A any](d Doc[A]) Doc[A] { return enclose(Text[A]("["), d, Text[A]("]")) }

// Braces wraps d in { }.
func Braces[A any](d Doc[A]) Doc[A] { return enclose(Text[A]("{"), d, Text[A]("}")) }

// Angles wraps d in < >.
func Angles[A any](d Doc[A]) Doc[A] { return enclose(Text[A]("<"), d, Text[A](">")) }

// SingleQuotes wraps d in ' '.
func SingleQuotes[A any](d Doc[A]) Doc[A] { return enclose(Text[A]("'"), d, Text[A]("'")) }

// DoubleQuotes wraps d in " ".
func DoubleQuotes[A any](d Doc[A]) Doc[A] { return enclose(Text[A](`"`), d, Text[A](`"`)) }
