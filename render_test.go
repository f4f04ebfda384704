package docweave

import "testing"

// styleAnn is a stand-in annotation type for tests that don't care about
// annotation content, mirroring how internal/format's tests instantiate
// generic helpers with a concrete throwaway type.
type styleAnn struct{ name string }

func mustPretty[A any](t *testing.T, d Doc[A], width int) string {
	t.Helper()
	got, err := Pretty(d, width)
	if err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	return got
}

func TestBoundaryGroupLineWrapsByWidth(t *testing.T) {
	t.Parallel()

	doc := Group(Append(Append(Text[struct{}]("test"), Line[struct{}]()), Text[struct{}]("test")))

	if got := mustPretty(t, doc, 70); got != "test test" {
		t.Fatalf("width 70 = %q, want %q", got, "test test")
	}
	if got := mustPretty(t, doc, 5); got != "test\ntest" {
		t.Fatalf("width 5 = %q, want %q", got, "test\ntest")
	}
}

func TestBoundaryNestedBraces(t *testing.T) {
	t.Parallel()

	build := func() Doc[struct{}] {
		inner := Concat(Line[struct{}](), Text[struct{}]("a"), Line[struct{}](), Text[struct{}]("b"))
		return Group(Concat(Text[struct{}]("{"), Nest(2, inner), Line[struct{}](), Text[struct{}]("}")))
	}

	if got := mustPretty(t, build(), 5); got != "{\n  a\n  b\n}" {
		t.Fatalf("width 5 = %q, want %q", got, "{\n  a\n  b\n}")
	}
	if got := mustPretty(t, build(), 80); got != "{ a b }" {
		t.Fatalf("width 80 = %q, want %q", got, "{ a b }")
	}
}

func TestBoundaryHardlineIsUnconditional(t *testing.T) {
	t.Parallel()

	doc := Append(Append(Text[struct{}]("test"), Hardline[struct{}]()), Text[struct{}]("test"))

	if got := mustPretty(t, doc, 70); got != "test\ntest" {
		t.Fatalf("width 70 = %q, want %q", got, "test\ntest")
	}
}

func TestBoundaryUnionPrefersFittingLeftArm(t *testing.T) {
	t.Parallel()

	build := func() Doc[struct{}] {
		left := Group(Append(FlatAlt(Fail[struct{}](), Nil[struct{}]()), Text[struct{}]("12345")))
		return Union(left, Text[struct{}]("abc"))
	}

	if got := mustPretty(t, build(), 5); got != "12345" {
		t.Fatalf("width 5 = %q, want %q", got, "12345")
	}
	if got := mustPretty(t, build(), 4); got != "abc" {
		t.Fatalf("width 4 = %q, want %q", got, "abc")
	}
}

func TestBoundaryColumnReadsCurrentPosition(t *testing.T) {
	t.Parallel()

	doc := Append(Text[struct{}]("prefix "), Column(func(c int) Doc[struct{}] {
		return Append(Text[struct{}]("col="), Text[struct{}](itoa(c)))
	}))

	if got := mustPretty(t, doc, 80); got != "prefix col=7" {
		t.Fatalf("got %q, want %q", got, "prefix col=7")
	}
}

func TestBoundaryNonASCIIWidthCountsGraphemeClusters(t *testing.T) {
	t.Parallel()

	doc := Group(Append(Append(Text[struct{}]("ÅÄÖ"), Line[struct{}]()), Text[struct{}]("test")))

	if got := mustPretty(t, doc, 8); got != "ÅÄÖ test" {
		t.Fatalf("got %q, want %q", got, "ÅÄÖ test")
	}
}

func TestLawNilIsAppendIdentity(t *testing.T) {
	t.Parallel()

	for _, width := range []int{1, 5, 20, 80} {
		d := Group(Append(Text[struct{}]("x"), Line[struct{}]()))
		left := mustPretty(t, Append(Nil[struct{}](), d), width)
		right := mustPretty(t, Append(d, Nil[struct{}]()), width)
		plain := mustPretty(t, d, width)
		if left != plain || right != plain {
			t.Fatalf("width %d: Nil identity broken: %q / %q / %q", width, left, right, plain)
		}
	}
}

func TestLawAppendAssociativity(t *testing.T) {
	t.Parallel()

	a, b, c := Text[struct{}]("a"), Text[struct{}]("b"), Text[struct{}]("c")
	for _, width := range []int{1, 5, 80} {
		l := mustPretty(t, Append(Append(a, b), c), width)
		r := mustPretty(t, Append(a, Append(b, c)), width)
		if l != r {
			t.Fatalf("width %d: associativity broken: %q vs %q", width, l, r)
		}
	}
}

func TestLawTextConcatenationMatchesSingleText(t *testing.T) {
	t.Parallel()

	s1, s2 := "foo", "bar"
	appended := mustPretty(t, Append(Text[struct{}](s1), Text[struct{}](s2)), 80)
	single := mustPretty(t, Text[struct{}](s1+s2), 80)
	if appended != single {
		t.Fatalf("appended = %q, want %q", appended, single)
	}
}

func TestLawNestNeutralityAndAdditivity(t *testing.T) {
	t.Parallel()

	inner := Append(Hardline[struct{}](), Text[struct{}]("x"))

	plain := mustPretty(t, inner, 80)
	nested0 := mustPretty(t, Nest(0, inner), 80)
	if nested0 != plain {
		t.Fatalf("nest(0, d) = %q, want %q", nested0, plain)
	}

	sumFirst := mustPretty(t, Nest(2, Nest(3, inner)), 80)
	sumCombined := mustPretty(t, Nest(5, inner), 80)
	if sumFirst != sumCombined {
		t.Fatalf("nest(2, nest(3, d)) = %q, want nest(5, d) = %q", sumFirst, sumCombined)
	}
}

func TestLawGroupMonotonicity(t *testing.T) {
	t.Parallel()

	doc := Group(Concat(
		Text[struct{}]("aaaa"), Line[struct{}](),
		Text[struct{}]("bbbb"), Line[struct{}](),
		Text[struct{}]("cccc"),
	))

	lastLines := -1
	for _, width := range []int{1, 4, 9, 14, 19, 80} {
		out := mustPretty(t, doc, width)
		lines := countNewlines(out) + 1
		if lastLines != -1 && lines > lastLines {
			t.Fatalf("width %d produced more lines (%d) than a narrower width (%d)", width, lines, lastLines)
		}
		lastLines = lines
	}
}

func TestLawFlatAltSelectsBySurroundingMode(t *testing.T) {
	t.Parallel()

	doc := Group(FlatAlt(Text[struct{}]("break"), Text[struct{}]("flat")))
	if got := mustPretty(t, doc, 80); got != "flat" {
		t.Fatalf("flat mode = %q, want %q", got, "flat")
	}

	forced := Group(Append(FlatAlt(Text[struct{}]("break"), Text[struct{}]("flat")), Hardline[struct{}]()))
	if got := mustPretty(t, forced, 80); got != "break\n" {
		t.Fatalf("break mode = %q, want %q", got, "break\n")
	}
}

func TestLawAnnotationsBalance(t *testing.T) {
	t.Parallel()

	doc := Annotate(styleAnn{"outer"}, Append(
		Text[styleAnn]("a"),
		Annotate(styleAnn{"inner"}, Text[styleAnn]("b")),
	))

	rec := &recordingSink[styleAnn]{}
	if err := Render[styleAnn](doc, 80, rec); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if rec.pushes != rec.pops {
		t.Fatalf("unbalanced annotations: %d pushes, %d pops", rec.pushes, rec.pops)
	}
	if rec.maxDepth < 2 {
		t.Fatalf("expected nested annotations to reach depth 2, got %d", rec.maxDepth)
	}
	if rec.depth != 0 {
		t.Fatalf("annotation stack not fully unwound: depth %d", rec.depth)
	}
}

func TestFailOutsideUnionReturnsSinkError(t *testing.T) {
	t.Parallel()

	doc := Append(Text[struct{}]("x"), Fail[struct{}]())
	_, err := Pretty(doc, 80)
	if err != ErrFailDoc {
		t.Fatalf("err = %v, want %v", err, ErrFailDoc)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	t.Parallel()

	doc := Group(Concat(
		Text[struct{}]("{"),
		Indent(2, Concat(Line[struct{}](), Text[struct{}]("alpha"), Line[struct{}](),
			Group(Concat(Text[struct{}]("beta"), SoftLine[struct{}](), Text[struct{}]("gamma"))))),
		Line[struct{}](),
		Text[struct{}]("}"),
	))

	got1 := mustPretty(t, doc, 6)
	got2 := mustPretty(t, doc, 6)
	if got1 != got2 {
		t.Fatalf("render not deterministic: %q vs %q", got1, got2)
	}
	want := "{\n  alpha\n  beta gamma\n}"
	if got1 != want {
		t.Fatalf("got %q, want %q", got1, want)
	}
}

// recordingSink is a RenderAnnotated[A] that only tracks annotation nesting
// depth, for tests that check the balance law without caring about text.
type recordingSink[A any] struct {
	b        StringSink[A]
	depth    int
	maxDepth int
	pushes   int
	pops     int
}

func (r *recordingSink[A]) WriteString(s string) (int, error) { return r.b.WriteString(s) }
func (r *recordingSink[A]) WriteStringAll(s string) error     { return r.b.WriteStringAll(s) }
func (r *recordingSink[A]) FailDoc() error                    { return r.b.FailDoc() }

func (r *recordingSink[A]) PushAnnotation(A) error {
	r.pushes++
	r.depth++
	if r.depth > r.maxDepth {
		r.maxDepth = r.depth
	}
	return nil
}

func (r *recordingSink[A]) PopAnnotation() error {
	r.pops++
	r.depth--
	return nil
}

func countNewlines(s string) int {
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}

func TestRecheckFlatSuffixFlipsOverflowingFlatRunToBreak(t *testing.T) {
	t.Parallel()

	wide := textDoc[struct{}]("ok")
	narrow := textDoc[struct{}]("0123456789")

	e := &engine[struct{}]{width: 5}
	e.bcmds = []cmd[struct{}]{
		{ind: 0, mode: modeBreak, doc: &wide},
		{ind: 0, mode: modeFlat, doc: &narrow},
	}

	e.recheckFlatSuffix()

	if e.bcmds[1].mode != modeBreak {
		t.Fatalf("expected the overflowing flat suffix to flip to Break, got %v", e.bcmds[1].mode)
	}
	if e.bcmds[0].mode != modeBreak {
		t.Fatalf("entry below the flat suffix must be left untouched, got %v", e.bcmds[0].mode)
	}
}

func TestRecheckFlatSuffixLeavesFittingRunFlat(t *testing.T) {
	t.Parallel()

	narrow := textDoc[struct{}]("ok")

	e := &engine[struct{}]{width: 80}
	e.bcmds = []cmd[struct{}]{
		{ind: 0, mode: modeFlat, doc: &narrow},
	}

	e.recheckFlatSuffix()

	if e.bcmds[0].mode != modeFlat {
		t.Fatalf("expected a fitting flat suffix to remain Flat, got %v", e.bcmds[0].mode)
	}
}

func TestRenderOptionsNormalizesZeroValues(t *testing.T) {
	t.Parallel()

	got, err := normalizeOptions(RenderOptions{})
	if err != nil {
		t.Fatalf("normalizeOptions: %v", err)
	}
	want := RenderOptions{LineWidth: defaultLineWidth, Indent: 0, Newline: defaultNewline}
	if got != want {
		t.Fatalf("normalizeOptions(zero value) = %+v, want %+v", got, want)
	}
}

func TestRenderOptionsRejectsNegativeFields(t *testing.T) {
	t.Parallel()

	if _, err := normalizeOptions(RenderOptions{LineWidth: -1}); err == nil {
		t.Fatal("expected an error for negative LineWidth")
	}
	if _, err := normalizeOptions(RenderOptions{Indent: -1}); err == nil {
		t.Fatal("expected an error for negative Indent")
	}
}

func TestPrettyWithOptionsUsesCustomNewlineAndIndent(t *testing.T) {
	t.Parallel()

	doc := Append(Text[struct{}]("a"), Append(Hardline[struct{}](), Text[struct{}]("b")))

	got, err := PrettyWithOptions[struct{}](doc, RenderOptions{LineWidth: 80, Indent: 2, Newline: "\r\n"})
	if err != nil {
		t.Fatalf("PrettyWithOptions: %v", err)
	}
	if want := "a\r\n  b"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
