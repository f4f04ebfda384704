package docweave

// renderMode is the engine's per-command layout mode: Flat renders a
// subtree on one line, Break allows hardlines and multi-line layouts.
type renderMode uint8

const (
	modeBreak renderMode = iota
	modeFlat
)

// cmd is one unit of work on the engine's main stack: render doc at the
// given indent, in the given mode.
type cmd[A any] struct {
	ind  int
	mode renderMode
	doc  *Doc[A]
}

// engine holds the state of one render call: the output column (pos), the
// main work stack (bcmds), a scratch stack reused by the fitting predicate
// (fcmds), and the stack-height markers recording where each open
// annotation must be popped (annotationLevels). There is no separate
// "temp_arena" for Column/Nesting expansion — Doc is heap-owned, so the Go
// garbage collector already reclaims the expanded nodes once the engine
// stops referencing them.
type engine[A any] struct {
	pos              int
	bcmds            []cmd[A]
	fcmds            []*Doc[A]
	annotationLevels []int
	width            int
	newline          string
}

// spacesChunk is written repeatedly to emit long indents without building
// an intermediate string each time.
const spacesChunk = "                                                                "

func (e *engine[A]) writeNewline(out Render, ind int) error {
	if err := out.WriteStringAll(e.newline); err != nil {
		return err
	}
	return writeSpaces(out, ind)
}

func writeSpaces(out Render, n int) error {
	for n > 0 {
		chunk := len(spacesChunk)
		if n < chunk {
			chunk = n
		}
		written, err := out.WriteString(spacesChunk[:chunk])
		if err != nil {
			return err
		}
		if written == 0 {
			break
		}
		n -= written
	}
	return nil
}

func saturatingAdd(ind, delta int) int {
	r := ind + delta
	if r < 0 {
		return 0
	}
	return r
}

// Render emits characters and annotation markers for doc, targeting width
// columns, into sink. It returns the first error the sink reports, or the
// sink's FailDoc error if a Fail node is reached outside of any Union.
// Width overflow outside of a Union is not an error: the engine produces
// overflowing output by design, per Wadler/Leijen semantics. Render is a
// convenience wrapper over RenderWithOptions for the common case where only
// the width needs to be non-default; it still goes through
// normalizeOptions, so a negative width is rejected rather than silently
// accepted.
func Render[A any](doc Doc[A], width int, sink RenderAnnotated[A]) error {
	return RenderWithOptions[A](doc, RenderOptions{LineWidth: width}, sink)
}

// RenderWithOptions is Render with full control over RenderOptions: the
// indent the document starts at and the line terminator written for every
// Hardline, in addition to the line width. opts is normalized exactly as
// Render's bare width is.
func RenderWithOptions[A any](doc Doc[A], opts RenderOptions, sink RenderAnnotated[A]) error {
	opts, err := normalizeOptions(opts)
	if err != nil {
		return err
	}
	root := doc
	e := &engine[A]{
		width:   opts.LineWidth,
		newline: opts.Newline,
		pos:     opts.Indent,
		bcmds:   []cmd[A]{{ind: opts.Indent, mode: modeBreak, doc: &root}},
	}
	_, err = e.best(0, sink)
	return err
}

// Pretty renders doc at width into a plain string, ignoring annotations.
func Pretty[A any](doc Doc[A], width int) (string, error) {
	return PrettyWithOptions[A](doc, RenderOptions{LineWidth: width})
}

// PrettyWithOptions is Pretty with full control over RenderOptions.
func PrettyWithOptions[A any](doc Doc[A], opts RenderOptions) (string, error) {
	sink := &StringSink[A]{}
	if err := RenderWithOptions[A](doc, opts, sink); err != nil {
		return "", err
	}
	return sink.String(), nil
}

// fitting decides whether rendering next flattened, followed by everything
// already queued on e.bcmds (replayed in Break mode), can reach the next
// Hardline — or exhaust all work — without pos exceeding e.width. It shares
// the engine's fcmds scratch stack so repeated Group decisions don't
// allocate.
func (e *engine[A]) fitting(next *Doc[A], pos, ind int) bool {
	e.fcmds = e.fcmds[:0]
	e.fcmds = append(e.fcmds, next)
	return e.fits(len(e.bcmds), pos, ind)
}

// fits runs the fitting predicate's core loop: e.fcmds (already seeded by the
// caller) is consumed in Flat mode until it drains, after which the walk
// continues into e.bcmds below bidx in Break mode. Factored out of fitting so
// recheckFlatSuffix can seed a multi-doc run instead of a single next doc.
func (e *engine[A]) fits(bidx, pos, ind int) bool {
	mode := modeFlat
outer:
	for {
		var doc *Doc[A]
		if n := len(e.fcmds); n > 0 {
			doc = e.fcmds[n-1]
			e.fcmds = e.fcmds[:n-1]
		} else if bidx == 0 {
			return true
		} else {
			bidx--
			mode = modeBreak
			doc = e.bcmds[bidx].doc
		}

		for {
			switch doc.kind {
			case kindNil:
				continue outer
			case kindAppend:
				for doc.kind == kindAppend {
					e.fcmds = append(e.fcmds, doc.right)
					doc = doc.left
				}
				continue
			case kindHardline:
				// A hardline inside the candidate makes it not fit; one
				// reached only via the Break-mode tail after fcmds drains
				// means we've hit the end of the current line already.
				return mode == modeBreak
			case kindRenderLen:
				pos += doc.length
				if pos > e.width {
					return false
				}
				continue outer
			case kindText:
				pos += len(doc.text)
				if pos > e.width {
					return false
				}
				continue outer
			case kindFlatAlt:
				if mode == modeBreak {
					doc = doc.left
				} else {
					doc = doc.right
				}
				continue
			case kindColumn:
				expanded := doc.fn(pos)
				doc = &expanded
				continue
			case kindNesting:
				expanded := doc.fn(ind)
				doc = &expanded
				continue
			case kindNest, kindGroup, kindAnnotated, kindUnion:
				// Nest's offset doesn't affect whether text fits; Union is
				// approximated by its left (candidate) arm, matching the
				// commit path the real render would attempt first.
				doc = doc.left
				continue
			case kindFail:
				return false
			}
		}
	}
}

// recheckFlatSuffix handles the "hardline inside a committed Flat run" case:
// a Group's fitting check approximates a Union by its left arm only (see
// fits's kindUnion case), so a Group can commit to Flat mode on the strength
// of a Union that, once actually rendered, falls back to a right arm
// containing a bare Hardline. That hardline just reset e.pos to ind, so the
// rest of the Flat run — the contiguous suffix of e.bcmds still tagged Flat —
// needs its fit re-checked against the fresh line; if it no longer fits, the
// whole suffix flips to Break so the remaining Group/FlatAlt decisions below
// it see the right mode once popped.
func (e *engine[A]) recheckFlatSuffix() {
	end := len(e.bcmds)
	start := end
	for start > 0 && e.bcmds[start-1].mode == modeFlat {
		start--
	}
	if start == end {
		return
	}

	e.fcmds = e.fcmds[:0]
	for i := start; i < end; i++ {
		e.fcmds = append(e.fcmds, e.bcmds[i].doc)
	}
	if !e.fits(start, e.pos, e.bcmds[end-1].ind) {
		for i := start; i < end; i++ {
			e.bcmds[i].mode = modeBreak
		}
	}
}

// best pops commands off e.bcmds until its length returns to top, emitting
// to out. It returns whether everything it wrote stayed within e.width —
// used by the caller only when that caller is itself resolving a Union.
func (e *engine[A]) best(top int, out RenderAnnotated[A]) (bool, error) {
	fits := true

	for top < len(e.bcmds) {
		c := e.bcmds[len(e.bcmds)-1]
		e.bcmds = e.bcmds[:len(e.bcmds)-1]

	dispatch:
		for {
			ind, mode, doc := c.ind, c.mode, c.doc
			switch doc.kind {
			case kindNil:
				break dispatch
			case kindAppend:
				for doc.kind == kindAppend {
					e.bcmds = append(e.bcmds, cmd[A]{ind: ind, mode: mode, doc: doc.right})
					doc = doc.left
				}
				c.doc = doc
				continue dispatch
			case kindFlatAlt:
				if mode == modeBreak {
					c.doc = doc.left
				} else {
					c.doc = doc.right
				}
				continue dispatch
			case kindGroup:
				if mode == modeBreak && e.fitting(doc.left, e.pos, ind) {
					c.mode = modeFlat
				}
				c.doc = doc.left
				continue dispatch
			case kindNest:
				c.ind = saturatingAdd(ind, doc.offset)
				c.doc = doc.left
				continue dispatch
			case kindHardline:
				if err := e.writeNewline(out, ind); err != nil {
					return fits, err
				}
				e.pos = ind
				if mode == modeFlat {
					e.recheckFlatSuffix()
				}
			case kindRenderLen:
				if err := out.WriteStringAll(doc.left.text); err != nil {
					return fits, err
				}
				e.pos += doc.length
				fits = fits && e.pos <= e.width
			case kindText:
				if err := out.WriteStringAll(doc.text); err != nil {
					return fits, err
				}
				e.pos += len(doc.text)
				fits = fits && e.pos <= e.width
			case kindAnnotated:
				if err := out.PushAnnotation(doc.ann); err != nil {
					return fits, err
				}
				e.annotationLevels = append(e.annotationLevels, len(e.bcmds))
				c.doc = doc.left
				continue dispatch
			case kindUnion:
				pos := e.pos
				annotationLevels := len(e.annotationLevels)
				floor := len(e.bcmds)

				e.bcmds = append(e.bcmds, cmd[A]{ind: ind, mode: mode, doc: doc.left})

				buf := &bufferSink[A]{}
				committed, err := e.best(floor, buf)
				if err == nil && committed {
					if err := buf.replay(out); err != nil {
						return fits, err
					}
				} else {
					e.pos = pos
					e.bcmds = e.bcmds[:floor]
					e.annotationLevels = e.annotationLevels[:annotationLevels]
					c.doc = doc.right
					continue dispatch
				}
			case kindColumn:
				expanded := doc.fn(e.pos)
				c.doc = &expanded
				continue dispatch
			case kindNesting:
				expanded := doc.fn(ind)
				c.doc = &expanded
				continue dispatch
			case kindFail:
				return fits, out.FailDoc()
			}
			break dispatch
		}

		for len(e.annotationLevels) > 0 && e.annotationLevels[len(e.annotationLevels)-1] == len(e.bcmds) {
			e.annotationLevels = e.annotationLevels[:len(e.annotationLevels)-1]
			if err := out.PopAnnotation(); err != nil {
				return fits, err
			}
		}
	}

	return fits, nil
}
