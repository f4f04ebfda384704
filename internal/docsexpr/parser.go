package docsexpr

import (
	"fmt"
	"strconv"

	"github.com/kpumuk/docweave"
)

// Parse reads a single s-expression literal describing a Doc[string] and
// returns the tree it builds. The grammar:
//
//	(nil)
//	(fail)
//	(hardline)
//	(text "literal")
//	(append A B)
//	(concat A B ...)
//	(group A)
//	(nest N A)
//	(flatalt BROKEN FLAT)
//	(union COMMITTED FALLBACK)
//	(annotate "tag" A)
//	(line) (linebreak) (softline) (softbreak)
//
// Column and Nesting are function-valued and have no literal form; CLI input
// cannot express them.
func Parse(src string) (docweave.Doc[string], error) {
	p := &parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return docweave.Doc[string]{}, err
	}
	doc, err := p.parseDoc()
	if err != nil {
		return docweave.Doc[string]{}, err
	}
	if p.tok.kind != tokenEOF {
		return docweave.Doc[string]{}, fmt.Errorf("docsexpr: unexpected trailing input after top-level form")
	}
	return doc, nil
}

type parser struct {
	lex *lexer
	tok token
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) expect(k tokenKind) error {
	if p.tok.kind != k {
		return fmt.Errorf("docsexpr: unexpected token %q", p.tok.text)
	}
	return p.advance()
}

func (p *parser) parseDoc() (docweave.Doc[string], error) {
	if p.tok.kind != tokenLParen {
		return docweave.Doc[string]{}, fmt.Errorf("docsexpr: expected '(', got %q", p.tok.text)
	}
	if err := p.advance(); err != nil {
		return docweave.Doc[string]{}, err
	}
	if p.tok.kind != tokenSymbol {
		return docweave.Doc[string]{}, fmt.Errorf("docsexpr: expected form name, got %q", p.tok.text)
	}
	name := p.tok.text
	if err := p.advance(); err != nil {
		return docweave.Doc[string]{}, err
	}

	var doc docweave.Doc[string]
	var err error
	switch name {
	case "nil":
		doc = docweave.Nil[string]()
	case "fail":
		doc = docweave.Fail[string]()
	case "hardline":
		doc = docweave.Hardline[string]()
	case "line":
		doc = docweave.Line[string]()
	case "linebreak":
		doc = docweave.LineBreak[string]()
	case "softline":
		doc = docweave.SoftLine[string]()
	case "softbreak":
		doc = docweave.SoftBreak[string]()
	case "text":
		doc, err = p.parseText()
	case "append":
		doc, err = p.parseBinary(docweave.Append[string])
	case "flatalt":
		doc, err = p.parseBinary(docweave.FlatAlt[string])
	case "union":
		doc, err = p.parseBinary(docweave.Union[string])
	case "group":
		doc, err = p.parseUnary(docweave.Group[string])
	case "nest":
		doc, err = p.parseNest()
	case "concat":
		doc, err = p.parseConcat()
	case "annotate":
		doc, err = p.parseAnnotate()
	default:
		return docweave.Doc[string]{}, fmt.Errorf("docsexpr: unknown form %q", name)
	}
	if err != nil {
		return docweave.Doc[string]{}, err
	}
	if err := p.expect(tokenRParen); err != nil {
		return docweave.Doc[string]{}, fmt.Errorf("docsexpr: closing %q: %w", name, err)
	}
	return doc, nil
}

func (p *parser) parseText() (docweave.Doc[string], error) {
	if p.tok.kind != tokenString {
		return docweave.Doc[string]{}, fmt.Errorf("docsexpr: text expects a quoted string, got %q", p.tok.text)
	}
	s := p.tok.text
	if err := p.advance(); err != nil {
		return docweave.Doc[string]{}, err
	}
	return docweave.Text[string](s), nil
}

func (p *parser) parseUnary(build func(docweave.Doc[string]) docweave.Doc[string]) (docweave.Doc[string], error) {
	inner, err := p.parseDoc()
	if err != nil {
		return docweave.Doc[string]{}, err
	}
	return build(inner), nil
}

func (p *parser) parseBinary(build func(a, b docweave.Doc[string]) docweave.Doc[string]) (docweave.Doc[string], error) {
	a, err := p.parseDoc()
	if err != nil {
		return docweave.Doc[string]{}, err
	}
	b, err := p.parseDoc()
	if err != nil {
		return docweave.Doc[string]{}, err
	}
	return build(a, b), nil
}

func (p *parser) parseNest() (docweave.Doc[string], error) {
	if p.tok.kind != tokenNumber {
		return docweave.Doc[string]{}, fmt.Errorf("docsexpr: nest expects a numeric offset, got %q", p.tok.text)
	}
	n, err := strconv.Atoi(p.tok.text)
	if err != nil {
		return docweave.Doc[string]{}, fmt.Errorf("docsexpr: invalid nest offset %q: %w", p.tok.text, err)
	}
	if err := p.advance(); err != nil {
		return docweave.Doc[string]{}, err
	}
	inner, err := p.parseDoc()
	if err != nil {
		return docweave.Doc[string]{}, err
	}
	return docweave.Nest(n, inner), nil
}

func (p *parser) parseConcat() (docweave.Doc[string], error) {
	var docs []docweave.Doc[string]
	for p.tok.kind == tokenLParen {
		d, err := p.parseDoc()
		if err != nil {
			return docweave.Doc[string]{}, err
		}
		docs = append(docs, d)
	}
	return docweave.Concat(docs...), nil
}

func (p *parser) parseAnnotate() (docweave.Doc[string], error) {
	if p.tok.kind != tokenString {
		return docweave.Doc[string]{}, fmt.Errorf("docsexpr: annotate expects a quoted tag, got %q", p.tok.text)
	}
	tag := p.tok.text
	if err := p.advance(); err != nil {
		return docweave.Doc[string]{}, err
	}
	inner, err := p.parseDoc()
	if err != nil {
		return docweave.Doc[string]{}, err
	}
	return docweave.Annotate(tag, inner), nil
}
