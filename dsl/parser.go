package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)(?:pt|mm|cm|in|x)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[;:]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Document is the root AST node of a markup file.
//
//	doc Demo v1 {
//	  page { width: 120mm }
//	  view 1 { size: 12pt  "Hello " span 2 { "world" } }
//	}
type Document struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"Newline* 'doc' @Ident"`
	Version  string         `parser:"@Ident"`
	Sections []*Section     `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Section is a top-level section: page settings or a text view.
type Section struct {
	Page *PageSection `parser:"  @@"`
	View *ViewSection `parser:"| @@"`
}

// Kind returns the human-readable section type.
func (s *Section) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Page != nil:
		return "page"
	case s.View != nil:
		return "view"
	default:
		return "unknown"
	}
}

// PageSection holds page geometry assignments.
type PageSection struct {
	Block *Block `parser:"'page' Newline* @@"`
}

// ViewSection 描述一个文本视图，ID 同时作为触摸的默认归属。
type ViewSection struct {
	Pos   lexer.Position `parser:"" json:"-"`
	ID    int            `parser:"'view' @Number"`
	Block *Block         `parser:"Newline* @@"`
}

// Block is a delimited list of statements.
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement inside a block: a nested span, an assignment or a text literal.
type Statement struct {
	Span       *Span        `parser:"  @@"`
	Assignment *Assignment  `parser:"| @@"`
	Text       *TextLiteral `parser:"| @@"`
}

// Span tags the text produced by its block with Owner.
type Span struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Owner int            `parser:"'span' @Number"`
	Block *Block         `parser:"Newline* @@"`
}

// Assignment uses colon syntax (key: value).
type Assignment struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident ':'"`
	Value *Value         `parser:"@@"`
}

// TextLiteral encapsulates raw string statements within blocks.
type TextLiteral struct {
	Value StringLiteral `parser:"@String"`
}

// Value represents property values. Numbers and bare words may repeat,
// e.g. "10mm 5mm" or "underline line-through". Bare words stop at the block
// keywords, so "decoration: underline span 2 { ... }" keeps the span.
type Value struct {
	String  *StringLiteral `parser:"  @String"`
	Numbers []string       `parser:"| @Number+"`
	Color   *string        `parser:"| @Color"`
	Words   []string       `parser:"| ( (?! 'span' | 'view' | 'page' ) @Ident )+"`
}

// Raw 返回值的文本形式。
func (v *Value) Raw() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case len(v.Numbers) > 0:
		return strings.Join(v.Numbers, " ")
	case v.Color != nil:
		return *v.Color
	default:
		return strings.Join(v.Words, " ")
	}
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses markup from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseFile parses markup from r, reporting positions against filename.
func ParseFile(filename string, r io.Reader) (*Document, error) {
	return documentParser.Parse(filename, r)
}

// ParseString parses markup from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}
