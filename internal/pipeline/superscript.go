package pipeline

import (
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindSuperscript is the goldmark node kind for ^superscript^ spans.
var KindSuperscript = gast.NewNodeKind("Superscript")

// SuperscriptNode is an inline node holding superscript text.
type SuperscriptNode struct {
	gast.BaseInline
}

// Dump implements gast.Node.
func (n *SuperscriptNode) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, nil, nil)
}

// Kind implements gast.Node.
func (n *SuperscriptNode) Kind() gast.NodeKind {
	return KindSuperscript
}

type superscriptDelimiterProcessor struct{}

func (p *superscriptDelimiterProcessor) IsDelimiter(b byte) bool {
	return b == '^'
}

func (p *superscriptDelimiterProcessor) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	return opener.Char == closer.Char
}

func (p *superscriptDelimiterProcessor) OnMatch(consumes int) gast.Node {
	return &SuperscriptNode{}
}

var defaultSuperscriptDelimiterProcessor = &superscriptDelimiterProcessor{}

type superscriptParser struct{}

func (s *superscriptParser) Trigger() []byte {
	return []byte{'^'}
}

// Parse pushes a single-caret delimiter. Runs of two or more carets stay literal text.
func (s *superscriptParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	before := block.PrecendingCharacter()
	line, segment := block.PeekLine()
	node := parser.ScanDelimiter(line, before, 1, defaultSuperscriptDelimiterProcessor)
	if node == nil || node.OriginalLength > 1 || before == '^' {
		return nil
	}
	node.Segment = segment.WithStop(segment.Start + node.OriginalLength)
	block.Advance(node.OriginalLength)
	pc.PushDelimiter(node)
	return node
}

func (s *superscriptParser) CloseBlock(parent gast.Node, pc parser.Context) {}

type superscriptHTMLRenderer struct {
	html.Config
}

func (r *superscriptHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindSuperscript, r.renderSuperscript)
}

func (r *superscriptHTMLRenderer) renderSuperscript(w util.BufWriter, source []byte, n gast.Node, entering bool) (gast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<sup>")
	} else {
		_, _ = w.WriteString("</sup>")
	}
	return gast.WalkContinue, nil
}

type superscript struct{}

// Superscript is a goldmark extension rendering ^text^ as <sup>text</sup>.
var Superscript = &superscript{}

func (e *superscript) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&superscriptParser{}, 500),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&superscriptHTMLRenderer{Config: html.NewConfig()}, 500),
	))
}
