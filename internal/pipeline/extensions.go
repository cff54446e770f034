package pipeline

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Extensions selects the Markdown grammar features recognized during conversion.
// The zero value is plain CommonMark.
type Extensions struct {
	Strikethrough    bool // ~~text~~
	Table            bool // GFM pipe tables
	Autolink         bool // bare URLs and www. links become anchors
	TaskList         bool // - [ ] / - [x] list items
	Superscript      bool // ^text^
	Footnotes        bool // [^1] references and definitions
	DescriptionLists bool // term\n: definition

	// The flags below serve alternative configurations, such as rendering
	// the same input under other grammars in tests. DefaultExtensions never
	// sets them and no config key or flag reaches them.
	Typographer bool // smart quotes and dashes
	HeadingIDs  bool // id attributes on headings
	CJK         bool // East Asian line breaking and emphasis rules
}

// DefaultExtensions returns the grammar used by the viewer.
// The shell page styling depends on exactly this set, so it is not configurable.
func DefaultExtensions() Extensions {
	return Extensions{
		Strikethrough:    true,
		Table:            true,
		Autolink:         true,
		TaskList:         true,
		Superscript:      true,
		Footnotes:        true,
		DescriptionLists: true,
	}
}

// extenders maps enabled flags to goldmark extensions in a stable order.
func (e Extensions) extenders() []goldmark.Extender {
	var exts []goldmark.Extender
	if e.Strikethrough {
		exts = append(exts, extension.Strikethrough)
	}
	if e.Table {
		exts = append(exts, extension.Table)
	}
	if e.Autolink {
		exts = append(exts, extension.Linkify)
	}
	if e.TaskList {
		exts = append(exts, extension.TaskList)
	}
	if e.Superscript {
		exts = append(exts, Superscript)
	}
	if e.Footnotes {
		exts = append(exts, extension.Footnote)
	}
	if e.DescriptionLists {
		exts = append(exts, extension.DefinitionList)
	}
	if e.Typographer {
		exts = append(exts, extension.Typographer)
	}
	if e.CJK {
		exts = append(exts, extension.CJK)
	}
	return exts
}

func (e Extensions) parserOptions() []parser.Option {
	if e.HeadingIDs {
		return []parser.Option{parser.WithAutoHeadingID()}
	}
	return nil
}
