// Package plaintext 使用 goldmark 将消息文本去除 Markdown 格式
package plaintext

import (
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// md 只启用聊天消息支持的删除线扩展，并发安全
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.Strikethrough,
	),
)

// Strip returns the text content of raw with markdown syntax removed.
// Leading and trailing whitespace of raw is kept as is.
func Strip(raw string) string {
	core := strings.TrimFunc(raw, unicode.IsSpace)
	if core == "" {
		return raw
	}
	start := strings.Index(raw, core)
	lead, trail := raw[:start], raw[start+len(core):]

	source := []byte(core)
	node := md.Parser().Parse(text.NewReader(source))

	w := newWalker(source)
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		return w.walk(n, entering)
	})
	return lead + w.String() + trail
}

type walker struct {
	source []byte
	sb     strings.Builder
}

func newWalker(source []byte) *walker {
	return &walker{source: source}
}

func (w *walker) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	switch n := node.(type) {
	case *ast.Text:
		w.sb.Write(n.Segment.Value(w.source))
		if n.SoftLineBreak() || n.HardLineBreak() {
			w.sb.WriteByte('\n')
		}

	case *ast.String:
		w.sb.Write(n.Value)

	case *ast.AutoLink:
		w.sb.Write(n.Label(w.source))
		return ast.WalkSkipChildren, nil

	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			w.sb.Write(seg.Value(w.source))
		}
		return ast.WalkSkipChildren, nil

	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
		w.startBlock()
		w.writeLines(n)
		return ast.WalkSkipChildren, nil

	case *ast.Paragraph, *ast.Heading, *ast.TextBlock:
		w.startBlock()
	}
	return ast.WalkContinue, nil
}

// startBlock 块之间用单个换行分隔
func (w *walker) startBlock() {
	if w.sb.Len() == 0 {
		return
	}
	if !strings.HasSuffix(w.sb.String(), "\n") {
		w.sb.WriteByte('\n')
	}
}

func (w *walker) writeLines(n ast.Node) {
	var code strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		code.Write(line.Value(w.source))
	}
	w.sb.WriteString(strings.TrimSuffix(code.String(), "\n"))
}

func (w *walker) String() string {
	return strings.TrimRight(w.sb.String(), "\n")
}
