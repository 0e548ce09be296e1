package msgrender

import (
	"strings"

	"github.com/riverfjs/msgrender-go/internal/markdown"
	"github.com/riverfjs/msgrender-go/internal/plaintext"
)

// FormatMarkdown 将一段文本转换为安全 HTML
//
// 顺序：代码块 → 转义 → 行内代码 → 粗体 → 删除线 → 斜体 → 换行。
// 未闭合的标记按字面输出，空输入返回空字符串。
func FormatMarkdown(content string) string {
	return markdown.Format(content)
}

// EscapeHTML escapes & < > " ' with named entities.
func EscapeHTML(value string) string {
	return markdown.EscapeHTML(value)
}

// PlainText 返回去除 Markdown 后的纯文本，提及替换为显示名
//
// 用于通知正文与搜索摘要。每个文本 gap 单独去格式，保留其首尾空白。
func PlainText(content string, opts ...Option) string {
	segments := Render(content, opts...)
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch s := seg.(type) {
		case *TextSegment:
			parts = append(parts, plaintext.Strip(s.Text))
		case *MentionSegment:
			parts = append(parts, "@"+s.Name)
		case *ChannelSegment:
			parts = append(parts, "#"+s.Name)
		case *RoleSegment:
			parts = append(parts, "@"+s.Name)
		case *SpecialSegment:
			parts = append(parts, s.Name)
		case *LinkSegment:
			parts = append(parts, s.Label)
		}
	}
	return strings.Join(parts, "")
}
