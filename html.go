package msgrender

import (
	"github.com/riverfjs/msgrender-go/internal/buffer"
	"github.com/riverfjs/msgrender-go/internal/markdown"
)

// SegmentsToHTML 将片段按顺序拼接为 HTML，每种片段对应一个元素
//
// 文本片段直接使用 HTML 字段；其余片段的 ID、名称与 URL 均经过转义。
func SegmentsToHTML(segments []Segment) string {
	out := buffer.New()
	for _, seg := range segments {
		writeSegmentHTML(out, seg)
	}
	return out.String()
}

// RenderHTML renders content and assembles the result in one call.
func RenderHTML(content string, opts ...Option) string {
	return SegmentsToHTML(Render(content, opts...))
}

func writeSegmentHTML(out *buffer.TextBuffer, seg Segment) {
	esc := markdown.EscapeHTML
	switch s := seg.(type) {
	case *TextSegment:
		out.Write(s.HTML)
	case *MentionSegment:
		out.WriteAll(`<span class="mention" data-mention-id="`, esc(s.ID), `">@`, esc(s.Name), `</span>`)
	case *ChannelSegment:
		out.WriteAll(`<span class="channel" data-channel-id="`, esc(s.ID), `">#`, esc(s.Name), `</span>`)
	case *RoleSegment:
		out.WriteAll(`<span class="role" data-role-id="`, esc(s.ID), `">@`, esc(s.Name), `</span>`)
	case *SpecialSegment:
		out.WriteAll(`<span class="special" data-special-mention="`, esc(string(s.Key)), `">`, esc(s.Name), `</span>`)
	case *LinkSegment:
		out.WriteAll(`<a class="link" href="`, esc(s.URL), `">`, esc(s.Label), `</a>`)
	}
}
