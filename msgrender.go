// Package msgrender 将聊天消息的原始文本渲染为有序的类型化片段
//
// 一次扫描同时识别 Markdown 格式、结构化提及（用户、频道、角色、@everyone/@here）
// 与裸 URL，并对所有文本做 HTML 转义，结果可直接映射为 UI 元素。
//
// 核心功能：
//   - Render(): 消息 → []Segment（文本 / 提及 / 频道 / 角色 / 特殊提及 / 链接）
//   - FormatMarkdown(): 单段文本 → 安全 HTML
//   - SegmentsToHTML(): 片段 → 完整 HTML
//   - PlainText(): 去除格式后的纯文本，用于通知与搜索摘要
//   - PreviewResolver: 带缓存的链接预览元数据解析
//
// 示例：
//
//	segments := msgrender.Render(content,
//	    msgrender.WithMentionResolver(func(id string) (string, bool) {
//	        name, ok := users[id]
//	        return name, ok
//	    }),
//	)
//	for _, seg := range segments {
//	    switch s := seg.(type) {
//	    case *msgrender.TextSegment:
//	        // s.HTML 已转义
//	    case *msgrender.MentionSegment:
//	        // s.ID, s.Name
//	    case *msgrender.LinkSegment:
//	        // s.URL
//	    }
//	}
//
// 每个文本 gap 独立格式化：跨越提及的 **粗体** 不会在单个片段内闭合，
// 按顺序拼接片段时由展示层负责呈现。
package msgrender

import (
	"github.com/riverfjs/msgrender-go/internal/markdown"
	"github.com/riverfjs/msgrender-go/internal/scanner"
	"github.com/riverfjs/msgrender-go/internal/types"
)

// Render 将消息内容渲染为片段列表
//
// 参数：
//   - content: 原始消息文本
//   - opts: 解析器等选项，如 WithMentionResolver
//
// 返回：
//   - []Segment: 按源位置严格递增的片段，完整覆盖 content；空输入返回空切片
func Render(content string, opts ...Option) []Segment {
	options := applyOptions(opts...)
	return RenderWithResolvers(content, &options.Resolvers)
}

// RenderWithResolvers is Render with an explicit resolver record. A nil
// record resolves every token to its fallback name.
func RenderWithResolvers(content string, resolvers *Resolvers) []Segment {
	segments := make([]Segment, 0)
	if content == "" {
		return segments
	}
	if resolvers == nil {
		resolvers = &Resolvers{}
	}

	cursor := 0
	for {
		tok, ok := scanner.Next(content, cursor)
		if !ok {
			break
		}
		if tok.Start > cursor {
			segments = append(segments, newTextSegment(content, cursor, tok.Start))
		}
		segments = append(segments, resolvers.segmentFor(content, tok))
		cursor = tok.End
	}

	// 只有非空的尾部才产生文本片段
	if cursor < len(content) {
		segments = append(segments, newTextSegment(content, cursor, len(content)))
	}
	return segments
}

func newTextSegment(content string, start, end int) *TextSegment {
	raw := content[start:end]
	return &TextSegment{
		Span: types.Span{Start: start, End: end},
		Text: raw,
		HTML: markdown.Format(raw),
	}
}

func (r *Resolvers) segmentFor(content string, tok scanner.Token) Segment {
	span := types.Span{Start: tok.Start, End: tok.End}
	switch tok.Kind {
	case scanner.KindMention:
		return &MentionSegment{Span: span, ID: tok.Value, Name: r.mentionName(tok.Value)}
	case scanner.KindChannel:
		return &ChannelSegment{Span: span, ID: tok.Value, Name: r.channelName(tok.Value)}
	case scanner.KindRole:
		return &RoleSegment{Span: span, ID: tok.Value, Name: r.roleName(tok.Value)}
	case scanner.KindSpecial:
		key := SpecialKey(tok.Value)
		return &SpecialSegment{Span: span, Key: key, Name: r.specialName(key), Raw: content[tok.Start:tok.End]}
	default:
		return &LinkSegment{Span: span, URL: tok.Value, Label: tok.Value}
	}
}
