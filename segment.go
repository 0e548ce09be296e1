package msgrender

import "github.com/riverfjs/msgrender-go/internal/types"

// 导出类型别名
type (
	Segment        = types.Segment
	SegmentKind    = types.SegmentKind
	SpecialKey     = types.SpecialKey
	Span           = types.Span
	TextSegment    = types.TextSegment
	MentionSegment = types.MentionSegment
	ChannelSegment = types.ChannelSegment
	RoleSegment    = types.RoleSegment
	SpecialSegment = types.SpecialSegment
	LinkSegment    = types.LinkSegment
)

const (
	SegmentText    = types.SegmentText
	SegmentMention = types.SegmentMention
	SegmentChannel = types.SegmentChannel
	SegmentRole    = types.SegmentRole
	SegmentSpecial = types.SegmentSpecial
	SegmentLink    = types.SegmentLink

	SpecialEveryone = types.SpecialEveryone
	SpecialHere     = types.SpecialHere
)
