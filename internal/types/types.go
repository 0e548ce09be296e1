package types

// SegmentKind 标识一个渲染片段的类型
type SegmentKind int

const (
	// SegmentText 普通文本（已格式化为安全 HTML）
	SegmentText SegmentKind = iota
	// SegmentMention 用户提及 <@ID>
	SegmentMention
	// SegmentChannel 频道引用 <#ID>
	SegmentChannel
	// SegmentRole 角色提及 <@&ID>
	SegmentRole
	// SegmentSpecial @everyone / @here
	SegmentSpecial
	// SegmentLink 裸 URL
	SegmentLink
)

// String returns the wire name of the kind.
func (k SegmentKind) String() string {
	switch k {
	case SegmentText:
		return "text"
	case SegmentMention:
		return "mention"
	case SegmentChannel:
		return "channel"
	case SegmentRole:
		return "role"
	case SegmentSpecial:
		return "special"
	case SegmentLink:
		return "link"
	default:
		return "unknown"
	}
}

// SpecialKey 特殊提及的键
type SpecialKey string

const (
	SpecialEveryone SpecialKey = "everyone"
	SpecialHere     SpecialKey = "here"
)

// Span 片段在原始消息中的字节区间 [Start, End)
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Segment 渲染输出的基本单元
type Segment interface {
	Kind() SegmentKind
	// SourceSpan 返回片段覆盖的原始区间
	SourceSpan() Span
	// Token 重建片段的原始标记形式
	Token() string
}

// TextSegment 两个标记之间的文本（gap）
type TextSegment struct {
	Span
	Text string `json:"text"`
	HTML string `json:"html"`
}

func (s *TextSegment) Kind() SegmentKind { return SegmentText }
func (s *TextSegment) SourceSpan() Span  { return s.Span }
func (s *TextSegment) Token() string     { return s.Text }

// MentionSegment 用户提及
type MentionSegment struct {
	Span
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s *MentionSegment) Kind() SegmentKind { return SegmentMention }
func (s *MentionSegment) SourceSpan() Span  { return s.Span }
func (s *MentionSegment) Token() string     { return "<@" + s.ID + ">" }

// ChannelSegment 频道引用
type ChannelSegment struct {
	Span
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s *ChannelSegment) Kind() SegmentKind { return SegmentChannel }
func (s *ChannelSegment) SourceSpan() Span  { return s.Span }
func (s *ChannelSegment) Token() string     { return "<#" + s.ID + ">" }

// RoleSegment 角色提及
type RoleSegment struct {
	Span
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s *RoleSegment) Kind() SegmentKind { return SegmentRole }
func (s *RoleSegment) SourceSpan() Span  { return s.Span }
func (s *RoleSegment) Token() string     { return "<@&" + s.ID + ">" }

// SpecialSegment @everyone 或 @here
//
// Key 总是小写；Raw 保留源文本原样（如 "@EVERYONE"）。
type SpecialSegment struct {
	Span
	Key  SpecialKey `json:"key"`
	Name string     `json:"name"`
	Raw  string     `json:"raw"`
}

func (s *SpecialSegment) Kind() SegmentKind { return SegmentSpecial }
func (s *SpecialSegment) SourceSpan() Span  { return s.Span }
func (s *SpecialSegment) Token() string {
	if s.Raw != "" {
		return s.Raw
	}
	return "@" + string(s.Key)
}

// LinkSegment 裸 URL，URL 与 Label 相同
type LinkSegment struct {
	Span
	URL   string `json:"url"`
	Label string `json:"label"`
}

func (s *LinkSegment) Kind() SegmentKind { return SegmentLink }
func (s *LinkSegment) SourceSpan() Span  { return s.Span }
func (s *LinkSegment) Token() string     { return s.URL }
