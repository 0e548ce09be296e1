package msgrender

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// text 构造期望的文本片段
func text(start, end int, raw, html string) *TextSegment {
	return &TextSegment{Span: Span{Start: start, End: end}, Text: raw, HTML: html}
}

func ada(id string) (string, bool) {
	if id == "123" {
		return "Ada", true
	}
	return "", false
}

func TestRender_MarkdownMentionAndLink(t *testing.T) {
	segments := Render("Hello **world** <@123>! Visit https://example.com/docs.", WithMentionResolver(ada))

	want := []Segment{
		text(0, 16, "Hello **world** ", "Hello <strong>world</strong> "),
		&MentionSegment{Span: Span{Start: 16, End: 22}, ID: "123", Name: "Ada"},
		text(22, 30, "! Visit ", "! Visit "),
		&LinkSegment{Span: Span{Start: 30, End: 54}, URL: "https://example.com/docs", Label: "https://example.com/docs"},
		text(54, 55, ".", "."),
	}
	assert.Equal(t, want, segments)
}

func TestRender_UnsafeProtocolsAndScripts(t *testing.T) {
	in := "javascript:alert(1) <script>alert(1)</script>"
	segments := Render(in)

	require.Len(t, segments, 1)
	seg, ok := segments[0].(*TextSegment)
	require.True(t, ok)
	assert.Equal(t, in, seg.Text)
	assert.Equal(t, "javascript:alert(1) &lt;script&gt;alert(1)&lt;/script&gt;", seg.HTML)
}

func TestRender_ChannelAndRole(t *testing.T) {
	segments := Render("Join <#chan-1> and ping <@&role-9>!",
		WithChannelResolver(MapResolver(map[string]string{"chan-1": "general"})),
		WithRoleResolver(MapResolver(map[string]string{"role-9": "Moderators"})),
	)

	want := []Segment{
		text(0, 5, "Join ", "Join "),
		&ChannelSegment{Span: Span{Start: 5, End: 14}, ID: "chan-1", Name: "general"},
		text(14, 24, " and ping ", " and ping "),
		&RoleSegment{Span: Span{Start: 24, End: 34}, ID: "role-9", Name: "Moderators"},
		text(34, 35, "!", "!"),
	}
	assert.Equal(t, want, segments)
}

func TestRender_SpecialMentions(t *testing.T) {
	segments := Render("Hey @everyone and @here!", WithSpecialMentionResolver(func(key SpecialKey) (string, bool) {
		if key == SpecialHere {
			return "@here", true
		}
		return "@everyone", true
	}))

	want := []Segment{
		text(0, 4, "Hey ", "Hey "),
		&SpecialSegment{Span: Span{Start: 4, End: 13}, Key: SpecialEveryone, Name: "@everyone", Raw: "@everyone"},
		text(13, 18, " and ", " and "),
		&SpecialSegment{Span: Span{Start: 18, End: 23}, Key: SpecialHere, Name: "@here", Raw: "@here"},
		text(23, 24, "!", "!"),
	}
	assert.Equal(t, want, segments)
}

func TestRender_Fallbacks(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		resolvers *Resolvers
		want      []string
	}{
		{
			name: "no resolvers",
			in:   "<@1> <#2> <@&3> @here",
			want: []string{"1", " ", "2", " ", "3", " ", "@here"},
		},
		{
			name: "resolver misses",
			in:   "<@1> @everyone",
			resolvers: &Resolvers{
				MentionName:        MapResolver(map[string]string{"other": "x"}),
				SpecialMentionName: func(SpecialKey) (string, bool) { return "", false },
			},
			want: []string{"1", " ", "@everyone"},
		},
		{
			name: "blank names fall back",
			in:   "<@1><#2>",
			resolvers: &Resolvers{
				MentionName: func(string) (string, bool) { return "   ", true },
				ChannelName: func(string) (string, bool) { return "", true },
			},
			want: []string{"1", "2"},
		},
		{
			name: "resolved names are trimmed",
			in:   "<@1> @here",
			resolvers: &Resolvers{
				MentionName:        func(string) (string, bool) { return "  Ada ", true },
				SpecialMentionName: func(SpecialKey) (string, bool) { return " @online ", true },
			},
			want: []string{"Ada", " ", "@online"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := RenderWithResolvers(tt.in, tt.resolvers)
			assert.Equal(t, tt.want, displayNames(segments))
		})
	}
}

// displayNames 提取每个片段的显示名，文本片段取原文
func displayNames(segments []Segment) []string {
	names := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch s := seg.(type) {
		case *TextSegment:
			names = append(names, s.Text)
		case *MentionSegment:
			names = append(names, s.Name)
		case *ChannelSegment:
			names = append(names, s.Name)
		case *RoleSegment:
			names = append(names, s.Name)
		case *SpecialSegment:
			names = append(names, s.Name)
		case *LinkSegment:
			names = append(names, s.Label)
		}
	}
	return names
}

func kinds(segments []Segment) []SegmentKind {
	out := make([]SegmentKind, 0, len(segments))
	for _, seg := range segments {
		out = append(out, seg.Kind())
	}
	return out
}

func TestRender_SpecialMentionCase(t *testing.T) {
	segments := Render("Hey @EVERYONE and @Here!")

	require.Equal(t, []SegmentKind{SegmentText, SegmentSpecial, SegmentText, SegmentSpecial, SegmentText}, kinds(segments))
	everyone := segments[1].(*SpecialSegment)
	assert.Equal(t, SpecialEveryone, everyone.Key)
	assert.Equal(t, "@everyone", everyone.Name)
	assert.Equal(t, "@EVERYONE", everyone.Token())

	here := segments[3].(*SpecialSegment)
	assert.Equal(t, SpecialHere, here.Key)
	assert.Equal(t, "@Here", here.Token())
}

func TestRender_FormattingIsPerGap(t *testing.T) {
	segments := Render("**bold <@1> still**")

	require.Equal(t, []SegmentKind{SegmentText, SegmentMention, SegmentText}, kinds(segments))
	assert.Equal(t, "**bold ", segments[0].(*TextSegment).HTML)
	assert.Equal(t, " still**", segments[2].(*TextSegment).HTML)

	segments = Render("_a_ <@1> **b**")
	assert.Equal(t, "<em>a</em> ", segments[0].(*TextSegment).HTML)
	assert.Equal(t, " <strong>b</strong>", segments[2].(*TextSegment).HTML)
}

func TestRender_TextSegmentBoundaries(t *testing.T) {
	t.Run("empty content", func(t *testing.T) {
		segments := Render("")
		require.NotNil(t, segments)
		assert.Empty(t, segments)
	})

	t.Run("adjacent tokens have no text between them", func(t *testing.T) {
		segments := Render("<@1><@2>@here")
		assert.Equal(t, []SegmentKind{SegmentMention, SegmentMention, SegmentSpecial}, kinds(segments))
	})

	t.Run("no trailing text after final token", func(t *testing.T) {
		segments := Render("hi <@1>")
		assert.Equal(t, []SegmentKind{SegmentText, SegmentMention}, kinds(segments))
	})

	t.Run("whitespace tail is kept", func(t *testing.T) {
		segments := Render("<@1> ")
		require.Equal(t, []SegmentKind{SegmentMention, SegmentText}, kinds(segments))
		assert.Equal(t, " ", segments[1].(*TextSegment).HTML)
	})

	t.Run("no text segment is ever empty", func(t *testing.T) {
		for _, in := range []string{"<@1>", "<@1><#2>", "https://a.io<@1>", "@everyone\n"} {
			for _, seg := range Render(in) {
				if ts, ok := seg.(*TextSegment); ok {
					assert.NotEmpty(t, ts.Text, in)
					assert.NotEmpty(t, ts.HTML, in)
				}
			}
		}
	})
}

func TestRender_EscapesEachGapOnce(t *testing.T) {
	segments := Render("a & b <@1> c &amp; d")

	require.Len(t, segments, 3)
	assert.Equal(t, "a &amp; b ", segments[0].(*TextSegment).HTML)
	assert.Equal(t, " c &amp;amp; d", segments[2].(*TextSegment).HTML)
	assert.NotContains(t, segments[0].(*TextSegment).HTML, "&amp;amp;")
}

func TestRender_LinkPunctuation(t *testing.T) {
	segments := Render("(see https://example.com/a_(b))")

	want := []Segment{
		text(0, 5, "(see ", "(see "),
		&LinkSegment{Span: Span{Start: 5, End: 30}, URL: "https://example.com/a_(b)", Label: "https://example.com/a_(b)"},
		text(30, 31, ")", ")"),
	}
	assert.Equal(t, want, segments)
}

func TestRender_RoundTrip(t *testing.T) {
	inputs := []string{
		"Hello **world** <@123>! Visit https://example.com/docs.",
		"Join <#chan-1> and ping <@&role-9>!",
		"Hey @everyone and @here!",
		"Hey @EVERYONE and @Here!",
		"<@1><@2><#3>",
		"```go\nfmt.Println(\"<@1>\")\n```",
		"mail hello@here.com or https://x.io/a?b=1&c=2, thanks",
		"javascript:alert(1) <script>alert(1)</script>",
		"unicode 你好 <@用户> 🎆 https://例子.测试/路径",
		"",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			segments := Render(in)

			var rebuilt strings.Builder
			cursor := 0
			for _, seg := range segments {
				span := seg.SourceSpan()
				assert.Equal(t, cursor, span.Start, "segments must be contiguous")
				assert.Greater(t, span.End, span.Start, "segments must not be empty")
				assert.Equal(t, in[span.Start:span.End], seg.Token())
				rebuilt.WriteString(seg.Token())
				cursor = span.End
			}
			assert.Equal(t, len(in), cursor)
			assert.Equal(t, in, rebuilt.String())
		})
	}
}

func TestRender_Options(t *testing.T) {
	r := &Resolvers{MentionName: ada}

	assert.Equal(t, Render("<@123>", WithResolvers(r)), RenderWithResolvers("<@123>", r))
	assert.Equal(t, Render("<@123>"), RenderWithResolvers("<@123>", nil))
	assert.Equal(t, []string{"123"}, displayNames(Render("<@123>", WithResolvers(nil), nil)))

	// 后面的选项覆盖前面的
	segments := Render("<@123>", WithResolvers(r), WithMentionResolver(MapResolver(map[string]string{"123": "Grace"})))
	assert.Equal(t, []string{"Grace"}, displayNames(segments))
}

func TestRender_LongUnterminatedInput(t *testing.T) {
	in := strings.Repeat("<@", 40000)

	start := time.Now()
	segments := Render(in)
	assert.Less(t, time.Since(start), 2*time.Second)

	require.Len(t, segments, 1)
	assert.Equal(t, in, segments[0].Token())
}

func TestRender_Concurrent(t *testing.T) {
	in := "Hello **world** <@123>! Visit https://example.com/docs."
	want := Render(in, WithMentionResolver(ada))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, Render(in, WithMentionResolver(ada)))
		}()
	}
	wg.Wait()
}

func TestSegmentKind_String(t *testing.T) {
	assert.Equal(t, "text", SegmentText.String())
	assert.Equal(t, "mention", SegmentMention.String())
	assert.Equal(t, "channel", SegmentChannel.String())
	assert.Equal(t, "role", SegmentRole.String())
	assert.Equal(t, "special", SegmentSpecial.String())
	assert.Equal(t, "link", SegmentLink.String())
}
