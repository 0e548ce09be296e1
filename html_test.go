package msgrender

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentsToHTML_Snapshot(t *testing.T) {
	in := "Hello **world** <@123>! Visit https://example.com/docs.\n\n```ts\nconst value = 42;\n```"
	want := `Hello <strong>world</strong> <span class="mention" data-mention-id="123">@Ada</span>! ` +
		`Visit <a class="link" href="https://example.com/docs">https://example.com/docs</a>.<br /><br />` +
		`<pre><code class="language-ts">const value = 42;</code></pre>`

	assert.Equal(t, want, SegmentsToHTML(Render(in, WithMentionResolver(ada))))
	assert.Equal(t, want, RenderHTML(in, WithMentionResolver(ada)))
}

func TestSegmentsToHTML_Elements(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts []Option
		want string
	}{
		{
			name: "channel",
			in:   "<#c1>",
			opts: []Option{WithChannelResolver(MapResolver(map[string]string{"c1": "general"}))},
			want: `<span class="channel" data-channel-id="c1">#general</span>`,
		},
		{
			name: "role",
			in:   "<@&r1>",
			want: `<span class="role" data-role-id="r1">@r1</span>`,
		},
		{
			name: "special",
			in:   "@here",
			want: `<span class="special" data-special-mention="here">@here</span>`,
		},
		{
			name: "names are escaped",
			in:   "<@1>",
			opts: []Option{WithMentionResolver(func(string) (string, bool) { return "<b>Eve</b>", true })},
			want: `<span class="mention" data-mention-id="1">@&lt;b&gt;Eve&lt;/b&gt;</span>`,
		},
		{
			name: "link query is escaped",
			in:   "https://x.io/?a=1&b=2",
			want: `<a class="link" href="https://x.io/?a=1&amp;b=2">https://x.io/?a=1&amp;b=2</a>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderHTML(tt.in, tt.opts...))
		})
	}
}

func TestSegmentsToHTML_Empty(t *testing.T) {
	assert.Equal(t, "", SegmentsToHTML(nil))
	assert.Equal(t, "", RenderHTML(""))
}
