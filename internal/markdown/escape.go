package markdown

import "strings"

// htmlEscaper 依次转义 & < > " '，& 必须最先处理
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes the five HTML-significant characters exactly once.
func EscapeHTML(value string) string {
	if value == "" {
		return ""
	}
	return htmlEscaper.Replace(value)
}
