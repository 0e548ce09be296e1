// Package markdown 将消息中的一段纯文本转换为安全 HTML
//
// 处理顺序固定：代码块 → 转义 → 行内代码占位 → 粗体/删除线/斜体 → 换行 → 恢复占位。
// 任何输入都不会 panic，未闭合的标记按字面保留。
package markdown

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/riverfjs/msgrender-go/internal/buffer"
	"github.com/riverfjs/msgrender-go/internal/util"
)

const (
	placeholderPrefix = "\x02"
	placeholderSuffix = "\x03"
)

var (
	// codeBlockRe 匹配 ```lang\ncode```
	codeBlockRe = regexp.MustCompile("(?s)```([^\\r\\n]*)\\r?\\n(.*?)```")

	inlineCodeRe = regexp.MustCompile("`([^`]+?)`")

	boldRe           = regexp.MustCompile(`(?s)\*\*(.+?)\*\*`)
	boldUnderscoreRe = regexp.MustCompile(`(?s)__(.+?)__`)
	strikethroughRe  = regexp.MustCompile(`(?s)~~(.+?)~~`)

	// 斜体内容不含分隔符本身，因此 "__" 与 "**" 不会被当作斜体起点
	italicUnderscoreRe = regexp.MustCompile(`_([^_]+?)_`)
	italicAsteriskRe   = regexp.MustCompile(`\*([^*]+?)\*`)

	placeholderRe = regexp.MustCompile(placeholderPrefix + `(\d+)` + placeholderSuffix)

	// 输入中的分隔字符转为数字实体，避免伪造占位符
	controlEscaper = strings.NewReplacer(placeholderPrefix, "&#2;", placeholderSuffix, "&#3;")
)

// Format converts content to HTML-safe markup.
func Format(content string) string {
	if content == "" {
		return ""
	}

	out := buffer.New()
	last := 0
	for _, m := range codeBlockRe.FindAllStringSubmatchIndex(content, -1) {
		start, end := m[0], m[1]
		if start > last {
			out.Write(applyInline(content[last:start]))
		}
		out.Write(renderCodeBlock(content[m[2]:m[3]], content[m[4]:m[5]]))
		last = end
	}
	if last < len(content) {
		out.Write(applyInline(content[last:]))
	}
	return out.String()
}

func renderCodeBlock(language, code string) string {
	lang := util.SanitizeLanguage(language)
	code = util.NormalizeNewlines(code)
	code = strings.TrimSuffix(code, "\n")

	out := buffer.New()
	if lang != "" {
		out.WriteAll(`<pre><code class="language-`, lang, `">`)
	} else {
		out.Write("<pre><code>")
	}
	out.WriteAll(EscapeHTML(code), "</code></pre>")
	return out.String()
}

func applyInline(content string) string {
	if content == "" {
		return ""
	}

	escaped := controlEscaper.Replace(EscapeHTML(util.NormalizeNewlines(content)))

	var codes []string
	withCode := inlineCodeRe.ReplaceAllStringFunc(escaped, func(match string) string {
		codes = append(codes, "<code>"+match[1:len(match)-1]+"</code>")
		return placeholderPrefix + strconv.Itoa(len(codes)-1) + placeholderSuffix
	})

	withCode = boldRe.ReplaceAllString(withCode, "<strong>${1}</strong>")
	withCode = boldUnderscoreRe.ReplaceAllString(withCode, "<strong>${1}</strong>")
	withCode = strikethroughRe.ReplaceAllString(withCode, "<del>${1}</del>")
	withCode = italicUnderscoreRe.ReplaceAllString(withCode, "<em>${1}</em>")
	withCode = italicAsteriskRe.ReplaceAllString(withCode, "<em>${1}</em>")
	withCode = strings.ReplaceAll(withCode, "\n", "<br />")

	if len(codes) == 0 {
		return withCode
	}
	return placeholderRe.ReplaceAllStringFunc(withCode, func(match string) string {
		idx, err := strconv.Atoi(match[len(placeholderPrefix) : len(match)-len(placeholderSuffix)])
		if err != nil || idx < 0 || idx >= len(codes) {
			return ""
		}
		return codes[idx]
	})
}
