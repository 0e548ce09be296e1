package msgrender

import (
	"regexp"

	"github.com/riverfjs/msgrender-go/internal/scanner"
)

// ExtractLinks returns every link in content, in order of appearance.
// Links use the same grammar as Render, so unsafe schemes never appear.
func ExtractLinks(content string) []string {
	links := make([]string, 0)
	for _, tok := range scanner.All(content) {
		if tok.Kind == scanner.KindLink {
			links = append(links, tok.Value)
		}
	}
	return links
}

// ExtractFirstLink returns the first link in content.
func ExtractFirstLink(content string) (string, bool) {
	for _, tok := range scanner.All(content) {
		if tok.Kind == scanner.KindLink {
			return tok.Value, true
		}
	}
	return "", false
}

// ExtractSpecialMentionKeys 返回消息中出现的特殊提及键（去重，按首次出现顺序）
//
// 边界规则与 Render 相同："hello@here.com" 不算提及。
func ExtractSpecialMentionKeys(content string) []SpecialKey {
	keys := make([]SpecialKey, 0, 2)
	seen := make(map[SpecialKey]bool, 2)
	for _, tok := range scanner.All(content) {
		if tok.Kind != scanner.KindSpecial {
			continue
		}
		key := SpecialKey(tok.Value)
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys
}

// HighlightPart is one piece of a HighlightText result.
type HighlightPart struct {
	Text  string `json:"text"`
	Match bool   `json:"match"`
}

// HighlightText 按查询词（字面量、不区分大小写）切分文本，用于搜索结果高亮
//
// 查询为空或没有匹配时返回单个未匹配片段。
func HighlightText(text, query string) []HighlightPart {
	if query == "" {
		return []HighlightPart{{Text: text}}
	}
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		return []HighlightPart{{Text: text}}
	}

	parts := make([]HighlightPart, 0)
	last := 0
	for _, m := range re.FindAllStringIndex(text, -1) {
		if m[0] > last {
			parts = append(parts, HighlightPart{Text: text[last:m[0]]})
		}
		parts = append(parts, HighlightPart{Text: text[m[0]:m[1]], Match: true})
		last = m[1]
	}
	if len(parts) == 0 {
		return []HighlightPart{{Text: text}}
	}
	if last < len(text) {
		parts = append(parts, HighlightPart{Text: text[last:]})
	}
	return parts
}
