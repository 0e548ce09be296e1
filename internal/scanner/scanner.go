// Package scanner 在原始消息中查找结构化标记（提及、频道、角色、特殊提及、URL）
//
// 扫描基于显式游标：调用方保存偏移量，反复调用 Next 获取偏移量之后的第一个标记，
// 然后从标记末尾继续。扫描器本身无状态。
package scanner

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/riverfjs/msgrender-go/internal/util"
)

// Kind 标记类型
type Kind int

const (
	KindMention Kind = iota
	KindChannel
	KindRole
	KindSpecial
	KindLink
)

func (k Kind) String() string {
	switch k {
	case KindMention:
		return "mention"
	case KindChannel:
		return "channel"
	case KindRole:
		return "role"
	case KindSpecial:
		return "special"
	case KindLink:
		return "link"
	default:
		return "unknown"
	}
}

// Token 一次匹配的位置与负载，[Start, End) 为字节偏移
type Token struct {
	Kind  Kind
	Start int
	End   int
	// Value: 提及/频道/角色为 ID，特殊提及为小写键，链接为去掉尾部标点后的 URL
	Value string
}

// Next returns the first token starting at or after offset.
func Next(text string, offset int) (Token, bool) {
	if offset < 0 {
		offset = 0
	}
	i := offset
	// angleStop 之前的 '<' 都会在同一位置失败，无需重复扫描
	angleStop := -1
	for i < len(text) {
		switch c := text[i]; c {
		case '<':
			if i < angleStop {
				break
			}
			tok, stop, ok := matchAngle(text, i)
			if ok {
				return tok, true
			}
			angleStop = stop
		case '@':
			if tok, ok := matchSpecial(text, i); ok {
				return tok, true
			}
		case 'h', 'H':
			if tok, end, ok := matchLink(text, i); ok {
				return tok, true
			} else if end > i {
				// 无效 URL 整体跳过，留在文本中
				i = end
				continue
			}
		}
		i++
	}
	return Token{}, false
}

// All returns every token in text, in order.
func All(text string) []Token {
	tokens := make([]Token, 0)
	cursor := 0
	for {
		tok, ok := Next(text, cursor)
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
		cursor = tok.End
	}
}

// matchAngle 匹配 <@&ID>、<@ID>、<#ID>，角色优先于用户提及。
// 失败时返回 ID 扫描停止的位置（空白、'>' 或文本末尾）
func matchAngle(text string, i int) (Token, int, bool) {
	rest := text[i:]
	var kind Kind
	var prefix int
	switch {
	case strings.HasPrefix(rest, "<@&"):
		kind, prefix = KindRole, 3
	case strings.HasPrefix(rest, "<@"):
		kind, prefix = KindMention, 2
	case strings.HasPrefix(rest, "<#"):
		kind, prefix = KindChannel, 2
	default:
		return Token{}, i, false
	}

	id, end, ok := scanID(text, i+prefix)
	if ok {
		return Token{Kind: kind, Start: i, End: end, Value: id}, end, true
	}
	if kind == KindRole {
		// "<@&>" 不是角色，但可能是 ID 为 "&..." 的用户提及
		if id, end, ok := scanID(text, i+2); ok {
			return Token{Kind: KindMention, Start: i, End: end, Value: id}, end, true
		}
	}
	return Token{}, end, false
}

// scanID 读取非空、不含空白与 '>' 的 ID，并要求以 '>' 结束。
// 失败时 end 为停止扫描的位置
func scanID(text string, start int) (id string, end int, ok bool) {
	j := start
	for j < len(text) {
		r, size := utf8.DecodeRuneInString(text[j:])
		if r == '>' {
			if j == start {
				return "", j, false
			}
			return text[start:j], j + 1, true
		}
		if unicode.IsSpace(r) {
			return "", j, false
		}
		j += size
	}
	return "", j, false
}

var specialKeys = []string{"everyone", "here"}

// matchSpecial 匹配完整单词 @everyone / @here（不区分大小写）
func matchSpecial(text string, i int) (Token, bool) {
	if prev, ok := util.RuneBefore(text, i); ok && (prev == '@' || util.IsWordRune(prev)) {
		return Token{}, false
	}
	rest := text[i+1:]
	for _, key := range specialKeys {
		if !util.HasPrefixFold(rest, key) {
			continue
		}
		end := i + 1 + len(key)
		if next, ok := util.RuneAt(text, end); ok && util.IsWordRune(next) {
			return Token{}, false
		}
		return Token{Kind: KindSpecial, Start: i, End: end, Value: key}, true
	}
	return Token{}, false
}

// matchLink 匹配 http(s) URL。返回的 end 为候选区间的结束位置，
// 即使候选无效也会返回，调用方据此跳过整段
func matchLink(text string, i int) (Token, int, bool) {
	rest := text[i:]
	var schemeLen int
	switch {
	case util.HasPrefixFold(rest, "https://"):
		schemeLen = len("https://")
	case util.HasPrefixFold(rest, "http://"):
		schemeLen = len("http://")
	default:
		return Token{}, i, false
	}

	end := i + schemeLen
	for end < len(text) {
		r, size := utf8.DecodeRuneInString(text[end:])
		if !isURLRune(r) {
			break
		}
		end += size
	}
	if end == i+schemeLen {
		return Token{}, i, false
	}

	candidate := TrimTrailingPunctuation(text[i:end])
	if !IsSafeURL(candidate) {
		return Token{}, end, false
	}
	return Token{Kind: KindLink, Start: i, End: i + len(candidate), Value: candidate}, end, true
}

func isURLRune(r rune) bool {
	switch r {
	case '<', '>', '"', '\'':
		return false
	}
	return !unicode.IsSpace(r)
}

var closingToOpening = map[byte]byte{
	')': '(',
	']': '[',
	'}': '{',
}

// TrimTrailingPunctuation strips sentence punctuation from the end of a URL.
// Closing brackets are kept while they balance an opener inside the URL.
func TrimTrailingPunctuation(raw string) string {
	// 括号计数只统计一次，逐个去掉时同步递减
	var counts map[byte]int
	for raw != "" {
		last := raw[len(raw)-1]
		switch last {
		case '.', ',', ';', ':', '!', '?':
			raw = raw[:len(raw)-1]
			continue
		case ')', ']', '}':
			if counts == nil {
				counts = bracketCounts(raw)
			}
			if counts[closingToOpening[last]] < counts[last] {
				counts[last]--
				raw = raw[:len(raw)-1]
				continue
			}
		}
		return raw
	}
	return raw
}

func bracketCounts(raw string) map[byte]int {
	counts := make(map[byte]int, 6)
	for i := 0; i < len(raw); i++ {
		switch c := raw[i]; c {
		case '(', ')', '[', ']', '{', '}':
			counts[c]++
		}
	}
	return counts
}

// IsSafeURL reports whether raw parses as an http or https URL with a host.
func IsSafeURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false
	}
	return u.Host != ""
}
