package preview

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseHTML extracts preview metadata from an HTML document. Relative
// image and icon URLs are resolved against base. Parsing stops at <body>.
func ParseHTML(r io.Reader, base *url.URL) *Metadata {
	var (
		og      = map[string]string{}
		twitter = map[string]string{}
		plain   = map[string]string{}
		title   strings.Builder
		inTitle bool
		icon    string
	)

	z := html.NewTokenizer(r)
loop:
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			break loop

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.Body:
				break loop
			case atom.Title:
				inTitle = tt == html.StartTagToken
			case atom.Meta:
				key := strings.ToLower(strings.TrimSpace(attr(tok, "property")))
				if key == "" {
					key = strings.ToLower(strings.TrimSpace(attr(tok, "name")))
				}
				content := strings.TrimSpace(attr(tok, "content"))
				if key == "" || content == "" {
					continue
				}
				switch {
				case strings.HasPrefix(key, "og:"):
					setOnce(og, strings.TrimPrefix(key, "og:"), content)
				case strings.HasPrefix(key, "twitter:"):
					setOnce(twitter, strings.TrimPrefix(key, "twitter:"), content)
				default:
					setOnce(plain, key, content)
				}
			case atom.Link:
				if icon == "" && isIconRel(attr(tok, "rel")) {
					icon = strings.TrimSpace(attr(tok, "href"))
				}
			}

		case html.TextToken:
			if inTitle {
				title.Write(z.Text())
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.Title:
				inTitle = false
			case atom.Head:
				break loop
			}
		}
	}

	return &Metadata{
		Title:       first(og["title"], twitter["title"], collapseSpace(title.String())),
		Description: first(og["description"], twitter["description"], plain["description"]),
		ImageURL:    resolve(base, first(og["image"], og["image:url"], twitter["image"], twitter["image:src"])),
		SiteName:    first(og["site_name"], plain["application-name"]),
		IconURL:     resolve(base, icon),
	}
}

func attr(tok html.Token, name string) string {
	for _, a := range tok.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

func setOnce(m map[string]string, key, value string) {
	if _, ok := m[key]; !ok {
		m[key] = value
	}
}

func isIconRel(rel string) bool {
	for _, part := range strings.Fields(strings.ToLower(rel)) {
		if part == "icon" || part == "apple-touch-icon" {
			return true
		}
	}
	return false
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// resolve 将相对地址解析为绝对地址，只保留 http/https
func resolve(base *url.URL, ref string) string {
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}
