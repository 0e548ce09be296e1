// Package preview 解析链接预览元数据（OpenGraph / Twitter Card / <title>）
//
// Resolver 在内存中缓存结果（包括失败的负缓存），
// 并合并同一 URL 的并发请求。
package preview

import (
	"errors"
	"net/url"
	"strings"
)

// ErrUnsupportedURL 非 http/https 或无主机名的 URL
var ErrUnsupportedURL = errors.New("preview: unsupported url")

// Metadata 链接预览元数据
type Metadata struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	SiteName    string `json:"site_name,omitempty"`
	IconURL     string `json:"icon_url,omitempty"`
}

func (m *Metadata) clone() *Metadata {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

// NormalizeURL trims raw and returns its canonical form when it is an
// http or https URL with a host.
func NormalizeURL(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if u.Host == "" {
		return "", false
	}
	return u.String(), true
}
