package preview

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
)

// Fetcher 获取单个 URL 的预览元数据
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*Metadata, error)
}

// HTTPFetcher 通过 HTTP GET 获取页面并解析元数据
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string
	MaxBytes  int64
}

// NewHTTPFetcher creates an HTTPFetcher. A nil client gets a fresh client
// with the given timeout.
func NewHTTPFetcher(client *http.Client, timeout time.Duration, userAgent string, maxBytes int64) *HTTPFetcher {
	if client == nil {
		client = &http.Client{
			Timeout: timeout,
		}
	}
	return &HTTPFetcher{
		Client:    client,
		UserAgent: userAgent,
		MaxBytes:  maxBytes,
	}
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (*Metadata, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid preview url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,image/*;q=0.8,*/*;q=0.5")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch preview: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	var body io.Reader = resp.Body
	if f.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, f.MaxBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read preview body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	mediaType, _, _ := mime.ParseMediaType(contentType)

	// 直接指向图片的链接
	if strings.HasPrefix(mediaType, "image/") || IsImage(data) {
		return &Metadata{URL: pageURL, ImageURL: pageURL}, nil
	}
	if mediaType != "text/html" && mediaType != "application/xhtml+xml" {
		return &Metadata{URL: pageURL}, nil
	}

	reader, err := charset.NewReader(bytes.NewReader(data), contentType)
	if err != nil {
		reader = bytes.NewReader(data)
	}
	md := ParseHTML(reader, base)
	md.URL = pageURL
	return md, nil
}

// IsImage 通过魔术字节检查数据是否为常见图片格式
func IsImage(data []byte) bool {
	if len(data) < 4 {
		return false
	}

	// PNG: 89 50 4E 47
	if data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 {
		return true
	}

	// JPEG: FF D8 FF
	if data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return true
	}

	// GIF: 47 49 46 38
	if data[0] == 0x47 && data[1] == 0x49 && data[2] == 0x46 && data[3] == 0x38 {
		return true
	}

	// WebP: RIFF ... WEBP
	if len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP" {
		return true
	}

	return false
}
