package msgrender

import (
	"github.com/riverfjs/msgrender-go/internal/preview"
)

// 导出类型别名
type (
	PreviewMetadata = preview.Metadata
	PreviewFetcher  = preview.Fetcher
	PreviewResolver = preview.Resolver
)

// ErrUnsupportedURL is returned when a preview is requested for a URL that
// is not http or https.
var ErrUnsupportedURL = preview.ErrUnsupportedURL

// NewHTTPPreviewFetcher 使用配置中的超时、User-Agent 与大小上限创建 HTTP 获取器
func NewHTTPPreviewFetcher(config *Config) PreviewFetcher {
	if config == nil {
		config = DefaultConfig()
	}
	return preview.NewHTTPFetcher(nil, config.PreviewTimeout.Duration, config.UserAgent, config.MaxPreviewBytes)
}

// NewPreviewResolver 创建链接预览解析器
//
// 参数：
//   - config: 配置，如为 nil 则使用默认配置；EnableLinkPreviews 决定初始开关
//   - fetcher: 元数据获取器，如为 nil 则使用 NewHTTPPreviewFetcher(config)
//
// 每次共享获取以 PreviewTimeout 为上限。解析器通过创建时的 Logger 记录缓存命中（debug）与获取失败（warn）。
func NewPreviewResolver(config *Config, fetcher PreviewFetcher) *PreviewResolver {
	if config == nil {
		config = DefaultConfig()
	}
	if fetcher == nil {
		fetcher = NewHTTPPreviewFetcher(config)
	}
	return preview.NewResolver(fetcher,
		preview.WithLogger(Logger),
		preview.WithEnabled(config.EnableLinkPreviews),
		preview.WithTimeout(config.PreviewTimeout.Duration),
	)
}
