package preview

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/riverfjs/msgrender-go/internal/scanner"
)

// Resolver 带缓存的链接预览解析器
//
// 缓存只在内存中；失败的请求以 nil 负缓存，直到 Clear。
type Resolver struct {
	fetcher Fetcher
	log     zerolog.Logger
	enabled atomic.Bool
	timeout time.Duration

	mu    sync.RWMutex
	cache map[string]*Metadata
	group singleflight.Group
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger used for cache and fetch events.
func WithLogger(logger zerolog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.log = logger
	}
}

// WithEnabled sets whether previews are resolved at all.
func WithEnabled(enabled bool) ResolverOption {
	return func(r *Resolver) {
		r.enabled.Store(enabled)
	}
}

// WithTimeout bounds each shared fetch. Zero leaves it to the fetcher.
func WithTimeout(timeout time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.timeout = timeout
	}
}

// NewResolver creates a Resolver over fetcher. Previews are enabled by default.
func NewResolver(fetcher Fetcher, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		fetcher: fetcher,
		log:     zerolog.Nop(),
		cache:   make(map[string]*Metadata),
	}
	r.enabled.Store(true)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetEnabled toggles preview resolution at runtime.
func (r *Resolver) SetEnabled(enabled bool) {
	r.enabled.Store(enabled)
}

// Enabled reports whether previews are resolved.
func (r *Resolver) Enabled() bool {
	return r.enabled.Load()
}

// Resolve 返回 URL 的预览元数据
//
// 返回：
//   - (nil, nil): 预览被禁用，或获取失败（已记录日志并负缓存）
//   - ErrUnsupportedURL: 非 http/https URL
//   - ctx.Err(): 调用方取消或超时
//
// 同一 URL 的并发调用共享一次获取。获取不受任何单个调用方
// ctx 取消的影响，调用方取消只让它自己提前返回，结果仍会写入缓存。
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (*Metadata, error) {
	if !r.Enabled() {
		return nil, nil
	}
	normalized, ok := NormalizeURL(rawURL)
	if !ok {
		return nil, ErrUnsupportedURL
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if md, hit := r.lookup(normalized); hit {
		r.log.Debug().Str("url", normalized).Bool("negative", md == nil).Msg("preview cache hit")
		return md.clone(), nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(normalized, func() (interface{}, error) {
		// 等待期间可能已被其他调用写入
		if md, hit := r.lookup(normalized); hit {
			return md, nil
		}
		return r.fetch(fetchCtx, normalized), nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		md, _ := res.Val.(*Metadata)
		return md.clone(), nil
	}
}

// fetch 获取并写入缓存，失败时负缓存
func (r *Resolver) fetch(ctx context.Context, normalized string) *Metadata {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	md, err := r.fetcher.Fetch(ctx, normalized)
	if err != nil {
		r.log.Warn().Err(err).Str("url", normalized).Msg("failed to resolve link preview")
		r.store(normalized, nil)
		return nil
	}
	r.store(normalized, md)
	return md
}

// ResolveFirst resolves the preview of the first link in a message.
// Messages without links give (nil, nil).
func (r *Resolver) ResolveFirst(ctx context.Context, content string) (*Metadata, error) {
	for _, tok := range scanner.All(content) {
		if tok.Kind == scanner.KindLink {
			return r.Resolve(ctx, tok.Value)
		}
	}
	return nil, nil
}

// Clear drops every cached entry.
func (r *Resolver) Clear() {
	r.mu.Lock()
	r.cache = make(map[string]*Metadata)
	r.mu.Unlock()
}

// Len returns the number of cached entries, negative ones included.
func (r *Resolver) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}

func (r *Resolver) lookup(key string) (*Metadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	md, ok := r.cache[key]
	return md, ok
}

func (r *Resolver) store(key string, md *Metadata) {
	r.mu.Lock()
	r.cache[key] = md
	r.mu.Unlock()
}
