package msgrender

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig is returned by LoadConfig and Config.Validate.
var ErrInvalidConfig = errors.New("msgrender: invalid config")

const (
	defaultPreviewTimeout  = 10 * time.Second
	defaultMaxPreviewBytes = 1 << 20
	defaultUserAgent       = "Mozilla/5.0 (compatible; msgrender-linkpreview/1.0)"
)

// Duration wraps time.Duration so TOML files can use "10s" style strings.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config 链接预览等非纯函数组件的配置
type Config struct {
	EnableLinkPreviews bool     `toml:"enable_link_previews"`
	PreviewTimeout     Duration `toml:"preview_timeout"`
	MaxPreviewBytes    int64    `toml:"max_preview_bytes"`
	UserAgent          string   `toml:"user_agent"`
}

var (
	defaultConfig     *Config
	defaultConfigOnce sync.Once
)

// DefaultConfig returns the default configuration (singleton). Callers that
// want to change values should Clone it first.
func DefaultConfig() *Config {
	defaultConfigOnce.Do(func() {
		defaultConfig = newDefaultConfig()
	})
	return defaultConfig
}

func newDefaultConfig() *Config {
	return &Config{
		EnableLinkPreviews: true,
		PreviewTimeout:     Duration{defaultPreviewTimeout},
		MaxPreviewBytes:    defaultMaxPreviewBytes,
		UserAgent:          defaultUserAgent,
	}
}

// Clone returns a copy of c.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// Validate checks that all limits are usable.
func (c *Config) Validate() error {
	if c.PreviewTimeout.Duration <= 0 {
		return fmt.Errorf("%w: preview_timeout must be positive, got %s", ErrInvalidConfig, c.PreviewTimeout.Duration)
	}
	if c.MaxPreviewBytes <= 0 {
		return fmt.Errorf("%w: max_preview_bytes must be positive, got %d", ErrInvalidConfig, c.MaxPreviewBytes)
	}
	return nil
}

// LoadConfig decodes a TOML file over the defaults and validates the result.
func LoadConfig(path string) (*Config, error) {
	cfg := newDefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Directory 用户、频道、角色的显示名目录
//
// TOML 示例：
//
//	[users]
//	123 = "Ada"
//
//	[channels]
//	chan-1 = "general"
//
//	[special]
//	here = "@online"
type Directory struct {
	Users    map[string]string `toml:"users"`
	Channels map[string]string `toml:"channels"`
	Roles    map[string]string `toml:"roles"`
	Special  map[string]string `toml:"special"`
}

// LoadDirectory decodes a TOML name directory.
func LoadDirectory(path string) (*Directory, error) {
	dir := &Directory{}
	if _, err := toml.DecodeFile(path, dir); err != nil {
		return nil, fmt.Errorf("failed to load directory from %s: %w", path, err)
	}
	return dir, nil
}

// ParseDirectory decodes a TOML name directory from a string.
func ParseDirectory(data string) (*Directory, error) {
	dir := &Directory{}
	if _, err := toml.Decode(data, dir); err != nil {
		return nil, fmt.Errorf("failed to parse directory: %w", err)
	}
	return dir, nil
}

// Resolvers builds a resolver record over the directory. Empty tables leave
// the corresponding resolver nil.
func (d *Directory) Resolvers() *Resolvers {
	r := &Resolvers{}
	if len(d.Users) > 0 {
		r.MentionName = MapResolver(d.Users)
	}
	if len(d.Channels) > 0 {
		r.ChannelName = MapResolver(d.Channels)
	}
	if len(d.Roles) > 0 {
		r.RoleName = MapResolver(d.Roles)
	}
	if len(d.Special) > 0 {
		special := d.Special
		r.SpecialMentionName = func(key SpecialKey) (string, bool) {
			name, ok := special[string(key)]
			return name, ok
		}
	}
	return r
}
