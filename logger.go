package msgrender

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger 全局日志记录器，默认只输出 warn 及以上
var Logger = zerolog.New(os.Stderr).
	Level(zerolog.WarnLevel).
	With().
	Timestamp().
	Str("component", "msgrender").
	Logger()

// SetLogger 设置自定义日志记录器
func SetLogger(logger zerolog.Logger) {
	Logger = logger
}
