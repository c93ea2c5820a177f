package logger

import (
	"FeedSeeder/internal/api/config"
	"io"
	log "log/slog"
	"os"
)

var LogWriter io.Writer = os.Stdout

// InitLogger 初始化 slog，stdout 输出 JSON，配置了文件时同时写入文件
func InitLogger(cfg config.LoggerConfig) error {
	level := ParseLevel(cfg.Level)
	hStdout := log.NewJSONHandler(os.Stdout, &log.HandlerOptions{Level: level})

	var finalHandler log.Handler = hStdout
	LogWriter = os.Stdout

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		hFile := log.NewJSONHandler(f, &log.HandlerOptions{Level: level})
		finalHandler = &TeeHandler{
			handlers: []log.Handler{hStdout, hFile},
		}
		LogWriter = io.MultiWriter(os.Stdout, f)
	}

	logger := log.New(&ContextHandler{finalHandler})
	log.SetDefault(logger)
	return nil
}

func ParseLevel(s string) log.Level {
	switch s {
	case "debug":
		return log.LevelDebug
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
