package mylog

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"semlog/app/config"

	"github.com/phsym/console-slog"
	slogmulti "github.com/samber/slog-multi"
	slogtelegram "github.com/samber/slog-telegram/v2"
)

func Preinit() {
	slog.SetDefault(slog.New(consoleHandler(slog.LevelDebug)))
}

func Init(cfg *config.Config) error {
	router := slogmulti.Router().
		Add(consoleHandler(ParseLevel(cfg.Log.Level)))

	if cfg.Log.Telegram.Token != "" {
		router = router.Add(
			slogtelegram.Option{
				Level:     slog.LevelInfo,
				Token:     cfg.Log.Telegram.Token,
				Username:  cfg.Log.Telegram.ChatID,
				AddSource: true,
			}.NewTelegramHandler(),
			toTelegram,
		)
	}

	slog.SetDefault(slog.New(router.Handler()))

	return nil
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

func consoleHandler(level slog.Level) slog.Handler {
	return console.NewHandler(os.Stderr, &console.HandlerOptions{
		AddSource: true,
		Level:     level,
	})
}

// toTelegram routes errors and records tagged with a "telegram" attribute,
// e.g. episode summaries.
func toTelegram(_ context.Context, r slog.Record) bool {
	if r.Level >= slog.LevelError {
		return true
	}

	tagged := false
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key == "telegram" {
			tagged = true
			return false
		}
		return true
	})

	return tagged
}
