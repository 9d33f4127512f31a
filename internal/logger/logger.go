package logger

import (
	"os"
	"strings"
	"time"

	"Fundbridge/config"

	"github.com/rs/zerolog"
)

var log = zerolog.New(os.Stdout).With().Timestamp().Logger()

func Init(cfg *config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.App.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.IsDevelopment() {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}).
			With().Timestamp().Str("app", cfg.App.Name).Logger()
		return
	}

	log = zerolog.New(os.Stdout).
		With().Timestamp().Str("app", cfg.App.Name).Str("env", cfg.App.Environment).Logger()
}

// Get devolve o logger configurado, util para bibliotecas que recebem um zerolog.Logger.
func Get() zerolog.Logger {
	return log
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}
