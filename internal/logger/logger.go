package logger

import (
	"io"
	"os"

	"github.com/rollbar/rollbar-go"
	"github.com/rs/zerolog"

	"github.com/madhava-poojari/swimschool-api/internal/config"
)

func New(cfg *config.Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter builds the service logger on top of w.
func NewWithWriter(cfg *config.Config, w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if cfg.IsDevelopment() {
		w = zerolog.ConsoleWriter{Out: w}
	}
	log := zerolog.New(w).With().Timestamp().Str("service", "swimschool-api").Logger()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	log = log.Level(level)

	if cfg.RollbarToken != "" {
		rollbar.SetToken(cfg.RollbarToken)
		rollbar.SetEnvironment(cfg.Env)
		log = log.Hook(RollbarHook{})
	}
	return log
}

// RollbarHook forwards error and above to Rollbar.
type RollbarHook struct{}

func (RollbarHook) Run(_ *zerolog.Event, level zerolog.Level, msg string) {
	switch level {
	case zerolog.ErrorLevel:
		rollbar.Error(msg)
	case zerolog.FatalLevel, zerolog.PanicLevel:
		rollbar.Critical(msg)
	}
}

// Flush waits for queued Rollbar items; call before exit.
func Flush() {
	rollbar.Wait()
}
