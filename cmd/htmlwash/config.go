package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/njchilds90/htmlwasher"
)

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into Config.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrInvalidLogFormat is returned for a HTMLWASH_LOG_FORMAT other than text or json.
	ErrInvalidLogFormat = errors.New("invalid log format")
)

// Log output formats.
const (
	formatText = "text"
	formatJSON = "json"
)

// Config is read from the environment, after an optional .env file.
type Config struct {
	RenderUnallowedTags bool       `env:"HTMLWASH_RENDER_UNALLOWED_TAGS" envDefault:"false"`
	AllowedTags         []string   `env:"HTMLWASH_ALLOWED_TAGS" envSeparator:","`
	AllowedAttributes   []string   `env:"HTMLWASH_ALLOWED_ATTRIBUTES" envSeparator:","`
	LogLevel            slog.Level `env:"HTMLWASH_LOG_LEVEL" envDefault:"info"`
	LogFormat           string     `env:"HTMLWASH_LOG_FORMAT" envDefault:"text"`
}

func loadConfig() (Config, error) {
	// The .env file is optional.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	switch cfg.LogFormat {
	case formatText, formatJSON:
	default:
		return Config{}, fmt.Errorf("%w %q: must be %q or %q", ErrInvalidLogFormat, cfg.LogFormat, formatText, formatJSON)
	}
	return cfg, nil
}

// Policy builds the wash policy. Unset whitelists fall back to the
// library defaults.
func (c Config) Policy() *htmlwasher.Policy {
	p := htmlwasher.DefaultPolicy()
	p.RenderUnallowedTags = c.RenderUnallowedTags
	if len(c.AllowedTags) > 0 {
		p.AllowedTags = c.AllowedTags
	}
	if len(c.AllowedAttributes) > 0 {
		p.AllowedAttributes = c.AllowedAttributes
	}
	return p
}

func newLogger(c Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	var h slog.Handler
	if c.LogFormat == formatJSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With(slog.String("service", "htmlwash"))
}
