package internal

import (
	"io"
	"log/slog"

	"github.com/starford/desknote/internal/render"
	"github.com/starford/desknote/internal/wallpaper"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config    *Config
	logOutput io.Writer
	logger    *slog.Logger
	version   string
	renderer  render.Renderer
	setter    wallpaper.Setter
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithLogOutput sets where the JSON logger writes. Defaults to stdout.
func WithLogOutput(w io.Writer) Option {
	return func(a *application) {
		a.logOutput = w
	}
}

// WithLogger replaces the JSON logger built from the config.
func WithLogger(logger *slog.Logger) Option {
	return func(a *application) {
		a.logger = logger
	}
}

// WithVersion sets the version reported by the MCP server.
func WithVersion(v string) Option {
	return func(a *application) {
		a.version = v
	}
}

// WithRenderer replaces the ImageMagick renderer.
func WithRenderer(r render.Renderer) Option {
	return func(a *application) {
		a.renderer = r
	}
}

// WithSetter replaces the platform wallpaper setter.
func WithSetter(s wallpaper.Setter) Option {
	return func(a *application) {
		a.setter = s
	}
}
