package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mitchellh/go-homedir"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

var resolutionRe = regexp.MustCompile(`^[1-9][0-9]*x[1-9][0-9]*$`)

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	Data      DataConfig        `yaml:"data"`
	Wallpaper WallpaperConfig   `yaml:"wallpaper"`
	SQLite    SQLiteConfig      `yaml:"sqlite"`
	Auth      AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Data.Validate(); err != nil {
		return err
	}
	if err := c.Wallpaper.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds the local HTTP shell configuration.
type HTTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// DataConfig locates the note log and rendered images.
// LogFile and OutputDir are relative to Dir.
type DataConfig struct {
	Dir       string `yaml:"dir"`
	LogFile   string `yaml:"log_file"`
	OutputDir string `yaml:"output_dir"`
}

// Validate expands "~" in Dir and validates the data configuration.
func (c *DataConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.LogFile, validation.Required, validation.By(relativePath)),
		validation.Field(&c.OutputDir, validation.Required, validation.By(relativePath)),
	); err != nil {
		return err
	}
	dir, err := homedir.Expand(c.Dir)
	if err != nil {
		return fmt.Errorf("data: expand dir: %w", err)
	}
	c.Dir = dir
	return nil
}

// WallpaperConfig holds the fixed presentation parameters of the rendered image
// and the commands used to render and apply it.
type WallpaperConfig struct {
	Font          string        `yaml:"font"`
	PointSize     int           `yaml:"point_size"`
	Background    string        `yaml:"background"`
	Fill          string        `yaml:"fill"`
	Size          string        `yaml:"size"`
	TextWidth     int           `yaml:"text_width"`
	Margin        int           `yaml:"margin"`
	Magick        string        `yaml:"magick"`
	RenderTimeout time.Duration `yaml:"render_timeout"`
	Keep          int           `yaml:"keep"`
	// SetCommand overrides the platform wallpaper setter; "{path}" is
	// replaced by the absolute image path.
	SetCommand string `yaml:"set_command"`
}

// Validate validates the wallpaper configuration.
func (c *WallpaperConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Font, validation.Required),
		validation.Field(&c.PointSize, validation.Required, validation.Min(1)),
		validation.Field(&c.Background, validation.Required),
		validation.Field(&c.Fill, validation.Required),
		validation.Field(&c.Size, validation.Required, validation.Match(resolutionRe).Error("must look like 1920x1080")),
		validation.Field(&c.TextWidth, validation.Required, validation.Min(1)),
		validation.Field(&c.Margin, validation.Min(0)),
		validation.Field(&c.Magick, validation.Required),
		validation.Field(&c.RenderTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.Keep, validation.Min(0)),
		validation.Field(&c.SetCommand, validation.When(c.SetCommand != "",
			validation.By(containsPlaceholder))),
	)
}

// SQLiteConfig holds the history index database configuration.
// A relative Path is resolved against the data directory.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	); err != nil {
		return err
	}
	p, err := homedir.Expand(c.Path)
	if err != nil {
		return fmt.Errorf("sqlite: expand path: %w", err)
	}
	c.Path = p
	return nil
}

// Resolve returns the database path, anchored at dataDir when relative.
func (c *SQLiteConfig) Resolve(dataDir string) string {
	if filepath.IsAbs(c.Path) {
		return c.Path
	}
	return filepath.Join(dataDir, c.Path)
}

// AuthConfig holds authentication configuration for the HTTP shell.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with the stock DeskNote settings.
// Data lives next to the executable, as the desktop build did.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Host: "127.0.0.1",
				Port: 8787,
			},
		},
		Data: DataConfig{
			Dir:       executableDir(),
			LogFile:   filepath.Join("daily_note", "note_log.txt"),
			OutputDir: "temp",
		},
		Wallpaper: WallpaperConfig{
			Font:       "Arial",
			PointSize:  72,
			Background: "black",
			Fill:       "white",
			Size:       "1920x1080",
			TextWidth:  1800,
			Margin:     50,
			Magick:     "magick",
		},
		SQLite: SQLiteConfig{
			Path: "desknote.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

func relativePath(value interface{}) error {
	s, _ := value.(string)
	if filepath.IsAbs(s) {
		return fmt.Errorf("must be relative to the data directory")
	}
	if s == ".." || strings.HasPrefix(filepath.Clean(s), ".."+string(filepath.Separator)) {
		return fmt.Errorf("must stay inside the data directory")
	}
	return nil
}

func containsPlaceholder(value interface{}) error {
	s, _ := value.(string)
	if !strings.Contains(s, "{path}") {
		return fmt.Errorf("must contain the {path} placeholder")
	}
	return nil
}
