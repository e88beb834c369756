// Package config loads the settings shared by the CLI, the HTTP server and
// the MCP server.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// AUDITREPORT_* environment variables (AUDITREPORT_SERVER_ADDR overrides
// server.addr). Without an explicit path the file is looked up as
// auditreport/config.yaml in the XDG config directories.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/kakehashi-asia/auditreport/document"
	"github.com/kakehashi-asia/auditreport/pagination"
	"github.com/kakehashi-asia/auditreport/render"
	"github.com/kakehashi-asia/auditreport/session"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "AUDITREPORT"

// RelPath is the config file location relative to the XDG config dirs.
const RelPath = "auditreport/config.yaml"

type Config struct {
	Log     LogConfig         `mapstructure:"log"`
	Server  ServerConfig      `mapstructure:"server"`
	Render  RenderConfig      `mapstructure:"render"`
	Charts  ChartConfig       `mapstructure:"charts"`
	Session SessionConfig     `mapstructure:"session"`
	Labels  pagination.Labels `mapstructure:"labels"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

type RenderConfig struct {
	PageSize       string `mapstructure:"page_size"`
	RemittanceCode string `mapstructure:"remittance_code"`
	FontFamily     string `mapstructure:"font_family"`
	FontRegular    string `mapstructure:"font_regular"`
	FontBold       string `mapstructure:"font_bold"`
	Stationery     string `mapstructure:"stationery"`
}

type ChartConfig struct {
	BarFloor       float64 `mapstructure:"bar_floor"`
	BarMinFraction float64 `mapstructure:"bar_min_fraction"`
}

type SessionConfig struct {
	// IDs selects the identifier generator: "sequence" or "random".
	IDs string `mapstructure:"ids"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_body_bytes", 8<<20)
	v.SetDefault("render.page_size", "A4")
	v.SetDefault("render.remittance_code", string(render.CodeQR))
	v.SetDefault("render.font_family", "")
	v.SetDefault("render.font_regular", "")
	v.SetDefault("render.font_bold", "")
	v.SetDefault("render.stationery", "")
	v.SetDefault("charts.bar_floor", 100.0)
	v.SetDefault("charts.bar_min_fraction", 0.02)
	v.SetDefault("session.ids", "sequence")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Default returns the built-in configuration with environment overrides
// applied.
func Default() (*Config, error) {
	return decode(newViper())
}

// Load reads the configuration from path. An empty path searches the XDG
// config directories and falls back to the defaults when nothing is found.
func Load(path string) (*Config, error) {
	v := newViper()

	if path == "" {
		found, err := xdg.SearchConfigFile(RelPath)
		if err != nil {
			return decode(v)
		}
		path = found
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	cfg.File = path
	return cfg, nil
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	// viper lower-cases keys; grades are upper case.
	if len(cfg.Labels.ScoreText) > 0 {
		fixed := make(map[document.HealthScore]string, len(cfg.Labels.ScoreText))
		for k, s := range cfg.Labels.ScoreText {
			fixed[document.HealthScore(strings.ToUpper(string(k)))] = s
		}
		cfg.Labels.ScoreText = fixed
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch render.RemittanceCode(c.Render.RemittanceCode) {
	case render.CodeNone, render.CodeQR, render.CodePDF417:
	default:
		errs = append(errs, fmt.Errorf("render.remittance_code: unknown code %q", c.Render.RemittanceCode))
	}
	switch c.Session.IDs {
	case "sequence", "random":
	default:
		errs = append(errs, fmt.Errorf("session.ids: unknown generator %q", c.Session.IDs))
	}
	if c.Charts.BarMinFraction < 0 || c.Charts.BarMinFraction > 1 {
		errs = append(errs, fmt.Errorf("charts.bar_min_fraction: %v not in [0, 1]", c.Charts.BarMinFraction))
	}
	if c.Render.FontRegular != "" && c.Render.FontFamily == "" {
		errs = append(errs, errors.New("render.font_family: required with render.font_regular"))
	}
	return errors.Join(errs...)
}

// Logger builds the root logger writing to w.
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if c.Log.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// ViewOptions returns the pagination options for the configured labels and
// chart scale.
func (c *Config) ViewOptions() []pagination.Option {
	return []pagination.Option{
		pagination.WithLabels(c.Labels),
		pagination.WithBarScale(c.Charts.BarFloor, c.Charts.BarMinFraction),
	}
}

// RenderOptions returns the renderer options, reading the configured font
// and stationery files.
func (c *Config) RenderOptions(log zerolog.Logger) ([]render.Option, error) {
	opts := []render.Option{
		render.WithPageSize(c.Render.PageSize),
		render.WithRemittanceCode(render.RemittanceCode(c.Render.RemittanceCode)),
		render.WithLogger(log),
	}
	if c.Render.FontRegular != "" {
		regular, err := os.ReadFile(c.Render.FontRegular)
		if err != nil {
			return nil, fmt.Errorf("failed to read font: %w", err)
		}
		var bold []byte
		if c.Render.FontBold != "" {
			if bold, err = os.ReadFile(c.Render.FontBold); err != nil {
				return nil, fmt.Errorf("failed to read bold font: %w", err)
			}
		}
		opts = append(opts, render.WithUTF8Font(c.Render.FontFamily, regular, bold))
	}
	if c.Render.Stationery != "" {
		pdf, err := os.ReadFile(c.Render.Stationery)
		if err != nil {
			return nil, fmt.Errorf("failed to read stationery: %w", err)
		}
		opts = append(opts, render.WithStationery(pdf))
	}
	return opts, nil
}

// SessionOptions returns the session options for the configured identifier
// generator.
func (c *Config) SessionOptions(log zerolog.Logger) []session.Option {
	opts := []session.Option{session.WithLogger(log)}
	if c.Session.IDs == "random" {
		opts = append(opts, session.WithIDs(document.Random{}))
	}
	return opts
}
