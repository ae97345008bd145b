// Package config loads and validates md2tufte YAML configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/alnah/go-md2tufte/internal/tufte"
	"github.com/alnah/go-md2tufte/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
)

// Field limits.
const (
	MaxPathLength  = 4096
	MaxNameLength  = 100
	MaxAddrLength  = 255
	MinMargin      = 0.25
	MaxMargin      = 3.0
	MaxWorkers     = 64
	MaxPDFDuration = 10 * time.Minute
)

// Config holds all configuration for document conversion.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Passes   PassesConfig   `yaml:"passes"`
	Sections SectionsConfig `yaml:"sections"`
	Style    StyleConfig    `yaml:"style"`
	Assets   AssetsConfig   `yaml:"assets"`
	Page     PageConfig     `yaml:"page"`
	PDF      PDFConfig      `yaml:"pdf"`
	Serve    ServeConfig    `yaml:"serve"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = must specify
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the source
}

// PassesConfig selects the tufte passes to run, in order.
type PassesConfig struct {
	Enabled []string `yaml:"enabled"` // empty = default order
}

// SectionsConfig tunes the section wrapper.
type SectionsConfig struct {
	IgnoreTrailingDefinitions bool `yaml:"ignoreTrailingDefinitions"`
}

// StyleConfig selects the stylesheet, page template and code theme.
type StyleConfig struct {
	Name      string `yaml:"name"`      // built-in or custom style, "none" = no CSS
	Template  string `yaml:"template"`  // page template name
	Highlight string `yaml:"highlight"` // chroma style for code blocks
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal"
	Orientation string  `yaml:"orientation"` // "portrait", "landscape"
	Margin      float64 `yaml:"margin"`      // inches
}

// PDFConfig defines PDF export options.
type PDFConfig struct {
	Enabled bool          `yaml:"enabled"`
	Timeout time.Duration `yaml:"timeout"` // 0 = library default
	Workers int           `yaml:"workers"` // 0 = auto
}

// ServeConfig defines the preview server.
type ServeConfig struct {
	Addr string `yaml:"addr"`
}

// Validate checks every section and reports the first invalid one.
func (c *Config) Validate() error {
	sections := []struct {
		name string
		v    validation.Validatable
	}{
		{"input", &c.Input},
		{"output", &c.Output},
		{"passes", &c.Passes},
		{"style", &c.Style},
		{"assets", &c.Assets},
		{"page", &c.Page},
		{"pdf", &c.PDF},
		{"serve", &c.Serve},
	}
	for _, s := range sections {
		if err := s.v.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrConfigInvalid, s.name, err)
		}
	}
	return nil
}

// Validate validates the input configuration.
func (c *InputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DefaultDir, validation.Length(0, MaxPathLength)),
	)
}

// Validate validates the output configuration.
func (c *OutputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DefaultDir, validation.Length(0, MaxPathLength)),
	)
}

// Validate checks that every pass name is known.
func (c *PassesConfig) Validate() error {
	known := make([]any, 0, len(tufte.Passes()))
	for _, p := range tufte.Passes() {
		known = append(known, p.Name)
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Enabled, validation.Each(validation.Required, validation.In(known...))),
	)
}

// Validate validates the style configuration.
func (c *StyleConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Length(0, MaxPathLength)),
		validation.Field(&c.Template, validation.Length(0, MaxNameLength)),
		validation.Field(&c.Highlight, validation.Length(0, MaxNameLength)),
	)
}

// Validate validates the assets configuration.
func (c *AssetsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BasePath, validation.Length(0, MaxPathLength)),
	)
}

// Validate validates the page configuration. Zero values mean "default".
func (c *PageConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Size, validation.By(lowerIn("letter", "a4", "legal"))),
		validation.Field(&c.Orientation, validation.By(lowerIn("portrait", "landscape"))),
		validation.Field(&c.Margin, validation.When(c.Margin != 0, validation.Min(MinMargin), validation.Max(MaxMargin))),
	)
}

// Validate validates the PDF configuration.
func (c *PDFConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Timeout, validation.Min(time.Duration(0)), validation.Max(MaxPDFDuration)),
		validation.Field(&c.Workers, validation.Min(0), validation.Max(MaxWorkers)),
	)
}

// Validate validates the serve configuration.
func (c *ServeConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Addr, validation.Length(0, MaxAddrLength)),
	)
}

// lowerIn accepts an empty string or one of values, case-insensitively.
func lowerIn(values ...string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		for _, v := range values {
			if strings.EqualFold(s, v) {
				return nil
			}
		}
		return fmt.Errorf("must be one of %s", strings.Join(values, ", "))
	}
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Passes: PassesConfig{Enabled: append([]string(nil), tufte.DefaultPassNames...)},
		Style:  StyleConfig{Name: "tufte", Template: "page", Highlight: "github"},
		Page:   PageConfig{Size: "letter", Orientation: "portrait", Margin: 0.5},
		Serve:  ServeConfig{Addr: "127.0.0.1:8080"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched for in the current directory, then in the user
// config directory. Missing fields keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath tries {name}.yaml then {name}.yml in the current
// directory, then in {UserConfigDir}/go-md2tufte/.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	dirs := []string{""}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userConfigDir, "go-md2tufte"))
	}

	tried := make([]string, 0, len(dirs)*len(extensions))
	for _, dir := range dirs {
		for _, ext := range extensions {
			path := filepath.Join(dir, name+ext)
			if fileExists(path) {
				return path, nil
			}
			tried = append(tried, path)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
