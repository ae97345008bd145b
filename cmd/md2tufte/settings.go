package main

import (
	"fmt"
	"log/slog"
	"os"

	md2tufte "github.com/alnah/go-md2tufte"
	"github.com/alnah/go-md2tufte/internal/config"
)

// loadSettings resolves the effective configuration: defaults, then the
// config file, then MD2TUFTE_* variables, then command-line flags.
func loadSettings(flags *convertFlags, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig(env)

	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags copies explicitly set flags into cfg. Unset flags never
// override config values, so a zero margin on the command line is only
// applied when typed.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	changed := flags.changed
	if changed == nil {
		changed = func(string) bool { return false }
	}

	if changed("output") {
		cfg.Output.DefaultDir = flags.output
	}
	if changed("passes") {
		cfg.Passes.Enabled = flags.passes.enabled
	}
	if changed("ignore-trailing-defs") {
		cfg.Sections.IgnoreTrailingDefinitions = flags.passes.ignoreTrailing
	}
	if changed("style") {
		cfg.Style.Name = flags.assets.style
	}
	if flags.assets.noStyle {
		cfg.Style.Name = md2tufte.NoStyle
	}
	if changed("template") {
		cfg.Style.Template = flags.assets.template
	}
	if changed("highlight") {
		cfg.Style.Highlight = flags.assets.highlight
	}
	if changed("asset-path") {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
	if changed("page-size") {
		cfg.Page.Size = flags.page.size
	}
	if changed("orientation") {
		cfg.Page.Orientation = flags.page.orientation
	}
	if changed("margin") {
		cfg.Page.Margin = flags.page.margin
	}
	if changed("pdf") {
		cfg.PDF.Enabled = flags.pdf
	}
	if changed("timeout") {
		cfg.PDF.Timeout = flags.timeout
	}
	if changed("workers") {
		cfg.PDF.Workers = flags.workers
	}
	if changed("addr") {
		cfg.Serve.Addr = flags.addr
	}
}

// converterOptions maps the configuration to library options.
func converterOptions(cfg *config.Config, logger *slog.Logger) []md2tufte.Option {
	opts := []md2tufte.Option{
		md2tufte.WithIgnoreTrailingDefinitions(cfg.Sections.IgnoreTrailingDefinitions),
		md2tufte.WithLogger(logger),
	}
	if len(cfg.Passes.Enabled) > 0 {
		opts = append(opts, md2tufte.WithPasses(cfg.Passes.Enabled...))
	}
	if cfg.Style.Name != "" {
		opts = append(opts, md2tufte.WithStyle(cfg.Style.Name))
	}
	if cfg.Style.Template != "" {
		opts = append(opts, md2tufte.WithTemplate(cfg.Style.Template))
	}
	if cfg.Style.Highlight != "" {
		opts = append(opts, md2tufte.WithHighlightStyle(cfg.Style.Highlight))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, md2tufte.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.PDF.Timeout > 0 {
		opts = append(opts, md2tufte.WithTimeout(cfg.PDF.Timeout))
	}
	return opts
}

// pageSettings maps the page section to library settings, filling gaps
// with the library defaults.
func pageSettings(cfg *config.Config) *md2tufte.PageSettings {
	page := md2tufte.DefaultPageSettings()
	if cfg.Page.Size != "" {
		page.Size = cfg.Page.Size
	}
	if cfg.Page.Orientation != "" {
		page.Orientation = cfg.Page.Orientation
	}
	if cfg.Page.Margin != 0 {
		page.Margin = cfg.Page.Margin
	}
	return page
}

// readExtraCSS loads the --css file, if any.
func readExtraCSS(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(data), nil
}
