package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2tufte/internal/config"
)

// envPrefix starts every environment variable the CLI reads.
const envPrefix = "MD2TUFTE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MD2TUFTE_CONFIG
	Style      string        // MD2TUFTE_STYLE
	Timeout    time.Duration // MD2TUFTE_TIMEOUT
	InputDir   string        // MD2TUFTE_INPUT_DIR
	OutputDir  string        // MD2TUFTE_OUTPUT_DIR
	AssetPath  string        // MD2TUFTE_ASSET_PATH
	Passes     []string      // MD2TUFTE_PASSES, comma-separated
	PageSize   string        // MD2TUFTE_PAGE_SIZE
	Addr       string        // MD2TUFTE_ADDR
	Workers    int           // MD2TUFTE_WORKERS
}

// knownEnvVars lists valid MD2TUFTE_* environment variables.
var knownEnvVars = map[string]bool{
	"MD2TUFTE_CONFIG":     true,
	"MD2TUFTE_STYLE":      true,
	"MD2TUFTE_TIMEOUT":    true,
	"MD2TUFTE_INPUT_DIR":  true,
	"MD2TUFTE_OUTPUT_DIR": true,
	"MD2TUFTE_ASSET_PATH": true,
	"MD2TUFTE_PASSES":     true,
	"MD2TUFTE_PAGE_SIZE":  true,
	"MD2TUFTE_ADDR":       true,
	"MD2TUFTE_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed durations and counts are ignored.
func loadEnvConfig(env *Environment) *envConfig {
	cfg := &envConfig{
		ConfigPath: env.Getenv("MD2TUFTE_CONFIG"),
		Style:      env.Getenv("MD2TUFTE_STYLE"),
		InputDir:   env.Getenv("MD2TUFTE_INPUT_DIR"),
		OutputDir:  env.Getenv("MD2TUFTE_OUTPUT_DIR"),
		AssetPath:  env.Getenv("MD2TUFTE_ASSET_PATH"),
		PageSize:   env.Getenv("MD2TUFTE_PAGE_SIZE"),
		Addr:       env.Getenv("MD2TUFTE_ADDR"),
	}

	if timeout := env.Getenv("MD2TUFTE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if workers := env.Getenv("MD2TUFTE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	if passes := env.Getenv("MD2TUFTE_PASSES"); passes != "" {
		for _, p := range strings.Split(passes, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.Passes = append(cfg.Passes, p)
			}
		}
	}
	return cfg
}

// warnUnknownEnvVars warns about unrecognized MD2TUFTE_* variables,
// usually typos.
func warnUnknownEnvVars(env *Environment) {
	for _, kv := range env.Environ() {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(env.Stderr, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overlays set environment values on cfg.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Style.Name = env.Style
	}
	if env.Timeout > 0 {
		cfg.PDF.Timeout = env.Timeout
	}
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if len(env.Passes) > 0 {
		cfg.Passes.Enabled = env.Passes
	}
	if env.PageSize != "" {
		cfg.Page.Size = env.PageSize
	}
	if env.Addr != "" {
		cfg.Serve.Addr = env.Addr
	}
	if env.Workers > 0 {
		cfg.PDF.Workers = env.Workers
	}
}
