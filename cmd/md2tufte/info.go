package main

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	md2tufte "github.com/alnah/go-md2tufte"
	"github.com/alnah/go-md2tufte/internal/yamlutil"
)

// printPasses lists the registered passes; default ones are numbered in
// the order they run.
func printPasses(w io.Writer) {
	defaults := md2tufte.DefaultPasses()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER\tPASS\tDESCRIPTION")
	for _, p := range md2tufte.Passes() {
		order := "-"
		if i := slices.Index(defaults, p.Name); i >= 0 {
			order = fmt.Sprint(i + 1)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", order, p.Name, p.Description)
	}
	_ = tw.Flush()
}

// runStylesCmd lists the built-in styles and, with an asset directory from
// --asset-path, the environment or the config file, the user styles.
func runStylesCmd(args []string, env *Environment) error {
	flags, _, err := parseConvertFlags("convert", args)
	if err != nil {
		return err
	}
	cfg, err := loadSettings(flags, env)
	if err != nil {
		return err
	}

	var custom []string
	if cfg.Assets.BasePath != "" {
		if custom, err = md2tufte.CustomStyleNames(cfg.Assets.BasePath); err != nil {
			return err
		}
	}
	printStyles(env.Stdout, md2tufte.StyleNames(), custom)
	return nil
}

// printStyles writes one style per line, marking the default and where
// user styles come from.
func printStyles(w io.Writer, builtin, custom []string) {
	for _, name := range builtin {
		switch {
		case slices.Contains(custom, name):
			fmt.Fprintf(w, "%s (overridden by asset path)\n", name)
		case name == md2tufte.DefaultStyle:
			fmt.Fprintf(w, "%s (default)\n", name)
		default:
			fmt.Fprintln(w, name)
		}
	}
	for _, name := range custom {
		if !slices.Contains(builtin, name) {
			fmt.Fprintf(w, "%s (asset path)\n", name)
		}
	}
}

// runConfigCmd prints the effective configuration as YAML, after the
// config file, environment and flags are applied.
func runConfigCmd(args []string, env *Environment) error {
	flags, _, err := parseConvertFlags("convert", args)
	if err != nil {
		return err
	}
	cfg, err := loadSettings(flags, env)
	if err != nil {
		return err
	}
	out, err := yamlutil.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(out)
	return err
}
