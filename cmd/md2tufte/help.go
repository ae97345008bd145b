package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2tufte <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert markdown to Tufte-style HTML or PDF")
	fmt.Fprintln(w, "  watch       Convert, then convert again on every change")
	fmt.Fprintln(w, "  serve       Preview a directory of markdown in the browser")
	fmt.Fprintln(w, "  passes      List transformation passes")
	fmt.Fprintln(w, "  styles      List styles, including those under --asset-path")
	fmt.Fprintln(w, "  config      Print the effective configuration")
	fmt.Fprintln(w, "  doctor      Check the PDF export environment")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2tufte help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for convert and watch.
func printConvertUsage(w io.Writer, cmd string) {
	fmt.Fprintf(w, "Usage: md2tufte %s <input> [flags]\n", cmd)
	fmt.Fprintln(w)
	if cmd == "watch" {
		fmt.Fprintln(w, "Convert markdown files, then convert each file again when it changes.")
	} else {
		fmt.Fprintln(w, "Convert markdown files to Tufte-style HTML, or PDF with --pdf.")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	printDocumentFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --pdf                 Export PDF instead of HTML")
	fmt.Fprintln(w, "      --html                Also write HTML next to the PDF")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel browsers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Rendering timeout per file (e.g. 45s)")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	if cmd == "watch" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Watch:")
		fmt.Fprintln(w, "      --debounce <d>        Delay before rebuilding (default 200ms)")
	}
	printEnvHelp(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2tufte serve [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve markdown files under dir as rendered pages. Documents are")
	fmt.Fprintln(w, "converted on each request; other files are served as is.")
	fmt.Fprintln(w)
	printDocumentFlags(w)
	fmt.Fprintln(w, "      --addr <host:port>    Listen address (default 127.0.0.1:8080)")
	printEnvHelp(w)
}

func printDocumentFlags(w io.Writer) {
	fmt.Fprintln(w, "General:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show pass timings and debug output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Passes:")
	fmt.Fprintln(w, "      --passes <a,b>        Passes to run, in order (see 'md2tufte passes')")
	fmt.Fprintln(w, "      --ignore-trailing-defs  Keep trailing definitions out of the last section")
	fmt.Fprintln(w, "      --strict              Fail when a pass reports diagnostics")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <name|path>   Style name or CSS file (default tufte)")
	fmt.Fprintln(w, "      --no-style            Disable the stylesheet")
	fmt.Fprintln(w, "      --template <name>     Page template name (default page)")
	fmt.Fprintln(w, "      --highlight <name>    Code theme, \"none\" disables (default github)")
	fmt.Fprintln(w, "      --css <file>          Extra CSS appended after the style")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with styles/ and templates/")
}

func printEnvHelp(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2TUFTE_CONFIG, MD2TUFTE_STYLE, MD2TUFTE_TIMEOUT, MD2TUFTE_INPUT_DIR,")
	fmt.Fprintln(w, "  MD2TUFTE_OUTPUT_DIR, MD2TUFTE_ASSET_PATH, MD2TUFTE_PASSES,")
	fmt.Fprintln(w, "  MD2TUFTE_PAGE_SIZE, MD2TUFTE_ADDR, MD2TUFTE_WORKERS")
	fmt.Fprintln(w, "  A .env file in the working directory is loaded first.")
}

// runHelp prints help for a command, or the main usage.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}
	switch args[0] {
	case "convert", "watch":
		printConvertUsage(env.Stdout, args[0])
	case "serve":
		printServeUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "unknown command %q\n\n", args[0])
		printUsage(env.Stdout)
	}
}
