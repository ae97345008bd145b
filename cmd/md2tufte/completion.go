package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"

	md2tufte "github.com/alnah/go-md2tufte"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []*flag.Flag
}

// enumValues lists fixed values for flags that take one.
func enumValues() map[string][]string {
	passes := make([]string, 0, len(md2tufte.Passes()))
	for _, p := range md2tufte.Passes() {
		passes = append(passes, p.Name)
	}
	return map[string][]string{
		"page-size":   {"letter", "a4", "legal"},
		"orientation": {"portrait", "landscape"},
		"style":       md2tufte.StyleNames(),
		"passes":      passes,
	}
}

// getCommands returns the command registry. Flags come from the same
// FlagSets the commands parse.
func getCommands() []commandDef {
	flagsOf := func(cmd string) []*flag.Flag {
		var out []*flag.Flag
		newConvertFlagSet(cmd, &convertFlags{}).VisitAll(func(f *flag.Flag) {
			out = append(out, f)
		})
		return out
	}
	return []commandDef{
		{Name: "convert", Desc: "Convert markdown to Tufte-style HTML or PDF", Flags: flagsOf("convert")},
		{Name: "watch", Desc: "Convert again whenever a source changes", Flags: flagsOf("watch")},
		{Name: "serve", Desc: "Preview a directory of markdown in the browser", Flags: flagsOf("serve")},
		{Name: "passes", Desc: "List transformation passes"},
		{Name: "styles", Desc: "List styles, including those under --asset-path"},
		{Name: "config", Desc: "Print the effective configuration"},
		{Name: "doctor", Desc: "Check the PDF export environment"},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes a completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

func generateBash(w io.Writer) error {
	cmds := getCommands()
	enums := enumValues()

	var b strings.Builder
	b.WriteString("# bash completion for md2tufte\n_md2tufte() {\n")
	b.WriteString("  local cur prev cmd\n  cur=\"${COMP_WORDS[COMP_CWORD]}\"\n  prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n  cmd=\"${COMP_WORDS[1]}\"\n")
	b.WriteString("  if [[ $COMP_CWORD -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "    COMPREPLY=($(compgen -W %q -- \"$cur\"))\n    return\n  fi\n", commandNames(cmds))
	b.WriteString("  case \"$prev\" in\n")
	for _, name := range sortedKeys(enums) {
		fmt.Fprintf(&b, "    --%s) COMPREPLY=($(compgen -W %q -- \"$cur\")); return ;;\n", name, strings.Join(enums[name], " "))
	}
	b.WriteString("  esac\n  case \"$cmd\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		var words []string
		for _, f := range c.Flags {
			words = append(words, "--"+f.Name)
		}
		fmt.Fprintf(&b, "    %s)\n      if [[ $cur == -* ]]; then COMPREPLY=($(compgen -W %q -- \"$cur\")); else COMPREPLY=($(compgen -f -- \"$cur\")); fi ;;\n", c.Name, strings.Join(words, " "))
	}
	b.WriteString("  esac\n}\ncomplete -F _md2tufte md2tufte\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func generateZsh(w io.Writer) error {
	cmds := getCommands()
	enums := enumValues()

	var b strings.Builder
	b.WriteString("#compdef md2tufte\n\n_md2tufte() {\n  local -a commands\n  commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("  )\n  if (( CURRENT == 2 )); then\n    _describe 'command' commands\n    return\n  fi\n  case $words[2] in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n      _arguments \\\n", c.Name)
		for _, f := range c.Flags {
			action := ""
			if vals, ok := enums[f.Name]; ok {
				action = ":value:(" + strings.Join(vals, " ") + ")"
			} else if f.Value.Type() != "bool" {
				action = ":value:_files"
			}
			fmt.Fprintf(&b, "        '--%s[%s]%s' \\\n", f.Name, zshEscape(f.Usage), action)
		}
		b.WriteString("        '*:file:_files -g \"*.md\"' ;;\n")
	}
	b.WriteString("  esac\n}\n\ncompdef _md2tufte md2tufte\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func generateFish(w io.Writer) error {
	cmds := getCommands()
	enums := enumValues()

	var b strings.Builder
	b.WriteString("# fish completion for md2tufte\ncomplete -c md2tufte -f\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c md2tufte -n '__fish_use_subcommand' -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c md2tufte -n '__fish_seen_subcommand_from %s' -l %s", c.Name, f.Name)
			if f.Shorthand != "" {
				line += " -s " + f.Shorthand
			}
			if vals, ok := enums[f.Name]; ok {
				line += fmt.Sprintf(" -xa '%s'", strings.Join(vals, " "))
			} else if f.Value.Type() != "bool" {
				line += " -r"
			}
			fmt.Fprintf(&b, "%s -d '%s'\n", line, fishEscape(f.Usage))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func zshEscape(s string) string {
	return strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`).Replace(s)
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2tufte completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells: bash, zsh, fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:  eval \"$(md2tufte completion bash)\"        # ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:   eval \"$(md2tufte completion zsh)\"         # ~/.zshrc, before compinit")
	fmt.Fprintln(w, "  Fish:  md2tufte completion fish > ~/.config/fish/completions/md2tufte.fish")
}
