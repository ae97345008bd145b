package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Command dispatch
// ---------------------------------------------------------------------------

func TestRun_InfoCommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout []string
		wantStderr []string
	}{
		{
			name:       "no command",
			args:       []string{"md2tufte"},
			wantCode:   ExitUsage,
			wantStderr: []string{"Usage: md2tufte"},
		},
		{
			name:       "unknown command",
			args:       []string{"md2tufte", "publish"},
			wantCode:   ExitUsage,
			wantStderr: []string{`unknown command "publish"`},
		},
		{
			name:       "version",
			args:       []string{"md2tufte", "version"},
			wantStdout: []string{"md2tufte " + Version},
		},
		{
			name:       "help",
			args:       []string{"md2tufte", "help"},
			wantStdout: []string{"Commands:", "convert", "serve"},
		},
		{
			name:       "help convert",
			args:       []string{"md2tufte", "help", "convert"},
			wantStdout: []string{"Usage: md2tufte convert"},
		},
		{
			name:       "convert --help",
			args:       []string{"md2tufte", "convert", "--help"},
			wantStdout: []string{"Usage: md2tufte convert"},
		},
		{
			name:       "passes",
			args:       []string{"md2tufte", "passes"},
			wantStdout: []string{"ORDER", "sections", "image-figure", "sidenotes"},
		},
		{
			name:       "styles",
			args:       []string{"md2tufte", "styles"},
			wantStdout: []string{"tufte (default)", "plain"},
		},
		{
			name:       "config",
			args:       []string{"md2tufte", "config", "--style", "plain"},
			wantStdout: []string{"name: plain", "highlight: github", "- sidenotes"},
		},
		{
			name:       "bad flag",
			args:       []string{"md2tufte", "convert", "--bogus"},
			wantCode:   ExitUsage,
			wantStderr: []string{"convert:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(nil)
			if code := run(tt.args, env); code != tt.wantCode {
				t.Errorf("run() = %d, want %d\nstderr: %s", code, tt.wantCode, stderr.String())
			}
			for _, s := range tt.wantStdout {
				if !strings.Contains(stdout.String(), s) {
					t.Errorf("stdout missing %q:\n%s", s, stdout.String())
				}
			}
			for _, s := range tt.wantStderr {
				if !strings.Contains(stderr.String(), s) {
					t.Errorf("stderr missing %q:\n%s", s, stderr.String())
				}
			}
		})
	}
}

func TestRun_StylesWithAssetPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "styles/tufte.css", "/* house */")
	writeFile(t, dir, "styles/memo.css", "/* memo */")

	env, stdout, stderr := testEnv(map[string]string{"MD2TUFTE_ASSET_PATH": dir})
	if code := run([]string{"md2tufte", "styles"}, env); code != ExitSuccess {
		t.Fatalf("run() = %d\nstderr: %s", code, stderr.String())
	}

	want := "plain\ntufte (overridden by asset path)\nmemo (asset path)\n"
	if stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
}

func TestRun_Completion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shell    string
		wantCode int
		want     string
	}{
		{"bash", ExitSuccess, "complete -F"},
		{"zsh", ExitSuccess, "#compdef md2tufte"},
		{"fish", ExitSuccess, "complete -c md2tufte"},
		{"powershell", ExitUsage, ""},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(nil)
			code := run([]string{"md2tufte", "completion", tt.shell}, env)
			if code != tt.wantCode {
				t.Fatalf("run() = %d, want %d\nstderr: %s", code, tt.wantCode, stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("script missing %q", tt.want)
			}
			if code == ExitSuccess && !strings.Contains(stdout.String(), "page-size") {
				t.Error("script does not list convert flags")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// End to end (HTML only, no browser)
// ---------------------------------------------------------------------------

func TestRun_ConvertHTML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "essay.md", "# Essay\n\nA claim[^a].\n\n[^a]: The support.\n")
	writeFile(t, dir, "notes/more.md", "Some text.\n")
	out := filepath.Join(t.TempDir(), "site")

	env, stdout, stderr := testEnv(nil)
	code := run([]string{"md2tufte", "convert", dir, "-o", out, "--no-style"}, env)
	if code != ExitSuccess {
		t.Fatalf("run() = %d\nstderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "2 succeeded, 0 failed") {
		t.Errorf("stdout = %q", stdout.String())
	}

	html, err := os.ReadFile(filepath.Join(out, "essay.html"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<title>Essay</title>", `class="sidenote"`, "The support."} {
		if !strings.Contains(string(html), want) {
			t.Errorf("essay.html missing %q", want)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "notes", "more.html")); err != nil {
		t.Errorf("nested output: %v", err)
	}
}

func TestRun_ConvertDocumentError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	md := writeFile(t, dir, "bad.md", "Dangling[^nowhere].\n")

	env, _, stderr := testEnv(nil)
	code := run([]string{"md2tufte", "convert", md, "-q"}, env)
	if code != ExitDocument {
		t.Errorf("run() = %d, want %d\nstderr: %s", code, ExitDocument, stderr.String())
	}
	if !strings.Contains(stderr.String(), "error:") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.html")); !os.IsNotExist(err) {
		t.Error("output written for a failed document")
	}
}

func TestRun_ConvertNoInput(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv(nil)
	if code := run([]string{"md2tufte", "convert"}, env); code == ExitSuccess {
		t.Errorf("run() succeeded without input\nstderr: %s", stderr.String())
	}
	if !strings.Contains(stderr.String(), ErrNoInput.Error()) {
		t.Errorf("stderr = %q", stderr.String())
	}
}
