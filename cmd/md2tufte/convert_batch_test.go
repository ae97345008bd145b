package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	md2tufte "github.com/alnah/go-md2tufte"
)

func newParams(pdf bool) *conversionParams {
	return &conversionParams{pdf: pdf, logger: discardLogger()}
}

func readString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// convertBatch
// ---------------------------------------------------------------------------

func TestConvertBatch_WritesHTML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.md", "alpha")
	writeFile(t, dir, "sub/b.md", "beta")
	files, err := discoverFiles(dir, "", ".html")
	if err != nil {
		t.Fatal(err)
	}

	conv := &mockConverter{}
	pool := &mockPool{conv: conv, size: 2}
	results := convertBatch(context.Background(), pool, files, newParams(false))

	if s := countResults(results); s.Succeeded != 2 || s.Failed != 0 {
		t.Fatalf("summary = %+v", s)
	}
	if got := readString(t, filepath.Join(dir, "a.html")); got != "<html>alpha</html>" {
		t.Errorf("a.html = %q", got)
	}
	if got := readString(t, filepath.Join(dir, "sub", "b.html")); got != "<html>beta</html>" {
		t.Errorf("b.html = %q", got)
	}
	if pool.released != 2 {
		t.Errorf("released = %d, want 2", pool.released)
	}

	for _, in := range conv.inputs {
		if !in.HTMLOnly {
			t.Error("HTML run asked for a PDF")
		}
		if !filepath.IsAbs(in.SourceDir) {
			t.Errorf("SourceDir = %q, want absolute", in.SourceDir)
		}
	}
}

func TestConvertBatch_PDFKeepHTML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	md := writeFile(t, dir, "doc.md", "x")
	conv := &mockConverter{result: &md2tufte.ConvertResult{HTML: []byte("<p>x</p>"), PDF: []byte("%PDF-1.7")}}
	params := newParams(true)
	params.keepHTML = true

	files := []FileToConvert{{InputPath: md, OutputPath: filepath.Join(dir, "doc.pdf")}}
	results := convertBatch(context.Background(), &mockPool{conv: conv, size: 1}, files, params)
	if err := results[0].Err; err != nil {
		t.Fatalf("Err = %v", err)
	}

	if got := readString(t, filepath.Join(dir, "doc.pdf")); got != "%PDF-1.7" {
		t.Errorf("doc.pdf = %q", got)
	}
	if got := readString(t, filepath.Join(dir, "doc.html")); got != "<p>x</p>" {
		t.Errorf("doc.html = %q", got)
	}
	if conv.inputs[0].HTMLOnly {
		t.Error("PDF run set HTMLOnly")
	}
}

func TestConvertBatch_Failures(t *testing.T) {
	t.Parallel()

	diagnostic := &md2tufte.ConvertResult{
		HTML:        []byte("<p/>"),
		Diagnostics: []md2tufte.Diagnostic{{Pass: "sidenotes", Message: "duplicate definition"}},
	}

	tests := []struct {
		name    string
		pool    func() *mockPool
		strict  bool
		missing bool
		wantErr error
	}{
		{
			name:    "acquire failure",
			pool:    func() *mockPool { return &mockPool{size: 1, acquireErr: errors.New("no browser")} },
			wantErr: ErrConverterInit,
		},
		{
			name:    "unreadable source",
			pool:    func() *mockPool { return &mockPool{conv: &mockConverter{}, size: 1} },
			missing: true,
			wantErr: ErrReadMarkdown,
		},
		{
			name:    "conversion error",
			pool:    func() *mockPool { return &mockPool{conv: &mockConverter{err: md2tufte.ErrUnresolvedReference}, size: 1} },
			wantErr: md2tufte.ErrUnresolvedReference,
		},
		{
			name:    "strict diagnostics",
			pool:    func() *mockPool { return &mockPool{conv: &mockConverter{result: diagnostic}, size: 1} },
			strict:  true,
			wantErr: ErrDiagnostics,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			md := filepath.Join(dir, "doc.md")
			if !tt.missing {
				writeFile(t, dir, "doc.md", "x")
			}
			params := newParams(false)
			params.strict = tt.strict

			files := []FileToConvert{{InputPath: md, OutputPath: filepath.Join(dir, "doc.html")}}
			results := convertBatch(context.Background(), tt.pool(), files, params)
			if !errors.Is(results[0].Err, tt.wantErr) {
				t.Errorf("Err = %v, want %v", results[0].Err, tt.wantErr)
			}
			if _, err := os.Stat(filepath.Join(dir, "doc.html")); !os.IsNotExist(err) {
				t.Error("output written for a failed conversion")
			}
		})
	}
}

func TestConvertBatch_DiagnosticsNotStrict(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	md := writeFile(t, dir, "doc.md", "x")
	conv := &mockConverter{result: &md2tufte.ConvertResult{
		HTML:        []byte("<p/>"),
		Diagnostics: []md2tufte.Diagnostic{{Pass: "sections", Message: "a"}, {Pass: "cite", Message: "b"}},
	}}

	files := []FileToConvert{{InputPath: md, OutputPath: filepath.Join(dir, "doc.html")}}
	results := convertBatch(context.Background(), &mockPool{conv: conv, size: 1}, files, newParams(false))
	if results[0].Err != nil || results[0].Diagnostics != 2 {
		t.Errorf("result = %+v", results[0])
	}
}

func TestConvertBatch_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	md := writeFile(t, dir, "doc.md", "x")
	files := []FileToConvert{{InputPath: md, OutputPath: filepath.Join(dir, "doc.html")}}
	results := convertBatch(ctx, &mockPool{conv: &mockConverter{}, size: 1}, files, newParams(false))
	if !errors.Is(results[0].Err, context.Canceled) {
		t.Errorf("Err = %v, want context.Canceled", results[0].Err)
	}
}

// ---------------------------------------------------------------------------
// printResults
// ---------------------------------------------------------------------------

func TestPrintResults(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	results := []ConversionResult{
		{InputPath: "a.md", OutputPath: "a.html"},
		{InputPath: "b.md", Err: boom},
	}

	tests := []struct {
		name       string
		quiet      bool
		verbose    bool
		wantStdout []string
		wantAbsent []string
	}{
		{
			name:       "default",
			wantStdout: []string{"Created a.html", "1 succeeded, 1 failed"},
		},
		{
			name:       "verbose",
			verbose:    true,
			wantStdout: []string{"a.md -> a.html", "0 diagnostics"},
		},
		{
			name:       "quiet",
			quiet:      true,
			wantAbsent: []string{"Created", "succeeded"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(nil)
			summary := printResults(results, tt.quiet, tt.verbose, env)

			if summary.Succeeded != 1 || summary.Failed != 1 || !errors.Is(summary.FirstErr, boom) {
				t.Errorf("summary = %+v", summary)
			}
			if !strings.Contains(stderr.String(), "FAILED b.md: boom") {
				t.Errorf("stderr = %q", stderr.String())
			}
			for _, s := range tt.wantStdout {
				if !strings.Contains(stdout.String(), s) {
					t.Errorf("stdout missing %q:\n%s", s, stdout.String())
				}
			}
			for _, s := range tt.wantAbsent {
				if strings.Contains(stdout.String(), s) {
					t.Errorf("stdout contains %q:\n%s", s, stdout.String())
				}
			}
		})
	}
}
