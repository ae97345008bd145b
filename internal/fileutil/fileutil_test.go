package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext     string
		wantErr error
	}{
		{ext: "html"},
		{ext: "tar.gz"},
		{ext: "", wantErr: ErrExtensionEmpty},
		{ext: "../html", wantErr: ErrExtensionPathTraversal},
		{ext: "a\\b", wantErr: ErrExtensionPathTraversal},
		{ext: "ht\x00ml", wantErr: ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		if err := ValidateExtension(tt.ext); !errors.Is(err, tt.wantErr) {
			t.Errorf("ValidateExtension(%q) error = %v, want %v", tt.ext, err, tt.wantErr)
		}
	}
}

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	path, cleanup, err := WriteTempFile("<p>hi</p>", "html")
	if err != nil {
		t.Fatalf("WriteTempFile() error = %v", err)
	}

	if filepath.Ext(path) != ".html" {
		t.Errorf("path = %q, want .html extension", path)
	}
	got, err := os.ReadFile(path)
	if err != nil || string(got) != "<p>hi</p>" {
		t.Errorf("content = %q, %v", got, err)
	}

	cleanup()
	if FileExists(path) {
		t.Error("cleanup did not remove the file")
	}

	if _, _, err := WriteTempFile("x", ""); !errors.Is(err, ErrExtensionEmpty) {
		t.Errorf("WriteTempFile(no ext) error = %v, want ErrExtensionEmpty", err)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out", "doc.html")

	if err := WriteFileAtomic(path, []byte("first")); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second")); err != nil {
		t.Fatalf("WriteFileAtomic() overwrite error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil || string(got) != "second" {
		t.Errorf("content = %q, %v", got, err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != FilePerm {
			t.Errorf("perm = %v, want %v", info.Mode().Perm(), os.FileMode(FilePerm))
		}
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want only the output", len(entries))
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if !FileExists(file) {
		t.Error("FileExists(file) = false")
	}
	if FileExists(dir) {
		t.Error("FileExists(dir) = true")
	}
	if FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists(missing) = true")
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"tufte":            false,
		"my-style":         false,
		"./custom.css":     true,
		"../shared/a.css":  true,
		"/abs/path.css":    true,
		`C:\styles\x.css`:  true,
		"styles/tufte":     true,
	}
	for in, want := range tests {
		if got := IsFilePath(in); got != want {
			t.Errorf("IsFilePath(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestReplaceExt(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"doc.md":           "doc.html",
		"dir/notes.txt.md": "dir/notes.txt.html",
		"README":           "README.html",
	}
	for in, want := range tests {
		if got := ReplaceExt(in, ".html"); got != want {
			t.Errorf("ReplaceExt(%q) = %q, want %q", in, got, want)
		}
	}
}
