package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSplitFrontmatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantFM   Frontmatter
		wantBody string
		wantErr  error
	}{
		{
			name:     "no front matter",
			input:    "# Title\n",
			wantBody: "# Title\n",
		},
		{
			name:  "full block",
			input: "---\ntitle: Handout\nsubtitle: An example\nlang: fr\nkeywords: [a, b]\n---\nBody\n",
			wantFM: Frontmatter{
				Title:    "Handout",
				Subtitle: "An example",
				Lang:     "fr",
				Keywords: []string{"a", "b"},
			},
			wantBody: "Body\n",
		},
		{
			name:     "empty block",
			input:    "---\n---\nBody",
			wantBody: "Body",
		},
		{
			name:     "block at end of file",
			input:    "---\ntitle: T\n---",
			wantFM:   Frontmatter{Title: "T"},
			wantBody: "",
		},
		{
			name:     "unterminated is markdown",
			input:    "---\ntitle: T\nBody",
			wantBody: "---\ntitle: T\nBody",
		},
		{
			name:     "unknown keys ignored",
			input:    "---\ntitle: T\ntags: [x]\n---\nBody",
			wantFM:   Frontmatter{Title: "T"},
			wantBody: "Body",
		},
		{
			name:    "malformed yaml rejected",
			input:   "---\ntitle: [unclosed\n---\nBody",
			wantErr: ErrFrontmatter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fm, body, err := SplitFrontmatter(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("SplitFrontmatter() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitFrontmatter() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.wantFM, fm); diff != "" {
				t.Errorf("front matter mismatch (-want +got):\n%s", diff)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestFrontmatter_ResolveDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		date    string
		want    string
		wantErr error
	}{
		{name: "auto", date: "auto", want: "2026-10-15"},
		{name: "auto with preset", date: "auto:long", want: "October 15, 2026"},
		{name: "written date kept", date: "Fall 2025", want: "Fall 2025"},
		{name: "no date", date: "", want: ""},
		{name: "bad format", date: "auto:[YYYY", wantErr: ErrFrontmatter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fm := Frontmatter{Title: "T", Date: tt.date}
			err := fm.ResolveDate(now)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveDate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveDate() error = %v", err)
			}
			if fm.Date != tt.want {
				t.Errorf("Date = %q, want %q", fm.Date, tt.want)
			}
		})
	}
}
