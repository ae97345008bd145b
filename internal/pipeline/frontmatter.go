package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-md2tufte/internal/dateutil"
	"github.com/alnah/go-md2tufte/internal/yamlutil"
)

// ErrFrontmatter indicates a malformed front matter block.
var ErrFrontmatter = errors.New("invalid front matter")

// Frontmatter is the YAML block at the top of a document, between "---" lines.
type Frontmatter struct {
	Title       string   `yaml:"title"`
	Subtitle    string   `yaml:"subtitle"`
	Author      string   `yaml:"author"`
	Date        string   `yaml:"date"`
	Description string   `yaml:"description"`
	Lang        string   `yaml:"lang"`
	Keywords    []string `yaml:"keywords"`
}

// SplitFrontmatter separates a leading front matter block from the body.
// Content without front matter is returned unchanged with a zero Frontmatter.
// An opening "---" without a closing one is treated as ordinary Markdown.
// Unknown keys are ignored, as front matter is often shared with other tools.
func SplitFrontmatter(content string) (Frontmatter, string, error) {
	var fm Frontmatter

	rest, ok := strings.CutPrefix(content, "---\n")
	if !ok {
		return fm, content, nil
	}

	var block, body string
	switch {
	case strings.HasPrefix(rest, "---\n"):
		body = rest[len("---\n"):]
	case rest == "---":
	default:
		end := strings.Index(rest, "\n---\n")
		if end == -1 {
			if !strings.HasSuffix(rest, "\n---") {
				return fm, content, nil
			}
			end = len(rest) - len("\n---")
			block = rest[:end]
		} else {
			block, body = rest[:end], rest[end+len("\n---\n"):]
		}
	}

	if strings.TrimSpace(block) == "" {
		return fm, body, nil
	}
	if err := yamlutil.Unmarshal([]byte(block), &fm); err != nil {
		return Frontmatter{}, content, fmt.Errorf("%w: %v", ErrFrontmatter, err)
	}
	return fm, body, nil
}

// ResolveDate expands an "auto" date to now; see dateutil.Resolve.
func (fm *Frontmatter) ResolveDate(now time.Time) error {
	date, err := dateutil.Resolve(fm.Date, now)
	if err != nil {
		return fmt.Errorf("%w: date: %v", ErrFrontmatter, err)
	}
	fm.Date = date
	return nil
}
