package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Highlight placeholders use Unicode Private Use Area characters. They pass
// through parsing and rendering untouched and become <mark> tags in the
// final page via ConvertMarkPlaceholders.
const (
	MarkStartPlaceholder = "\uE000"
	MarkEndPlaceholder   = "\uE001"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
	highlightPattern   = regexp.MustCompile(`==(\S(?:.*?\S)?)==`)
	fenceLine          = regexp.MustCompile("^ {0,3}(```+|~~~+)")
)

// Preprocess prepares Markdown source for parsing: line endings are
// normalized, runs of blank lines compressed and ==text== converted to
// highlight placeholders. Fenced code is left alone.
func Preprocess(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = crlfOrCR.ReplaceAllString(content, "\n")
	return outsideFences(content, func(s string) string {
		s = multipleBlankLines.ReplaceAllString(s, "\n\n")
		return highlightPattern.ReplaceAllString(s, MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
	})
}

// outsideFences applies fn to every stretch of lines outside fenced code.
func outsideFences(content string, fn func(string) string) string {
	lines := strings.SplitAfter(content, "\n")

	var (
		out   strings.Builder
		chunk strings.Builder
		fence string
	)
	flush := func() {
		out.WriteString(fn(chunk.String()))
		chunk.Reset()
	}

	for _, line := range lines {
		m := fenceLine.FindStringSubmatch(line)
		switch {
		case fence == "" && m != nil:
			flush()
			fence = m[1]
			out.WriteString(line)
		case fence != "":
			out.WriteString(line)
			if closesFence(line, fence) {
				fence = ""
			}
		default:
			chunk.WriteString(line)
		}
	}
	flush()
	return out.String()
}

// ConvertMarkPlaceholders turns highlight placeholders into <mark> tags.
func ConvertMarkPlaceholders(content string) string {
	return strings.NewReplacer(
		MarkStartPlaceholder, "<mark>",
		MarkEndPlaceholder, "</mark>",
	).Replace(content)
}

func closesFence(line, fence string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < len(fence) {
		return false
	}
	return strings.Trim(trimmed, fence[:1]) == ""
}
