// Package dateutil expands the "auto" date placeholder of front matter.
//
//	date: auto              -> 2026-10-15
//	date: auto:long         -> October 15, 2026
//	date: auto:DD/MM/YYYY   -> 15/10/2026
//	date: Spring 2024       -> Spring 2024 (unchanged)
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates a malformed date format.
var ErrInvalidDateFormat = errors.New("invalid date format")

// DefaultFormat is used by a bare "auto".
const DefaultFormat = "YYYY-MM-DD"

const maxFormatLen = 50

// Presets are named formats accepted after "auto:".
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// tokens maps format tokens to time layout elements. Longer tokens come
// first, as strings.Replacer tries its pairs in argument order.
var tokens = strings.NewReplacer(
	"YYYY", "2006",
	"MMMM", "January",
	"MMM", "Jan",
	"YY", "06",
	"MM", "01",
	"DD", "02",
	"M", "1",
	"D", "2",
)

// Layout converts a format such as "MMMM D, YYYY" to a time layout.
// Text inside brackets is copied literally: "[Week of] MMM D".
func Layout(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: empty format", ErrInvalidDateFormat)
	}
	if len(format) > maxFormatLen {
		return "", fmt.Errorf("%w: longer than %d characters", ErrInvalidDateFormat, maxFormatLen)
	}

	var b strings.Builder
	rest := format
	for rest != "" {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			b.WriteString(tokens.Replace(rest))
			break
		}
		b.WriteString(tokens.Replace(rest[:open]))
		literal, after, ok := strings.Cut(rest[open+1:], "]")
		if !ok {
			return "", fmt.Errorf("%w: unclosed bracket in %q", ErrInvalidDateFormat, format)
		}
		b.WriteString(literal)
		rest = after
	}
	return b.String(), nil
}

// Resolve expands "auto" and "auto:FORMAT" (or "auto:PRESET") to now in
// that format. The "auto" prefix is case-insensitive; FORMAT is not. Any
// other value is returned as is.
func Resolve(value string, now time.Time) (string, error) {
	format, ok := autoFormat(value)
	if !ok {
		return value, nil
	}
	if preset, ok := Presets[strings.ToLower(format)]; ok {
		format = preset
	}
	layout, err := Layout(format)
	if err != nil {
		return "", err
	}
	return now.Format(layout), nil
}

func autoFormat(value string) (string, bool) {
	const prefix = "auto"
	if len(value) < len(prefix) || !strings.EqualFold(value[:len(prefix)], prefix) {
		return "", false
	}
	switch rest := value[len(prefix):]; {
	case rest == "":
		return DefaultFormat, true
	case rest[0] == ':':
		return rest[1:], true
	}
	return "", false
}
