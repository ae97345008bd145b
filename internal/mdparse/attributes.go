package mdparse

import "strings"

// directiveHead is the part of a directive following its colons:
// name, optional [label] and optional {attributes}.
type directiveHead struct {
	name     string
	label    []byte
	hasLabel bool
	attrs    map[string]string
	hasAttrs bool
	n        int // bytes consumed
}

// parseDirectiveHead parses `name[label]{attrs}` at the start of b.
func parseDirectiveHead(b []byte) (directiveHead, bool) {
	var h directiveHead

	i := 0
	if i >= len(b) || !isNameStart(b[i]) {
		return h, false
	}
	for i < len(b) && isNameChar(b[i]) {
		i++
	}
	h.name = string(b[:i])

	if i < len(b) && b[i] == '[' {
		label, n, ok := scanBracketed(b[i:])
		if !ok {
			return h, false
		}
		h.label = append([]byte(nil), label...)
		h.hasLabel = true
		i += n
	}

	if i < len(b) && b[i] == '{' {
		attrs, n, ok := parseAttributes(b[i:])
		if !ok {
			return h, false
		}
		h.attrs = attrs
		h.hasAttrs = true
		i += n
	}

	h.n = i
	return h, true
}

// scanBracketed returns the content of the balanced [...] group opening at
// b[0], and the number of bytes including both brackets. Backslash escapes
// are honored. Groups never span lines.
func scanBracketed(b []byte) ([]byte, int, bool) {
	if len(b) == 0 || b[0] != '[' {
		return nil, 0, false
	}
	depth := 0
	for i := 0; i < len(b); i++ {
		switch b[i] {
		case '\\':
			i++
		case '\n', '\r':
			return nil, 0, false
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return b[1:i], i + 1, true
			}
		}
	}
	return nil, 0, false
}

// parseAttributes parses a {...} attribute list opening at b[0].
//
//	#id          -> id=id
//	.class       -> class=class (repeated classes are space-joined)
//	key=value    -> key=value (value may be "double" or 'single' quoted)
//	key          -> key="" (presence only)
func parseAttributes(b []byte) (map[string]string, int, bool) {
	if len(b) == 0 || b[0] != '{' {
		return nil, 0, false
	}
	attrs := map[string]string{}
	i := 1
	for i < len(b) {
		for i < len(b) && (b[i] == ' ' || b[i] == '\t') {
			i++
		}
		if i >= len(b) {
			break
		}

		switch c := b[i]; {
		case c == '}':
			return attrs, i + 1, true
		case c == '\n' || c == '\r':
			return nil, 0, false
		case c == '#' || c == '.':
			start := i + 1
			i = start
			for i < len(b) && isShorthandChar(b[i]) {
				i++
			}
			if i == start {
				return nil, 0, false
			}
			v := string(b[start:i])
			if c == '#' {
				attrs["id"] = v
			} else if prev, ok := attrs["class"]; ok && prev != "" {
				attrs["class"] = prev + " " + v
			} else {
				attrs["class"] = v
			}
		case isNameStart(c):
			start := i
			for i < len(b) && isKeyChar(b[i]) {
				i++
			}
			key := string(b[start:i])
			if i < len(b) && b[i] == '=' {
				v, n, ok := parseAttrValue(b[i+1:])
				if !ok {
					return nil, 0, false
				}
				attrs[key] = v
				i += 1 + n
			} else {
				attrs[key] = ""
			}
		default:
			return nil, 0, false
		}
	}
	return nil, 0, false
}

func parseAttrValue(b []byte) (string, int, bool) {
	if len(b) == 0 {
		return "", 0, false
	}
	if q := b[0]; q == '"' || q == '\'' {
		end := strings.IndexByte(string(b[1:]), q)
		if end < 0 || strings.ContainsAny(string(b[1:1+end]), "\n\r") {
			return "", 0, false
		}
		return string(b[1 : 1+end]), end + 2, true
	}
	i := 0
	for i < len(b) && b[i] != ' ' && b[i] != '\t' && b[i] != '}' && b[i] != '\n' && b[i] != '\r' {
		i++
	}
	if i == 0 {
		return "", 0, false
	}
	return string(b[:i]), i, true
}

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isNameChar(c byte) bool {
	return isNameStart(c) || c >= '0' && c <= '9' || c == '-' || c == '_'
}

func isKeyChar(c byte) bool {
	return isNameChar(c) || c == ':'
}

func isShorthandChar(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '}', '#', '.', '"', '\'', '=':
		return false
	}
	return true
}
