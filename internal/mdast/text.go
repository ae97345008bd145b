package mdast

import "strings"

// ToString returns the plain-text content of n: text values, inline code,
// image alt text, and the concatenated content of children.
func ToString(n *Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	writeString(&b, n)
	return b.String()
}

func writeString(b *strings.Builder, n *Node) {
	switch n.Kind {
	case KindText, KindInlineCode, KindCode:
		b.WriteString(n.Value)
		return
	case KindImage:
		b.WriteString(n.Alt)
		return
	case KindHTML:
		return
	}
	for _, c := range n.Children {
		writeString(b, c)
	}
}

// NormalizeIdentifier turns a label into the identifier used for lookups:
// surrounding whitespace trimmed, inner whitespace collapsed, lower-cased.
func NormalizeIdentifier(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), " "))
}
