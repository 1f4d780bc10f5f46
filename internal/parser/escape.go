package parser

import "strings"

// Unescape reverses vCard value escaping: \, \; and \\ become the literal
// character, \n and \N become a newline. A trailing lone backslash is kept
// as-is rather than dropped.
func Unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n', 'N':
			b.WriteByte('\n')
		case ',', ';', '\\':
			b.WriteByte(s[i])
		default:
			// Unknown escape; keep both bytes so no data is lost.
			b.WriteByte(c)
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// splitStructured splits a compound vCard value on sep, honoring backslash
// escapes. Components are returned still escaped; callers unescape the
// pieces they keep.
func splitStructured(s string, sep byte) []string {
	var parts []string
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i < len(s)-1 {
			b.WriteByte(c)
			i++
			b.WriteByte(s[i])
			continue
		}
		if c == sep {
			parts = append(parts, b.String())
			b.Reset()
			continue
		}
		b.WriteByte(c)
	}
	parts = append(parts, b.String())
	return parts
}

// joinNameParts assembles a display name from structured N components,
// dropping empty parts and collapsing runs of whitespace.
func joinNameParts(parts ...string) string {
	var kept []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(strings.Fields(strings.Join(kept, " ")), " ")
}
