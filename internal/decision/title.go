package decision

import (
	"strings"
	"unicode"
)

// titleCase upper-cases the first letter of every run of letters and lower-cases
// the rest, so "problem-solving" becomes "Problem-Solving" and "node.js" becomes
// "Node.Js".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inWord := false
	for _, r := range s {
		switch {
		case !unicode.IsLetter(r):
			inWord = false
		case inWord:
			r = unicode.ToLower(r)
		default:
			r = unicode.ToTitle(r)
			inWord = true
		}
		b.WriteRune(r)
	}

	return b.String()
}
