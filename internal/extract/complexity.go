package extract

import "strings"

// CodeLines returns the lines of content with comments blanked out, using
// the comment style of the given language tag. Unknown tags fall back to
// C-style comments.
func CodeLines(language, content string) []string {
	switch strings.ToLower(strings.TrimSpace(language)) {
	case "python", "py":
		return codeLines(content, hashComments)
	case "ruby", "rb":
		return codeLines(content, rubyComments)
	default:
		return codeLines(content, cStyleComments)
	}
}
