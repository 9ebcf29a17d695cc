package extract

import "strings"

// commentStyle describes the comment syntax stripCommented blanks out.
type commentStyle struct {
	line       []string // line-comment markers, e.g. "//", "#"
	blockOpen  string
	blockClose string
}

var (
	cStyleComments = commentStyle{line: []string{"//"}, blockOpen: "/*", blockClose: "*/"}
	hashComments   = commentStyle{line: []string{"#"}}
	rubyComments   = commentStyle{line: []string{"#"}, blockOpen: "=begin", blockClose: "=end"}
)

// codeLines splits content into lines with comment spans blanked out, so
// matchers never fire on commented-out import statements. Comment markers
// inside string literals are not recognized; that false positive is a
// documented limitation of the heuristic scan.
func codeLines(content string, style commentStyle) []string {
	rawLines := strings.Split(content, "\n")
	out := make([]string, len(rawLines))

	inBlock := false
	for i, line := range rawLines {
		out[i] = blankComments(line, style, &inBlock)
	}
	return out
}

func blankComments(line string, style commentStyle, inBlock *bool) string {
	// Ruby-style block markers only count at the start of a line.
	if style.blockOpen == "=begin" {
		trimmed := strings.TrimSpace(line)
		if *inBlock {
			if strings.HasPrefix(trimmed, style.blockClose) {
				*inBlock = false
			}
			return ""
		}
		if strings.HasPrefix(trimmed, style.blockOpen) {
			*inBlock = true
			return ""
		}
		return cutLineComments(line, style.line)
	}

	var b strings.Builder
	rest := line
	for rest != "" {
		if *inBlock {
			end := strings.Index(rest, style.blockClose)
			if end == -1 {
				return b.String()
			}
			*inBlock = false
			rest = rest[end+len(style.blockClose):]
			continue
		}

		lineIdx := earliestMarker(rest, style.line)
		blockIdx := -1
		if style.blockOpen != "" {
			blockIdx = strings.Index(rest, style.blockOpen)
		}

		switch {
		case blockIdx != -1 && (lineIdx == -1 || blockIdx < lineIdx):
			b.WriteString(rest[:blockIdx])
			*inBlock = true
			rest = rest[blockIdx+len(style.blockOpen):]
		case lineIdx != -1:
			b.WriteString(rest[:lineIdx])
			return b.String()
		default:
			b.WriteString(rest)
			rest = ""
		}
	}
	return b.String()
}

func cutLineComments(line string, markers []string) string {
	if idx := earliestMarker(line, markers); idx != -1 {
		return line[:idx]
	}
	return line
}

func earliestMarker(line string, markers []string) int {
	best := -1
	for _, marker := range markers {
		if idx := strings.Index(line, marker); idx != -1 && (best == -1 || idx < best) {
			best = idx
		}
	}
	return best
}
