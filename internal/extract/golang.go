package extract

import (
	"regexp"
	"strings"
)

// GoExtractor handles single import statements and import blocks. Go import
// paths are package-style, so they always resolve as external references.
type GoExtractor struct{}

// NewGoExtractor creates a new Go extractor
func NewGoExtractor() *GoExtractor {
	return &GoExtractor{}
}

var (
	goSingleImport = regexp.MustCompile(`^\s*import\s+(?:[\w.]+\s+)?"([^"]+)"`)
	goBlockLine    = regexp.MustCompile(`^\s*(?:[\w.]+\s+)?"([^"]+)"`)
)

func (g *GoExtractor) Language() string {
	return "go"
}

func (g *GoExtractor) Tags() []string {
	return []string{"go", "golang"}
}

func (g *GoExtractor) Extensions() []string {
	return []string{".go"}
}

func (g *GoExtractor) Extract(content string) []RawReference {
	refs := make([]RawReference, 0)

	inBlock := false
	for i, line := range codeLines(content, cStyleComments) {
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)

		if inBlock {
			if trimmed == ")" || strings.HasPrefix(trimmed, ")") {
				inBlock = false
				continue
			}
			if m := goBlockLine.FindStringSubmatch(line); m != nil {
				refs = append(refs, RawReference{Specifier: m[1], Line: lineNo, Form: FormStatic})
			}
			continue
		}

		if strings.HasPrefix(trimmed, "import (") || trimmed == "import (" {
			inBlock = true
			continue
		}
		if m := goSingleImport.FindStringSubmatch(line); m != nil {
			refs = append(refs, RawReference{Specifier: m[1], Line: lineNo, Form: FormStatic})
		}
	}

	return refs
}
