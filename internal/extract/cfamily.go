package extract

import (
	"regexp"
	"strings"
)

// CFamilyExtractor handles C and C++ #include directives. Quoted includes
// resolve relative to the including file; angle-bracket includes are
// system headers and stay external.
type CFamilyExtractor struct{}

// NewCFamilyExtractor creates a new C/C++ extractor
func NewCFamilyExtractor() *CFamilyExtractor {
	return &CFamilyExtractor{}
}

var (
	cIncludeQuoted = regexp.MustCompile(`^\s*#\s*include\s+"([^"]+)"`)
	cIncludeAngled = regexp.MustCompile(`^\s*#\s*include\s+<([^>]+)>`)
)

func (c *CFamilyExtractor) Language() string {
	return "c"
}

func (c *CFamilyExtractor) Tags() []string {
	return []string{"c", "cpp", "c++"}
}

func (c *CFamilyExtractor) Extensions() []string {
	return []string{".c", ".h", ".cpp", ".cc", ".hpp"}
}

func (c *CFamilyExtractor) Extract(content string) []RawReference {
	refs := make([]RawReference, 0)

	for i, line := range codeLines(content, cStyleComments) {
		lineNo := i + 1
		if m := cIncludeQuoted.FindStringSubmatch(line); m != nil {
			spec := m[1]
			if !strings.HasPrefix(spec, ".") {
				spec = "./" + spec
			}
			refs = append(refs, RawReference{Specifier: spec, Line: lineNo, Form: FormInclude})
			continue
		}
		if m := cIncludeAngled.FindStringSubmatch(line); m != nil {
			refs = append(refs, RawReference{Specifier: m[1], Line: lineNo, Form: FormInclude})
		}
	}

	return refs
}
