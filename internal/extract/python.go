package extract

import (
	"regexp"
	"strings"
)

// PythonExtractor handles "import a.b" and "from a.b import c" statements.
// Relative modules (leading dots) are rewritten to path-style specifiers so
// the builder can resolve them against the importing file's directory.
type PythonExtractor struct{}

// NewPythonExtractor creates a new Python extractor
func NewPythonExtractor() *PythonExtractor {
	return &PythonExtractor{}
}

var (
	pyImport     = regexp.MustCompile(`^\s*import\s+([\w.]+(?:\s*,\s*[\w.]+)*)`)
	pyFromImport = regexp.MustCompile(`^\s*from\s+(\.*[\w.]*)\s+import\b`)
)

func (p *PythonExtractor) Language() string {
	return "python"
}

func (p *PythonExtractor) Tags() []string {
	return []string{"python", "py"}
}

func (p *PythonExtractor) Extensions() []string {
	return []string{".py"}
}

func (p *PythonExtractor) Extract(content string) []RawReference {
	refs := make([]RawReference, 0)

	for i, line := range codeLines(content, hashComments) {
		lineNo := i + 1
		if m := pyFromImport.FindStringSubmatch(line); m != nil {
			if spec := pythonSpecifier(m[1]); spec != "" {
				refs = append(refs, RawReference{Specifier: spec, Line: lineNo, Form: FormStatic})
			}
			continue
		}
		if m := pyImport.FindStringSubmatch(line); m != nil {
			for _, module := range strings.Split(m[1], ",") {
				if spec := pythonSpecifier(module); spec != "" {
					refs = append(refs, RawReference{Specifier: spec, Line: lineNo, Form: FormStatic})
				}
			}
		}
	}

	return refs
}

// pythonSpecifier converts a module path to a resolvable specifier:
// ".utils" -> "./utils", "..pkg.mod" -> "../pkg/mod", "os.path" -> "os.path".
func pythonSpecifier(module string) string {
	module = strings.TrimSpace(module)
	if module == "" {
		return ""
	}

	dots := 0
	for dots < len(module) && module[dots] == '.' {
		dots++
	}
	rest := strings.ReplaceAll(module[dots:], ".", "/")

	switch {
	case dots == 0:
		return module
	case dots == 1:
		return "./" + rest
	default:
		return strings.Repeat("../", dots-1) + rest
	}
}
