package extract

import "regexp"

// JavaScriptExtractor handles JavaScript and TypeScript import syntax:
// static imports, re-exports, CommonJS require and dynamic import calls.
type JavaScriptExtractor struct{}

// NewJavaScriptExtractor creates a new JavaScript/TypeScript extractor
func NewJavaScriptExtractor() *JavaScriptExtractor {
	return &JavaScriptExtractor{}
}

var (
	jsStaticImport  = regexp.MustCompile(`^\s*import\s+(?:type\s+)?(?:[\w$*{},\s]+\s+from\s+)?['"]([^'"]+)['"]`)
	jsReexport      = regexp.MustCompile(`^\s*export\s+(?:type\s+)?(?:[\w$*{},\s]+\s+)?from\s+['"]([^'"]+)['"]`)
	jsRequireCall   = regexp.MustCompile(`\brequire\s*\(\s*['"]([^'"]+)['"]\s*\)`)
	jsDynamicImport = regexp.MustCompile(`\bimport\s*\(\s*['"]([^'"]+)['"]\s*\)`)
)

func (j *JavaScriptExtractor) Language() string {
	return "javascript"
}

func (j *JavaScriptExtractor) Tags() []string {
	return []string{"javascript", "js", "jsx", "typescript", "ts", "tsx"}
}

func (j *JavaScriptExtractor) Extensions() []string {
	return []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx"}
}

func (j *JavaScriptExtractor) Extract(content string) []RawReference {
	refs := make([]RawReference, 0)

	for i, line := range codeLines(content, cStyleComments) {
		lineNo := i + 1
		if m := jsStaticImport.FindStringSubmatch(line); m != nil {
			refs = append(refs, RawReference{Specifier: m[1], Line: lineNo, Form: FormStatic})
		}
		if m := jsReexport.FindStringSubmatch(line); m != nil {
			refs = append(refs, RawReference{Specifier: m[1], Line: lineNo, Form: FormReexport})
		}
		for _, m := range jsRequireCall.FindAllStringSubmatch(line, -1) {
			refs = append(refs, RawReference{Specifier: m[1], Line: lineNo, Form: FormRequire})
		}
		for _, m := range jsDynamicImport.FindAllStringSubmatch(line, -1) {
			refs = append(refs, RawReference{Specifier: m[1], Line: lineNo, Form: FormDynamic})
		}
	}

	return refs
}
