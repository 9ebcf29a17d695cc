package extract

import "regexp"

// JavaExtractor handles import declarations. Java imports are fully
// qualified package paths, so they always resolve as external references.
type JavaExtractor struct{}

// NewJavaExtractor creates a new Java extractor
func NewJavaExtractor() *JavaExtractor {
	return &JavaExtractor{}
}

var javaImport = regexp.MustCompile(`^\s*import\s+(?:static\s+)?([\w.]+(?:\.\*)?)\s*;`)

func (j *JavaExtractor) Language() string {
	return "java"
}

func (j *JavaExtractor) Tags() []string {
	return []string{"java"}
}

func (j *JavaExtractor) Extensions() []string {
	return []string{".java"}
}

func (j *JavaExtractor) Extract(content string) []RawReference {
	refs := make([]RawReference, 0)

	for i, line := range codeLines(content, cStyleComments) {
		if m := javaImport.FindStringSubmatch(line); m != nil {
			refs = append(refs, RawReference{Specifier: m[1], Line: i + 1, Form: FormStatic})
		}
	}

	return refs
}
