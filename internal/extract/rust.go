package extract

import (
	"regexp"
	"strings"
)

// RustExtractor handles use declarations and mod items. A "mod name;" item
// maps to a sibling file, so it is emitted as a relative specifier.
type RustExtractor struct{}

// NewRustExtractor creates a new Rust extractor
func NewRustExtractor() *RustExtractor {
	return &RustExtractor{}
}

var (
	rsUse = regexp.MustCompile(`^\s*(?:pub\s+)?use\s+([\w:]+)`)
	rsMod = regexp.MustCompile(`^\s*(?:pub\s+)?mod\s+(\w+)\s*;`)
)

func (r *RustExtractor) Language() string {
	return "rust"
}

func (r *RustExtractor) Tags() []string {
	return []string{"rust", "rs"}
}

func (r *RustExtractor) Extensions() []string {
	return []string{".rs"}
}

func (r *RustExtractor) Extract(content string) []RawReference {
	refs := make([]RawReference, 0)

	for i, line := range codeLines(content, cStyleComments) {
		lineNo := i + 1
		if m := rsMod.FindStringSubmatch(line); m != nil {
			refs = append(refs, RawReference{Specifier: "./" + m[1], Line: lineNo, Form: FormStatic})
			continue
		}
		if m := rsUse.FindStringSubmatch(line); m != nil {
			refs = append(refs, RawReference{Specifier: strings.ReplaceAll(m[1], "::", "/"), Line: lineNo, Form: FormStatic})
		}
	}

	return refs
}
