package extract

import (
	"regexp"
	"strings"
)

// RubyExtractor handles require and require_relative calls.
type RubyExtractor struct{}

// NewRubyExtractor creates a new Ruby extractor
func NewRubyExtractor() *RubyExtractor {
	return &RubyExtractor{}
}

var (
	rbRequireRelative = regexp.MustCompile(`\brequire_relative\s+['"]([^'"]+)['"]`)
	rbRequire         = regexp.MustCompile(`\brequire\s+['"]([^'"]+)['"]`)
)

func (r *RubyExtractor) Language() string {
	return "ruby"
}

func (r *RubyExtractor) Tags() []string {
	return []string{"ruby", "rb"}
}

func (r *RubyExtractor) Extensions() []string {
	return []string{".rb", ".rake"}
}

func (r *RubyExtractor) Extract(content string) []RawReference {
	refs := make([]RawReference, 0)

	for i, line := range codeLines(content, rubyComments) {
		lineNo := i + 1
		if m := rbRequireRelative.FindStringSubmatch(line); m != nil {
			spec := m[1]
			if !strings.HasPrefix(spec, ".") {
				spec = "./" + spec
			}
			refs = append(refs, RawReference{Specifier: spec, Line: lineNo, Form: FormRequire})
			continue
		}
		if m := rbRequire.FindStringSubmatch(line); m != nil {
			refs = append(refs, RawReference{Specifier: m[1], Line: lineNo, Form: FormRequire})
		}
	}

	return refs
}
