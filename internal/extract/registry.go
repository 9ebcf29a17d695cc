package extract

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// LanguageExtractor defines the heuristic import scan each language implements.
// Extraction is line/token based, never a full AST: matches inside comments are
// excluded where that is unambiguous, but string literals containing import-like
// text are a documented limitation.
type LanguageExtractor interface {
	// Language returns the canonical language tag (e.g. "javascript")
	Language() string

	// Tags returns every language tag this extractor handles, including aliases
	Tags() []string

	// Extensions returns file extensions this extractor handles
	Extensions() []string

	// Extract scans source text and returns raw references in source order
	Extract(content string) []RawReference
}

// Registry maps language tags and file extensions to extractors.
type Registry struct {
	byTag     map[string]LanguageExtractor
	extToLang map[string]string
}

// NewRegistry creates an empty extractor registry
func NewRegistry() *Registry {
	return &Registry{
		byTag:     make(map[string]LanguageExtractor),
		extToLang: make(map[string]string),
	}
}

// NewDefaultRegistry creates a registry with all supported language extractors
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(NewJavaScriptExtractor())
	r.Register(NewPythonExtractor())
	r.Register(NewGoExtractor())
	r.Register(NewRubyExtractor())
	r.Register(NewRustExtractor())
	r.Register(NewJavaExtractor())
	r.Register(NewCFamilyExtractor())

	return r
}

// Register adds a language extractor to the registry
func (r *Registry) Register(e LanguageExtractor) {
	for _, tag := range e.Tags() {
		r.byTag[strings.ToLower(tag)] = e
	}
	for _, ext := range e.Extensions() {
		r.extToLang[strings.ToLower(ext)] = e.Language()
	}
}

// ForTag returns the extractor for a language tag
func (r *Registry) ForTag(tag string) (LanguageExtractor, bool) {
	e, ok := r.byTag[strings.ToLower(strings.TrimSpace(tag))]
	return e, ok
}

// LanguageForFile returns the language tag detected from a file extension
func (r *Registry) LanguageForFile(path string) (string, bool) {
	lang, ok := r.extToLang[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

// Extensions returns all file extensions the registry recognizes
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.extToLang))
	for ext := range r.extToLang {
		exts = append(exts, ext)
	}
	return exts
}

// ExtractSource scans one file. Unsupported language tags yield an empty
// sequence without error.
func (r *Registry) ExtractSource(file SourceFile) []RawReference {
	e, ok := r.ForTag(file.Language)
	if !ok {
		return nil
	}
	return e.Extract(file.Content)
}

// ExtractAll scans every file, in parallel. Extraction is independent per
// file, so results land in the slot matching the input order.
func (r *Registry) ExtractAll(ctx context.Context, files []SourceFile) ([]FileRefs, error) {
	out := make([]FileRefs, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = FileRefs{File: file, Refs: r.ExtractSource(file)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
