package scanner

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/repolens-dev/repolens/internal/apperr"
	"github.com/repolens-dev/repolens/internal/extract"
	"github.com/repolens-dev/repolens/internal/ignore"
)

// maxFileSize caps how large a source file may be before the scanner skips
// it. Anything bigger is almost certainly generated or vendored output.
const maxFileSize = 1 << 20

// Issue records a file the scanner could not process. Scanning continues
// past issues; they surface in the result for diagnostics.
type Issue struct {
	File     string `json:"file"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Result is the outcome of one repository scan.
type Result struct {
	Root   string               `json:"root"`
	Files  []extract.SourceFile `json:"files"`
	Issues []Issue              `json:"issues,omitempty"`
}

// Scanner walks a repository root and loads every supported source file.
type Scanner struct {
	registry *extract.Registry
	rules    []string
}

// New creates a scanner using the given extractor registry for language
// detection.
func New(registry *extract.Registry, opts ...Option) *Scanner {
	s := &Scanner{registry: registry}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Option adjusts scanner construction.
type Option func(*Scanner)

// WithIgnoreRules layers extra ignore rules on top of the defaults and
// the repository's .repolensignore.
func WithIgnoreRules(rules []string) Option {
	return func(s *Scanner) { s.rules = rules }
}

// Scan walks root, applies ignore rules (defaults, .repolensignore, then
// any configured extras), and reads supported files concurrently. Paths in
// the result are root-relative with forward slashes and sorted, so a
// rescan of an unchanged tree yields an identical result.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", apperr.ErrNotFound, root)
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", apperr.ErrNotADirectory, root)
	}

	matcher := ignore.NewMatcher(append(loadIgnoreRules(root), s.rules...))

	result := &Result{Root: root}
	var (
		mu         sync.Mutex
		candidates []string
	)

	walkErr := filepath.Walk(root, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			rel := relPath(root, path)
			result.Issues = append(result.Issues, Issue{File: rel, Severity: "warning", Message: fmt.Sprintf("walk error: %v", err)})
			if fi != nil && fi.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel := relPath(root, path)
		if rel == "." {
			return nil
		}
		if matcher.ShouldIgnore(rel, fi.IsDir()) {
			if fi.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if fi.IsDir() {
			return nil
		}
		if _, ok := s.registry.LanguageForFile(path); !ok {
			return nil
		}
		if fi.Size() > maxFileSize {
			result.Issues = append(result.Issues, Issue{File: rel, Severity: "warning", Message: fmt.Sprintf("skipped: %d bytes exceeds size limit", fi.Size())})
			return nil
		}
		candidates = append(candidates, path)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	files := make([]extract.SourceFile, 0, len(candidates))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, path := range candidates {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			content, err := os.ReadFile(path)
			rel := relPath(root, path)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Issues = append(result.Issues, Issue{File: rel, Severity: "error", Message: err.Error()})
				return nil
			}
			if isBinary(content) {
				result.Issues = append(result.Issues, Issue{File: rel, Severity: "warning", Message: "skipped: binary content"})
				return nil
			}
			lang, _ := s.registry.LanguageForFile(path)
			files = append(files, extract.SourceFile{Path: rel, Language: lang, Content: string(content)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	sort.Slice(result.Issues, func(i, j int) bool {
		if result.Issues[i].File != result.Issues[j].File {
			return result.Issues[i].File < result.Issues[j].File
		}
		return result.Issues[i].Message < result.Issues[j].Message
	})
	result.Files = files

	return result, nil
}

// loadIgnoreRules reads .repolensignore at the root, if present.
func loadIgnoreRules(root string) []string {
	f, err := os.Open(filepath.Join(root, ".repolensignore"))
	if err != nil {
		return nil
	}
	defer f.Close()

	var rules []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		rules = append(rules, sc.Text())
	}
	return rules
}

// isBinary sniffs the first kilobytes for a NUL byte.
func isBinary(content []byte) bool {
	probe := content
	if len(probe) > 8000 {
		probe = probe[:8000]
	}
	return bytes.IndexByte(probe, 0) != -1
}

func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
