package ignore

import (
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// defaultRules are always-on excludes. User negation rules can re-include
// paths because the user's lines are compiled after the defaults and
// gitignore semantics give the last matching rule the final say.
var defaultRules = []string{
	".git/",
	".repolens/",
	"node_modules/",
	"vendor/",
	"dist/",
	"build/",
	"target/",
	"__pycache__/",
	".venv/",
}

// Matcher applies gitignore-style rules to repository-relative paths.
type Matcher struct {
	gi *gitignore.GitIgnore
}

// NewMatcher builds a matcher from user-provided .repolensignore lines,
// layered on top of the default excludes.
func NewMatcher(userRules []string) *Matcher {
	lines := make([]string, 0, len(defaultRules)+len(userRules))
	lines = append(lines, defaultRules...)
	for _, line := range userRules {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return &Matcher{gi: gitignore.CompileIgnoreLines(lines...)}
}

// ShouldIgnore reports whether relPath should be excluded from a scan.
func (m *Matcher) ShouldIgnore(relPath string, isDir bool) bool {
	relPath = normalizePath(relPath)
	if relPath == "" {
		return false
	}
	// directories also match their dir-only ("name/") rules
	if isDir && m.gi.MatchesPath(relPath+"/") {
		return true
	}
	return m.gi.MatchesPath(relPath)
}

func normalizePath(path string) string {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	path = strings.TrimPrefix(path, "/")
	return path
}
