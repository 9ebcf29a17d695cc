package churn

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Provider yields per-file change frequency used by risk fusion. Keys are
// repository-relative paths with forward slashes, values are raw commit
// counts, not yet normalized.
type Provider interface {
	Counts(ctx context.Context, root string) (map[string]float64, error)
}

// GitProvider counts file modifications over a trailing window by reading
// `git log --name-only`. A root that is not a git repository, or a machine
// without git, degrades to an empty map so the rest of the analysis keeps
// working without churn signal.
type GitProvider struct {
	Window  time.Duration
	Timeout time.Duration
}

// NewGitProvider returns a provider looking back windowDays days.
func NewGitProvider(windowDays int) *GitProvider {
	if windowDays <= 0 {
		windowDays = 90
	}
	return &GitProvider{
		Window:  time.Duration(windowDays) * 24 * time.Hour,
		Timeout: 10 * time.Second,
	}
}

func (p *GitProvider) Counts(ctx context.Context, root string) (map[string]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	since := fmt.Sprintf("--since=%d.days", int(p.Window.Hours()/24))
	cmd := exec.CommandContext(ctx, "git", "-C", root, "log", since, "--name-only", "--pretty=format:")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = nil

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// not a repo, or no git installed
		return map[string]float64{}, nil
	}

	return parseNameOnly(&out), nil
}

// parseNameOnly tallies one count per file per commit from
// `git log --name-only --pretty=format:` output.
func parseNameOnly(r *bytes.Buffer) map[string]float64 {
	counts := make(map[string]float64)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		counts[filepath.ToSlash(line)]++
	}
	return counts
}

// StaticProvider serves a fixed churn table. Used by tests and by analyses
// of trees without version history.
type StaticProvider struct {
	Table map[string]float64
}

func (p *StaticProvider) Counts(ctx context.Context, root string) (map[string]float64, error) {
	if p.Table == nil {
		return map[string]float64{}, nil
	}
	out := make(map[string]float64, len(p.Table))
	for k, v := range p.Table {
		out[k] = v
	}
	return out, nil
}
