package analysis

import (
	"regexp"
	"sort"
	"strings"

	"github.com/repolens-dev/repolens/internal/extract"
)

// FileComplexity is the decision-point score for one file.
type FileComplexity struct {
	Path     string `json:"path"`
	Language string `json:"language,omitempty"`
	Score    int    `json:"score"`
}

// ComplexitySummary aggregates scores across the repository.
type ComplexitySummary struct {
	Files   int              `json:"files"`
	Average float64          `json:"average"`
	Max     int              `json:"max"`
	Top     []FileComplexity `json:"top"`
}

// ComplexityReport holds per-file scores plus the repository summary.
type ComplexityReport struct {
	Files   []FileComplexity  `json:"files"`
	Summary ComplexitySummary `json:"summary"`
}

// decisionWord matches language-agnostic decision points: conditionals,
// loops, exception handlers and case branches.
var decisionWord = regexp.MustCompile(`\b(if|for|while|case|when|elif|elsif|catch|except|rescue)\b`)

// Complexity scores every file from a decision-point count plus a baseline
// of 1, and summarizes the repository with the topN highest-scoring files.
func Complexity(files []extract.SourceFile, topN int) *ComplexityReport {
	report := &ComplexityReport{Files: make([]FileComplexity, 0, len(files))}

	total := 0
	for _, f := range files {
		score := fileScore(f)
		total += score
		if score > report.Summary.Max {
			report.Summary.Max = score
		}
		report.Files = append(report.Files, FileComplexity{Path: f.Path, Language: f.Language, Score: score})
	}

	sort.Slice(report.Files, func(i, j int) bool { return report.Files[i].Path < report.Files[j].Path })

	report.Summary.Files = len(files)
	if len(files) > 0 {
		report.Summary.Average = float64(total) / float64(len(files))
	}

	top := make([]FileComplexity, len(report.Files))
	copy(top, report.Files)
	sort.Slice(top, func(i, j int) bool {
		if top[i].Score != top[j].Score {
			return top[i].Score > top[j].Score
		}
		return top[i].Path < top[j].Path
	})
	if topN < 0 {
		topN = 0
	}
	if topN > len(top) {
		topN = len(top)
	}
	report.Summary.Top = top[:topN]

	return report
}

func fileScore(f extract.SourceFile) int {
	score := 1 // baseline
	wordy := f.Language == "python" || f.Language == "py" || f.Language == "ruby" || f.Language == "rb"

	for _, line := range extract.CodeLines(f.Language, f.Content) {
		score += len(decisionWord.FindAllString(line, -1))
		score += strings.Count(line, "&&")
		score += strings.Count(line, "||")
		if wordy {
			score += strings.Count(line, " and ")
			score += strings.Count(line, " or ")
		}
	}

	return score
}
