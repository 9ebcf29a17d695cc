// Package layers implements the semantic layer engine: repository-size
// classification, adaptive unit selection, the four progressive disclosure
// layers and the per-session focus/lock/expand state machine.
package layers

import (
	"fmt"

	"github.com/repolens-dev/repolens/internal/apperr"
)

// SizeCategory classifies a repository by total file count.
type SizeCategory string

const (
	SizeSmall  SizeCategory = "small"
	SizeMedium SizeCategory = "medium"
	SizeLarge  SizeCategory = "large"
)

// size boundaries are exact: 79 is small, 80 is medium, 499 is medium,
// 500 is large.
const (
	mediumThreshold = 80
	largeThreshold  = 500
)

// ClassifySize buckets a repository by its total file count. It is a pure
// function of the count, independent of graph shape.
func ClassifySize(totalFiles int) SizeCategory {
	switch {
	case totalFiles < mediumThreshold:
		return SizeSmall
	case totalFiles < largeThreshold:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// RevealDepth returns how many edge-hops are shown by default before manual
// expansion: small 3, medium 2, large 1.
func RevealDepth(category SizeCategory) int {
	switch category {
	case SizeSmall:
		return 3
	case SizeMedium:
		return 2
	default:
		return 1
	}
}

// LayerConfig describes one of the four fixed disclosure layers.
type LayerConfig struct {
	Layer          int    `json:"layer"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	FullEdges      bool   `json:"fullEdges"`
	ShowCentrality bool   `json:"showCentrality"`
	ShowRisk       bool   `json:"showRisk"`
	FileLevel      bool   `json:"fileLevel"`
}

var layerConfigs = [4]LayerConfig{
	{
		Layer:       1,
		Name:        "Orientation",
		Description: "units and top relationships only",
	},
	{
		Layer:          2,
		Name:           "Structural",
		Description:    "full edge set among units with centrality",
		FullEdges:      true,
		ShowCentrality: true,
	},
	{
		Layer:          3,
		Name:           "Impact & Risk",
		Description:    "risk indicators and cycle/impact overlays",
		FullEdges:      true,
		ShowCentrality: true,
		ShowRisk:       true,
	},
	{
		Layer:          4,
		Name:           "Detail",
		Description:    "full file-level graph with all overlays",
		FullEdges:      true,
		ShowCentrality: true,
		ShowRisk:       true,
		FileLevel:      true,
	},
}

// LayerConfiguration returns the configuration for layer n in [1,4].
func LayerConfiguration(n int) (LayerConfig, error) {
	if n < 1 || n > 4 {
		return LayerConfig{}, fmt.Errorf("%w: layer %d not in [1,4]", apperr.ErrOutOfRange, n)
	}
	return layerConfigs[n-1], nil
}
