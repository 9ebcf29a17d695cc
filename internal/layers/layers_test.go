package layers

import (
	"errors"
	"testing"

	"github.com/repolens-dev/repolens/internal/apperr"
)

func TestClassifySizeBoundaries(t *testing.T) {
	cases := []struct {
		files int
		want  SizeCategory
	}{
		{0, SizeSmall},
		{1, SizeSmall},
		{79, SizeSmall},
		{80, SizeMedium},
		{499, SizeMedium},
		{500, SizeLarge},
		{5000, SizeLarge},
	}

	for _, tc := range cases {
		if got := ClassifySize(tc.files); got != tc.want {
			t.Errorf("ClassifySize(%d) = %s, want %s", tc.files, got, tc.want)
		}
	}
}

func TestRevealDepth(t *testing.T) {
	if got := RevealDepth(SizeSmall); got != 3 {
		t.Errorf("RevealDepth(small) = %d, want 3", got)
	}
	if got := RevealDepth(SizeMedium); got != 2 {
		t.Errorf("RevealDepth(medium) = %d, want 2", got)
	}
	if got := RevealDepth(SizeLarge); got != 1 {
		t.Errorf("RevealDepth(large) = %d, want 1", got)
	}
}

func TestLayerConfiguration(t *testing.T) {
	for n := 1; n <= 4; n++ {
		cfg, err := LayerConfiguration(n)
		if err != nil {
			t.Fatalf("LayerConfiguration(%d): %v", n, err)
		}
		if cfg.Layer != n {
			t.Errorf("layer %d config has Layer=%d", n, cfg.Layer)
		}
	}

	one, _ := LayerConfiguration(1)
	if one.ShowRisk || one.ShowCentrality {
		t.Errorf("orientation layer must not carry overlays: %+v", one)
	}
	four, _ := LayerConfiguration(4)
	if !four.FileLevel || !four.ShowRisk {
		t.Errorf("detail layer must enable everything: %+v", four)
	}

	for _, n := range []int{0, 5, -1} {
		if _, err := LayerConfiguration(n); !errors.Is(err, apperr.ErrOutOfRange) {
			t.Errorf("LayerConfiguration(%d) error = %v, want ErrOutOfRange", n, err)
		}
	}
}

func TestSetLayerLocksAndSnapshotsPrevious(t *testing.T) {
	s := NewState(SizeSmall)

	next, err := s.SetLayer(3)
	if err != nil {
		t.Fatalf("SetLayer: %v", err)
	}
	if next.CurrentLayer != 3 || !next.Locked {
		t.Fatalf("expected layer 3 locked, got %+v", next)
	}
	if next.Previous == nil || next.Previous.CurrentLayer != 1 {
		t.Fatalf("previous state not captured: %+v", next.Previous)
	}
	if next.Previous.Previous != nil {
		t.Fatalf("undo slot must be one level deep")
	}
	if s.CurrentLayer != 1 || s.Locked {
		t.Fatalf("original state mutated: %+v", s)
	}
}

func TestSetLayerOutOfRange(t *testing.T) {
	s := NewState(SizeSmall)
	for _, n := range []int{0, 5} {
		if _, err := s.SetLayer(n); !errors.Is(err, apperr.ErrOutOfRange) {
			t.Errorf("SetLayer(%d) error = %v, want ErrOutOfRange", n, err)
		}
	}
}

func TestUnlockOnlyClearsLock(t *testing.T) {
	s := NewState(SizeMedium)
	locked, err := s.SetLayer(4)
	if err != nil {
		t.Fatalf("SetLayer: %v", err)
	}

	unlocked := locked.Unlock()
	if unlocked.Locked {
		t.Fatalf("lock flag not cleared")
	}
	if unlocked.CurrentLayer != 4 {
		t.Fatalf("unlock must not revert the layer, got %d", unlocked.CurrentLayer)
	}
	if unlocked.FocusedUnit != locked.FocusedUnit || unlocked.RevealDepth != locked.RevealDepth {
		t.Fatalf("unlock changed unrelated fields")
	}
}

func TestFocusWithLayerPerformsTransition(t *testing.T) {
	s := NewState(SizeSmall)

	next, err := s.Focus("folder:src", 2)
	if err != nil {
		t.Fatalf("Focus: %v", err)
	}
	if next.FocusedUnit != "folder:src" || next.CurrentLayer != 2 || !next.Locked {
		t.Fatalf("unexpected state: %+v", next)
	}
	if next.Previous == nil {
		t.Fatalf("focus with layer must capture previous state")
	}
}

func TestFocusWithoutLayerKeepsLayer(t *testing.T) {
	s := NewState(SizeSmall)
	next, err := s.Focus("folder:src", 0)
	if err != nil {
		t.Fatalf("Focus: %v", err)
	}
	if next.CurrentLayer != 1 || next.Locked {
		t.Fatalf("focus without layer must not transition: %+v", next)
	}
	if next.FocusedUnit != "folder:src" {
		t.Fatalf("focus not set: %+v", next)
	}
}

func TestClearFocusResetsLayerRegardlessOfLock(t *testing.T) {
	s := NewState(SizeSmall)
	locked, err := s.SetLayer(3)
	if err != nil {
		t.Fatalf("SetLayer: %v", err)
	}
	focused, err := locked.Focus("x.js", 0)
	if err != nil {
		t.Fatalf("Focus: %v", err)
	}

	cleared, err := focused.Focus("", 0)
	if err != nil {
		t.Fatalf("Focus(clear): %v", err)
	}
	if cleared.FocusedUnit != "" {
		t.Fatalf("focus not cleared: %+v", cleared)
	}
	if cleared.CurrentLayer != 1 {
		t.Fatalf("layer not reset to orientation: %+v", cleared)
	}
	if !cleared.Locked {
		t.Fatalf("clearing focus must leave the lock flag alone")
	}
}

func TestUndoRestoresPrevious(t *testing.T) {
	s := NewState(SizeSmall)
	next, err := s.SetLayer(2)
	if err != nil {
		t.Fatalf("SetLayer: %v", err)
	}

	restored := next.Undo()
	if restored.CurrentLayer != 1 || restored.Locked {
		t.Fatalf("undo did not restore: %+v", restored)
	}

	if s.Undo() != s {
		t.Fatalf("undo without history must be a no-op")
	}
}
