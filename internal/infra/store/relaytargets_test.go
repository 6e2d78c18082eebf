package store

import (
	"path/filepath"
	"testing"
)

func openTargets(t *testing.T, path string) *RelayTargets {
	t.Helper()
	r, err := OpenRelayTargets(path, newTestLogger())
	if err != nil {
		t.Fatalf("OpenRelayTargets: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRelayTargetSetThenGet(t *testing.T) {
	r := openTargets(t, "")

	if _, ok := r.Target(7); ok {
		t.Error("unset user reported a target")
	}

	if err := r.SetTarget(7, -100); err != nil {
		t.Fatalf("SetTarget: %v", err)
	}
	if got, ok := r.Target(7); !ok || got != -100 {
		t.Errorf("Target(7) = (%d, %v), want (-100, true)", got, ok)
	}
}

func TestRelayTargetOverwrite(t *testing.T) {
	r := openTargets(t, "")

	if err := r.SetTarget(7, -100); err != nil {
		t.Fatalf("SetTarget: %v", err)
	}
	if err := r.SetTarget(7, -200); err != nil {
		t.Fatalf("SetTarget overwrite: %v", err)
	}
	if got, ok := r.Target(7); !ok || got != -200 {
		t.Errorf("Target(7) = (%d, %v), want (-200, true)", got, ok)
	}
}

func TestRelayTargetsIndependentPerUser(t *testing.T) {
	r := openTargets(t, "")

	// Many users may point at the same chat.
	for userID := int64(1); userID <= 3; userID++ {
		if err := r.SetTarget(userID, -100); err != nil {
			t.Fatalf("SetTarget(%d): %v", userID, err)
		}
	}
	for userID := int64(1); userID <= 3; userID++ {
		if got, ok := r.Target(userID); !ok || got != -100 {
			t.Errorf("Target(%d) = (%d, %v), want (-100, true)", userID, got, ok)
		}
	}
}

func TestRelayTargetsSurviveReopenWhenFileBacked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.db")

	r := openTargets(t, path)
	if err := r.SetTarget(7, -100); err != nil {
		t.Fatalf("SetTarget: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := openTargets(t, path)
	if got, ok := reopened.Target(7); !ok || got != -100 {
		t.Errorf("Target(7) after reopen = (%d, %v), want (-100, true)", got, ok)
	}
}
