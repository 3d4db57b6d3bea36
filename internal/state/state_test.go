package state

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "sankey", "state.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoad_EmptyStore(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ok {
		t.Error("Load() ok = true, want false for empty store")
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := openTestStore(t)

	want := LastUsed{Year: 2024, Month: 3, IssueDepth: 2, UpdatedAt: time.Now().UTC()}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, ok, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !ok {
		t.Fatal("Load() ok = false after Save()")
	}
	if got.Year != 2024 || got.Month != 3 || got.IssueDepth != 2 {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestSave_Overwrites(t *testing.T) {
	store := openTestStore(t)

	if err := store.Save(LastUsed{Year: 2023, Month: 13, IssueDepth: 1}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(LastUsed{Year: 2024, Month: 7, IssueDepth: 3}); err != nil {
		t.Fatal(err)
	}

	got, ok, err := store.Load()
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v", ok, err)
	}
	if got.Year != 2024 || got.Month != 7 || got.IssueDepth != 3 {
		t.Errorf("Load() = %+v, want the second Save to win", got)
	}
}

func TestSave_FillsUpdatedAt(t *testing.T) {
	store := openTestStore(t)

	if err := store.Save(LastUsed{Year: 2024, Month: 1, IssueDepth: 1}); err != nil {
		t.Fatal(err)
	}
	got, _, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not defaulted on Save")
	}
}
