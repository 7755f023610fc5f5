package dataset

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(context.Background(), testLogger(), filepath.Join(t.TempDir(), "stride.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_EmptyOnFreshDatabase(t *testing.T) {
	store := newTestSQLiteStore(t)

	snap := store.Load(context.Background())

	if snap.Users == nil || snap.Tasks == nil || len(snap.Users) != 0 || len(snap.Tasks) != 0 {
		t.Errorf("expected empty snapshot, got %+v", snap)
	}
}

func TestSQLiteStore_SaveLoadRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)
	want := sampleSnapshot()

	if err := store.Save(context.Background(), want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := store.Load(context.Background())

	if !equalSnapshots(want, got) {
		t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", want, got)
	}
}

func TestSQLiteStore_SaveReplacesEverything(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("first save: %v", err)
	}
	smaller := sampleSnapshot()
	smaller.Tasks = smaller.Tasks[:1]
	if err := store.Save(ctx, smaller); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got := store.Load(ctx)
	if len(got.Tasks) != 1 || got.Tasks[0].ID != "t1" {
		t.Errorf("expected only t1 after replace, got %+v", got.Tasks)
	}
}

func TestSQLiteStore_FailedSaveKeepsPreviousSnapshot(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}

	dup := sampleSnapshot()
	dup.Users[1].Email = "ANA@example.com"
	if err := store.Save(ctx, dup); err == nil {
		t.Fatal("expected unique email violation")
	}

	if got := store.Load(ctx); !equalSnapshots(sampleSnapshot(), got) {
		t.Error("previous snapshot must survive a rolled back save")
	}
}

func TestSQLiteStore_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stride.db")
	ctx := context.Background()

	first, err := NewSQLiteStore(ctx, testLogger(), path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := first.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	first.Close()

	second, err := NewSQLiteStore(ctx, testLogger(), path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer second.Close()

	if got := second.Load(ctx); !equalSnapshots(sampleSnapshot(), got) {
		t.Error("data must survive reopening")
	}
}
