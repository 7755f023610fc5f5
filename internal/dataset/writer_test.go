package dataset

import (
	"context"
	"errors"
	"sync"
	"testing"

	commonerrors "github.com/AlibekovAA/stride/internal/common/errors"
	taskdomain "github.com/AlibekovAA/stride/internal/task/domain"
)

type memoryStore struct {
	mu      sync.Mutex
	snap    Snapshot
	saves   int
	saveErr error
}

func (m *memoryStore) Load(_ context.Context) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap.Clone()
}

func (m *memoryStore) Save(_ context.Context, s Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.snap = s.Clone()
	return nil
}

func TestWriter_UpdateSavesOnChange(t *testing.T) {
	store := &memoryStore{snap: Empty()}
	w := NewWriter(store)

	err := w.Update(context.Background(), func(s *Snapshot) (bool, error) {
		s.Tasks = append(s.Tasks, taskdomain.Task{ID: "t1", UserID: "u1", Title: "a"})
		return true, nil
	})

	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if store.saves != 1 || len(store.snap.Tasks) != 1 {
		t.Errorf("expected one save with one task, got saves=%d tasks=%d", store.saves, len(store.snap.Tasks))
	}
}

func TestWriter_UpdateSkipsSaveWhenUnchanged(t *testing.T) {
	store := &memoryStore{snap: Empty()}
	w := NewWriter(store)

	err := w.Update(context.Background(), func(s *Snapshot) (bool, error) {
		return false, nil
	})

	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if store.saves != 0 {
		t.Errorf("expected no save, got %d", store.saves)
	}
}

func TestWriter_UpdateErrorDiscardsMutation(t *testing.T) {
	store := &memoryStore{snap: Empty()}
	w := NewWriter(store)
	boom := errors.New("validation")

	err := w.Update(context.Background(), func(s *Snapshot) (bool, error) {
		s.Tasks = append(s.Tasks, taskdomain.Task{ID: "t1"})
		return true, boom
	})

	if !errors.Is(err, boom) {
		t.Errorf("expected fn error, got %v", err)
	}
	if store.saves != 0 || len(store.snap.Tasks) != 0 {
		t.Error("nothing may be persisted when fn fails")
	}
}

func TestWriter_UpdateWrapsSaveFailure(t *testing.T) {
	disk := errors.New("disk full")
	store := &memoryStore{snap: Empty(), saveErr: disk}
	w := NewWriter(store)

	err := w.Update(context.Background(), func(s *Snapshot) (bool, error) {
		return true, nil
	})

	if !errors.Is(err, commonerrors.ErrStoreWriteFailed) {
		t.Errorf("expected ErrStoreWriteFailed, got %v", err)
	}
	if !errors.Is(err, disk) {
		t.Errorf("expected cause to be preserved, got %v", err)
	}
}

func TestWriter_ConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	store := &memoryStore{snap: Empty()}
	w := NewWriter(store)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = w.Update(context.Background(), func(s *Snapshot) (bool, error) {
				s.Tasks = append(s.Tasks, taskdomain.Task{Title: "x"})
				return true, nil
			})
		}()
	}
	wg.Wait()

	if got := len(store.snap.Tasks); got != n {
		t.Errorf("expected %d tasks, got %d", n, got)
	}
}

func TestWriter_UpdateHonoursCancelledContext(t *testing.T) {
	store := &memoryStore{snap: Empty()}
	w := NewWriter(store)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := w.Update(ctx, func(s *Snapshot) (bool, error) {
		called = true
		return true, nil
	})

	if !errors.Is(err, context.Canceled) || called {
		t.Errorf("expected cancellation before fn runs, got err=%v called=%v", err, called)
	}
}
