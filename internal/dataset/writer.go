package dataset

import (
	"context"
	"sync"

	commonerrors "github.com/AlibekovAA/stride/internal/common/errors"
)

// UpdateFunc mutates a loaded snapshot. Returning changed=false or an error
// skips the save.
type UpdateFunc func(s *Snapshot) (changed bool, err error)

// Writer serializes every load-modify-save cycle in the process, so two
// mutations can never interleave and drop each other's changes. Reads bypass
// the lock and observe whichever snapshot was last saved.
type Writer struct {
	store Store
	mu    sync.Mutex
}

func NewWriter(store Store) *Writer {
	return &Writer{store: store}
}

func (w *Writer) Read(ctx context.Context) Snapshot {
	return w.store.Load(ctx)
}

func (w *Writer) Update(ctx context.Context, fn UpdateFunc) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snap := w.store.Load(ctx)
	changed, err := fn(&snap)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err := w.store.Save(ctx, snap); err != nil {
		return commonerrors.ErrStoreWriteFailed.WithCause(err)
	}
	return nil
}
