package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/AlibekovAA/stride/internal/common/clock"
	"github.com/AlibekovAA/stride/internal/common/logger"
	"github.com/AlibekovAA/stride/internal/dataset"
	userdomain "github.com/AlibekovAA/stride/internal/user/domain"
)

type mockStore struct {
	mu       sync.Mutex
	snap     dataset.Snapshot
	saves    int
	saveFunc func(s dataset.Snapshot) error
}

func (m *mockStore) Load(_ context.Context) dataset.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap.Clone()
}

func (m *mockStore) Save(_ context.Context, s dataset.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveFunc != nil {
		if err := m.saveFunc(s); err != nil {
			return err
		}
	}
	m.saves++
	m.snap = s.Clone()
	return nil
}

type mockIDGenerator struct {
	mu      sync.Mutex
	n       int
	newFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newFunc != nil {
		return m.newFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	return fmt.Sprintf("task-%d", m.n), nil
}

func testUser(id userdomain.ID) userdomain.User {
	return userdomain.User{ID: id, Name: string(id), Email: string(id) + "@example.com", PasswordHash: "hash"}
}

func setupTaskService(t *testing.T, now time.Time, users ...userdomain.User) (*TaskService, *mockStore, *clock.MockClock) {
	t.Helper()

	snap := dataset.Empty()
	snap.Users = append(snap.Users, users...)

	store := &mockStore{snap: snap}
	mockClock := clock.NewMockClock(now)

	svc := NewTaskService(
		TaskServiceDeps{
			Writer:      dataset.NewWriter(store),
			IDGenerator: &mockIDGenerator{},
			Clock:       mockClock,
			Log:         logger.NewWithWriter(io.Discard, "test", "debug"),
		},
		TaskServiceConfig{Location: time.UTC},
	)

	return svc, store, mockClock
}
