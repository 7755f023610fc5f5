package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/AlibekovAA/stride/internal/common/clock"
	"github.com/AlibekovAA/stride/internal/common/logger"
	userdomain "github.com/AlibekovAA/stride/internal/user/domain"
	userrepo "github.com/AlibekovAA/stride/internal/user/repository"
)

const testJWTSecret = "test-secret-key-must-be-at-least-32-bytes-long"

type mockUserRepo struct {
	createFunc      func(ctx context.Context, user userdomain.User) error
	findByEmailFunc func(ctx context.Context, email string) (userdomain.User, error)
	findByIDFunc    func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
	created         []userdomain.User
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) error {
	if m.createFunc != nil {
		if err := m.createFunc(ctx, user); err != nil {
			return err
		}
	}
	m.created = append(m.created, user)
	return nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) List(_ context.Context) []userdomain.User {
	return m.created
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash string, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	if hash != "hashed:"+password {
		return errMismatch
	}
	return nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "id-1", nil
}

type mismatchError struct{}

func (mismatchError) Error() string { return "password mismatch" }

var errMismatch = mismatchError{}

func setupAuthService(t *testing.T) (*AuthService, *mockUserRepo, *mockHasher, *mockIDGenerator, *clock.MockClock) {
	t.Helper()

	repo := &mockUserRepo{}
	hasher := &mockHasher{}
	ids := &mockIDGenerator{}
	mockClock := clock.NewMockClock(time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))

	svc := NewAuthService(
		AuthServiceDeps{
			Repo:        repo,
			Hasher:      hasher,
			IDGenerator: ids,
			Clock:       mockClock,
			Log:         logger.NewWithWriter(io.Discard, "test", "debug"),
		},
		AuthServiceConfig{
			JWTSecret:      testJWTSecret,
			AccessTokenTTL: 7 * 24 * time.Hour,
		},
	)

	return svc, repo, hasher, ids, mockClock
}

func testLog() *logger.Logger {
	return logger.NewWithWriter(io.Discard, "test", "debug")
}
