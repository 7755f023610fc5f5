package repository

import (
	"context"
	"errors"
	"strings"

	commonerrors "github.com/AlibekovAA/stride/internal/common/errors"
	"github.com/AlibekovAA/stride/internal/dataset"
	"github.com/AlibekovAA/stride/internal/user/domain"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserNotFound       = commonerrors.ErrUserNotFound
)

type Repository interface {
	Create(ctx context.Context, user domain.User) error
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
	List(ctx context.Context) []domain.User
}

// SnapshotRepository keeps users inside the shared dataset snapshot, so user
// writes are serialized with task writes by the same Writer.
type SnapshotRepository struct {
	writer *dataset.Writer
}

func NewSnapshotRepository(writer *dataset.Writer) *SnapshotRepository {
	return &SnapshotRepository{writer: writer}
}

func (r *SnapshotRepository) Create(ctx context.Context, user domain.User) error {
	user.Email = strings.TrimSpace(user.Email)
	return r.writer.Update(ctx, func(s *dataset.Snapshot) (bool, error) {
		if s.UserIndexByEmail(user.Email) >= 0 {
			return false, ErrEmailAlreadyExists
		}
		if s.UserIndex(user.ID) >= 0 {
			return false, errors.New("user id collision")
		}
		s.Users = append(s.Users, user)
		return true, nil
	})
}

func (r *SnapshotRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	snap := r.writer.Read(ctx)
	i := snap.UserIndexByEmail(email)
	if i < 0 {
		return domain.User{}, ErrUserNotFound
	}
	return snap.Users[i], nil
}

func (r *SnapshotRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	snap := r.writer.Read(ctx)
	i := snap.UserIndex(id)
	if i < 0 {
		return domain.User{}, ErrUserNotFound
	}
	return snap.Users[i], nil
}

func (r *SnapshotRepository) List(ctx context.Context) []domain.User {
	return r.writer.Read(ctx).Users
}
