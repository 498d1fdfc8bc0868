package users

import (
	"context"

	"github.com/google/uuid"

	"boxoffice/internal/shared/errs"
)

type Service interface {
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	ListUsers(ctx context.Context) ([]UserResponse, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	SaveLoyalty(ctx context.Context, id uuid.UUID, loyalty Loyalty) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// ListUsers returns every non-admin account, newest first.
func (s *service) ListUsers(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.ListNonAdmin(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}
	return responses, nil
}

// DeleteUser removes a user account. Admin accounts are never deleted,
// even when the endpoint is called with an admin's id.
func (s *service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if user.IsAdmin() {
		return errs.Forbidden("cannot delete admin users")
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) SaveLoyalty(ctx context.Context, id uuid.UUID, loyalty Loyalty) error {
	return s.repo.UpdateLoyalty(ctx, id, loyalty)
}
