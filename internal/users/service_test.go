package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/internal/shared/errs"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*User
}

func newFakeUserRepo(seed ...*User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*User)}
	for _, user := range seed {
		if user.ID == uuid.Nil {
			user.ID = uuid.New()
		}
		repo.users[user.ID] = user
	}
	return repo
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, errs.NotFound("user not found")
	}
	return user, nil
}

func (f *fakeUserRepo) ListNonAdmin(_ context.Context) ([]User, error) {
	var listed []User
	for _, user := range f.users {
		if !user.IsAdmin() {
			listed = append(listed, *user)
		}
	}
	return listed, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return errs.NotFound("user not found")
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) UpdateLoyalty(_ context.Context, id uuid.UUID, loyalty Loyalty) error {
	user, ok := f.users[id]
	if !ok {
		return errs.NotFound("user not found")
	}
	user.Loyalty = loyalty
	return nil
}

func TestService_ListUsers(t *testing.T) {
	ctx := context.Background()

	repo := newFakeUserRepo(
		&User{Email: "admin@victoriahall.co.uk", Role: RoleAdmin},
		&User{Email: "george@example.com", Role: RoleUser},
	)
	svc := NewService(repo)

	listed, err := svc.ListUsers(ctx)
	require.NoError(t, err)

	require.Len(t, listed, 1)
	assert.Equal(t, "george@example.com", listed[0].Email)
}

func TestService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes a customer account", func(t *testing.T) {
		customer := &User{Email: "george@example.com", Role: RoleUser}
		repo := newFakeUserRepo(customer)
		svc := NewService(repo)

		require.NoError(t, svc.DeleteUser(ctx, customer.ID))
		assert.Empty(t, repo.users)
	})

	t.Run("refuses to delete an admin", func(t *testing.T) {
		admin := &User{Email: "admin@victoriahall.co.uk", Role: RoleAdmin}
		repo := newFakeUserRepo(admin)
		svc := NewService(repo)

		err := svc.DeleteUser(ctx, admin.ID)

		require.Error(t, err)
		assert.Equal(t, 403, errs.HTTPStatus(err))
		assert.Len(t, repo.users, 1)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		svc := NewService(newFakeUserRepo())

		err := svc.DeleteUser(ctx, uuid.New())

		require.Error(t, err)
		assert.Equal(t, 404, errs.HTTPStatus(err))
	})
}
