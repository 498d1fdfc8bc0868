package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"boxoffice/internal/shared/config"
	"boxoffice/internal/users"
)

type fakeAuthRepo struct {
	usersByEmail map[string]*users.User
	resets       []*PasswordReset
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{usersByEmail: make(map[string]*users.User)}
}

func (f *fakeAuthRepo) CreateUser(_ context.Context, user *users.User) error {
	if _, ok := f.usersByEmail[user.Email]; ok {
		return ErrUserAlreadyExists
	}
	user.ID = uuid.New()
	f.usersByEmail[user.Email] = user
	return nil
}

func (f *fakeAuthRepo) GetUserByEmail(_ context.Context, email string) (*users.User, error) {
	user, ok := f.usersByEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeAuthRepo) GetUserByID(_ context.Context, id uuid.UUID) (*users.User, error) {
	for _, user := range f.usersByEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *fakeAuthRepo) UpdateUserPassword(_ context.Context, userID uuid.UUID, hashedPassword string) error {
	user, err := f.GetUserByID(context.Background(), userID)
	if err != nil {
		return err
	}
	user.Password = hashedPassword
	return nil
}

func (f *fakeAuthRepo) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := f.usersByEmail[email]
	return ok, nil
}

func (f *fakeAuthRepo) CreatePasswordReset(_ context.Context, reset *PasswordReset) error {
	reset.ID = uuid.New()
	f.resets = append(f.resets, reset)
	return nil
}

func (f *fakeAuthRepo) GetPasswordResetByCode(_ context.Context, userID uuid.UUID, code string) (*PasswordReset, error) {
	for i := len(f.resets) - 1; i >= 0; i-- {
		if f.resets[i].UserID == userID && f.resets[i].Code == code {
			return f.resets[i], nil
		}
	}
	return nil, ErrResetCodeInvalid
}

func (f *fakeAuthRepo) MarkPasswordResetUsed(_ context.Context, id uuid.UUID) error {
	now := time.Now()
	for _, reset := range f.resets {
		if reset.ID == id {
			reset.UsedAt = &now
			return nil
		}
	}
	return ErrResetCodeInvalid
}

type fakeCodeSender struct {
	email string
	code  string
	calls int
}

func (f *fakeCodeSender) SendPasswordResetCode(_ context.Context, email, _, code string) error {
	f.email = email
	f.code = code
	f.calls++
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			JWTExpiresIn:     15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}
}

func registerReq() *RegisterRequest {
	return &RegisterRequest{
		FirstName:       "George",
		LastName:        "Miller",
		Email:           "george@example.com",
		Password:        "Password123",
		ConfirmPassword: "Password123",
		DOB:             "02/07/1990",
	}
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a customer account and issues tokens", func(t *testing.T) {
		repo := newFakeAuthRepo()
		svc := NewService(repo, nil, testConfig())

		resp, err := svc.Register(ctx, registerReq())
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "george@example.com", resp.User.Email)

		// Self-registration can never mint an admin.
		user := repo.usersByEmail["george@example.com"]
		assert.Equal(t, users.RoleUser, user.Role)
		assert.Equal(t, time.Date(1990, 7, 2, 0, 0, 0, 0, time.UTC), user.DOB)
		assert.NotEqual(t, "Password123", user.Password)
	})

	t.Run("rejects a date of birth that is not DD/MM/YYYY", func(t *testing.T) {
		svc := NewService(newFakeAuthRepo(), nil, testConfig())

		for _, dob := range []string{"1990-07-02", "07/02/1990 ", "2/7/90", "31/02/1990"} {
			req := registerReq()
			req.DOB = dob
			_, err := svc.Register(ctx, req)
			assert.ErrorIs(t, err, ErrInvalidDOB, dob)
		}
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		svc := NewService(newFakeAuthRepo(), nil, testConfig())

		_, err := svc.Register(ctx, registerReq())
		require.NoError(t, err)

		_, err = svc.Register(ctx, registerReq())
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAuthRepo()
	svc := NewService(repo, nil, testConfig())

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	t.Run("valid credentials log in", func(t *testing.T) {
		resp, err := svc.Login(ctx, &LoginRequest{Email: "george@example.com", Password: "Password123"})
		require.NoError(t, err)

		claims, err := svc.ValidateToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "access", claims.Type)
		assert.Equal(t, "george@example.com", claims.Email)
	})

	t.Run("wrong password and unknown email look identical", func(t *testing.T) {
		_, badPassword := svc.Login(ctx, &LoginRequest{Email: "george@example.com", Password: "nope"})
		_, badEmail := svc.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "Password123"})

		assert.ErrorIs(t, badPassword, ErrInvalidCredentials)
		assert.ErrorIs(t, badEmail, ErrInvalidCredentials)
	})
}

func TestService_PasswordReset(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (Service, *fakeAuthRepo, *fakeCodeSender) {
		t.Helper()
		repo := newFakeAuthRepo()
		sender := &fakeCodeSender{}
		svc := NewService(repo, sender, testConfig())
		_, err := svc.Register(ctx, registerReq())
		require.NoError(t, err)
		return svc, repo, sender
	}

	t.Run("forgot password issues and sends a six digit code", func(t *testing.T) {
		svc, repo, sender := setup(t)

		err := svc.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "george@example.com"})
		require.NoError(t, err)

		require.Len(t, repo.resets, 1)
		assert.Len(t, sender.code, 6)
		assert.Equal(t, "george@example.com", sender.email)
		assert.True(t, repo.resets[0].ExpiresAt.After(time.Now()))
	})

	t.Run("unknown email reports success and sends nothing", func(t *testing.T) {
		svc, repo, sender := setup(t)

		err := svc.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "nobody@example.com"})
		require.NoError(t, err)

		assert.Empty(t, repo.resets)
		assert.Equal(t, 0, sender.calls)
	})

	t.Run("valid code resets the password once", func(t *testing.T) {
		svc, repo, sender := setup(t)

		require.NoError(t, svc.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "george@example.com"}))

		err := svc.ResetPassword(ctx, &ResetPasswordRequest{
			Email:       "george@example.com",
			Code:        sender.code,
			NewPassword: "NewPassword456",
		})
		require.NoError(t, err)

		user := repo.usersByEmail["george@example.com"]
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("NewPassword456")))

		// The code is single use.
		err = svc.ResetPassword(ctx, &ResetPasswordRequest{
			Email:       "george@example.com",
			Code:        sender.code,
			NewPassword: "AnotherPassword789",
		})
		assert.ErrorIs(t, err, ErrResetCodeInvalid)
	})

	t.Run("expired code is rejected", func(t *testing.T) {
		svc, repo, sender := setup(t)

		require.NoError(t, svc.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "george@example.com"}))
		repo.resets[0].ExpiresAt = time.Now().Add(-time.Minute)

		err := svc.ResetPassword(ctx, &ResetPasswordRequest{
			Email:       "george@example.com",
			Code:        sender.code,
			NewPassword: "NewPassword456",
		})
		assert.ErrorIs(t, err, ErrResetCodeInvalid)
	})

	t.Run("wrong email with a real code is rejected", func(t *testing.T) {
		svc, _, sender := setup(t)

		require.NoError(t, svc.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "george@example.com"}))

		err := svc.ResetPassword(ctx, &ResetPasswordRequest{
			Email:       "nobody@example.com",
			Code:        sender.code,
			NewPassword: "NewPassword456",
		})
		assert.ErrorIs(t, err, ErrResetCodeInvalid)
	})
}

func TestService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeAuthRepo(), nil, testConfig())

	resp, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	t.Run("refresh token mints a new pair", func(t *testing.T) {
		pair, err := svc.RefreshToken(ctx, resp.RefreshToken)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "access", claims.Type)
	})

	t.Run("access token is not accepted as a refresh token", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, resp.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
