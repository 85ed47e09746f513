package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/store-rating-service/internal/lib/jwt"
	"github.com/magabrotheeeer/store-rating-service/internal/lib/password"
	"github.com/magabrotheeeer/store-rating-service/internal/models"
	"github.com/magabrotheeeer/store-rating-service/internal/services/auth"
	"github.com/magabrotheeeer/store-rating-service/internal/storage/repository"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) UpdatePasswordByID(ctx context.Context, id int, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *UserRepoMock) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) (int, error) {
	args := m.Called(ctx, email, passwordHash)
	return args.Int(0), args.Error(1)
}

// Мок для ResetSender
type SenderMock struct {
	mock.Mock
}

func (m *SenderMock) SendResetLink(to, resetLink string) error {
	args := m.Called(to, resetLink)
	return args.Error(0)
}

func newTestService(repo *UserRepoMock, sender *SenderMock) *auth.AuthService {
	maker := jwt.NewMaker("test_secret_key", time.Hour, 15*time.Minute)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return auth.New(repo, maker, sender, "http://localhost:3000", log)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		req        models.DummySignup
		setupMocks func(r *UserRepoMock)
		wantErr    error
	}{
		{
			name: "successful registration forces USER role",
			req: models.DummySignup{
				Name:     "Alice",
				Email:    "a@x.com",
				Password: "pw123",
				Address:  "Addr1",
			},
			setupMocks: func(r *UserRepoMock) {
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Email == "a@x.com" &&
						user.Role == models.RoleUser &&
						user.PasswordHash != "" &&
						user.PasswordHash != "pw123"
				})).Return(&models.User{ID: 1, Name: "Alice", Email: "a@x.com", Role: models.RoleUser}, nil).Once()
			},
		},
		{
			name: "duplicate email",
			req: models.DummySignup{
				Name:     "Alice",
				Email:    "a@x.com",
				Password: "pw123",
				Address:  "Addr1",
			},
			setupMocks: func(r *UserRepoMock) {
				r.On("CreateUser", mock.Anything, mock.Anything).Return(nil, repository.ErrEmailExists).Once()
			},
			wantErr: repository.ErrEmailExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			svc := newTestService(repo, new(SenderMock))
			tt.setupMocks(repo)

			user, err := svc.Register(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, models.RoleUser, user.Role)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	rawPassword := "correctpassword"
	hash, err := password.GetHash(rawPassword)
	require.NoError(t, err)

	storedUser := &models.User{
		ID:           7,
		Email:        "a@x.com",
		PasswordHash: hash,
		Role:         models.RoleUser,
	}

	t.Run("successful login returns decodable token", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("GetUserByEmail", mock.Anything, "a@x.com").Return(storedUser, nil).Once()
		svc := newTestService(repo, new(SenderMock))

		token, role, err := svc.Login(context.Background(), "a@x.com", rawPassword)
		require.NoError(t, err)
		assert.Equal(t, models.RoleUser, role)

		maker := jwt.NewMaker("test_secret_key", time.Hour, 15*time.Minute)
		claims, err := maker.ParseSessionToken(token)
		require.NoError(t, err)
		assert.Equal(t, 7, claims.UserID)
		assert.Equal(t, models.RoleUser, claims.Role)

		repo.AssertExpectations(t)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("GetUserByEmail", mock.Anything, "nobody@x.com").Return(nil, repository.ErrUserNotFound).Once()
		repo.On("GetUserByEmail", mock.Anything, "a@x.com").Return(storedUser, nil).Once()
		svc := newTestService(repo, new(SenderMock))

		_, _, errUnknown := svc.Login(context.Background(), "nobody@x.com", rawPassword)
		_, _, errWrongPass := svc.Login(context.Background(), "a@x.com", "wrongpassword")

		assert.ErrorIs(t, errUnknown, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, errWrongPass, auth.ErrInvalidCredentials)
		assert.Equal(t, errUnknown.Error(), errWrongPass.Error())

		repo.AssertExpectations(t)
	})

	t.Run("storage error propagates", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("GetUserByEmail", mock.Anything, "a@x.com").Return(nil, errors.New("db down")).Once()
		svc := newTestService(repo, new(SenderMock))

		_, _, err := svc.Login(context.Background(), "a@x.com", rawPassword)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	hash, err := password.GetHash("oldpassword")
	require.NoError(t, err)
	storedUser := &models.User{ID: 3, PasswordHash: hash, Role: models.RoleUser}

	t.Run("wrong old password", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("GetUserByID", mock.Anything, 3).Return(storedUser, nil).Once()
		svc := newTestService(repo, new(SenderMock))

		err := svc.ChangePassword(context.Background(), 3, "notmyoldpassword", "newpassword")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		repo.AssertExpectations(t)
	})

	t.Run("successful change stores new hash", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("GetUserByID", mock.Anything, 3).Return(storedUser, nil).Once()
		repo.On("UpdatePasswordByID", mock.Anything, 3, mock.MatchedBy(func(h string) bool {
			return password.CompareHash(h, "newpassword") == nil
		})).Return(nil).Once()
		svc := newTestService(repo, new(SenderMock))

		err := svc.ChangePassword(context.Background(), 3, "oldpassword", "newpassword")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestAuthService_RequestReset(t *testing.T) {
	storedUser := &models.User{ID: 5, Email: "a@x.com", Role: models.RoleUser}

	t.Run("unknown email sends nothing", func(t *testing.T) {
		repo := new(UserRepoMock)
		sender := new(SenderMock)
		repo.On("GetUserByEmail", mock.Anything, "nobody@x.com").Return(nil, repository.ErrUserNotFound).Once()
		svc := newTestService(repo, sender)

		err := svc.RequestReset(context.Background(), "nobody@x.com")
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
		sender.AssertNotCalled(t, "SendResetLink", mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("sends link with valid reset token", func(t *testing.T) {
		repo := new(UserRepoMock)
		sender := new(SenderMock)
		repo.On("GetUserByEmail", mock.Anything, "a@x.com").Return(storedUser, nil).Once()
		sender.On("SendResetLink", "a@x.com", mock.MatchedBy(func(link string) bool {
			if !strings.HasPrefix(link, "http://localhost:3000/reset-password/") {
				return false
			}
			token := strings.TrimPrefix(link, "http://localhost:3000/reset-password/")
			maker := jwt.NewMaker("test_secret_key", time.Hour, 15*time.Minute)
			claims, err := maker.ParseResetToken(token)
			return err == nil && claims.Email == "a@x.com"
		})).Return(nil).Once()
		svc := newTestService(repo, sender)

		err := svc.RequestReset(context.Background(), "a@x.com")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
		sender.AssertExpectations(t)
	})

	t.Run("send failure propagates", func(t *testing.T) {
		repo := new(UserRepoMock)
		sender := new(SenderMock)
		repo.On("GetUserByEmail", mock.Anything, "a@x.com").Return(storedUser, nil).Once()
		sender.On("SendResetLink", "a@x.com", mock.Anything).Return(errors.New("smtp unreachable")).Once()
		svc := newTestService(repo, sender)

		err := svc.RequestReset(context.Background(), "a@x.com")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "smtp unreachable")
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	t.Run("invalid token", func(t *testing.T) {
		repo := new(UserRepoMock)
		svc := newTestService(repo, new(SenderMock))

		err := svc.ResetPassword(context.Background(), "invalid.token.here", "newpassword")
		assert.ErrorIs(t, err, auth.ErrInvalidResetToken)
		repo.AssertNotCalled(t, "UpdatePasswordByEmail", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("expired token", func(t *testing.T) {
		expiredMaker := jwt.NewMaker("test_secret_key", time.Hour, -time.Minute)
		token, err := expiredMaker.GenerateResetToken("a@x.com")
		require.NoError(t, err)

		repo := new(UserRepoMock)
		svc := newTestService(repo, new(SenderMock))

		err = svc.ResetPassword(context.Background(), token, "newpassword")
		assert.ErrorIs(t, err, auth.ErrInvalidResetToken)
	})

	t.Run("valid token updates password by token email", func(t *testing.T) {
		maker := jwt.NewMaker("test_secret_key", time.Hour, 15*time.Minute)
		token, err := maker.GenerateResetToken("a@x.com")
		require.NoError(t, err)

		repo := new(UserRepoMock)
		repo.On("UpdatePasswordByEmail", mock.Anything, "a@x.com", mock.MatchedBy(func(h string) bool {
			return password.CompareHash(h, "newpassword") == nil
		})).Return(1, nil).Once()
		svc := newTestService(repo, new(SenderMock))

		err = svc.ResetPassword(context.Background(), token, "newpassword")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("zero updated rows is not an error", func(t *testing.T) {
		maker := jwt.NewMaker("test_secret_key", time.Hour, 15*time.Minute)
		token, err := maker.GenerateResetToken("gone@x.com")
		require.NoError(t, err)

		repo := new(UserRepoMock)
		repo.On("UpdatePasswordByEmail", mock.Anything, "gone@x.com", mock.Anything).Return(0, nil).Once()
		svc := newTestService(repo, new(SenderMock))

		err = svc.ResetPassword(context.Background(), token, "newpassword")
		assert.NoError(t, err)
	})
}
