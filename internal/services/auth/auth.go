// Package auth содержит логику бизнес-уровня для регистрации, входа,
// смены и сброса пароля пользователей.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/store-rating-service/internal/lib/jwt"
	"github.com/magabrotheeeer/store-rating-service/internal/lib/password"
	"github.com/magabrotheeeer/store-rating-service/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating-service/internal/models"
	"github.com/magabrotheeeer/store-rating-service/internal/storage/repository"
)

// Ошибки бизнес-уровня аутентификации.
var (
	// ErrInvalidCredentials возвращается при неверной паре email/пароль
	// и при неверном старом пароле. Неизвестный email и неверный пароль
	// намеренно неразличимы в ответе.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidResetToken возвращается при любом дефекте токена сброса:
	// поврежден, просрочен или подписан другим ключом.
	ErrInvalidResetToken = errors.New("invalid or expired token")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его несекретные поля.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID возвращает пользователя по идентификатору.
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	// UpdatePasswordByID заменяет хэш пароля по идентификатору.
	UpdatePasswordByID(ctx context.Context, id int, passwordHash string) error
	// UpdatePasswordByEmail заменяет хэш пароля по email, возвращая число строк.
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) (int, error)
}

// ResetSender описывает отправку письма со ссылкой на сброс пароля.
type ResetSender interface {
	SendResetLink(to, resetLink string) error
}

// AuthService отвечает за жизненный цикл учетных данных пользователя.
type AuthService struct {
	users        UserRepository
	tokens       jwt.Maker
	sender       ResetSender
	resetBaseURL string
	log          *slog.Logger
}

// New создает новый экземпляр AuthService.
func New(users UserRepository, tokens jwt.Maker, sender ResetSender, resetBaseURL string, log *slog.Logger) *AuthService {
	return &AuthService{
		users:        users,
		tokens:       tokens,
		sender:       sender,
		resetBaseURL: resetBaseURL,
		log:          log,
	}
}

// Register создает нового пользователя с хэшированием пароля.
// Роль при самостоятельной регистрации всегда USER.
func (s *AuthService) Register(ctx context.Context, req models.DummySignup) (*models.User, error) {
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		Address:      req.Address,
		PasswordHash: hashed,
		Role:         models.RoleUser,
	}
	return s.users.CreateUser(ctx, user)
}

// Login проверяет пароль пользователя и выдает сессионный токен
// с его идентификатором и ролью. Неизвестный email и несовпавший пароль
// дают одинаковую ошибку ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (token, role string, err error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", ErrInvalidCredentials
	}
	token, err = s.tokens.GenerateSessionToken(user.ID, user.Role)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// ChangePassword меняет пароль авторизованного пользователя.
// Старый пароль обязан совпасть с сохраненным хэшем.
func (s *AuthService) ChangePassword(ctx context.Context, userID int, oldPassword, newPassword string) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := password.CompareHash(user.PasswordHash, oldPassword); err != nil {
		return ErrInvalidCredentials
	}
	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordByID(ctx, userID, hashed)
}

// RequestReset выдает токен сброса пароля и отправляет ссылку на email
// пользователя. Неизвестный email возвращает repository.ErrUserNotFound:
// существование учетной записи при этом раскрывается, поведение
// унаследовано и сохранено сознательно.
//
// Токен сброса одноразовость не поддерживает: до истечения срока его можно
// применить повторно. Ошибка отправки письма возвращается вызывающему,
// выданный токен при этом остается действительным.
func (s *AuthService) RequestReset(ctx context.Context, email string) error {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	token, err := s.tokens.GenerateResetToken(user.Email)
	if err != nil {
		return err
	}
	resetLink := fmt.Sprintf("%s/reset-password/%s", s.resetBaseURL, token)
	if err := s.sender.SendResetLink(user.Email, resetLink); err != nil {
		s.log.Error("failed to send reset link", slog.String("email", user.Email), sl.Err(err))
		return err
	}
	s.log.Info("reset link sent", slog.String("email", user.Email))
	return nil
}

// ResetPassword проверяет токен сброса и устанавливает новый пароль
// учетной записи, чей email зашит в токен. Обновление нуля строк
// не считается ошибкой: учетная запись могла исчезнуть после выдачи токена.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.tokens.ParseResetToken(token)
	if err != nil {
		return ErrInvalidResetToken
	}
	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return err
	}
	rows, err := s.users.UpdatePasswordByEmail(ctx, claims.Email, hashed)
	if err != nil {
		return err
	}
	if rows == 0 {
		s.log.Warn("reset matched no account", slog.String("email", claims.Email))
	}
	return nil
}
