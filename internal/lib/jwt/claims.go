// Package jwt реализует генерацию и парсинг JWT токенов сервиса.
//
// Сессионный токен несёт идентификатор и роль пользователя и живет
// в пределах часа; токен сброса пароля несёт только email и живет
// 15 минут. Оба подписываются одним секретным ключом HS256.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims описывает данные сессионного токена.
//
// Роль фиксируется в момент выдачи: смена роли не инвалидирует
// уже выданные токены до их истечения.
type SessionClaims struct {
	UserID               int    `json:"uid"`  // Идентификатор пользователя
	Role                 string `json:"role"` // Роль пользователя на момент входа
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// ResetClaims описывает данные токена сброса пароля.
type ResetClaims struct {
	Email                string `json:"email"` // Email учетной записи, для которой выдан токен
	jwt.RegisteredClaims
}

// Maker описывает интерфейс для генерации и парсинга токенов сервиса.
type Maker interface {
	// GenerateSessionToken выдает сессионный токен с id и ролью пользователя.
	GenerateSessionToken(userID int, role string) (string, error)
	// ParseSessionToken возвращает *SessionClaims, если токен корректен и не истек.
	ParseSessionToken(tokenStr string) (*SessionClaims, error)
	// GenerateResetToken выдает токен сброса пароля для email.
	GenerateResetToken(email string) (string, error)
	// ParseResetToken возвращает *ResetClaims, если токен корректен и не истек.
	ParseResetToken(tokenStr string) (*ResetClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времен жизни токенов (TTL).
type MakerImpl struct {
	secretKey  string        // Секретный ключ для подписи токенов.
	sessionTTL time.Duration // Время жизни сессионного токена.
	resetTTL   time.Duration // Время жизни токена сброса пароля.
}

// NewMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewMaker(secretKey string, sessionTTL, resetTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey:  secretKey,
		sessionTTL: sessionTTL,
		resetTTL:   resetTTL,
	}
}
