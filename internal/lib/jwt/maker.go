package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GenerateSessionToken создает JWT с id и ролью пользователя,
// подписывая его секретным ключом. Время жизни определяется sessionTTL.
func (j *MakerImpl) GenerateSessionToken(userID int, role string) (string, error) {
	claims := SessionClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.sessionTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseSessionToken парсит сессионный токен, проверяет его подпись и срок,
// возвращает SessionClaims, если токен корректен.
//
// Истекший, поврежденный и неверно подписанный токены неразличимы
// для вызывающего: все случаи дают ошибку парсинга.
func (j *MakerImpl) ParseSessionToken(tokenStr string) (*SessionClaims, error) {
	const op = "jwt.ParseSessionToken"
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}

// GenerateResetToken создает токен сброса пароля для указанного email.
// Время жизни определяется resetTTL.
func (j *MakerImpl) GenerateResetToken(email string) (string, error) {
	claims := ResetClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.resetTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseResetToken парсит токен сброса пароля, проверяет подпись и срок,
// возвращает ResetClaims, если токен корректен.
func (j *MakerImpl) ParseResetToken(tokenStr string) (*ResetClaims, error) {
	const op = "jwt.ParseResetToken"
	token, err := jwt.ParseWithClaims(tokenStr, &ResetClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*ResetClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
