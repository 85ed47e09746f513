// Package models содержит доменную модель пользователя системы,
// включающую учётные данные, хэш пароля, роль и адрес.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Роли пользователей. Роль назначается при создании и далее не меняется.
const (
	RoleUser  = "USER"
	RoleOwner = "OWNER"
	RoleAdmin = "ADMIN"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int       `json:"id"`      // Уникальный идентификатор пользователя
	Name         string    `json:"name"`    // Отображаемое имя
	Email        string    `json:"email"`   // Электронная почта (уникальная)
	Address      string    `json:"address"` // Почтовый адрес
	PasswordHash string    `json:"-"`       // Хэш пароля, наружу не отдается
	Role         string    `json:"role"`    // Роль: USER, OWNER или ADMIN
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

// UserFilter описывает необязательные условия фильтрации списка пользователей.
// Пустое поле не накладывает ограничений; каждое заполненное поле
// добавляет своё условие (подстрока без учета регистра, роль — точное совпадение).
type UserFilter struct {
	Name    string
	Email   string
	Address string
	Role    string
}

// DummySignup используется для приёма данных регистрации из JSON-запроса.
type DummySignup struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Address  string `json:"address" validate:"required"`
}

// DummyLogin используется для приёма учетных данных из JSON-запроса.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// DummyForgotPassword используется для запроса ссылки на сброс пароля.
type DummyForgotPassword struct {
	Email string `json:"email" validate:"required,email"`
}

// DummyResetPassword используется для установки нового пароля по токену сброса.
type DummyResetPassword struct {
	Password string `json:"password" validate:"required,min=6"`
}

// DummyChangePassword используется для смены пароля авторизованным пользователем.
type DummyChangePassword struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// DummyCreateUser используется администратором для создания пользователя
// с явно заданной ролью.
type DummyCreateUser struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Address  string `json:"address" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=USER OWNER ADMIN"`
}
