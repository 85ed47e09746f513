// Package repository реализует хранилище данных на основе PostgreSQL
// для управления пользователями, магазинами и оценками. Предоставляет
// методы создания и чтения записей, атомарный upsert оценок и
// агрегирующие выборки (средняя оценка, количество, сводные счетчики).
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища. Сервисы сопоставляют их через errors.Is
// и транслируют в ошибки своего слоя.
var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	// или магазин ссылается на несуществующего владельца.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailExists возвращается при нарушении уникальности email.
	ErrEmailExists = errors.New("email already exists")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями, магазинами и оценками.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'users'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table users missing or query error: %w", err)
	}
	return nil
}
