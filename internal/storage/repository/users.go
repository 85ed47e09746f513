package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/store-rating-service/internal/models"
)

// CreateUser сохраняет нового пользователя и возвращает его несекретные поля.
// Нарушение уникальности email транслируется в ErrEmailExists.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (name, email, address, password_hash, role)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, name, email, address, role, created_at`
	created := &models.User{}
	err := s.DB.QueryRowContext(ctx, query,
		user.Name, user.Email, user.Address, user.PasswordHash, user.Role).
		Scan(&created.ID, &created.Name, &created.Email, &created.Address,
			&created.Role, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// GetUserByEmail возвращает пользователя по его email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, email, address, password_hash, role, created_at, updated_at
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, email)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Address, &u.PasswordHash,
		&u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByID возвращает пользователя по его идентификатору.
func (s *Storage) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	const op = "storage.GetUserByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, email, address, password_hash, role, created_at, updated_at
			  FROM users
			  WHERE id = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Address, &u.PasswordHash,
		&u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdatePasswordByID заменяет хэш пароля пользователя по его идентификатору.
func (s *Storage) UpdatePasswordByID(ctx context.Context, id int, passwordHash string) error {
	const op = "storage.UpdatePasswordByID"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET password_hash = $1, updated_at = NOW()
			  WHERE id = $2`
	if _, err := s.DB.ExecContext(ctx, query, passwordHash, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdatePasswordByEmail заменяет хэш пароля по email и возвращает число
// затронутых строк. Ноль строк не считается ошибкой: учетная запись могла
// исчезнуть между выдачей токена сброса и его применением.
func (s *Storage) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) (int, error) {
	const op = "storage.UpdatePasswordByEmail"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET password_hash = $1, updated_at = NOW()
			  WHERE email = $2`
	result, err := s.DB.ExecContext(ctx, query, passwordHash, email)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListUsers возвращает пользователей, удовлетворяющих фильтру, по имени
// по возрастанию. Каждое заполненное поле фильтра добавляет отдельное
// параметризованное условие, конъюнкция собирается из списка условий.
func (s *Storage) ListUsers(ctx context.Context, filter models.UserFilter) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var conditions []string
	var args []any
	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}
	if filter.Name != "" {
		addCondition(`name ILIKE '%%' || $%d || '%%'`, filter.Name)
	}
	if filter.Email != "" {
		addCondition(`email ILIKE '%%' || $%d || '%%'`, filter.Email)
	}
	if filter.Address != "" {
		addCondition(`address ILIKE '%%' || $%d || '%%'`, filter.Address)
	}
	if filter.Role != "" {
		addCondition(`role = $%d`, filter.Role)
	}

	query := `SELECT id, name, email, address, role, created_at
			  FROM users`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name ASC"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		var u models.User
		if err = rows.Scan(&u.ID, &u.Name, &u.Email, &u.Address, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
