package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/store-rating-service/internal/models"
)

// CreateStore сохраняет новый магазин и возвращает созданную запись.
// Нарушение внешнего ключа owner_id транслируется в ErrUserNotFound.
func (s *Storage) CreateStore(ctx context.Context, store models.Store) (*models.Store, error) {
	const op = "storage.CreateStore"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO stores (name, email, address, owner_id)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, name, email, address, owner_id, created_at`
	created := &models.Store{}
	err := s.DB.QueryRowContext(ctx, query,
		store.Name, store.Email, store.Address, store.OwnerID).
		Scan(&created.ID, &created.Name, &created.Email, &created.Address,
			&created.OwnerID, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// ListStoresWithRatings возвращает все магазины с агрегатами оценок и
// собственной оценкой запрашивающего пользователя, по имени магазина.
func (s *Storage) ListStoresWithRatings(ctx context.Context, userID int) ([]*models.StoreWithRating, error) {
	const op = "storage.ListStoresWithRatings"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.name, s.address,
			      ROUND(AVG(r.rating), 2) AS avg_rating,
			      COUNT(r.id) AS total_ratings,
			      (SELECT rating FROM ratings
			       WHERE user_id = $1 AND store_id = s.id) AS user_rating
			  FROM stores s
			  LEFT JOIN ratings r ON r.store_id = s.id
			  GROUP BY s.id
			  ORDER BY s.name`
	return s.queryStoresWithRatings(ctx, op, query, userID)
}

// SearchStoresWithRatings возвращает магазины, имя или адрес которых содержит
// query без учета регистра. Пустая строка поиска совпадает со всеми магазинами.
func (s *Storage) SearchStoresWithRatings(ctx context.Context, userID int, searchQuery string) ([]*models.StoreWithRating, error) {
	const op = "storage.SearchStoresWithRatings"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.name, s.address,
			      ROUND(AVG(r.rating), 2) AS avg_rating,
			      COUNT(r.id) AS total_ratings,
			      (SELECT rating FROM ratings
			       WHERE user_id = $1 AND store_id = s.id) AS user_rating
			  FROM stores s
			  LEFT JOIN ratings r ON r.store_id = s.id
			  WHERE s.name ILIKE '%' || $2 || '%' OR s.address ILIKE '%' || $2 || '%'
			  GROUP BY s.id
			  ORDER BY s.name`
	return s.queryStoresWithRatings(ctx, op, query, userID, searchQuery)
}

func (s *Storage) queryStoresWithRatings(ctx context.Context, op, query string, args ...any) ([]*models.StoreWithRating, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.StoreWithRating
	for rows.Next() {
		var item models.StoreWithRating
		var avgRating sql.NullFloat64
		var userRating sql.NullInt64
		if err = rows.Scan(&item.ID, &item.Name, &item.Address,
			&avgRating, &item.TotalRatings, &userRating); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if avgRating.Valid {
			item.AvgRating = &avgRating.Float64
		}
		if userRating.Valid {
			v := int(userRating.Int64)
			item.UserRating = &v
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListOwnerStoreRatings возвращает по магазинам владельца по одной строке
// на каждую оценку вместе с её автором и оконным средним по магазину.
// Магазины без оценок сохраняются внешним соединением: их поля оценки NULL.
func (s *Storage) ListOwnerStoreRatings(ctx context.Context, ownerID int) ([]*models.OwnerStoreRating, error) {
	const op = "storage.ListOwnerStoreRatings"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id AS store_id, s.name AS store_name,
			      u.id AS user_id, u.name AS user_name, u.email AS user_email,
			      r.rating, r.created_at,
			      ROUND(AVG(r.rating) OVER (PARTITION BY s.id), 2) AS avg_rating
			  FROM stores s
			  LEFT JOIN ratings r ON r.store_id = s.id
			  LEFT JOIN users u ON u.id = r.user_id
			  WHERE s.owner_id = $1
			  ORDER BY s.id, r.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.OwnerStoreRating
	for rows.Next() {
		var item models.OwnerStoreRating
		var userID sql.NullInt64
		var userName, userEmail sql.NullString
		var rating sql.NullInt64
		var createdAt sql.NullTime
		var avgRating sql.NullFloat64
		if err = rows.Scan(&item.StoreID, &item.StoreName,
			&userID, &userName, &userEmail, &rating, &createdAt, &avgRating); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if userID.Valid {
			v := int(userID.Int64)
			item.UserID = &v
		}
		if userName.Valid {
			item.UserName = &userName.String
		}
		if userEmail.Valid {
			item.UserEmail = &userEmail.String
		}
		if rating.Valid {
			v := int(rating.Int64)
			item.Rating = &v
		}
		if createdAt.Valid {
			item.CreatedAt = &createdAt.Time
		}
		if avgRating.Valid {
			item.AvgRating = &avgRating.Float64
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListStoresWithOwners возвращает все магазины с данными владельца и
// агрегатами оценок, по имени магазина. Соединение с владельцем внутреннее:
// магазин без владельца в этой выборке непредставим.
func (s *Storage) ListStoresWithOwners(ctx context.Context) ([]*models.AdminStoreRow, error) {
	const op = "storage.ListStoresWithOwners"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.name, s.address,
			      u.name AS owner_name, u.email AS owner_email,
			      ROUND(AVG(r.rating), 2) AS avg_rating,
			      COUNT(r.id) AS total_ratings
			  FROM stores s
			  JOIN users u ON s.owner_id = u.id
			  LEFT JOIN ratings r ON r.store_id = s.id
			  GROUP BY s.id, u.name, u.email
			  ORDER BY s.name`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.AdminStoreRow
	for rows.Next() {
		var item models.AdminStoreRow
		var avgRating sql.NullFloat64
		if err = rows.Scan(&item.ID, &item.Name, &item.Address,
			&item.OwnerName, &item.OwnerEmail, &avgRating, &item.TotalRatings); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if avgRating.Valid {
			item.AvgRating = &avgRating.Float64
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountStats возвращает сводные счетчики пользователей, магазинов и оценок.
// Три счетчика читаются одним запросом, но без общей транзакции.
func (s *Storage) CountStats(ctx context.Context) (*models.DashboardStats, error) {
	const op = "storage.CountStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      (SELECT COUNT(*) FROM users) AS total_users,
			      (SELECT COUNT(*) FROM stores) AS total_stores,
			      (SELECT COUNT(*) FROM ratings) AS total_ratings`
	stats := &models.DashboardStats{}
	if err := s.DB.QueryRowContext(ctx, query).
		Scan(&stats.TotalUsers, &stats.TotalStores, &stats.TotalRatings); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}
