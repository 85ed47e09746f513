package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/store-rating-service/internal/models"
)

// UpsertRating атомарно вставляет или перезаписывает оценку пары
// (user_id, store_id) и возвращает итоговую строку. Единственная операция
// insert-or-update на уникальном индексе: конкурирующие отправки одного
// пользователя по одному магазину сериализуются, побеждает последняя.
func (s *Storage) UpsertRating(ctx context.Context, userID, storeID, rating int) (*models.Rating, error) {
	const op = "storage.UpsertRating"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO ratings (user_id, store_id, rating)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (user_id, store_id)
			  DO UPDATE SET rating = EXCLUDED.rating, updated_at = NOW()
			  RETURNING id, user_id, store_id, rating, created_at, updated_at`
	result := &models.Rating{}
	err := s.DB.QueryRowContext(ctx, query, userID, storeID, rating).
		Scan(&result.ID, &result.UserID, &result.StoreID, &result.Rating,
			&result.CreatedAt, &result.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
