// Package store содержит бизнес-логику витрины магазинов и оценок:
// списки с агрегатами для пользователя, поиск, отправка оценки
// и выборка владельца.
package store

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/store-rating-service/internal/models"
)

// StatsCacheKey — ключ кеша сводных счетчиков панели администратора.
// Запись оценки инвалидирует его, чтобы панель не отставала дольше TTL.
const StatsCacheKey = "stats:dashboard"

// StoreRepository определяет методы хранилища для витрины магазинов.
type StoreRepository interface {
	// ListStoresWithRatings возвращает все магазины с агрегатами и оценкой пользователя.
	ListStoresWithRatings(ctx context.Context, userID int) ([]*models.StoreWithRating, error)
	// SearchStoresWithRatings фильтрует магазины по подстроке имени или адреса.
	SearchStoresWithRatings(ctx context.Context, userID int, query string) ([]*models.StoreWithRating, error)
	// UpsertRating атомарно вставляет или перезаписывает оценку пользователя.
	UpsertRating(ctx context.Context, userID, storeID, rating int) (*models.Rating, error)
	// ListOwnerStoreRatings возвращает оценки магазинов владельца с оконным средним.
	ListOwnerStoreRatings(ctx context.Context, ownerID int) ([]*models.OwnerStoreRating, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// StoreService реализует бизнес-логику витрины магазинов.
type StoreService struct {
	repo  StoreRepository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр StoreService.
func New(repo StoreRepository, cache Cache, log *slog.Logger) *StoreService {
	return &StoreService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// ListForUser возвращает все магазины с агрегатами оценок и собственной
// оценкой пользователя, по одному ряду на магазин, по имени.
func (s *StoreService) ListForUser(ctx context.Context, userID int) ([]*models.StoreWithRating, error) {
	return s.repo.ListStoresWithRatings(ctx, userID)
}

// Search возвращает магазины, имя или адрес которых содержит query.
// Пустая строка поиска эквивалентна полному списку.
func (s *StoreService) Search(ctx context.Context, userID int, query string) ([]*models.StoreWithRating, error) {
	return s.repo.SearchStoresWithRatings(ctx, userID, query)
}

// Rate сохраняет оценку пользователя для магазина: вставка при первой
// отправке, перезапись при повторной. Диапазон значения проверяет
// обработчик; хранилище дополнительно защищено ограничением CHECK.
func (s *StoreService) Rate(ctx context.Context, userID, storeID, rating int) (*models.Rating, error) {
	result, err := s.repo.UpsertRating(ctx, userID, storeID, rating)
	if err != nil {
		return nil, err
	}
	s.log.Info("rating upserted",
		slog.Int("user_id", userID), slog.Int("store_id", storeID), slog.Int("rating", rating))

	if err := s.cache.Invalidate(StatsCacheKey); err != nil {
		s.log.Warn("failed to invalidate stats cache", slog.Any("err", err))
	}
	return result, nil
}

// OwnerStores возвращает оценки магазинов владельца: по строке на оценку
// с автором и средним по магазину; магазины без оценок тоже присутствуют.
func (s *StoreService) OwnerStores(ctx context.Context, ownerID int) ([]*models.OwnerStoreRating, error) {
	return s.repo.ListOwnerStoreRatings(ctx, ownerID)
}
