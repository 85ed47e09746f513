// Package admin содержит бизнес-логику административных операций:
// управление пользователями и магазинами, сводные счетчики панели.
package admin

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/store-rating-service/internal/lib/password"
	"github.com/magabrotheeeer/store-rating-service/internal/models"
	"github.com/magabrotheeeer/store-rating-service/internal/services/store"
	"github.com/magabrotheeeer/store-rating-service/internal/storage/repository"
)

// ErrOwnerNotFound возвращается при создании магазина для несуществующего
// пользователя. Роль владельца при этом не проверяется: магазин можно
// привязать к пользователю без роли OWNER.
var ErrOwnerNotFound = errors.New("owner not found")

// AdminRepository определяет методы хранилища для административных операций.
type AdminRepository interface {
	// ListUsers возвращает пользователей по конъюнктивному фильтру.
	ListUsers(ctx context.Context, filter models.UserFilter) ([]*models.User, error)
	// CreateUser сохраняет пользователя с явно заданной ролью.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	// GetUserByID возвращает пользователя по идентификатору.
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	// CreateStore сохраняет новый магазин.
	CreateStore(ctx context.Context, store models.Store) (*models.Store, error)
	// ListStoresWithOwners возвращает магазины с владельцами и агрегатами.
	ListStoresWithOwners(ctx context.Context) ([]*models.AdminStoreRow, error)
	// CountStats возвращает сводные счетчики.
	CountStats(ctx context.Context) (*models.DashboardStats, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// AdminService реализует административные операции.
type AdminService struct {
	repo     AdminRepository
	cache    Cache
	statsTTL time.Duration
	log      *slog.Logger
}

// New создает новый экземпляр AdminService.
func New(repo AdminRepository, cache Cache, statsTTL time.Duration, log *slog.Logger) *AdminService {
	return &AdminService{
		repo:     repo,
		cache:    cache,
		statsTTL: statsTTL,
		log:      log,
	}
}

// ListUsers возвращает пользователей по фильтру, по имени по возрастанию.
func (s *AdminService) ListUsers(ctx context.Context, filter models.UserFilter) ([]*models.User, error) {
	return s.repo.ListUsers(ctx, filter)
}

// CreateUser создает пользователя с явно заданной ролью и хэшированием пароля.
func (s *AdminService) CreateUser(ctx context.Context, req models.DummyCreateUser) (*models.User, error) {
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		Address:      req.Address,
		PasswordHash: hashed,
		Role:         req.Role,
	}
	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	if cerr := s.cache.Invalidate(store.StatsCacheKey); cerr != nil {
		s.log.Warn("failed to invalidate stats cache", slog.Any("err", cerr))
	}
	return created, nil
}

// CreateStore создает магазин. Существование владельца проверяется заранее,
// несуществующий owner_id дает ErrOwnerNotFound.
func (s *AdminService) CreateStore(ctx context.Context, req models.DummyCreateStore) (*models.Store, error) {
	if _, err := s.repo.GetUserByID(ctx, req.OwnerID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}
	created, err := s.repo.CreateStore(ctx, models.Store{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}
	if cerr := s.cache.Invalidate(store.StatsCacheKey); cerr != nil {
		s.log.Warn("failed to invalidate stats cache", slog.Any("err", cerr))
	}
	return created, nil
}

// ListStores возвращает все магазины с данными владельца и агрегатами оценок.
func (s *AdminService) ListStores(ctx context.Context) ([]*models.AdminStoreRow, error) {
	return s.repo.ListStoresWithOwners(ctx)
}

// DashboardStats возвращает сводные счетчики панели администратора.
// Снимок кешируется на statsTTL; записи инвалидируют кеш, так что
// устаревание ограничено TTL и приемлемо для панели.
func (s *AdminService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var cached models.DashboardStats
	found, err := s.cache.Get(store.StatsCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read stats cache", slog.Any("err", err))
	}
	if found {
		return &cached, nil
	}

	stats, err := s.repo.CountStats(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(store.StatsCacheKey, stats, s.statsTTL); err != nil {
		s.log.Warn("failed to cache stats", slog.Any("err", err))
	}
	return stats, nil
}
