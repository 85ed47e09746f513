// Package search реализует HTTP-обработчик поиска магазинов.
//
// Фильтрует витрину по подстроке имени или адреса без учета регистра.
// Пустой параметр q совпадает со всеми магазинами.
package search

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/store-rating-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/store-rating-service/internal/http/response"
	"github.com/magabrotheeeer/store-rating-service/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating-service/internal/models"
)

// Handler обрабатывает HTTP-запросы поиска магазинов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики поиска магазинов.
type Service interface {
	Search(ctx context.Context, userID int, query string) ([]*models.StoreWithRating, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Поиск магазинов
// @Description Возвращает магазины, имя или адрес которых содержит q.
// @Tags Stores
// @Produce  json
// @Security BearerAuth
// @Param q query string false "Подстрока поиска"
// @Success 200 {object} response.Response "Найденные магазины"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /stores/search [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.store.search"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := r.Context().Value(middlewarectx.UserID).(int)
	if !ok || userID == 0 {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	query := r.URL.Query().Get("q")

	stores, err := h.service.Search(r.Context(), userID, query)
	if err != nil {
		log.Error("failed to search stores", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("search failed"))
		return
	}

	log.Info("stores searched", slog.String("query", query), slog.Int("count", len(stores)))
	render.JSON(w, r, response.OKWithData(stores))
}
