// Package list реализует HTTP-обработчик витрины магазинов для пользователя.
//
// Возвращает все магазины со средней оценкой, количеством оценок
// и собственной оценкой запрашивающего, по одному ряду на магазин.
package list

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

// Handler обрабатывает HTTP-запросы списка магазинов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики витрины магазинов.
type Service interface {
	ListForUser(ctx context.Context, userID int) ([]*models.StoreWithRating, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список магазинов
// @Description Возвращает все магазины с агрегатами оценок и оценкой текущего пользователя.
// @Tags Stores
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Список магазинов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /stores [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.store.list"
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

	stores, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		log.Error("failed to list stores", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not fetch stores"))
		return
	}

	log.Info("stores listed", slog.Int("count", len(stores)))
	render.JSON(w, r, response.OKWithData(stores))
}
