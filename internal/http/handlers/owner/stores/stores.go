// Package stores реализует HTTP-обработчик выборки владельца:
// оценки его магазинов с авторами и средним по каждому магазину.
package stores

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

// Handler обрабатывает HTTP-запросы владельца магазинов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выборки владельца.
type Service interface {
	OwnerStores(ctx context.Context, ownerID int) ([]*models.OwnerStoreRating, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Оценки магазинов владельца
// @Description Возвращает по строке на каждую оценку магазинов текущего владельца вместе со средним по магазину.
// @Tags Owner
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Оценки магазинов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /owner/stores [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.owner.stores"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ownerID, ok := r.Context().Value(middlewarectx.UserID).(int)
	if !ok || ownerID == 0 {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	rows, err := h.service.OwnerStores(r.Context(), ownerID)
	if err != nil {
		log.Error("failed to fetch owner stores", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not fetch owner store ratings"))
		return
	}

	log.Info("owner stores fetched", slog.Int("count", len(rows)))
	render.JSON(w, r, response.OKWithData(rows))
}
