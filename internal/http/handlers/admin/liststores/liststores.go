// Package liststores реализует HTTP-обработчик административного списка
// магазинов с данными владельцев и средними оценками.
package liststores

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/store-rating-service/internal/http/response"
	"github.com/magabrotheeeer/store-rating-service/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating-service/internal/models"
)

// Handler обрабатывает HTTP-запросы списка магазинов для администратора.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка магазинов.
type Service interface {
	ListStores(ctx context.Context) ([]*models.AdminStoreRow, error)
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
// @Description Возвращает все магазины с именем и email владельца и средней оценкой.
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Список магазинов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/stores [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.liststores"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stores, err := h.service.ListStores(r.Context())
	if err != nil {
		log.Error("failed to list stores", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list stores"))
		return
	}

	log.Info("stores listed", slog.Int("count", len(stores)))
	render.JSON(w, r, response.OKWithData(stores))
}
