// Package dashboard реализует HTTP-обработчик сводных счетчиков
// панели администратора.
package dashboard

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

// Handler обрабатывает HTTP-запросы панели администратора.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики сводных счетчиков.
type Service interface {
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводные счетчики
// @Description Возвращает общее число пользователей, магазинов и оценок.
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Сводные счетчики"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /admin/dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.dashboard"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stats, err := h.service.DashboardStats(r.Context())
	if err != nil {
		log.Error("failed to fetch dashboard stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not fetch dashboard data"))
		return
	}

	log.Info("dashboard stats fetched")
	render.JSON(w, r, response.OKWithData(stats))
}
