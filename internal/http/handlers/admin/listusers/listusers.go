// Package listusers реализует HTTP-обработчик административного списка
// пользователей с необязательными фильтрами name, email, address и role.
// Каждый заданный фильтр сужает выборку; отсутствующий не накладывает
// ограничений.
package listusers

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

// Handler обрабатывает HTTP-запросы списка пользователей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка пользователей.
type Service interface {
	ListUsers(ctx context.Context, filter models.UserFilter) ([]*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Description Возвращает пользователей по фильтрам name/email/address (подстрока) и role (точное совпадение).
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Param name query string false "Подстрока имени"
// @Param email query string false "Подстрока email"
// @Param address query string false "Подстрока адреса"
// @Param role query string false "Роль: USER, OWNER или ADMIN"
// @Success 200 {object} response.Response "Список пользователей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /admin/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.listusers"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := models.UserFilter{
		Name:    r.URL.Query().Get("name"),
		Email:   r.URL.Query().Get("email"),
		Address: r.URL.Query().Get("address"),
		Role:    r.URL.Query().Get("role"),
	}

	users, err := h.service.ListUsers(r.Context(), filter)
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not fetch users"))
		return
	}

	log.Info("users listed", slog.Int("count", len(users)))
	render.JSON(w, r, response.OKWithData(users))
}
