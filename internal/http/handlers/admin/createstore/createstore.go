// Package createstore реализует HTTP-обработчик создания магазина
// администратором с привязкой к существующему владельцу.
package createstore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/store-rating-service/internal/http/response"
	"github.com/magabrotheeeer/store-rating-service/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating-service/internal/models"
	"github.com/magabrotheeeer/store-rating-service/internal/services/admin"
)

// Handler обрабатывает HTTP-запросы создания магазинов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания магазина.
type Service interface {
	CreateStore(ctx context.Context, req models.DummyCreateStore) (*models.Store, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создание магазина
// @Description Создает магазин и связывает его с владельцем по owner_id.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyCreateStore true "Данные магазина"
// @Success 201 {object} response.Response "Магазин создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Владелец не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/stores [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.createstore"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyCreateStore
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	store, err := h.service.CreateStore(r.Context(), req)
	if err != nil {
		if errors.Is(err, admin.ErrOwnerNotFound) {
			log.Error("owner not found", slog.Int("owner_id", req.OwnerID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("owner not found"))
			return
		}
		log.Error("failed to create store", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create store"))
		return
	}

	log.Info("store created", slog.Int("id", store.ID), slog.Int("owner_id", store.OwnerID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(store))
}
