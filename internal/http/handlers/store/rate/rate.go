// Package rate реализует HTTP-обработчик отправки оценки магазина.
//
// Оценка от 1 до 5; повторная отправка тем же пользователем для того же
// магазина перезаписывает прежнее значение, второй ряд не создается.
package rate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/store-rating-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/store-rating-service/internal/http/response"
	"github.com/magabrotheeeer/store-rating-service/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating-service/internal/models"
)

// Handler обрабатывает HTTP-запросы отправки оценок.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики оценок.
type Service interface {
	Rate(ctx context.Context, userID, storeID, rating int) (*models.Rating, error)
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
// @Summary Оценить магазин
// @Description Сохраняет оценку 1–5 текущего пользователя для магазина; повторная отправка перезаписывает прежнюю.
// @Tags Stores
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "Идентификатор магазина"
// @Param request body models.DummyRating true "Оценка"
// @Success 200 {object} response.Response "Итоговая строка оценки"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос или оценка вне диапазона"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /stores/{id}/rate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.store.rate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	storeID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid store id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid store id"))
		return
	}

	var req models.DummyRating
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("rating must be between 1 and 5"))
		return
	}

	userID, ok := r.Context().Value(middlewarectx.UserID).(int)
	if !ok || userID == 0 {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	rating, err := h.service.Rate(r.Context(), userID, storeID, req.Rating)
	if err != nil {
		log.Error("failed to submit rating", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not submit rating"))
		return
	}

	log.Info("rating submitted", slog.Int("store_id", storeID), slog.Int("rating", req.Rating))
	render.JSON(w, r, response.OKWithData(rating))
}
