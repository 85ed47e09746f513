// Package app собирает приложение сервиса рейтинга магазинов: маршруты,
// зависимости и HTTP-сервер.
package app

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/store-rating-service/internal/http/handlers/admin/createstore"
	"github.com/magabrotheeeer/store-rating-service/internal/http/handlers/admin/createuser"
	"github.com/magabrotheeeer/store-rating-service/internal/http/handlers/admin/dashboard"
	"github.com/magabrotheeeer/store-rating-service/internal/http/handlers/admin/liststores"
	"github.com/magabrotheeeer/store-rating-service/internal/http/handlers/admin/listusers"
	"github.com/magabrotheeeer/store-rating-service/internal/http/handlers/auth/forgot"
	"github.com/magabrotheeeer/store-rating-service/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/store-rating-service/internal/http/handlers/auth/reset"
	"github.com/magabrotheeeer/store-rating-service/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/store-rating-service/internal/http/handlers/health"
	ownerstores "github.com/magabrotheeeer/store-rating-service/internal/http/handlers/owner/stores"
	"github.com/magabrotheeeer/store-rating-service/internal/http/handlers/store/list"
	"github.com/magabrotheeeer/store-rating-service/internal/http/handlers/store/rate"
	"github.com/magabrotheeeer/store-rating-service/internal/http/handlers/store/search"
	"github.com/magabrotheeeer/store-rating-service/internal/http/handlers/user/changepassword"
	"github.com/magabrotheeeer/store-rating-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/store-rating-service/internal/lib/jwt"
	"github.com/magabrotheeeer/store-rating-service/internal/models"
	adminservice "github.com/magabrotheeeer/store-rating-service/internal/services/admin"
	authservice "github.com/magabrotheeeer/store-rating-service/internal/services/auth"
	storeservice "github.com/magabrotheeeer/store-rating-service/internal/services/store"
	"github.com/magabrotheeeer/store-rating-service/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, tokens jwt.Maker,
	auth *authservice.AuthService, stores *storeservice.StoreService,
	admins *adminservice.AdminService, db *repository.Storage) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Post("/auth/signup", signup.New(logger, auth).ServeHTTP)
	r.Post("/auth/login", login.New(logger, auth).ServeHTTP)
	r.Post("/auth/forgot-password", forgot.New(logger, auth).ServeHTTP)
	r.Post("/auth/reset-password/{token}", reset.New(logger, auth).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(tokens, logger))

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireRole(logger, models.RoleUser))
			r.Get("/stores", list.New(logger, stores).ServeHTTP)
			r.Get("/stores/search", search.New(logger, stores).ServeHTTP)
			r.Post("/stores/{id}/rate", rate.New(logger, stores).ServeHTTP)
			r.Put("/user/password", changepassword.New(logger, auth).ServeHTTP)
		})

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireRole(logger, models.RoleOwner))
			r.Get("/owner/stores", ownerstores.New(logger, stores).ServeHTTP)
		})

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireRole(logger, models.RoleAdmin))
			r.Get("/admin/dashboard", dashboard.New(logger, admins).ServeHTTP)
			r.Get("/admin/users", listusers.New(logger, admins).ServeHTTP)
			r.Post("/admin/users", createuser.New(logger, admins).ServeHTTP)
			r.Get("/admin/stores", liststores.New(logger, admins).ServeHTTP)
			r.Post("/admin/stores", createstore.New(logger, admins).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
