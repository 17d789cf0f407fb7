// Package slotbooker предоставляет маршруты для основного приложения.
package slotbooker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/slot-booker/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/slot-booker/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/slot-booker/internal/http/handlers/health"
	"github.com/magabrotheeeer/slot-booker/internal/http/handlers/timeslot/book"
	"github.com/magabrotheeeer/slot-booker/internal/http/handlers/timeslot/cancel"
	"github.com/magabrotheeeer/slot-booker/internal/http/handlers/timeslot/create"
	slotlist "github.com/magabrotheeeer/slot-booker/internal/http/handlers/timeslot/list"
	"github.com/magabrotheeeer/slot-booker/internal/http/handlers/timeslot/read"
	"github.com/magabrotheeeer/slot-booker/internal/http/handlers/timeslot/remove"
	"github.com/magabrotheeeer/slot-booker/internal/http/handlers/timeslot/update"
	userlist "github.com/magabrotheeeer/slot-booker/internal/http/handlers/user/list"
	"github.com/magabrotheeeer/slot-booker/internal/http/handlers/user/me"
	"github.com/magabrotheeeer/slot-booker/internal/http/handlers/user/preferences"
	"github.com/magabrotheeeer/slot-booker/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/slot-booker/internal/services/auth"
	bookingservice "github.com/magabrotheeeer/slot-booker/internal/services/booking"
	userservice "github.com/magabrotheeeer/slot-booker/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	userService *userservice.UserService,
	bookingService *bookingservice.BookingService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	// Открытые конечные точки
	r.Post("/register", register.New(logger, authService).ServeHTTP)
	r.Post("/token", login.New(logger, authService).ServeHTTP)
	r.Get("/users", userlist.New(logger, userService).ServeHTTP)
	r.Get("/timeslots", slotlist.New(logger, bookingService).ServeHTTP)
	r.Get("/timeslots/{id}", read.New(logger, bookingService).ServeHTTP)
	r.Get("/health", health.New(logger).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(authService, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Get("/users/me", me.New(logger, userService).ServeHTTP)
		r.Put("/users/{id}/preferences", preferences.New(logger, userService).ServeHTTP)
		r.Post("/timeslots", create.New(logger, bookingService).ServeHTTP)
		r.Put("/timeslots/{id}", update.New(logger, bookingService).ServeHTTP)
		r.Delete("/timeslots/{id}", remove.New(logger, bookingService).ServeHTTP)
		r.Post("/book/{id}", book.New(logger, bookingService).ServeHTTP)
		r.Post("/cancel/{id}", cancel.New(logger, bookingService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
