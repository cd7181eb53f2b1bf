// Package tiffinadmin собирает HTTP-приложение админки: маршруты,
// сервисы и жизненный цикл сервера.
package tiffinadmin

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	attendancelist "github.com/magabrotheeeer/tiffin-admin/internal/api/handlers/attendance/list"
	"github.com/magabrotheeeer/tiffin-admin/internal/api/handlers/attendance/toggle"
	"github.com/magabrotheeeer/tiffin-admin/internal/api/handlers/customer/create"
	customerlist "github.com/magabrotheeeer/tiffin-admin/internal/api/handlers/customer/list"
	"github.com/magabrotheeeer/tiffin-admin/internal/api/handlers/customer/read"
	customerremove "github.com/magabrotheeeer/tiffin-admin/internal/api/handlers/customer/remove"
	"github.com/magabrotheeeer/tiffin-admin/internal/api/handlers/customer/update"
	"github.com/magabrotheeeer/tiffin-admin/internal/api/handlers/dashboard/today"
	forecastgetweek "github.com/magabrotheeeer/tiffin-admin/internal/api/handlers/forecast/getweek"
	"github.com/magabrotheeeer/tiffin-admin/internal/api/handlers/health"
	"github.com/magabrotheeeer/tiffin-admin/internal/api/handlers/menu/duplicateday"
	"github.com/magabrotheeeer/tiffin-admin/internal/api/handlers/menu/duplicateweek"
	menugetweek "github.com/magabrotheeeer/tiffin-admin/internal/api/handlers/menu/getweek"
	"github.com/magabrotheeeer/tiffin-admin/internal/api/handlers/menu/save"
	paymentlist "github.com/magabrotheeeer/tiffin-admin/internal/api/handlers/payment/list"
	"github.com/magabrotheeeer/tiffin-admin/internal/api/handlers/payment/record"
	paymentremove "github.com/magabrotheeeer/tiffin-admin/internal/api/handlers/payment/remove"
	"github.com/magabrotheeeer/tiffin-admin/internal/api/middlewarectx"
	"github.com/magabrotheeeer/tiffin-admin/internal/cache"
	attendanceservice "github.com/magabrotheeeer/tiffin-admin/internal/services/attendance"
	dashboardservice "github.com/magabrotheeeer/tiffin-admin/internal/services/dashboard"
	forecastservice "github.com/magabrotheeeer/tiffin-admin/internal/services/forecast"
	menuservice "github.com/magabrotheeeer/tiffin-admin/internal/services/menu"
	paymentservice "github.com/magabrotheeeer/tiffin-admin/internal/services/payment"
	subservice "github.com/magabrotheeeer/tiffin-admin/internal/services/subscription"
	"github.com/magabrotheeeer/tiffin-admin/internal/storage/repository"
)

// Services объединяет все сервисы, нужные маршрутам приложения.
type Services struct {
	Customers  *subservice.Service
	Attendance *attendanceservice.Service
	Forecast   *forecastservice.Service
	Menu       *menuservice.Service
	Payments   *paymentservice.Service
	Dashboard  *dashboardservice.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, services *Services, storage *repository.Storage, cacheRedis *cache.Cache) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))

		r.Post("/customers", create.New(logger, services.Customers).ServeHTTP)
		r.Get("/customers/list", customerlist.New(logger, services.Customers).ServeHTTP)
		r.Get("/customers/{id}", read.New(logger, services.Customers).ServeHTTP)
		r.Put("/customers/{id}", update.New(logger, services.Customers).ServeHTTP)
		r.Delete("/customers/{id}", customerremove.New(logger, services.Customers).ServeHTTP)

		r.Get("/attendance/today", attendancelist.New(logger, services.Attendance).ServeHTTP)
		r.Post("/attendance/toggle", toggle.New(logger, services.Attendance).ServeHTTP)

		r.Get("/forecast/{weekId}", forecastgetweek.New(logger, services.Forecast).ServeHTTP)

		r.Get("/menu/{weekId}", menugetweek.New(logger, services.Menu).ServeHTTP)
		r.Post("/menu/{weekId}/save", save.New(logger, services.Menu).ServeHTTP)
		r.Post("/menu/{weekId}/duplicate-day", duplicateday.New(logger, services.Menu).ServeHTTP)
		r.Post("/menu/{weekId}/duplicate-previous", duplicateweek.New(logger, services.Menu).ServeHTTP)

		r.Post("/payments", record.New(logger, services.Payments).ServeHTTP)
		r.Get("/payments/list", paymentlist.New(logger, services.Payments).ServeHTTP)
		r.Delete("/payments/{id}", paymentremove.New(logger, services.Payments).ServeHTTP)

		r.Get("/dashboard/today", today.New(logger, services.Dashboard).ServeHTTP)
	})

	r.Get("/health", health.New(logger, storage, cacheRedis).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
