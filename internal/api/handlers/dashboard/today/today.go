// Package today реализует HTTP-обработчик сводки дня: меню, счётчики
// порций, число активных клиентов и должников.
package today

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tiffin-admin/internal/api/response"
	"github.com/magabrotheeeer/tiffin-admin/internal/lib/sl"
	"github.com/magabrotheeeer/tiffin-admin/internal/services/dashboard"
)

// Handler отвечает за обработку запросов сводки дня.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики сводки дня.
type Service interface {
	Today(ctx context.Context, now time.Time) (*dashboard.Today, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сводка на сегодня
// @Description Возвращает меню дня, счётчики порций, число активных клиентов и клиентов с долгом.
// @Tags Dashboard
// @Produce  json
// @Success 200 {object} response.OKResponse "Сводка дня"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dashboard/today [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.today.New"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	summary, err := h.service.Today(r.Context(), time.Now().UTC())
	if err != nil {
		log.Error("failed to build dashboard", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build dashboard"))
		return
	}

	render.JSON(w, r, response.OKWithData(summary))
}
