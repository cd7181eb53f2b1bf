// Package getweek реализует HTTP-обработчик чтения меню недели.
package getweek

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tiffin-admin/internal/api/response"
	"github.com/magabrotheeeer/tiffin-admin/internal/lib/sl"
	"github.com/magabrotheeeer/tiffin-admin/internal/lib/week"
	"github.com/magabrotheeeer/tiffin-admin/internal/services/menu"
)

// Handler отвечает за обработку запросов чтения меню недели.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики меню.
type Service interface {
	GetWeek(ctx context.Context, weekID string) (menu.WeekMenu, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Меню недели
// @Description Возвращает меню на все семь дней недели. Незаполненные дни отдаются пустыми, не ошибкой.
// @Tags Menu
// @Produce  json
// @Param weekId path string true "Неделя в формате 2026-W08"
// @Success 200 {object} response.OKResponse "Меню по дням"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор недели"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /menu/{weekId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.menu.getweek.New"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	weekID := chi.URLParam(r, "weekId")
	if _, _, err := week.ParseWeekID(weekID); err != nil {
		log.Error("failed to parse week id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid week id"))
		return
	}

	weekMenu, err := h.service.GetWeek(r.Context(), weekID)
	if err != nil {
		log.Error("failed to get week menu", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get week menu"))
		return
	}

	render.JSON(w, r, response.OKWithData(weekMenu))
}
