// Package duplicateweek реализует HTTP-обработчик копирования меню
// предыдущей недели в текущую.
package duplicateweek

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

// Handler отвечает за обработку запросов копирования недели меню.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики меню.
type Service interface {
	DuplicatePreviousWeek(ctx context.Context, weekID string) (menu.WeekMenu, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Скопировать меню предыдущей недели
// @Description Переносит заполненные дни предыдущей недели в указанную. Пустые дни источника дни-получатели не затирают.
// @Tags Menu
// @Produce  json
// @Param weekId path string true "Неделя-получатель в формате 2026-W08"
// @Success 200 {object} response.OKResponse "Обновлённое меню недели"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор недели"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /menu/{weekId}/duplicate-previous [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.menu.duplicateweek.New"

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

	weekMenu, err := h.service.DuplicatePreviousWeek(r.Context(), weekID)
	if err != nil {
		log.Error("failed to duplicate previous week", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not duplicate previous week"))
		return
	}

	log.Info("previous week duplicated", slog.String("week_id", weekID))
	render.JSON(w, r, response.OKWithData(weekMenu))
}
