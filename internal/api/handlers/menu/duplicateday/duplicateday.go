// Package duplicateday реализует HTTP-обработчик копирования меню одного
// дня недели в другие дни той же недели.
package duplicateday

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

// Handler отвечает за обработку запросов копирования дня меню.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики меню.
type Service interface {
	DuplicateDay(ctx context.Context, weekID string, source week.DayName, targets []week.DayName) (menu.WeekMenu, error)
}

// Request задаёт исходный день и дни-получатели копии.
type Request struct {
	Source  week.DayName   `json:"source"`
	Targets []week.DayName `json:"targets"`
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Скопировать день меню
// @Description Копирует меню исходного дня в указанные дни той же недели. Исходный день в списке получателей игнорируется.
// @Tags Menu
// @Accept  json
// @Produce  json
// @Param weekId path string true "Неделя в формате 2026-W08"
// @Param request body Request true "Исходный день и получатели"
// @Success 200 {object} response.OKResponse "Обновлённое меню недели"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /menu/{weekId}/duplicate-day [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.menu.duplicateday.New"

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

	var req Request
	err := render.DecodeJSON(r.Body, &req)
	if err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}
	if req.Source == "" || len(req.Targets) == 0 {
		log.Error("source or targets missing")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("source and targets are required"))
		return
	}

	weekMenu, err := h.service.DuplicateDay(r.Context(), weekID, req.Source, req.Targets)
	if err != nil {
		log.Error("failed to duplicate day", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not duplicate day"))
		return
	}

	log.Info("day duplicated",
		slog.String("week_id", weekID),
		slog.String("source", string(req.Source)),
		slog.Int("targets", len(req.Targets)))
	render.JSON(w, r, response.OKWithData(weekMenu))
}
