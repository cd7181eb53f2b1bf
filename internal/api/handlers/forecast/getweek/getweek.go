// Package getweek реализует HTTP-обработчик производственного прогноза
// на неделю: порции обеда и ужина по каждому дню.
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
	"github.com/magabrotheeeer/tiffin-admin/internal/services/forecast"
)

// Handler отвечает за обработку запросов прогноза на неделю.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики прогноза.
type Service interface {
	ForecastWeek(ctx context.Context, weekID string) (map[week.DayName]forecast.DayForecast, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Прогноз порций на неделю
// @Description Возвращает счётчики порций обеда и ужина по каждому дню недели с учётом отметок посещаемости.
// @Tags Forecast
// @Produce  json
// @Param weekId path string true "Неделя в формате 2026-W08"
// @Success 200 {object} response.OKResponse "Прогноз по дням"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор недели"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /forecast/{weekId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.forecast.getweek.New"

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

	days, err := h.service.ForecastWeek(r.Context(), weekID)
	if err != nil {
		log.Error("failed to forecast week", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not forecast week"))
		return
	}

	log.Info("week forecasted", slog.String("week_id", weekID))
	render.JSON(w, r, response.OKWithData(days))
}
