// Package save реализует HTTP-обработчик сохранения меню недели.
//
// Дни сохраняются независимо: сбой одного дня не откатывает остальные,
// в ответе возвращается список реально сохранённых дней.
package save

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
	"github.com/magabrotheeeer/tiffin-admin/internal/models"
)

// Handler отвечает за обработку запросов сохранения меню.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики меню.
type Service interface {
	SaveDays(ctx context.Context, weekID string, days map[week.DayName]models.DayMenu) ([]week.DayName, error)
}

// Request содержит меню по дням недели для сохранения.
type Request struct {
	Days map[week.DayName]models.DayMenu `json:"days"`
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сохранить меню недели
// @Description Сохраняет переданные дни меню. Дни пишутся независимо, при частичном сбое возвращается список сохранённых.
// @Tags Menu
// @Accept  json
// @Produce  json
// @Param weekId path string true "Неделя в формате 2026-W08"
// @Param request body Request true "Меню по дням"
// @Success 200 {object} response.OKResponse "Список сохранённых дней"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /menu/{weekId}/save [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.menu.save.New"

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
	if len(req.Days) == 0 {
		log.Error("no days in request")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("no days to save"))
		return
	}

	saved, err := h.service.SaveDays(r.Context(), weekID, req.Days)
	if err != nil {
		log.Error("failed to save some days", sl.Err(err), slog.Any("saved", saved))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.OKWithData(map[string]any{
			"saved_days": saved,
			"error":      "some days were not saved",
		}))
		return
	}

	log.Info("menu saved", slog.String("week_id", weekID), slog.Int("days", len(saved)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"saved_days": saved,
	}))
}
