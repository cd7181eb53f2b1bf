// Package list реализует HTTP-обработчик списка посещаемости на дату:
// активные клиенты с разрешённым состоянием обеда и ужина.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tiffin-admin/internal/api/response"
	"github.com/magabrotheeeer/tiffin-admin/internal/lib/sl"
	"github.com/magabrotheeeer/tiffin-admin/internal/lib/week"
	"github.com/magabrotheeeer/tiffin-admin/internal/services/attendance"
)

// Handler отвечает за обработку запросов списка посещаемости.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики посещаемости.
type Service interface {
	ListForDate(ctx context.Context, date time.Time) ([]attendance.CustomerDay, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Посещаемость на дату
// @Description Возвращает активных клиентов с их состоянием обеда и ужина. Дата в параметре date, по умолчанию сегодня.
// @Tags Attendance
// @Produce  json
// @Param date query string false "Дата в формате 2006-01-02"
// @Success 200 {object} response.OKResponse "Список клиентов с отметками"
// @Failure 400 {object} response.ErrorResponse "Некорректная дата"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /attendance/today [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.attendance.list.New"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	date := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(week.ISODate, raw)
		if err != nil {
			log.Error("failed to parse date", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid date"))
			return
		}
		date = parsed
	}

	days, err := h.service.ListForDate(r.Context(), date)
	if err != nil {
		log.Error("failed to list attendance", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list attendance"))
		return
	}

	log.Info("attendance listed", slog.String("date", week.FormatISO(date)), slog.Int("count", len(days)))
	render.JSON(w, r, response.OKWithData(days))
}
