// Package list реализует HTTP-обработчик журнала платежей за месяц
// со сводкой: собрано, ожидается, долг.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tiffin-admin/internal/api/response"
	"github.com/magabrotheeeer/tiffin-admin/internal/lib/sl"
	"github.com/magabrotheeeer/tiffin-admin/internal/services/payment"
)

// Handler отвечает за обработку запросов журнала платежей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики платежей.
type Service interface {
	ListMonth(ctx context.Context, monthTag string) (*payment.MonthLedger, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Журнал платежей за месяц
// @Description Возвращает записи журнала за месяц и сводку. Месяц в параметре month в формате 2026-02, по умолчанию текущий.
// @Tags Payments
// @Produce  json
// @Param month query string false "Месяц в формате 2006-01"
// @Success 200 {object} response.OKResponse "Записи и сводка месяца"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /payments/list [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.list.New"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	monthTag := r.URL.Query().Get("month")

	ledger, err := h.service.ListMonth(r.Context(), monthTag)
	if err != nil {
		log.Error("failed to list payments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list payments"))
		return
	}

	log.Info("payments listed", slog.String("month", monthTag), slog.Int("count", len(ledger.Entries)))
	render.JSON(w, r, response.OKWithData(ledger))
}
