// Package list реализует HTTP-обработчик списка клиентов
// с производными величинами: остаток дней, статус, задолженность.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tiffin-admin/internal/api/response"
	"github.com/magabrotheeeer/tiffin-admin/internal/lib/sl"
	"github.com/magabrotheeeer/tiffin-admin/internal/services/subscription"
)

// Handler отвечает за обработку запросов списка клиентов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка клиентов.
type Service interface {
	List(ctx context.Context) ([]subscription.CustomerView, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список клиентов
// @Description Возвращает всех клиентов с пересчитанными производными величинами.
// @Tags Customers
// @Produce  json
// @Success 200 {object} response.OKResponse "Список клиентов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /customers/list [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.customer.list.New"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	views, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list customers", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list customers"))
		return
	}

	log.Info("customers listed", slog.Int("count", len(views)))
	render.JSON(w, r, response.OKWithData(views))
}
