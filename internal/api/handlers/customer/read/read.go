// Package read реализует HTTP-обработчик чтения клиента по ID.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tiffin-admin/internal/api/response"
	"github.com/magabrotheeeer/tiffin-admin/internal/lib/sl"
	"github.com/magabrotheeeer/tiffin-admin/internal/models"
)

// Handler отвечает за обработку запросов чтения клиента.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения клиента.
type Service interface {
	Read(ctx context.Context, id string) (*models.Customer, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить клиента по ID
// @Tags Customers
// @Produce  json
// @Param id path string true "ID клиента"
// @Success 200 {object} response.OKResponse "Данные клиента"
// @Failure 404 {object} response.ErrorResponse "Клиент не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /customers/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.customer.read.New"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	customer, err := h.service.Read(r.Context(), id)
	if err != nil {
		log.Error("failed to read customer", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read customer"))
		return
	}
	if customer == nil {
		log.Info("customer not found", slog.String("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("customer not found"))
		return
	}

	render.JSON(w, r, response.OKWithData(customer))
}
