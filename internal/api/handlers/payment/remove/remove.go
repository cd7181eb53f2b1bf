// Package remove реализует HTTP-обработчик удаления записи журнала
// платежей. Удаление исправляет журнал и не откатывает срок подписки.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tiffin-admin/internal/api/response"
	"github.com/magabrotheeeer/tiffin-admin/internal/lib/sl"
)

// Handler отвечает за обработку запросов удаления записи журнала.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики платежей.
type Service interface {
	Remove(ctx context.Context, id string) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить запись журнала платежей
// @Description Удаляет ошибочную запись из журнала. Срок подписки клиента при этом не меняется.
// @Tags Payments
// @Produce  json
// @Param id path string true "ID записи журнала"
// @Success 200 {object} response.OKResponse "Число удалённых записей"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /payments/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.remove.New"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	counter, err := h.service.Remove(r.Context(), id)
	if err != nil {
		log.Error("failed to remove payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove payment"))
		return
	}

	log.Info("payment removed", slog.String("id", id), slog.Int("count", counter))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"removed_count": counter,
	}))
}
