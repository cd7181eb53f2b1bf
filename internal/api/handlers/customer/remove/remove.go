// Package remove реализует HTTP-обработчик удаления клиента.
//
// Обычный путь — деактивация: клиент выключается, но остаётся в базе.
// С параметром hard=true клиент удаляется физически; записи журнала
// платежей при этом не трогаются и помечаются сиротскими при показе.
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

// Handler отвечает за обработку запросов на удаление клиента.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления клиента.
type Service interface {
	Deactivate(ctx context.Context, id string) (int, error)
	Remove(ctx context.Context, id string) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить клиента по ID
// @Description Деактивирует клиента; с параметром hard=true удаляет физически.
// @Tags Customers
// @Produce  json
// @Param id path string true "ID клиента"
// @Param hard query bool false "Физическое удаление"
// @Success 200 {object} response.OKResponse "Число удалённых записей"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /customers/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.customer.remove.New"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	hard := r.URL.Query().Get("hard") == "true"

	var counter int
	var err error
	if hard {
		counter, err = h.service.Remove(r.Context(), id)
	} else {
		counter, err = h.service.Deactivate(r.Context(), id)
	}
	if err != nil {
		log.Error("failed to remove customer", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove customer"))
		return
	}

	log.Info("customer removed", slog.String("id", id), slog.Bool("hard", hard), slog.Int("count", counter))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"removed_count": counter,
	}))
}
