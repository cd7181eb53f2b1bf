// Package toggle реализует HTTP-обработчик переключения отметки
// посещаемости клиента на дату.
package toggle

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/magabrotheeeer/tiffin-admin/internal/api/response"
	"github.com/magabrotheeeer/tiffin-admin/internal/lib/sl"
	"github.com/magabrotheeeer/tiffin-admin/internal/models"
)

// Handler отвечает за обработку запросов переключения отметки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики посещаемости.
type Service interface {
	Toggle(ctx context.Context, req models.DummyToggle) (bool, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Переключить отметку посещаемости
// @Description Переключает присутствие клиента на приёме пищи в указанную дату. Отсутствие отметки означает присутствие.
// @Tags Attendance
// @Accept  json
// @Produce  json
// @Param request body models.DummyToggle true "Клиент, дата и приём пищи"
// @Success 200 {object} response.OKResponse "Новое значение отметки"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /attendance/toggle [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.attendance.toggle.New"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyToggle
	err := render.DecodeJSON(r.Body, &req)
	if err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err = h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	attending, err := h.service.Toggle(r.Context(), req)
	if err != nil {
		log.Error("failed to toggle attendance", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not toggle attendance"))
		return
	}

	log.Info("attendance toggled",
		slog.String("customer_id", req.CustomerID),
		slog.String("meal", req.Meal),
		slog.Bool("attending", attending))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"attending": attending,
	}))
}
