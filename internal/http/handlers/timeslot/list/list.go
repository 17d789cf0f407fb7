// Package list реализует HTTP-обработчик для получения списка слотов с пагинацией.
// Конечная точка открытая: аутентификация не требуется.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/slot-booker/internal/http/response"
	"github.com/magabrotheeeer/slot-booker/internal/lib/sl"
	"github.com/magabrotheeeer/slot-booker/internal/models"
)

// Handler обрабатывает запрос списка слотов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка слотов.
type Service interface {
	List(ctx context.Context, limit, offset int) ([]*models.TimeSlot, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список временных слотов
// @Description Возвращает слоты с пагинацией в порядке их создания.
// @Tags Timeslots
// @Produce  json
// @Param limit query int false "Максимум записей (по умолчанию 100)"
// @Param skip query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} map[string]any "Список слотов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /timeslots [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.timeslot.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 100
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("skip"))
	if err != nil || offset < 0 {
		offset = 0
	}

	res, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list timeslots", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list timeslots"))
		return
	}

	log.Info("list timeslots", slog.Int("count", len(res)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"list_count": len(res),
		"timeslots":  res,
	}))
}
