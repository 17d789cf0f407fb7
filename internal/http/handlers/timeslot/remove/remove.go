// Package remove реализует HTTP-обработчик для удаления слота.
//
// Слот удаляется независимо от состояния брони. Если слот не найден,
// возвращается успешный ответ с пустыми данными.
package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/slot-booker/internal/http/response"
	"github.com/magabrotheeeer/slot-booker/internal/lib/sl"
	"github.com/magabrotheeeer/slot-booker/internal/models"
)

// Handler управляет HTTP-запросами на удаление слотов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления слота.
type Service interface {
	Remove(ctx context.Context, id int) (*models.TimeSlot, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить временной слот
// @Description Удаляет слот независимо от состояния брони. Возвращает удалённую запись.
// @Tags Timeslots
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID слота"
// @Success 200 {object} map[string]any "Удалённый слот"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при удалении слота"
// @Router /timeslots/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.timeslot.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	slot, err := h.service.Remove(r.Context(), id)
	if err != nil {
		log.Error("failed to delete timeslot", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete timeslot"))
		return
	}

	log.Info("success to delete timeslot", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(slot))
}
