// Package cancel реализует HTTP-обработчик для отмены брони текущим пользователем.
//
// Отмена удаётся только владельцу брони. Чужая бронь и несуществующий слот
// обрабатываются без ошибки: запись возвращается без изменений либо пустой.
package cancel

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/slot-booker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/slot-booker/internal/http/response"
	"github.com/magabrotheeeer/slot-booker/internal/lib/sl"
	"github.com/magabrotheeeer/slot-booker/internal/models"
)

// Handler управляет HTTP-запросами на отмену брони.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отмены брони.
type Service interface {
	Cancel(ctx context.Context, id, userID int) (*models.TimeSlot, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отменить бронь временного слота
// @Description Снимает бронь, если её владельцем является текущий пользователь. Иначе слот возвращается без изменений.
// @Tags Bookings
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID слота"
// @Success 200 {object} map[string]any "Состояние слота после попытки отмены"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при отмене брони"
// @Router /cancel/{id} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.timeslot.cancel"

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

	userID, ok := r.Context().Value(middlewarectx.UserID).(int)
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	slot, err := h.service.Cancel(r.Context(), id, userID)
	if err != nil {
		log.Error("failed to cancel booking", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not cancel booking"))
		return
	}

	log.Info("cancel booking handled", slog.Int("id", id), slog.Int("user_id", userID))
	render.JSON(w, r, response.OKWithData(slot))
}
