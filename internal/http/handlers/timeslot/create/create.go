// Package create реализует HTTP-обработчик для создания новых временных слотов.
//
// Handler принимает JSON-запрос с данными слота, валидирует их,
// вызывает бизнес-логику создания слота через сервис и возвращает созданную запись.
// Слот создаётся свободным, без владельца.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/slot-booker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/slot-booker/internal/http/response"
	"github.com/magabrotheeeer/slot-booker/internal/lib/sl"
	"github.com/magabrotheeeer/slot-booker/internal/models"
)

// Handler управляет HTTP-запросами на создание новых слотов.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для создания слотов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания слота.
type Service interface {
	Create(ctx context.Context, req models.DummySlot) (*models.TimeSlot, error)
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
// @Summary Создать новый временной слот
// @Description Создает свободный слот с категорией и интервалом времени. Возвращает созданную запись.
// @Tags Timeslots
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummySlot true "Данные нового слота"
// @Success 200 {object} map[string]any "Созданный слот"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании слота"
// @Router /timeslots [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.timeslot.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummySlot
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	if _, ok := r.Context().Value(middlewarectx.UserID).(int); !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	slot, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create timeslot", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create timeslot"))
		return
	}

	log.Info("success to create timeslot", slog.Int("id", slot.ID))
	render.JSON(w, r, response.OKWithData(slot))
}
