// Package preferences реализует HTTP-обработчик для изменения настроек пользователя.
//
// Настройки может менять только сам пользователь: при попытке изменить
// чужие настройки возвращается HTTP 403 Forbidden.
package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/slot-booker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/slot-booker/internal/http/response"
	"github.com/magabrotheeeer/slot-booker/internal/lib/sl"
	"github.com/magabrotheeeer/slot-booker/internal/models"
	"github.com/magabrotheeeer/slot-booker/internal/services/user"
)

// Request — входные данные для изменения настроек.
type Request struct {
	Preferences string `json:"preferences" validate:"required"` // Новые настройки пользователя
}

// Handler обрабатывает запрос на изменение настроек пользователя.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики изменения настроек.
type Service interface {
	UpdatePreferences(ctx context.Context, userID, callerID int, preferences string) (*models.User, error)
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
// @Summary Изменить настройки пользователя
// @Description Перезаписывает настройки пользователя. Доступно только владельцу учётной записи.
// @Tags Users
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID пользователя"
// @Param request body Request true "Новые настройки"
// @Success 200 {object} map[string]any "Обновлённый пользователь"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Попытка изменить чужие настройки"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users/{id}/preferences [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.preferences"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	callerID, ok := r.Context().Value(middlewarectx.UserID).(int)
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	updated, err := h.service.UpdatePreferences(r.Context(), id, callerID, req.Preferences)
	if err != nil {
		if errors.Is(err, user.ErrNotOwner) {
			log.Error("attempt to update other user's preferences",
				slog.Int("caller_id", callerID), slog.Int("user_id", id))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("not authorized to update other user's preferences"))
			return
		}
		log.Error("failed to update preferences", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update preferences"))
		return
	}

	log.Info("preferences updated", slog.Int("user_id", id))
	render.JSON(w, r, response.OKWithData(updated))
}
