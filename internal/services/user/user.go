// Package user содержит логику бизнес-уровня для просмотра пользователей
// и изменения их настроек.
package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/slot-booker/internal/models"
)

// ErrNotOwner возвращается при попытке изменить настройки другого пользователя.
var ErrNotOwner = errors.New("not authorized to update other user's preferences")

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// GetUser возвращает пользователя по ID.
	GetUser(ctx context.Context, id int) (*models.User, error)
	// ListUsers возвращает список пользователей с пагинацией.
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	// UpdateUserPreferences перезаписывает настройки пользователя.
	UpdateUserPreferences(ctx context.Context, id int, preferences string) (*models.User, error)
}

// UserService реализует бизнес-логику работы с пользователями.
type UserService struct {
	repo UserRepository
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Get возвращает пользователя по ID.
// Если пользователь не найден, возвращается nil без ошибки.
func (s *UserService) Get(ctx context.Context, id int) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// List возвращает список пользователей с пагинацией.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	users, err := s.repo.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UpdatePreferences перезаписывает настройки пользователя userID.
// Менять настройки может только сам пользователь: при несовпадении
// callerID возвращается ErrNotOwner. Если пользователь не найден,
// возвращается nil без ошибки.
func (s *UserService) UpdatePreferences(ctx context.Context, userID, callerID int, preferences string) (*models.User, error) {
	const op = "user.UpdatePreferences"

	if userID != callerID {
		return nil, ErrNotOwner
	}
	user, err := s.repo.UpdateUserPreferences(ctx, userID, preferences)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
