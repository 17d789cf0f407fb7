// Package booking содержит бизнес-логику для управления временными слотами
// и переходами состояния брони, включая кеширование отдельных слотов.
package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/slot-booker/internal/lib/sl"
	"github.com/magabrotheeeer/slot-booker/internal/models"
)

// SlotRepository определяет методы для работы со слотами в хранилище.
type SlotRepository interface {
	// CreateSlot добавляет новый слот и возвращает его ID.
	CreateSlot(ctx context.Context, slot models.TimeSlot) (int, error)
	// GetSlot возвращает слот по ID.
	GetSlot(ctx context.Context, id int) (*models.TimeSlot, error)
	// ListSlots возвращает список слотов с пагинацией.
	ListSlots(ctx context.Context, limit, offset int) ([]*models.TimeSlot, error)
	// UpdateSlot перезаписывает категорию и время слота.
	UpdateSlot(ctx context.Context, slot models.TimeSlot, id int) (*models.TimeSlot, error)
	// DeleteSlot удаляет слот и возвращает удалённую запись.
	DeleteSlot(ctx context.Context, id int) (*models.TimeSlot, error)
	// BookSlot атомарно закрепляет свободный слот за пользователем.
	BookSlot(ctx context.Context, id, userID int) (*models.TimeSlot, error)
	// CancelSlot атомарно снимает бронь владельца.
	CancelSlot(ctx context.Context, id, userID int) (*models.TimeSlot, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// BookingService реализует бизнес-логику работы со слотами, включая кеширование.
type BookingService struct {
	repo  SlotRepository
	cache Cache
	log   *slog.Logger
}

// NewBookingService создает новый экземпляр BookingService.
func NewBookingService(repo SlotRepository, cache Cache, log *slog.Logger) *BookingService {
	return &BookingService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func cacheKey(id int) string {
	return fmt.Sprintf("timeslot:%d", id)
}

// Create создает новый слот без владельца и возвращает созданную запись.
// Проверка start < end намеренно не выполняется.
func (s *BookingService) Create(ctx context.Context, req models.DummySlot) (*models.TimeSlot, error) {
	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		return nil, fmt.Errorf("invalid end time: %w", err)
	}

	slot := models.TimeSlot{
		Category: req.Category,
		Start:    start,
		End:      end,
	}
	id, err := s.repo.CreateSlot(ctx, slot)
	if err != nil {
		return nil, err
	}
	slot.ID = id
	s.log.Info("created new timeslot", slog.Int("id", id))

	if err := s.cache.Set(cacheKey(id), slot, time.Hour); err != nil {
		s.log.Warn("failed to cache timeslot", slog.String("key", cacheKey(id)), sl.Err(err))
	}

	return &slot, nil
}

// List возвращает список слотов с пагинацией в порядке их создания.
func (s *BookingService) List(ctx context.Context, limit, offset int) ([]*models.TimeSlot, error) {
	return s.repo.ListSlots(ctx, limit, offset)
}

// Read возвращает слот по ID, используя кеш или репозиторий.
// Если слот не найден, возвращается nil без ошибки.
func (s *BookingService) Read(ctx context.Context, id int) (*models.TimeSlot, error) {
	var result *models.TimeSlot
	found, err := s.cache.Get(cacheKey(id), &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	if found {
		return result, nil
	}
	result, err = s.repo.GetSlot(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := s.cache.Set(cacheKey(id), result, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	return result, nil
}

// Update перезаписывает категорию и время слота и обновляет кеш.
// Проверка владельца намеренно отсутствует: любой аутентифицированный
// пользователь может изменить любой слот.
// Если слот не найден, возвращается nil без ошибки.
func (s *BookingService) Update(ctx context.Context, id int, req models.DummySlot) (*models.TimeSlot, error) {
	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		return nil, fmt.Errorf("invalid end time: %w", err)
	}

	slot := models.TimeSlot{
		Category: req.Category,
		Start:    start,
		End:      end,
	}
	updated, err := s.repo.UpdateSlot(ctx, slot, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	s.log.Info("updated timeslot", slog.Int("id", id))

	if err := s.cache.Set(cacheKey(id), updated, time.Hour); err != nil {
		s.log.Warn("failed to cache timeslot", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	return updated, nil
}

// Remove удаляет слот независимо от состояния брони и инвалидирует кеш.
// Если слот не найден, возвращается nil без ошибки.
func (s *BookingService) Remove(ctx context.Context, id int) (*models.TimeSlot, error) {
	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey(id)), sl.Err(err))
	}

	deleted, err := s.repo.DeleteSlot(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	s.log.Info("deleted timeslot", slog.Int("id", id))
	return deleted, nil
}

// Book закрепляет слот за пользователем, если слот свободен.
// Занятый слот возвращается без изменений и без ошибки: вызывающая сторона
// различает исход по полю владельца. Если слот не найден, возвращается nil.
func (s *BookingService) Book(ctx context.Context, id, userID int) (*models.TimeSlot, error) {
	slot, err := s.repo.BookSlot(ctx, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	s.log.Info("book timeslot attempt", slog.Int("id", id), slog.Int("user_id", userID))

	if err := s.cache.Set(cacheKey(id), slot, time.Hour); err != nil {
		s.log.Warn("failed to cache timeslot", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	return slot, nil
}

// Cancel снимает бронь, если её владельцем является userID.
// Чужая бронь возвращается без изменений и без ошибки.
// Если слот не найден, возвращается nil.
func (s *BookingService) Cancel(ctx context.Context, id, userID int) (*models.TimeSlot, error) {
	slot, err := s.repo.CancelSlot(ctx, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	s.log.Info("cancel booking attempt", slog.Int("id", id), slog.Int("user_id", userID))

	if err := s.cache.Set(cacheKey(id), slot, time.Hour); err != nil {
		s.log.Warn("failed to cache timeslot", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	return slot, nil
}
