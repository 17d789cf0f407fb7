package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/slot-booker/internal/models"
)

// CreateSlot вставляет новый временной слот без владельца и возвращает его ID.
func (s *Storage) CreateSlot(ctx context.Context, slot models.TimeSlot) (int, error) {
	const op = "storage.CreateSlot"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO timeslots (category, start_time, end_time, user_id)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		slot.Category, slot.Start, slot.End, slot.UserID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetSlot возвращает данные слота по его ID.
func (s *Storage) GetSlot(ctx context.Context, id int) (*models.TimeSlot, error) {
	const op = "storage.GetSlot"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, category, start_time, end_time, user_id
			  FROM timeslots WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	slot, err := scanSlot(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return slot, nil
}

// ListSlots возвращает список всех слотов с пагинацией в порядке их создания.
func (s *Storage) ListSlots(ctx context.Context, limit, offset int) ([]*models.TimeSlot, error) {
	const op = "storage.ListSlots"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, category, start_time, end_time, user_id
			  FROM timeslots
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.TimeSlot
	for rows.Next() {
		var item models.TimeSlot
		var userID sql.NullInt64
		if err := rows.Scan(&item.ID, &item.Category, &item.Start, &item.End, &userID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if userID.Valid {
			uid := int(userID.Int64)
			item.UserID = &uid
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateSlot перезаписывает категорию и время слота, возвращает обновлённую запись.
// Владелец брони при этом не меняется.
func (s *Storage) UpdateSlot(ctx context.Context, slot models.TimeSlot, id int) (*models.TimeSlot, error) {
	const op = "storage.UpdateSlot"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE timeslots
			  SET category = $1, start_time = $2, end_time = $3
			  WHERE id = $4
			  RETURNING id, category, start_time, end_time, user_id`
	row := s.DB.QueryRowContext(ctx, query, slot.Category, slot.Start, slot.End, id)

	updated, err := scanSlot(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// DeleteSlot удаляет слот независимо от состояния брони и возвращает удалённую запись.
func (s *Storage) DeleteSlot(ctx context.Context, id int) (*models.TimeSlot, error) {
	const op = "storage.DeleteSlot"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM timeslots
			  WHERE id = $1
			  RETURNING id, category, start_time, end_time, user_id`
	row := s.DB.QueryRowContext(ctx, query, id)

	deleted, err := scanSlot(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return deleted, nil
}

// BookSlot атомарно закрепляет слот за пользователем, если слот никем не занят.
// Условие user_id IS NULL проверяется той же командой UPDATE, что закрывает
// гонку двух одновременных бронирований: победит ровно одна.
// Если слот уже занят, запись возвращается без изменений; если слота нет — sql.ErrNoRows.
func (s *Storage) BookSlot(ctx context.Context, id, userID int) (*models.TimeSlot, error) {
	const op = "storage.BookSlot"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE timeslots
			  SET user_id = $1
			  WHERE id = $2 AND user_id IS NULL
			  RETURNING id, category, start_time, end_time, user_id`
	row := s.DB.QueryRowContext(ctx, query, userID, id)

	booked, err := scanSlot(row)
	if err == nil {
		return booked, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Условие не сработало: слот занят или не существует.
	current, err := s.GetSlot(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return current, nil
}

// CancelSlot атомарно снимает бронь, если её владельцем является userID.
// Чужая бронь и несуществующий слот условие не проходят: запись возвращается
// без изменений либо sql.ErrNoRows соответственно.
func (s *Storage) CancelSlot(ctx context.Context, id, userID int) (*models.TimeSlot, error) {
	const op = "storage.CancelSlot"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE timeslots
			  SET user_id = NULL
			  WHERE id = $1 AND user_id = $2
			  RETURNING id, category, start_time, end_time, user_id`
	row := s.DB.QueryRowContext(ctx, query, id, userID)

	cancelled, err := scanSlot(row)
	if err == nil {
		return cancelled, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	current, err := s.GetSlot(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return current, nil
}

// scanSlot читает строку timeslots в модель, разворачивая NULL-владельца.
func scanSlot(row *sql.Row) (*models.TimeSlot, error) {
	var item models.TimeSlot
	var userID sql.NullInt64
	if err := row.Scan(&item.ID, &item.Category, &item.Start, &item.End, &userID); err != nil {
		return nil, err
	}
	if userID.Valid {
		uid := int(userID.Int64)
		item.UserID = &uid
	}
	return &item, nil
}
