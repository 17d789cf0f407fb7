package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/slot-booker/internal/models"
)

// ErrEmailExists возвращается при вставке пользователя с уже занятым email.
var ErrEmailExists = errors.New("email already exists")

// CreateUser сохраняет нового пользователя в базу данных и возвращает его ID.
// Нарушение уникальности email транслируется в ErrEmailExists: ограничение
// в базе закрывает гонку двух одновременных регистраций.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (int, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO users (email, name, password_hash, preferences)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Name, user.PasswordHash, user.Preferences).Scan(&newID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return 0, fmt.Errorf("%s: %w", op, ErrEmailExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByEmail возвращает пользователя по его email.
// Сравнение точное, с учётом регистра — так хранится значение в базе.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, name, password_hash, preferences
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, email)

	var preferences sql.NullString
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &preferences); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if preferences.Valid {
		u.Preferences = &preferences.String
	}
	return u, nil
}

// GetUser возвращает пользователя по его ID.
func (s *Storage) GetUser(ctx context.Context, id int) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, name, password_hash, preferences
			  FROM users
			  WHERE id = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, id)

	var preferences sql.NullString
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &preferences); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if preferences.Valid {
		u.Preferences = &preferences.String
	}
	return u, nil
}

// ListUsers возвращает список пользователей с пагинацией в порядке их создания.
func (s *Storage) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, name, password_hash, preferences
			  FROM users
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		var u models.User
		var preferences sql.NullString
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &preferences); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if preferences.Valid {
			u.Preferences = &preferences.String
		}
		result = append(result, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateUserPreferences перезаписывает настройки пользователя и возвращает обновлённую запись.
func (s *Storage) UpdateUserPreferences(ctx context.Context, id int, preferences string) (*models.User, error) {
	const op = "storage.UpdateUserPreferences"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET preferences = $1
			  WHERE id = $2
			  RETURNING id, email, name, password_hash, preferences`
	u := &models.User{}
	var prefs sql.NullString
	if err := s.DB.QueryRowContext(ctx, query, preferences, id).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &prefs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if prefs.Valid {
		u.Preferences = &prefs.String
	}
	return u, nil
}
