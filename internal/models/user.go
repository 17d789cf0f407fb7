// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и настройки.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

// User представляет зарегистрированного пользователя системы.
//
// PasswordHash никогда не сериализуется в JSON-ответы.
type User struct {
	ID           int     `json:"id"`          // Уникальный идентификатор пользователя
	Email        string  `json:"email"`       // Электронная почта (уникальная)
	Name         string  `json:"name"`        // Отображаемое имя пользователя
	PasswordHash string  `json:"-"`           // Хэш пароля пользователя
	Preferences  *string `json:"preferences"` // Настройки пользователя, nil — не заданы
}

// DummyUser используется для приёма данных регистрации из JSON-запроса,
// прежде чем конвертировать их в User.
type DummyUser struct {
	Email    string `json:"email" validate:"required,email"` // Электронная почта
	Password string `json:"password" validate:"required"`    // Пароль в открытом виде
	Name     string `json:"name" validate:"required"`        // Отображаемое имя
}
