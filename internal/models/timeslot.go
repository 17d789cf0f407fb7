// Package models содержит доменные структуры, описывающие временной слот,
// а также вспомогательные типы для работы с данными из внешних источников (например, JSON-запросы).
package models

import "time"

// TimeSlot представляет собой основную модель временного слота,
// используемую в бизнес-логике и хранилище.
// Поле UserID может быть nil — это означает, что слот никем не забронирован.
type TimeSlot struct {
	ID       int       `json:"id"`       // Уникальный идентификатор слота
	Category string    `json:"category"` // Категория слота
	Start    time.Time `json:"start"`    // Время начала
	End      time.Time `json:"end"`      // Время окончания
	UserID   *int      `json:"user_id"`  // Идентификатор владельца, nil — слот свободен
}

// DummySlot используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в TimeSlot.
// Даты приходят в виде строк формата RFC3339, чтобы их можно было валидировать и парсить вручную.
type DummySlot struct {
	Category string `json:"category" validate:"required"` // Категория слота
	Start    string `json:"start" validate:"required"`    // Время начала в формате RFC3339
	End      string `json:"end" validate:"required"`      // Время окончания в формате RFC3339
}
