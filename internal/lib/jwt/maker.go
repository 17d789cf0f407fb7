// Package jwt реализует генерацию и парсинг JWT токенов для аутентификации пользователей.
//
// Maker определяет интерфейс для создания и проверки токенов доступа.
// MakerImpl — конкретная реализация с использованием секретного ключа и срока жизни токена.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
//
// Методы позволяют создавать токен с email пользователя в качестве subject,
// а также разбирать токен и извлекать из него claims.
type Maker interface {
	// GenerateToken создает токен доступа для пользователя с указанным email.
	GenerateToken(email string) (string, error)
	// ParseToken возвращает *AccessClaims, если токен валиден.
	ParseToken(tokenStr string) (*AccessClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
