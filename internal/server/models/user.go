// Серверная модель пользователя
package models

import (
	"time"

	"github.com/google/uuid"
)

// Phone — контактный номер пользователя.
// Аутентификацией не используется, хранится как есть.
type Phone struct {
	Number      int64  `json:"number"`
	CityCode    int    `json:"city_code"`
	CountryCode string `json:"country_code"`
}

// User — запись пользователя в хранилище.
//
// Email уникален среди всех пользователей и хранится ровно так,
// как его прислал клиент (без нормализации регистра).
// PasswordHash — односторонний хэш, plaintext никогда не сохраняется
// и не возвращается наружу.
// LastLogin — nil до первой успешной аутентификации, обновляется
// при каждом успешном входе (по паролю или по токену).
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Phones       []Phone
	Active       bool
	LastLogin    *time.Time
	CreatedAt    time.Time
}
