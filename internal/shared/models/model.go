package models

import "time"

// PhoneDTO — контактный номер в HTTP API.
//
// Передаётся при регистрации и возвращается в профиле пользователя.
// Сервис аутентификации эти данные не интерпретирует.
type PhoneDTO struct {
	Number      int64  `json:"number"`
	CityCode    int    `json:"city_code"`
	CountryCode string `json:"country_code"`
}

// SignUpRequest — запрос регистрации пользователя.
//
// Используется в:
//
//	POST /user/sign-up
//
// Поля:
//   - Email/Password обязательны (валидируются на сервере)
//   - Name опционально
//   - Phones опциональны и сохраняются как есть
type SignUpRequest struct {
	Name     string     `json:"name,omitempty"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Phones   []PhoneDTO `json:"phones,omitempty"`
}

// LoginRequest — запрос входа по email и паролю.
//
// Используется в:
//
//	POST /user/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse — результат успешной аутентификации.
//
// Возвращается всеми тремя операциями (sign-up, login, login по токену).
// Содержит публичные поля пользователя и свежевыпущенный токен.
// PasswordHash наружу не отдаётся никогда.
//
// LastLogin == null, если пользователь ещё ни разу не входил
// (сразу после регистрации).
type SessionResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name,omitempty"`
	Active    bool       `json:"active"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	Token     string     `json:"token"`
}

// MeResponse — профиль текущего пользователя.
//
// Используется в:
//
//	GET /me (требует Bearer токен)
//
// Токен не возвращается: /me не продлевает сессию.
type MeResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name,omitempty"`
	Active    bool       `json:"active"`
	Phones    []PhoneDTO `json:"phones,omitempty"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
}
