// Package crypto содержит криптографические примитивы,
// используемые сервером аутентификации.
//
// В частности, пакет отвечает за:
//   - генерацию и подпись JWT access-токенов (identity email в subject);
//   - проверку подписи, срока жизни, issuer и audience токена;
//   - хэширование и проверку паролей пользователей.
package crypto

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig описывает параметры генерации и проверки JWT access-токена.
type JWTConfig struct {
	// Issuer — значение поля iss (кто выдал токен).
	Issuer string
	// Audience — значение поля aud (для кого предназначен токен).
	Audience string
	// SigningKey — секретный ключ для подписи токена (HS256).
	// Загружается один раз при старте, в процессе не ротируется.
	SigningKey string
	// AccessTTL — срок жизни access-токена (по умолчанию 1 час).
	AccessTTL time.Duration
}

// ErrInvalidToken возвращается ParseAccessToken при любой проблеме с токеном:
// неверная подпись, битая структура, истёкший срок, чужой issuer/audience.
var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken создаёт и подписывает JWT access-токен для пользователя.
//
// Токен содержит стандартные RegisteredClaims:
//   - iss (Issuer)
//   - aud (Audience)
//   - sub (email пользователя)
//   - iat (IssuedAt)
//   - exp (ExpiresAt = now + AccessTTL)
//
// Используется алгоритм подписи HS256.
// В случае ошибки подписи возвращается непустая ошибка.
func NewAccessToken(email string, cfg JWTConfig) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Issuer:    cfg.Issuer,
		Audience:  []string{cfg.Audience},
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessTTL)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.SigningKey))
}

// ParseAccessToken проверяет токен и возвращает email из subject.
//
// Проверяется:
//   - подпись (только HS256, ключ из cfg);
//   - срок жизни (exp);
//   - issuer и audience, если заданы в cfg;
//   - непустой subject.
//
// Любая проблема сворачивается в ErrInvalidToken — вызывающему
// не нужно различать причины отказа.
func ParseAccessToken(tokenStr string, cfg JWTConfig) (string, error) {
	claims := &jwt.RegisteredClaims{}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	_, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return []byte(cfg.SigningKey), nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
		return "", ErrInvalidToken
	}

	if cfg.Audience != "" {
		ok := false
		for _, aud := range claims.Audience {
			if aud == cfg.Audience {
				ok = true
				break
			}
		}
		if !ok {
			return "", ErrInvalidToken
		}
	}

	email := strings.TrimSpace(claims.Subject)
	if email == "" {
		return "", ErrInvalidToken
	}
	return email, nil
}
