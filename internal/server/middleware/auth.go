// Package middleware содержит HTTP middleware сервера.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/IvanChernomyrdin/go-user-auth/internal/server/crypto"
)

// ctxKey используется как тип ключа для хранения значений в context.Context.
// Отдельный тип предотвращает коллизии ключей между пакетами.
type ctxKey string

// userEmailKey — ключ контекста, под которым хранится email аутентифицированного пользователя.
const userEmailKey ctxKey = "user_email"

// JWTVerifier инкапсулирует параметры проверки JWT access-токенов.
//
// Используется в HTTP middleware для:
//   - проверки подписи токена (HS256), срока жизни, issuer и audience
//   - извлечения email пользователя из claims.Subject
type JWTVerifier struct {
	cfg crypto.JWTConfig
}

// NewJWTVerifier создаёт новый JWTVerifier с заданными параметрами.
func NewJWTVerifier(cfg crypto.JWTConfig) *JWTVerifier {
	return &JWTVerifier{cfg: cfg}
}

// UserEmailFromContext извлекает email аутентифицированного пользователя из контекста.
//
// Возвращает:
//   - email
//   - false, если пользователь не аутентифицирован
func UserEmailFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(userEmailKey)
	s, ok := v.(string)
	return s, ok
}

// AuthMiddleware возвращает HTTP middleware для проверки JWT access-токенов.
//
// Middleware:
//   - ожидает заголовок Authorization: Bearer <token>
//   - валидирует токен через crypto.ParseAccessToken
//   - сохраняет email из subject в context.Context
//
// В случае ошибки возвращает HTTP 401 Unauthorized.
func (v *JWTVerifier) AuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := ExtractBearer(r.Header.Get("Authorization"))
			if tokenStr == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			email, err := crypto.ParseAccessToken(tokenStr, v.cfg)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userEmailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractBearer извлекает JWT из заголовка Authorization.
//
// Ожидаемый формат:
//
//	Authorization: Bearer <token>
//
// Возвращает пустую строку, если формат некорректен.
func ExtractBearer(h string) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
