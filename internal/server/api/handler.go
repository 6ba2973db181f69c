// Package api реализует HTTP-слой сервиса аутентификации.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и сообщения;
//   - DTO-маппинг (сервисная Session -> SessionResponse).
//
// Маршруты регистрируются в internal/server/net/http.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/IvanChernomyrdin/go-user-auth/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-user-auth/internal/server/service"
	"github.com/IvanChernomyrdin/go-user-auth/internal/shared/logger"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - Verifier: компонент проверки JWT для защищённых маршрутов.
type Handler struct {
	Svc      *service.Services
	Log      *logger.HTTPLogger
	Verifier *middleware.JWTVerifier
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
func NewHandler(svc *service.Services, log *logger.HTTPLogger, verifier *middleware.JWTVerifier) *Handler {
	return &Handler{
		Svc:      svc,
		Log:      log,
		Verifier: verifier,
	}
}

// ErrorResponse стандартный формат ошибки API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FieldErrorResponse — формат ответа при ошибках валидации:
// массив ошибок по полям под ключом error.
type FieldErrorResponse struct {
	Error []FieldErrorDetail `json:"error"`
}

// FieldErrorDetail — одна ошибка валидации поля.
type FieldErrorDetail struct {
	Field  string `json:"field"`
	Detail string `json:"detail"`
}

// Вспомогательная функция вывода ошибки
func WriteError(w http.ResponseWriter, status int, err error) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: err.Error(),
	})
}

// writeJSON сериализует ответ со статусом status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
