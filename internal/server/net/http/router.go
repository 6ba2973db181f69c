// Package http реализует маршрутизацию HTTP-слоя сервиса аутентификации.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - логирование выполнения HTTP-запросов;
//   - подключение JWT middleware к защищённым маршрутам.
package http

import (
	"net/http"

	"github.com/IvanChernomyrdin/go-user-auth/internal/server/api"
	"github.com/IvanChernomyrdin/go-user-auth/internal/server/middleware"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - публичные эндпоинты аутентификации под префиксом /user;
//   - middleware логирования для всех запросов;
//   - защищённый JWT маршрут /me.
func NewRouter(h *api.Handler) http.Handler {
	r := chi.NewRouter()
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware())

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	// health-check
	r.Get("/ping", h.Ping)
	// Публичные пути
	r.Route("/user", func(r chi.Router) {
		r.Post("/sign-up", h.SignUp)
		r.Post("/login", h.Login)
		// вход по ранее выданному токену, заголовок Authorization: Bearer
		r.Get("/login", h.LoginWithToken)
	})
	// защищённые пути
	r.Group(func(r chi.Router) {
		// проверка access токена
		r.Use(h.Verifier.AuthMiddleware())
		r.Get("/me", h.Me)
	})

	return r
}
