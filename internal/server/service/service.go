// Package service содержит бизнес-логику приложения.
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-user-auth/internal/server/config"
	"github.com/IvanChernomyrdin/go-user-auth/internal/server/models"
)

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users  UsersRepo
	Health HealthRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Auth   *AuthService
	Health *HealthService
}

// NewServices собирает все сервисы приложения.
// cfg нужен AuthService (параметры хэширования пароля и JWT).
func NewServices(repos Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:   NewAuthService(repos.Users, cfg),
		Health: &HealthService{repo: repos.Health},
	}
}

// HealthRepo — минимально нужное для health-check.
type HealthRepo interface {
	Ping(ctx context.Context) error
}

// HealthService отвечает на проверки живости сервиса.
type HealthService struct {
	repo HealthRepo
}

// Check проверяет доступность зависимостей (сейчас — только БД).
func (s *HealthService) Check(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// UsersRepo — репозиторий пользователей.
//
// Create обязан возвращать ErrAlreadyExists при нарушении уникальности
// email: гонка двух конкурирующих регистраций решается на стороне БД.
type UsersRepo interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
