package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-user-auth/internal/server/config"
	"github.com/IvanChernomyrdin/go-user-auth/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-user-auth/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-user-auth/internal/shared/errors"
)

// AuthService реализует бизнес-логику аутентификации.
//
// Ответственность:
//   - регистрация пользователей (с валидацией email и пароля)
//   - аутентификация по паролю
//   - аутентификация по ранее выданному токену
//   - выпуск нового токена при каждом успешном входе (rotation)
//
// Токены stateless: выпуск нового токена не отзывает предыдущий,
// старый остаётся валидным до собственного истечения.
type AuthService struct {
	users UsersRepo

	hasher crypto.Hasher
	jwt    crypto.JWTConfig
}

// Session — результат успешной аутентификации.
// Не персистится, собирается на каждый вызов заново.
type Session struct {
	ID        uuid.UUID
	Email     string
	Name      string
	Active    bool
	Phones    []models.Phone
	LastLogin *time.Time
	CreatedAt time.Time
	Token     string
}

// RegisterInput — входные данные регистрации.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phones   []models.Phone
}

// NewAuthService создаёт AuthService с зависимостями и настройками из конфига.
func NewAuthService(users UsersRepo, cfg *config.Config) *AuthService {
	return &AuthService{
		users:  users,
		hasher: newHasher(cfg),
		jwt: crypto.JWTConfig{
			Issuer:     cfg.Auth.Issuer,
			Audience:   cfg.Auth.Audience,
			SigningKey: cfg.Auth.JWT.SigningKey,
			AccessTTL:  cfg.Auth.AccessTTL,
		},
	}
}

// Register регистрирует нового пользователя.
//
// Валидация: email обязателен и валиден; пароль 8-12 символов,
// только буквы/цифры, минимум одна заглавная и две цифры.
//
// Порядок:
//  1. проверка существования email (оптимизация, не гарантия);
//  2. хэширование пароля;
//  3. вставка нового пользователя (active=true, last_login=null);
//  4. выпуск токена.
//
// Возвращает *serr.ValidationError при невалидных данных,
// ErrAlreadyExists если email уже зарегистрирован (в том числе
// при гонке — дубликат ловит уникальный индекс БД).
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (Session, error) {
	if err := validateSignUp(in.Email, in.Password); err != nil {
		return Session{}, err
	}

	_, err := s.users.GetByEmail(ctx, in.Email)
	if err == nil {
		return Session{}, serr.ErrAlreadyExists
	}
	if !errors.Is(err, serr.ErrNotFound) {
		return Session{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return Session{}, serr.ErrInternal
	}

	u := &models.User{
		ID:           uuid.New(),
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Phones:       in.Phones,
		Active:       true,
		LastLogin:    nil,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, u); err != nil {
		return Session{}, err
	}

	return s.newSession(u)
}

// Login аутентифицирует пользователя по email и паролю.
//
// Поведение:
//   - не раскрывает факт существования email: и "не найден",
//     и "пароль не совпал" возвращаются как ErrInvalidCredentials;
//   - при успехе обновляет last_login и выпускает новый токен.
//
// Ошибки:
//   - ErrInvalidInput
//   - ErrInvalidCredentials
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	if email == "" || password == "" {
		return Session{}, serr.ErrInvalidInput
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// не палим существование email
		if errors.Is(err, serr.ErrNotFound) {
			return Session{}, serr.ErrInvalidCredentials
		}
		return Session{}, err
	}

	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		return Session{}, serr.ErrInternal
	}
	if !ok {
		return Session{}, serr.ErrInvalidCredentials
	}

	if err := s.touchLastLogin(ctx, u); err != nil {
		return Session{}, err
	}

	return s.newSession(u)
}

// LoginWithToken аутентифицирует пользователя по ранее выданному токену.
//
// Порядок:
//  1. проверка подписи/срока токена, извлечение email из subject;
//  2. поиск пользователя;
//  3. обновление last_login;
//  4. выпуск нового токена (старый остаётся валидным до своего exp).
//
// Ошибки:
//   - ErrUnauthorized — токен битый/просрочен/с чужой подписью;
//   - ErrInvalidCredentials — subject больше не существует.
func (s *AuthService) LoginWithToken(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, serr.ErrInvalidInput
	}

	email, err := crypto.ParseAccessToken(token, s.jwt)
	if err != nil {
		return Session{}, serr.ErrUnauthorized
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return Session{}, serr.ErrInvalidCredentials
		}
		return Session{}, err
	}

	if err := s.touchLastLogin(ctx, u); err != nil {
		return Session{}, err
	}

	return s.newSession(u)
}

// Me возвращает пользователя по email из проверенного токена.
// Не обновляет last_login и не выпускает токен.
func (s *AuthService) Me(ctx context.Context, email string) (*models.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return nil, serr.ErrUnauthorized
		}
		return nil, err
	}
	return u, nil
}

// touchLastLogin проставляет время входа в БД и в модели.
func (s *AuthService) touchLastLogin(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, u.ID, now); err != nil {
		return err
	}
	u.LastLogin = &now
	return nil
}

// newSession выпускает токен и собирает результат аутентификации.
func (s *AuthService) newSession(u *models.User) (Session, error) {
	token, err := crypto.NewAccessToken(u.Email, s.jwt)
	if err != nil {
		return Session{}, serr.ErrInternal
	}

	return Session{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Active:    u.Active,
		Phones:    u.Phones,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
		Token:     token,
	}, nil
}
