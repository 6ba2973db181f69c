// Package repository реализует доступ к хранилищу пользователей (PostgreSQL).
//
// Уникальность email обеспечивается уникальным индексом в БД:
// сервисная проверка существования — только оптимизация, последнее
// слово за constraint'ом (нарушение 23505 -> ErrAlreadyExists).
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/IvanChernomyrdin/go-user-auth/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-user-auth/internal/shared/errors"
)

type UsersRepository struct {
	db *sql.DB
}

func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// Create вставляет нового пользователя.
//
// Телефоны сериализуются в jsonb-колонку, чтобы вставка оставалась
// одним запросом. Дубликат email возвращает ErrAlreadyExists,
// даже если конкурирующая регистрация проскочила сервисную проверку.
func (r *UsersRepository) Create(ctx context.Context, u *models.User) error {
	phones, err := json.Marshal(u.Phones)
	if err != nil {
		return serr.ErrInternal
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, password_hash, phones, active, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		u.ID, u.Email, u.Name, u.PasswordHash, phones, u.Active, u.CreatedAt,
	)

	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23505" { // unique_violation
				return serr.ErrAlreadyExists
			}
		}
		return serr.ErrInternal
	}

	return nil
}

// GetByEmail возвращает пользователя по email.
//
// Email сравнивается как есть (без нормализации регистра).
// Если пользователя нет — ErrNotFound.
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var (
		u      models.User
		phones []byte
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, name, password_hash, phones, active, last_login, created_at
		 FROM users WHERE email=$1`,
		email,
	).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &phones, &u.Active, &u.LastLogin, &u.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, serr.ErrNotFound
		}
		return nil, serr.ErrInternal
	}

	if len(phones) > 0 {
		if err := json.Unmarshal(phones, &u.Phones); err != nil {
			return nil, serr.ErrInternal
		}
	}

	return &u, nil
}

// Ping проверяет доступность базы данных.
func (r *UsersRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// UpdateLastLogin проставляет время последнего входа.
//
// Вызывается при каждой успешной аутентификации (пароль или токен).
func (r *UsersRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_login=$2 WHERE id=$1`,
		id, at,
	)
	if err != nil {
		return serr.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		return serr.ErrInternal
	}
	if n == 0 {
		return serr.ErrNotFound
	}
	return nil
}
