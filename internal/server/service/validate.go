package service

import (
	"regexp"
	"strings"

	"github.com/IvanChernomyrdin/go-user-auth/internal/server/config"
	"github.com/IvanChernomyrdin/go-user-auth/internal/server/crypto"
	serr "github.com/IvanChernomyrdin/go-user-auth/internal/shared/errors"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// validateSignUp проверяет email и пароль при регистрации.
//
// Требования к паролю: 8-12 символов, только латинские буквы и цифры,
// минимум одна заглавная буква и минимум две цифры.
// regexp в Go без lookahead, поэтому считаем символы напрямую.
func validateSignUp(email, password string) error {
	var fields []serr.FieldError

	if strings.TrimSpace(email) == "" {
		fields = append(fields, serr.FieldError{Field: "email", Detail: "email is required"})
	} else if !emailRe.MatchString(email) {
		fields = append(fields, serr.FieldError{Field: "email", Detail: "email format is invalid"})
	}

	if password == "" {
		fields = append(fields, serr.FieldError{Field: "password", Detail: "password is required"})
	} else if !validPassword(password) {
		fields = append(fields, serr.FieldError{Field: "password", Detail: "password must be 8-12 alphanumeric characters with at least one uppercase letter and two digits"})
	}

	if len(fields) > 0 {
		return serr.NewValidationError(fields...)
	}
	return nil
}

func validPassword(p string) bool {
	if len(p) < 8 || len(p) > 12 {
		return false
	}
	var upper, digits int
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			upper++
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
			digits++
		default:
			return false
		}
	}
	return upper >= 1 && digits >= 2
}

// newHasher выбирает реализацию хэширования пароля по конфигу.
// Значение password.hasher провалидировано при старте (argon2id|bcrypt).
func newHasher(cfg *config.Config) crypto.Hasher {
	if strings.ToLower(cfg.Password.Hasher) == "bcrypt" {
		return crypto.BcryptHasher{Cost: cfg.Password.Bcrypt.Cost}
	}
	return crypto.Argon2Hasher{Params: crypto.Argon2Params{
		Time:      cfg.Password.Argon2.Time,
		MemoryKiB: cfg.Password.Argon2.MemoryKiB,
		Threads:   cfg.Password.Argon2.Threads,
		KeyLen:    cfg.Password.Argon2.KeyLen,
		SaltLen:   cfg.Password.Argon2.SaltLen,
	}}
}
