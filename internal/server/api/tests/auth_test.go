package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-user-auth/internal/server/api"
	"github.com/IvanChernomyrdin/go-user-auth/internal/server/config"
	"github.com/IvanChernomyrdin/go-user-auth/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-user-auth/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-user-auth/internal/server/models"
	nethttp "github.com/IvanChernomyrdin/go-user-auth/internal/server/net/http"
	"github.com/IvanChernomyrdin/go-user-auth/internal/server/service"
	"github.com/IvanChernomyrdin/go-user-auth/internal/server/service/mocks"
	serr "github.com/IvanChernomyrdin/go-user-auth/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-user-auth/internal/shared/logger"
	dto "github.com/IvanChernomyrdin/go-user-auth/internal/shared/models"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			Issuer:    "test-issuer",
			Audience:  "test-audience",
			AccessTTL: time.Minute,
			JWT: config.JWTConfig{
				Algorithm:  "HS256",
				SigningKey: "supersecretkeysupersecretkey123456",
			},
		},
		Password: config.PasswordConfig{
			Hasher: "argon2id",
			Argon2: config.Argon2Config{
				Time:      1,
				MemoryKiB: 64 * 1024,
				Threads:   1,
				KeyLen:    32,
				SaltLen:   16,
			},
		},
	}
}

// healthStub — всегда живой HealthRepo для тестов
type healthStub struct{ err error }

func (s healthStub) Ping(ctx context.Context) error { return s.err }

// newTestServer поднимает полный HTTP-стек (роутер, middleware, хендлеры)
// поверх замоканного репозитория.
func newTestServer(t *testing.T) (*httptest.Server, *mocks.MockUsersRepo, *config.Config) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	cfg := testConfig()
	repo := mocks.NewMockUsersRepo(ctrl)

	svc := service.NewServices(service.Repositories{Users: repo, Health: healthStub{}}, cfg)
	verifier := middleware.NewJWTVerifier(crypto.JWTConfig{
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
		SigningKey: cfg.Auth.JWT.SigningKey,
		AccessTTL:  cfg.Auth.AccessTTL,
	})
	h := api.NewHandler(svc, logger.NewHTTPLogger(), verifier)

	srv := httptest.NewServer(nethttp.NewRouter(h))
	t.Cleanup(srv.Close)
	return srv, repo, cfg
}

func issueToken(t *testing.T, cfg *config.Config, email string, ttl time.Duration) string {
	t.Helper()
	token, err := crypto.NewAccessToken(email, crypto.JWTConfig{
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
		SigningKey: cfg.Auth.JWT.SigningKey,
		AccessTTL:  ttl,
	})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	h := crypto.Argon2Hasher{Params: crypto.Argon2Params{Time: 1, MemoryKiB: 64 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}}
	digest, err := h.Hash(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return digest
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != api.JsonContentType {
		t.Fatalf("unexpected Content-Type: %q", ct)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// POST /user/sign-up: 201, в теле сессия с токеном, last_login пуст
func TestSignUp_Created(t *testing.T) {
	srv, repo, _ := newTestServer(t)

	repo.EXPECT().GetByEmail(gomock.Any(), "ivan@example.com").Return(nil, serr.ErrNotFound)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	body := `{"name":"Ivan","email":"ivan@example.com","password":"abcDef12",
		"phones":[{"number":1234567890,"city_code":495,"country_code":"+7"}]}`

	resp, err := http.Post(srv.URL+"/user/sign-up", api.JsonContentType, strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var sess dto.SessionResponse
	decodeBody(t, resp, &sess)

	if sess.Token == "" {
		t.Fatal("expected token in response")
	}
	if sess.Email != "ivan@example.com" || sess.Name != "Ivan" {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if !sess.Active {
		t.Fatal("new user must be active")
	}
	if sess.LastLogin != nil {
		t.Fatal("last_login must be empty after sign-up")
	}
}

// Битый JSON -> 400
func TestSignUp_BadJSON(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/user/sign-up", api.JsonContentType, strings.NewReader(`{"email":`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var e api.ErrorResponse
	decodeBody(t, resp, &e)
	if e.Error == "" {
		t.Fatal("expected error message in body")
	}
}

// Ошибки валидации -> 400 с массивом по полям
func TestSignUp_ValidationErrors(t *testing.T) {
	srv, _, _ := newTestServer(t)

	body := `{"email":"not-an-email","password":"short"}`
	resp, err := http.Post(srv.URL+"/user/sign-up", api.JsonContentType, strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var e api.FieldErrorResponse
	decodeBody(t, resp, &e)

	got := map[string]bool{}
	for _, f := range e.Error {
		if f.Detail == "" {
			t.Fatalf("empty detail for field %q", f.Field)
		}
		got[f.Field] = true
	}
	if !got["email"] || !got["password"] {
		t.Fatalf("expected errors for email and password, got %+v", e.Error)
	}
}

// Повторная регистрация -> 409
func TestSignUp_Conflict(t *testing.T) {
	srv, repo, _ := newTestServer(t)

	repo.EXPECT().GetByEmail(gomock.Any(), "ivan@example.com").
		Return(&models.User{ID: uuid.New(), Email: "ivan@example.com"}, nil)

	body := `{"email":"ivan@example.com","password":"abcDef12"}`
	resp, err := http.Post(srv.URL+"/user/sign-up", api.JsonContentType, strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

// POST /user/login: 200, выпущен новый токен, last_login проставлен
func TestLogin_OK(t *testing.T) {
	srv, repo, _ := newTestServer(t)

	id := uuid.New()
	u := &models.User{
		ID:           id,
		Email:        "ivan@example.com",
		Name:         "Ivan",
		PasswordHash: hashFor(t, "abcDef12"),
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	repo.EXPECT().GetByEmail(gomock.Any(), "ivan@example.com").Return(u, nil)
	repo.EXPECT().UpdateLastLogin(gomock.Any(), id, gomock.Any()).Return(nil)

	body := `{"email":"ivan@example.com","password":"abcDef12"}`
	resp, err := http.Post(srv.URL+"/user/login", api.JsonContentType, strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var sess dto.SessionResponse
	decodeBody(t, resp, &sess)
	if sess.Token == "" {
		t.Fatal("expected token in response")
	}
	if sess.LastLogin == nil {
		t.Fatal("expected last_login after login")
	}
}

// Неверный пароль -> 401, тело не раскрывает причину
func TestLogin_InvalidCredentials(t *testing.T) {
	srv, repo, _ := newTestServer(t)

	u := &models.User{
		ID:           uuid.New(),
		Email:        "ivan@example.com",
		PasswordHash: hashFor(t, "abcDef12"),
	}
	repo.EXPECT().GetByEmail(gomock.Any(), "ivan@example.com").Return(u, nil)

	body := `{"email":"ivan@example.com","password":"wrongPass12"}`
	resp, err := http.Post(srv.URL+"/user/login", api.JsonContentType, strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	var e api.ErrorResponse
	decodeBody(t, resp, &e)
	if e.Error != serr.ErrInvalidCredentials.Error() {
		t.Fatalf("unexpected error body: %q", e.Error)
	}
}

// Несуществующий email -> тот же 401, что и неверный пароль
func TestLogin_UnknownEmailSame401(t *testing.T) {
	srv, repo, _ := newTestServer(t)

	repo.EXPECT().GetByEmail(gomock.Any(), "ghost@example.com").Return(nil, serr.ErrNotFound)

	body := `{"email":"ghost@example.com","password":"abcDef12"}`
	resp, err := http.Post(srv.URL+"/user/login", api.JsonContentType, strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	var e api.ErrorResponse
	decodeBody(t, resp, &e)
	if e.Error != serr.ErrInvalidCredentials.Error() {
		t.Fatalf("unexpected error body: %q", e.Error)
	}
}

// GET /user/login: вход по токену, в ответе ротация токена
func TestLoginWithToken_OK(t *testing.T) {
	srv, repo, cfg := newTestServer(t)

	id := uuid.New()
	u := &models.User{ID: id, Email: "ivan@example.com", Active: true, CreatedAt: time.Now().UTC()}
	repo.EXPECT().GetByEmail(gomock.Any(), "ivan@example.com").Return(u, nil)
	repo.EXPECT().UpdateLastLogin(gomock.Any(), id, gomock.Any()).Return(nil)

	old := issueToken(t, cfg, "ivan@example.com", time.Minute)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/user/login", nil)
	req.Header.Set("Authorization", "Bearer "+old)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var sess dto.SessionResponse
	decodeBody(t, resp, &sess)
	if sess.Token == "" {
		t.Fatal("expected rotated token")
	}
}

// GET /user/login без заголовка -> 400
func TestLoginWithToken_MissingHeader(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/user/login")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

// GET /user/login с просроченным токеном -> 401
func TestLoginWithToken_Expired(t *testing.T) {
	srv, _, cfg := newTestServer(t)

	expired := issueToken(t, cfg, "ivan@example.com", -time.Minute)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/user/login", nil)
	req.Header.Set("Authorization", "Bearer "+expired)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

// GET /me за JWT middleware: профиль с телефонами, без токена в теле
func TestMe_OK(t *testing.T) {
	srv, repo, cfg := newTestServer(t)

	u := &models.User{
		ID:        uuid.New(),
		Email:     "ivan@example.com",
		Name:      "Ivan",
		Phones:    []models.Phone{{Number: 1234567890, CityCode: 495, CountryCode: "+7"}},
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	repo.EXPECT().GetByEmail(gomock.Any(), "ivan@example.com").Return(u, nil)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/me", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, cfg, "ivan@example.com", time.Minute))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var me dto.MeResponse
	decodeBody(t, resp, &me)
	if me.Email != "ivan@example.com" || me.Name != "Ivan" {
		t.Fatalf("unexpected profile: %+v", me)
	}
	if len(me.Phones) != 1 || me.Phones[0].CityCode != 495 {
		t.Fatalf("unexpected phones: %+v", me.Phones)
	}
}

// GET /ping: 200 при живой БД
func TestPing(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/ping")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

// GET /me без токена -> 401 на уровне middleware
func TestMe_Unauthorized(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/me")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}
