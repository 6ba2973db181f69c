package tests

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/IvanChernomyrdin/go-user-auth/internal/agent/api"
)

// Клиент ходит и по самоподписанному TLS (InsecureSkipVerify для dev)
func TestClient_TLS(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL)

	var resp struct {
		OK bool `json:"ok"`
	}
	if err := c.GetJSON("/ping", &resp, ""); err != nil {
		t.Fatalf("GetJSON over TLS failed: %v", err)
	}
	if !resp.OK {
		t.Fatal("expected decoded response")
	}
}

// Заголовки: Accept всегда, Content-Type только с телом, Bearer при наличии токена
func TestClient_Headers(t *testing.T) {
	var gotAccept, gotContentType, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotContentType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL)

	if err := c.PostJSON("/user/login", map[string]string{"email": "a@x.com"}, nil, "tok123"); err != nil {
		t.Fatalf("PostJSON failed: %v", err)
	}
	if gotAccept != "application/json" {
		t.Fatalf("expected Accept application/json, got %q", gotAccept)
	}
	if gotContentType != "application/json" {
		t.Fatalf("expected Content-Type application/json, got %q", gotContentType)
	}
	if gotAuth != "Bearer tok123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}

	// GET без тела и без токена
	if err := c.GetJSON("/me", nil, ""); err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if gotContentType != "" {
		t.Fatalf("GET must not set Content-Type, got %q", gotContentType)
	}
	if gotAuth != "" {
		t.Fatalf("expected no Authorization header, got %q", gotAuth)
	}
}

// Не-2xx: ошибка с текстом тела ответа
func TestClient_ErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"user already exists"}`))
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL)

	err := c.PostJSON("/user/sign-up", map[string]string{}, nil, "")
	if err == nil {
		t.Fatal("expected error for 409")
	}
	if !strings.Contains(err.Error(), "user already exists") {
		t.Fatalf("expected body text in error, got %q", err.Error())
	}
}

// Не-2xx с пустым телом: в ошибке статус ответа
func TestClient_ErrorStatusFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL)

	err := c.GetJSON("/me", nil, "")
	if err == nil {
		t.Fatal("expected error for 500")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Fatalf("expected status in error, got %q", err.Error())
	}
}

// Завершающие слэши baseURL нормализуются
func TestClient_BaseURLTrim(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL + "///")
	if err := c.GetJSON("/me", nil, ""); err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if gotPath != "/me" {
		t.Fatalf("expected path /me, got %q", gotPath)
	}
}

// Пустое тело 2xx-ответа не считается ошибкой
func TestClient_EmptyBodyOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL)

	var resp struct{}
	if err := c.GetJSON("/me", &resp, ""); err != nil {
		t.Fatalf("empty body must not be an error: %v", err)
	}
}
