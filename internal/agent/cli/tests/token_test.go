package tests

import (
	"strings"
	"testing"
)

// token-login ротирует токен: сервер выдаёт новый, он сохраняется
func TestTokenLogin(t *testing.T) {
	isolateHome(t)
	srv := authServer(t)
	seedToken(t, "seed-token")

	out, err := runCLI(t, "token-login", "--server", srv.URL)
	if err != nil {
		t.Fatalf("token-login failed: %v", err)
	}
	if !strings.Contains(out, "token rotated") {
		t.Fatalf("unexpected output: %q", out)
	}
	if savedToken(t) != "rotated-token" {
		t.Fatalf("rotated token not saved, got %q", savedToken(t))
	}
}

// Без сохранённого токена подсказываем выполнить login
func TestTokenLogin_NoToken(t *testing.T) {
	isolateHome(t)
	srv := authServer(t)

	_, err := runCLI(t, "token-login", "--server", srv.URL)
	if err == nil {
		t.Fatal("expected error without saved token")
	}
	if !strings.Contains(err.Error(), "userauth login") {
		t.Fatalf("unexpected error: %v", err)
	}
}

// Просроченный/чужой токен: ошибка сервера, старый токен остаётся
func TestTokenLogin_Rejected(t *testing.T) {
	isolateHome(t)
	srv := authServer(t)
	seedToken(t, "stale-token")

	if _, err := runCLI(t, "token-login", "--server", srv.URL); err == nil {
		t.Fatal("expected error for rejected token")
	}
	if savedToken(t) != "stale-token" {
		t.Fatal("rejected token-login must not overwrite saved token")
	}
}
