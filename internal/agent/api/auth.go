// В этом файле описаны методы клиента для работы с эндпоинтами
// аутентификации: регистрация, вход по паролю, вход по токену
// и получение информации о текущем пользователе.
//
// Типы запросов/ответов общие с сервером (internal/shared/models).
package api

import (
	models "github.com/IvanChernomyrdin/go-user-auth/internal/shared/models"
)

// SignUp выполняет регистрацию пользователя на сервере.
//
// Метод отправляет POST запрос на /user/sign-up и возвращает SessionResponse
// с выпущенным токеном. В случае ошибки возвращает непустую ошибку и пустой ответ.
func (c *Client) SignUp(req models.SignUpRequest) (models.SessionResponse, error) {
	var resp models.SessionResponse
	err := c.PostJSON("/user/sign-up", req, &resp, "")
	return resp, err
}

// Login выполняет вход пользователя по email и паролю.
//
// Метод отправляет POST запрос на /user/login и возвращает SessionResponse
// с новым токеном. В случае ошибки возвращает непустую ошибку и пустой ответ.
func (c *Client) Login(email, password string) (models.SessionResponse, error) {
	var resp models.SessionResponse
	err := c.PostJSON("/user/login", models.LoginRequest{Email: email, Password: password}, &resp, "")
	return resp, err
}

// LoginWithToken выполняет вход по ранее выданному токену.
//
// Метод отправляет GET запрос на /user/login с заголовком
// Authorization: Bearer <token> и возвращает SessionResponse
// с новым (ротированным) токеном.
func (c *Client) LoginWithToken(token string) (models.SessionResponse, error) {
	var resp models.SessionResponse
	err := c.GetJSON("/user/login", &resp, token)
	return resp, err
}

// Me запрашивает профиль текущего пользователя.
//
// Метод отправляет GET запрос на /me и использует token для авторизации.
// В случае ошибки возвращает непустую ошибку и пустой ответ.
func (c *Client) Me(token string) (models.MeResponse, error) {
	var resp models.MeResponse
	err := c.GetJSON("/me", &resp, token)
	return resp, err
}
