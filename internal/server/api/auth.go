// HTTP-хендлеры регистрации и входа (по паролю и по токену)
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/IvanChernomyrdin/go-user-auth/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-user-auth/internal/server/models"
	"github.com/IvanChernomyrdin/go-user-auth/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-user-auth/internal/shared/errors"
	dto "github.com/IvanChernomyrdin/go-user-auth/internal/shared/models"
)

// SignUp обрабатывает регистрацию пользователя.
//
// Ответы:
//   - 201 Created: регистрация успешна, в теле SessionResponse с токеном;
//   - 400 Bad Request: неверный JSON или ошибки валидации (детали по полям);
//   - 409 Conflict: пользователь с таким email уже существует;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Sign up
// @Description  Registers a new user and returns a session with a fresh token.
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        request body models.SignUpRequest true "Sign up request"
// @Success      201 {object} models.SessionResponse
// @Failure      400 {object} FieldErrorResponse "Validation errors"
// @Failure      409 {object} ErrorResponse "Email already registered"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /user/sign-up [post]
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req dto.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	sess, err := h.Svc.Auth.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phones:   phonesFromDTO(req.Phones),
	})
	if err != nil {
		h.writeAuthError(w, err, "sign-up failed")
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse(sess))
}

// Login обрабатывает вход пользователя по email и паролю.
//
// Ответы:
//   - 200 OK: успешный вход, в теле SessionResponse с новым токеном;
//   - 400 Bad Request: неверный JSON или пустые поля;
//   - 401 Unauthorized: неверные учётные данные (не различаем
//     "email не найден" и "пароль не совпал");
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Login
// @Description  Authenticates by email/password and returns a session with a fresh token.
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        request body models.LoginRequest true "Login request"
// @Success      200 {object} models.SessionResponse
// @Failure      400 {object} ErrorResponse "Invalid input or bad JSON"
// @Failure      401 {object} ErrorResponse "Invalid credentials"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /user/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	sess, err := h.Svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeAuthError(w, err, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse(sess))
}

// LoginWithToken обрабатывает вход по ранее выданному токену.
//
// Токен передаётся в заголовке Authorization: Bearer <token>.
// При успехе выпускается новый токен (rotation); старый остаётся
// валидным до собственного истечения, т.к. токены stateless.
//
// Ответы:
//   - 200 OK: успешный вход, в теле SessionResponse с новым токеном;
//   - 400 Bad Request: заголовок отсутствует или не в формате Bearer;
//   - 401 Unauthorized: токен битый/просрочен либо пользователь удалён;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Login with token
// @Description  Re-authenticates by bearer token and returns a session with a rotated token.
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.SessionResponse
// @Failure      400 {object} ErrorResponse "Missing or malformed Authorization header"
// @Failure      401 {object} ErrorResponse "Invalid or expired token"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /user/login [get]
func (h *Handler) LoginWithToken(w http.ResponseWriter, r *http.Request) {
	token := middleware.ExtractBearer(r.Header.Get("Authorization"))
	if token == "" {
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		return
	}

	sess, err := h.Svc.Auth.LoginWithToken(r.Context(), token)
	if err != nil {
		h.writeAuthError(w, err, "token login failed")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse(sess))
}

// Me возвращает профиль текущего пользователя.
//
// Маршрут защищён JWT middleware: email берётся из проверенного токена.
// last_login не обновляется и новый токен не выпускается.
//
// Ответы:
//   - 200 OK: профиль пользователя;
//   - 401 Unauthorized: токен невалиден или пользователь удалён;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Current user
// @Description  Returns the profile of the authenticated user.
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.MeResponse
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.UserEmailFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	u, err := h.Svc.Auth.Me(r.Context(), email)
	if err != nil {
		h.writeAuthError(w, err, "me failed")
		return
	}

	writeJSON(w, http.StatusOK, dto.MeResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Active:    u.Active,
		Phones:    phonesToDTO(u.Phones),
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	})
}

// writeAuthError маппит доменные ошибки на HTTP-статусы.
func (h *Handler) writeAuthError(w http.ResponseWriter, err error, logMsg string) {
	var vErr *serr.ValidationError

	switch {
	case errors.As(err, &vErr):
		details := make([]FieldErrorDetail, 0, len(vErr.Fields))
		for _, f := range vErr.Fields {
			details = append(details, FieldErrorDetail{Field: f.Field, Detail: f.Detail})
		}
		writeJSON(w, http.StatusBadRequest, FieldErrorResponse{Error: details})
	case errors.Is(err, serr.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
	case errors.Is(err, serr.ErrAlreadyExists):
		WriteError(w, http.StatusConflict, serr.ErrAlreadyExists)
	case errors.Is(err, serr.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, serr.ErrInvalidCredentials)
	case errors.Is(err, serr.ErrUnauthorized):
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
	default:
		h.Log.Logger.Sugar().Error(logMsg)
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
	}
}

// sessionResponse собирает DTO из сервисной Session.
func sessionResponse(s service.Session) dto.SessionResponse {
	return dto.SessionResponse{
		ID:        s.ID.String(),
		Email:     s.Email,
		Name:      s.Name,
		Active:    s.Active,
		LastLogin: s.LastLogin,
		CreatedAt: s.CreatedAt,
		Token:     s.Token,
	}
}

func phonesFromDTO(in []dto.PhoneDTO) []models.Phone {
	if len(in) == 0 {
		return nil
	}
	out := make([]models.Phone, 0, len(in))
	for _, p := range in {
		out = append(out, models.Phone{
			Number:      p.Number,
			CityCode:    p.CityCode,
			CountryCode: p.CountryCode,
		})
	}
	return out
}

func phonesToDTO(in []models.Phone) []dto.PhoneDTO {
	if len(in) == 0 {
		return nil
	}
	out := make([]dto.PhoneDTO, 0, len(in))
	for _, p := range in {
		out = append(out, dto.PhoneDTO{
			Number:      p.Number,
			CityCode:    p.CityCode,
			CountryCode: p.CountryCode,
		})
	}
	return out
}
