package api

import (
	"database/sql"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/unilost/unilost/internal/auth"
	"github.com/unilost/unilost/internal/model"
	"github.com/unilost/unilost/internal/store"
)

// AuthHandler handles registration, login, and the current-user lookup.
type AuthHandler struct {
	DB        *sql.DB
	JWTSecret string
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate runs the registration validation rules.
func (r registerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(model.MinPasswordLength, 0)),
		validation.Field(&r.Role, validation.In(model.RoleStudent, model.RoleFaculty, model.RoleAdmin)),
	)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, codeValidation, "invalid request body")
		return
	}

	if req.Role == "" {
		req.Role = model.RoleStudent
	}
	if err := req.Validate(); err != nil {
		jsonError(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, codeInternal, "failed to hash password")
		return
	}

	user, err := store.CreateUser(r.Context(), h.DB, req.Name, req.Email, req.Phone, string(hash), req.Role)
	if err == store.ErrDuplicateEmail {
		jsonError(w, http.StatusBadRequest, codeDuplicateIdentity, "user with this email already exists")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to create user")
		jsonError(w, http.StatusInternalServerError, codeInternal, "failed to create user")
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, user.ID, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")
		jsonError(w, http.StatusInternalServerError, codeInternal, "failed to generate token")
		return
	}

	log.Info().Str("email", user.Email).Str("role", user.Role).Msg("user registered")
	w.Header().Set(TokenHeader, token)
	jsonResponse(w, http.StatusCreated, sessionResponse{Token: token, User: user})
}

// Login handles POST /api/auth/login. Unknown email and wrong password are
// reported identically so accounts cannot be enumerated.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, codeValidation, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, codeValidation, "email and password required")
		return
	}

	user, err := store.GetUserByEmail(r.Context(), h.DB, req.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to look up user")
		jsonError(w, http.StatusInternalServerError, codeInternal, "internal error")
		return
	}
	if user == nil {
		jsonError(w, http.StatusBadRequest, codeInvalidCredentials, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn().Str("email", req.Email).Str("remote", r.RemoteAddr).Msg("login failed")
		jsonError(w, http.StatusBadRequest, codeInvalidCredentials, "invalid credentials")
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, user.ID, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")
		jsonError(w, http.StatusInternalServerError, codeInternal, "failed to generate token")
		return
	}

	log.Info().Str("email", user.Email).Str("role", user.Role).Msg("user logged in")
	w.Header().Set(TokenHeader, token)
	jsonResponse(w, http.StatusOK, sessionResponse{Token: token, User: user})
}

// Me handles GET /api/auth. It re-fetches the account so a token held for a
// since-deleted user reports not found rather than echoing stale data.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, codeUnauthenticated, "not authenticated")
		return
	}

	user, err := store.GetUser(r.Context(), h.DB, claims.UserID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")
		jsonError(w, http.StatusInternalServerError, codeInternal, "internal error")
		return
	}
	if user == nil {
		jsonError(w, http.StatusNotFound, codeNotFound, "user not found")
		return
	}

	jsonResponse(w, http.StatusOK, user)
}
