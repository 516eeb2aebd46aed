package api

import (
	"database/sql"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/unilost/unilost/internal/model"
	"github.com/unilost/unilost/internal/store"
)

// AdminHandler handles the admin dashboard endpoints: stats, claim review,
// item verification, and user management. All routes are gated on the admin
// role by the router.
type AdminHandler struct {
	DB *sql.DB
}

type decideClaimRequest struct {
	Status string `json:"status"`
}

type adminCreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate runs the user creation validation rules.
func (r adminCreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(model.MinPasswordLength, 0)),
		validation.Field(&r.Role, validation.Required, validation.In(model.RoleStudent, model.RoleFaculty, model.RoleAdmin)),
	)
}

type adminUpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
	Role  *string `json:"role"`
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := store.CountStats(r.Context(), h.DB)
	if err != nil {
		log.Error().Err(err).Msg("failed to compute stats")
		jsonError(w, http.StatusInternalServerError, codeInternal, "failed to compute stats")
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}

// ListClaims handles GET /api/admin/claims.
func (h *AdminHandler) ListClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := store.ListClaims(r.Context(), h.DB)
	if err != nil {
		log.Error().Err(err).Msg("failed to list claims")
		jsonError(w, http.StatusInternalServerError, codeInternal, "failed to list claims")
		return
	}
	if claims == nil {
		claims = []model.Claim{}
	}
	jsonResponse(w, http.StatusOK, claims)
}

// DecideClaim handles PUT /api/admin/claims/{id}. The decision must be
// approved or rejected; approval does not write back to the item, whose
// lost/found status is immutable after creation.
func (h *AdminHandler) DecideClaim(w http.ResponseWriter, r *http.Request) {
	var req decideClaimRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, codeValidation, "invalid request body")
		return
	}

	if !model.ValidDecision(req.Status) {
		jsonError(w, http.StatusBadRequest, codeInvalidStatus, "status must be approved or rejected")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusNotFound, codeNotFound, "claim not found")
		return
	}

	claim, err := store.GetClaim(r.Context(), h.DB, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get claim")
		jsonError(w, http.StatusInternalServerError, codeInternal, "internal error")
		return
	}
	if claim == nil {
		jsonError(w, http.StatusNotFound, codeNotFound, "claim not found")
		return
	}

	updated, err := store.SetClaimStatus(r.Context(), h.DB, id, req.Status)
	if err != nil {
		log.Error().Err(err).Msg("failed to set claim status")
		jsonError(w, http.StatusInternalServerError, codeInternal, "failed to update claim")
		return
	}

	log.Info().Int64("claim_id", id).Str("status", req.Status).Msg("claim decided")
	jsonResponse(w, http.StatusOK, updated)
}

// ListItems handles GET /api/admin/items.
func (h *AdminHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), h.DB)
	if err != nil {
		log.Error().Err(err).Msg("failed to list items")
		jsonError(w, http.StatusInternalServerError, codeInternal, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// VerifyItem handles PUT /api/admin/items/{id}/verify. Toggles the verified
// flag: applying it twice restores the original value.
func (h *AdminHandler) VerifyItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusNotFound, codeNotFound, "item not found")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get item")
		jsonError(w, http.StatusInternalServerError, codeInternal, "internal error")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, codeNotFound, "item not found")
		return
	}

	updated, err := store.ToggleVerified(r.Context(), h.DB, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to toggle verification")
		jsonError(w, http.StatusInternalServerError, codeInternal, "failed to update item")
		return
	}

	log.Info().Int64("item_id", id).Bool("verified", updated.Verified).Msg("item verification toggled")
	jsonResponse(w, http.StatusOK, updated)
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := store.ListUsers(r.Context(), h.DB)
	if err != nil {
		log.Error().Err(err).Msg("failed to list users")
		jsonError(w, http.StatusInternalServerError, codeInternal, "failed to list users")
		return
	}
	if users == nil {
		users = []model.User{}
	}
	jsonResponse(w, http.StatusOK, users)
}

// CreateUser handles POST /api/admin/users.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req adminCreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, codeValidation, "invalid request body")
		return
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
		jsonError(w, http.StatusConflict, codeDuplicateIdentity, "user with this email already exists")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to create user")
		jsonError(w, http.StatusInternalServerError, codeInternal, "failed to create user")
		return
	}

	admin := GetClaims(r.Context())
	log.Info().Int64("admin_id", admin.UserID).Str("email", user.Email).Str("role", user.Role).Msg("user created by admin")
	jsonResponse(w, http.StatusCreated, user)
}

// UpdateUser handles PUT /api/admin/users/{id}. Partial merge of name,
// email, phone, and role; passwords are only set at creation.
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusNotFound, codeNotFound, "user not found")
		return
	}

	var req adminUpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, codeValidation, "invalid request body")
		return
	}

	user, err := store.GetUser(r.Context(), h.DB, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")
		jsonError(w, http.StatusInternalServerError, codeInternal, "internal error")
		return
	}
	if user == nil {
		jsonError(w, http.StatusNotFound, codeNotFound, "user not found")
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Role != nil {
		if !model.ValidRole(*req.Role) {
			jsonError(w, http.StatusBadRequest, codeValidation, "invalid role")
			return
		}
		user.Role = *req.Role
	}

	err = store.UpdateUser(r.Context(), h.DB, user.ID, user.Name, user.Email, user.Phone, user.Role)
	if err == store.ErrDuplicateEmail {
		jsonError(w, http.StatusConflict, codeDuplicateIdentity, "email already in use")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to update user")
		jsonError(w, http.StatusInternalServerError, codeInternal, "failed to update user")
		return
	}

	updated, err := store.GetUser(r.Context(), h.DB, id)
	if err != nil || updated == nil {
		log.Error().Err(err).Msg("failed to reload user")
		jsonError(w, http.StatusInternalServerError, codeInternal, "internal error")
		return
	}

	jsonResponse(w, http.StatusOK, updated)
}

// DeleteUser handles DELETE /api/admin/users/{id}. Items and claims the
// user created keep their denormalized display fields.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusNotFound, codeNotFound, "user not found")
		return
	}

	user, err := store.GetUser(r.Context(), h.DB, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")
		jsonError(w, http.StatusInternalServerError, codeInternal, "internal error")
		return
	}
	if user == nil {
		jsonError(w, http.StatusNotFound, codeNotFound, "user not found")
		return
	}

	if err := store.DeleteUser(r.Context(), h.DB, id); err != nil {
		log.Error().Err(err).Msg("failed to delete user")
		jsonError(w, http.StatusInternalServerError, codeInternal, "failed to delete user")
		return
	}

	admin := GetClaims(r.Context())
	log.Info().Int64("admin_id", admin.UserID).Str("email", user.Email).Msg("user deleted by admin")
	jsonResponse(w, http.StatusOK, map[string]string{"message": "user deleted successfully"})
}
