package api

import (
	"database/sql"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/unilost/unilost/internal/store"
)

// ClaimsHandler handles claim submission.
type ClaimsHandler struct {
	DB *sql.DB
}

type createClaimRequest struct {
	ItemID int64 `json:"itemId"`
}

// Create handles POST /api/claims. The friendly duplicate check runs first;
// the store's unique constraint catches the race where two submissions for
// the same (item, claimer) pair pass that check concurrently.
func (h *ClaimsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, codeUnauthenticated, "not authenticated")
		return
	}

	var req createClaimRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, codeValidation, "invalid request body")
		return
	}

	claimer, err := store.GetUser(r.Context(), h.DB, claims.UserID)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve claimer")
		jsonError(w, http.StatusInternalServerError, codeInternal, "internal error")
		return
	}
	if claimer == nil {
		jsonError(w, http.StatusNotFound, codeNotFound, "user not found")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, req.ItemID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get item")
		jsonError(w, http.StatusInternalServerError, codeInternal, "internal error")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, codeNotFound, "item not found")
		return
	}

	existing, err := store.GetClaimByItemAndClaimer(r.Context(), h.DB, item.ID, claimer.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check existing claim")
		jsonError(w, http.StatusInternalServerError, codeInternal, "internal error")
		return
	}
	if existing != nil {
		jsonError(w, http.StatusBadRequest, codeDuplicateClaim, "you have already submitted a claim for this item")
		return
	}

	claim, err := store.CreateClaim(r.Context(), h.DB, item.ID, claimer.ID, item.Title, claimer.Name, claimer.Email)
	if err == store.ErrDuplicateClaim {
		jsonError(w, http.StatusBadRequest, codeDuplicateClaim, "you have already submitted a claim for this item")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to create claim")
		jsonError(w, http.StatusInternalServerError, codeInternal, "failed to create claim")
		return
	}

	log.Info().Int64("claim_id", claim.ID).Int64("item_id", item.ID).Str("claimer", claimer.Email).Msg("claim submitted")
	jsonResponse(w, http.StatusCreated, claim)
}
