package api

import (
	"database/sql"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/rs/zerolog/log"

	"github.com/unilost/unilost/internal/imaging"
	"github.com/unilost/unilost/internal/model"
	"github.com/unilost/unilost/internal/store"
)

// maxReportFormSize bounds the multipart report form, photo included.
const maxReportFormSize = 10 << 20

// ItemsHandler handles the item catalog endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

type createItemRequest struct {
	Title       string
	Description string
	Category    string
	Location    string
	ContactInfo string
	Status      string
}

// Validate runs the report validation rules.
func (r createItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.Category, validation.Required),
		validation.Field(&r.Location, validation.Required),
		validation.Field(&r.Status, validation.Required, validation.In(model.ItemStatusLost, model.ItemStatusFound)),
	)
}

type updateItemRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Status      *string `json:"status"`
	Location    *string `json:"location"`
	ContactInfo *string `json:"contactInfo"`
}

// List handles GET /api/items. Public, newest first.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
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

// Get handles GET /api/items/{id}. Public.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusNotFound, codeNotFound, "item not found")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get item")
		jsonError(w, http.StatusInternalServerError, codeInternal, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, codeNotFound, "item not found")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// Create handles POST /api/items. The report arrives as a multipart form
// with an optional photo; the photo is validated and then discarded, since
// durable image storage is not part of this deployment.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, codeUnauthenticated, "not authenticated")
		return
	}

	if err := r.ParseMultipartForm(maxReportFormSize); err != nil {
		jsonError(w, http.StatusBadRequest, codeValidation, "invalid multipart form")
		return
	}

	req := createItemRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Location:    r.FormValue("location"),
		ContactInfo: r.FormValue("contactInfo"),
		Status:      r.FormValue("status"),
	}
	if err := req.Validate(); err != nil {
		jsonError(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	if file, _, err := r.FormFile("image"); err == nil {
		_, perr := imaging.Process(file)
		file.Close()
		if perr != nil {
			jsonError(w, http.StatusBadRequest, codeValidation, perr.Error())
			return
		}
	}

	reporter, err := store.GetUser(r.Context(), h.DB, claims.UserID)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve reporter")
		jsonError(w, http.StatusInternalServerError, codeInternal, "internal error")
		return
	}
	if reporter == nil {
		jsonError(w, http.StatusNotFound, codeNotFound, "user not found")
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, model.Item{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Status:      req.Status,
		Location:    req.Location,
		ContactInfo: req.ContactInfo,
		ReportedBy:  reporter.Name,
		ReporterID:  &reporter.ID,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create item")
		jsonError(w, http.StatusInternalServerError, codeInternal, "failed to create item")
		return
	}

	log.Info().Int64("item_id", item.ID).Str("status", item.Status).Str("reported_by", reporter.Email).Msg("item reported")
	jsonResponse(w, http.StatusCreated, item)
}

// Update handles PUT /api/items/{id}. Partial merge of the provided fields;
// only the reporter or an admin may modify a listing.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	item, ok := h.fetchOwned(w, r)
	if !ok {
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, codeValidation, "invalid request body")
		return
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Status != nil {
		if !model.ValidItemStatus(*req.Status) {
			jsonError(w, http.StatusBadRequest, codeValidation, "status must be lost or found")
			return
		}
		item.Status = *req.Status
	}
	if req.Location != nil {
		item.Location = *req.Location
	}
	if req.ContactInfo != nil {
		item.ContactInfo = *req.ContactInfo
	}

	if err := store.UpdateItem(r.Context(), h.DB, *item); err != nil {
		log.Error().Err(err).Msg("failed to update item")
		jsonError(w, http.StatusInternalServerError, codeInternal, "failed to update item")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}. Only the reporter or an admin may
// remove a listing.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	item, ok := h.fetchOwned(w, r)
	if !ok {
		return
	}

	if err := store.DeleteItem(r.Context(), h.DB, item.ID); err != nil {
		log.Error().Err(err).Msg("failed to delete item")
		jsonError(w, http.StatusInternalServerError, codeInternal, "failed to delete item")
		return
	}

	log.Info().Int64("item_id", item.ID).Msg("item deleted")
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item successfully deleted"})
}

// fetchOwned resolves the item from the path and enforces the
// owner-or-admin policy. On failure it writes the response and returns
// ok=false.
func (h *ItemsHandler) fetchOwned(w http.ResponseWriter, r *http.Request) (*model.Item, bool) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, codeUnauthenticated, "not authenticated")
		return nil, false
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusNotFound, codeNotFound, "item not found")
		return nil, false
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get item")
		jsonError(w, http.StatusInternalServerError, codeInternal, "failed to get item")
		return nil, false
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, codeNotFound, "item not found")
		return nil, false
	}

	isOwner := item.ReporterID != nil && *item.ReporterID == claims.UserID
	if !isOwner && claims.Role != model.RoleAdmin {
		jsonError(w, http.StatusForbidden, codeForbidden, "only the reporter or an admin may modify this item")
		return nil, false
	}

	return item, true
}
