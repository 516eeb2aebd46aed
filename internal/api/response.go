package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Machine-readable error codes. Every error response carries one of these
// plus a human-readable message; stack traces and store errors never reach
// the client.
const (
	codeValidation         = "validation_error"
	codeDuplicateIdentity  = "duplicate_identity"
	codeDuplicateClaim     = "duplicate_claim"
	codeInvalidCredentials = "invalid_credentials"
	codeUnauthenticated    = "unauthenticated"
	codeForbidden          = "forbidden"
	codeNotFound           = "not_found"
	codeInvalidStatus      = "invalid_status"
	codeInternal           = "internal_error"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Error().Err(err).Msg("encoding response")
		}
	}
}

// jsonError writes a JSON error response with a machine code and a
// human-readable message.
func jsonError(w http.ResponseWriter, status int, code, message string) {
	jsonResponse(w, status, errorBody{Error: code, Message: message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
