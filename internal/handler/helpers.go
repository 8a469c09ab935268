package handler

import (
	"errors"
	"net/http"

	"scrumboard/internal/domain"
	"scrumboard/internal/httputil"

	"github.com/google/uuid"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var conflictErr *domain.ConflictError

	switch {
	case errors.As(err, &conflictErr):
		problem := httputil.NewProblem(http.StatusConflict, conflictErr.Error())
		problem.Extra = map[string]any{
			"resource_type": conflictErr.ResourceType,
			"resource_id":   conflictErr.ResourceID,
		}
		httputil.RespondProblem(w, problem)
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// PathID reads a UUID path parameter, writing a 400 when it is missing or
// malformed. The returned ID is in canonical form.
func PathID(w http.ResponseWriter, r *http.Request, name, label string) (string, bool) {
	raw := r.PathValue(name)
	if raw == "" {
		httputil.RespondError(w, http.StatusBadRequest, label+" is required")
		return "", false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid "+label+" format")
		return "", false
	}
	return id.String(), true
}

// parseBody decodes the JSON body, writing a 400 on failure
func parseBody(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := httputil.ParseJSON(w, r, dest); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// validUUID reports whether an optional body ID is absent or well formed.
// A well formed ID is rewritten in place to canonical form, matching PathID.
func validUUID(id *string) bool {
	if id == nil {
		return true
	}
	parsed, err := uuid.Parse(*id)
	if err != nil {
		return false
	}
	*id = parsed.String()
	return true
}

// HealthCheck reports that the server is up
// GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
