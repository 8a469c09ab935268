package handler

import (
	"log/slog"
	"net/http"

	scrumSvc "scrumboard/internal/domain/services/scrum"
	"scrumboard/internal/httputil"
)

// RelationHandler handles item relation HTTP requests
type RelationHandler struct {
	relationService scrumSvc.RelationService
	logger          *slog.Logger
}

// NewRelationHandler creates a new relation handler
func NewRelationHandler(relationService scrumSvc.RelationService, logger *slog.Logger) *RelationHandler {
	return &RelationHandler{
		relationService: relationService,
		logger:          logger,
	}
}

// ListRelatedItems retrieves the items related to an item
// GET /api/items/{id}/relations
func (h *RelationHandler) ListRelatedItems(w http.ResponseWriter, r *http.Request) {
	itemID, ok := PathID(w, r, "id", "Item ID")
	if !ok {
		return
	}

	items, err := h.relationService.ListRelatedItems(r.Context(), httputil.GetUserID(r), itemID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, items)
}

// CreateRelation relates two items
// POST /api/items/{id}/relations
func (h *RelationHandler) CreateRelation(w http.ResponseWriter, r *http.Request) {
	itemID, ok := PathID(w, r, "id", "Item ID")
	if !ok {
		return
	}

	var req struct {
		ItemID string `json:"item_id"`
	}
	if !parseBody(w, r, &req) {
		return
	}
	if !validUUID(&req.ItemID) {
		httputil.RespondError(w, http.StatusBadRequest, "invalid item_id format")
		return
	}

	relation, err := h.relationService.CreateRelation(r.Context(), httputil.GetUserID(r), itemID, req.ItemID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, relation)
}

// DeleteRelation removes the relation between two items in either direction
// DELETE /api/items/{id}/relations/{otherId}
func (h *RelationHandler) DeleteRelation(w http.ResponseWriter, r *http.Request) {
	itemID, ok := PathID(w, r, "id", "Item ID")
	if !ok {
		return
	}
	otherID, ok := PathID(w, r, "otherId", "Related item ID")
	if !ok {
		return
	}

	res, err := h.relationService.DeleteRelation(r.Context(), httputil.GetUserID(r), itemID, otherID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondResult(w, res, nil)
}
