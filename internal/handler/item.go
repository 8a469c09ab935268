package handler

import (
	"log/slog"
	"net/http"

	scrumSvc "scrumboard/internal/domain/services/scrum"
	"scrumboard/internal/httputil"
)

// ItemHandler handles work item HTTP requests
type ItemHandler struct {
	itemService scrumSvc.ItemService
	logger      *slog.Logger
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService scrumSvc.ItemService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		logger:      logger,
	}
}

// ListItems retrieves a sprint's items
// GET /api/sprints/{id}/items?include_archived=true
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	sprintID, ok := PathID(w, r, "id", "Sprint ID")
	if !ok {
		return
	}
	includeArchived := httputil.QueryBool(r, "include_archived", false)

	items, err := h.itemService.ListItems(r.Context(), httputil.GetUserID(r), sprintID, includeArchived)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, items)
}

// CreateItem creates an item in a sprint
// POST /api/sprints/{id}/items
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	sprintID, ok := PathID(w, r, "id", "Sprint ID")
	if !ok {
		return
	}

	var req scrumSvc.CreateItemRequest
	if !parseBody(w, r, &req) {
		return
	}
	if !validUUID(req.ParentID) {
		httputil.RespondError(w, http.StatusBadRequest, "invalid parent_id format")
		return
	}

	item, err := h.itemService.CreateItem(r.Context(), httputil.GetUserID(r), sprintID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, item)
}

// GetItem retrieves an item by ID
// GET /api/items/{id}
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(w, r, "id", "Item ID")
	if !ok {
		return
	}

	item, err := h.itemService.GetItem(r.Context(), httputil.GetUserID(r), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, item)
}

// UpdateItem replaces an item with its proposed state
// PUT /api/items/{id}
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(w, r, "id", "Item ID")
	if !ok {
		return
	}

	var req scrumSvc.UpdateItemRequest
	if !parseBody(w, r, &req) {
		return
	}
	if !validUUID(req.ParentID) {
		httputil.RespondError(w, http.StatusBadRequest, "invalid parent_id format")
		return
	}
	if req.SprintID != "" && !validUUID(&req.SprintID) {
		httputil.RespondError(w, http.StatusBadRequest, "invalid sprint_id format")
		return
	}

	res, err := h.itemService.UpdateItem(r.Context(), httputil.GetUserID(r), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondResult(w, &res.Result, res.Value)
}

// ArchiveItem toggles an item's archived flag
// POST /api/items/{id}/archive
func (h *ItemHandler) ArchiveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(w, r, "id", "Item ID")
	if !ok {
		return
	}

	res, err := h.itemService.ArchiveItem(r.Context(), httputil.GetUserID(r), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondResult(w, &res.Result, res.Value)
}

// DeleteItem deletes an item
// DELETE /api/items/{id}
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(w, r, "id", "Item ID")
	if !ok {
		return
	}

	res, err := h.itemService.DeleteItem(r.Context(), httputil.GetUserID(r), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondResult(w, res, nil)
}
