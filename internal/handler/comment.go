package handler

import (
	"log/slog"
	"net/http"

	scrumSvc "scrumboard/internal/domain/services/scrum"
	"scrumboard/internal/httputil"
)

// CommentHandler handles item comment HTTP requests
type CommentHandler struct {
	commentService scrumSvc.CommentService
	logger         *slog.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService scrumSvc.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		logger:         logger,
	}
}

// ListComments retrieves an item's comments
// GET /api/items/{id}/comments
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	itemID, ok := PathID(w, r, "id", "Item ID")
	if !ok {
		return
	}

	comments, err := h.commentService.ListComments(r.Context(), httputil.GetUserID(r), itemID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, comments)
}

// CreateComment adds a comment to an item
// POST /api/items/{id}/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	itemID, ok := PathID(w, r, "id", "Item ID")
	if !ok {
		return
	}

	var req scrumSvc.CommentRequest
	if !parseBody(w, r, &req) {
		return
	}

	comment, err := h.commentService.CreateComment(r.Context(), httputil.GetUserID(r), itemID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, comment)
}

// UpdateComment edits the caller's own comment
// PATCH /api/comments/{id}
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(w, r, "id", "Comment ID")
	if !ok {
		return
	}

	var req scrumSvc.CommentRequest
	if !parseBody(w, r, &req) {
		return
	}

	res, err := h.commentService.UpdateComment(r.Context(), httputil.GetUserID(r), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondResult(w, &res.Result, res.Value)
}

// DeleteComment deletes a comment
// DELETE /api/comments/{id}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(w, r, "id", "Comment ID")
	if !ok {
		return
	}

	res, err := h.commentService.DeleteComment(r.Context(), httputil.GetUserID(r), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondResult(w, res, nil)
}
