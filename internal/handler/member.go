package handler

import (
	"log/slog"
	"net/http"

	scrumSvc "scrumboard/internal/domain/services/scrum"
	"scrumboard/internal/httputil"
)

// MemberHandler handles project membership HTTP requests
type MemberHandler struct {
	memberService scrumSvc.MemberService
	logger        *slog.Logger
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService scrumSvc.MemberService, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		logger:        logger,
	}
}

// ListMembers retrieves the members of a project
// GET /api/projects/{id}/members
func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	projectID, ok := PathID(w, r, "id", "Project ID")
	if !ok {
		return
	}

	members, err := h.memberService.ListMembers(r.Context(), httputil.GetUserID(r), projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, members)
}

// AddMember adds a user to a project
// POST /api/projects/{id}/members
func (h *MemberHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	projectID, ok := PathID(w, r, "id", "Project ID")
	if !ok {
		return
	}

	var req scrumSvc.AddMemberRequest
	if !parseBody(w, r, &req) {
		return
	}

	membership, err := h.memberService.AddMember(r.Context(), httputil.GetUserID(r), projectID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, membership)
}

// ChangeRole changes a member's role
// PATCH /api/projects/{id}/members/{userId}
func (h *MemberHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	projectID, ok := PathID(w, r, "id", "Project ID")
	if !ok {
		return
	}
	userID := r.PathValue("userId")

	var req scrumSvc.ChangeRoleRequest
	if !parseBody(w, r, &req) {
		return
	}

	membership, err := h.memberService.ChangeRole(r.Context(), httputil.GetUserID(r), projectID, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, membership)
}

// RemoveMember removes a member, or lets the caller leave the project
// DELETE /api/projects/{id}/members/{userId}
func (h *MemberHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	projectID, ok := PathID(w, r, "id", "Project ID")
	if !ok {
		return
	}
	userID := r.PathValue("userId")

	if err := h.memberService.RemoveMember(r.Context(), httputil.GetUserID(r), projectID, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
