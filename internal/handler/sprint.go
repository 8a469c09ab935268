package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	scrumSvc "scrumboard/internal/domain/services/scrum"
	"scrumboard/internal/httputil"
)

// SprintHandler handles sprint HTTP requests
type SprintHandler struct {
	sprintService scrumSvc.SprintService
	logger        *slog.Logger
}

// NewSprintHandler creates a new sprint handler
func NewSprintHandler(sprintService scrumSvc.SprintService, logger *slog.Logger) *SprintHandler {
	return &SprintHandler{
		sprintService: sprintService,
		logger:        logger,
	}
}

// sprintPayload accepts dates as "2006-01-02" or RFC 3339
type sprintPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

func (p *sprintPayload) toRequest() (*scrumSvc.SprintRequest, error) {
	start, err := parseDate(p.StartDate)
	if err != nil {
		return nil, fmt.Errorf("start_date: %w", err)
	}
	end, err := parseDate(p.EndDate)
	if err != nil {
		return nil, fmt.Errorf("end_date: %w", err)
	}
	return &scrumSvc.SprintRequest{
		Name:        p.Name,
		Description: p.Description,
		StartDate:   start,
		EndDate:     end,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("is required")
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD, got %q", s)
	}
	return t, nil
}

func (h *SprintHandler) decode(w http.ResponseWriter, r *http.Request) (*scrumSvc.SprintRequest, bool) {
	var payload sprintPayload
	if !parseBody(w, r, &payload) {
		return nil, false
	}
	req, err := payload.toRequest()
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return req, true
}

// ListSprints retrieves a project's sprints
// GET /api/projects/{id}/sprints
func (h *SprintHandler) ListSprints(w http.ResponseWriter, r *http.Request) {
	projectID, ok := PathID(w, r, "id", "Project ID")
	if !ok {
		return
	}

	sprints, err := h.sprintService.ListSprints(r.Context(), httputil.GetUserID(r), projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, sprints)
}

// CreateSprint schedules a new sprint after the project's latest one
// POST /api/projects/{id}/sprints
func (h *SprintHandler) CreateSprint(w http.ResponseWriter, r *http.Request) {
	projectID, ok := PathID(w, r, "id", "Project ID")
	if !ok {
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	res, err := h.sprintService.CreateSprint(r.Context(), httputil.GetUserID(r), projectID, req)
	if err != nil {
		handleError(w, err)
		return
	}
	if !res.Success {
		httputil.RespondResult(w, &res.Result, nil)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, res.Value)
}

// GetSprint retrieves a sprint by ID
// GET /api/sprints/{id}
func (h *SprintHandler) GetSprint(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(w, r, "id", "Sprint ID")
	if !ok {
		return
	}

	sprint, err := h.sprintService.GetSprint(r.Context(), httputil.GetUserID(r), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, sprint)
}

// UpdateSprint reschedules or renames a sprint
// PUT /api/sprints/{id}
func (h *SprintHandler) UpdateSprint(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(w, r, "id", "Sprint ID")
	if !ok {
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	res, err := h.sprintService.UpdateSprint(r.Context(), httputil.GetUserID(r), id, req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondResult(w, &res.Result, res.Value)
}

// DeleteSprint deletes a sprint and its items
// DELETE /api/sprints/{id}
func (h *SprintHandler) DeleteSprint(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(w, r, "id", "Sprint ID")
	if !ok {
		return
	}

	res, err := h.sprintService.DeleteSprint(r.Context(), httputil.GetUserID(r), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondResult(w, res, nil)
}
