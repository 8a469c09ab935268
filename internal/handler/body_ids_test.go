package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"scrumboard/internal/domain"
	models "scrumboard/internal/domain/models/scrum"
	scrumSvc "scrumboard/internal/domain/services/scrum"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const itemID = "3f2504e0-4f89-41d3-9a0c-0305e82c3301"

// recordingRelations captures the IDs the handler passes through
type recordingRelations struct {
	scrumSvc.RelationService
	first, second string
}

func (s *recordingRelations) CreateRelation(_ context.Context, _, firstID, secondID string) (*models.ItemRelation, error) {
	s.first, s.second = firstID, secondID
	if firstID == secondID {
		return nil, domain.NewBadRequest("an item cannot be related to itself")
	}
	return &models.ItemRelation{FirstItemID: firstID, SecondItemID: secondID}, nil
}

// recordingItems captures the requests the handler passes through
type recordingItems struct {
	scrumSvc.ItemService
	create *scrumSvc.CreateItemRequest
	update *scrumSvc.UpdateItemRequest
}

func (s *recordingItems) CreateItem(_ context.Context, _, sprintID string, req *scrumSvc.CreateItemRequest) (*models.Item, error) {
	s.create = req
	return &models.Item{ID: itemID, SprintID: sprintID}, nil
}

func (s *recordingItems) UpdateItem(_ context.Context, _, id string, req *scrumSvc.UpdateItemRequest) (*domain.ResultOf[models.Item], error) {
	s.update = req
	return domain.Accepted(&models.Item{ID: id, SprintID: req.SprintID}), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func jsonRequest(method, target, pathID, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", pathID)
	return req
}

func TestRelationHandler_CreateRelation_CanonicalBodyID(t *testing.T) {
	tests := []struct {
		name       string
		bodyID     string
		wantStatus int
		wantSecond string
	}{
		{name: "upper case of the same item", bodyID: strings.ToUpper(itemID), wantStatus: http.StatusBadRequest, wantSecond: itemID},
		{name: "urn form of the same item", bodyID: "urn:uuid:" + itemID, wantStatus: http.StatusBadRequest, wantSecond: itemID},
		{name: "other item in upper case", bodyID: "0B6F3A52-3C4D-4E5F-8A9B-0C1D2E3F4A5B", wantStatus: http.StatusCreated, wantSecond: "0b6f3a52-3c4d-4e5f-8a9b-0c1d2e3f4a5b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &recordingRelations{}
			h := NewRelationHandler(svc, discardLogger())

			rec := httptest.NewRecorder()
			h.CreateRelation(rec, jsonRequest(http.MethodPost, "/api/items/x/relations", itemID,
				`{"item_id":"`+tt.bodyID+`"}`))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, itemID, svc.first)
			assert.Equal(t, tt.wantSecond, svc.second)
		})
	}
}

func TestRelationHandler_CreateRelation_MalformedBodyID(t *testing.T) {
	svc := &recordingRelations{}
	h := NewRelationHandler(svc, discardLogger())

	rec := httptest.NewRecorder()
	h.CreateRelation(rec, jsonRequest(http.MethodPost, "/api/items/x/relations", itemID, `{"item_id":"item-2"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "item_id")
	assert.Empty(t, svc.first)
}

func TestItemHandler_CanonicalBodyIDs(t *testing.T) {
	const (
		sprintID = "0b6f3a52-3c4d-4e5f-8a9b-0c1d2e3f4a5b"
		parentID = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
	)

	t.Run("create", func(t *testing.T) {
		svc := &recordingItems{}
		h := NewItemHandler(svc, discardLogger())

		rec := httptest.NewRecorder()
		h.CreateItem(rec, jsonRequest(http.MethodPost, "/api/sprints/x/items", sprintID,
			`{"type":"task","title":"t","parent_id":"`+strings.ToUpper(parentID)+`"}`))

		assert.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, svc.create)
		require.NotNil(t, svc.create.ParentID)
		assert.Equal(t, parentID, *svc.create.ParentID)
	})

	t.Run("update", func(t *testing.T) {
		svc := &recordingItems{}
		h := NewItemHandler(svc, discardLogger())

		rec := httptest.NewRecorder()
		h.UpdateItem(rec, jsonRequest(http.MethodPut, "/api/items/x", itemID,
			`{"sprint_id":"`+strings.ToUpper(sprintID)+`","type":"task","status":"new","title":"t","parent_id":"`+strings.ToUpper(parentID)+`"}`))

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, svc.update)
		assert.Equal(t, sprintID, svc.update.SprintID)
		require.NotNil(t, svc.update.ParentID)
		assert.Equal(t, parentID, *svc.update.ParentID)
	})

	t.Run("malformed sprint id", func(t *testing.T) {
		svc := &recordingItems{}
		h := NewItemHandler(svc, discardLogger())

		rec := httptest.NewRecorder()
		h.UpdateItem(rec, jsonRequest(http.MethodPut, "/api/items/x", itemID,
			`{"sprint_id":"sprint-2","type":"task","status":"new","title":"t"}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, svc.update)
	})
}
