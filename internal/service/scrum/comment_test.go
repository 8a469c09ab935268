package scrum

import (
	"context"
	"strings"
	"testing"

	"scrumboard/internal/config"
	"scrumboard/internal/domain"
	models "scrumboard/internal/domain/models/scrum"
	scrumSvc "scrumboard/internal/domain/services/scrum"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_CreateComment(t *testing.T) {
	tests := []struct {
		name    string
		caller  string
		content string
		wantErr error
	}{
		{name: "developer comments", caller: "dana", content: "looks good"},
		{name: "owner comments", caller: "owner", content: "ship it"},
		{name: "observer cannot comment", caller: "olli", content: "hm", wantErr: domain.ErrForbidden},
		{name: "outsider cannot comment", caller: "outsider", content: "hm", wantErr: domain.ErrForbidden},
		{name: "empty content", caller: "dana", content: "", wantErr: domain.ErrValidation},
		{name: "content too long", caller: "dana", content: strings.Repeat("x", config.MaxCommentLength+1), wantErr: domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := newTeamBoard()
			item := tb.addItem(models.Item{SprintID: tb.sprint, Title: "t"})

			c, err := tb.svc.Comments.CreateComment(context.Background(), tt.caller, item,
				&scrumSvc.CommentRequest{Content: tt.content})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, tb.comments)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.caller, c.UserID)
			assert.Equal(t, item, c.ItemID)
			assert.Contains(t, tb.comments, c.ID)
		})
	}
}

func TestCommentService_UpdateComment(t *testing.T) {
	tb := newTeamBoard()
	ctx := context.Background()
	item := tb.addItem(models.Item{SprintID: tb.sprint, Title: "t"})
	c, err := tb.svc.Comments.CreateComment(ctx, "dana", item, &scrumSvc.CommentRequest{Content: "first"})
	require.NoError(t, err)

	_, err = tb.svc.Comments.UpdateComment(ctx, "sam", c.ID, &scrumSvc.CommentRequest{Content: "edited"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, "first", tb.comments[c.ID].Content)

	res, err := tb.svc.Comments.UpdateComment(ctx, "dana", c.ID, &scrumSvc.CommentRequest{Content: "edited"})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "edited", res.Value.Content)
	assert.Equal(t, "edited", tb.comments[c.ID].Content)

	res, err = tb.svc.Comments.UpdateComment(ctx, "dana", "gone", &scrumSvc.CommentRequest{Content: "edited"})
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestCommentService_DeleteComment(t *testing.T) {
	tests := []struct {
		name    string
		caller  string
		wantErr error
	}{
		{name: "author deletes", caller: "dana"},
		{name: "scrum master deletes", caller: "sam"},
		{name: "owner deletes", caller: "owner"},
		{name: "other developer cannot delete", caller: "dev2", wantErr: domain.ErrForbidden},
		{name: "observer cannot delete", caller: "olli", wantErr: domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := newTeamBoard()
			ctx := context.Background()
			item := tb.addItem(models.Item{SprintID: tb.sprint, Title: "t"})
			c, err := tb.svc.Comments.CreateComment(ctx, "dana", item, &scrumSvc.CommentRequest{Content: "hello"})
			require.NoError(t, err)

			res, err := tb.svc.Comments.DeleteComment(ctx, tt.caller, c.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, tb.comments, c.ID)
				return
			}
			require.NoError(t, err)
			assert.True(t, res.Success)
			assert.NotContains(t, tb.comments, c.ID)
		})
	}
}

func TestCommentService_DeleteComment_Missing(t *testing.T) {
	tb := newTeamBoard()
	res, err := tb.svc.Comments.DeleteComment(context.Background(), "dana", "gone")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "not found")
}
