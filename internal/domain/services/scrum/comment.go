package scrum

import (
	"context"

	"scrumboard/internal/domain"
	"scrumboard/internal/domain/models/scrum"
)

// CommentRequest carries comment content
type CommentRequest struct {
	Content string `json:"content"`
}

// CommentService defines business logic operations for item comments
type CommentService interface {
	ListComments(ctx context.Context, callerID, itemID string) ([]scrum.Comment, error)
	CreateComment(ctx context.Context, callerID, itemID string, req *CommentRequest) (*scrum.Comment, error)
	UpdateComment(ctx context.Context, callerID, id string, req *CommentRequest) (*domain.ResultOf[scrum.Comment], error)
	DeleteComment(ctx context.Context, callerID, id string) (*domain.Result, error)
}
