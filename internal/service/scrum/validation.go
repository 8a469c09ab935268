package scrum

import (
	"errors"
	"fmt"

	"scrumboard/internal/config"
	"scrumboard/internal/domain"
	models "scrumboard/internal/domain/models/scrum"
	scrumSvc "scrumboard/internal/domain/services/scrum"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// invalid wraps an ozzo validation error as a bad request
func invalid(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}

func validateProjectRequest(name, description *string) error {
	return validation.Errors{
		"name": validation.Validate(name,
			validation.Required,
			validation.Length(1, config.MaxProjectNameLength),
		),
		"description": validation.Validate(description,
			validation.Length(0, config.MaxDescriptionLength),
		),
	}.Filter()
}

func validateSprintRequest(req *scrumSvc.SprintRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxSprintNameLength)),
		validation.Field(&req.Description, validation.Length(0, config.MaxDescriptionLength)),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required),
	)
}

func validateCreateItemRequest(req *scrumSvc.CreateItemRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Type, validation.Required, validation.By(validItemType)),
		validation.Field(&req.Status, validation.By(validItemStatus)),
		validation.Field(&req.Title, validation.Required, validation.Length(1, config.MaxItemTitleLength)),
		validation.Field(&req.Description, validation.Length(0, config.MaxDescriptionLength)),
		validation.Field(&req.StoryPoints, validation.Min(0), validation.Max(config.MaxStoryPoints)),
	)
}

func validateUpdateItemRequest(req *scrumSvc.UpdateItemRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Type, validation.Required, validation.By(validItemType)),
		validation.Field(&req.Status, validation.Required, validation.By(validItemStatus)),
		validation.Field(&req.Title, validation.Required, validation.Length(1, config.MaxItemTitleLength)),
		validation.Field(&req.Description, validation.Length(0, config.MaxDescriptionLength)),
		validation.Field(&req.StoryPoints, validation.Min(0), validation.Max(config.MaxStoryPoints)),
	)
}

func validateCommentRequest(req *scrumSvc.CommentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Content, validation.Required, validation.Length(1, config.MaxCommentLength)),
	)
}

func validateAddMemberRequest(req *scrumSvc.AddMemberRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
	)
}

func validItemType(value interface{}) error {
	t, ok := value.(models.ItemType)
	if !ok {
		return errors.New("must be an item type")
	}
	if !t.Valid() {
		return fmt.Errorf("unknown item type %q", t)
	}
	return nil
}

func validItemStatus(value interface{}) error {
	s, ok := value.(models.ItemStatus)
	if !ok {
		return errors.New("must be an item status")
	}
	if s != "" && !s.Valid() {
		return fmt.Errorf("unknown item status %q", s)
	}
	return nil
}
