package scrum

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"scrumboard/internal/domain"
	models "scrumboard/internal/domain/models/scrum"
	"scrumboard/internal/domain/repositories"
	scrumRepo "scrumboard/internal/domain/repositories/scrum"
	scrumSvc "scrumboard/internal/domain/services/scrum"
)

// relationService implements the RelationService interface.
// Relations are undirected but stored under a directed key, so every
// lookup checks (a, b) and (b, a).
type relationService struct {
	relationRepo scrumRepo.ItemRelationRepository
	itemRepo     scrumRepo.ItemRepository
	authorizer   scrumSvc.ProjectAuthorizer
	txManager    repositories.TransactionManager
	now          func() time.Time
	logger       *slog.Logger
}

// NewRelationService creates a new relation service
func NewRelationService(
	relationRepo scrumRepo.ItemRelationRepository,
	itemRepo scrumRepo.ItemRepository,
	authorizer scrumSvc.ProjectAuthorizer,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) scrumSvc.RelationService {
	return &relationService{
		relationRepo: relationRepo,
		itemRepo:     itemRepo,
		authorizer:   authorizer,
		txManager:    txManager,
		now:          time.Now,
		logger:       logger,
	}
}

// ListRelatedItems retrieves the items on the other end of itemID's relations
func (s *relationService) ListRelatedItems(ctx context.Context, callerID, itemID string) ([]models.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.RequireViewer(ctx, callerID, item.ProjectID); err != nil {
		return nil, err
	}

	relations, err := s.relationRepo.ListForItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(relations))
	related := make([]models.Item, 0, len(relations))
	for i := range relations {
		otherID := relations[i].Other(itemID)
		if seen[otherID] {
			continue
		}
		seen[otherID] = true

		other, err := s.itemRepo.GetByID(ctx, otherID)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, err
		}
		related = append(related, *other)
	}
	return related, nil
}

// CreateRelation relates two items of the same project
func (s *relationService) CreateRelation(ctx context.Context, callerID, firstID, secondID string) (*models.ItemRelation, error) {
	if firstID == secondID {
		return nil, domain.NewBadRequest("an item cannot be related to itself")
	}

	first, err := s.itemRepo.GetByID(ctx, firstID)
	if err != nil {
		return nil, err
	}
	second, err := s.itemRepo.GetByID(ctx, secondID)
	if err != nil {
		return nil, err
	}
	if first.ProjectID != second.ProjectID {
		return nil, domain.NewBadRequest("related items must belong to the same project")
	}
	if _, err := s.authorizer.RequireTeamMember(ctx, callerID, first.ProjectID); err != nil {
		return nil, err
	}

	existing, err := s.findEither(ctx, firstID, secondID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, &domain.ConflictError{
			Message:      fmt.Sprintf("items %s and %s are already related", firstID, secondID),
			ResourceType: "relation",
			ResourceID:   existing[0].FirstItemID + ":" + existing[0].SecondItemID,
		}
	}

	relation := &models.ItemRelation{
		FirstItemID:  firstID,
		SecondItemID: secondID,
		CreatedAt:    s.now(),
	}
	if err := s.relationRepo.Create(ctx, relation); err != nil {
		return nil, err
	}

	s.logger.Info("relation created",
		"first_item_id", firstID,
		"second_item_id", secondID,
		"user_id", callerID,
	)

	return relation, nil
}

// DeleteRelation removes the edge between two items in whichever
// direction it was stored
func (s *relationService) DeleteRelation(ctx context.Context, callerID, firstID, secondID string) (*domain.Result, error) {
	first, err := s.itemRepo.GetByID(ctx, firstID)
	if err != nil {
		if isNotFound(err) {
			return domain.Fail("item %s not found", firstID), nil
		}
		return nil, err
	}
	if _, err := s.authorizer.RequireTeamMember(ctx, callerID, first.ProjectID); err != nil {
		return nil, err
	}

	existing, err := s.findEither(ctx, firstID, secondID)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return domain.Fail("items %s and %s are not related", firstID, secondID), nil
	}

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		for _, r := range existing {
			if err := s.relationRepo.Delete(ctx, r.FirstItemID, r.SecondItemID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("delete relation: %w", err)
	}

	s.logger.Info("relation deleted",
		"first_item_id", firstID,
		"second_item_id", secondID,
		"directions", len(existing),
		"user_id", callerID,
	)

	return domain.OK(), nil
}

// findEither returns the stored relations for (a, b) and (b, a)
func (s *relationService) findEither(ctx context.Context, a, b string) ([]models.ItemRelation, error) {
	var found []models.ItemRelation
	for _, pair := range [][2]string{{a, b}, {b, a}} {
		r, err := s.relationRepo.Get(ctx, pair[0], pair[1])
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, err
		}
		found = append(found, *r)
	}
	return found, nil
}
