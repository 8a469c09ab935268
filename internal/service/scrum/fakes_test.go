package scrum

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"scrumboard/internal/config"
	"scrumboard/internal/domain"
	models "scrumboard/internal/domain/models/scrum"
	"scrumboard/internal/domain/repositories"
	scrumRepo "scrumboard/internal/domain/repositories/scrum"

	"github.com/google/uuid"
)

// board is an in-memory store implementing every repository the services use
type board struct {
	projects  map[string]models.Project
	sprints   map[string]models.Sprint
	items     map[string]models.Item
	relations map[[2]string]models.ItemRelation
	comments  map[string]models.Comment
	members   map[[2]string]models.ProjectMembership // (user, project)
	users     map[string]models.User
	txCount   int
}

func newBoard() *board {
	return &board{
		projects:  map[string]models.Project{},
		sprints:   map[string]models.Sprint{},
		items:     map[string]models.Item{},
		relations: map[[2]string]models.ItemRelation{},
		comments:  map[string]models.Comment{},
		members:   map[[2]string]models.ProjectMembership{},
		users:     map[string]models.User{},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// services wires the real services around the fake board
func (b *board) services() *Services {
	return SetupServices(&Repositories{
		Projects:    projectStore{b},
		Sprints:     sprintStore{b},
		Items:       itemStore{b},
		Relations:   relationStore{b},
		Comments:    commentStore{b},
		Memberships: memberStore{b},
		Users:       userStore{b},
		Tx:          txStore{b},
	}, &config.Config{InitialSprintDays: config.DefaultInitialSprintDays}, testLogger())
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
}

// seeding helpers

func (b *board) addUser(id string) {
	b.users[id] = models.User{ID: id, Email: id + "@example.com", DisplayName: id}
}

func (b *board) addProject(owner string) string {
	id := uuid.NewString()
	b.projects[id] = models.Project{ID: id, Name: "Project"}
	b.addMember(owner, id, models.RoleOwner)
	return id
}

func (b *board) addMember(userID, projectID string, role models.Role) {
	if _, ok := b.users[userID]; !ok {
		b.addUser(userID)
	}
	b.members[[2]string{userID, projectID}] = models.ProjectMembership{UserID: userID, ProjectID: projectID, Role: role}
}

func (b *board) addSprint(projectID, start, end string) string {
	id := uuid.NewString()
	b.sprints[id] = models.Sprint{ID: id, ProjectID: projectID, Name: "Sprint " + start, StartDate: day(start), EndDate: day(end)}
	return id
}

func (b *board) addItem(item models.Item) string {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Status == "" {
		item.Status = models.ItemStatusNew
	}
	if item.Type == "" {
		item.Type = models.ItemTypeTask
	}
	if item.ProjectID == "" {
		item.ProjectID = b.sprints[item.SprintID].ProjectID
	}
	b.items[item.ID] = item
	return item.ID
}

type txStore struct{ *board }

func (s txStore) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	s.txCount++
	return fn(ctx)
}

type projectStore struct{ *board }

func (s projectStore) Create(_ context.Context, p *models.Project) error {
	p.ID = uuid.NewString()
	s.projects[p.ID] = *p
	return nil
}

func (s projectStore) GetByID(_ context.Context, id string) (*models.Project, error) {
	p, ok := s.projects[id]
	if !ok {
		return nil, notFound("project", id)
	}
	return &p, nil
}

func (s projectStore) ListForUser(_ context.Context, userID string) ([]models.Project, error) {
	out := []models.Project{}
	for key, m := range s.members {
		if key[0] == userID {
			out = append(out, s.projects[m.ProjectID])
		}
	}
	return out, nil
}

func (s projectStore) Update(_ context.Context, p *models.Project) error {
	if _, ok := s.projects[p.ID]; !ok {
		return notFound("project", p.ID)
	}
	s.projects[p.ID] = *p
	return nil
}

func (s projectStore) Delete(_ context.Context, id string) error {
	if _, ok := s.projects[id]; !ok {
		return notFound("project", id)
	}
	delete(s.projects, id)
	return nil
}

type sprintStore struct{ *board }

func (s sprintStore) Create(_ context.Context, sp *models.Sprint) error {
	sp.ID = uuid.NewString()
	s.sprints[sp.ID] = *sp
	return nil
}

func (s sprintStore) GetByID(_ context.Context, id string) (*models.Sprint, error) {
	sp, ok := s.sprints[id]
	if !ok {
		return nil, notFound("sprint", id)
	}
	return &sp, nil
}

func (s sprintStore) ListByProject(_ context.Context, projectID string) ([]models.Sprint, error) {
	out := []models.Sprint{}
	for _, sp := range s.sprints {
		if sp.ProjectID == projectID {
			out = append(out, sp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (s sprintStore) Update(_ context.Context, sp *models.Sprint) error {
	if _, ok := s.sprints[sp.ID]; !ok {
		return notFound("sprint", sp.ID)
	}
	s.sprints[sp.ID] = *sp
	return nil
}

func (s sprintStore) Delete(_ context.Context, id string) error {
	if _, ok := s.sprints[id]; !ok {
		return notFound("sprint", id)
	}
	delete(s.sprints, id)
	for itemID, it := range s.items {
		if it.SprintID == id {
			delete(s.items, itemID)
		}
	}
	return nil
}

type itemStore struct{ *board }

func (s itemStore) Create(_ context.Context, it *models.Item) error {
	it.ID = uuid.NewString()
	s.items[it.ID] = *it.Clone()
	return nil
}

func (s itemStore) GetByID(_ context.Context, id string) (*models.Item, error) {
	it, ok := s.items[id]
	if !ok {
		return nil, notFound("item", id)
	}
	return it.Clone(), nil
}

func (s itemStore) ListBySprint(_ context.Context, sprintID string, filter scrumRepo.ItemListFilter) ([]models.Item, error) {
	out := []models.Item{}
	for _, it := range s.items {
		if it.SprintID == sprintID && (filter.IncludeArchived || !it.IsArchived) {
			out = append(out, *it.Clone())
		}
	}
	return out, nil
}

func (s itemStore) ListChildren(_ context.Context, itemID string) ([]models.Item, error) {
	out := []models.Item{}
	for _, it := range s.items {
		if it.ParentID != nil && *it.ParentID == itemID {
			out = append(out, *it.Clone())
		}
	}
	return out, nil
}

func (s itemStore) Update(_ context.Context, it *models.Item) error {
	if _, ok := s.items[it.ID]; !ok {
		return notFound("item", it.ID)
	}
	s.items[it.ID] = *it.Clone()
	return nil
}

func (s itemStore) Delete(_ context.Context, id string) error {
	if _, ok := s.items[id]; !ok {
		return notFound("item", id)
	}
	delete(s.items, id)
	return nil
}

type relationStore struct{ *board }

func (s relationStore) Create(_ context.Context, r *models.ItemRelation) error {
	key := [2]string{r.FirstItemID, r.SecondItemID}
	if _, ok := s.relations[key]; ok {
		return &domain.ConflictError{Message: "duplicate", ResourceType: "relation"}
	}
	s.relations[key] = *r
	return nil
}

func (s relationStore) Get(_ context.Context, first, second string) (*models.ItemRelation, error) {
	r, ok := s.relations[[2]string{first, second}]
	if !ok {
		return nil, notFound("relation", first+":"+second)
	}
	return &r, nil
}

func (s relationStore) ListForItem(_ context.Context, itemID string) ([]models.ItemRelation, error) {
	out := []models.ItemRelation{}
	for key, r := range s.relations {
		if key[0] == itemID || key[1] == itemID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s relationStore) Delete(_ context.Context, first, second string) error {
	key := [2]string{first, second}
	if _, ok := s.relations[key]; !ok {
		return notFound("relation", first+":"+second)
	}
	delete(s.relations, key)
	return nil
}

type commentStore struct{ *board }

func (s commentStore) Create(_ context.Context, c *models.Comment) error {
	c.ID = uuid.NewString()
	s.comments[c.ID] = *c
	return nil
}

func (s commentStore) GetByID(_ context.Context, id string) (*models.Comment, error) {
	c, ok := s.comments[id]
	if !ok {
		return nil, notFound("comment", id)
	}
	return &c, nil
}

func (s commentStore) ListByItem(_ context.Context, itemID string) ([]models.Comment, error) {
	out := []models.Comment{}
	for _, c := range s.comments {
		if c.ItemID == itemID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s commentStore) Update(_ context.Context, c *models.Comment) error {
	if _, ok := s.comments[c.ID]; !ok {
		return notFound("comment", c.ID)
	}
	s.comments[c.ID] = *c
	return nil
}

func (s commentStore) Delete(_ context.Context, id string) error {
	if _, ok := s.comments[id]; !ok {
		return notFound("comment", id)
	}
	delete(s.comments, id)
	return nil
}

type memberStore struct{ *board }

func (s memberStore) GetRole(_ context.Context, userID, projectID string) (models.Role, error) {
	m, ok := s.members[[2]string{userID, projectID}]
	if !ok {
		return models.RoleNone, nil
	}
	return m.Role, nil
}

func (s memberStore) ScrumMasterExists(_ context.Context, projectID string) (bool, error) {
	for _, m := range s.members {
		if m.ProjectID == projectID && m.Role == models.RoleScrumMaster {
			return true, nil
		}
	}
	return false, nil
}

func (s memberStore) ListByProject(_ context.Context, projectID string) ([]models.Member, error) {
	out := []models.Member{}
	for _, m := range s.members {
		if m.ProjectID == projectID {
			u := s.users[m.UserID]
			out = append(out, models.Member{ProjectMembership: m, Email: u.Email, DisplayName: u.DisplayName})
		}
	}
	return out, nil
}

func (s memberStore) CountByUser(_ context.Context, userID string) (int, error) {
	n := 0
	for key := range s.members {
		if key[0] == userID {
			n++
		}
	}
	return n, nil
}

func (s memberStore) Create(_ context.Context, m *models.ProjectMembership) error {
	key := [2]string{m.UserID, m.ProjectID}
	if _, ok := s.members[key]; ok {
		return &domain.ConflictError{Message: "duplicate", ResourceType: "member"}
	}
	s.members[key] = *m
	return nil
}

func (s memberStore) UpdateRole(_ context.Context, userID, projectID string, role models.Role) error {
	key := [2]string{userID, projectID}
	m, ok := s.members[key]
	if !ok {
		return notFound("membership", userID)
	}
	m.Role = role
	m.UpdatedAt = time.Now()
	s.members[key] = m
	return nil
}

func (s memberStore) Delete(_ context.Context, userID, projectID string) error {
	key := [2]string{userID, projectID}
	if _, ok := s.members[key]; !ok {
		return notFound("membership", userID)
	}
	delete(s.members, key)
	return nil
}

type userStore struct{ *board }

func (s userStore) Upsert(_ context.Context, u *models.User) error {
	if existing, ok := s.users[u.ID]; ok {
		u.CreatedAt = existing.CreatedAt
	}
	s.users[u.ID] = *u
	return nil
}

func (s userStore) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, notFound("user", id)
	}
	return &u, nil
}

func (s userStore) Exists(_ context.Context, id string) (bool, error) {
	_, ok := s.users[id]
	return ok, nil
}

func (s userStore) Delete(_ context.Context, id string) error {
	if _, ok := s.users[id]; !ok {
		return notFound("user", id)
	}
	delete(s.users, id)
	return nil
}
