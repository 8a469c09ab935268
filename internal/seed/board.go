// Package seed loads demo board fixtures through the board services, so
// seeded data obeys the same rules as data created over HTTP.
package seed

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	models "scrumboard/internal/domain/models/scrum"
	scrumSvc "scrumboard/internal/domain/services/scrum"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/*.yaml
var fixtureFiles embed.FS

// Fixture is a whole demo board
type Fixture struct {
	Users    []UserFixture    `yaml:"users"`
	Projects []ProjectFixture `yaml:"projects"`
}

type UserFixture struct {
	Key   string `yaml:"key"`
	ID    string `yaml:"id"`
	Email string `yaml:"email"`
	Name  string `yaml:"name"`
}

type ProjectFixture struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Owner       string          `yaml:"owner"`
	Members     []MemberFixture `yaml:"members"`
	Sprints     []SprintFixture `yaml:"sprints"`
	Items       []ItemFixture   `yaml:"items"`
	Relations   [][2]string     `yaml:"relations"`
}

type MemberFixture struct {
	User string      `yaml:"user"`
	Role models.Role `yaml:"role"`
}

type SprintFixture struct {
	Name string `yaml:"name"`
	Days int    `yaml:"days"`
}

// ItemFixture refers to users, sprints and parents by fixture key or name.
// Author defaults to the project owner.
type ItemFixture struct {
	Key      string            `yaml:"key"`
	Sprint   string            `yaml:"sprint"`
	Type     models.ItemType   `yaml:"type"`
	Status   models.ItemStatus `yaml:"status"`
	Title    string            `yaml:"title"`
	Points   *int              `yaml:"points"`
	Author   string            `yaml:"author"`
	Assignee string            `yaml:"assignee"`
	Parent   string            `yaml:"parent"`
}

// Load reads a fixture embedded under fixtures/
func Load(name string) (*Fixture, error) {
	data, err := fixtureFiles.ReadFile("fixtures/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", name, err)
	}
	return Parse(data)
}

// Parse decodes a fixture document
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

// Services is the subset of board services the seeder drives
type Services struct {
	Users     scrumSvc.UserService
	Projects  scrumSvc.ProjectService
	Members   scrumSvc.MemberService
	Sprints   scrumSvc.SprintService
	Items     scrumSvc.ItemService
	Relations scrumSvc.RelationService
}

// Seeder applies fixtures
type Seeder struct {
	svc    Services
	logger *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(svc Services, logger *slog.Logger) *Seeder {
	return &Seeder{svc: svc, logger: logger}
}

// Apply creates every user, project, member, sprint, item and relation in f.
// The first failure aborts the run.
func (s *Seeder) Apply(ctx context.Context, f *Fixture) error {
	users := make(map[string]string, len(f.Users))
	for _, u := range f.Users {
		user := &models.User{ID: u.ID, Email: u.Email, DisplayName: u.Name}
		if err := s.svc.Users.EnsureUser(ctx, user); err != nil {
			return fmt.Errorf("user %s: %w", u.Key, err)
		}
		users[u.Key] = u.ID
	}

	for _, p := range f.Projects {
		if err := s.applyProject(ctx, users, &p); err != nil {
			return fmt.Errorf("project %q: %w", p.Name, err)
		}
	}
	return nil
}

func (s *Seeder) applyProject(ctx context.Context, users map[string]string, p *ProjectFixture) error {
	ownerID, ok := users[p.Owner]
	if !ok {
		return fmt.Errorf("unknown owner %q", p.Owner)
	}

	project, err := s.svc.Projects.CreateProject(ctx, ownerID, &scrumSvc.CreateProjectRequest{
		Name:        p.Name,
		Description: p.Description,
	})
	if err != nil {
		return err
	}

	for _, m := range p.Members {
		userID, ok := users[m.User]
		if !ok {
			return fmt.Errorf("unknown member %q", m.User)
		}
		req := &scrumSvc.AddMemberRequest{UserID: userID, Role: m.Role}
		if _, err := s.svc.Members.AddMember(ctx, ownerID, project.ID, req); err != nil {
			return fmt.Errorf("member %s: %w", m.User, err)
		}
	}

	sprints, err := s.applySprints(ctx, ownerID, project.ID, p.Sprints)
	if err != nil {
		return err
	}

	items := make(map[string]string, len(p.Items))
	for _, it := range p.Items {
		id, err := s.applyItem(ctx, users, sprints, items, ownerID, &it)
		if err != nil {
			return fmt.Errorf("item %s: %w", it.Key, err)
		}
		items[it.Key] = id
	}

	for _, pair := range p.Relations {
		first, second := items[pair[0]], items[pair[1]]
		if first == "" || second == "" {
			return fmt.Errorf("relation %v references an unknown item", pair)
		}
		if _, err := s.svc.Relations.CreateRelation(ctx, ownerID, first, second); err != nil {
			return fmt.Errorf("relation %v: %w", pair, err)
		}
	}

	s.logger.Info("seeded project",
		"id", project.ID,
		"name", project.Name,
		"members", len(p.Members),
		"sprints", len(sprints),
		"items", len(items),
	)
	return nil
}

// applySprints schedules each fixture sprint right after the latest one and
// returns sprint IDs by name, the initial sprint included
func (s *Seeder) applySprints(ctx context.Context, ownerID, projectID string, fixtures []SprintFixture) (map[string]string, error) {
	existing, err := s.svc.Sprints.ListSprints(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]string, len(existing)+len(fixtures))
	var lastEnd models.Sprint
	for _, sp := range existing {
		byName[sp.Name] = sp.ID
		if sp.EndDate.After(lastEnd.EndDate) {
			lastEnd = sp
		}
	}

	for _, f := range fixtures {
		start := lastEnd.EndDate.AddDate(0, 0, 1)
		req := &scrumSvc.SprintRequest{
			Name:      f.Name,
			StartDate: start,
			EndDate:   start.AddDate(0, 0, f.Days),
		}
		res, err := s.svc.Sprints.CreateSprint(ctx, ownerID, projectID, req)
		if err != nil {
			return nil, fmt.Errorf("sprint %q: %w", f.Name, err)
		}
		if !res.Success {
			return nil, fmt.Errorf("sprint %q: %s", f.Name, res.Message)
		}
		byName[f.Name] = res.Value.ID
		lastEnd = *res.Value
	}
	return byName, nil
}

func (s *Seeder) applyItem(ctx context.Context, users, sprints, items map[string]string, ownerID string, it *ItemFixture) (string, error) {
	sprintID, ok := sprints[it.Sprint]
	if !ok {
		return "", fmt.Errorf("unknown sprint %q", it.Sprint)
	}

	authorID := ownerID
	if it.Author != "" {
		if authorID, ok = users[it.Author]; !ok {
			return "", fmt.Errorf("unknown author %q", it.Author)
		}
	}

	req := &scrumSvc.CreateItemRequest{
		Type:        it.Type,
		Status:      it.Status,
		Title:       it.Title,
		StoryPoints: it.Points,
	}
	if it.Assignee != "" {
		assignee, ok := users[it.Assignee]
		if !ok {
			return "", fmt.Errorf("unknown assignee %q", it.Assignee)
		}
		req.AssignedUserID = &assignee
	}
	if it.Parent != "" {
		parent, ok := items[it.Parent]
		if !ok {
			return "", fmt.Errorf("parent %q must be listed before its children", it.Parent)
		}
		req.ParentID = &parent
	}

	item, err := s.svc.Items.CreateItem(ctx, authorID, sprintID, req)
	if err != nil {
		return "", err
	}
	return item.ID, nil
}
