package scrum

import "time"

// ProjectMembership binds a user to a project with a role.
// The (UserID, ProjectID) pair is unique.
type ProjectMembership struct {
	UserID    string    `json:"user_id" db:"user_id"`
	ProjectID string    `json:"project_id" db:"project_id"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Member is a membership joined with the user's display data
type Member struct {
	ProjectMembership
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}
