package config

const (
	// MaxProjectNameLength is the maximum length for project names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxProjectNameLength = 255

	MaxSprintNameLength = 255

	// MaxItemTitleLength is the maximum length for work item titles.
	MaxItemTitleLength = 500

	// MaxDescriptionLength bounds free-text descriptions of projects,
	// sprints and items.
	MaxDescriptionLength = 10000

	MaxCommentLength = 5000

	// MaxStoryPoints caps story point estimates.
	MaxStoryPoints = 100

	// DefaultInitialSprintDays is the length of the sprint opened
	// alongside a new project.
	DefaultInitialSprintDays = 14
)
