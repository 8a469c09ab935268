package scrum

import (
	"context"
	"testing"

	"scrumboard/internal/domain"
	models "scrumboard/internal/domain/models/scrum"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_EnsureUser(t *testing.T) {
	b := newBoard()
	svc := b.services()
	ctx := context.Background()

	require.NoError(t, svc.Users.EnsureUser(ctx, &models.User{ID: "u1", Email: "a@example.com", DisplayName: "A"}))
	require.NoError(t, svc.Users.EnsureUser(ctx, &models.User{ID: "u1", Email: "b@example.com", DisplayName: "B"}))

	u, err := svc.Users.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "b@example.com", u.Email)
	assert.Len(t, b.users, 1)

	err = svc.Users.EnsureUser(ctx, &models.User{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUserService_DeleteSelf(t *testing.T) {
	tests := []struct {
		name    string
		caller  string
		wantErr error
	}{
		{name: "user without projects", caller: "loner"},
		{name: "member of a project", caller: "dana", wantErr: domain.ErrValidation},
		{name: "unknown user", caller: "nobody", wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := newTeamBoard()
			tb.addUser("loner")

			err := tb.svc.Users.DeleteSelf(context.Background(), tt.caller)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotContains(t, tb.users, tt.caller)
		})
	}
}
