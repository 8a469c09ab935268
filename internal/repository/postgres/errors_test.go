package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		duplicate bool
		foreign   bool
		check     bool
		noRows    bool
	}{
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, duplicate: true},
		{name: "wrapped foreign key", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), foreign: true},
		{name: "check violation", err: &pgconn.PgError{Code: "23514"}, check: true},
		{name: "no rows", err: fmt.Errorf("get: %w", pgx.ErrNoRows), noRows: true},
		{name: "other", err: errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.duplicate, IsPgDuplicateError(tt.err))
			assert.Equal(t, tt.foreign, IsPgForeignKeyError(tt.err))
			assert.Equal(t, tt.check, IsPgCheckError(tt.err))
			assert.Equal(t, tt.noRows, IsPgNoRowsError(tt.err))
		})
	}
}

func TestConstraintName(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "idx_dev_memberships_one_scrum_master"})
	assert.Equal(t, "idx_dev_memberships_one_scrum_master", ConstraintName(err))
	assert.Empty(t, ConstraintName(errors.New("plain")))
}

func TestNewTableNames(t *testing.T) {
	tables := NewTableNames("test_")
	assert.Equal(t, "test_project_memberships", tables.Memberships)

	all := tables.All()
	assert.Len(t, all, 7)
	assert.Equal(t, "test_users", all[0])
	for _, name := range all {
		assert.Regexp(t, `^test_[a-z_]+$`, name)
	}
}
