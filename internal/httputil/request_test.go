package httputil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		want    string
		wantErr string
	}{
		{name: "valid", body: `{"name":"Sprint 2"}`, want: "Sprint 2"},
		{name: "empty", body: ``, wantErr: "empty"},
		{name: "malformed", body: `{"name":`, wantErr: "invalid JSON"},
		{name: "trailing value", body: `{"name":"a"}{"name":"b"}`, wantErr: "unexpected data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			var got payload
			err := ParseJSON(rec, req, &got)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestQueryBool(t *testing.T) {
	tests := []struct {
		query string
		def   bool
		want  bool
	}{
		{query: "", def: false, want: false},
		{query: "?include_archived=true", def: false, want: true},
		{query: "?include_archived=1", def: false, want: true},
		{query: "?include_archived=false", def: true, want: false},
		{query: "?include_archived=maybe", def: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/items"+tt.query, nil)
			assert.Equal(t, tt.want, QueryBool(req, "include_archived", tt.def))
		})
	}
}

func TestUserIDContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, GetUserID(req))

	req = WithUserID(req, "user-1")
	assert.Equal(t, "user-1", GetUserID(req))
}
