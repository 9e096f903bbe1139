package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebalakin/credvault/models"
)

const selectRecordSQL = "SELECT id, service, username, password, created_at, updated_at FROM passwords"

func TestBuildSelectAll(t *testing.T) {
	tests := []struct {
		name    string
		dialect dialect
		want    string
	}{
		{
			name:    "sqlite",
			dialect: sqliteDialect,
			want:    selectRecordSQL + " ORDER BY updated_at DESC",
		},
		{
			name:    "postgres",
			dialect: postgresDialect,
			want:    selectRecordSQL + " ORDER BY updated_at DESC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := tt.dialect.buildSelectAll()
			require.NoError(t, err)
			assert.Equal(t, tt.want, query)
			assert.Empty(t, args)
		})
	}
}

func TestBuildSearch(t *testing.T) {
	tests := []struct {
		name    string
		dialect dialect
		query   string
		want    string
	}{
		{
			name:    "sqlite uses LIKE with question placeholders",
			dialect: sqliteDialect,
			query:   "git",
			want:    selectRecordSQL + ` WHERE (service LIKE ? ESCAPE '\' OR username LIKE ? ESCAPE '\') ORDER BY updated_at DESC`,
		},
		{
			name:    "postgres uses ILIKE with dollar placeholders",
			dialect: postgresDialect,
			query:   "git",
			want:    selectRecordSQL + ` WHERE (service ILIKE $1 ESCAPE '\' OR username ILIKE $2 ESCAPE '\') ORDER BY updated_at DESC`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := tt.dialect.buildSearch(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, query)
			assert.Equal(t, []any{"%git%", "%git%"}, args)
		})
	}
}

func TestBuildInsert(t *testing.T) {
	now := time.Now().UTC()
	record := models.Record{
		ID:        "id-1",
		Service:   "GitHub",
		Username:  "octocat",
		Password:  "s3cret",
		CreatedAt: now,
		UpdatedAt: now,
	}

	query, args, err := postgresDialect.buildInsert(record)
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO passwords (id,service,username,password,created_at,updated_at) VALUES ($1,$2,$3,$4,$5,$6)",
		query)
	assert.Equal(t, []any{"id-1", "GitHub", "octocat", "s3cret", now, now}, args)
}

func TestBuildUpdate(t *testing.T) {
	now := time.Now().UTC()
	newPassword := "q"
	newService := "GitLab"

	t.Run("single field patch", func(t *testing.T) {
		query, args, err := postgresDialect.buildUpdate("id-1", models.RecordPatch{Password: &newPassword}, now)
		require.NoError(t, err)
		assert.Equal(t, "UPDATE passwords SET password = $1, updated_at = $2 WHERE id = $3", query)
		assert.Equal(t, []any{"q", now, "id-1"}, args)
	})

	t.Run("two field patch keeps declaration order", func(t *testing.T) {
		query, args, err := sqliteDialect.buildUpdate("id-1", models.RecordPatch{Service: &newService, Password: &newPassword}, now)
		require.NoError(t, err)
		assert.Equal(t, "UPDATE passwords SET service = ?, password = ?, updated_at = ? WHERE id = ?", query)
		assert.Equal(t, []any{"GitLab", "q", now, "id-1"}, args)
	})

	t.Run("empty patch is rejected before any SQL is built", func(t *testing.T) {
		_, _, err := postgresDialect.buildUpdate("id-1", models.RecordPatch{}, now)
		assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
	})
}

func TestBuildDelete(t *testing.T) {
	query, args, err := sqliteDialect.buildDelete("id-1")
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM passwords WHERE id = ?", query)
	assert.Equal(t, []any{"id-1"}, args)
}

func TestBuildCountQueries(t *testing.T) {
	query, args, err := postgresDialect.buildCount()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM passwords", query)
	assert.Empty(t, args)

	since := time.Now().UTC().Add(-models.RecentWindow)
	query, args, err = postgresDialect.buildRecentCount(since)
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM passwords WHERE created_at >= $1", query)
	assert.Equal(t, []any{since}, args)
}
