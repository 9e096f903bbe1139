package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebalakin/credvault/internal/adapter"
	"github.com/ebalakin/credvault/internal/logger"
	"github.com/ebalakin/credvault/internal/service"
	"github.com/ebalakin/credvault/internal/store"
	"github.com/ebalakin/credvault/internal/validators"
	"github.com/ebalakin/credvault/models"
)

// fakeRecordManager plays back canned results for the routing tests. The
// service layer has its own tests; here only status mapping and JSON
// shapes are under test.
type fakeRecordManager struct {
	records []models.Record
	record  models.Record
	stats   models.Stats
	status  models.ConnectionStatus
	deleted bool
	err     error

	lastSearchQuery string
	lastCtx         context.Context
}

func (f *fakeRecordManager) GetAll(ctx context.Context) ([]models.Record, error) {
	return f.records, f.err
}

func (f *fakeRecordManager) Search(ctx context.Context, query string) ([]models.Record, error) {
	f.lastSearchQuery = query
	return f.records, f.err
}

func (f *fakeRecordManager) Add(ctx context.Context, input models.RecordInput) (models.Record, error) {
	return f.record, f.err
}

func (f *fakeRecordManager) BatchAdd(ctx context.Context, inputs []models.RecordInput) ([]models.Record, error) {
	return f.records, f.err
}

func (f *fakeRecordManager) Update(ctx context.Context, id string, patch models.RecordPatch) (models.Record, error) {
	return f.record, f.err
}

func (f *fakeRecordManager) Remove(ctx context.Context, id string) (bool, error) {
	return f.deleted, f.err
}

func (f *fakeRecordManager) GetStats(ctx context.Context) (models.Stats, error) {
	return f.stats, f.err
}

func (f *fakeRecordManager) TestConnection(ctx context.Context) models.ConnectionStatus {
	f.lastCtx = ctx
	return f.status
}

func newTestRouter(fake *fakeRecordManager) http.Handler {
	h := NewHandler(&service.Services{Records: fake}, logger.Nop())
	return h.Init()
}

func doRequest(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestListPasswords(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	records := []models.Record{{ID: "id-1", Service: "GitHub", Username: "octocat", Password: "s3cret", CreatedAt: now, UpdatedAt: now}}

	t.Run("without query returns the full listing", func(t *testing.T) {
		fake := &fakeRecordManager{records: records}
		rec := doRequest(t, newTestRouter(fake), http.MethodGet, "/api/passwords", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var got []models.Record
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "id-1", got[0].ID)
		assert.Empty(t, fake.lastSearchQuery)
	})

	t.Run("with query dispatches a search", func(t *testing.T) {
		fake := &fakeRecordManager{records: records}
		rec := doRequest(t, newTestRouter(fake), http.MethodGet, "/api/passwords?q=git", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "git", fake.lastSearchQuery)
	})

	t.Run("storage failure maps to 500", func(t *testing.T) {
		fake := &fakeRecordManager{err: store.ErrExecutingQuery}
		rec := doRequest(t, newTestRouter(fake), http.MethodGet, "/api/passwords", nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestAddPassword(t *testing.T) {
	t.Run("valid input answers 201 with the stored record", func(t *testing.T) {
		fake := &fakeRecordManager{record: models.Record{ID: "id-1", Service: "GitHub"}}
		rec := doRequest(t, newTestRouter(fake), http.MethodPost, "/api/passwords",
			models.RecordInput{Service: "GitHub", Username: "octocat", Password: "s3cret"})

		assert.Equal(t, http.StatusCreated, rec.Code)

		var got models.Record
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "id-1", got.ID)
	})

	t.Run("malformed JSON answers 400", func(t *testing.T) {
		router := newTestRouter(&fakeRecordManager{})
		req := httptest.NewRequest(http.MethodPost, "/api/passwords", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation failure answers 400", func(t *testing.T) {
		fake := &fakeRecordManager{err: validators.ErrEmptyPassword}
		rec := doRequest(t, newTestRouter(fake), http.MethodPost, "/api/passwords",
			models.RecordInput{Service: "GitHub", Username: "octocat"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body["error"], "password")
	})

	t.Run("duplicate id answers 409", func(t *testing.T) {
		fake := &fakeRecordManager{err: store.ErrDuplicateRecordID}
		rec := doRequest(t, newTestRouter(fake), http.MethodPost, "/api/passwords",
			models.RecordInput{Service: "GitHub", Username: "octocat", Password: "s3cret"})

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestBatchAddPasswords(t *testing.T) {
	t.Run("valid batch answers 201", func(t *testing.T) {
		fake := &fakeRecordManager{records: []models.Record{{ID: "id-1"}, {ID: "id-2"}}}
		rec := doRequest(t, newTestRouter(fake), http.MethodPost, "/api/passwords/batch",
			[]models.RecordInput{
				{Service: "A", Username: "a", Password: "1"},
				{Service: "B", Username: "b", Password: "2"},
			})

		assert.Equal(t, http.StatusCreated, rec.Code)

		var got []models.Record
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Len(t, got, 2)
	})

	t.Run("empty batch answers 400", func(t *testing.T) {
		fake := &fakeRecordManager{err: validators.ErrEmptyBatch}
		rec := doRequest(t, newTestRouter(fake), http.MethodPost, "/api/passwords/batch", []models.RecordInput{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdatePassword(t *testing.T) {
	password := "newpass"

	t.Run("valid patch answers 200 with the updated record", func(t *testing.T) {
		fake := &fakeRecordManager{record: models.Record{ID: "id-1", Password: "newpass"}}
		rec := doRequest(t, newTestRouter(fake), http.MethodPatch, "/api/passwords/id-1",
			models.RecordPatch{Password: &password})

		assert.Equal(t, http.StatusOK, rec.Code)

		var got models.Record
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "newpass", got.Password)
	})

	t.Run("unknown id answers 404", func(t *testing.T) {
		fake := &fakeRecordManager{err: store.ErrRecordNotFound}
		rec := doRequest(t, newTestRouter(fake), http.MethodPatch, "/api/passwords/missing",
			models.RecordPatch{Password: &password})

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("empty patch answers 400", func(t *testing.T) {
		fake := &fakeRecordManager{err: validators.ErrNoFieldsToUpdate}
		rec := doRequest(t, newTestRouter(fake), http.MethodPatch, "/api/passwords/id-1",
			models.RecordPatch{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeletePassword(t *testing.T) {
	t.Run("deleted record answers 204 with empty body", func(t *testing.T) {
		fake := &fakeRecordManager{deleted: true}
		rec := doRequest(t, newTestRouter(fake), http.MethodDelete, "/api/passwords/id-1", nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("absent id answers 404", func(t *testing.T) {
		fake := &fakeRecordManager{deleted: false}
		rec := doRequest(t, newTestRouter(fake), http.MethodDelete, "/api/passwords/missing", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetStats(t *testing.T) {
	fake := &fakeRecordManager{stats: models.Stats{Total: 12, RecentCount: 3}}
	rec := doRequest(t, newTestRouter(fake), http.MethodGet, "/api/stats", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got models.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.Stats{Total: 12, RecentCount: 3}, got)
}

func TestHealth(t *testing.T) {
	t.Run("connected backend", func(t *testing.T) {
		fake := &fakeRecordManager{status: models.ConnectionStatus{Connected: true, LatencyMS: 5}}
		rec := doRequest(t, newTestRouter(fake), http.MethodGet, "/api/health", nil)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got models.ConnectionStatus
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.True(t, got.Connected)
	})

	t.Run("probe failure still answers 200", func(t *testing.T) {
		fake := &fakeRecordManager{status: models.ConnectionStatus{Connected: false, Error: "connection refused"}}
		rec := doRequest(t, newTestRouter(fake), http.MethodGet, "/api/health", nil)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got models.ConnectionStatus
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.False(t, got.Connected)
		assert.Equal(t, "connection refused", got.Error)
	})
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation error", validators.ErrEmptyService, http.StatusBadRequest},
		{"not found", store.ErrRecordNotFound, http.StatusNotFound},
		{"duplicate id", store.ErrDuplicateRecordID, http.StatusConflict},
		{"remote failure", adapter.ErrRemoteRequest, http.StatusBadGateway},
		{"sql failure", store.ErrExecutingStatement, http.StatusInternalServerError},
		{"unknown error", context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestTraceID(t *testing.T) {
	t.Run("generated id is echoed in the response header", func(t *testing.T) {
		rec := doRequest(t, newTestRouter(&fakeRecordManager{}), http.MethodGet, "/api/health", nil)

		traceID := rec.Header().Get("X-Trace-ID")
		require.NotEmpty(t, traceID)
		_, err := uuid.Parse(traceID)
		assert.NoError(t, err, "generated trace id should be a uuid")
	})

	t.Run("inbound id is kept and echoed back", func(t *testing.T) {
		router := newTestRouter(&fakeRecordManager{})
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("X-Trace-ID", "trace-abc")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, "trace-abc", rec.Header().Get("X-Trace-ID"))
	})

	t.Run("id reaches the context logger seen by the service layer", func(t *testing.T) {
		var buf bytes.Buffer
		fake := &fakeRecordManager{}
		h := NewHandler(&service.Services{Records: fake}, &logger.Logger{Logger: zerolog.New(&buf)})

		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("X-Trace-ID", "trace-abc")
		rec := httptest.NewRecorder()
		h.Init().ServeHTTP(rec, req)

		require.NotNil(t, fake.lastCtx)
		buf.Reset()
		logger.FromContext(fake.lastCtx).Info().Msg("downstream")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "trace-abc", entry["trace_id"])
	})
}
