package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ebalakin/credvault/internal/config"
	"github.com/ebalakin/credvault/internal/logger"
	"github.com/ebalakin/credvault/internal/store"
	"github.com/ebalakin/credvault/models"
)

const (
	passwordsResource = "/rest/v1/passwords"

	preferHeader         = "Prefer"
	preferRepresentation = "return=representation"
	preferExactCount     = "count=exact"
)

// remoteRecordClient implements [store.RecordStore] against a hosted
// PostgREST-style row API over the "passwords" table. It is a thin
// wrapper: sequential request/response calls, no retry, no backoff, no
// ordering guarantees beyond what the backend provides.
type remoteRecordClient struct {
	client *resty.Client
	logger *logger.Logger
}

// NewRemoteRecordClient constructs a [store.RecordStore] talking to the
// hosted backend described by cfg. The access key is sent as both the
// apikey header and the bearer token on every request.
func NewRemoteRecordClient(cfg config.Remote, log *logger.Logger) store.RecordStore {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.EndpointURL, "/")).
		SetTimeout(timeout).
		SetHeader("apikey", cfg.AccessKey).
		SetHeader("Authorization", "Bearer "+cfg.AccessKey).
		SetHeader("Content-Type", "application/json")

	return &remoteRecordClient{client: cli, logger: log}
}

// GetAll fetches every row ordered by updated_at descending.
func (c *remoteRecordClient) GetAll(ctx context.Context) ([]models.Record, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("order", "updated_at.desc").
		Get(passwordsResource)
	if err != nil {
		return nil, fmt.Errorf("get all passwords: %w", err)
	}
	if err = mapRemoteError(resp); err != nil {
		return nil, fmt.Errorf("get all passwords: %w", err)
	}

	records, err := decodeRows(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("get all passwords: %w", err)
	}

	return records, nil
}

// filterReserved strips the characters the backend's filter grammar
// reserves: "*" is the ilike wildcard, commas and parens delimit or=
// groups. The shared sanitizer only escapes the SQL LIKE set, so without
// this step a "*" would match as a wildcard on the remote backend while
// the SQL backends match it literally.
var filterReserved = strings.NewReplacer("*", "", ",", "", "(", "", ")", "")

// Search fetches rows whose service or username contains the sanitized
// query substring, case-insensitively, as a literal match on both
// backends.
func (c *remoteRecordClient) Search(ctx context.Context, query string) ([]models.Record, error) {
	query = filterReserved.Replace(query)
	filter := fmt.Sprintf("(service.ilike.*%s*,username.ilike.*%s*)", query, query)

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("order", "updated_at.desc").
		SetQueryParam("or", filter).
		Get(passwordsResource)
	if err != nil {
		return nil, fmt.Errorf("search passwords: %w", err)
	}
	if err = mapRemoteError(resp); err != nil {
		return nil, fmt.Errorf("search passwords: %w", err)
	}

	records, err := decodeRows(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("search passwords: %w", err)
	}

	return records, nil
}

// Add inserts the record and returns the representation row the backend
// stored.
func (c *remoteRecordClient) Add(ctx context.Context, record models.Record) (models.Record, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader(preferHeader, preferRepresentation).
		SetBody([]insertRow{insertRowFromRecord(record)}).
		Post(passwordsResource)
	if err != nil {
		return models.Record{}, fmt.Errorf("add password: %w", err)
	}
	if err = mapRemoteError(resp); err != nil {
		return models.Record{}, fmt.Errorf("add password: %w", err)
	}

	stored, err := decodeSingleRow(resp.Body())
	if err != nil {
		return models.Record{}, fmt.Errorf("add password: %w", err)
	}

	return stored, nil
}

// Update patches the row matching id with the present fields plus the new
// updated_at. An empty representation means the id does not exist.
func (c *remoteRecordClient) Update(ctx context.Context, id string, patch models.RecordPatch, updatedAt time.Time) (models.Record, error) {
	if patch.IsEmpty() {
		return models.Record{}, store.ErrNoFieldsToUpdate
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader(preferHeader, preferRepresentation).
		SetQueryParam("id", "eq."+id).
		SetBody(patchRowFromPatch(patch, updatedAt)).
		Patch(passwordsResource)
	if err != nil {
		return models.Record{}, fmt.Errorf("update password: %w", err)
	}
	if err = mapRemoteError(resp); err != nil {
		return models.Record{}, fmt.Errorf("update password: %w", err)
	}

	var rows []passwordRow
	if err = json.Unmarshal(resp.Body(), &rows); err != nil {
		return models.Record{}, fmt.Errorf("update password: decode response: %w", err)
	}
	if len(rows) == 0 {
		return models.Record{}, fmt.Errorf("update password: %w: %s", store.ErrRecordNotFound, id)
	}

	record, err := rows[0].toRecord()
	if err != nil {
		return models.Record{}, fmt.Errorf("update password: %w", err)
	}

	return record, nil
}

// Remove deletes the row matching id and reports whether the backend
// actually deleted anything.
func (c *remoteRecordClient) Remove(ctx context.Context, id string) (bool, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader(preferHeader, preferRepresentation).
		SetQueryParam("id", "eq."+id).
		Delete(passwordsResource)
	if err != nil {
		return false, fmt.Errorf("delete password: %w", err)
	}
	if err = mapRemoteError(resp); err != nil {
		return false, fmt.Errorf("delete password: %w", err)
	}

	var rows []passwordRow
	if err = json.Unmarshal(resp.Body(), &rows); err != nil {
		return false, fmt.Errorf("delete password: decode response: %w", err)
	}

	return len(rows) > 0, nil
}

// Stats counts all rows and the ones created within the trailing seven
// days via exact-count range requests. A failing recent-count query
// degrades to RecentCount = 0 without failing the whole call.
func (c *remoteRecordClient) Stats(ctx context.Context) (models.Stats, error) {
	log := logger.FromContext(ctx)

	total, err := c.count(ctx, nil)
	if err != nil {
		return models.Stats{}, fmt.Errorf("get stats: %w", err)
	}

	since := time.Now().UTC().Add(-models.RecentWindow)
	recent, err := c.count(ctx, map[string]string{
		"created_at": "gte." + since.Format(time.RFC3339),
	})
	if err != nil {
		log.Warn().Err(err).
			Str("func", "remoteRecordClient.Stats").
			Msg("recent count query failed, falling back to zero")
		return models.Stats{Total: total}, nil
	}

	return models.Stats{Total: total, RecentCount: recent}, nil
}

// Ping issues the lightweight count query used by connection diagnostics.
func (c *remoteRecordClient) Ping(ctx context.Context) error {
	if _, err := c.count(ctx, nil); err != nil {
		return fmt.Errorf("test connection: %w", err)
	}

	return nil
}

// count asks the backend for an exact row count, optionally filtered, and
// parses it out of the Content-Range header.
func (c *remoteRecordClient) count(ctx context.Context, filters map[string]string) (int, error) {
	req := c.client.R().
		SetContext(ctx).
		SetHeader(preferHeader, preferExactCount).
		SetHeader("Range", "0-0").
		SetQueryParam("select", "id")
	for name, value := range filters {
		req.SetQueryParam(name, value)
	}

	resp, err := req.Get(passwordsResource)
	if err != nil {
		return 0, err
	}
	if err = mapRemoteError(resp); err != nil {
		return 0, err
	}

	return parseContentRangeTotal(resp.Header().Get("Content-Range"))
}

// parseContentRangeTotal extracts the total from a Content-Range value of
// the form "0-0/42" or "*/0".
func parseContentRangeTotal(value string) (int, error) {
	_, totalPart, found := strings.Cut(value, "/")
	if !found {
		return 0, fmt.Errorf("%w: malformed content-range %q", ErrRemoteRequest, value)
	}

	total, err := strconv.Atoi(strings.TrimSpace(totalPart))
	if err != nil {
		return 0, fmt.Errorf("%w: malformed content-range %q", ErrRemoteRequest, value)
	}

	return total, nil
}

func decodeRows(body []byte) ([]models.Record, error) {
	var rows []passwordRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return toRecords(rows)
}

func decodeSingleRow(body []byte) (models.Record, error) {
	var rows []passwordRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return models.Record{}, fmt.Errorf("decode response: %w", err)
	}
	if len(rows) != 1 {
		return models.Record{}, fmt.Errorf("%w: got %d", ErrUnexpectedRowCount, len(rows))
	}

	return rows[0].toRecord()
}

func mapRemoteError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	return fmt.Errorf("%w: http %d: %s", ErrRemoteRequest, resp.StatusCode(), body)
}
