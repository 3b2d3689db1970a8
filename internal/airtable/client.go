package airtable

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"suumosync/internal/config"
	"suumosync/internal/logger"
)

// Client talks to the record store's REST API, scoped to one base. Calls
// carry the request context and are made once each: no retries and no
// client-side timeout beyond what the context imposes.
type Client struct {
	http   *resty.Client
	baseID string
	log    *logger.Logger
}

// NewClient builds a Client from the store configuration.
func NewClient(cfg config.AirtableConfig, log *logger.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.APIURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:   httpClient,
		baseID: cfg.BaseID,
		log:    log,
	}
}

type record struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields,omitempty"`
}

type recordList struct {
	Records []record `json:"records"`
}

// FindFirstByName looks up the first record whose Name field equals name
// exactly. An empty name is never looked up.
func (c *Client) FindFirstByName(ctx context.Context, tableID, name string) (string, bool, error) {
	if name == "" {
		return "", false, nil
	}

	var out recordList
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("filterByFormula", nameFormula(name)).
		SetQueryParam("maxRecords", "1").
		SetResult(&out).
		Get(c.tablePath(tableID))
	if err != nil {
		return "", false, fmt.Errorf("find %q in table %s: %w", name, tableID, err)
	}
	if resp.IsError() {
		return "", false, fmt.Errorf("find %q in table %s: status %d: %s", name, tableID, resp.StatusCode(), resp.String())
	}

	if len(out.Records) == 0 {
		c.log.Debug("Record not found", map[string]any{"table": tableID, "name": name})
		return "", false, nil
	}
	return out.Records[0].ID, true, nil
}

// CreateRecord creates one record and returns its ID. fields marshals
// into the store's "fields" envelope as-is.
func (c *Client) CreateRecord(ctx context.Context, tableID string, fields any) (string, error) {
	var out record
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"fields": fields}).
		SetResult(&out).
		Post(c.tablePath(tableID))
	if err != nil {
		return "", fmt.Errorf("create record in table %s: %w", tableID, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("create record in table %s: status %d: %s", tableID, resp.StatusCode(), resp.String())
	}

	c.log.Debug("Record created", map[string]any{"table": tableID, "id": out.ID})
	return out.ID, nil
}

// GetOrCreateByName finds a record by exact Name or creates it with just
// that field. Lookup strictly precedes creation; nothing prevents two
// concurrent callers from double-creating, the store itself does not
// enforce Name uniqueness.
func (c *Client) GetOrCreateByName(ctx context.Context, tableID, name string) (string, error) {
	if name == "" {
		return "", nil
	}

	id, found, err := c.FindFirstByName(ctx, tableID, name)
	if err != nil {
		return "", err
	}
	if found {
		return id, nil
	}
	return c.CreateRecord(ctx, tableID, map[string]any{"Name": name})
}

// Ping probes the given table with a single-record list call. Used by
// the readiness endpoint.
func (c *Client) Ping(ctx context.Context, tableID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("maxRecords", "1").
		Get(c.tablePath(tableID))
	if err != nil {
		return fmt.Errorf("ping table %s: %w", tableID, err)
	}
	if resp.IsError() {
		return fmt.Errorf("ping table %s: status %d: %s", tableID, resp.StatusCode(), resp.String())
	}
	return nil
}

func (c *Client) tablePath(tableID string) string {
	return fmt.Sprintf("/v0/%s/%s", c.baseID, tableID)
}

// nameFormula builds the exact-match filter formula, escaping single
// quotes inside the value.
func nameFormula(name string) string {
	return fmt.Sprintf("{Name}='%s'", strings.ReplaceAll(name, "'", `\'`))
}
