package servicenow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ticketsweep/internal/logging"
	"ticketsweep/internal/services"
	"ticketsweep/internal/ticket"
)

const (
	userAgent = "ticketsweep/0.1.0"

	// closedAtLayout is the naive timestamp format the table API emits.
	// Values are wall-clock UTC with no zone marker.
	closedAtLayout = "2006-01-02 15:04:05"
)

// ErrUnauthorized indicates the instance rejected the supplied credentials.
var ErrUnauthorized = errors.New("incorrect username or password")

// HTTPDoer describes the HTTP client used by the remote metadata client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Credentials carries the basic auth identity applied to every call.
type Credentials struct {
	Username string
	Password string
}

// Options configures a Client.
type Options struct {
	// Instance is the remote host, e.g. "dev12345.service-now.com".
	Instance    string
	Credentials Credentials
	// HoldTag is the label sys_id marking a retention hold.
	HoldTag string
	// Location is the zone closure timestamps are converted into.
	Location *time.Location
	Timeout  time.Duration
	// BaseURL overrides the https://<instance> derivation (tests).
	BaseURL string
	// HTTPClient overrides the default client (tests).
	HTTPClient HTTPDoer
	Logger     *slog.Logger
}

// Client fetches ticket lifecycle facts from one instance.
type Client struct {
	baseURL  string
	instance string
	creds    Credentials
	holdTag  string
	location *time.Location
	client   HTTPDoer
	logger   *slog.Logger
}

// NewClient builds a remote metadata client.
func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://" + strings.TrimSpace(opts.Instance)
	}
	location := opts.Location
	if location == nil {
		location = time.UTC
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:  baseURL,
		instance: strings.TrimSpace(opts.Instance),
		creds:    opts.Credentials,
		holdTag:  strings.TrimSpace(opts.HoldTag),
		location: location,
		client:   client,
		logger:   logging.NewComponentLogger(opts.Logger, "servicenow"),
	}
}

// CheckAuth performs a cheap authenticated probe so bad credentials fail
// before the per-ticket fan-out starts.
func (c *Client) CheckAuth(ctx context.Context) error {
	var probe envelope[requestItem]
	err := c.getJSON(ctx, "sc_req_item", url.Values{"sysparm_limit": {"1"}}, &probe)
	if errors.Is(err, ErrUnauthorized) {
		return err
	}
	if err != nil {
		return services.Wrap(services.ErrTransient, "servicenow", "auth probe",
			"instance unreachable or returned an unexpected status", err)
	}
	return nil
}

// FetchTicket performs the three per-ticket lookups and combines them into
// Facts. A failed or empty request-item lookup is an error the caller drops
// the ticket on; username and label failures degrade to sentinel values.
func (c *Client) FetchTicket(ctx context.Context, id ticket.ID) (Facts, error) {
	logger := logging.WithContext(ctx, c.logger)

	var items envelope[requestItem]
	query := url.Values{"sysparm_query": {"number=" + id.String()}}
	if err := c.getJSON(ctx, "sc_req_item", query, &items); err != nil {
		return Facts{}, services.Wrap(services.ErrTransient, "servicenow", "fetch request item",
			fmt.Sprintf("lookup for %s failed", id), err)
	}
	if len(items.Result) == 0 {
		return Facts{}, services.Wrap(services.ErrNotFound, "servicenow", "fetch request item",
			fmt.Sprintf("no request item numbered %s", id), nil)
	}
	item := items.Result[0]

	facts := Facts{
		RemoteID: item.SysID,
		ClosedBy: ticket.UnknownCloser,
		DeepLink: fmt.Sprintf("%s/nav_to.do?uri=sc_req_item.do?sys_id=%s", c.baseURL, item.SysID),
	}

	if closedAt, ok := c.parseClosedAt(item.ClosedAt, logger); ok {
		facts.ClosedAt = &closedAt
	}

	// The closer reference only means anything once the item went inactive.
	if item.Active == "false" && item.ClosedBy.Value != "" {
		facts.ClosedBy = c.lookupCloser(ctx, item.ClosedBy.Value, logger)
	}
	facts.HasRetentionHold = c.lookupHold(ctx, id, logger)

	return facts, nil
}

// parseClosedAt interprets the naive closure timestamp as UTC and converts it
// to the policy zone. Missing or malformed values leave the ticket open.
func (c *Client) parseClosedAt(raw string, logger *slog.Logger) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	parsed, err := time.ParseInLocation(closedAtLayout, raw, time.UTC)
	if err != nil {
		logger.Warn("unparseable closed_at value, treating ticket as open",
			logging.String("closed_at", raw), logging.Error(err))
		return time.Time{}, false
	}
	return parsed.In(c.location), true
}

func (c *Client) lookupCloser(ctx context.Context, closerID string, logger *slog.Logger) string {
	var users envelope[userRecord]
	query := url.Values{"sysparm_query": {"sys_id=" + closerID}}
	if err := c.getJSON(ctx, "sys_user", query, &users); err != nil {
		logger.Warn("closer lookup failed, using unknown",
			logging.String("closer_id", closerID), logging.Error(err))
		return ticket.UnknownCloser
	}
	if len(users.Result) == 0 || strings.TrimSpace(users.Result[0].UserName) == "" {
		return ticket.UnknownCloser
	}
	return users.Result[0].UserName
}

func (c *Client) lookupHold(ctx context.Context, id ticket.ID, logger *slog.Logger) bool {
	var labels envelope[labelEntry]
	query := url.Values{"sysparm_query": {"id_display=" + id.String()}}
	if err := c.getJSON(ctx, "label_entry", query, &labels); err != nil {
		logger.Warn("label lookup failed, assuming no retention hold", logging.Error(err))
		return false
	}
	for _, entry := range labels.Result {
		if entry.Label.Value == c.holdTag {
			return true
		}
	}
	return false
}

func (c *Client) getJSON(ctx context.Context, table string, query url.Values, out any) error {
	target := fmt.Sprintf("%s/api/now/table/%s", c.baseURL, table)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", table, err)
	}
	req.SetBasicAuth(c.creds.Username, c.creds.Password)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("query %s: %w", table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("%s returned %d: %s", table, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", table, err)
	}
	return nil
}
