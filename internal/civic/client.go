package civic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds a single request when the config does not say
// otherwise.
const DefaultTimeout = 5 * time.Second

// FetchErrorKind distinguishes the ways a fetch can fail.
type FetchErrorKind int

const (
	ErrUnreachable FetchErrorKind = iota // transport/connection failure
	ErrTimeout                           // request exceeded its deadline
	ErrHTTP                              // non-200 response
	ErrMalformed                         // 200 but unparseable body
)

func (k FetchErrorKind) String() string {
	switch k {
	case ErrUnreachable:
		return "unreachable"
	case ErrTimeout:
		return "timeout"
	case ErrHTTP:
		return "http_error"
	case ErrMalformed:
		return "malformed_body"
	default:
		return "unknown"
	}
}

// FetchError is the typed failure returned by every Client call.
type FetchError struct {
	Kind   FetchErrorKind
	Status int // set only for ErrHTTP
	cause  error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case ErrTimeout:
		return "request timed out"
	case ErrHTTP:
		return fmt.Sprintf("API error: HTTP %d", e.Status)
	case ErrMalformed:
		return fmt.Sprintf("malformed response: %v", e.cause)
	default:
		return fmt.Sprintf("connection error: %v", e.cause)
	}
}

func (e *FetchError) Unwrap() error { return e.cause }

// Client is a read-only HTTP client for the CivicSense API. It performs
// no retries; the refresh controller's polling cadence is the retry
// mechanism.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		timeout: timeout,
		logger:  logger,
	}
}

// Dashboard fetches the full dashboard payload for one organization.
// The returned snapshot is complete: absent fields decode to empty
// slices and zero metrics, and FetchedAt is stamped on success.
func (c *Client) Dashboard(ctx context.Context, orgID string) (*Snapshot, error) {
	var snap Snapshot
	if err := c.getJSON(ctx, "/dashboard/"+url.PathEscape(orgID), &snap); err != nil {
		return nil, err
	}
	snap.normalize()
	snap.FetchedAt = time.Now().UTC()
	c.logger.Debug("fetched dashboard",
		"org", orgID,
		"parent_tickets", len(snap.ParentTickets),
		"all_tickets", len(snap.AllTickets),
		"activity", len(snap.RecentActivity))
	return &snap, nil
}

// Organizations lists the organizations known to the backend. Feeds
// the TUI organization selector.
func (c *Client) Organizations(ctx context.Context) ([]Organization, error) {
	var list organizationList
	if err := c.getJSON(ctx, "/organizations", &list); err != nil {
		return nil, err
	}
	return list.Organizations, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &FetchError{Kind: ErrUnreachable, cause: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &FetchError{Kind: ErrTimeout, cause: err}
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return &FetchError{Kind: ErrTimeout, cause: err}
		}
		return &FetchError{Kind: ErrUnreachable, cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return &FetchError{Kind: ErrHTTP, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Kind: ErrMalformed, cause: err}
	}
	return nil
}
