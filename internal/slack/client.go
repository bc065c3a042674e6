// Package slack provides the Slack Web API collaborator: a rate-paced,
// retrying HTTP client, credential loading, and the warmed name directory
// used to resolve user, channel, usergroup, and bot ids.
package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the base URL for the Slack Web API.
	DefaultBaseURL = "https://slack.com/api"

	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultPageLimit is the per-page row limit for paginated endpoints.
	DefaultPageLimit = 200

	// pageInterval paces paginated calls under Slack's Tier 3 rate limit
	// (roughly 50 requests per minute).
	pageInterval = time.Minute / 50
)

// Client calls the Slack Web API. HTTP-level retries with backoff are
// handled by the underlying retryable client; API-level pagination is the
// caller's loop, one page per call.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// NewClient creates a client authenticating with the given token.
func NewClient(token string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = DefaultHTTPTimeout
	rc.Logger = nil

	return &Client{
		token:      token,
		httpClient: rc.StandardClient(),
		baseURL:    DefaultBaseURL,
		limiter:    rate.NewLimiter(rate.Every(pageInterval), 1),
	}
}

// WithBaseURL returns a new Client with the specified base URL.
// Useful for testing with mock servers.
func (c *Client) WithBaseURL(baseURL string) *Client {
	return &Client{
		token:      c.token,
		httpClient: c.httpClient,
		baseURL:    baseURL,
		limiter:    c.limiter,
	}
}

// WithHTTPClient returns a new Client with the specified HTTP client.
// Useful for testing with custom transports.
func (c *Client) WithHTTPClient(client *http.Client) *Client {
	return &Client{
		token:      c.token,
		httpClient: client,
		baseURL:    c.baseURL,
		limiter:    c.limiter,
	}
}

// call performs one API method call and decodes the response into out,
// surfacing non-ok API statuses as errors.
func (c *Client) call(ctx context.Context, method string, params url.Values, out response) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := c.baseURL + "/" + method
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %d", method, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", method, err)
	}
	if ok, apiErr := out.status(); !ok {
		return fmt.Errorf("%s: API error: %s", method, apiErr)
	}
	return nil
}

// AuthTest verifies the token and returns workspace and caller identity.
func (c *Client) AuthTest(ctx context.Context) (*AuthInfo, error) {
	var info AuthInfo
	if err := c.call(ctx, "auth.test", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Users fetches all workspace members, following cursors to the last page.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	cursor := ""
	for {
		params := url.Values{"limit": {strconv.Itoa(DefaultPageLimit)}}
		if cursor != "" {
			params.Set("cursor", cursor)
		}
		var resp usersListResponse
		if err := c.call(ctx, "users.list", params, &resp); err != nil {
			return nil, err
		}
		users = append(users, resp.Members...)
		cursor = resp.ResponseMetadata.NextCursor
		if cursor == "" {
			return users, nil
		}
	}
}

// Channels fetches all public and private channels, following cursors.
func (c *Client) Channels(ctx context.Context) ([]Channel, error) {
	var channels []Channel
	cursor := ""
	for {
		params := url.Values{
			"limit": {strconv.Itoa(DefaultPageLimit)},
			"types": {"public_channel,private_channel"},
		}
		if cursor != "" {
			params.Set("cursor", cursor)
		}
		var resp conversationsListResponse
		if err := c.call(ctx, "conversations.list", params, &resp); err != nil {
			return nil, err
		}
		channels = append(channels, resp.Channels...)
		cursor = resp.ResponseMetadata.NextCursor
		if cursor == "" {
			return channels, nil
		}
	}
}

// Usergroups fetches the workspace's usergroups. Not paginated by the API.
func (c *Client) Usergroups(ctx context.Context) ([]UserGroup, error) {
	var resp usergroupsListResponse
	if err := c.call(ctx, "usergroups.list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Usergroups, nil
}

// HistoryParams filters one conversations.history page request. Oldest and
// Latest are raw Slack timestamps; empty means unbounded in that direction.
type HistoryParams struct {
	Channel string
	Oldest  string
	Latest  string
	Cursor  string
	Limit   int
}

// History fetches one page of a channel's top-level messages.
func (c *Client) History(ctx context.Context, p HistoryParams) (*MessagePage, error) {
	params := url.Values{"channel": {p.Channel}}
	setPageParams(params, p.Oldest, p.Latest, p.Cursor, p.Limit)

	var resp historyResponse
	if err := c.call(ctx, "conversations.history", params, &resp); err != nil {
		return nil, err
	}
	return &MessagePage{Messages: resp.Messages, NextCursor: resp.ResponseMetadata.NextCursor}, nil
}

// RepliesParams filters one conversations.replies page request for the
// thread rooted at ThreadTS.
type RepliesParams struct {
	Channel  string
	ThreadTS string
	Oldest   string
	Latest   string
	Cursor   string
	Limit    int
}

// Replies fetches one page of a thread's messages. The page includes the
// thread parent itself as its first entry on the first page.
func (c *Client) Replies(ctx context.Context, p RepliesParams) (*MessagePage, error) {
	params := url.Values{"channel": {p.Channel}, "ts": {p.ThreadTS}}
	setPageParams(params, p.Oldest, p.Latest, p.Cursor, p.Limit)

	var resp historyResponse
	if err := c.call(ctx, "conversations.replies", params, &resp); err != nil {
		return nil, err
	}
	return &MessagePage{Messages: resp.Messages, NextCursor: resp.ResponseMetadata.NextCursor}, nil
}

// BotInfo fetches the display name for a single bot id.
func (c *Client) BotInfo(ctx context.Context, botID string) (*Bot, error) {
	params := url.Values{"bot": {botID}}
	var resp botsInfoResponse
	if err := c.call(ctx, "bots.info", params, &resp); err != nil {
		return nil, err
	}
	return &resp.Bot, nil
}

func setPageParams(params url.Values, oldest, latest, cursor string, limit int) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	params.Set("limit", strconv.Itoa(limit))
	if oldest != "" {
		params.Set("oldest", oldest)
	}
	if latest != "" {
		params.Set("latest", latest)
	}
	if cursor != "" {
		params.Set("cursor", cursor)
	}
}
