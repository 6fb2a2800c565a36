// Package github is a small GitHub REST v3 client tailored to the
// read-only needs of the label audit: branch lookups, file contents,
// issue/PR listings and issue comments under a single repository.
package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// AcceptV3 pins the GitHub API v3 media type on every request.
const AcceptV3 = "application/vnd.github.v3+json"

// Client issues authenticated GET requests against a fixed repository
// resource root. Every call classifies the response itself and reports
// failure as a boolean; diagnostics go to the logger (stderr), never to
// stdout. Failed calls are terminal for the current run — no retries.
type Client struct {
	httpClient *http.Client
	baseAPI    string
	owner      string
	repo       string
	tokens     oauth2.TokenSource
	log        *zap.SugaredLogger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseAPI overrides the API root (useful for testing).
func WithBaseAPI(base string) Option {
	return func(c *Client) {
		c.baseAPI = strings.TrimRight(base, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient builds a client for {owner}/{repo} authenticated with a
// personal access token. The token rides a static oauth2 source with the
// classic "token" scheme, so the wire header is "Authorization: token X"
// exactly as the v3 contract expects.
func NewClient(token, owner, repo string, log *zap.SugaredLogger, opts ...Option) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "token"})
	hc := oauth2.NewClient(context.Background(), ts)
	hc.Timeout = 20 * time.Second

	c := &Client{
		httpClient: hc,
		baseAPI:    "https://api.github.com",
		owner:      owner,
		repo:       repo,
		tokens:     ts,
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Repo returns the owner/repo pair the client is bound to.
func (c *Client) Repo() string {
	return c.owner + "/" + c.repo
}

// Headers reports the header pair the transport emits, derived from the
// token source. The pipeline's header self-check compares this against
// the expected authorization/accept values.
func (c *Client) Headers() map[string]string {
	h := map[string]string{"Accept": AcceptV3}
	tok, err := c.tokens.Token()
	if err != nil {
		c.log.Errorf("token source failed: %v", err)
		return h
	}
	h["Authorization"] = tok.Type() + " " + tok.AccessToken
	return h
}

// get fetches {base}/repos/{owner}/{repo}/{endpoint} and decodes the JSON
// body into out. 200 is the only success; 404 is logged as informational
// and any other status, transport error or decode error is logged as an
// error. All of them return false.
func (c *Client) get(ctx context.Context, endpoint string, out any) bool {
	url := fmt.Sprintf("%s/repos/%s/%s/%s", c.baseAPI, c.owner, c.repo, endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.log.Errorf("github api: building request for %s failed: %v", endpoint, err)
		return false
	}
	req.Header.Set("Accept", AcceptV3)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Errorf("github api: call to %s failed: %v", endpoint, err)
		return false
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.log.Errorf("github api: decoding %s response failed: %v", endpoint, err)
			return false
		}
		return true
	case resp.StatusCode == http.StatusNotFound:
		c.log.Infof("github api: %s not found (404)", endpoint)
		return false
	default:
		c.log.Errorf("github api: %s returned status %d", endpoint, resp.StatusCode)
		return false
	}
}

// BranchExists reports whether the named branch exists.
func (c *Client) BranchExists(ctx context.Context, name string) bool {
	var branch struct {
		Name string `json:"name"`
	}
	return c.get(ctx, "branches/"+name, &branch)
}

// contentsResponse is the subset of the contents endpoint we care about.
// GitHub base64-wraps the payload with embedded newlines.
type contentsResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// FileContent fetches a file from the given ref and returns its decoded
// UTF-8 text. A missing content field or a bad base64 payload yields
// ("", false) with the reason logged.
func (c *Client) FileContent(ctx context.Context, path, ref string) (string, bool) {
	var res contentsResponse
	if ok := c.get(ctx, fmt.Sprintf("contents/%s?ref=%s", path, ref), &res); !ok {
		return "", false
	}
	if res.Content == "" {
		return "", false
	}
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(res.Content, "\n", ""))
	if err != nil {
		c.log.Errorf("github api: decoding content of %s failed: %v", path, err)
		return "", false
	}
	return string(raw), true
}

// ListIssues returns a single page of up to 30 issues in the given state.
// Pull requests surfaced by the shared listing endpoint are included;
// callers filter them via Issue.PullRequest.
func (c *Client) ListIssues(ctx context.Context, state string) ([]Issue, bool) {
	var issues []Issue
	ok := c.get(ctx, fmt.Sprintf("issues?state=%s&per_page=30", state), &issues)
	return issues, ok
}

// ListPulls returns a single page of up to 30 pull requests in the given state.
func (c *Client) ListPulls(ctx context.Context, state string) ([]PullRequest, bool) {
	var pulls []PullRequest
	ok := c.get(ctx, fmt.Sprintf("pulls?state=%s&per_page=30", state), &pulls)
	return pulls, ok
}

// ListComments returns all comments on an issue (single page, API default
// page size).
func (c *Client) ListComments(ctx context.Context, issueNumber int) ([]Comment, bool) {
	var comments []Comment
	ok := c.get(ctx, fmt.Sprintf("issues/%d/comments", issueNumber), &comments)
	return comments, ok
}
