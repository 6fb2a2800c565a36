package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("t0ken", "acme", "team-project-management", zap.NewNop().Sugar(),
		WithBaseAPI(srv.URL))
	return c, srv
}

func TestHeaders(t *testing.T) {
	c := NewClient("t0ken", "acme", "repo", zap.NewNop().Sugar())
	h := c.Headers()
	assert.Equal(t, "token t0ken", h["Authorization"])
	assert.Equal(t, AcceptV3, h["Accept"])
}

func TestBranchExists(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/team-project-management/branches/feat/label-color-standard", r.URL.Path)
		assert.Equal(t, "token t0ken", r.Header.Get("Authorization"))
		assert.Equal(t, AcceptV3, r.Header.Get("Accept"))
		_ = json.NewEncoder(w).Encode(map[string]string{"name": "feat/label-color-standard"})
	}))

	assert.True(t, c.BranchExists(context.Background(), "feat/label-color-standard"))
}

func TestBranchExists_NotFound(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	assert.False(t, c.BranchExists(context.Background(), "missing"))
}

func TestGet_ServerError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	assert.False(t, c.BranchExists(context.Background(), "main"))
}

func TestGet_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := NewClient("t0ken", "acme", "repo", zap.NewNop().Sugar(), WithBaseAPI(srv.URL))
	srv.Close() // connection refused from here on

	assert.False(t, c.BranchExists(context.Background(), "main"))
}

func TestGet_MalformedJSON(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	assert.False(t, c.BranchExists(context.Background(), "main"))
}

func TestFileContent(t *testing.T) {
	// GitHub wraps base64 payloads with newlines.
	encoded := base64.StdEncoding.EncodeToString([]byte("# Label docs\n"))
	wrapped := encoded[:4] + "\n" + encoded[4:] + "\n"

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/team-project-management/contents/docs/labels.md", r.URL.Path)
		assert.Equal(t, "feat/label-color-standard", r.URL.Query().Get("ref"))
		_ = json.NewEncoder(w).Encode(map[string]string{"content": wrapped, "encoding": "base64"})
	}))

	content, ok := c.FileContent(context.Background(), "docs/labels.md", "feat/label-color-standard")
	require.True(t, ok)
	assert.Equal(t, "# Label docs\n", content)
}

func TestFileContent_BadBase64(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"content": "!!! not base64 !!!"})
	}))
	_, ok := c.FileContent(context.Background(), "docs/labels.md", "main")
	assert.False(t, ok)
}

func TestFileContent_MissingContentField(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"type": "dir"})
	}))
	_, ok := c.FileContent(context.Background(), "docs", "main")
	assert.False(t, ok)
}

func TestListIssues(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/team-project-management/issues", r.URL.Path)
		assert.Equal(t, "open", r.URL.Query().Get("state"))
		assert.Equal(t, "30", r.URL.Query().Get("per_page"))
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"number": 7, "title": "Label standard documentation", "labels": []map[string]string{{"name": "bug"}}},
		})
	}))

	issues, ok := c.ListIssues(context.Background(), "open")
	require.True(t, ok)
	require.Len(t, issues, 1)
	assert.Equal(t, 7, issues[0].Number)
	assert.Equal(t, []string{"bug"}, issues[0].LabelNames())
	assert.Nil(t, issues[0].PullRequest)
}

func TestListComments(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/team-project-management/issues/7/comments", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]map[string]string{{"body": "done"}})
	}))

	comments, ok := c.ListComments(context.Background(), 7)
	require.True(t, ok)
	require.Len(t, comments, 1)
	assert.Equal(t, "done", comments[0].Body)
}
