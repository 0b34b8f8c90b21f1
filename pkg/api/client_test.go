package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/syncvault/pkg/api"
	"tableflip.dev/syncvault/pkg/apperror"
	"tableflip.dev/syncvault/pkg/query"
	"tableflip.dev/syncvault/pkg/snippet"
	"tableflip.dev/syncvault/pkg/vaulttest"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newClient(t *testing.T, srv *vaulttest.Server, token string, opts ...api.Option) *api.Client {
	t.Helper()
	c, err := api.New(srv.URL, staticToken(token), opts...)
	require.NoError(t, err)
	return c
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	_, err := api.New("ftp://example.com", nil)
	assert.Error(t, err)
	_, err = api.New("://nope", nil)
	assert.Error(t, err)
}

func TestLoginAndSignup(t *testing.T) {
	srv := vaulttest.New(t)
	c := newClient(t, srv, "")
	ctx := context.Background()

	t.Run("signup returns token", func(t *testing.T) {
		resp, err := c.Signup(ctx, snippet.Credentials{Email: "a@example.com", Password: "pw"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "a@example.com", resp.User.Email)
		assert.NotEmpty(t, resp.Message)
	})

	t.Run("duplicate signup surfaces server message", func(t *testing.T) {
		_, err := c.Signup(ctx, snippet.Credentials{Email: "a@example.com", Password: "pw"})
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, api.StatusCode(err))
		assert.Equal(t, "User already exists", apperror.UserMessage(err, "generic"))
	})

	t.Run("bad password is not a lost session", func(t *testing.T) {
		var fired atomic.Int32
		c := newClient(t, srv, "", api.WithUnauthorizedHandler(func() { fired.Add(1) }))
		_, err := c.Login(ctx, snippet.Credentials{Email: "a@example.com", Password: "wrong"})
		require.Error(t, err)
		assert.False(t, api.IsUnauthorized(err))
		assert.Equal(t, int32(0), fired.Load())
		assert.Equal(t, "Invalid credentials", apperror.UserMessage(err, "generic"))
	})

	t.Run("login", func(t *testing.T) {
		resp, err := c.Login(ctx, snippet.Credentials{Email: "a@example.com", Password: "pw"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
	})
}

func TestStaleTokenStillSentToLogin(t *testing.T) {
	srv := vaulttest.New(t)
	srv.AddUser("x@example.com", "pw")
	c := newClient(t, srv, "stale-token")
	_, err := c.Login(context.Background(), snippet.Credentials{Email: "x@example.com", Password: "pw"})
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "Bearer stale-token", reqs[0].Authorization)
}

func TestBearerTokenAttached(t *testing.T) {
	srv := vaulttest.New(t)
	_, token := srv.AddUser("a@example.com", "pw")
	c := newClient(t, srv, token)

	_, err := c.Devices(context.Background())
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "Bearer "+token, reqs[0].Authorization)
}

func TestUnauthorizedIsExplicit(t *testing.T) {
	srv := vaulttest.New(t)
	_, token := srv.AddUser("a@example.com", "pw")
	srv.RevokeTokens()

	var fired atomic.Int32
	c := newClient(t, srv, token, api.WithUnauthorizedHandler(func() { fired.Add(1) }))

	_, err := c.Snippets(context.Background(), query.Filters{})
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))
	assert.Equal(t, http.StatusUnauthorized, api.StatusCode(err))
	assert.Equal(t, int32(1), fired.Load())
	// no retry
	assert.Equal(t, 1, srv.CountRequests(http.MethodGet, "/snippets"))
}

func TestDevices(t *testing.T) {
	srv := vaulttest.New(t)
	user, token := srv.AddUser("a@example.com", "pw")
	c := newClient(t, srv, token)
	ctx := context.Background()

	list, err := c.Devices(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	d, err := c.RegisterDevice(ctx, "laptop")
	require.NoError(t, err)
	assert.Equal(t, "laptop", d.Name)
	assert.NotEmpty(t, d.ID)

	srv.AddDevice(user.ID, "phone")
	list, err = c.Devices(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, c.DeleteDevice(ctx, d.ID))
	list, err = c.Devices(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	err = c.DeleteDevice(ctx, "missing")
	assert.Equal(t, http.StatusNotFound, api.StatusCode(err))

	assert.Error(t, c.DeleteDevice(ctx, " "))
}

func TestSnippetsToleratesStringTags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"1","content":"one","tags":["a"],"type":"text"},
			{"id":"2","content":"two","tags":"a, b","type":"code"},
			{"id":"3","content":"three","tags":null,"type":"link"}
		]`))
	}))
	t.Cleanup(srv.Close)
	c, err := api.New(srv.URL, staticToken("t"))
	require.NoError(t, err)

	got, err := c.Snippets(context.Background(), query.Filters{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, snippet.Tags{"a"}, got[0].Tags)
	assert.Equal(t, snippet.Tags{"a", "b"}, got[1].Tags)
	assert.Empty(t, got[2].Tags)
	assert.Len(t, query.Search(got, "b"), 1)
}

func TestSnippetFiltersAreSentAsQuery(t *testing.T) {
	srv := vaulttest.New(t)
	user, token := srv.AddUser("a@example.com", "pw")
	srv.AddSnippet(user.ID, snippet.Snippet{Content: "one", Tags: []string{"work"}, DeviceID: "d1", Type: snippet.Code})
	srv.AddSnippet(user.ID, snippet.Snippet{Content: "two", Tags: []string{"home"}, DeviceID: "d2", Type: snippet.Text})
	c := newClient(t, srv, token)
	ctx := context.Background()

	all, err := c.Snippets(ctx, query.Filters{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	got, err := c.Snippets(ctx, query.Parse("device:d1"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "one", got[0].Content)

	got, err = c.Snippets(ctx, query.Filters{Tag: "home", Type: snippet.Text})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "two", got[0].Content)

	reqs := srv.Requests()
	assert.Equal(t, "", reqs[0].Query)
	assert.Equal(t, "deviceId=d1", reqs[1].Query)
	assert.Equal(t, "tag=home&type=text", reqs[2].Query)
}

func TestSnippetCreateGetDelete(t *testing.T) {
	srv := vaulttest.New(t)
	user, token := srv.AddUser("a@example.com", "pw")
	c := newClient(t, srv, token)
	ctx := context.Background()

	created, err := c.CreateSnippet(ctx, snippet.CreateRequest{
		Content:  "echo hi",
		Tags:     "shell, quick",
		DeviceID: "d1",
		Type:     snippet.Code,
	})
	require.NoError(t, err)
	assert.Equal(t, snippet.Tags{"shell", "quick"}, created.Tags)
	assert.Equal(t, user.ID, created.UserID)

	reqs := srv.Requests()
	assert.True(t, strings.Contains(reqs[0].Body, `"tags":"shell, quick"`), reqs[0].Body)

	got, err := c.Snippet(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "echo hi", got.Content)

	require.NoError(t, c.DeleteSnippet(ctx, created.ID))
	_, err = c.Snippet(ctx, created.ID)
	assert.Equal(t, http.StatusNotFound, api.StatusCode(err))
	assert.Equal(t, "Snippet not found", apperror.UserMessage(err, "generic"))
}

func TestIDsArePathEscaped(t *testing.T) {
	srv := vaulttest.New(t)
	_, token := srv.AddUser("a@example.com", "pw")
	c := newClient(t, srv, token)

	_ = c.DeleteSnippet(context.Background(), "a/b")
	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/snippets/a/b", reqs[0].Path)
	assert.Equal(t, http.StatusNotFound, api.StatusCode(c.DeleteSnippet(context.Background(), "a/b")))
}

func TestServerErrorWithoutMessageFallsBack(t *testing.T) {
	srv := vaulttest.New(t)
	_, token := srv.AddUser("a@example.com", "pw")
	srv.Fail(http.MethodGet, "/snippets", http.StatusInternalServerError, "")
	c := newClient(t, srv, token)

	_, err := c.Snippets(context.Background(), query.Filters{})
	require.Error(t, err)
	assert.False(t, api.IsUnauthorized(err))
	assert.Equal(t, http.StatusInternalServerError, api.StatusCode(err))
	assert.Equal(t, "Failed to fetch snippets", apperror.UserMessage(err, "Failed to fetch snippets"))
	assert.Contains(t, err.Error(), "500 Internal Server Error")
}

func TestTransportFailure(t *testing.T) {
	srv := vaulttest.New(t)
	url := srv.URL
	srv.Close()

	c, err := api.New(url, staticToken("t"))
	require.NoError(t, err)
	_, err = c.Devices(context.Background())
	require.Error(t, err)
	var te *api.TransportError
	assert.ErrorAs(t, err, &te)
	assert.Equal(t, "Failed to load devices", apperror.UserMessage(err, "Failed to load devices"))
}
