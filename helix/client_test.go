package helix_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shurizzle/twitch-api2/auth"
	"github.com/shurizzle/twitch-api2/helix"
	"github.com/shurizzle/twitch-api2/helix/helixtest"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type listItemsRequest struct {
	helix.Get[[]item]

	ID    []string     `query:"id,omitempty" validate:"max=100"`
	After helix.Cursor `query:"after,omitempty"`
	First int          `query:"first,omitempty"`
}

func (listItemsRequest) Path() string         { return "items" }
func (listItemsRequest) Scopes() []auth.Scope { return nil }

func (r listItemsRequest) WithCursor(cursor helix.Cursor) listItemsRequest {
	r.After = cursor
	return r
}

type scopedRequest struct {
	helix.Get[[]item]
}

func (scopedRequest) Path() string { return "scoped" }

func (scopedRequest) Scopes() []auth.Scope {
	return []auth.Scope{auth.ScopeChannelReadPolls, auth.ScopeChannelManagePolls}
}

type itemCommentsRequest struct {
	helix.Get[[]item]

	ItemID string `path:"item_id" query:"-" validate:"required"`
	Sort   string `query:"sort,omitempty"`
}

func (itemCommentsRequest) Path() string         { return "items/{item_id}/comments" }
func (itemCommentsRequest) Scopes() []auth.Scope { return nil }

type firstItemRequest struct {
	helix.GetFirst[item]
}

func (firstItemRequest) Path() string         { return "items/first" }
func (firstItemRequest) Scopes() []auth.Scope { return nil }

type createItemBody struct {
	Name string `json:"name" validate:"required"`
}

func (b createItemBody) TryToBody() ([]byte, error) { return helix.JSONBody(b) }

type createItemRequest struct {
	helix.Post[createItemBody, []item]
}

func (createItemRequest) Path() string         { return "items" }
func (createItemRequest) Scopes() []auth.Scope { return nil }

type deleteItemRequest struct {
	helix.Delete[helix.NoContent]

	ID string `query:"id" validate:"required"`
}

func (deleteItemRequest) Path() string         { return "items" }
func (deleteItemRequest) Scopes() []auth.Scope { return nil }

// countingClient fails every request and counts the attempts.
type countingClient struct {
	calls atomic.Int32
	err   error
}

func (c *countingClient) Do(*http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return nil, c.err
}

func newCountingClient(t *testing.T, err error) (*helix.Client, *countingClient) {
	t.Helper()
	transport := &countingClient{err: err}
	client, err := helix.NewClient(helix.Config{}, helix.WithHTTPClient(transport))
	require.NoError(t, err)
	return client, transport
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     helix.Config
		wantURL string
		wantErr bool
	}{
		{name: "default", cfg: helix.Config{}, wantURL: helix.DefaultBaseURL},
		{name: "trailing slash added", cfg: helix.Config{BaseURL: "http://localhost:8080/mock"}, wantURL: "http://localhost:8080/mock/"},
		{name: "bad scheme", cfg: helix.Config{BaseURL: "ftp://example.com/"}, wantErr: true},
		{name: "no host", cfg: helix.Config{BaseURL: "http:///helix"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := helix.NewClient(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, client.Config().BaseURL)
			assert.Equal(t, helix.DefaultUserAgent, client.Config().UserAgent)
		})
	}
}

func TestReqGetSuccess(t *testing.T) {
	server := helixtest.NewServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Ratelimit-Limit", "800")
		w.Header().Set("Ratelimit-Remaining", "799")
		w.Header().Set("Ratelimit-Reset", "1700000000")
		helixtest.Respond(http.StatusOK, `{"data":[{"id":"1","name":"one"}],"pagination":{}}`)(w, r)
	})
	client := server.Client(t)

	req := listItemsRequest{ID: []string{"1"}}
	resp, err := helix.ReqGet(context.Background(), client, req, helixtest.Token())
	require.NoError(t, err)

	assert.Equal(t, []item{{ID: "1", Name: "one"}}, resp.Data)
	assert.False(t, resp.HasNext())
	assert.Nil(t, resp.Total)
	assert.Equal(t, req, resp.Request)
	assert.True(t, resp.RateLimit.Known())
	assert.Equal(t, 800, resp.RateLimit.Limit)
	assert.Equal(t, 799, resp.RateLimit.Remaining)
	assert.Equal(t, int64(1700000000), resp.RateLimit.Reset.Unix())

	recorded := server.Requests()
	require.Len(t, recorded, 1)
	assert.Equal(t, http.MethodGet, recorded[0].Method)
	assert.Equal(t, "/helix/items?id=1", recorded[0].URI)
	assert.Equal(t, "Bearer "+helixtest.AccessToken, recorded[0].Header.Get("Authorization"))
	assert.Equal(t, helixtest.ClientID, recorded[0].Header.Get("Client-Id"))
	assert.Equal(t, helix.DefaultUserAgent, recorded[0].Header.Get("User-Agent"))
	assert.Empty(t, recorded[0].Body)
}

func TestConfigHeaders(t *testing.T) {
	server := helixtest.NewServer(t, helixtest.Respond(http.StatusOK, `{"data":[]}`))

	client, err := helix.NewClient(helix.Config{
		BaseURL:   server.BaseURL(),
		UserAgent: "my-bot/1.0",
		Headers: http.Header{
			"X-Trace":       []string{"abc"},
			"Authorization": []string{"Basic nope"},
		},
	}, helix.WithHTTPClient(server.Server.Client()))
	require.NoError(t, err)

	_, err = helix.ReqGet(context.Background(), client, listItemsRequest{}, helixtest.Token())
	require.NoError(t, err)

	header := server.Requests()[0].Header
	assert.Equal(t, "abc", header.Get("X-Trace"))
	assert.Equal(t, "my-bot/1.0", header.Get("User-Agent"))
	assert.Equal(t, []string{"Bearer " + helixtest.AccessToken}, header.Values("Authorization"))
}

func TestMissingScopesMakeNoRequest(t *testing.T) {
	client, transport := newCountingClient(t, errors.New("unreachable"))

	_, err := helix.ReqGet(context.Background(), client, scopedRequest{}, helixtest.Token(auth.ScopeChannelReadPolls))
	require.Error(t, err)

	var scopeErr *helix.ScopeError
	require.ErrorAs(t, err, &scopeErr)
	assert.Equal(t, []auth.Scope{auth.ScopeChannelManagePolls}, scopeErr.Missing)
	assert.Equal(t, "scoped", scopeErr.Path)
	assert.ErrorIs(t, err, helix.ErrMissingScope)
	assert.Equal(t, helix.KindScope, helix.KindOf(err))
	assert.Zero(t, transport.calls.Load())
}

func TestNilToken(t *testing.T) {
	client, transport := newCountingClient(t, nil)

	_, err := helix.ReqGet(context.Background(), client, listItemsRequest{}, nil)
	assert.Equal(t, helix.KindCreateRequest, helix.KindOf(err))
	assert.Zero(t, transport.calls.Load())
}

type failingToken struct {
	err error
}

func (failingToken) ClientID() string                              { return helixtest.ClientID }
func (failingToken) Scopes() []auth.Scope                          { return nil }
func (t failingToken) AccessToken(context.Context) (string, error) { return "", t.err }

func TestCredentialFailures(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantKind  helix.ErrorKind
		retryable bool
	}{
		{
			name:      "token endpoint unreachable",
			err:       &url.Error{Op: "Post", URL: "https://id.twitch.tv/oauth2/token", Err: errors.New("connection refused")},
			wantKind:  helix.KindTransport,
			retryable: true,
		},
		{
			name:      "token fetch timed out",
			err:       context.DeadlineExceeded,
			wantKind:  helix.KindTransport,
			retryable: true,
		},
		{
			name:     "credential rejected",
			err:      errors.New("oauth2: invalid_client"),
			wantKind: helix.KindCreateRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, transport := newCountingClient(t, nil)

			_, err := helix.ReqGet(context.Background(), client, listItemsRequest{}, failingToken{err: tt.err})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.wantKind, helix.KindOf(err))
			assert.Equal(t, tt.retryable, helix.IsRetryable(err))
			assert.Zero(t, transport.calls.Load())
		})
	}
}

func TestInvalidRequestMakesNoRequest(t *testing.T) {
	client, transport := newCountingClient(t, nil)

	tests := []struct {
		name string
		call func() error
	}{
		{
			name: "query control character",
			call: func() error {
				_, err := helix.ReqGet(context.Background(), client, listItemsRequest{ID: []string{"a\nb"}}, helixtest.Token())
				return err
			},
		},
		{
			name: "missing path parameter",
			call: func() error {
				_, err := helix.ReqGet(context.Background(), client, itemCommentsRequest{}, helixtest.Token())
				return err
			},
		},
		{
			name: "invalid body",
			call: func() error {
				_, err := helix.ReqPost(context.Background(), client, createItemRequest{}, createItemBody{}, helixtest.Token())
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.Equal(t, helix.KindCreateRequest, helix.KindOf(err))
			assert.False(t, helix.IsRetryable(err))
		})
	}
	assert.Zero(t, transport.calls.Load())
}

func TestPathParameters(t *testing.T) {
	server := helixtest.NewServer(t, helixtest.Respond(http.StatusOK, `{"data":[]}`))

	req := itemCommentsRequest{ItemID: "a b/c", Sort: "new"}
	_, err := helix.ReqGet(context.Background(), server.Client(t), req, helixtest.Token())
	require.NoError(t, err)

	assert.Equal(t, "/helix/items/a%20b%2Fc/comments?sort=new", server.Requests()[0].URI)
}

func TestTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	client, transport := newCountingClient(t, cause)

	_, err := helix.ReqGet(context.Background(), client, listItemsRequest{}, helixtest.Token())
	require.Error(t, err)

	var transErr *helix.TransportError
	require.ErrorAs(t, err, &transErr)
	assert.Equal(t, http.MethodGet, transErr.Method)
	assert.Equal(t, "https://api.twitch.tv/helix/items", transErr.URI)
	assert.ErrorIs(t, err, cause)
	assert.True(t, helix.IsRetryable(err))
	assert.Equal(t, int32(1), transport.calls.Load())
}

func TestCanceledContext(t *testing.T) {
	server := helixtest.NewServer(t, helixtest.Respond(http.StatusOK, `{"data":[]}`))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := helix.ReqGet(ctx, server.Client(t), listItemsRequest{}, helixtest.Token())
	require.Error(t, err)
	assert.Equal(t, helix.KindTransport, helix.KindOf(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDeadline(t *testing.T) {
	release := make(chan struct{})
	server := helixtest.NewServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := helix.ReqGet(ctx, server.Client(t), listItemsRequest{}, helixtest.Token())
	var transErr *helix.TransportError
	require.ErrorAs(t, err, &transErr)
	assert.True(t, transErr.Timeout())
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantName    string
		wantMessage string
	}{
		{
			name:        "unauthorized",
			status:      http.StatusUnauthorized,
			body:        `{"error":"Unauthorized","status":401,"message":"Invalid OAuth token"}`,
			wantName:    "Unauthorized",
			wantMessage: "Invalid OAuth token",
		},
		{
			name:        "missing error name",
			status:      http.StatusBadRequest,
			body:        `{"status":400,"message":"Malformed query params."}`,
			wantName:    "Bad Request",
			wantMessage: "Malformed query params.",
		},
		{
			name:     "html body",
			status:   http.StatusBadGateway,
			body:     `<html><body>bad gateway</body></html>`,
			wantName: "Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := helixtest.NewServer(t, helixtest.Respond(tt.status, tt.body))

			_, err := helix.ReqGet(context.Background(), server.Client(t), listItemsRequest{}, helixtest.Token())
			require.Error(t, err)

			var statusErr *helix.StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.status, statusErr.Status)
			assert.Equal(t, tt.wantName, statusErr.ErrorName)
			assert.Equal(t, tt.wantMessage, statusErr.Message)
			assert.Equal(t, tt.body, string(statusErr.Body))
			assert.Equal(t, helix.KindStatus, helix.KindOf(err))
			assert.False(t, helix.IsRetryable(err))
		})
	}
}

func TestRateLimited(t *testing.T) {
	server := helixtest.NewServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Ratelimit-Remaining", "0")
		w.Header().Set("Ratelimit-Reset", strconv.FormatInt(time.Now().Add(time.Minute).Unix(), 10))
		helixtest.Respond(http.StatusTooManyRequests, `{"error":"Too Many Requests","status":429,"message":""}`)(w, r)
	})

	_, err := helix.ReqGet(context.Background(), server.Client(t), listItemsRequest{}, helixtest.Token())

	var statusErr *helix.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.True(t, statusErr.IsRateLimited())
	assert.Equal(t, 0, statusErr.RateLimit.Remaining)
	assert.True(t, statusErr.RateLimit.Known())
}

func TestDecodeFailures(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantKind helix.ErrorKind
	}{
		{name: "not json", body: `not json`, wantKind: helix.KindDecode},
		{name: "wrong shape", body: `{"data":{"id":"1"}}`, wantKind: helix.KindDecode},
		{name: "missing data", body: `{"pagination":{}}`, wantKind: helix.KindInvalidResponse},
		{name: "null data", body: `{"data":null}`, wantKind: helix.KindInvalidResponse},
		{name: "empty body", body: ``, wantKind: helix.KindInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := helixtest.NewServer(t, helixtest.Respond(http.StatusOK, tt.body))

			_, err := helix.ReqGet(context.Background(), server.Client(t), listItemsRequest{}, helixtest.Token())
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, helix.KindOf(err))

			var statusErr *helix.StatusError
			assert.False(t, errors.As(err, &statusErr))
		})
	}
}

func TestDecodeErrorKeepsBody(t *testing.T) {
	server := helixtest.NewServer(t, helixtest.Respond(http.StatusOK, `{"data":[{"id":1}]}`))

	_, err := helix.ReqGet(context.Background(), server.Client(t), listItemsRequest{}, helixtest.Token())

	var decodeErr *helix.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, http.StatusOK, decodeErr.Status)
	assert.Equal(t, `{"data":[{"id":1}]}`, string(decodeErr.Body))
	assert.Contains(t, decodeErr.URI, "/helix/items")
}

func TestGetFirst(t *testing.T) {
	server := helixtest.NewServer(t, helixtest.Respond(http.StatusOK, `{"data":[{"id":"1"},{"id":"2"}]}`))

	resp, err := helix.ReqGet(context.Background(), server.Client(t), firstItemRequest{}, helixtest.Token())
	require.NoError(t, err)
	assert.Equal(t, item{ID: "1"}, resp.Data)
}

func TestReqPost(t *testing.T) {
	server := helixtest.NewServer(t, helixtest.Respond(http.StatusOK, `{"data":[{"id":"9","name":"new"}]}`))

	resp, err := helix.ReqPost(context.Background(), server.Client(t), createItemRequest{}, createItemBody{Name: "new"}, helixtest.Token())
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "9", Name: "new"}}, resp.Data)

	recorded := server.Requests()[0]
	assert.Equal(t, http.MethodPost, recorded.Method)
	assert.Equal(t, "application/json", recorded.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"name":"new"}`, string(recorded.Body))
}

func TestReqPostRequiresData(t *testing.T) {
	server := helixtest.NewServer(t, helixtest.Respond(http.StatusOK, `{}`))

	_, err := helix.ReqPost(context.Background(), server.Client(t), createItemRequest{}, createItemBody{Name: "new"}, helixtest.Token())
	assert.Equal(t, helix.KindInvalidResponse, helix.KindOf(err))
}

func TestReqDeleteNoContent(t *testing.T) {
	server := helixtest.NewServer(t, helixtest.Respond(http.StatusNoContent, ""))

	resp, err := helix.ReqDelete(context.Background(), server.Client(t), deleteItemRequest{ID: "9"}, helixtest.Token())
	require.NoError(t, err)
	assert.Equal(t, helix.NoContent{}, resp.Data)
	assert.Equal(t, "/helix/items?id=9", server.Requests()[0].URI)
}

func TestDebugLogging(t *testing.T) {
	server := helixtest.NewServer(t, helixtest.Respond(http.StatusOK, `{"data":[]}`))

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	client := server.Client(t, helix.WithLogger(logger))

	_, err := helix.ReqGet(context.Background(), client, listItemsRequest{}, helixtest.Token())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Making Helix API request")
	assert.Contains(t, out, "Received Helix API response")
	assert.NotContains(t, out, helixtest.AccessToken)
}
