// Package helixtest provides a fake Helix server for tests of endpoint
// declarations and code built on the helix client.
package helixtest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/shurizzle/twitch-api2/auth"
	"github.com/shurizzle/twitch-api2/helix"
)

// ClientID is the client id of tokens returned by Token.
const ClientID = "test-client-id"

// AccessToken is the bearer token of tokens returned by Token.
const AccessToken = "test-access-token"

// Recorded is a request received by the Server.
type Recorded struct {
	Method string
	// URI is the request URI as received, path and query.
	URI    string
	Header http.Header
	Body   []byte
}

// Server is a fake Helix API recording every request it receives.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Recorded
}

// NewServer starts a server answering with handler. It is closed when the
// test ends.
func NewServer(t testing.TB, handler http.HandlerFunc) *Server {
	t.Helper()

	s := &Server{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.requests = append(s.requests, Recorded{
			Method: r.Method,
			URI:    r.URL.RequestURI(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the Helix root served by s.
func (s *Server) BaseURL() string {
	return s.URL + "/helix/"
}

// Client returns a helix client pointed at s.
func (s *Server) Client(t testing.TB, opts ...helix.Option) *helix.Client {
	t.Helper()

	opts = append([]helix.Option{helix.WithHTTPClient(s.Server.Client())}, opts...)
	client, err := helix.NewClient(helix.Config{BaseURL: s.BaseURL()}, opts...)
	if err != nil {
		t.Fatalf("helixtest: creating client: %v", err)
	}
	return client
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.requests...)
}

// Token returns a user token holding the given scopes.
func Token(scopes ...auth.Scope) *auth.UserToken {
	return &auth.UserToken{
		Token:   AccessToken,
		Client:  ClientID,
		Login:   "twitchdev",
		UserID:  "141981764",
		Granted: scopes,
	}
}

// Respond returns a handler writing status and a JSON body.
func Respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

// Sequence returns a handler answering the n-th request with the n-th
// handler. Requests past the end get 500.
func Sequence(handlers ...http.HandlerFunc) http.HandlerFunc {
	var (
		mu sync.Mutex
		n  int
	)
	return func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		i := n
		n++
		mu.Unlock()
		if i >= len(handlers) {
			http.Error(w, `{"error":"Internal Server Error","status":500,"message":"unexpected request"}`, http.StatusInternalServerError)
			return
		}
		handlers[i](w, r)
	}
}
