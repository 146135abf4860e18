// Package auth supplies the credentials the Helix dispatcher attaches to
// requests: a client id, a bearer token and the scopes that token carries.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	// TokenURL is the Twitch OAuth2 token endpoint.
	TokenURL = "https://id.twitch.tv/oauth2/token"
	// ValidateURL is the Twitch token validation endpoint.
	ValidateURL = "https://id.twitch.tv/oauth2/validate"
)

var (
	// ErrInvalidToken indicates the token was rejected by Twitch
	ErrInvalidToken = errors.New("invalid access token")
	// ErrEmptyToken indicates no access token was provided
	ErrEmptyToken = errors.New("access token is required")
)

// Token is a credential that can authorize a Helix request.
// Implementations must be safe for concurrent use.
type Token interface {
	// ClientID is the id of the application the token was issued to.
	ClientID() string
	// Scopes are the scopes granted to the token.
	Scopes() []Scope
	// AccessToken returns the bearer token to send.
	AccessToken(ctx context.Context) (string, error)
}

// UserToken is an existing user access token.
type UserToken struct {
	Token     string
	Client    string
	Login     string
	UserID    string
	Granted   []Scope
	ExpiresAt time.Time
}

// ClientID implements Token
func (t *UserToken) ClientID() string { return t.Client }

// Scopes implements Token
func (t *UserToken) Scopes() []Scope { return t.Granted }

// AccessToken implements Token
func (t *UserToken) AccessToken(context.Context) (string, error) {
	if t.Token == "" {
		return "", ErrEmptyToken
	}
	return t.Token, nil
}

// ValidateError is returned when the validation endpoint rejects a token
type ValidateError struct {
	Status  int
	Message string
}

func (e *ValidateError) Error() string {
	return fmt.Sprintf("token validation failed: status %d: %s", e.Status, e.Message)
}

// Unwrap lets callers match ErrInvalidToken on rejected tokens
func (e *ValidateError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrInvalidToken
	}
	return nil
}

type validateResponse struct {
	ClientID  string   `json:"client_id"`
	Login     string   `json:"login"`
	Scopes    []string `json:"scopes"`
	UserID    string   `json:"user_id"`
	ExpiresIn int64    `json:"expires_in"`
	Message   string   `json:"message"`
}

// Validate checks an access token against Twitch and returns a UserToken
// carrying the client id, login and scopes Twitch reports for it.
func Validate(ctx context.Context, httpClient *http.Client, accessToken string) (*UserToken, error) {
	return validateAt(ctx, httpClient, ValidateURL, accessToken)
}

func validateAt(ctx context.Context, httpClient *http.Client, validateURL, accessToken string) (*UserToken, error) {
	accessToken = strings.TrimPrefix(strings.TrimSpace(accessToken), "oauth:")
	if accessToken == "" {
		return nil, ErrEmptyToken
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, validateURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+accessToken)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var vr validateResponse
	if err := json.Unmarshal(body, &vr); err != nil && resp.StatusCode == http.StatusOK {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := vr.Message
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return nil, &ValidateError{Status: resp.StatusCode, Message: msg}
	}

	token := &UserToken{
		Token:   accessToken,
		Client:  vr.ClientID,
		Login:   vr.Login,
		UserID:  vr.UserID,
		Granted: ParseScopes(vr.Scopes),
	}
	if vr.ExpiresIn > 0 {
		token.ExpiresAt = time.Now().Add(time.Duration(vr.ExpiresIn) * time.Second)
	}
	return token, nil
}

// AppToken is an app access token obtained with the client credentials
// flow. Tokens are cached and refreshed by the underlying token source.
type AppToken struct {
	clientID string
	scopes   []Scope
	source   oauth2.TokenSource
}

// AppTokenOption configures an AppToken
type AppTokenOption func(*clientcredentials.Config)

// WithTokenURL overrides the token endpoint.
func WithTokenURL(tokenURL string) AppTokenOption {
	return func(c *clientcredentials.Config) {
		c.TokenURL = tokenURL
	}
}

// NewAppToken creates an app token source. The context carries the HTTP
// client used for token requests (see oauth2.HTTPClient) and must outlive
// the returned token.
func NewAppToken(ctx context.Context, clientID, clientSecret string, scopes []Scope, opts ...AppTokenOption) (*AppToken, error) {
	if clientID == "" {
		return nil, fmt.Errorf("client id is required")
	}
	if clientSecret == "" {
		return nil, fmt.Errorf("client secret is required")
	}

	raw := make([]string, len(scopes))
	for i, s := range scopes {
		raw[i] = string(s)
	}

	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     TokenURL,
		Scopes:       raw,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &AppToken{
		clientID: clientID,
		scopes:   scopes,
		source:   cfg.TokenSource(ctx),
	}, nil
}

// ClientID implements Token
func (t *AppToken) ClientID() string { return t.clientID }

// Scopes implements Token
func (t *AppToken) Scopes() []Scope { return t.scopes }

// AccessToken implements Token. A cached token is returned immediately;
// otherwise a token is fetched and ctx bounds how long the caller waits for
// it. An abandoned fetch still completes and fills the cache.
func (t *AppToken) AccessToken(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		tok *oauth2.Token
		err error
	}
	done := make(chan result, 1)
	go func() {
		tok, err := t.source.Token()
		done <- result{tok: tok, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", fmt.Errorf("failed to fetch app access token: %w", r.err)
		}
		return r.tok.AccessToken, nil
	}
}
