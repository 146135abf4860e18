// Package streams declares the Helix endpoints regarding streams.
package streams

import (
	"github.com/shurizzle/twitch-api2/auth"
	"github.com/shurizzle/twitch-api2/helix"
	"github.com/shurizzle/twitch-api2/types"
)

// StreamType is the type of a stream. Helix only returns live streams.
type StreamType string

const (
	StreamTypeAll  StreamType = "all"
	StreamTypeLive StreamType = "live"
)

// Stream is returned by Get Streams
type Stream struct {
	ID           types.StreamID    `json:"id"`
	UserID       types.UserID      `json:"user_id"`
	UserLogin    types.UserName    `json:"user_login"`
	UserName     types.DisplayName `json:"user_name"`
	GameID       types.CategoryID  `json:"game_id"`
	GameName     string            `json:"game_name"`
	Type         StreamType        `json:"type"`
	Title        string            `json:"title"`
	Tags         []string          `json:"tags"`
	ViewerCount  int               `json:"viewer_count"`
	StartedAt    types.Timestamp   `json:"started_at"`
	Language     string            `json:"language"`
	ThumbnailURL string            `json:"thumbnail_url"`
	IsMature     bool              `json:"is_mature"`
}

// GetStreamsRequest gets live streams, sorted by viewer count.
//
// https://dev.twitch.tv/docs/api/reference#get-streams
type GetStreamsRequest struct {
	helix.Get[[]Stream]

	After  helix.Cursor `query:"after,omitempty"`
	Before helix.Cursor `query:"before,omitempty" validate:"excluded_with=After"`
	// First is the page size. Maximum: 100. Default: 20.
	First     int                `query:"first,omitempty" validate:"omitempty,min=1,max=100"`
	GameID    []types.CategoryID `query:"game_id,omitempty" validate:"max=100"`
	Language  []string           `query:"language,omitempty" validate:"max=100"`
	Type      StreamType         `query:"type,omitempty" validate:"omitempty,oneof=all live"`
	UserID    []types.UserID     `query:"user_id,omitempty" validate:"max=100"`
	UserLogin []types.UserName   `query:"user_login,omitempty" validate:"max=100"`
}

func (GetStreamsRequest) Path() string         { return "streams" }
func (GetStreamsRequest) Scopes() []auth.Scope { return nil }

// WithCursor implements helix.Paginated. Paging is always forward.
func (r GetStreamsRequest) WithCursor(cursor helix.Cursor) GetStreamsRequest {
	r.After = cursor
	r.Before = ""
	return r
}
