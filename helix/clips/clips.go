// Package clips declares the Helix endpoints regarding clips.
package clips

import (
	"github.com/shurizzle/twitch-api2/auth"
	"github.com/shurizzle/twitch-api2/helix"
	"github.com/shurizzle/twitch-api2/types"
)

// Clip is returned by Get Clips
type Clip struct {
	ID              types.ClipID      `json:"id"`
	URL             string            `json:"url"`
	EmbedURL        string            `json:"embed_url"`
	BroadcasterID   types.UserID      `json:"broadcaster_id"`
	BroadcasterName types.DisplayName `json:"broadcaster_name"`
	CreatorID       types.UserID      `json:"creator_id"`
	CreatorName     types.DisplayName `json:"creator_name"`
	VideoID         string            `json:"video_id"`
	GameID          types.CategoryID  `json:"game_id"`
	Language        string            `json:"language"`
	Title           string            `json:"title"`
	ViewCount       int               `json:"view_count"`
	CreatedAt       types.Timestamp   `json:"created_at"`
	ThumbnailURL    string            `json:"thumbnail_url"`
	Duration        float64           `json:"duration"`
	VODOffset       *int              `json:"vod_offset"`
	IsFeatured      bool              `json:"is_featured"`
}

// GetClipsRequest gets clips of a broadcaster, of a game, or by id.
// Exactly one of BroadcasterID, GameID and ID must be set.
//
// https://dev.twitch.tv/docs/api/reference#get-clips
type GetClipsRequest struct {
	helix.Get[[]Clip]

	BroadcasterID types.UserID     `query:"broadcaster_id,omitempty" validate:"required_without_all=GameID ID,excluded_with=GameID ID"`
	GameID        types.CategoryID `query:"game_id,omitempty" validate:"excluded_with=ID"`
	ID            []types.ClipID   `query:"id,omitempty" validate:"max=100"`
	After         helix.Cursor     `query:"after,omitempty"`
	Before        helix.Cursor     `query:"before,omitempty" validate:"excluded_with=After"`
	// First is the page size. Maximum: 100. Default: 20.
	First int `query:"first,omitempty" validate:"omitempty,min=1,max=100"`
	// StartedAt and EndedAt bound the clip creation time, RFC3339.
	StartedAt types.Timestamp `query:"started_at,omitempty"`
	EndedAt   types.Timestamp `query:"ended_at,omitempty"`
}

func (GetClipsRequest) Path() string         { return "clips" }
func (GetClipsRequest) Scopes() []auth.Scope { return nil }

// WithCursor implements helix.Paginated
func (r GetClipsRequest) WithCursor(cursor helix.Cursor) GetClipsRequest {
	r.After = cursor
	r.Before = ""
	return r
}

// CreatedClip is returned by Create Clip. The clip is processed
// asynchronously; EditURL opens the editor once it exists.
type CreatedClip struct {
	ID      types.ClipID `json:"id"`
	EditURL string       `json:"edit_url"`
}

// CreateClipRequest captures a clip of a live broadcast.
//
// https://dev.twitch.tv/docs/api/reference#create-clip
type CreateClipRequest struct {
	helix.Post[helix.EmptyBody, []CreatedClip]

	BroadcasterID types.UserID `query:"broadcaster_id" validate:"required"`
	// HasDelay adds the broadcaster's stream delay to the capture.
	HasDelay bool `query:"has_delay,omitempty"`
}

func (CreateClipRequest) Path() string { return "clips" }

func (CreateClipRequest) Scopes() []auth.Scope {
	return []auth.Scope{auth.ScopeClipsEdit}
}
