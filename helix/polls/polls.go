// Package polls declares the Helix endpoints regarding channel polls.
package polls

import (
	"github.com/shurizzle/twitch-api2/auth"
	"github.com/shurizzle/twitch-api2/helix"
	"github.com/shurizzle/twitch-api2/types"
)

// Status is the state of a poll.
type Status string

const (
	StatusActive     Status = "ACTIVE"
	StatusCompleted  Status = "COMPLETED"
	StatusTerminated Status = "TERMINATED"
	StatusArchived   Status = "ARCHIVED"
	StatusModerated  Status = "MODERATED"
	StatusInvalid    Status = "INVALID"
)

// Choice is one of the choices of a poll.
type Choice struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Votes              int64  `json:"votes"`
	ChannelPointsVotes int64  `json:"channel_points_votes"`
	BitsVotes          int64  `json:"bits_votes"`
}

// Poll is returned by the poll endpoints.
type Poll struct {
	ID                         types.PollID      `json:"id"`
	BroadcasterID              types.UserID      `json:"broadcaster_id"`
	BroadcasterName            types.DisplayName `json:"broadcaster_name"`
	BroadcasterLogin           types.UserName    `json:"broadcaster_login"`
	Title                      string            `json:"title"`
	Choices                    []Choice          `json:"choices"`
	BitsVotingEnabled          bool              `json:"bits_voting_enabled"`
	BitsPerVote                int64             `json:"bits_per_vote"`
	ChannelPointsVotingEnabled bool              `json:"channel_points_voting_enabled"`
	ChannelPointsPerVote       int64             `json:"channel_points_per_vote"`
	Status                     Status            `json:"status"`
	// Duration is the poll length in seconds.
	Duration  int64            `json:"duration"`
	StartedAt types.Timestamp  `json:"started_at"`
	EndedAt   *types.Timestamp `json:"ended_at"`
}

// GetPollsRequest gets the polls of a channel, all of them or the ones with
// the given ids. Polls are kept for 90 days.
//
// https://dev.twitch.tv/docs/api/reference#get-polls
type GetPollsRequest struct {
	helix.Get[[]Poll]

	// BroadcasterID must match the user in the token.
	BroadcasterID types.UserID   `query:"broadcaster_id" validate:"required"`
	ID            []types.PollID `query:"id,omitempty" validate:"max=100"`
	After         helix.Cursor   `query:"after,omitempty"`
	// First is the page size. Maximum: 20. Default: 20.
	First int `query:"first,omitempty" validate:"omitempty,min=1,max=20"`
}

func (GetPollsRequest) Path() string { return "polls" }

func (GetPollsRequest) Scopes() []auth.Scope {
	return []auth.Scope{auth.ScopeChannelReadPolls}
}

// WithCursor implements helix.Paginated
func (r GetPollsRequest) WithCursor(cursor helix.Cursor) GetPollsRequest {
	r.After = cursor
	return r
}
