package polls

import (
	"github.com/shurizzle/twitch-api2/auth"
	"github.com/shurizzle/twitch-api2/helix"
	"github.com/shurizzle/twitch-api2/types"
)

// CreatePollRequest starts a poll on the channel of the token user.
//
// https://dev.twitch.tv/docs/api/reference#create-poll
type CreatePollRequest struct {
	helix.Post[CreatePollBody, []Poll]
}

func (CreatePollRequest) Path() string { return "polls" }

func (CreatePollRequest) Scopes() []auth.Scope {
	return []auth.Scope{auth.ScopeChannelManagePolls}
}

// NewPollChoice is a choice of a poll being created.
type NewPollChoice struct {
	Title string `json:"title" validate:"required,max=25"`
}

// CreatePollBody describes the poll to create.
type CreatePollBody struct {
	BroadcasterID types.UserID    `json:"broadcaster_id" validate:"required"`
	Title         string          `json:"title" validate:"required,max=60"`
	Choices       []NewPollChoice `json:"choices" validate:"min=2,max=5,dive"`
	// Duration is the poll length in seconds, 15 to 1800.
	Duration                   int64 `json:"duration" validate:"gte=15,lte=1800"`
	ChannelPointsVotingEnabled bool  `json:"channel_points_voting_enabled,omitempty"`
	ChannelPointsPerVote       int64 `json:"channel_points_per_vote,omitempty" validate:"omitempty,min=1,max=1000000"`
}

// TryToBody implements helix.HelixRequestBody
func (b CreatePollBody) TryToBody() ([]byte, error) { return helix.JSONBody(b) }

// EndPollRequest ends an active poll.
//
// https://dev.twitch.tv/docs/api/reference#end-poll
type EndPollRequest struct {
	helix.Patch[EndPollBody, []Poll]
}

func (EndPollRequest) Path() string { return "polls" }

func (EndPollRequest) Scopes() []auth.Scope {
	return []auth.Scope{auth.ScopeChannelManagePolls}
}

// EndPollBody names the poll to end. Status is TERMINATED to end it and
// keep it visible, ARCHIVED to end it and hide it.
type EndPollBody struct {
	BroadcasterID types.UserID `json:"broadcaster_id" validate:"required"`
	ID            types.PollID `json:"id" validate:"required"`
	Status        Status       `json:"status" validate:"required,oneof=TERMINATED ARCHIVED"`
}

// TryToBody implements helix.HelixRequestBody
func (b EndPollBody) TryToBody() ([]byte, error) { return helix.JSONBody(b) }
