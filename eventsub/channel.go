package eventsub

import (
	"github.com/shurizzle/twitch-api2/auth"
	"github.com/shurizzle/twitch-api2/helix/polls"
	"github.com/shurizzle/twitch-api2/helix/predictions"
	"github.com/shurizzle/twitch-api2/types"
)

// Voting is the Bits or Channel Points voting setting of a poll.
type Voting struct {
	IsEnabled     bool  `json:"is_enabled"`
	AmountPerVote int64 `json:"amount_per_vote"`
}

// ChannelPollProgressV1 subscribes to votes on polls of a channel.
//
// https://dev.twitch.tv/docs/eventsub/eventsub-subscription-types#channelpollprogress
type ChannelPollProgressV1 struct {
	Event[ChannelPollProgressV1Payload]

	BroadcasterUserID types.UserID `json:"broadcaster_user_id"`
}

func (ChannelPollProgressV1) EventType() EventType { return "channel.poll.progress" }
func (ChannelPollProgressV1) Version() string      { return "beta" }

func (ChannelPollProgressV1) Scopes() []auth.Scope {
	return []auth.Scope{auth.ScopeChannelReadPolls}
}

// ChannelPollProgressV1Payload is sent when a user votes on a poll.
type ChannelPollProgressV1Payload struct {
	ID                   types.PollID      `json:"id"`
	BroadcasterUserID    types.UserID      `json:"broadcaster_user_id"`
	BroadcasterUserLogin types.UserName    `json:"broadcaster_user_login"`
	BroadcasterUserName  types.DisplayName `json:"broadcaster_user_name"`
	Title                string            `json:"title"`
	// Choices include the current vote counts.
	Choices             []polls.Choice  `json:"choices"`
	BitsVoting          Voting          `json:"bits_voting"`
	ChannelPointsVoting Voting          `json:"channel_points_voting"`
	StartedAt           types.Timestamp `json:"started_at"`
	EndsAt              types.Timestamp `json:"ends_at"`
}

// ChannelPollProgressNotification is a decoded channel.poll.progress message.
type ChannelPollProgressNotification = Notification[ChannelPollProgressV1, ChannelPollProgressV1Payload]

// Prediction end states. EventSub reports them in lower case.
const (
	PredictionResolved predictions.Status = "resolved"
	PredictionCanceled predictions.Status = "canceled"
)

// ChannelPredictionEndV1 subscribes to predictions of a channel ending.
//
// https://dev.twitch.tv/docs/eventsub/eventsub-subscription-types#channelpredictionend
type ChannelPredictionEndV1 struct {
	Event[ChannelPredictionEndV1Payload]

	BroadcasterUserID types.UserID `json:"broadcaster_user_id"`
}

func (ChannelPredictionEndV1) EventType() EventType { return "channel.prediction.end" }
func (ChannelPredictionEndV1) Version() string      { return "beta" }

func (ChannelPredictionEndV1) Scopes() []auth.Scope {
	return []auth.Scope{auth.ScopeChannelReadPredictions}
}

// ChannelPredictionEndV1Payload is sent when a prediction is resolved or
// canceled.
type ChannelPredictionEndV1Payload struct {
	ID                   types.PredictionID `json:"id"`
	BroadcasterUserID    types.UserID       `json:"broadcaster_user_id"`
	BroadcasterUserLogin types.UserName     `json:"broadcaster_user_login"`
	BroadcasterUserName  types.DisplayName  `json:"broadcaster_user_name"`
	Title                string             `json:"title"`
	// WinningOutcomeID is empty when the prediction was canceled.
	WinningOutcomeID string                `json:"winning_outcome_id"`
	Outcomes         []predictions.Outcome `json:"outcomes"`
	Status           predictions.Status    `json:"status"`
	StartedAt        types.Timestamp       `json:"started_at"`
	LockedAt         types.Timestamp       `json:"locked_at"`
	EndedAt          types.Timestamp       `json:"ended_at"`
}

// ChannelPredictionEndNotification is a decoded channel.prediction.end message.
type ChannelPredictionEndNotification = Notification[ChannelPredictionEndV1, ChannelPredictionEndV1Payload]
