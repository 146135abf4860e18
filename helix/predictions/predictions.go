// Package predictions declares the Helix endpoints regarding channel
// predictions.
package predictions

import (
	"github.com/shurizzle/twitch-api2/auth"
	"github.com/shurizzle/twitch-api2/helix"
	"github.com/shurizzle/twitch-api2/types"
)

// Status is the state of a prediction.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusResolved Status = "RESOLVED"
	StatusCanceled Status = "CANCELED"
	StatusLocked   Status = "LOCKED"
)

// Predictor is a user that bet on an outcome.
type Predictor struct {
	UserID            types.UserID      `json:"user_id"`
	UserLogin         types.UserName    `json:"user_login"`
	UserName          types.DisplayName `json:"user_name"`
	ChannelPointsUsed int64             `json:"channel_points_used"`
	ChannelPointsWon  *int64            `json:"channel_points_won"`
}

// Outcome is one of the possible outcomes of a prediction.
type Outcome struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Users         int64       `json:"users"`
	ChannelPoints int64       `json:"channel_points"`
	TopPredictors []Predictor `json:"top_predictors"`
	// Color is BLUE or PINK.
	Color string `json:"color"`
}

// Prediction is returned by Get Predictions. Predictions are kept for 90
// days.
type Prediction struct {
	ID               types.PredictionID `json:"id"`
	BroadcasterID    types.UserID       `json:"broadcaster_id"`
	BroadcasterName  types.DisplayName  `json:"broadcaster_name"`
	BroadcasterLogin types.UserName     `json:"broadcaster_login"`
	Title            string             `json:"title"`
	// WinningOutcomeID is nil until the prediction is resolved.
	WinningOutcomeID *string   `json:"winning_outcome_id"`
	Outcomes         []Outcome `json:"outcomes"`
	// PredictionWindow is the betting window in seconds.
	PredictionWindow int64            `json:"prediction_window"`
	Status           Status           `json:"status"`
	CreatedAt        types.Timestamp  `json:"created_at"`
	EndedAt          *types.Timestamp `json:"ended_at"`
	LockedAt         *types.Timestamp `json:"locked_at"`
}

// GetPredictionsRequest gets the predictions of a channel, all of them or
// the ones with the given ids.
//
// https://dev.twitch.tv/docs/api/reference#get-predictions
type GetPredictionsRequest struct {
	helix.Get[[]Prediction]

	// BroadcasterID must match the user in the token.
	BroadcasterID types.UserID         `query:"broadcaster_id" validate:"required"`
	ID            []types.PredictionID `query:"id,omitempty" validate:"max=100"`
	After         helix.Cursor         `query:"after,omitempty"`
	// First is the page size. Maximum: 20. Default: 20.
	First int `query:"first,omitempty" validate:"omitempty,min=1,max=20"`
}

func (GetPredictionsRequest) Path() string { return "predictions" }

func (GetPredictionsRequest) Scopes() []auth.Scope {
	return []auth.Scope{auth.ScopeChannelReadPredictions}
}

// WithCursor implements helix.Paginated
func (r GetPredictionsRequest) WithCursor(cursor helix.Cursor) GetPredictionsRequest {
	r.After = cursor
	return r
}
