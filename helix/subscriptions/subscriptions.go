// Package subscriptions declares the Helix endpoints regarding
// subscriptions.
package subscriptions

import (
	"github.com/shurizzle/twitch-api2/auth"
	"github.com/shurizzle/twitch-api2/helix"
	"github.com/shurizzle/twitch-api2/types"
)

// BroadcasterSubscription is returned by Get Broadcaster Subscriptions
type BroadcasterSubscription struct {
	BroadcasterID    types.UserID           `json:"broadcaster_id"`
	BroadcasterLogin types.UserName         `json:"broadcaster_login"`
	BroadcasterName  types.DisplayName      `json:"broadcaster_name"`
	GifterID         types.UserID           `json:"gifter_id"`
	GifterLogin      types.UserName         `json:"gifter_login"`
	GifterName       types.DisplayName      `json:"gifter_name"`
	IsGift           bool                   `json:"is_gift"`
	PlanName         string                 `json:"plan_name"`
	Tier             types.SubscriptionTier `json:"tier"`
	UserID           types.UserID           `json:"user_id"`
	UserLogin        types.UserName         `json:"user_login"`
	UserName         types.DisplayName      `json:"user_name"`
}

// GetBroadcasterSubscriptionsRequest gets the subscribers of a broadcaster.
// The response carries the total subscriber count.
//
// https://dev.twitch.tv/docs/api/reference#get-broadcaster-subscriptions
type GetBroadcasterSubscriptionsRequest struct {
	helix.Get[[]BroadcasterSubscription]

	// BroadcasterID must match the user in the token.
	BroadcasterID types.UserID   `query:"broadcaster_id" validate:"required"`
	UserID        []types.UserID `query:"user_id,omitempty" validate:"max=100"`
	After         helix.Cursor   `query:"after,omitempty"`
	// First is the page size. Maximum: 100. Default: 20.
	First int `query:"first,omitempty" validate:"omitempty,min=1,max=100"`
}

func (GetBroadcasterSubscriptionsRequest) Path() string { return "subscriptions" }

func (GetBroadcasterSubscriptionsRequest) Scopes() []auth.Scope {
	return []auth.Scope{auth.ScopeChannelReadSubscriptions}
}

// WithCursor implements helix.Paginated
func (r GetBroadcasterSubscriptionsRequest) WithCursor(cursor helix.Cursor) GetBroadcasterSubscriptionsRequest {
	r.After = cursor
	return r
}

// UserSubscription is returned by Check User Subscription
type UserSubscription struct {
	BroadcasterID    types.UserID      `json:"broadcaster_id"`
	BroadcasterLogin types.UserName    `json:"broadcaster_login"`
	BroadcasterName  types.DisplayName `json:"broadcaster_name"`
	IsGift           bool              `json:"is_gift"`
	// GifterLogin and GifterName are set when IsGift is true.
	GifterLogin *types.UserName        `json:"gifter_login,omitempty"`
	GifterName  *types.DisplayName     `json:"gifter_name,omitempty"`
	Tier        types.SubscriptionTier `json:"tier"`
}

// CheckUserSubscriptionRequest checks whether the user of the token is
// subscribed to a broadcaster. Helix answers 404 when they are not.
//
// https://dev.twitch.tv/docs/api/reference#check-user-subscription
type CheckUserSubscriptionRequest struct {
	helix.GetFirst[UserSubscription]

	BroadcasterID types.UserID `query:"broadcaster_id" validate:"required"`
	// UserID must match the user in the token.
	UserID types.UserID `query:"user_id,omitempty"`
}

func (CheckUserSubscriptionRequest) Path() string { return "subscriptions/user" }

func (CheckUserSubscriptionRequest) Scopes() []auth.Scope {
	return []auth.Scope{auth.ScopeUserReadSubscriptions}
}
