// Package users declares the Helix endpoints regarding users.
package users

import (
	"context"

	"github.com/shurizzle/twitch-api2/auth"
	"github.com/shurizzle/twitch-api2/helix"
	"github.com/shurizzle/twitch-api2/types"
)

// User is returned by Get Users
type User struct {
	ID              types.UserID          `json:"id"`
	Login           types.UserName        `json:"login"`
	DisplayName     types.DisplayName     `json:"display_name"`
	Type            types.UserType        `json:"type"`
	BroadcasterType types.BroadcasterType `json:"broadcaster_type"`
	Description     string                `json:"description"`
	ProfileImageURL string                `json:"profile_image_url"`
	OfflineImageURL string                `json:"offline_image_url"`
	// Email is only set with the user:read:email scope.
	Email     string          `json:"email,omitempty"`
	CreatedAt types.Timestamp `json:"created_at"`
}

// GetUsersRequest gets information about one or more users. Without ids or
// logins it returns the user of the token.
//
// https://dev.twitch.tv/docs/api/reference#get-users
type GetUsersRequest struct {
	helix.Get[[]User]

	ID    []types.UserID   `query:"id,omitempty" validate:"max=100"`
	Login []types.UserName `query:"login,omitempty" validate:"max=100"`
}

func (GetUsersRequest) Path() string         { return "users" }
func (GetUsersRequest) Scopes() []auth.Scope { return nil }

// GetUserFromLogin returns the user with the given login, or nil if there is
// none.
func GetUserFromLogin(ctx context.Context, c *helix.Client, login types.UserName, token auth.Token) (*User, error) {
	return firstUser(ctx, c, GetUsersRequest{Login: []types.UserName{login}}, token)
}

// GetUserFromID returns the user with the given id, or nil if there is none.
func GetUserFromID(ctx context.Context, c *helix.Client, id types.UserID, token auth.Token) (*User, error) {
	return firstUser(ctx, c, GetUsersRequest{ID: []types.UserID{id}}, token)
}

func firstUser(ctx context.Context, c *helix.Client, req GetUsersRequest, token auth.Token) (*User, error) {
	resp, err := helix.ReqGet(ctx, c, req, token)
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, nil
	}
	return &resp.Data[0], nil
}
