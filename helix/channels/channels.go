// Package channels declares the Helix endpoints regarding channels.
package channels

import (
	"context"

	"github.com/shurizzle/twitch-api2/auth"
	"github.com/shurizzle/twitch-api2/helix"
	"github.com/shurizzle/twitch-api2/types"
)

// ChannelInformation is returned by Get Channel Information
type ChannelInformation struct {
	BroadcasterID       types.UserID      `json:"broadcaster_id"`
	BroadcasterLogin    types.UserName    `json:"broadcaster_login"`
	BroadcasterName     types.DisplayName `json:"broadcaster_name"`
	BroadcasterLanguage string            `json:"broadcaster_language"`
	GameID              types.CategoryID  `json:"game_id"`
	GameName            string            `json:"game_name"`
	Title               string            `json:"title"`
	Delay               int64             `json:"delay"`
	Tags                []string          `json:"tags,omitempty"`
}

// GetChannelInformationRequest gets information about one or more channels.
//
// https://dev.twitch.tv/docs/api/reference#get-channel-information
type GetChannelInformationRequest struct {
	helix.Get[[]ChannelInformation]

	// BroadcasterID lists the channels to get. Maximum: 100.
	BroadcasterID []types.UserID `query:"broadcaster_id" validate:"required,min=1,max=100"`
}

func (GetChannelInformationRequest) Path() string         { return "channels" }
func (GetChannelInformationRequest) Scopes() []auth.Scope { return nil }

// GetChannelFromID returns the channel of the broadcaster with the given
// id, or nil if there is none.
func GetChannelFromID(ctx context.Context, c *helix.Client, id types.UserID, token auth.Token) (*ChannelInformation, error) {
	resp, err := helix.ReqGet(ctx, c, GetChannelInformationRequest{BroadcasterID: []types.UserID{id}}, token)
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, nil
	}
	return &resp.Data[0], nil
}
