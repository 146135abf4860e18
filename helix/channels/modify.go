package channels

import (
	"github.com/shurizzle/twitch-api2/auth"
	"github.com/shurizzle/twitch-api2/helix"
	"github.com/shurizzle/twitch-api2/types"
)

// ModifyChannelInformationRequest updates a channel's properties. Helix
// answers 204 No Content.
//
// https://dev.twitch.tv/docs/api/reference#modify-channel-information
type ModifyChannelInformationRequest struct {
	helix.Patch[ModifyChannelInformationBody, helix.NoContent]

	// BroadcasterID must match the user in the token.
	BroadcasterID types.UserID `query:"broadcaster_id" validate:"required"`
}

func (ModifyChannelInformationRequest) Path() string { return "channels" }

func (ModifyChannelInformationRequest) Scopes() []auth.Scope {
	return []auth.Scope{auth.ScopeChannelManageBroadcast}
}

// ModifyChannelInformationBody holds the fields to change. At least one must
// be set.
type ModifyChannelInformationBody struct {
	// GameID is the current game. "0" or "" unsets it.
	GameID types.CategoryID `json:"game_id,omitempty"`
	// BroadcasterLanguage is an ISO 639-1 code or "other".
	BroadcasterLanguage string `json:"broadcaster_language,omitempty" validate:"omitempty,max=5"`
	Title               string `json:"title,omitempty" validate:"omitempty,max=140"`
	// Delay is the stream delay in seconds. Partners only.
	Delay *int64   `json:"delay,omitempty" validate:"omitempty,gte=0,lte=900"`
	Tags  []string `json:"tags,omitempty" validate:"omitempty,max=10,dive,min=1,max=25"`
}

// TryToBody implements helix.HelixRequestBody
func (b ModifyChannelInformationBody) TryToBody() ([]byte, error) {
	if b.GameID == "" && b.BroadcasterLanguage == "" && b.Title == "" && b.Delay == nil && b.Tags == nil {
		return nil, &helix.BodyError{Reason: "at least one field must be set"}
	}
	return helix.JSONBody(b)
}
