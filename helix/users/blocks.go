package users

import (
	"github.com/shurizzle/twitch-api2/auth"
	"github.com/shurizzle/twitch-api2/helix"
	"github.com/shurizzle/twitch-api2/types"
)

// BlockedUser is an entry of a user's block list.
type BlockedUser struct {
	UserID      types.UserID      `json:"user_id"`
	UserLogin   types.UserName    `json:"user_login"`
	DisplayName types.DisplayName `json:"display_name"`
}

// GetUserBlockListRequest gets the users blocked by a broadcaster.
//
// https://dev.twitch.tv/docs/api/reference#get-user-block-list
type GetUserBlockListRequest struct {
	helix.Get[[]BlockedUser]

	BroadcasterID types.UserID `query:"broadcaster_id" validate:"required"`
	After         helix.Cursor `query:"after,omitempty"`
	// First is the page size. Maximum: 100. Default: 20.
	First int `query:"first,omitempty" validate:"omitempty,min=1,max=100"`
}

func (GetUserBlockListRequest) Path() string { return "users/blocks" }

func (GetUserBlockListRequest) Scopes() []auth.Scope {
	return []auth.Scope{auth.ScopeUserReadBlockedUsers}
}

// WithCursor implements helix.Paginated
func (r GetUserBlockListRequest) WithCursor(cursor helix.Cursor) GetUserBlockListRequest {
	r.After = cursor
	return r
}

// SourceContext is where a block was issued from.
type SourceContext string

const (
	SourceContextChat    SourceContext = "chat"
	SourceContextWhisper SourceContext = "whisper"
)

// BlockReason is why a user was blocked.
type BlockReason string

const (
	BlockReasonSpam       BlockReason = "spam"
	BlockReasonHarassment BlockReason = "harassment"
	BlockReasonOther      BlockReason = "other"
)

// BlockUserRequest blocks a user for the user of the token. Helix answers
// 204 No Content.
//
// https://dev.twitch.tv/docs/api/reference#block-user
type BlockUserRequest struct {
	helix.Put[helix.EmptyBody, helix.NoContent]

	TargetUserID  types.UserID  `query:"target_user_id" validate:"required"`
	SourceContext SourceContext `query:"source_context,omitempty" validate:"omitempty,oneof=chat whisper"`
	Reason        BlockReason   `query:"reason,omitempty" validate:"omitempty,oneof=spam harassment other"`
}

func (BlockUserRequest) Path() string { return "users/blocks" }

func (BlockUserRequest) Scopes() []auth.Scope {
	return []auth.Scope{auth.ScopeUserManageBlockedUsers}
}

// UnblockUserRequest removes a user from the block list of the user of the
// token. Helix answers 204 No Content.
//
// https://dev.twitch.tv/docs/api/reference#unblock-user
type UnblockUserRequest struct {
	helix.Delete[helix.NoContent]

	TargetUserID types.UserID `query:"target_user_id" validate:"required"`
}

func (UnblockUserRequest) Path() string { return "users/blocks" }

func (UnblockUserRequest) Scopes() []auth.Scope {
	return []auth.Scope{auth.ScopeUserManageBlockedUsers}
}
