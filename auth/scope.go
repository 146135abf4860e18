package auth

import "slices"

// Scope is an OAuth2 scope granted to a token.
type Scope string

// Scopes used by the declared Helix endpoints.
const (
	ScopeChannelManageBroadcast    Scope = "channel:manage:broadcast"
	ScopeChannelReadSubscriptions  Scope = "channel:read:subscriptions"
	ScopeChannelReadPredictions    Scope = "channel:read:predictions"
	ScopeChannelManagePredictions  Scope = "channel:manage:predictions"
	ScopeChannelReadPolls          Scope = "channel:read:polls"
	ScopeChannelManagePolls        Scope = "channel:manage:polls"
	ScopeClipsEdit                 Scope = "clips:edit"
	ScopeUserReadSubscriptions     Scope = "user:read:subscriptions"
	ScopeUserReadBlockedUsers      Scope = "user:read:blocked_users"
	ScopeUserManageBlockedUsers    Scope = "user:manage:blocked_users"
	ScopeUserReadEmail             Scope = "user:read:email"
	ScopeUserEdit                  Scope = "user:edit"
	ScopeModeratorReadFollowers    Scope = "moderator:read:followers"
	ScopeModerationRead            Scope = "moderation:read"
	ScopeBitsRead                  Scope = "bits:read"
	ScopeChannelReadRedemptions    Scope = "channel:read:redemptions"
	ScopeChannelManageRedemptions  Scope = "channel:manage:redemptions"
	ScopeChannelReadHypeTrain      Scope = "channel:read:hype_train"
	ScopeChannelReadStreamKey      Scope = "channel:read:stream_key"
	ScopeChannelManageVideos       Scope = "channel:manage:videos"
	ScopeChannelManageModerators   Scope = "channel:manage:moderators"
	ScopeModeratorManageBannedUser Scope = "moderator:manage:banned_users"
)

// MissingScopes returns the scopes in want that are not present in have,
// in the order they appear in want.
func MissingScopes(have, want []Scope) []Scope {
	var missing []Scope
	for _, s := range want {
		if !slices.Contains(have, s) {
			missing = append(missing, s)
		}
	}
	return missing
}

// ParseScopes converts raw scope strings, dropping empty entries.
func ParseScopes(raw []string) []Scope {
	scopes := make([]Scope, 0, len(raw))
	for _, s := range raw {
		if s == "" {
			continue
		}
		scopes = append(scopes, Scope(s))
	}
	return scopes
}
