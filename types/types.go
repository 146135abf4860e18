// Package types holds identifier and value types shared by Helix endpoints.
package types

import (
	"strings"
	"time"
)

// UserID is the numeric id of a user, as a string.
type UserID string

// UserName is the login name of a user (lowercase).
type UserName string

// DisplayName is the display name of a user.
type DisplayName string

// CategoryID identifies a game or category.
type CategoryID string

// ClipID identifies a clip.
type ClipID string

// StreamID identifies a live stream.
type StreamID string

// PollID identifies a poll.
type PollID string

// PredictionID identifies a prediction.
type PredictionID string

// Timestamp is an RFC3339 timestamp as returned by Helix.
type Timestamp string

// Time parses the timestamp. A zero time is returned for an empty or
// malformed value.
func (t Timestamp) Time() time.Time {
	if t == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339Nano, string(t))
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// SubscriptionTier is the subscription tier. "1000" is tier 1, "2000" tier 2,
// "3000" tier 3 and "Prime" a prime subscription.
type SubscriptionTier string

const (
	SubscriptionTier1     SubscriptionTier = "1000"
	SubscriptionTier2     SubscriptionTier = "2000"
	SubscriptionTier3     SubscriptionTier = "3000"
	SubscriptionTierPrime SubscriptionTier = "Prime"
)

// String returns a human readable tier name
func (t SubscriptionTier) String() string {
	switch t {
	case SubscriptionTier1:
		return "Tier 1"
	case SubscriptionTier2:
		return "Tier 2"
	case SubscriptionTier3:
		return "Tier 3"
	case SubscriptionTierPrime:
		return "Prime"
	default:
		return "Unknown"
	}
}

// BroadcasterType is a user's broadcaster status.
type BroadcasterType string

const (
	BroadcasterTypePartner   BroadcasterType = "partner"
	BroadcasterTypeAffiliate BroadcasterType = "affiliate"
	BroadcasterTypeNone      BroadcasterType = ""
)

// UserType is a user's staff status.
type UserType string

const (
	UserTypeStaff     UserType = "staff"
	UserTypeAdmin     UserType = "admin"
	UserTypeGlobalMod UserType = "global_mod"
	UserTypeNone      UserType = ""
)

// IsPartner reports whether the broadcaster is a partner
func (b BroadcasterType) IsPartner() bool {
	return b == BroadcasterTypePartner
}

// Normalize lowercases and trims a login so it can be compared.
func (n UserName) Normalize() UserName {
	return UserName(strings.ToLower(strings.TrimSpace(string(n))))
}
