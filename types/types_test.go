package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimestampTime(t *testing.T) {
	ts := Timestamp("2021-04-28T16:03:06.320848689Z")
	got := ts.Time()
	assert.Equal(t, 2021, got.Year())
	assert.Equal(t, time.April, got.Month())
	assert.Equal(t, 320848689, got.Nanosecond())

	assert.True(t, Timestamp("").Time().IsZero())
	assert.True(t, Timestamp("yesterday").Time().IsZero())
}

func TestSubscriptionTier(t *testing.T) {
	tests := []struct {
		tier     SubscriptionTier
		expected string
	}{
		{SubscriptionTier1, "Tier 1"},
		{SubscriptionTier2, "Tier 2"},
		{SubscriptionTier3, "Tier 3"},
		{SubscriptionTierPrime, "Prime"},
		{SubscriptionTier("4000"), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.tier.String())
		})
	}
}

func TestUserNameNormalize(t *testing.T) {
	assert.Equal(t, UserName("dallas"), UserName("  Dallas ").Normalize())
}
