package eventsub

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shurizzle/twitch-api2/auth"
	"github.com/shurizzle/twitch-api2/helix/polls"
)

const pollProgressMessage = `{
	"subscription": {
		"id": "f1c2a387-161a-49f9-a165-0f21d7a4e1c4",
		"type": "channel.poll.progress",
		"version": "beta",
		"status": "enabled",
		"cost": 0,
		"condition": {"broadcaster_user_id": "1337"},
		"transport": {"method": "webhook", "callback": "https://example.com/webhooks/callback"},
		"created_at": "2019-11-16T10:11:12.123Z"
	},
	"event": {
		"id": "1243456",
		"broadcaster_user_id": "1337",
		"broadcaster_user_login": "cool_user",
		"broadcaster_user_name": "Cool_User",
		"title": "Aren’t shoes just really hard socks?",
		"choices": [
			{"id": "123", "title": "Yeah!", "bits_votes": 5, "channel_points_votes": 7, "votes": 12},
			{"id": "124", "title": "No!", "bits_votes": 10, "channel_points_votes": 4, "votes": 14},
			{"id": "125", "title": "Maybe!", "bits_votes": 0, "channel_points_votes": 7, "votes": 7}
		],
		"bits_voting": {"is_enabled": true, "amount_per_vote": 10},
		"channel_points_voting": {"is_enabled": true, "amount_per_vote": 10},
		"started_at": "2020-07-15T17:16:03.17106713Z",
		"ends_at": "2020-07-15T17:16:08.17106713Z"
	}
}`

const predictionEndMessage = `{
	"subscription": {
		"id": "f1c2a387-161a-49f9-a165-0f21d7a4e1c4",
		"type": "channel.prediction.end",
		"version": "beta",
		"status": "enabled",
		"cost": 0,
		"condition": {"broadcaster_user_id": "1337"},
		"transport": {"method": "webhook", "callback": "https://example.com/webhooks/callback"},
		"created_at": "2019-11-16T10:11:12.123Z"
	},
	"event": {
		"id": "1243456",
		"broadcaster_user_id": "1337",
		"broadcaster_user_login": "cool_user",
		"broadcaster_user_name": "Cool_User",
		"title": "Aren’t shoes just really hard socks?",
		"winning_outcome_id": "12345",
		"outcomes": [
			{
				"id": "12345", "title": "Yeah!", "color": "blue", "users": 2, "channel_points": 15000,
				"top_predictors": [
					{"user_name": "Cool_User", "user_login": "cool_user", "user_id": "1234", "channel_points_won": 10000, "channel_points_used": 500},
					{"user_name": "Coolest_User", "user_login": "coolest_user", "user_id": "1236", "channel_points_won": 5000, "channel_points_used": 100}
				]
			},
			{
				"id": "22435", "title": "No!", "users": 2, "channel_points": 200, "color": "pink",
				"top_predictors": [
					{"user_name": "Cooler_User", "user_login": "cooler_user", "user_id": "12345", "channel_points_won": null, "channel_points_used": 100},
					{"user_name": "Elite_User", "user_login": "elite_user", "user_id": "1337", "channel_points_won": null, "channel_points_used": 100}
				]
			}
		],
		"status": "resolved",
		"started_at": "2020-07-15T17:16:03.17106713Z",
		"locked_at": "2020-07-15T17:16:11.17106713Z",
		"ended_at": "2020-07-15T17:16:11.17106713Z"
	}
}`

func TestSubscriptionTypes(t *testing.T) {
	tests := []struct {
		sub       Subscription
		eventType EventType
		scopes    []auth.Scope
	}{
		{ChannelPollProgressV1{}, "channel.poll.progress", []auth.Scope{auth.ScopeChannelReadPolls}},
		{ChannelPredictionEndV1{}, "channel.prediction.end", []auth.Scope{auth.ScopeChannelReadPredictions}},
	}

	for _, tt := range tests {
		t.Run(string(tt.eventType), func(t *testing.T) {
			assert.Equal(t, tt.eventType, tt.sub.EventType())
			assert.Equal(t, "beta", tt.sub.Version())
			assert.Equal(t, tt.scopes, tt.sub.Scopes())
		})
	}
}

func TestParsePollProgress(t *testing.T) {
	n, err := ParseNotification[ChannelPollProgressV1]([]byte(pollProgressMessage))
	require.NoError(t, err)

	assert.Equal(t, EventType("channel.poll.progress"), n.EventType())
	assert.Equal(t, "enabled", n.Subscription.Status)
	assert.Equal(t, "webhook", n.Subscription.Transport.Method)
	assert.Equal(t, "https://example.com/webhooks/callback", n.Subscription.Transport.Callback)
	assert.Equal(t, ChannelPollProgressV1{BroadcasterUserID: "1337"}, n.Subscription.Condition)

	ev := n.Event
	assert.Equal(t, "cool_user", string(ev.BroadcasterUserLogin))
	assert.Equal(t, "Aren’t shoes just really hard socks?", ev.Title)
	require.Len(t, ev.Choices, 3)
	assert.Equal(t, polls.Choice{ID: "124", Title: "No!", Votes: 14, ChannelPointsVotes: 4, BitsVotes: 10}, ev.Choices[1])
	assert.Equal(t, Voting{IsEnabled: true, AmountPerVote: 10}, ev.BitsVoting)
	assert.Equal(t, Voting{IsEnabled: true, AmountPerVote: 10}, ev.ChannelPointsVoting)
	assert.Equal(t, 5*time.Second, ev.EndsAt.Time().Sub(ev.StartedAt.Time()))
}

func TestParsePredictionEnd(t *testing.T) {
	n, err := ParseNotification[ChannelPredictionEndV1]([]byte(predictionEndMessage))
	require.NoError(t, err)

	ev := n.Event
	assert.Equal(t, PredictionResolved, ev.Status)
	assert.Equal(t, "12345", ev.WinningOutcomeID)
	require.Len(t, ev.Outcomes, 2)
	assert.Equal(t, "blue", ev.Outcomes[0].Color)
	assert.Equal(t, int64(15000), ev.Outcomes[0].ChannelPoints)

	winner := ev.Outcomes[0].TopPredictors[0]
	require.NotNil(t, winner.ChannelPointsWon)
	assert.Equal(t, int64(10000), *winner.ChannelPointsWon)
	assert.Nil(t, ev.Outcomes[1].TopPredictors[0].ChannelPointsWon)
	assert.Equal(t, ev.LockedAt, ev.EndedAt)
}

func TestParseNotificationRoundTrip(t *testing.T) {
	n, err := ParseNotification[ChannelPredictionEndV1]([]byte(predictionEndMessage))
	require.NoError(t, err)

	data, err := json.Marshal(n)
	require.NoError(t, err)
	again, err := ParseNotification[ChannelPredictionEndV1](data)
	require.NoError(t, err)
	assert.Equal(t, n, again)
}

func TestParseNotificationMismatch(t *testing.T) {
	_, err := ParseNotification[ChannelPredictionEndV1]([]byte(pollProgressMessage))

	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, EventType("channel.poll.progress"), mismatch.Type)
	assert.Equal(t, EventType("channel.prediction.end"), mismatch.WantType)
}

func TestParse(t *testing.T) {
	t.Run("poll progress", func(t *testing.T) {
		p, err := Parse([]byte(pollProgressMessage))
		require.NoError(t, err)
		n, ok := p.(*ChannelPollProgressNotification)
		require.True(t, ok, "got %T", p)
		assert.Len(t, n.Event.Choices, 3)
	})

	t.Run("prediction end", func(t *testing.T) {
		p, err := Parse([]byte(predictionEndMessage))
		require.NoError(t, err)
		_, ok := p.(*ChannelPredictionEndNotification)
		assert.True(t, ok, "got %T", p)
	})

	t.Run("unknown type", func(t *testing.T) {
		p, err := Parse([]byte(`{"subscription":{"type":"channel.follow","version":"1"},"event":{}}`))
		assert.ErrorIs(t, err, ErrUnknownEventType)
		assert.Nil(t, p)
	})

	t.Run("bad event", func(t *testing.T) {
		p, err := Parse([]byte(`{"subscription":{"type":"channel.poll.progress","version":"beta"},"event":{"choices":"nope"}}`))
		assert.Error(t, err)
		assert.Nil(t, p)
	})

	t.Run("not a notification", func(t *testing.T) {
		_, err := Parse([]byte(`{"challenge":"abc"}`))
		assert.Error(t, err)

		_, err = Parse([]byte(`not json`))
		assert.Error(t, err)
	})
}
