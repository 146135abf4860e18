package channels

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shurizzle/twitch-api2/auth"
	"github.com/shurizzle/twitch-api2/helix"
	"github.com/shurizzle/twitch-api2/helix/helixtest"
	"github.com/shurizzle/twitch-api2/types"
)

func TestGetChannelInformationURI(t *testing.T) {
	req := GetChannelInformationRequest{BroadcasterID: []types.UserID{"44322889"}}

	uri, err := helix.BuildURI(helix.DefaultBaseURL, req)
	require.NoError(t, err)
	assert.Equal(t, "https://api.twitch.tv/helix/channels?broadcaster_id=44322889", uri)
}

func TestGetChannelInformationRequiresBroadcaster(t *testing.T) {
	_, err := helix.BuildURI(helix.DefaultBaseURL, GetChannelInformationRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, helix.ErrInvalidURI)
	assert.Contains(t, err.Error(), "broadcaster_id")
}

func TestGetChannelInformation(t *testing.T) {
	server := helixtest.NewServer(t, helixtest.Respond(http.StatusOK,
		`{"data":[{"broadcaster_id":"44322889","broadcaster_name":"dallas"}]}`))
	client := server.Client(t)

	req := GetChannelInformationRequest{BroadcasterID: []types.UserID{"44322889"}}
	resp, err := helix.ReqGet(context.Background(), client, req, helixtest.Token())
	require.NoError(t, err)

	require.Len(t, resp.Data, 1)
	assert.Equal(t, types.UserID("44322889"), resp.Data[0].BroadcasterID)
	assert.Equal(t, types.DisplayName("dallas"), resp.Data[0].BroadcasterName)
	assert.False(t, resp.HasNext())
	assert.Equal(t, req, resp.Request)

	recorded := server.Requests()
	require.Len(t, recorded, 1)
	assert.Equal(t, "/helix/channels?broadcaster_id=44322889", recorded[0].URI)
}

func TestGetChannelInformationUnauthorized(t *testing.T) {
	server := helixtest.NewServer(t, helixtest.Respond(http.StatusUnauthorized,
		`{"status":401,"message":"Invalid OAuth token"}`))
	client := server.Client(t)

	req := GetChannelInformationRequest{BroadcasterID: []types.UserID{"44322889"}}
	_, err := helix.ReqGet(context.Background(), client, req, helixtest.Token())
	require.Error(t, err)

	var statusErr *helix.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 401, statusErr.Status)
	assert.Equal(t, "Invalid OAuth token", statusErr.Message)
	assert.True(t, statusErr.IsUnauthorized())
	assert.Equal(t, helix.KindStatus, helix.KindOf(err))
}

func TestGetChannelFromID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		server := helixtest.NewServer(t, helixtest.Respond(http.StatusOK, `{"data":[{
			"broadcaster_id":"141981764","broadcaster_login":"twitchdev","broadcaster_name":"TwitchDev",
			"broadcaster_language":"en","game_id":"509670","game_name":"Science & Technology",
			"title":"TwitchDev Monthly Update // May 6, 2021","delay":0,"tags":["DevsInTheKnow"]}]}`))

		channel, err := GetChannelFromID(context.Background(), server.Client(t), "141981764", helixtest.Token())
		require.NoError(t, err)
		require.NotNil(t, channel)
		assert.Equal(t, "Science & Technology", channel.GameName)
		assert.Equal(t, []string{"DevsInTheKnow"}, channel.Tags)
	})

	t.Run("not found", func(t *testing.T) {
		server := helixtest.NewServer(t, helixtest.Respond(http.StatusOK, `{"data":[]}`))

		channel, err := GetChannelFromID(context.Background(), server.Client(t), "1", helixtest.Token())
		require.NoError(t, err)
		assert.Nil(t, channel)
	})
}

func TestModifyChannelInformation(t *testing.T) {
	server := helixtest.NewServer(t, helixtest.Respond(http.StatusNoContent, ""))
	client := server.Client(t)

	req := ModifyChannelInformationRequest{BroadcasterID: "41245072"}
	body := ModifyChannelInformationBody{GameID: "33214", Title: "there are helicopters in the game? REASON TO PLAY FORTNITE found"}

	t.Run("missing scope", func(t *testing.T) {
		_, err := helix.ReqPatch(context.Background(), client, req, body, helixtest.Token())
		require.Error(t, err)
		assert.ErrorIs(t, err, helix.ErrMissingScope)
		assert.Empty(t, server.Requests())
	})

	t.Run("success", func(t *testing.T) {
		resp, err := helix.ReqPatch(context.Background(), client, req, body, helixtest.Token(auth.ScopeChannelManageBroadcast))
		require.NoError(t, err)
		assert.Equal(t, helix.NoContent{}, resp.Data)

		recorded := server.Requests()
		require.Len(t, recorded, 1)
		assert.Equal(t, http.MethodPatch, recorded[0].Method)
		assert.Equal(t, "/helix/channels?broadcaster_id=41245072", recorded[0].URI)
		assert.Equal(t, "application/json", recorded[0].Header.Get("Content-Type"))
		assert.JSONEq(t,
			`{"game_id":"33214","title":"there are helicopters in the game? REASON TO PLAY FORTNITE found"}`,
			string(recorded[0].Body))
	})
}

func TestModifyChannelInformationBody(t *testing.T) {
	_, err := ModifyChannelInformationBody{}.TryToBody()
	assert.ErrorIs(t, err, helix.ErrBody)

	delay := int64(1000)
	_, err = ModifyChannelInformationBody{Delay: &delay}.TryToBody()
	assert.ErrorIs(t, err, helix.ErrBody)

	data, err := ModifyChannelInformationBody{Title: "hello"}.TryToBody()
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"hello"}`, string(data))
}

func TestModifyChannelInformationBodyRoundTrip(t *testing.T) {
	delay := int64(30)
	zero := int64(0)

	tests := []struct {
		name string
		body ModifyChannelInformationBody
	}{
		{name: "title", body: ModifyChannelInformationBody{Title: "hello"}},
		{name: "game and language", body: ModifyChannelInformationBody{GameID: "33214", BroadcasterLanguage: "en"}},
		{name: "delay", body: ModifyChannelInformationBody{Delay: &delay}},
		{name: "zero delay", body: ModifyChannelInformationBody{Delay: &zero}},
		{name: "tags", body: ModifyChannelInformationBody{Title: "t", Tags: []string{"English", "Speedrun"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := helixtest.NewServer(t, helixtest.Respond(http.StatusNoContent, ""))
			req := ModifyChannelInformationRequest{BroadcasterID: "41245072"}

			_, err := helix.ReqPatch(context.Background(), server.Client(t), req, tt.body, helixtest.Token(auth.ScopeChannelManageBroadcast))
			require.NoError(t, err)

			recorded := server.Requests()
			require.Len(t, recorded, 1)
			var got ModifyChannelInformationBody
			require.NoError(t, json.Unmarshal(recorded[0].Body, &got))
			assert.Equal(t, tt.body, got)
		})
	}
}
