package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shurizzle/twitch-api2/helix/channels"
	"github.com/shurizzle/twitch-api2/helix/users"
	"github.com/shurizzle/twitch-api2/types"
)

// channelCmd represents the channel command
var channelCmd = &cobra.Command{
	Use:   "channel <login>",
	Short: "Show the channel information of a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runChannel,
}

func init() {
	rootCmd.AddCommand(channelCmd)
}

func runChannel(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	login := types.UserName(args[0]).Normalize()

	user, err := users.GetUserFromLogin(ctx, helixClient, login, token)
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", login, err)
	}
	if user == nil {
		return fmt.Errorf("user %s not found", login)
	}

	channel, err := channels.GetChannelFromID(ctx, helixClient, user.ID, token)
	if err != nil {
		return fmt.Errorf("failed to get channel of %s: %w", login, err)
	}
	if channel == nil {
		return fmt.Errorf("channel of %s not found", login)
	}

	fmt.Printf("%s (%s)\n", channel.BroadcasterName, channel.BroadcasterID)
	fmt.Printf("  Title:    %s\n", channel.Title)
	fmt.Printf("  Game:     %s\n", channel.GameName)
	fmt.Printf("  Language: %s\n", channel.BroadcasterLanguage)
	if user.BroadcasterType != types.BroadcasterTypeNone {
		fmt.Printf("  Type:     %s\n", user.BroadcasterType)
	}
	if channel.Delay > 0 {
		fmt.Printf("  Delay:    %ds\n", channel.Delay)
	}
	return nil
}
