package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shurizzle/twitch-api2/helix/clips"
	"github.com/shurizzle/twitch-api2/helix/users"
	"github.com/shurizzle/twitch-api2/types"
)

var (
	clipsBroadcaster string
	clipsGameID      string
)

// clipsCmd represents the clips command
var clipsCmd = &cobra.Command{
	Use:   "clips",
	Short: "List clips of a broadcaster or a game",
	Args:  cobra.NoArgs,
	RunE:  runClips,
}

func init() {
	rootCmd.AddCommand(clipsCmd)

	addListFlags(clipsCmd)
	clipsCmd.Flags().StringVarP(&clipsBroadcaster, "broadcaster", "b", "", "broadcaster login")
	clipsCmd.Flags().StringVar(&clipsGameID, "game-id", "", "game id")
	clipsCmd.MarkFlagsOneRequired("broadcaster", "game-id")
	clipsCmd.MarkFlagsMutuallyExclusive("broadcaster", "game-id")
}

func runClips(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	req := clips.GetClipsRequest{First: pageSize, GameID: types.CategoryID(clipsGameID)}
	if clipsBroadcaster != "" {
		user, err := users.GetUserFromLogin(ctx, helixClient, types.UserName(clipsBroadcaster).Normalize(), token)
		if err != nil {
			return fmt.Errorf("failed to look up %s: %w", clipsBroadcaster, err)
		}
		if user == nil {
			return fmt.Errorf("user %s not found", clipsBroadcaster)
		}
		req.BroadcasterID = user.ID
	}

	found, err := fetchFiltered(ctx, req)
	if err != nil {
		return err
	}

	if len(found) == 0 {
		fmt.Println("No clips found.")
		return nil
	}

	fmt.Printf("\nFound %d clips:\n", len(found))
	fmt.Println(strings.Repeat("-", 80))
	for _, c := range found {
		fmt.Printf("• %s (%d views, %.0fs)\n", c.Title, c.ViewCount, c.Duration)
		fmt.Printf("  %s\n", c.URL)
		fmt.Printf("  Clipped by %s on %s\n", c.CreatorName, c.CreatedAt.Time().Format("2006-01-02"))
	}
	return nil
}
