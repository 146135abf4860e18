package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shurizzle/twitch-api2/helix/streams"
	"github.com/shurizzle/twitch-api2/types"
)

var (
	streamGameIDs   []string
	streamLanguages []string
	streamLogins    []string
)

// streamsCmd represents the streams command
var streamsCmd = &cobra.Command{
	Use:   "streams",
	Short: "List live streams",
	Long: `List live streams sorted by viewer count, optionally restricted to games,
languages or users, and filtered with an expression, e.g.

  helix streams --language en --filter 'viewer_count > 1000 and hasTag("English")'`,
	Args: cobra.NoArgs,
	RunE: runStreams,
}

func init() {
	rootCmd.AddCommand(streamsCmd)

	addListFlags(streamsCmd)
	streamsCmd.Flags().StringSliceVar(&streamGameIDs, "game-id", nil, "game ids")
	streamsCmd.Flags().StringSliceVar(&streamLanguages, "language", nil, "stream languages")
	streamsCmd.Flags().StringSliceVar(&streamLogins, "user", nil, "user logins")
}

func runStreams(cmd *cobra.Command, args []string) error {
	req := streams.GetStreamsRequest{
		First:    pageSize,
		Language: streamLanguages,
	}
	for _, id := range streamGameIDs {
		req.GameID = append(req.GameID, types.CategoryID(id))
	}
	for _, login := range streamLogins {
		req.UserLogin = append(req.UserLogin, types.UserName(login).Normalize())
	}

	live, err := fetchFiltered(cmd.Context(), req)
	if err != nil {
		return err
	}

	if len(live) == 0 {
		fmt.Println("No streams found.")
		return nil
	}

	fmt.Printf("\nFound %d streams:\n", len(live))
	fmt.Println(strings.Repeat("-", 80))
	for _, s := range live {
		fmt.Printf("• %s playing %s (%d viewers)\n", s.UserName, s.GameName, s.ViewerCount)
		fmt.Printf("  %s\n", s.Title)
		if len(s.Tags) > 0 {
			fmt.Printf("  Tags: %s\n", strings.Join(s.Tags, ", "))
		}
	}
	return nil
}
