package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shurizzle/twitch-api2/helix"
	"github.com/shurizzle/twitch-api2/helix/users"
	"github.com/shurizzle/twitch-api2/types"
)

// maxUsersPerRequest is the number of logins Get Users accepts at once.
const maxUsersPerRequest = 100

// usersCmd represents the users command
var usersCmd = &cobra.Command{
	Use:   "users <login>...",
	Short: "Look up users by login",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUsers,
}

func init() {
	rootCmd.AddCommand(usersCmd)
}

func runUsers(cmd *cobra.Command, args []string) error {
	reqs := usersRequests(args)

	logger.Debug().Int("logins", len(args)).Int("requests", len(reqs)).Msg("Looking up users")

	resps, err := helix.ReqGetBatch(cmd.Context(), helixClient, reqs, token, cfg.Helix.BatchLimit)
	if err != nil {
		return fmt.Errorf("failed to get users: %w", err)
	}

	found := 0
	for _, resp := range resps {
		for _, u := range resp.Data {
			found++
			fmt.Printf("• %s (%s) id=%s", u.DisplayName, u.Login, u.ID)
			if u.BroadcasterType.IsPartner() {
				fmt.Printf(" [PARTNER]")
			}
			fmt.Println()
			fmt.Printf("  Created: %s\n", u.CreatedAt.Time().Format("2006-01-02"))
			if u.Description != "" {
				fmt.Printf("  %s\n", u.Description)
			}
		}
	}
	if missing := len(args) - found; missing > 0 {
		fmt.Printf("\n%d of %d logins not found.\n", missing, len(args))
	}
	return nil
}

// usersRequests splits logins into Get Users requests of at most 100.
func usersRequests(logins []string) []users.GetUsersRequest {
	var reqs []users.GetUsersRequest
	for chunk := range slices.Chunk(logins, maxUsersPerRequest) {
		req := users.GetUsersRequest{Login: make([]types.UserName, len(chunk))}
		for i, login := range chunk {
			req.Login[i] = types.UserName(strings.TrimPrefix(login, "@")).Normalize()
		}
		reqs = append(reqs, req)
	}
	return reqs
}
