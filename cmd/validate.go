package cmd

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/shurizzle/twitch-api2/auth"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configured token and show its scopes",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	fmt.Printf("Client ID: %s\n", token.ClientID())

	switch t := token.(type) {
	case *auth.UserToken:
		fmt.Println("Token type: user")
		fmt.Printf("Login: %s (%s)\n", t.Login, t.UserID)
		if !t.ExpiresAt.IsZero() {
			fmt.Printf("Expires: %s (in %s)\n", t.ExpiresAt.Format(time.RFC3339), time.Until(t.ExpiresAt).Round(time.Minute))
		}
	case *auth.AppToken:
		if _, err := t.AccessToken(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Token type: app")
	}

	scopes := slices.Clone(token.Scopes())
	slices.Sort(scopes)
	if len(scopes) == 0 {
		fmt.Println("Scopes: none")
		return nil
	}
	fmt.Println("Scopes:")
	for _, s := range scopes {
		fmt.Printf("  • %s\n", s)
	}
	return nil
}
