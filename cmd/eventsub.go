package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shurizzle/twitch-api2/eventsub"
)

// eventsubCmd represents the eventsub command
var eventsubCmd = &cobra.Command{
	Use:   "eventsub [file]",
	Short: "Decode an EventSub notification",
	Long: `Decode an EventSub notification message read from a file, or from stdin
when no file is given, and print its event.`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: skipInit,
	RunE:              runEventSub,
}

func init() {
	rootCmd.AddCommand(eventsubCmd)
}

func runEventSub(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("failed to read notification: %w", err)
	}

	payload, err := eventsub.Parse(data)
	if err != nil {
		return err
	}
	logger.Debug().Str("type", string(payload.EventType())).Msg("Decoded EventSub notification")

	printNotification(cmd.OutOrStdout(), payload)
	return nil
}

func printNotification(w io.Writer, payload eventsub.Payload) {
	switch n := payload.(type) {
	case *eventsub.ChannelPollProgressNotification:
		ev := n.Event
		fmt.Fprintf(w, "%s (%s): poll %q on %s\n", n.Subscription.Type, n.Subscription.Version, ev.Title, ev.BroadcasterUserLogin)
		for _, c := range ev.Choices {
			fmt.Fprintf(w, "  • %s: %d votes (%d channel points, %d bits)\n", c.Title, c.Votes, c.ChannelPointsVotes, c.BitsVotes)
		}
		fmt.Fprintf(w, "  Ends: %s\n", ev.EndsAt)
	case *eventsub.ChannelPredictionEndNotification:
		ev := n.Event
		fmt.Fprintf(w, "%s (%s): prediction %q on %s is %s\n", n.Subscription.Type, n.Subscription.Version, ev.Title, ev.BroadcasterUserLogin, ev.Status)
		for _, o := range ev.Outcomes {
			marker := " "
			if o.ID == ev.WinningOutcomeID {
				marker = "*"
			}
			fmt.Fprintf(w, "  %s %s: %d users, %d channel points\n", marker, o.Title, o.Users, o.ChannelPoints)
		}
	}
}
