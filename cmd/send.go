package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"minkafka/internal/publish"
)

func newSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <topic> <content...>",
		Short: "Publish a text message to a topic",
		Long: `Publishes one text message to the local broker. The remaining arguments
are joined with spaces to form the content. The command waits at most
timing.publishTimeout (5s by default) for the broker to acknowledge it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSend,
	}
}

func runSend(cmd *cobra.Command, args []string) error {
	application, err := newApplication(true)
	if err != nil {
		return err
	}
	s := application.Services()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	topic, content := args[0], strings.Join(args[1:], " ")
	var res publish.Result
	withSpinner(cmd.ErrOrStderr(), "Sending to "+topic+"...", func() {
		res = s.Send(ctx, topic, content)
	})
	printAlerts(cmd.OutOrStdout(), s)

	if !res.Sent {
		return &OperationFailedError{Operation: "send", Err: res.Err}
	}
	return nil
}
