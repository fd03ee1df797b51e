package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Control the services from an interactive shell",
		Long: `Opens an interactive shell with history and TAB completion.

Commands:
  start                      Start ZooKeeper, then Kafka
  stop                       Stop Kafka, then ZooKeeper
  status [table|json|yaml]   Show service states and available controls
  logs <service> [lines]     Show recent output of a service
  topic <name>               Create a topic if it does not exist
  send <topic> <content...>  Publish a text message
  controls                   Show which operations are enabled
  exit                       Stop the services and leave`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication(false)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return application.RunShell(ctx)
		},
	}
}
