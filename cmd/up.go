package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func newUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Start ZooKeeper and Kafka and stream their output",
		Long: `Starts ZooKeeper, waits for its stabilization window, then starts Kafka.
The output of both services is streamed to the terminal, prefixed by service
name. Alerts (start failures, unexpected exits, configuration changes) are
printed as they happen.

Press Ctrl+C (or send SIGTERM) to stop Kafka, then ZooKeeper, and exit.
When metrics are enabled in the configuration, Prometheus metrics are served
on metrics.listen while the services run.`,
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
			return application.RunUp(ctx)
		},
	}
}
