package cmd

import (
	"github.com/spf13/cobra"
)

func newTopicCmd() *cobra.Command {
	topicCmd := &cobra.Command{
		Use:   "topic",
		Short: "Manage topics on the local broker",
	}
	topicCmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a topic if it does not exist",
		Long: `Runs the installation's kafka-topics script with
--create --topic <name> --bootstrap-server <broker.bootstrapServer> --if-not-exists.

Topic names may contain letters, digits, '.', '_' and '-'. The command waits
for the script to finish; the broker must be running.`,
		Args: cobra.ExactArgs(1),
		RunE: runTopicCreate,
	})
	return topicCmd
}

func runTopicCreate(cmd *cobra.Command, args []string) error {
	application, err := newApplication(true)
	if err != nil {
		return err
	}
	s := application.Services()

	name := args[0]
	withSpinner(cmd.ErrOrStderr(), "Creating topic "+name+"...", func() {
		err = s.CreateTopic(name)
	})
	printAlerts(cmd.OutOrStdout(), s)

	if err != nil {
		return &OperationFailedError{Operation: "topic create", Err: err}
	}
	return nil
}
