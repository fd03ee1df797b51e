package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"minkafka/internal/app"
	"minkafka/internal/config"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeConfig indicates the configuration could not be loaded or is invalid.
	ExitCodeConfig = 2
	// ExitCodeOperationFailed indicates a topic creation or message send did not succeed.
	ExitCodeOperationFailed = 3
)

// Global flags shared by every subcommand.
var (
	configPath string
	debug      bool
	noColor    bool
)

// OperationFailedError wraps the outcome of a one-shot operation that ran
// but did not succeed.
type OperationFailedError struct {
	Operation string
	Err       error
}

func (e *OperationFailedError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *OperationFailedError) Unwrap() error {
	return e.Err
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "minkafka",
	Short: "Run a local ZooKeeper and Kafka installation",
	Long: `minkafka supervises a local ZooKeeper + Kafka distribution.

It starts ZooKeeper, waits for it to settle, then starts Kafka; it stops them
in reverse order. It can also create topics and send single text messages to
the local broker.

Configuration is read from config.yaml in --config-path
(default ~/.config/minkafka). Run 'minkafka config init' to write one.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "minkafka version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	var configErr config.ConfigurationError
	if errors.As(err, &configErr) {
		return ExitCodeConfig
	}
	var validationErrs config.ValidationErrors
	if errors.As(err, &validationErrs) {
		return ExitCodeConfig
	}

	var opErr *OperationFailedError
	if errors.As(err, &opErr) {
		return ExitCodeOperationFailed
	}

	return ExitCodeError
}

// newApplication builds the application from the global flags.
func newApplication(quiet bool) (*app.Application, error) {
	cfg := app.NewConfig(debug, configPath)
	cfg.Quiet = quiet
	cfg.Color = !noColor
	application, err := app.NewApplication(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return application, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config-path", "", "Configuration directory (default ~/.config/minkafka)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newUpCmd())
	rootCmd.AddCommand(newShellCmd())
	rootCmd.AddCommand(newTopicCmd())
	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newConfigCmd())
}
