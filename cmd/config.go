package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"minkafka/internal/config"
	"minkafka/internal/formatting"
	"minkafka/pkg/logging"
)

var (
	configInitForce  bool
	configShowOutput string
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the minkafka configuration",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	initCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config.yaml")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Prints the configuration after defaults are applied and the installation
directory and platform are resolved.`,
		Args: cobra.NoArgs,
		RunE: runConfigShow,
	}
	showCmd.Flags().StringVarP(&configShowOutput, "output", "o", "yaml", "Output format: yaml or json")

	configCmd.AddCommand(initCmd, showCmd)
	return configCmd
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetDefaultConfigPath()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	dir, err := resolveConfigPath()
	if err != nil {
		return err
	}
	path, err := config.WriteConfig(dir, config.GetDefaultConfig(), configInitForce)
	if errors.Is(err, config.ErrConfigExists) {
		return fmt.Errorf("%w (use --force to overwrite)", err)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	logging.InitForCLI(logging.LevelWarn, os.Stderr)

	dir, err := resolveConfigPath()
	if err != nil {
		return err
	}
	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return err
	}

	switch configShowOutput {
	case "json":
		fmt.Fprintln(cmd.OutOrStdout(), formatting.PrettyJSON(cfg))
	case "yaml", "":
		data, err := yaml.Marshal(&cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		cmd.OutOrStdout().Write(data)
	default:
		return fmt.Errorf("unsupported output format %q (use yaml or json)", configShowOutput)
	}
	return nil
}
