package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/aidanlsb/jrnl/internal/config"
	"github.com/aidanlsb/jrnl/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the jrnl config.toml",
	Long: `Manage the jrnl config.toml.

With no subcommand, prints the configuration in effect after defaults,
the config file and $JRNL_DIR are applied.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the default config.toml if missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ResolveConfigPath(configPath)
		created, err := config.CreateDefault(path)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Successf("Created %s", ui.FilePath(path)))
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Hint(fmt.Sprintf("Config already exists at %s", path)))
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.ResolveConfigPath(configPath))
		return nil
	},
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFrom(config.ResolveConfigPath(configPath))
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
