// Package cli implements the tasklist command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	driver     string
	path       string
	logLevel   string
}

// NewRootCmd builds the full command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "tasklist",
		Short: "tasklist - a local task list",
		Long: `tasklist keeps a list of short tasks on this machine.

Tasks can be added, edited, completed and removed from the command line or
through the HTTP API started by "tasklist serve".`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default $XDG_CONFIG_HOME/tasklist/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.driver, "driver", "", "Storage driver: sqlite, file or memory")
	cmd.PersistentFlags().StringVar(&opts.path, "path", "", "Database file (sqlite) or data directory (file)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	cmd.AddCommand(newAddCmd(opts))
	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newEditCmd(opts))
	cmd.AddCommand(newToggleCmd(opts))
	cmd.AddCommand(newRmCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newVersionCmd(version))

	return cmd
}

// Execute runs the root command
func Execute(version string) error {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tasklist %s\n", version)
		},
	}
}
