package cmd

import (
	"log"

	"github.com/minishdev/minish/core/config"
	"github.com/spf13/cobra"
)

// initCmd writes the default shell configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to the current directory.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		logger := log.New(cmd.ErrOrStderr(), "", 0)

		return config.Initialize(".", logger)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
