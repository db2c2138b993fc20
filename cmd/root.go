package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/minishdev/minish/core/config"
	"github.com/minishdev/minish/core/shell"
	"github.com/spf13/cobra"
)

var (
	cfgPath     string
	commandFlag string
)

func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	// Running without a config file is the common case for a shell; fall
	// back to the embedded default.
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}

	return configuration, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minish [script]",
	Short: "Minimal command interpreter",
	Long: `A small shell that runs simple commands, pipelines, parallel groups
and conditional chains by spawning operating system processes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		sh, err := shell.New(configuration, os.Stdin, os.Stdout, os.Stderr)
		if err != nil {
			return err
		}
		defer sh.Close()

		var status int
		switch {
		case commandFlag != "":
			sh.Eval(commandFlag)
			status = sh.LastStatus()

		case len(args) == 1:
			script, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			sh.Eval(string(script))
			status = sh.LastStatus()

		default:
			status = sh.Run()
		}

		if status != 0 {
			os.Exit(status)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
	rootCmd.Flags().StringVarP(&commandFlag, "command", "c", "", "run this command and exit")
}
