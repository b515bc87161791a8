package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "gh-talent-scout"

var rootCmd = &cobra.Command{
	Use:           app,
	Short:         "gh-talent-scout discovers and ranks developer candidates on GitHub for a job requirement",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json-log", "j", false, "json format for logging")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("json-log", rootCmd.PersistentFlags().Lookup("json-log"))
}
