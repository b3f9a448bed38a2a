// Package cmd holds the command line interface and the wiring of the service.
package cmd

import (
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "tms",
	Short: "Transport management service",
	Long: `Manages transport orders: the instruction to move a transport unit to a
target location or location group, through its lifecycle from creation to
completion.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file (default: ./config.yaml or ./configs/config.yaml if present)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}
