package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/carillon/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long:  `Create ` + config.LocalConfigPath + ` with the default settings, commented for editing.`,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if err := config.WriteDefaultConfig(config.LocalConfigPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", config.LocalConfigPath)
	return nil
}
