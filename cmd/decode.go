package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zjrosen/carillon/internal/decode"
)

var decodeDryRun bool

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Normalize percent-encoded clip filenames",
	Long: `Rename clips whose filenames are percent-encoded (singly or doubly)
to their decoded form. Files whose decoded name is already taken are
left alone.`,
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().BoolVar(&decodeDryRun, "dry-run", false,
		"show the planned renames without applying them")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	plan, err := decode.Plan(cfg.Clips.Dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(plan) == 0 {
		fmt.Fprintln(out, "Nothing to rename")
		return nil
	}

	for _, r := range plan {
		fmt.Fprintf(out, "  %s -> %s\n", filepath.Base(r.From), filepath.Base(r.To))
	}
	if decodeDryRun {
		fmt.Fprintf(out, "Would rename %d files (dry run)\n", len(plan))
		return nil
	}

	done, err := decode.Apply(plan)
	if err != nil {
		return fmt.Errorf("after %d renames: %w", done, err)
	}
	fmt.Fprintf(out, "Renamed %d files\n", done)
	return nil
}
