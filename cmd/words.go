package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/carillon/internal/words"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Print the current word pool",
	Long:  `Fetch and print the quiz word pool, one word per line. Uses the fallback pool when the configured source is unavailable.`,
	RunE:  runWords,
}

func init() {
	rootCmd.AddCommand(wordsCmd)
}

func runWords(cmd *cobra.Command, args []string) error {
	source := words.NewSource(cfg.Words.Source, cfg.Words.CacheTTL,
		words.WithFallback(cfg.Words.Fallback))

	out := cmd.OutOrStdout()
	for _, word := range source.Pool(cmd.Context()) {
		fmt.Fprintln(out, word)
	}
	return nil
}
