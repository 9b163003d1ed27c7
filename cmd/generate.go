package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zjrosen/carillon/internal/tts"
	"github.com/zjrosen/carillon/internal/words"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate audio clips for the word pool",
	Long: `Synthesize one audio clip per pool word through the configured
text-to-speech endpoint. Existing clips are kept. The endpoint and
language can be overridden through a .env file or the environment:

  CARILLON_TTS_ENDPOINT  overrides tts.endpoint
  CARILLON_TTS_LANG      overrides tts.lang`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// A missing .env is fine; it only exists to hold endpoint overrides.
	_ = godotenv.Load()
	if v := os.Getenv("CARILLON_TTS_ENDPOINT"); v != "" {
		cfg.TTS.Endpoint = v
	}
	if v := os.Getenv("CARILLON_TTS_LANG"); v != "" {
		cfg.TTS.Lang = v
	}

	source := words.NewSource(cfg.Words.Source, cfg.Words.CacheTTL,
		words.WithFallback(cfg.Words.Fallback))
	pool := source.Pool(cmd.Context())

	client := tts.NewClient(cfg.TTS.Endpoint, cfg.TTS.Lang)
	result, err := client.Generate(cmd.Context(), cfg.Clips.Dir, cfg.Clips.Ext, pool)
	if err != nil {
		return fmt.Errorf("generating clips: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generated %d, skipped %d existing\n", result.Generated, result.Skipped)
	if len(result.Failed) > 0 {
		fmt.Fprintf(out, "Failed (%d):\n", len(result.Failed))
		for _, word := range result.Failed {
			fmt.Fprintf(out, "  %s\n", word)
		}
		return fmt.Errorf("%d words failed to synthesize", len(result.Failed))
	}
	return nil
}
