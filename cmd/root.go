package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "replybot",
	Short: "Slack webhook relay backed by a generative-text backend",
	Long: `Replybot receives Slack event callbacks over HTTP, verifies request
signatures, forwards user messages to a generation backend (Ollama or
any OpenAI-compatible endpoint), and posts the generated reply back to
the originating channel. Repeated prompts are answered from a bounded
in-memory cache.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".replybot.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
