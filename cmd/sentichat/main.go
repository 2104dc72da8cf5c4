package main

import (
	"fmt"
	"os"

	"github.com/spacesedan/sentichat/config"
	"github.com/spacesedan/sentichat/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfg config.Config

	flagProvider  string
	flagModel     string
	flagBackend   string
	flagThreshold float64
	flagLocal     bool
)

var rootCmd = &cobra.Command{
	Use:   "sentichat",
	Short: "Rule-based chatbot with conversation sentiment analysis",
	Long: `sentichat chats with you using a small set of rules and, when the
conversation ends, reports the sentiment of every user message (Tier 2)
and of the conversation as a whole (Tier 1).

Run without arguments to start the interactive chat.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "dev"
		}
		config.LoadEnv(env)

		var err error
		cfg, err = config.FromEnv()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		applyFlags(cmd, &cfg)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config: %w", err)
		}

		logging.InitLogger(cfg.LogLevel)
		return nil
	},
	RunE: runChat,
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	Long: `Starts a conversation on stdin. Type /end to finish and see the
sentiment report, or /quit to leave without analysis.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [transcript-file]",
	Short: "Judge a saved transcript",
	Long: `Reads a transcript made of "User:" and "Bot:" lines and prints both
sentiment tiers for it. Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var statementCmd = &cobra.Command{
	Use:   "statement [text]",
	Short: "Resolve the sentiment of a single statement",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStatement,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagProvider, "provider", "", "remote judge provider (gemini|openai)")
	pf.StringVar(&flagModel, "model", "", "remote judge model name")
	pf.StringVar(&flagBackend, "backend", "", "local classifier backend (hugot|vader)")
	pf.Float64Var(&flagThreshold, "threshold", 0, "neutral confidence threshold in [0,1]")
	pf.BoolVar(&flagLocal, "local", false, "skip the remote judge and aggregate locally")

	rootCmd.AddCommand(chatCmd, analyzeCmd, statementCmd)
}

// applyFlags lets explicitly set flags win over the environment.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("provider") {
		c.JudgeProvider = flagProvider
	}
	if flags.Changed("model") {
		c.JudgeModel = flagModel
	}
	if flags.Changed("backend") {
		c.ClassifierBackend = flagBackend
	}
	if flags.Changed("threshold") {
		c.NeutralThreshold = flagThreshold
	}
	if flags.Changed("local") && flagLocal {
		c.ForceLocal = true
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
