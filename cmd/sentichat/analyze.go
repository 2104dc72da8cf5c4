package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spacesedan/sentichat/internal/analysis"
	"github.com/spacesedan/sentichat/internal/models"
	"github.com/spacesedan/sentichat/internal/session"
	"github.com/spf13/cobra"
)

func runAnalyze(cmd *cobra.Command, args []string) error {
	transcript, err := readTranscript(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a := buildApp(ctx, cfg)
	defer a.Close()

	statements, err := a.resolver.ResolveAll(ctx, models.UserTexts(analysis.ParseTranscript(transcript)))
	if err != nil {
		return fmt.Errorf("statement sentiment: %w", err)
	}
	verdict, err := a.judge.Judge(ctx, transcript, cfg.UseRemote())
	if err != nil {
		return fmt.Errorf("conversation sentiment: %w", err)
	}

	printReport(cmd.OutOrStdout(), &session.Report{Statements: statements, Conversation: verdict})
	return nil
}

func readTranscript(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return string(data), nil
}
