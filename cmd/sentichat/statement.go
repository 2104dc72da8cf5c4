package main

import (
	"fmt"
	"strings"

	"github.com/spacesedan/sentichat/internal/models"
	"github.com/spacesedan/sentichat/internal/report"
	"github.com/spf13/cobra"
)

func runStatement(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a := buildApp(ctx, cfg)
	defer a.Close()

	verdict, err := a.resolver.Resolve(ctx, strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("statement sentiment: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), report.Statements([]models.StatementVerdict{verdict}))
	return nil
}
