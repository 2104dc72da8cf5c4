package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/spacesedan/sentichat/internal/chatbot"
	"github.com/spacesedan/sentichat/internal/monitoring"
	"github.com/spacesedan/sentichat/internal/report"
	"github.com/spacesedan/sentichat/internal/session"
	"github.com/spf13/cobra"
)

func runChat(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := buildApp(ctx, cfg)
	defer a.Close()

	classifierHealthy := &atomic.Bool{}
	go monitoring.WarmClassifier(ctx, a.classifier, classifierHealthy)

	bot := chatbot.New()
	s := session.New(bot, a.resolver, a.judge, cfg.UseRemote())
	return chatLoop(ctx, s, bot.Name, classifierHealthy.Load, cmd.InOrStdin(), cmd.OutOrStdout())
}

// chatLoop reads one line per turn until /end, /quit, EOF or ctx is cancelled.
// classifierReady is consulted on /end to tell the user why analysis may stall.
func chatLoop(ctx context.Context, s *session.Session, botName string, classifierReady func() bool, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "%s: Hi! I'm %s. Type %s to finish and see the analysis, or %s to leave.\n",
		botName, botName, session.CommandEnd, session.CommandQuit)

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-readCtx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(out, "You: ")

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "\nExiting.")
			return nil
		case l, ok := <-lines:
			if !ok {
				if ctx.Err() != nil {
					fmt.Fprintln(out, "\nExiting.")
					return nil
				}
				fmt.Fprintln(out)
				return <-scanErr
			}
			line = l
		}

		if strings.EqualFold(strings.TrimSpace(line), session.CommandEnd) && !classifierReady() {
			fmt.Fprintf(out, "%s: The sentiment model is not ready yet (still loading or failed, see logs). Analyzing anyway...\n", botName)
		}

		res, err := s.Handle(ctx, line)
		if err != nil {
			return err
		}

		switch res.Kind {
		case session.KindReply:
			fmt.Fprintf(out, "%s: %s\n", botName, res.Reply)
		case session.KindQuit:
			fmt.Fprintf(out, "%s: Bye!\n", botName)
			return nil
		case session.KindEnded:
			printReport(out, res.Report)
			return nil
		}
	}
}

func printReport(out io.Writer, r *session.Report) {
	fmt.Fprintln(out, report.Separator())
	fmt.Fprint(out, report.Statements(r.Statements))
	fmt.Fprintln(out, report.Separator())
	fmt.Fprint(out, report.Conversation(r.Conversation))
	fmt.Fprintln(out, report.Separator())
}
