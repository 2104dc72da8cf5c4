package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spacesedan/sentichat/config"
	"github.com/spacesedan/sentichat/internal/analysis"
	"github.com/spacesedan/sentichat/internal/clients"
	"github.com/spacesedan/sentichat/internal/sentiment"
)

// app holds the wired components for one process.
type app struct {
	classifier sentiment.Classifier
	resolver   *sentiment.Resolver
	judge      *analysis.Judge
	cache      *clients.ValkeyClient
}

func (a *app) Close() {
	if a.cache != nil {
		a.cache.Close()
	}
}

func buildApp(ctx context.Context, c config.Config) *app {
	a := &app{}

	a.classifier = buildClassifier(c)
	if c.ValkeyAddress != "" {
		vc, err := clients.NewValkeyClient(clients.ValkeyOptions{
			Address:  c.ValkeyAddress,
			Password: c.ValkeyPassword,
			UseTLS:   c.ValkeyTLS,
		})
		if err != nil {
			slog.Warn("[Main] Classification cache unavailable, continuing without it",
				slog.String("error", err.Error()))
		} else {
			a.cache = vc
			a.classifier = sentiment.NewCachedClassifier(a.classifier, vc,
				clients.VALKEY_CLASSIFICATION_NAMESPACE+":"+c.ClassifierBackend)
		}
	}

	a.resolver = sentiment.NewResolver(a.classifier, c.NeutralThreshold)
	aggregator := analysis.NewAggregator(a.resolver)

	var remote *analysis.RemoteJudge
	if c.UseRemote() {
		model, err := buildVerdictModel(ctx, c)
		if err != nil {
			slog.Warn("[Main] Remote judge not configured, conversations will be aggregated locally",
				slog.String("provider", c.JudgeProvider),
				slog.String("error", err.Error()))
		} else {
			remote = analysis.NewRemoteJudge(model, c.JudgeTimeout)
		}
	}
	a.judge = analysis.NewJudge(remote, aggregator)
	return a
}

func buildClassifier(c config.Config) sentiment.Classifier {
	switch c.ClassifierBackend {
	case config.BackendVader:
		return sentiment.NewVaderClassifier()
	default:
		return clients.NewHugotClassifier(c.HugotModel, c.HugotModelDir)
	}
}

func buildVerdictModel(ctx context.Context, c config.Config) (analysis.VerdictModel, error) {
	switch c.JudgeProvider {
	case config.ProviderOpenAI:
		return clients.NewOpenAIModel(c.OpenAIAPIKey, c.JudgeModel, c.JudgeTimeout)
	case config.ProviderGemini:
		return clients.NewGeminiModel(ctx, c.GoogleAPIKey, c.JudgeModel)
	}
	return nil, errors.New("unknown judge provider " + c.JudgeProvider)
}
