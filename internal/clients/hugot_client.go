package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"github.com/spacesedan/sentichat/internal/models"
	"github.com/spacesedan/sentichat/internal/sentiment"
)

const (
	HUGOT_DEFAULT_MODEL   = "distilbert/distilbert-base-uncased-finetuned-sst-2-english"
	HUGOT_MAX_INPUT_RUNES = 1024
	HUGOT_DOWNLOAD_BUDGET = 2 * time.Minute
)

// The pipeline is shared by the whole process and built at most once.
var (
	hugotPipeline *pipelines.TextClassificationPipeline
	hugotInitErr  error
	hugotOnce     sync.Once
)

// HugotClassifier runs a binary text classification model through hugot.
// The model is downloaded and loaded on the first Classify call.
type HugotClassifier struct {
	modelName string
	modelDir  string
}

func NewHugotClassifier(modelName, modelDir string) *HugotClassifier {
	if modelName == "" {
		modelName = HUGOT_DEFAULT_MODEL
	}
	return &HugotClassifier{modelName: modelName, modelDir: modelDir}
}

func (h *HugotClassifier) Classify(_ context.Context, text string) (models.Classification, error) {
	pipeline, err := h.load()
	if err != nil {
		return models.Classification{}, err
	}

	output, err := pipeline.RunPipeline([]string{truncateRunes(text, HUGOT_MAX_INPUT_RUNES)})
	if err != nil {
		return models.Classification{}, fmt.Errorf("%w: run pipeline: %w", sentiment.ErrClassifierUnavailable, err)
	}
	if len(output.ClassificationOutputs) == 0 || len(output.ClassificationOutputs[0]) == 0 {
		return models.Classification{}, fmt.Errorf("%w: empty pipeline output", sentiment.ErrClassifierUnavailable)
	}

	best := output.ClassificationOutputs[0][0]
	for _, o := range output.ClassificationOutputs[0][1:] {
		if o.Score > best.Score {
			best = o
		}
	}

	polarity := models.PolarityNegative
	if strings.HasPrefix(strings.ToUpper(best.Label), "POS") {
		polarity = models.PolarityPositive
	}
	return models.Classification{Polarity: polarity, Confidence: float64(best.Score)}, nil
}

func (h *HugotClassifier) load() (*pipelines.TextClassificationPipeline, error) {
	hugotOnce.Do(func() {
		hugotPipeline, hugotInitErr = initHugotPipeline(h.modelName, h.modelDir)
	})
	return hugotPipeline, hugotInitErr
}

func initHugotPipeline(modelName, modelDir string) (*pipelines.TextClassificationPipeline, error) {
	start := time.Now()
	modelPath, err := ensureModel(modelName, modelDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sentiment.ErrClassifierUnavailable, err)
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		slog.Error("[HugotClassifier] Failed to initialize Hugot session", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: new session: %w", sentiment.ErrClassifierUnavailable, err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "statementSentimentPipeline",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		slog.Error("[HugotClassifier] Failed to initialize pipeline", slog.String("error", err.Error()))
		if destroyErr := session.Destroy(); destroyErr != nil {
			err = errors.Join(err, destroyErr)
		}
		return nil, fmt.Errorf("%w: new pipeline: %w", sentiment.ErrClassifierUnavailable, err)
	}

	slog.Info("[HugotClassifier] Pipeline ready",
		slog.String("model", modelName),
		slog.Duration("elapsed", time.Since(start)))
	return pipeline, nil
}

// ensureModel returns the local model directory, downloading it if missing.
func ensureModel(modelName, modelDir string) (string, error) {
	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("create model directory: %w", err)
	}

	modelPath := filepath.Join(modelDir, strings.ReplaceAll(modelName, "/", "_"))
	if _, err := os.Stat(modelPath); err == nil {
		slog.Info("[HugotClassifier] Using existing model", slog.String("path", modelPath))
		return modelPath, nil
	}

	slog.Info("[HugotClassifier] Model not found, downloading...", slog.String("model", modelName))
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = HUGOT_DOWNLOAD_BUDGET

	err := backoff.RetryNotify(func() error {
		path, err := hugot.DownloadModel(modelName, modelDir, hugot.NewDownloadOptions())
		if err != nil {
			return err
		}
		modelPath = path
		return nil
	}, b, func(err error, wait time.Duration) {
		slog.Warn("[HugotClassifier] Model download failed, will retry",
			slog.Duration("wait", wait),
			slog.String("error", err.Error()))
	})
	if err != nil {
		return "", fmt.Errorf("download model %s: %w", modelName, err)
	}

	slog.Info("[HugotClassifier] Model downloaded successfully", slog.String("path", modelPath))
	return modelPath, nil
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
