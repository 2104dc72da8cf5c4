package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	BackendHugot = "hugot"
	BackendVader = "vader"
)

type Config struct {
	AppEnv   string
	LogLevel string

	ForceLocal    bool
	JudgeProvider string
	JudgeModel    string
	JudgeTimeout  time.Duration
	GoogleAPIKey  string
	OpenAIAPIKey  string

	ClassifierBackend string
	NeutralThreshold  float64
	HugotModel        string
	HugotModelDir     string

	ValkeyAddress  string
	ValkeyPassword string
	ValkeyTLS      bool
}

func defaultConfig() Config {
	return Config{
		AppEnv:            "dev",
		LogLevel:          "info",
		JudgeProvider:     ProviderGemini,
		JudgeTimeout:      30 * time.Second,
		ClassifierBackend: BackendHugot,
		NeutralThreshold:  0.55,
		HugotModelDir:     "./models",
	}
}

// FromEnv builds a Config from the process environment on top of the defaults.
func FromEnv() (Config, error) {
	cfg := defaultConfig()

	cfg.AppEnv = envOr("APP_ENV", cfg.AppEnv)
	cfg.LogLevel = strings.ToLower(envOr("LOG_LEVEL", cfg.LogLevel))
	cfg.ForceLocal = IsTruthy(os.Getenv("FORCE_LOCAL_SENTIMENT"))
	cfg.JudgeProvider = strings.ToLower(envOr("JUDGE_PROVIDER", cfg.JudgeProvider))
	cfg.JudgeModel = os.Getenv("JUDGE_MODEL")
	cfg.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.ClassifierBackend = strings.ToLower(envOr("CLASSIFIER_BACKEND", cfg.ClassifierBackend))
	cfg.HugotModel = os.Getenv("HUGOT_MODEL")
	cfg.HugotModelDir = envOr("HUGOT_MODEL_DIR", cfg.HugotModelDir)
	cfg.ValkeyAddress = os.Getenv("VALKEY_INIT_ADDRESS")
	cfg.ValkeyPassword = os.Getenv("VALKEY_PASSWORD")
	cfg.ValkeyTLS = os.Getenv("VALKEY_TLS") == "true"

	if v := os.Getenv("JUDGE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("JUDGE_TIMEOUT: %w", err)
		}
		cfg.JudgeTimeout = d
	}
	if v := os.Getenv("NEUTRAL_THRESHOLD"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("NEUTRAL_THRESHOLD: %w", err)
		}
		cfg.NeutralThreshold = t
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.JudgeProvider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown judge provider %q", c.JudgeProvider)
	}
	switch c.ClassifierBackend {
	case BackendHugot, BackendVader:
	default:
		return fmt.Errorf("unknown classifier backend %q", c.ClassifierBackend)
	}
	if c.NeutralThreshold < 0 || c.NeutralThreshold > 1 {
		return errors.New("neutral threshold must be in [0, 1]")
	}
	if c.JudgeTimeout <= 0 {
		return errors.New("judge timeout must be > 0")
	}
	return nil
}

// UseRemote reports whether the remote judge should be attempted at all.
func (c Config) UseRemote() bool {
	return !c.ForceLocal
}

// IsTruthy accepts 1, true and yes in any case.
func IsTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
