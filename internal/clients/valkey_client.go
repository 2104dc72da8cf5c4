package clients

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spacesedan/sentichat/internal/models"
	"github.com/valkey-io/valkey-go"
)

const (
	VALKEY_CLASSIFICATION_NAMESPACE = "sentiment:classification"
	VALKEY_CLASSIFICATION_TTL       = 86400 // seconds
	VALKEY_RETRIES                  = 3
)

type ValkeyOptions struct {
	Address  string
	Password string
	UseTLS   bool
}

// ValkeyClient caches statement classifications so repeated utterances skip the model.
type ValkeyClient struct {
	client valkey.Client
	opts   ValkeyOptions
	mu     sync.Mutex
}

func NewValkeyClient(opts ValkeyOptions) (*ValkeyClient, error) {
	client, err := connectValkey(opts)
	if err != nil {
		return nil, err
	}
	slog.Info("[ValkeyClient] Successfully connected to valkey")
	return &ValkeyClient{client: client, opts: opts}, nil
}

func connectValkey(opts ValkeyOptions) (valkey.Client, error) {
	clientOpts := valkey.ClientOption{
		InitAddress:      []string{opts.Address},
		Password:         opts.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if opts.UseTLS {
		clientOpts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}
	return client, nil
}

func (vc *ValkeyClient) recreateClient() {
	slog.Warn("[ValkeyClient] Attempting to recreate Valkey client...")
	client, err := connectValkey(vc.opts)
	if err != nil {
		slog.Error("[ValkeyClient] Recreate failed", slog.String("error", err.Error()))
		return
	}
	vc.swapClient(client).Close()
	slog.Info("[ValkeyClient] Successfully reconnected to valkey")
}

// swapClient installs next and returns the client it replaced.
func (vc *ValkeyClient) swapClient(next valkey.Client) valkey.Client {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	prev := vc.client
	vc.client = next
	return prev
}

func (vc *ValkeyClient) current() valkey.Client {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.client
}

func (vc *ValkeyClient) Close() {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.client.Close()
}

func (vc *ValkeyClient) GetClassification(ctx context.Context, key string) (models.Classification, bool, error) {
	res := vc.DoWithRetry(ctx, func(client valkey.Client) valkey.Completed {
		return client.B().Get().Key(key).Build()
	}, VALKEY_RETRIES)
	if err := res.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return models.Classification{}, false, nil
		}
		if isConnectionError(err) {
			vc.recreateClient()
		}
		return models.Classification{}, false, err
	}

	raw, err := res.ToString()
	if err != nil {
		return models.Classification{}, false, err
	}

	var c models.Classification
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return models.Classification{}, false, fmt.Errorf("decode cached classification: %w", err)
	}
	return c, true, nil
}

func (vc *ValkeyClient) SetClassification(ctx context.Context, key string, c models.Classification) error {
	body, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode classification: %w", err)
	}

	res := vc.DoWithRetry(ctx, func(client valkey.Client) valkey.Completed {
		return client.B().Set().Key(key).Value(string(body)).ExSeconds(VALKEY_CLASSIFICATION_TTL).Build()
	}, VALKEY_RETRIES)
	if err := res.Error(); err != nil {
		if isConnectionError(err) {
			vc.recreateClient()
		}
		return err
	}
	return nil
}

// DoWithRetry rebuilds the command on every attempt; a completed command is
// recycled by the client once it has been sent.
func (vc *ValkeyClient) DoWithRetry(ctx context.Context, build func(valkey.Client) valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		client := vc.current()
		result = client.Do(ctx, build(client))
		if result.Error() == nil || valkey.IsValkeyNil(result.Error()) {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", result.Error().Error()))

		time.Sleep(250 * time.Millisecond)
	}

	return result
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
