package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spacesedan/sentichat/internal/models"
)

// Judge produces the Tier 1 verdict, remote first with a local fallback.
type Judge struct {
	remote     *RemoteJudge
	aggregator *Aggregator
}

// NewJudge wires the dispatcher. remote may be nil, in which case every call falls back.
func NewJudge(remote *RemoteJudge, aggregator *Aggregator) *Judge {
	return &Judge{remote: remote, aggregator: aggregator}
}

// Judge never surfaces a remote failure. The only errors it returns come from
// the local aggregator, i.e. a classifier that cannot be used.
func (j *Judge) Judge(ctx context.Context, transcript string, useRemote bool) (models.ConversationVerdict, error) {
	if useRemote {
		verdict, err := j.remote.JudgeConversation(ctx, transcript)
		if err == nil {
			return verdict, nil
		}
		slog.Warn("[Judge] Remote judge failed, falling back to local aggregation",
			slog.String("error", err.Error()))
	} else {
		slog.Info("[Judge] Remote judge disabled, using local aggregation")
	}

	verdict, err := j.aggregator.AggregateTranscript(ctx, transcript)
	if err != nil {
		return models.ConversationVerdict{}, fmt.Errorf("local aggregation: %w", err)
	}
	return verdict, nil
}
