package state

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/m3rciful/portfoliobot/core/logger"
)

// Store is the capability a conversation controller needs from session storage.
// Get reports ok=false when the chat has no active conversation.
type Store[S any] interface {
	Get(ctx context.Context, chatID int64) (S, bool, error)
	Set(ctx context.Context, chatID int64, value S) error
	Delete(ctx context.Context, chatID int64) error
}

// Codec converts values to and from the bytes kept by external stores.
type Codec[S any] interface {
	Encode(value S) ([]byte, error)
	Decode(data []byte) (S, error)
}

// JSONCodec encodes plain structs with encoding/json.
type JSONCodec[S any] struct{}

// Encode implements Codec.
func (JSONCodec[S]) Encode(value S) ([]byte, error) {
	return json.Marshal(value)
}

// Decode implements Codec.
func (JSONCodec[S]) Decode(data []byte) (S, error) {
	var out S
	err := json.Unmarshal(data, &out)
	return out, err
}

// Options are shared by all store implementations.
type Options struct {
	// TTL expires idle conversations; 0 keeps them until deleted.
	TTL time.Duration
	// Now overrides the clock, used by tests.
	Now func() time.Time
}

func (o Options) clock() func() time.Time {
	if o.Now != nil {
		return o.Now
	}
	return time.Now
}

// decodeOrIdle turns an undecodable payload into an idle chat.
func decodeOrIdle[S any](ctx context.Context, codec Codec[S], backend string, chatID int64, data []byte) (S, bool) {
	value, err := codec.Decode(data)
	if err != nil {
		var zero S
		logger.Session.LogAttrs(ctx, slog.LevelWarn, "session decode failed",
			slog.String("event", "session.decode"),
			slog.String("status", "fail"),
			slog.String("backend", backend),
			slog.Int64("chat_id", chatID),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		return zero, false
	}
	return value, true
}
