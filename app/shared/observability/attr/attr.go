// Package attr provides slog attribute helpers so call sites stay terse and
// consistently keyed across the codebase.
package attr

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
)

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Int64(key string, value int64) slog.Attr { return slog.Int64(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Float64(key string, value float64) slog.Attr { return slog.Float64(key, value) }

func Duration(key string, value time.Duration) slog.Attr { return slog.Duration(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

func GuildID(key string, id sharedtypes.GuildID) slog.Attr {
	return slog.String(key, string(id))
}

func UserID(key string, id sharedtypes.DiscordID) slog.Attr {
	return slog.String(key, string(id))
}

type correlationIDKey struct{}

// NewCorrelationID returns a fresh correlation identifier.
func NewCorrelationID() string { return uuid.NewString() }

// WithCorrelationID stores a correlation ID on the context for the duration
// of a command. The data layer only reads it back for log annotation.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationID returns the correlation ID on the context, or "".
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}

// ExtractCorrelationID returns the context's correlation ID as a log
// attribute, empty-valued when none is set.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String("correlation_id", CorrelationID(ctx))
}
