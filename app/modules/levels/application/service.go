package levelsservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	levelsdb "github.com/allthingslinux/tux-sub001/app/modules/levels/infrastructure/repositories"
	"github.com/allthingslinux/tux-sub001/app/shared/observability/attr"
	"github.com/allthingslinux/tux-sub001/app/shared/observability/metrics"
	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
)

const controllerName = "levels"

// AwardResult reports the record state after an AwardXP call. For a no-op
// (cooldown, blacklist, flood guard) it carries the unchanged values and
// LeveledUp is false.
type AwardResult struct {
	XP        float64
	Level     int64
	LeveledUp bool
}

// Service owns per-(guild, user) experience counters.
type Service interface {
	AwardXP(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID, amount float64, now time.Time) (AwardResult, error)
	SetBlacklisted(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID, blacklisted bool) error
	GetLevelsBatch(ctx context.Context, guildID sharedtypes.GuildID, userIDs []sharedtypes.DiscordID) (map[sharedtypes.DiscordID]levelsdb.LevelRecord, error)
	Reset(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID) error
}

// LevelsService implements the Service interface.
type LevelsService struct {
	repo     levelsdb.Repository
	logger   *slog.Logger
	metrics  metrics.ControllerMetrics
	tracer   trace.Tracer
	cooldown time.Duration

	// limiter bounds process-wide award attempts before any backend round
	// trip. The persisted cooldown is the real policy; this only sheds
	// hot-loop message floods. Nil disables the guard.
	limiter *rate.Limiter
}

// NewLevelsService creates a new LevelsService. floodRate/floodBurst of zero
// disable the flood guard.
func NewLevelsService(
	repo levelsdb.Repository,
	logger *slog.Logger,
	metrics metrics.ControllerMetrics,
	tracer trace.Tracer,
	cooldown time.Duration,
	floodRate float64,
	floodBurst int,
) *LevelsService {
	s := &LevelsService{
		repo:     repo,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		cooldown: cooldown,
	}
	if floodRate > 0 && floodBurst > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(floodRate), floodBurst)
	}
	return s
}

type operationFunc[T any] func(ctx context.Context) (T, error)

// withTelemetry wraps a service operation with tracing, metrics and panic
// recovery.
func withTelemetry[T any](
	s *LevelsService,
	ctx context.Context,
	operationName string,
	guildID sharedtypes.GuildID,
	op operationFunc[T],
) (result T, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("controller", controllerName),
		attribute.String("operation", operationName),
		attribute.String("guild_id", string(guildID)),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, controllerName, operationName, guildID)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, controllerName, operationName, guildID, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.GuildID("guild_id", guildID),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, controllerName, operationName, guildID)
			span.RecordError(err)
			var zero T
			result = zero
		}
	}()

	result, err = op(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.GuildID("guild_id", guildID),
			attr.Error(err),
		)
		s.metrics.RecordOperationFailure(ctx, controllerName, operationName, guildID)
		span.RecordError(err)
		span.SetStatus(codes.Error, operationName)
		return result, err
	}

	s.metrics.RecordOperationSuccess(ctx, controllerName, operationName, guildID)
	return result, nil
}
