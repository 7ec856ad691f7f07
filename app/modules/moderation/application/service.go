package moderationservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	casedb "github.com/allthingslinux/tux-sub001/app/modules/moderation/infrastructure/repositories"
	"github.com/allthingslinux/tux-sub001/app/shared/observability/attr"
	"github.com/allthingslinux/tux-sub001/app/shared/observability/metrics"
	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
)

const controllerName = "cases"

// CaseService implements the Service interface.
type CaseService struct {
	repo    casedb.Repository
	logger  *slog.Logger
	metrics metrics.ControllerMetrics
	tracer  trace.Tracer
}

// NewCaseService creates a new CaseService.
func NewCaseService(
	repo casedb.Repository,
	logger *slog.Logger,
	metrics metrics.ControllerMetrics,
	tracer trace.Tracer,
) *CaseService {
	return &CaseService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[T any] func(ctx context.Context) (T, error)

// withTelemetry wraps a service operation with tracing, metrics and panic
// recovery. It annotates and re-raises; the error kind is never changed.
func withTelemetry[T any](
	s *CaseService,
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
