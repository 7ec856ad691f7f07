package guildconfigservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	guildconfigdb "github.com/allthingslinux/tux-sub001/app/modules/guildconfig/infrastructure/repositories"
	"github.com/allthingslinux/tux-sub001/app/shared/observability/attr"
	"github.com/allthingslinux/tux-sub001/app/shared/observability/metrics"
	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
)

const controllerName = "guild_config"

// Service owns per-tenant configuration. Absence of a stored config is a
// valid state meaning defaults apply, never an error.
type Service interface {
	Get(ctx context.Context, guildID sharedtypes.GuildID) (*guildconfigdb.GuildConfig, error)
	SetRoleSlot(ctx context.Context, guildID sharedtypes.GuildID, slot guildconfigdb.RoleSlot, roleID sharedtypes.RoleID) error
	SetChannelSlot(ctx context.Context, guildID sharedtypes.GuildID, slot guildconfigdb.ChannelSlot, channelID sharedtypes.ChannelID) error
	SetPermLevelRole(ctx context.Context, guildID sharedtypes.GuildID, level int, roleID sharedtypes.RoleID) error
}

// GuildConfigService implements the Service interface.
type GuildConfigService struct {
	repo    guildconfigdb.Repository
	logger  *slog.Logger
	metrics metrics.ControllerMetrics
	tracer  trace.Tracer

	// serviceWrapper wraps each operation with telemetry. A struct field so
	// tests can stub it out.
	serviceWrapper func(ctx context.Context, operationName string, guildID sharedtypes.GuildID, fn func(ctx context.Context) error) error
}

// NewGuildConfigService creates a new GuildConfigService.
func NewGuildConfigService(
	repo guildconfigdb.Repository,
	logger *slog.Logger,
	metrics metrics.ControllerMetrics,
	tracer trace.Tracer,
) *GuildConfigService {
	s := &GuildConfigService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
	s.serviceWrapper = s.withTelemetry
	return s
}

func (s *GuildConfigService) withTelemetry(ctx context.Context, operationName string, guildID sharedtypes.GuildID, fn func(ctx context.Context) error) (err error) {
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
		}
	}()

	if err = fn(ctx); err != nil {
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.GuildID("guild_id", guildID),
			attr.Error(err),
		)
		s.metrics.RecordOperationFailure(ctx, controllerName, operationName, guildID)
		span.RecordError(err)
		span.SetStatus(codes.Error, operationName)
		return err
	}

	s.metrics.RecordOperationSuccess(ctx, controllerName, operationName, guildID)
	return nil
}
