// Package registry is the central access point for named controllers.
// Controllers are constructed lazily on first request, instrumented with the
// shared tracer and metrics, and cached for the process lifetime.
package registry

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"

	guildconfigservice "github.com/allthingslinux/tux-sub001/app/modules/guildconfig/application"
	guildconfigdb "github.com/allthingslinux/tux-sub001/app/modules/guildconfig/infrastructure/repositories"
	levelsservice "github.com/allthingslinux/tux-sub001/app/modules/levels/application"
	levelsdb "github.com/allthingslinux/tux-sub001/app/modules/levels/infrastructure/repositories"
	moderationservice "github.com/allthingslinux/tux-sub001/app/modules/moderation/application"
	casedb "github.com/allthingslinux/tux-sub001/app/modules/moderation/infrastructure/repositories"
	"github.com/allthingslinux/tux-sub001/app/shared/observability/metrics"
	"github.com/allthingslinux/tux-sub001/config"
)

// Controller names accepted by Controller.
const (
	ControllerCases       = "cases"
	ControllerGuildConfig = "guild_config"
	ControllerLevels      = "levels"
)

// DBProvider yields the live connection pool. Returns
// apperrors.ErrNotConnected before the lifecycle manager has connected;
// that error is fatal to the requesting operation and is not retried here.
type DBProvider interface {
	DB() (*bun.DB, error)
}

// Registry hands out instrumented controller instances. First access per
// name constructs; all later accesses return the cached instance. Safe for
// concurrent use: a construction race can never produce two live instances
// of the same controller.
type Registry struct {
	provider  DBProvider
	logger    *slog.Logger
	metrics   metrics.ControllerMetrics
	tracer    trace.Tracer
	levelsCfg config.LevelsConfig

	mu          sync.Mutex
	controllers map[string]any
}

// New creates a Registry. The same logger, metrics and tracer are shared by
// every controller so instrumentation comes for free with construction.
func New(
	provider DBProvider,
	logger *slog.Logger,
	m metrics.ControllerMetrics,
	tracer trace.Tracer,
	levelsCfg config.LevelsConfig,
) *Registry {
	return &Registry{
		provider:    provider,
		logger:      logger,
		metrics:     m,
		tracer:      tracer,
		levelsCfg:   levelsCfg,
		controllers: make(map[string]any),
	}
}

// Controller returns the named controller, constructing it on first use.
// Construction does no I/O, so holding the lock across it is fine.
func (r *Registry) Controller(name string) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.controllers[name]; ok {
		return c, nil
	}

	db, err := r.provider.DB()
	if err != nil {
		return nil, err
	}

	var c any
	switch name {
	case ControllerCases:
		c = moderationservice.NewCaseService(casedb.NewRepository(db), r.logger, r.metrics, r.tracer)
	case ControllerGuildConfig:
		c = guildconfigservice.NewGuildConfigService(guildconfigdb.NewRepository(db), r.logger, r.metrics, r.tracer)
	case ControllerLevels:
		c = levelsservice.NewLevelsService(
			levelsdb.NewRepository(db),
			r.logger,
			r.metrics,
			r.tracer,
			r.levelsCfg.Cooldown,
			r.levelsCfg.FloodRate,
			r.levelsCfg.FloodBurst,
		)
	default:
		return nil, fmt.Errorf("unknown controller %q", name)
	}

	r.controllers[name] = c
	return c, nil
}

// Cases returns the moderation case controller.
func (r *Registry) Cases() (moderationservice.Service, error) {
	c, err := r.Controller(ControllerCases)
	if err != nil {
		return nil, err
	}
	return c.(moderationservice.Service), nil
}

// GuildConfig returns the guild configuration controller.
func (r *Registry) GuildConfig() (guildconfigservice.Service, error) {
	c, err := r.Controller(ControllerGuildConfig)
	if err != nil {
		return nil, err
	}
	return c.(guildconfigservice.Service), nil
}

// Levels returns the levels controller.
func (r *Registry) Levels() (levelsservice.Service, error) {
	c, err := r.Controller(ControllerLevels)
	if err != nil {
		return nil, err
	}
	return c.(levelsservice.Service), nil
}
