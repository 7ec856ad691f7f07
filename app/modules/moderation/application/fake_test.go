package moderationservice

import (
	"log/slog"
	"testing"

	"go.opentelemetry.io/otel/trace/noop"

	casedb "github.com/allthingslinux/tux-sub001/app/modules/moderation/infrastructure/repositories"
	"github.com/allthingslinux/tux-sub001/app/shared/observability/metrics"
)

func newTestCaseService(t *testing.T, repo *casedb.FakeRepository) *CaseService {
	t.Helper()
	return NewCaseService(
		repo,
		slog.New(slog.DiscardHandler),
		&metrics.NoOpMetrics{},
		noop.NewTracerProvider().Tracer("test"),
	)
}
