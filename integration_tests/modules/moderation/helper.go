package moderationintegrationtests

import (
	"context"
	"log"
	"log/slog"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace/noop"

	moderationservice "github.com/allthingslinux/tux-sub001/app/modules/moderation/application"
	casedb "github.com/allthingslinux/tux-sub001/app/modules/moderation/infrastructure/repositories"
	"github.com/allthingslinux/tux-sub001/app/shared/observability/metrics"
	"github.com/allthingslinux/tux-sub001/db/bundb"
	"github.com/allthingslinux/tux-sub001/integration_tests/testutils"
)

var (
	testEnv     *testutils.TestEnvironment
	testEnvOnce sync.Once
	testEnvErr  error
)

// TestDeps holds dependencies needed by individual tests.
type TestDeps struct {
	Ctx       context.Context
	Repo      *casedb.Impl
	DBService *bundb.Service
	Service   *moderationservice.CaseService
}

func getTestEnv(t *testing.T) *testutils.TestEnvironment {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testEnvOnce.Do(func() {
		log.Println("Initializing moderation test environment...")
		testEnv, testEnvErr = testutils.NewTestEnvironment(t)
	})
	if testEnvErr != nil {
		t.Fatalf("test environment initialization failed: %v", testEnvErr)
	}
	return testEnv
}

func setupTestCaseService(t *testing.T) TestDeps {
	t.Helper()
	env := getTestEnv(t)

	resetCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := env.Reset(resetCtx); err != nil {
		t.Fatalf("failed to reset environment: %v", err)
	}

	repo := casedb.NewRepository(env.DB)
	service := moderationservice.NewCaseService(
		repo,
		slog.New(slog.DiscardHandler),
		&metrics.NoOpMetrics{},
		noop.NewTracerProvider().Tracer("test_case_service"),
	)

	return TestDeps{
		Ctx:       env.Ctx,
		Repo:      repo,
		DBService: env.DBService,
		Service:   service,
	}
}
