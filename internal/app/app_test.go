package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/washmart/washmart/internal/config"
	testhelpers "github.com/washmart/washmart/internal/test"
	"github.com/washmart/washmart/internal/worker"
)

func newTestPoller() *worker.StatusPoller {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return worker.NewStatusPoller(&testhelpers.PollerFacadeStub{}, 10*time.Millisecond, 1, 1, logger)
}

func newTestSweeper() *worker.ExpirySweeper {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return worker.NewExpirySweeper(&testhelpers.SweepFacadeStub{}, 10*time.Millisecond, logger)
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestNewWorkersUseConfig(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	params := workerParams{
		Facade: &CommerceFacade{},
		Config: &config.Config{
			PaymentPollInterval: 15 * time.Second,
			PollBatchSize:       3,
			WorkerPoolSize:      4,
			SweepInterval:       time.Hour,
		},
		Logger: logger,
	}
	if poller := newStatusPoller(params); poller == nil {
		t.Fatal("expected status poller instance")
	}
	if sweeper := newExpirySweeper(params); sweeper == nil {
		t.Fatal("expected expiry sweeper instance")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Poller:     newTestPoller(),
		Sweeper:    newTestSweeper(),
		Config:     &config.Config{ShutdownTimeout: 100 * time.Millisecond},
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	hook := recorder.Hooks[0]
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := hook.OnStart(ctx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hook.OnStop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	server := &http.Server{Addr: "bad addr"}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Poller:     newTestPoller(),
		Sweeper:    newTestSweeper(),
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = hook.OnStop(context.Background())
}

func TestLifecycleRecorderAppend(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	recorder.Append(fx.Hook{})
	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected hook to be appended")
	}
}
