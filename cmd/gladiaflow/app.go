package main

import (
	"fmt"

	"github.com/kbukum/gladiaflow/bootstrap"
	"github.com/kbukum/gladiaflow/logger"
	"github.com/kbukum/gladiaflow/observability"
	"github.com/kbukum/gladiaflow/provider"
	"github.com/kbukum/gladiaflow/storage"
	"github.com/kbukum/gladiaflow/transcription"
	"github.com/kbukum/gladiaflow/transcription/gladia"
)

// application bundles the bootstrapped app with the pieces commands use.
type application struct {
	*bootstrap.App[*AppConfig]
	service      transcription.Service
	orchestrator *transcription.Orchestrator
}

// newApplication validates cfg, then wires telemetry, job metrics and the
// configured transcription backend into a bootstrap.App. Components start
// in this order: telemetry, transcription.
func newApplication(cfg *AppConfig, opts ...bootstrap.Option) (*application, error) {
	app, err := bootstrap.NewApp(cfg, opts...)
	if err != nil {
		return nil, err
	}

	telemetry := observability.NewComponent(cfg.Observability, cfg.Name, cfg.Version, cfg.Environment)
	if err := app.RegisterComponent(telemetry); err != nil {
		return nil, err
	}

	metrics, err := observability.NewJobMetrics(observability.Meter(observability.InstrumentationName))
	if err != nil {
		return nil, fmt.Errorf("create job metrics: %w", err)
	}

	service, err := newServices(cfg, metrics).Create(cfg.Transcription.Provider, nil)
	if err != nil {
		return nil, err
	}
	if err := app.RegisterComponent(transcription.NewComponent(service)); err != nil {
		return nil, err
	}

	orchestrator := transcription.NewOrchestrator(service, transcription.WithMetrics(metrics))
	return &application{App: app, service: service, orchestrator: orchestrator}, nil
}

// newServices registers every transcription backend gladiaflow ships.
func newServices(cfg *AppConfig, metrics *observability.JobMetrics) *provider.Registry[transcription.Service] {
	services := transcription.NewRegistry()
	services.RegisterFactory(gladia.ProviderName, gladia.Factory(cfg.Gladia,
		gladia.WithLogger(logger.Get(gladia.ProviderName)),
		gladia.WithMetrics(metrics),
	))
	return services
}

// executor builds a batch executor over binaries using the configured
// polling defaults.
func (a *application) executor(binaries storage.BinaryStore) *transcription.Executor {
	return transcription.NewExecutor(a.orchestrator, binaries,
		transcription.WithDefaultPollPolicy(a.Cfg.Polling.Policy()))
}
