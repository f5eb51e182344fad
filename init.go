package main

import (
	"context"
	"fmt"

	"github.com/tournevent/correos/internal/config"
	"github.com/tournevent/correos/internal/telemetry"
	"github.com/tournevent/correos/pkg/carrier"
	"github.com/tournevent/correos/pkg/carrier/correos"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(level string, debug bool) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level, debug)
}

func initTracer(ctx context.Context, cfg *config.Config) (trace.Tracer, func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return nil, func(context.Context) error { return nil }, nil
	}
	return telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Attributes())
}

func initCorreosClient(cfg *config.Config, logger *otelzap.Logger, tracer trace.Tracer) (*correos.Client, error) {
	correosCfg := cfg.Correos()
	if err := correosCfg.Validate(); err != nil {
		return nil, fmt.Errorf("correos configuration: %w", err)
	}

	// The production picking transport is provided by a separate module;
	// only the mock dialer ships with the bridge.
	if !cfg.CorreosUseMock {
		return nil, fmt.Errorf("no correos transport configured, set CORREOS_USE_MOCK=true or wire a dialer")
	}
	return correos.New(correosCfg, correos.NewMockDialer(), logger, tracer), nil
}

func initCarrierRegistry(cfg *config.Config, logger *otelzap.Logger, tracer trace.Tracer) (*carrier.Registry, error) {
	registry := carrier.NewRegistry()

	client, err := initCorreosClient(cfg, logger, tracer)
	if err != nil {
		return nil, err
	}
	registry.Register(client)

	return registry, nil
}
