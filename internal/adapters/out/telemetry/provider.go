// Package telemetry provides OpenTelemetry initialization and the inventory
// instrumentation. Traces and metrics are exported via OTLP/HTTP.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config holds telemetry configuration.
type Config struct {
	Enabled         bool    `mapstructure:"enabled"`
	Endpoint        string  `mapstructure:"endpoint"`          // collector base URL, e.g. "http://localhost:4318"
	AuthToken       string  `mapstructure:"auth_token"`        // base64 user:pass sent as Basic auth
	Traces          bool    `mapstructure:"traces"`
	Metrics         bool    `mapstructure:"metrics"`
	TraceSampleRate float64 `mapstructure:"trace_sample_rate"` // 0 disables sampling, >= 1 samples everything
}

// Setup installs the global tracer and meter providers. Traces also switch on
// W3C trace context propagation, so outbound inventory requests carry the
// caller's span. The returned function flushes and stops the providers; it is
// a noop when telemetry is disabled.
func Setup(ctx context.Context, cfg Config, serviceName, version string) (func(context.Context), error) {
	noop := func(context.Context) {}
	if !cfg.Enabled || cfg.Endpoint == "" || (!cfg.Traces && !cfg.Metrics) {
		return noop, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName), semconv.ServiceVersion(version)),
		resource.WithHost(),
	)
	if err != nil {
		return noop, fmt.Errorf("create resource: %w", err)
	}

	var stops []func(context.Context) error
	shutdown := func(ctx context.Context) {
		for _, stop := range stops {
			_ = stop(ctx)
		}
	}

	if cfg.Traces {
		endpoint, err := signalURL(cfg.Endpoint, "traces")
		if err != nil {
			return noop, err
		}
		exp, err := otlptracehttp.New(ctx,
			otlptracehttp.WithEndpointURL(endpoint),
			otlptracehttp.WithHeaders(authHeaders(cfg.AuthToken)),
		)
		if err != nil {
			return noop, fmt.Errorf("create trace exporter: %w", err)
		}
		tp := trace.NewTracerProvider(
			trace.WithBatcher(exp),
			trace.WithResource(res),
			trace.WithSampler(trace.ParentBased(sampler(cfg.TraceSampleRate))),
		)
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
		stops = append(stops, tp.Shutdown)
	}

	if cfg.Metrics {
		endpoint, err := signalURL(cfg.Endpoint, "metrics")
		if err != nil {
			shutdown(ctx)
			return noop, err
		}
		exp, err := otlpmetrichttp.New(ctx,
			otlpmetrichttp.WithEndpointURL(endpoint),
			otlpmetrichttp.WithHeaders(authHeaders(cfg.AuthToken)),
		)
		if err != nil {
			shutdown(ctx)
			return noop, fmt.Errorf("create metric exporter: %w", err)
		}
		mp := metric.NewMeterProvider(
			metric.WithReader(metric.NewPeriodicReader(exp)),
			metric.WithResource(res),
		)
		otel.SetMeterProvider(mp)
		stops = append(stops, mp.Shutdown)
	}

	return shutdown, nil
}

// signalURL appends the OTLP signal path (/v1/traces, /v1/metrics) to the
// collector base URL.
func signalURL(base, signal string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse endpoint URL: %w", err)
	}
	if u.Host == "" {
		return "", errors.New("telemetry endpoint " + base + " has no host")
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/v1/" + signal
	return u.String(), nil
}

func authHeaders(token string) map[string]string {
	if token == "" {
		return nil
	}
	return map[string]string{"Authorization": "Basic " + token}
}

func sampler(rate float64) trace.Sampler {
	switch {
	case rate <= 0:
		return trace.NeverSample()
	case rate < 1:
		return trace.TraceIDRatioBased(rate)
	default:
		return trace.AlwaysSample()
	}
}
