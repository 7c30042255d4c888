package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "tsdb-query-planner"

const (
	metricPlans           = "planner.plans.total"
	metricPlanDuration     = "planner.plan.duration"
	metricPlanSuccess      = "planner.plans.success.total"
	metricPlanFailure      = "planner.plans.failure.total"
	metricSetupPasses      = "planner.setup.passes.total"
	metricPushdownFolds    = "planner.pushdown.folds.total"
	metricNodeInitDuration = "planner.node.init.duration"
)

// Provider manages OpenTelemetry setup and provides access to the tracer and
// meter used throughout a plan.
type Provider struct {
	mu sync.RWMutex

	meterProvider  *sdkmetric.MeterProvider
	tracerProvider trace.TracerProvider
	meter          metric.Meter
	tracer         trace.Tracer

	plans           metric.Int64Counter
	planDuration    metric.Float64Histogram
	planSuccess     metric.Int64Counter
	planFailure     metric.Int64Counter
	setupPasses     metric.Int64Counter
	pushdownFolds   metric.Int64Counter
	nodeInitDuration metric.Float64Histogram
}

// Config holds telemetry configuration.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	EnableTracing  bool
	EnableMetrics  bool
}

// DefaultConfig returns default telemetry configuration.
func DefaultConfig() Config {
	return Config{
		ServiceName:    serviceName,
		ServiceVersion: "0.1.0",
		Environment:    "development",
		EnableTracing:  true,
		EnableMetrics:  true,
	}
}

// NewProvider creates a Provider with a Prometheus metrics exporter.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	p := &Provider{}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			attribute.String("environment", cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	if cfg.EnableMetrics {
		if err := p.initMetrics(res); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	if cfg.EnableTracing {
		p.initTracing()
	}

	return p, nil
}

func (p *Provider) initMetrics(res *resource.Resource) error {
	exporter, err := prometheus.New()
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	p.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(p.meterProvider)
	p.meter = p.meterProvider.Meter(serviceName)

	return p.createInstruments()
}

func (p *Provider) initTracing() {
	p.tracerProvider = otel.GetTracerProvider()
	p.tracer = p.tracerProvider.Tracer(serviceName)
}

func (p *Provider) createInstruments() error {
	var err error

	if p.plans, err = p.meter.Int64Counter(metricPlans, metric.WithDescription("Total number of plan() calls")); err != nil {
		return err
	}
	if p.planDuration, err = p.meter.Float64Histogram(metricPlanDuration, metric.WithDescription("plan() duration in milliseconds"), metric.WithUnit("ms")); err != nil {
		return err
	}
	if p.planSuccess, err = p.meter.Int64Counter(metricPlanSuccess, metric.WithDescription("Total number of successful plans")); err != nil {
		return err
	}
	if p.planFailure, err = p.meter.Int64Counter(metricPlanFailure, metric.WithDescription("Total number of failed plans")); err != nil {
		return err
	}
	if p.setupPasses, err = p.meter.Int64Counter(metricSetupPasses, metric.WithDescription("Total number of factory setup passes run")); err != nil {
		return err
	}
	if p.pushdownFolds, err = p.meter.Int64Counter(metricPushdownFolds, metric.WithDescription("Total number of operators folded into data sources")); err != nil {
		return err
	}
	if p.nodeInitDuration, err = p.meter.Float64Histogram(metricNodeInitDuration, metric.WithDescription("Executor initialization duration in milliseconds"), metric.WithUnit("ms")); err != nil {
		return err
	}
	return nil
}

// Tracer returns the tracer used for plan spans.
func (p *Provider) Tracer() trace.Tracer {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tracer
}

// Meter returns the meter used for plan metrics.
func (p *Provider) Meter() metric.Meter {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.meter
}

// RecordPlan records a completed plan() call.
func (p *Provider) RecordPlan(ctx context.Context, planID string, duration time.Duration, success bool) {
	if p.meter == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String("plan.id", planID)}
	p.plans.Add(ctx, 1, metric.WithAttributes(attrs...))
	p.planDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if success {
		p.planSuccess.Add(ctx, 1, metric.WithAttributes(attrs...))
	} else {
		p.planFailure.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordSetupPass records one factory setup pass.
func (p *Provider) RecordSetupPass(ctx context.Context, planID string) {
	if p.meter == nil {
		return
	}
	p.setupPasses.Add(ctx, 1, metric.WithAttributes(attribute.String("plan.id", planID)))
}

// RecordPushdownFold records one operator folded into a data source.
func (p *Provider) RecordPushdownFold(ctx context.Context, planID, sourceID string) {
	if p.meter == nil {
		return
	}
	p.pushdownFolds.Add(ctx, 1, metric.WithAttributes(
		attribute.String("plan.id", planID),
		attribute.String("source.id", sourceID),
	))
}

// RecordNodeInit records one executor's initialization duration.
func (p *Provider) RecordNodeInit(ctx context.Context, nodeID string, duration time.Duration) {
	if p.meter == nil {
		return
	}
	p.nodeInitDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attribute.String("node.id", nodeID)))
}

// Shutdown gracefully shuts down the telemetry provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown meter provider: %w", err)
		}
	}
	return nil
}
