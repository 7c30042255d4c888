// Command planrepl wires a synthetic factory registry, builds a small toy
// execution graph, runs the planner end to end, and prints the outbound
// surface (sources and serialization sources).
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/tsdbquery/planner/internal/testfactory"
	"github.com/tsdbquery/planner/pkg/factory"
	"github.com/tsdbquery/planner/pkg/planner"
	"github.com/tsdbquery/planner/pkg/query"
	"github.com/tsdbquery/planner/pkg/types"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	registry := factory.NewRegistry()
	registry.Register("filter", testfactory.NewOperatorFactory("filter", "groupby"))
	registry.Register("groupby", testfactory.NewOperatorFactory("filter", "groupby"))

	exprSource, err := testfactory.NewExprSourceFactory(`type in ["filter", "groupby"]`)
	if err != nil {
		return err
	}
	registry.Register("tsdb", exprSource)

	contextSink := testfactory.NewExecutor(types.NewContextNode(), nil)

	p := planner.New(context.Background(), registry, contextSink)

	payload := []byte(`{
		"nodes": [
			{"id": "filter1", "type": "filter", "sources": ["group1"], "pushDown": true},
			{"id": "group1", "type": "groupby", "sources": ["source1"], "pushDown": true},
			{"id": "source1", "sourceId": "tsdb", "sources": []}
		]
	}`)

	eg, err := query.Parse(payload)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	ctx, span := noop.NewTracerProvider().Tracer("planrepl").Start(context.Background(), "plan")
	result := p.Plan(ctx, span, eg)
	if err := result.Wait(ctx); err != nil {
		return fmt.Errorf("plan: %w", err)
	}

	fmt.Fprintf(os.Stdout, "sources:\n")
	for _, s := range p.Sources() {
		fmt.Fprintf(os.Stdout, "  %s (key=%s)\n", s.Config().ID(), s.SourceKey())
	}

	fmt.Fprintf(os.Stdout, "serializationSources:\n")
	for id := range p.SerializationSources() {
		fmt.Fprintf(os.Stdout, "  %s\n", id)
	}

	return nil
}
