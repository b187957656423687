// Package fanout runs independent side effects concurrently and reports one
// result per effect. A failing or panicking effect never stops its siblings.
package fanout

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/osa911/portfolio/internal/fanout"

// Effect is a named, fallible side effect.
type Effect struct {
	Name string
	Run  func(ctx context.Context) error
}

// Result is the outcome of one effect.
type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

// OK reports whether the effect succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Results holds one Result per effect, in the order the effects were given.
type Results []Result

// Succeeded returns the number of effects that completed without error.
func (rs Results) Succeeded() int {
	n := 0
	for _, r := range rs {
		if r.OK() {
			n++
		}
	}
	return n
}

// Failed returns the results that carry an error.
func (rs Results) Failed() Results {
	var failed Results
	for _, r := range rs {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}

// Policy decides whether a set of results counts as overall success.
type Policy func(Results) bool

// AnyOf succeeds when at least one effect succeeded.
func AnyOf(rs Results) bool {
	return rs.Succeeded() > 0
}

// AllOf succeeds when every effect succeeded. An empty set succeeds.
func AllOf(rs Results) bool {
	return rs.Succeeded() == len(rs)
}

// Run executes every effect concurrently and waits for all of them.
func Run(ctx context.Context, effects ...Effect) Results {
	results := make(Results, len(effects))
	tracer := otel.Tracer(tracerName)

	var g errgroup.Group
	for i, effect := range effects {
		g.Go(func() error {
			spanCtx, span := tracer.Start(ctx, "fanout."+effect.Name,
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attribute.String("fanout.effect", effect.Name)),
			)
			defer span.End()

			start := time.Now()
			err := runIsolated(spanCtx, effect)
			results[i] = Result{
				Name:     effect.Name,
				Err:      err,
				Duration: time.Since(start),
			}

			span.SetAttributes(attribute.Bool("fanout.ok", err == nil))
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			// Errors are reported through results, not the group.
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Evaluate runs the effects and applies policy to their results.
func Evaluate(ctx context.Context, policy Policy, effects ...Effect) (bool, Results) {
	results := Run(ctx, effects...)
	return policy(results), results
}

func runIsolated(ctx context.Context, effect Effect) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("effect %s panicked: %v", effect.Name, r)
		}
	}()

	if effect.Run == nil {
		return fmt.Errorf("effect %s has no function", effect.Name)
	}
	return effect.Run(ctx)
}
