package tracking

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("github.com/katalvlaran/linetrack/tracking")

// Pair is one resource to track: its previous and its latest snapshot.
type Pair struct {
	Reference Snapshot
	Current   Snapshot
}

// TrackAll tracks independent resources in parallel, at most Workers at a
// time. Results are returned in the order of pairs. The first failure
// cancels work that has not started yet and is returned.
func (t *Tracker) TrackAll(ctx context.Context, pairs []Pair) ([]Result, error) {
	ctx, span := tracer.Start(ctx, "tracking.TrackAll", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	span.SetAttributes(
		attribute.Int("tracking.resources", len(pairs)),
		attribute.Int("tracking.workers", t.opts.Workers),
	)

	results := make([]Result, len(pairs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(t.opts.Workers)

	for i := range pairs {
		if gCtx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			res, err := t.trackOne(gCtx, pairs[i])
			if err != nil {
				return err
			}
			results[i] = res

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}
	// cancellation observed before any goroutine could report it
	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}
	span.SetStatus(codes.Ok, "")

	return results, nil
}

func (t *Tracker) trackOne(ctx context.Context, p Pair) (Result, error) {
	_, span := tracer.Start(ctx, "tracking.Track")
	defer span.End()
	span.SetAttributes(
		attribute.String("tracking.resource", p.Current.Resource),
		attribute.Int("tracking.lines", len(p.Current.Lines)),
	)

	res, err := t.Track(p.Reference, p.Current)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return Result{}, fmt.Errorf("track %s: %w", p.Current.Resource, err)
	}
	span.SetAttributes(
		attribute.Int("tracking.tracked", len(res.Tracked)),
		attribute.Int("tracking.new", len(res.New)),
		attribute.Int("tracking.closed", len(res.Closed)),
	)

	return res, nil
}
