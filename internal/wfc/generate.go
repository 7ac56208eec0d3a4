package wfc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tilewave/internal/telemetry"
)

// Generate runs the solver with incrementing seeds until an attempt both
// collapses fully and passes every constraint, or the retry budget is
// exhausted. Retry n uses seed Config.Seed+n, so results are reproducible
// from the base seed alone. The context is used only for trace propagation;
// the computation itself has no suspension points.
func Generate(ctx context.Context, cfg Config) Result {
	cfg = cfg.withDefaults()

	tracer := telemetry.Tracer("wfc")
	_, span := tracer.Start(ctx, "wfc.generate")
	defer span.End()

	start := time.Now()
	model := newTileModel(cfg.TileSet)

	for retry := 0; retry <= cfg.MaxRetries; retry++ {
		grid, ok := runSolver(model, cfg.Width, cfg.Height, cfg.Seed+int64(retry), cfg.MaxBacktracks)
		if !ok {
			continue
		}
		if !ValidateLevel(grid, cfg.Constraints) {
			continue
		}

		elapsed := time.Since(start)
		span.SetAttributes(
			attribute.Bool("wfc.success", true),
			attribute.Int("wfc.width", cfg.Width),
			attribute.Int("wfc.height", cfg.Height),
			attribute.Int("wfc.retries", retry),
			attribute.Int64("wfc.elapsed_ms", elapsed.Milliseconds()),
		)
		return Result{Success: true, Grid: grid, Retries: retry, Elapsed: elapsed}
	}

	elapsed := time.Since(start)
	span.SetAttributes(
		attribute.Bool("wfc.success", false),
		attribute.Int("wfc.width", cfg.Width),
		attribute.Int("wfc.height", cfg.Height),
		attribute.Int("wfc.retries", cfg.MaxRetries+1),
		attribute.Int64("wfc.elapsed_ms", elapsed.Milliseconds()),
	)
	return Result{Success: false, Retries: cfg.MaxRetries + 1, Elapsed: elapsed}
}

// ValidateLevel evaluates constraints in order against a completed grid and
// reports whether all pass. Evaluation stops at the first failure.
func ValidateLevel(grid *Grid, constraints []Constraint) bool {
	for _, constraint := range constraints {
		if !constraint(grid) {
			return false
		}
	}
	return true
}

// BatchConfig describes a batch QA run: Iterations generations, each seeded
// with Config.Seed+i, with an optional acceptance test applied to successful
// grids.
type BatchConfig struct {
	Config     Config
	Iterations int
	// TestFn classifies a successful generation as passed or failed. A nil
	// TestFn accepts every successful grid.
	TestFn func(*Grid) bool
}

// BatchReport summarizes a GenerateAndTest run. Every iteration lands in
// exactly one bucket: Passed + Failed + GenerationFailures == Iterations.
type BatchReport struct {
	// BatchID correlates the report with the batch's trace spans.
	BatchID            uuid.UUID
	Iterations         int
	Passed             int
	Failed             int
	GenerationFailures int
	Elapsed            time.Duration
}

// GenerateAndTest runs Generate over a range of base seeds and buckets each
// outcome: generation failure (solver and constraints never produced a
// grid), passed (grid produced and accepted by TestFn), or failed (grid
// produced but rejected by TestFn).
func GenerateAndTest(ctx context.Context, batch BatchConfig) BatchReport {
	tracer := telemetry.Tracer("wfc")
	ctx, span := tracer.Start(ctx, "wfc.generate_and_test")
	defer span.End()

	start := time.Now()
	report := BatchReport{BatchID: uuid.New(), Iterations: batch.Iterations}

	for i := 0; i < batch.Iterations; i++ {
		cfg := batch.Config
		cfg.Seed = batch.Config.Seed + int64(i)

		result := Generate(ctx, cfg)
		switch {
		case !result.Success:
			report.GenerationFailures++
		case batch.TestFn == nil || batch.TestFn(result.Grid):
			report.Passed++
		default:
			report.Failed++
		}
	}

	report.Elapsed = time.Since(start)
	span.SetAttributes(
		attribute.String("wfc.batch_id", report.BatchID.String()),
		attribute.Int("wfc.iterations", report.Iterations),
		attribute.Int("wfc.passed", report.Passed),
		attribute.Int("wfc.failed", report.Failed),
		attribute.Int("wfc.generation_failures", report.GenerationFailures),
		attribute.Int64("wfc.elapsed_ms", report.Elapsed.Milliseconds()),
	)
	return report
}
