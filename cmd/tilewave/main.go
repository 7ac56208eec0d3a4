// Package main is the entry point for the tilewave grid generator.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/samdwyer/tilewave/internal/telemetry"
	"github.com/samdwyer/tilewave/internal/tileset"
	"github.com/samdwyer/tilewave/internal/viewer"
	"github.com/samdwyer/tilewave/internal/wfc"
)

func main() {
	var (
		tilesetID = flag.String("tileset", "dungeon", "tileset ID from the embedded tilesets.json")
		width     = flag.Int("width", 48, "grid width")
		height    = flag.Int("height", 24, "grid height")
		seed      = flag.Int64("seed", 1, "base generation seed")
		printMode = flag.Bool("print", false, "print the generated grid to stdout instead of opening the viewer")
		batch     = flag.Int("batch", 0, "run a batch of this many generations and print a QA report")
	)
	flag.Parse()

	// Load .env file for local development; not fatal, env vars may be set
	// directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}
	setupOTelEnv()

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Generator will run without observability")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	registry, err := tileset.LoadRegistry()
	if err != nil {
		log.Fatalf("Failed to load tilesets: %v", err)
	}
	def := registry.GetByID(*tilesetID)
	if def == nil {
		log.Fatalf("Unknown tileset %q (available: %s)", *tilesetID, strings.Join(registry.IDs(), ", "))
	}

	cfg := wfc.Config{
		TileSet: def.TileSet(),
		Width:   *width,
		Height:  *height,
		Seed:    *seed,
	}

	switch {
	case *batch > 0:
		runBatch(ctx, cfg, *batch)
	case *printMode:
		runPrint(ctx, def, cfg)
	default:
		v, err := viewer.New(def, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize viewer: %v", err)
		}
		if err := v.Run(ctx); err != nil {
			log.Fatalf("Viewer error: %v", err)
		}
	}
}

// runPrint generates once and dumps the grid as tile symbols.
func runPrint(ctx context.Context, def *tileset.TilesetDef, cfg wfc.Config) {
	result := wfc.Generate(ctx, cfg)
	if !result.Success {
		log.Fatalf("Generation failed after %d attempts", result.Retries)
	}

	grid := result.Grid
	var row strings.Builder
	for y := 0; y < grid.Height; y++ {
		row.Reset()
		for x := 0; x < grid.Width; x++ {
			symbol := '?'
			if t := def.TileByID(grid.At(x, y)); t != nil {
				symbol = t.SymbolRune()
			}
			row.WriteRune(symbol)
		}
		fmt.Println(row.String())
	}
	fmt.Printf("seed=%d retries=%d elapsed=%s hash=%016x\n",
		cfg.Seed, result.Retries, result.Elapsed, grid.Hash())
}

// runBatch runs a QA batch over consecutive seeds and prints the report.
func runBatch(ctx context.Context, cfg wfc.Config, iterations int) {
	report := wfc.GenerateAndTest(ctx, wfc.BatchConfig{
		Config:     cfg,
		Iterations: iterations,
	})
	fmt.Printf("batch %s: %d iterations, %d passed, %d failed, %d generation failures (%s)\n",
		report.BatchID, report.Iterations, report.Passed, report.Failed,
		report.GenerationFailures, report.Elapsed)
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	apiKey := os.Getenv("HONEYCOMB_TILEWAVE_API_KEY")
	dataset := os.Getenv("HONEYCOMB_TILEWAVE_DATASET")
	if dataset == "" {
		dataset = "tilewave"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
