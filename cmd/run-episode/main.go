// Command run-episode runs knowledge-based agent episodes against the
// hazardous warehouse and prints a per-episode summary.
//
// Usage:
//
//	run-episode [-config episode.yaml] [-episodes 5] [-trace traces.db] [-debug]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/cognicore/gridsafe/pkg/gridsafe"
	"github.com/cognicore/gridsafe/pkg/gridsafe/config"
	"github.com/cognicore/gridsafe/pkg/gridsafe/trace"
	"github.com/cognicore/gridsafe/pkg/gridsafe/trace/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "", "episode YAML config (default: built-in 4x4 fixture)")
		tracePath  = flag.String("trace", "", "SQLite database to record traces into (optional)")
		episodes   = flag.Int("episodes", 1, "number of episodes to run")
		debug      = flag.Bool("debug", false, "log every step")
	)
	flag.Parse()

	if err := run(*configPath, *tracePath, *episodes, *debug); err != nil {
		log.Fatal(err)
	}
}

func run(configPath, tracePath string, episodes int, debug bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger, err := buildLogger(debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var rec trace.Recorder
	if tracePath != "" {
		rec, err = sqlite.Open(ctx, tracePath)
		if err != nil {
			return fmt.Errorf("open trace db: %w", err)
		}
		defer rec.Close()
	}

	runner := gridsafe.NewRunner(gridsafe.Options{
		Config: cfg,
		Trace:  rec,
		Logger: logger,
	})

	successes := 0
	totalReward := 0
	for i := 0; i < episodes; i++ {
		report, err := runner.Run(ctx)
		if err != nil {
			return fmt.Errorf("episode %d: %w", i, err)
		}
		if report.Success {
			successes++
		}
		totalReward += report.TotalReward
		fmt.Printf("episode %d (%s): outcome=%s steps=%d reward=%d\n",
			i, report.EpisodeID, report.Outcome, report.Steps, report.TotalReward)
	}

	if episodes > 1 {
		fmt.Printf("summary: %d/%d successful, mean reward %.1f\n",
			successes, episodes, float64(totalReward)/float64(episodes))
	}
	return nil
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	return cfg.Build()
}
