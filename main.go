package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Bullke/DFL---HTL/internal/config"
	"github.com/Bullke/DFL---HTL/internal/injector"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config.yaml")
	seed := flag.Int64("seed", -1, "override the batch seed")
	runs := flag.Int("runs", 0, "override the runs per level")
	flag.Parse()

	// Load configuration
	cfg := config.MustLoadConfig(*configPath)
	if *seed >= 0 {
		cfg.Simulation.Seed = uint64(*seed)
	}
	if *runs > 0 {
		cfg.Simulation.Runs = *runs
	}
	if args := flag.Args(); len(args) > 0 {
		cfg.Levels = args
	}

	app, cleanup, err := injector.InitializeApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summaries, err := app.Run(ctx)
	if err != nil {
		app.Log.Error("Batch failed", zap.Error(err))
		stop()
		cleanup()
		os.Exit(1)
	}
	for _, s := range summaries {
		fmt.Printf("%-20s runs=%d rescued=%d/%d exhausted=%d remaining=%d\n",
			s.Level, s.Runs, s.Rescued, s.Spawned, s.Exhausted, s.Remaining)
	}
}
