// Package injector wires the simulation components together.
package injector

import (
	"context"
	"fmt"

	"github.com/Bullke/DFL---HTL/internal/config"
	"github.com/Bullke/DFL---HTL/internal/level"
	"github.com/Bullke/DFL---HTL/internal/logging"
	"github.com/Bullke/DFL---HTL/internal/sim"
	"github.com/Bullke/DFL---HTL/internal/threading/core"
	"github.com/Bullke/DFL---HTL/internal/tile"
	"go.uber.org/zap"
)

// App is the batch simulation the command line runs.
type App struct {
	Config *config.Config
	Log    *zap.Logger
	Loader *level.Loader
	Runner *sim.Runner
}

func NewApp(cfg *config.Config, log *zap.Logger, loader *level.Loader, runner *sim.Runner) *App {
	return &App{Config: cfg, Log: log, Loader: loader, Runner: runner}
}

func ProvideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	log, err := logging.New(logging.Options{Level: cfg.GetLogLevel(), Encoding: cfg.GetLogEncoding()})
	if err != nil {
		return nil, nil, err
	}
	return log, func() { _ = log.Sync() }, nil
}

// ProvideRegistry loads the configured tiles file, or the built-in tiles
// when none is set.
func ProvideRegistry(cfg *config.Config) (*tile.Registry, error) {
	path := cfg.GetTilesFile()
	if path == "" {
		return tile.DefaultRegistry(), nil
	}
	reg := tile.NewRegistry()
	if err := reg.LoadTileConfig(path); err != nil {
		return nil, err
	}
	return reg, nil
}

func ProvideLoader(reg *tile.Registry, log *zap.Logger) *level.Loader {
	return level.NewLoader(reg, log)
}

// ProvidePool starts a worker pool; the cleanup stops it.
func ProvidePool(cfg *config.Config) (*core.WorkerPool, func()) {
	pool := core.NewWorkerPool(cfg.GetWorkers())
	pool.Start()
	return pool, pool.Stop
}

func ProvideOptions(cfg *config.Config) sim.Options {
	return sim.Options{
		TickRate: cfg.GetTickRate(),
		MaxTicks: cfg.GetMaxTicks(),
		Params:   cfg.GetAgentParams(),
	}
}

// Run loads every configured level, runs the batch and logs one summary
// per level.
func (a *App) Run(ctx context.Context) ([]sim.Summary, error) {
	files, err := a.Config.GetLevelFiles()
	if err != nil {
		return nil, err
	}
	levels, err := a.Loader.LoadAll(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("failed to load levels: %w", err)
	}
	a.Log.Info("Levels loaded", zap.Int("count", len(levels)))

	results, err := a.Runner.Run(ctx, sim.Jobs(levels, a.Config.GetSeed(), a.Config.GetRuns()))
	if err != nil {
		return nil, err
	}

	summaries := sim.Summarize(results)
	for _, s := range summaries {
		a.Log.Info("Level summary",
			zap.String("level", s.Level),
			zap.Int("runs", s.Runs),
			zap.Int("spawned", s.Spawned),
			zap.Int("rescued", s.Rescued),
			zap.Int("exhausted", s.Exhausted),
			zap.Int("remaining", s.Remaining),
			zap.Float64("rescue_rate", s.RescueRate()))
	}
	m := a.Runner.Monitor().GetCurrentMetrics()
	a.Log.Info("Batch finished",
		zap.Uint64("runs", m.CompletedRuns),
		zap.Uint64("ticks", m.Ticks),
		zap.Duration("avg_tick", m.AverageTickTime),
		zap.Duration("slowest_tick", m.SlowestTick),
		zap.Duration("uptime", m.Uptime))
	return summaries, nil
}
