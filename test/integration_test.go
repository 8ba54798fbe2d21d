package test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Bullke/DFL---HTL/internal/injector"
	"github.com/Bullke/DFL---HTL/internal/level"
	"github.com/Bullke/DFL---HTL/internal/sim"
	"github.com/Bullke/DFL---HTL/internal/threading/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func loadLevels(t *testing.T) map[string]*level.Level {
	t.Helper()
	files, err := cfg.GetLevelFiles()
	require.NoError(t, err)
	levels, err := level.NewLoader(registry, zaptest.NewLogger(t)).LoadAll(context.Background(), files)
	require.NoError(t, err)
	byName := make(map[string]*level.Level)
	for _, l := range levels {
		byName[l.Name] = l
	}
	return byName
}

// TestShippedLevels runs every level in assets/levels through the batch
// runner with the shipped configuration
func TestShippedLevels(t *testing.T) {
	levels := loadLevels(t)
	require.Len(t, levels, 3)

	t.Run("Levels Load", func(t *testing.T) {
		assert.Contains(t, levels, "corridor")
		assert.Contains(t, levels, "teleport_swamp")
		assert.Contains(t, levels, "hexfield")
		assert.Len(t, levels["corridor"].Spawns(), 5)
		assert.Len(t, levels["teleport_swamp"].Spawns(), 3)
	})

	pool := core.NewWorkerPool(cfg.GetWorkers())
	pool.Start()
	defer pool.Stop()
	runner := sim.NewRunner(pool, sim.Options{
		TickRate: cfg.GetTickRate(),
		MaxTicks: cfg.GetMaxTicks(),
		Params:   cfg.GetAgentParams(),
	}, nil, zaptest.NewLogger(t))

	run := func(t *testing.T, name string, runs int) []sim.Result {
		t.Helper()
		results, err := runner.Run(context.Background(), sim.Jobs([]*level.Level{levels[name]}, cfg.GetSeed(), runs))
		require.NoError(t, err)
		return results
	}

	t.Run("Corridor Everyone Rescued", func(t *testing.T) {
		for _, res := range run(t, "corridor", 4) {
			assert.Equal(t, 5, res.Spawned)
			assert.Equal(t, 5, res.Rescued)
			assert.True(t, res.Done())
		}
	})

	t.Run("Teleport And Swamp", func(t *testing.T) {
		for _, res := range run(t, "teleport_swamp", 4) {
			assert.Equal(t, 3, res.Rescued, "seed %d", res.Seed)
		}
	})

	t.Run("Hexagon Field", func(t *testing.T) {
		for _, res := range run(t, "hexfield", 8) {
			assert.Equal(t, 4, res.Spawned)
			assert.Equal(t, res.Spawned, res.Rescued+res.Exhausted+res.Remaining)
		}
	})
}

func TestShippedLevelsSaveReload(t *testing.T) {
	loader := level.NewLoader(registry, zaptest.NewLogger(t))
	for name, l := range loadLevels(t) {
		path := filepath.Join(t.TempDir(), name+".yaml")
		require.NoError(t, level.Save(l, path))
		back, err := loader.LoadLevel(path)
		require.NoError(t, err, name)
		assert.Equal(t, l.Tiles().Keys(), back.Tiles().Keys(), name)
		assert.Equal(t, l.Spawns(), back.Spawns(), name)
		assert.Equal(t, l.Grid().Pose(), back.Grid().Pose(), name)
	}
}

func TestInjectedApp(t *testing.T) {
	c := *cfg
	c.Simulation.Runs = 2
	c.Logging.Level = "error"
	app, cleanup, err := injector.InitializeApp(&c)
	require.NoError(t, err)
	defer cleanup()

	summaries, err := app.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	for _, s := range summaries {
		assert.Equal(t, 2, s.Runs, s.Level)
		assert.Positive(t, s.Spawned, s.Level)
	}
}
