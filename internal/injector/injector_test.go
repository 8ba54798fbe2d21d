package injector

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Bullke/DFL---HTL/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeAndRun(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.yaml"), []byte("name: one\nmap: |\n  +..E\n"), 0644))
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("simulation:\n  runs: 2\n  workers: 2\nlogging:\n  level: error\nlevels:\n  - \"*.yaml\"\n"), 0644))

	cfg, err := config.LoadConfig(cfgPath)
	require.NoError(t, err)
	app, cleanup, err := InitializeApp(cfg)
	require.NoError(t, err)
	defer cleanup()

	// config.yaml matches the glob but is not a level
	_, err = app.Run(context.Background())
	require.Error(t, err)

	cfg.Levels = []string{"one.yaml"}
	summaries, err := app.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "one", summaries[0].Level)
	assert.Equal(t, 2, summaries[0].Runs)
	assert.Equal(t, 2, summaries[0].Rescued)
}

func TestInitializeBadTiles(t *testing.T) {
	cfg := &config.Config{TilesFile: filepath.Join(t.TempDir(), "missing.yaml")}
	_, _, err := InitializeApp(cfg)
	assert.Error(t, err)
}
