package main

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/linefit/internal/fit"
	"github.com/cwbudde/linefit/internal/report"
	"github.com/cwbudde/linefit/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRunOptions(t *testing.T) runOptions {
	t.Helper()
	return runOptions{
		cfg:     fit.DefaultConfig(),
		dataDir: t.TempDir(),
		outDir:  t.TempDir(),
	}
}

func TestExecuteRun(t *testing.T) {
	opts := testRunOptions(t)

	var out bytes.Buffer
	runID, err := executeRun(context.Background(), opts, &out)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	text := out.String()
	assert.Contains(t, text, "True parameters: w=3.200, b=-0.700")
	assert.Contains(t, text, "Learned parameters:")
	assert.Contains(t, text, "Run recorded: "+runID)

	for _, name := range []string{report.FitPlotFile, report.CostPlotFile} {
		_, err := os.Stat(filepath.Join(opts.outDir, name))
		assert.NoError(t, err, name)
	}

	runStore, err := store.NewFSStore(opts.dataDir)
	require.NoError(t, err)
	record, err := runStore.LoadRun(runID)
	require.NoError(t, err)
	assert.Equal(t, opts.cfg, record.Config)
	assert.InDelta(t, 3.2, record.Params.W, 0.3)
	assert.Len(t, record.Artifacts, 2)

	reader, err := store.NewTraceReader(opts.dataDir, runID)
	require.NoError(t, err)
	defer reader.Close()
	entries, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Len(t, entries, record.Iterations)
	assert.Equal(t, record.Params.W, entries[len(entries)-1].W)
}

func TestExecuteRunNoPlotsNoRecord(t *testing.T) {
	opts := testRunOptions(t)
	opts.noPlots = true
	opts.noRecord = true

	var out bytes.Buffer
	runID, err := executeRun(context.Background(), opts, &out)
	require.NoError(t, err)
	assert.Empty(t, runID)

	files, err := os.ReadDir(opts.outDir)
	require.NoError(t, err)
	assert.Empty(t, files)

	runStore, err := store.NewFSStore(opts.dataDir)
	require.NoError(t, err)
	infos, err := runStore.ListRuns()
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestExecuteRunDiverged(t *testing.T) {
	opts := testRunOptions(t)
	opts.cfg.LearningRate = 5
	opts.cfg.MaxIterations = 2000

	var out bytes.Buffer
	runID, err := executeRun(context.Background(), opts, &out)
	require.NoError(t, err)
	assert.Empty(t, runID)
	assert.Contains(t, out.String(), "Cost diverged")

	files, err := os.ReadDir(opts.outDir)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestExecuteRunInvalidConfig(t *testing.T) {
	opts := testRunOptions(t)
	opts.cfg.Samples = 1

	_, err := executeRun(context.Background(), opts, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fit.ErrInvalidConfiguration))
}

func TestDiverged(t *testing.T) {
	assert.False(t, diverged(&fit.Result{CostHistory: []float64{1}}))
	assert.True(t, diverged(&fit.Result{Params: fit.Params{W: 1}, CostHistory: []float64{1, math.Inf(1)}}))
}
