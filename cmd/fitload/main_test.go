package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasjlepore/fit-load/internal/testsupport"
	"github.com/lucasjlepore/fit-load/pipeline"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return out.String(), err
}

func TestPMCCommand(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteActivity(t, filepath.Join(dir, "ride.fit"),
		time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC), 3601, testsupport.ConstantPower(250))
	outDir := t.TempDir()
	t.Setenv("FITLOAD_FTP", "250")

	out, err := execute(t, "pmc",
		"--dir", dir,
		"--start-date", "2024-06-01",
		"--end-date", "2024-06-07",
		"--out-dir", outDir,
		"--format", "json",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Range 2024-06-01 to 2024-06-07 | 7 days | 1 with load | total TSS 100")
	assert.Contains(t, out, "1 files | 1 processed")

	data, err := os.ReadFile(filepath.Join(outDir, "performance.json"))
	require.NoError(t, err)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(data, &rows))
	assert.Len(t, rows, 7)
}

func TestPMCCommandRequiresStartDate(t *testing.T) {
	_, err := execute(t, "pmc", "--dir", t.TempDir(), "--end-date", "2024-06-07")
	require.ErrorContains(t, err, "start-date is required")
}

func TestPMCCommandRejectsBadConfig(t *testing.T) {
	_, err := execute(t, "pmc", "--start-date", "2024-06-01", "--end-date", "2024-06-07", "--format", "xlsx")
	require.ErrorContains(t, err, "unknown format")
}

func TestWorkoutCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ride.fit")
	testsupport.WriteActivity(t, path, time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC), 3601, testsupport.ConstantPower(250))

	out, err := execute(t, "workout", path, "--ftp", "250")
	require.NoError(t, err)
	assert.Contains(t, out, "NP 250.0 W | IF 1.00 | TSS 100.0")

	out, err = execute(t, "workout", path, "--ftp", "250", "--json")
	require.NoError(t, err)
	var summary pipeline.WorkoutSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.InDelta(t, 100.0, summary.Metrics.TSS, 1e-9)

	_, err = execute(t, "workout", path)
	require.ErrorContains(t, err, "ftp")
}

func TestConfigFileFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitload.yml")
	require.NoError(t, os.WriteFile(path, []byte("ftp: 200\n"), 0o644))
	ride := filepath.Join(t.TempDir(), "ride.fit")
	testsupport.WriteActivity(t, ride, time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC), 3601, testsupport.ConstantPower(200))

	out, err := execute(t, "workout", ride, "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "IF 1.00")

	_, err = execute(t, "workout", ride, "--config", filepath.Join(t.TempDir(), "missing.yml"))
	require.ErrorContains(t, err, "read config")
}
