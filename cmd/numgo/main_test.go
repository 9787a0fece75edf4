package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Flag values and Changed bits persist across Execute calls.
	for _, name := range []string{"config", "delim", "skip-rows", "comments", "precision"} {
		f := rootCmd.PersistentFlags().Lookup(name)
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	}
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeCSV(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "numgo "+version)
}

func TestInfoCommand(t *testing.T) {
	path := writeCSV(t, "1,2,3\n4,5,6\n")
	out, err := runCLI(t, "info", path)
	require.NoError(t, err)
	assert.Contains(t, out, "shape: [2 3]")
	assert.Contains(t, out, "dtype: float64")
}

func TestStatsCommand(t *testing.T) {
	path := writeCSV(t, "1,10\n2,20\n3,30\n")
	out, err := runCLI(t, "stats", path)
	require.NoError(t, err)
	assert.Contains(t, out, "mean")
	assert.Contains(t, out, "2")  // mean of column 0
	assert.Contains(t, out, "20") // mean of column 1
}

func TestStatsSkipRows(t *testing.T) {
	path := writeCSV(t, "a,b\n1,10\n3,30\n")
	out, err := runCLI(t, "stats", "--skip-rows", "1", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2") // mean of column 0
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "numgo.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("skip_rows: 1\ndelim: comma\n"), 0o644))
	dataPath := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(dataPath, []byte("header,row\n1,2\n3,4\n"), 0o644))

	out, err := runCLI(t, "info", "--config", cfgPath, dataPath)
	require.NoError(t, err)
	assert.Contains(t, out, "shape: [2 2]")
}

func TestInfoMissingFile(t *testing.T) {
	_, err := runCLI(t, "info", filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}
