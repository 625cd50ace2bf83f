package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitas-games/stockpile/pkg/item"
)

const testConfig = "testdata/stockpile.yaml"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append(args, "--config", testConfig))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitError, exitCode(errors.New("boom")))
	assert.Equal(t, exitExpectations, exitCode(errExpectations))
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}

func TestCatalogTable(t *testing.T) {
	out, err := execute(t, "catalog", "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "diamond_sword")
	assert.Contains(t, out, "Ender Pearl")
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestCatalogJSON(t *testing.T) {
	out, err := execute(t, "catalog", "--json=true")
	require.NoError(t, err)

	var defs []item.Definition
	require.NoError(t, json.Unmarshal([]byte(out), &defs))
	require.Len(t, defs, 4)
	assert.Equal(t, int64(1), defs[0].NumericID)
	assert.Equal(t, 16, defs[3].MaxStack)
}

func TestRunScenario(t *testing.T) {
	out, err := execute(t, "run", "testdata/trade.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "== sword for diamonds")
	assert.Contains(t, out, "player [diamond_sword x1, -]")
	assert.Contains(t, out, "shop [diamond x10]")
	assert.Contains(t, out, "InsufficientSpace")
}

func TestRunReportsMismatch(t *testing.T) {
	out, err := execute(t, "run", "testdata/mismatch.yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errExpectations))
	assert.Equal(t, exitExpectations, exitCode(err))
	assert.Contains(t, out, "(expected ok)")
	assert.Contains(t, out, "chest [stone x8]")
}

func TestRunMissingFile(t *testing.T) {
	_, err := execute(t, "run", "testdata/nope.yaml")
	require.Error(t, err)
	assert.Equal(t, exitError, exitCode(err))
}
