package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/rpgo/zcbond/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smallConfig = `simulation:
  initial_rate: 0.05
  time_step: 0.01
  steps: 100
  paths: 500
  seed: 2024
parameters:
  phi: 0.0001
  a: 0.1
  sigma: 0.01
analytic:
  valuation_time: 0
`

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

var priceLines = regexp.MustCompile(`^Zero-Coupen Bond Price \(Numerical\): B\(t=0,T\) =  \S+\n` +
	`Zero-Coupen Bond Price \(Analytic\) : B\(t=0,T\) =  \S+\n$`)

func TestRootCommand_ConsoleOutput(t *testing.T) {
	stdout, _, err := runCLI(t, "--config", writeConfig(t, smallConfig))
	require.NoError(t, err)
	assert.Regexp(t, priceLines, stdout)
}

func TestRootCommand_Deterministic(t *testing.T) {
	path := writeConfig(t, smallConfig)
	first, _, err := runCLI(t, "--config", path)
	require.NoError(t, err)
	second, _, err := runCLI(t, "--config", path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRootCommand_FlagOverrides(t *testing.T) {
	path := writeConfig(t, smallConfig)
	base, _, err := runCLI(t, "--config", path)
	require.NoError(t, err)

	reseeded, _, err := runCLI(t, "--config", path, "--seed", "7", "--paths", "300")
	require.NoError(t, err)
	assert.NotEqual(t, base, reseeded)

	jsonOut, _, err := runCLI(t, "--config", path, "--format", "json", "--workers", "3")
	require.NoError(t, err)
	assert.Contains(t, jsonOut, `"workers": 3`)
	assert.Contains(t, jsonOut, `"seed": 2024`)
}

func TestRootCommand_PathOut(t *testing.T) {
	dir := t.TempDir()
	pathFile := filepath.Join(dir, "path.txt")
	stdout, _, err := runCLI(t, "--config", writeConfig(t, smallConfig), "--path-out", pathFile)
	require.NoError(t, err)
	assert.Regexp(t, priceLines, stdout)

	data, err := os.ReadFile(pathFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 101)
	assert.Equal(t, "0 0.05", lines[0])
	assert.True(t, strings.HasPrefix(lines[100], "1 "), "last row is at maturity: %q", lines[100])
}

func TestRootCommand_InvalidConfigurationLeavesNoArtifacts(t *testing.T) {
	bad := strings.Replace(smallConfig, "paths: 500", "paths: 0", 1)
	pathFile := filepath.Join(t.TempDir(), "path.txt")

	stdout, _, err := runCLI(t, "--config", writeConfig(t, bad), "--path-out", pathFile)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
	assert.Empty(t, stdout)
	_, statErr := os.Stat(pathFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRootCommand_FlagsRepairFileSettings(t *testing.T) {
	bad := strings.Replace(smallConfig, "paths: 500", "paths: 0", 1)
	stdout, _, err := runCLI(t, "--config", writeConfig(t, bad), "--paths", "300")
	require.NoError(t, err)
	assert.Regexp(t, priceLines, stdout)
}

func TestRootCommand_QuietByDefault(t *testing.T) {
	stdout, stderr, err := runCLI(t, "--config", writeConfig(t, smallConfig))
	require.NoError(t, err)
	assert.Regexp(t, priceLines, stdout)
	assert.Empty(t, stderr)
}

func TestRootCommand_WarnsOnDivergentPrices(t *testing.T) {
	// One coarse Euler step without volatility: the estimate is exact for the
	// discretized path but far from the continuous-time price.
	coarse := `simulation:
  initial_rate: 0.05
  time_step: 5
  steps: 1
  paths: 10
  seed: 1
parameters:
  phi: 0.0001
  a: 0.1
  sigma: 0
`
	stdout, stderr, err := runCLI(t, "--config", writeConfig(t, coarse))
	require.NoError(t, err)
	assert.Regexp(t, priceLines, stdout)
	assert.Contains(t, stderr, "level=WARN")
	assert.Contains(t, stderr, "numerical and analytic prices differ")
}

func TestRootCommand_InvalidOverrides(t *testing.T) {
	path := writeConfig(t, smallConfig)
	testCases := [][]string{
		{"--paths", "0"},
		{"--steps=-1"},
		{"--format", "pdf"},
		{"--spot-rate", "forward"},
		{"--spot-rate", "deterministic", "--valuation-time", "0.5"},
	}
	for _, args := range testCases {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, _, err := runCLI(t, append([]string{"--config", path}, args...)...)
			assert.True(t, errors.Is(err, domain.ErrConfiguration), "got %v", err)
		})
	}
}

func TestRootCommand_VerboseLogsToStderr(t *testing.T) {
	stdout, stderr, err := runCLI(t, "--config", writeConfig(t, smallConfig), "-v")
	require.NoError(t, err)
	assert.Regexp(t, priceLines, stdout)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "monte carlo price")
}

func TestRootCommand_RejectsArguments(t *testing.T) {
	_, _, err := runCLI(t, "unexpected")
	assert.Error(t, err)
}

func TestExampleCommand(t *testing.T) {
	stdout, _, err := runCLI(t, "example")
	require.NoError(t, err)
	assert.Contains(t, stdout, "paths: 100000")
	assert.Contains(t, stdout, "steps: 500")

	file := filepath.Join(t.TempDir(), "example.yaml")
	_, _, err = runCLI(t, "example", file)
	require.NoError(t, err)

	reduced := filepath.Join(t.TempDir(), "reduced.yaml")
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(reduced, []byte(strings.Replace(string(data), "paths: 100000", "paths: 200", 1)), 0o644))

	out, _, err := runCLI(t, "--config", reduced, "--seed", "1")
	require.NoError(t, err)
	assert.Regexp(t, priceLines, out)
}
