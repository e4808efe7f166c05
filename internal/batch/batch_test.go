package batch

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GriffinCanCode/errprop/internal/propagation"
	"github.com/GriffinCanCode/errprop/internal/providers/uncertainty"
	"github.com/GriffinCanCode/errprop/internal/shared/id"
	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlJobs = `
jobs:
  - name: sample
    formula: 3 * x ** 2 + 4 * y ** 3 + 1 / z
    params: [x, y, z]
    vals: "x: 1.2, dx: 0.05, y: 2.3, dy: 0.01, z: 0.5, dz: 0.001"
  - formula: x * y
    params: [x, y]
    vals:
      x: 2
      dx: 1
      y: 3
      dy: 1
  - name: broken
    formula: x * y
    params: [x]
`

const tomlJobs = `
[[jobs]]
name = "sample"
formula = "3 * x ** 2 + 4 * y ** 3 + 1 / z"
params = ["x", "y", "z"]
vals = '{"x": 1.2, "dx": 0.05, "y": 2.3, "dy": 0.01, "z": 0.5, "dz": 0.001}'

[[jobs]]
formula = "x * y"
params = ["x", "y"]
vals = { x = 2, dx = 1, y = 3, dy = 1 }

[[jobs]]
name = "broken"
formula = "x * y"
params = ["x"]
`

const jsonJobs = `{"jobs": [
  {"name": "sample", "formula": "3 * x ** 2 + 4 * y ** 3 + 1 / z", "params": ["x", "y", "z"],
   "vals": {"x": 1.2, "dx": 0.05, "y": 2.3, "dy": 0.01, "z": 0.5, "dz": 0.001}},
  {"formula": "x * y", "params": ["x", "y"], "vals": "x: 2, dx: 1, y: 3, dy: 1"},
  {"name": "broken", "formula": "x * y", "params": ["x"]}
]}`

func newRunner() *Runner {
	return NewRunner(uncertainty.NewCalculator(propagation.Limits{}), nil)
}

func TestDecodeAndRun(t *testing.T) {
	tests := []struct {
		format Format
		data   string
	}{
		{FormatYAML, yamlJobs},
		{FormatTOML, tomlJobs},
		{FormatJSON, jsonJobs},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			jobs, err := Decode([]byte(tt.data), tt.format)
			require.NoError(t, err)
			require.Len(t, jobs, 3)
			assert.Equal(t, "job-2", jobs[1].Name)

			results, err := newRunner().Run(context.Background(), jobs)
			require.NoError(t, err)
			require.Len(t, results, 3)

			require.True(t, results[0].OK(), results[0].Error)
			assert.Equal(t, "0.729785612354752", results[0].Outcome.Result)

			require.True(t, results[1].OK(), results[1].Error)
			assert.Equal(t, "3.60555127546399", results[1].Outcome.Result)
			assert.InDelta(t, 6, *results[1].Outcome.Value, 1e-12)

			assert.False(t, results[2].OK())
			assert.Equal(t, uncertainty.KindMissingSymbols, results[2].Kind)
			assert.Equal(t, 1, Failed(results))

			for _, r := range results {
				assert.True(t, id.IsValid(string(r.ID)), "id %q", r.ID)
			}
		})
	}
}

func TestFormatFor(t *testing.T) {
	for path, want := range map[string]Format{
		"jobs.yaml": FormatYAML,
		"jobs.YML":  FormatYAML,
		"a/b.toml":  FormatTOML,
		"x.json":    FormatJSON,
	} {
		got, err := FormatFor(path)
		require.NoError(t, err)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFor("jobs.ini")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte("jobs: [unterminated"), FormatYAML)
	assert.Error(t, err)
	_, err = Decode([]byte("jobs = "), FormatTOML)
	assert.Error(t, err)
	_, err = Decode([]byte("{"), FormatJSON)
	assert.Error(t, err)
	_, err = Decode([]byte("{}"), Format("xml"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jobs.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlJobs), 0o600))

	jobs, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, jobs, 3)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := newRunner().Run(ctx, []Job{{Formula: "x", Params: []string{"x"}}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestWriters(t *testing.T) {
	jobs, err := Decode([]byte(jsonJobs), FormatJSON)
	require.NoError(t, err)
	results, err := newRunner().Run(context.Background(), jobs)
	require.NoError(t, err)

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, results, OutputText))
		out := buf.String()
		assert.Contains(t, out, "sample: 3 * x ** 2 + 4 * y ** 3 + 1 / z")
		assert.Contains(t, out, "  result: 0.729785612354752")
		assert.Contains(t, out, "broken: FAILED [missing_symbols]")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, results, OutputJSON))
		var decoded []map[string]interface{}
		require.NoError(t, sonic.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded, 3)
		outcome := decoded[0]["outcome"].(map[string]interface{})
		assert.Equal(t, "0.729785612354752", outcome["result"])
		assert.Equal(t, "missing_symbols", decoded[2]["kind"])
		assert.NotContains(t, decoded[2], "outcome")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, results, OutputCSV))
		rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 4)
		assert.Equal(t, "name", rows[0][0])
		assert.Equal(t, "0.729785612354752", rows[1][2])
		assert.Equal(t, "6", rows[2][4])
		assert.Equal(t, "missing_symbols", rows[3][5])
	})
}

func TestNonFiniteValuesFailJob(t *testing.T) {
	results, err := newRunner().Run(context.Background(), []Job{
		{Name: "inf", Formula: "x", Params: []string{"x"}, Vals: "x: inf, dx: 0.1"},
		{Name: "nan", Formula: "x", Params: []string{"x"}, Vals: "x: nan, dx: 0.1"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.False(t, r.OK())
		assert.Equal(t, uncertainty.KindInvalidNumber, r.Kind)
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, results, OutputJSON))
	var decoded []map[string]interface{}
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, 2)
}

func TestParseOutput(t *testing.T) {
	for _, s := range []string{"text", "JSON", " csv "} {
		_, err := ParseOutput(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseOutput("xml")
	assert.Error(t, err)
}
