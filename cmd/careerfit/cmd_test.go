package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"careerfit-workers/internal/careerfit"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPredictCmd_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "userId": 42,
  "activities": [
    {"activityType": "coding_practice", "activityDetails": {"language": "python"}, "score": 90}
  ],
  "profile": {"major": "Computer Science"}
}`), 0o600))

	out, err := execute(t, "", "predict", "--file", path, "--top", "3")
	require.NoError(t, err)

	var got predictOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "42", got.UserID)
	assert.Len(t, got.Predictions, 3)
	assert.NotEmpty(t, got.AnalysisDate)
	for i := 1; i < len(got.Predictions); i++ {
		assert.GreaterOrEqual(t, got.Predictions[i-1].MatchScore, got.Predictions[i].MatchScore)
	}
}

func TestPredictCmd_Stdin(t *testing.T) {
	out, err := execute(t, `{}`, "predict", "--file", "-")
	require.NoError(t, err)

	var got predictOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Empty(t, got.UserID)
	assert.Len(t, got.Predictions, careerfit.DefaultTopN)
	for _, p := range got.Predictions {
		assert.Equal(t, careerfit.ConfidenceLow, p.Confidence)
	}
}

func TestPredictCmd_Errors(t *testing.T) {
	_, err := execute(t, "", "predict")
	assert.Error(t, err, "file flag is required")

	_, err = execute(t, "", "predict", "--file", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "opening dataset")

	_, err = execute(t, `{"activities":`, "predict", "--file", "-")
	assert.ErrorContains(t, err, "decoding dataset")
}

func TestCatalogCmd(t *testing.T) {
	out, err := execute(t, "", "catalog")
	require.NoError(t, err)

	var entries []catalogEntry
	require.NoError(t, yaml.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, len(careerfit.DefaultCatalog()))
	assert.Equal(t, "Data Scientist", entries[0].Name)
	assert.Equal(t, 95000, entries[0].AvgSalary)

	out, err = execute(t, "", "catalog", "-o", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Equal(t, "Software Engineer", entries[1].Name)

	out, err = execute(t, "", "catalog", "-o", "names")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Data Scientist\tHigh\t95000\n"))

	_, err = execute(t, "", "catalog", "-o", "xml")
	assert.Error(t, err)
}
