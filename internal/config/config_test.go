package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable the loader reads so tests do not inherit
// values from the developer's shell.
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"LLM_PROVIDER", "LLM_MODEL", "LLM_API_KEY", "LLM_BASE_URL", "LLM_TEMPERATURE",
		"SEVERITY_THRESHOLD", "AUTO_IGNORE_PRIVATE_FUNCTIONS", "CHECK_EXAMPLES", "CHECK_INLINE_COMMENTS",
		"OUTPUT_FORMAT", "SAVE_REPORT", "REPORT_PATH",
	}
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "llama3.1", cfg.LLM.Model)
	assert.Equal(t, 0.0, cfg.LLM.Temperature)
	assert.Equal(t, "low", cfg.Analysis.SeverityThreshold)
	assert.True(t, cfg.Analysis.IgnorePrivate)
	assert.True(t, cfg.Analysis.CheckExamples)
	assert.True(t, cfg.Analysis.CheckInlineComments)
	assert.Equal(t, "terminal", cfg.Output.Format)
	assert.False(t, cfg.Output.SaveReport)
	assert.Equal(t, "./drift_reports", cfg.Output.ReportPath)
}

func TestLoad_YAMLLayer(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "driftguard.yaml")
	yaml := `
llm:
  provider: openai
  model: gpt-4o-mini
  temperature: 0.2
analysis:
  severity_threshold: medium
  check_examples: false
output:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 0.2, cfg.LLM.Temperature)
	assert.Equal(t, "medium", cfg.Analysis.SeverityThreshold)
	assert.False(t, cfg.Analysis.CheckExamples)
	assert.Equal(t, "json", cfg.Output.Format)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, "./drift_reports", cfg.Output.ReportPath)
}

func TestLoad_EnvWinsOverYAML(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "driftguard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  provider: openai\n"), 0o644))

	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("LLM_TEMPERATURE", "0.7")
	t.Setenv("SEVERITY_THRESHOLD", "CRITICAL")

	cfg, err := Load(path)
	require.NoError(t, err)

	// Provider and threshold are normalized to lower case.
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 0.7, cfg.LLM.Temperature)
	assert.Equal(t, "critical", cfg.Analysis.SeverityThreshold)
}

func TestLoad_BoolParsing(t *testing.T) {
	clearEnv(t)

	cases := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"YES", true},
		{"on", true},
		{"0", false},
		{"off", false},
		{"anything-else", false},
	}

	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			t.Setenv("CHECK_EXAMPLES", tc.value)
			cfg, err := Load("")
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.Analysis.CheckExamples)
		})
	}
}

func TestLoad_BadFloatKeepsDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_TEMPERATURE", "warm")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.LLM.Temperature)
}

func TestLoad_MissingYAMLFileFails(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
