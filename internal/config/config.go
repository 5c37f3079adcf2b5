package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config carries every tunable the tool reads. Values resolve in three
// layers: built-in defaults, then an optional YAML file, then environment
// variables. The environment always wins so CI can override a committed
// config file.
type Config struct {
	LLM struct {
		Provider    string  `yaml:"provider"`
		Model       string  `yaml:"model"`
		APIKey      string  `yaml:"api_key"`
		BaseURL     string  `yaml:"base_url"`
		Temperature float64 `yaml:"temperature"`
	} `yaml:"llm"`
	Analysis struct {
		SeverityThreshold   string `yaml:"severity_threshold"`
		IgnorePrivate       bool   `yaml:"auto_ignore_private_functions"`
		CheckExamples       bool   `yaml:"check_examples"`
		CheckInlineComments bool   `yaml:"check_inline_comments"`
	} `yaml:"analysis"`
	Output struct {
		Format     string `yaml:"format"`
		SaveReport bool   `yaml:"save_report"`
		ReportPath string `yaml:"report_path"`
	} `yaml:"output"`
}

// Default returns the configuration used when nothing is set anywhere.
func Default() *Config {
	cfg := &Config{}
	cfg.LLM.Provider = "ollama"
	cfg.LLM.Model = "llama3.1"
	cfg.LLM.Temperature = 0.0
	cfg.Analysis.SeverityThreshold = "low"
	cfg.Analysis.IgnorePrivate = true
	cfg.Analysis.CheckExamples = true
	cfg.Analysis.CheckInlineComments = true
	cfg.Output.Format = "terminal"
	cfg.Output.SaveReport = false
	cfg.Output.ReportPath = "./drift_reports"
	return cfg
}

// Load resolves the effective configuration. path names an optional YAML
// file; an empty path skips that layer entirely, a non-empty path must
// exist.
func Load(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Layer the YAML config on top of the defaults
	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	}

	// 3. Override with Environment Variables if present
	applyEnv(cfg)

	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.LLM.Provider, "LLM_PROVIDER")
	setString(&cfg.LLM.Model, "LLM_MODEL")
	setString(&cfg.LLM.APIKey, "LLM_API_KEY")
	setString(&cfg.LLM.BaseURL, "LLM_BASE_URL")
	setFloat(&cfg.LLM.Temperature, "LLM_TEMPERATURE")

	setString(&cfg.Analysis.SeverityThreshold, "SEVERITY_THRESHOLD")
	setBool(&cfg.Analysis.IgnorePrivate, "AUTO_IGNORE_PRIVATE_FUNCTIONS")
	setBool(&cfg.Analysis.CheckExamples, "CHECK_EXAMPLES")
	setBool(&cfg.Analysis.CheckInlineComments, "CHECK_INLINE_COMMENTS")

	setString(&cfg.Output.Format, "OUTPUT_FORMAT")
	setBool(&cfg.Output.SaveReport, "SAVE_REPORT")
	setString(&cfg.Output.ReportPath, "REPORT_PATH")

	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	cfg.Analysis.SeverityThreshold = strings.ToLower(strings.TrimSpace(cfg.Analysis.SeverityThreshold))
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// setBool treats any value outside the truthy set as false, so an explicit
// CHECK_EXAMPLES=0 or CHECK_EXAMPLES=off disables the switch.
func setBool(dst *bool, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		*dst = true
	default:
		*dst = false
	}
}

func setFloat(dst *float64, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
		*dst = f
	}
}
