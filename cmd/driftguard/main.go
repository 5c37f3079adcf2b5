package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Adjoshi06/driftguard/internal/config"
	"github.com/Adjoshi06/driftguard/internal/drift"
	"github.com/Adjoshi06/driftguard/internal/git"
	"github.com/Adjoshi06/driftguard/internal/llm"
	"github.com/Adjoshi06/driftguard/internal/report"
)

// Exit codes: 0 clean, 1 critical drift found, 2 analysis could not run.
const (
	exitOK       = 0
	exitCritical = 1
	exitFatal    = 2
)

const configFile = "driftguard.yaml"

var flags struct {
	repo              string
	fromRef           string
	toRef             string
	since             string
	branch            string
	outputFormat      string
	saveReport        bool
	reportPath        string
	provider          string
	model             string
	apiKey            string
	baseURL           string
	temperature       float64
	severityThreshold string
	noLLM             bool
	verbose           bool
}

var rootCmd = &cobra.Command{
	Use:           "driftguard",
	Short:         "Detect documentation drift in a git repository",
	Long:          "driftguard compares two revisions of a repository, diffs their symbols, and flags documentation that no longer matches the code.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitFatal)
	}
}

func init() {
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		code, err := run(cmd.Context())
		if err != nil {
			return err
		}
		if code != exitOK {
			os.Exit(code)
		}
		return nil
	}
	f := rootCmd.Flags()
	f.StringVar(&flags.repo, "repo", ".", "Path to the git repository")
	f.StringVar(&flags.fromRef, "from", "", "Base commit ref for the diff")
	f.StringVar(&flags.toRef, "to", "", "Target commit ref for the diff (defaults to HEAD)")
	f.StringVar(&flags.since, "since", "", "Commit reference to compare against (e.g. HEAD~1)")
	f.StringVar(&flags.branch, "branch", "", "Branch to compare against the current HEAD")
	f.StringVar(&flags.outputFormat, "output-format", "", "Output format: terminal, json or html")
	f.BoolVar(&flags.saveReport, "save-report", false, "Persist the report to disk")
	f.StringVar(&flags.reportPath, "report-path", "", "Directory where reports are saved")
	f.StringVar(&flags.provider, "provider", "", "LLM provider: ollama, openai, anthropic or gemini")
	f.StringVar(&flags.model, "model", "", "LLM model identifier")
	f.StringVar(&flags.apiKey, "api-key", "", "LLM API key")
	f.StringVar(&flags.baseURL, "base-url", "", "LLM base URL (for local endpoints)")
	f.Float64Var(&flags.temperature, "temperature", 0, "LLM temperature")
	f.StringVar(&flags.severityThreshold, "severity-threshold", "", "Only report issues at or above this severity: low, medium or critical")
	f.BoolVar(&flags.noLLM, "no-llm", false, "Skip LLM enrichment, report heuristic results only")
	f.BoolVar(&flags.verbose, "verbose", false, "Enable debug logging")
}

func run(ctx context.Context) (int, error) {
	log := newLogger()

	applyEnvOverrides()
	cfg, err := loadConfig()
	if err != nil {
		return exitFatal, err
	}

	threshold, err := drift.ParseSeverity(cfg.Analysis.SeverityThreshold)
	if err != nil {
		return exitFatal, err
	}
	renderer, err := report.RendererFor(cfg.Output.Format)
	if err != nil {
		return exitFatal, err
	}

	repoPath, err := filepath.Abs(flags.repo)
	if err != nil {
		return exitFatal, err
	}
	repo, err := git.Open(repoPath)
	if err != nil {
		return exitFatal, err
	}

	oldRev, newRev := git.ResolveRange(flags.fromRef, flags.toRef, flags.since, flags.branch)
	log.WithFields(logrus.Fields{"from": oldRev, "to": newRev}).Debug("resolved revision range")

	oldFiles, err := repo.Snapshot(ctx, oldRev)
	if err != nil {
		return exitFatal, err
	}
	newFiles, err := repo.Snapshot(ctx, newRev)
	if err != nil {
		return exitFatal, err
	}

	engine := drift.NewEngine(log, newEnricher(ctx, cfg, log))
	result, err := engine.Analyze(ctx, drift.Input{
		OldFiles: oldFiles,
		NewFiles: newFiles,
		Options:  drift.OptionsFromConfig(cfg),
	})
	if err != nil {
		return exitFatal, err
	}

	filtered := drift.Filter(result.Issues, threshold)
	rep := drift.NewReport(repoPath, oldRev, newRev, filtered, result.Warnings)

	out, err := renderer.Render(rep)
	if err != nil {
		return exitFatal, err
	}
	fmt.Println(out)

	if cfg.Output.SaveReport {
		saved, err := report.Save(rep, cfg.Output.ReportPath, renderer)
		if err != nil {
			return exitFatal, err
		}
		fmt.Printf("\nReport saved to %s\n", saved)
	}

	if rep.HasCritical() {
		return exitCritical, nil
	}
	return exitOK, nil
}

// newEnricher builds the enrichment step, or nil when it is disabled or
// the provider cannot be constructed. Enrichment is optional; its absence
// never fails the run.
func newEnricher(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) drift.Enricher {
	if flags.noLLM {
		return nil
	}
	model, err := llm.NewChatModel(ctx, llm.Settings{
		Provider:    cfg.LLM.Provider,
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: cfg.LLM.Temperature,
	})
	if err != nil {
		log.WithError(err).Warn("LLM enrichment disabled")
		return nil
	}
	return llm.NewEnricher(model, log)
}

// applyEnvOverrides exports CLI flags into the environment before the
// config loads, so flags win over .env and YAML the same way everywhere.
func applyEnvOverrides() {
	setEnv("LLM_PROVIDER", flags.provider)
	setEnv("LLM_MODEL", flags.model)
	setEnv("LLM_API_KEY", flags.apiKey)
	setEnv("LLM_BASE_URL", flags.baseURL)
	if rootCmd.Flags().Changed("temperature") {
		os.Setenv("LLM_TEMPERATURE", strconv.FormatFloat(flags.temperature, 'f', -1, 64))
	}
	setEnv("SEVERITY_THRESHOLD", flags.severityThreshold)
	setEnv("OUTPUT_FORMAT", flags.outputFormat)
	setEnv("REPORT_PATH", flags.reportPath)
	if flags.saveReport {
		os.Setenv("SAVE_REPORT", "true")
	}
}

func setEnv(key, value string) {
	if value != "" {
		os.Setenv(key, value)
	}
}

func loadConfig() (*config.Config, error) {
	path := ""
	if _, err := os.Stat(configFile); err == nil {
		path = configFile
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return config.Load(path)
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if flags.verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}
