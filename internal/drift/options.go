package drift

import "github.com/Adjoshi06/driftguard/internal/config"

// Options control which change records and documentation references
// participate in classification. The toggles only ever shrink the
// inputs; rule logic is unaffected.
type Options struct {
	IgnorePrivate       bool
	CheckExamples       bool
	CheckInlineComments bool
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		IgnorePrivate:       cfg.Analysis.IgnorePrivate,
		CheckExamples:       cfg.Analysis.CheckExamples,
		CheckInlineComments: cfg.Analysis.CheckInlineComments,
	}
}
