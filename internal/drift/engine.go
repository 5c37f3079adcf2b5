package drift

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Adjoshi06/driftguard/internal/corpus"
	"github.com/Adjoshi06/driftguard/internal/diff"
	"github.com/Adjoshi06/driftguard/internal/docindex"
	"github.com/Adjoshi06/driftguard/internal/extractor"
)

// ErrEmptyTrees means neither revision produced a single parseable source
// file. An empty report would be indistinguishable from "no drift found",
// so this aborts the run instead.
var ErrEmptyTrees = errors.New("no parseable source files in either revision")

// Enricher annotates a candidate with model-generated prose. Enrichment
// failures are absorbed by the implementation; the returned issue always
// carries the candidate's own severity and kind.
type Enricher interface {
	Enrich(ctx context.Context, cand Candidate) Issue
}

// Input is one analysis request: the full file trees of both revisions
// plus the classification toggles.
type Input struct {
	OldFiles map[string]string
	NewFiles map[string]string
	Options  Options
}

// Result is everything one analysis produced.
type Result struct {
	Issues     []Issue
	Changes    []diff.Change
	Warnings   []Warning
	References int
	OldSymbols int
	NewSymbols int
}

// Engine wires extraction, diffing, doc indexing, classification, and
// optional enrichment into the single analysis entry point. An Engine
// holds no per-run state; the same instance can serve sequential runs.
type Engine struct {
	log      logrus.FieldLogger
	enricher Enricher
}

// NewEngine builds an engine. enricher may be nil, in which case issues
// carry only their heuristic fields.
func NewEngine(log logrus.FieldLogger, enricher Enricher) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{log: log, enricher: enricher}
}

// Analyze runs the full pipeline on one revision pair. Per-file parse
// failures become warnings in the result; only an entirely unparseable
// pair of trees is an error.
func (e *Engine) Analyze(ctx context.Context, in Input) (*Result, error) {
	oldSets := corpus.Split(in.OldFiles)
	newSets := corpus.Split(in.NewFiles)

	ext, err := extractor.NewExtractor("python")
	if err != nil {
		return nil, fmt.Errorf("creating extractor: %w", err)
	}

	var (
		oldTable, newTable *extractor.Table
		oldWarns, newWarns []extractor.Warning
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		oldTable, oldWarns = ext.ExtractTable(gctx, oldSets.Sources)
		return gctx.Err()
	})
	g.Go(func() error {
		newTable, newWarns = ext.ExtractTable(gctx, newSets.Sources)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if oldTable.Files == 0 && newTable.Files == 0 {
		return nil, ErrEmptyTrees
	}

	warnings := collectWarnings(e.log, "old", oldWarns)
	warnings = append(warnings, collectWarnings(e.log, "new", newWarns)...)

	e.log.WithFields(logrus.Fields{
		"old_symbols": oldTable.Len(),
		"new_symbols": newTable.Len(),
	}).Debug("symbol extraction complete")

	changes := diff.Tables(oldTable, newTable)

	// The name universe spans both revisions so mentions of removed
	// symbols are still found in the new revision's documentation.
	symbols := docindex.NewSymbolSet(oldTable, newTable)
	index := docindex.Build(symbols, newSets, in.OldFiles, docindex.Options{
		IncludeExamples: in.Options.CheckExamples,
		IncludeComments: in.Options.CheckInlineComments,
	})
	e.log.WithField("references", index.Size()).Debug("documentation index built")

	candidates := Classify(changes, index, in.Options)

	issues := make([]Issue, 0, len(candidates))
	for _, cand := range candidates {
		issues = append(issues, e.toIssue(ctx, cand))
	}

	return &Result{
		Issues:     issues,
		Changes:    changes,
		Warnings:   warnings,
		References: index.Size(),
		OldSymbols: oldTable.Len(),
		NewSymbols: newTable.Len(),
	}, nil
}

func (e *Engine) toIssue(ctx context.Context, cand Candidate) Issue {
	if e.enricher == nil {
		return Issue{Candidate: cand}
	}
	return e.enricher.Enrich(ctx, cand)
}

func collectWarnings(log logrus.FieldLogger, revision string, warns []extractor.Warning) []Warning {
	out := make([]Warning, 0, len(warns))
	for _, w := range warns {
		log.WithFields(logrus.Fields{
			"revision": revision,
			"path":     w.Path,
			"error":    w.Message,
		}).Warn("skipping unparseable file")
		out = append(out, Warning{Revision: revision, Path: w.Path, Message: w.Message})
	}
	return out
}
