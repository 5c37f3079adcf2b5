package drift

import (
	"time"

	"github.com/google/uuid"

	"github.com/Adjoshi06/driftguard/internal/diff"
	"github.com/Adjoshi06/driftguard/internal/docindex"
)

// Kind labels the heuristic that flagged a change.
type Kind string

const (
	KindMissingDocstring Kind = "missing_docstring"
	KindStaleSignature   Kind = "stale_signature_docs"
	KindDanglingDocs     Kind = "dangling_documentation"
	KindBehavioralDrift  Kind = "possible_behavioral_drift"
)

// Candidate is one suspected documentation drift produced by the
// classifier. Severity and kind are decided here and never change
// afterwards; enrichment only annotates.
type Candidate struct {
	Change      diff.Change          `json:"change"`
	References  []docindex.Reference `json:"references,omitempty"`
	Severity    Severity             `json:"severity"`
	Kind        Kind                 `json:"kind"`
	Description string               `json:"description"`
}

// Issue is a candidate plus whatever the enrichment step managed to add.
// All enrichment fields stay empty when the LLM is skipped or fails.
type Issue struct {
	Candidate
	Summary    string `json:"summary,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	DocExcerpt string `json:"doc_excerpt,omitempty"`
	Provider   string `json:"provider,omitempty"`
}

// Warning records a per-file extraction failure that did not abort the run.
type Warning struct {
	Revision string `json:"revision"`
	Path     string `json:"path"`
	Message  string `json:"message"`
}

// Summary counts issues per severity.
type Summary struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// Report is the final artifact handed to rendering and persistence.
type Report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Repo        string    `json:"repo"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Issues      []Issue   `json:"issues"`
	Warnings    []Warning `json:"warnings,omitempty"`
	Summary     Summary   `json:"summary"`
}

func NewReport(repo, from, to string, issues []Issue, warnings []Warning) *Report {
	return &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Repo:        repo,
		From:        from,
		To:          to,
		Issues:      issues,
		Warnings:    warnings,
		Summary:     Summarize(issues),
	}
}

// Summarize tallies issues per severity bucket.
func Summarize(issues []Issue) Summary {
	s := Summary{Total: len(issues)}
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityCritical:
			s.Critical++
		case SeverityMedium:
			s.Medium++
		case SeverityLow:
			s.Low++
		}
	}
	return s
}

// Filter keeps issues at or above threshold, preserving order.
func Filter(issues []Issue, threshold Severity) []Issue {
	kept := make([]Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.Severity.AtLeast(threshold) {
			kept = append(kept, issue)
		}
	}
	return kept
}

// HasCritical reports whether any surviving issue is critical. The CLI
// turns this into its exit code.
func (r *Report) HasCritical() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityCritical {
			return true
		}
	}
	return false
}
