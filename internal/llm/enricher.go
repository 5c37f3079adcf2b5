package llm

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Adjoshi06/driftguard/internal/drift"
)

// DefaultTimeout bounds one enrichment call. The analysis itself carries
// no timeout; only this network boundary does.
const DefaultTimeout = 90 * time.Second

const fallbackSuggestion = "Review and update related documentation accordingly."

// Enricher turns drift candidates into issues by asking a chat model for
// a summary and a suggested documentation edit. Any failure, including a
// timeout or malformed model output, yields the fallback issue; Enrich
// never returns an error.
type Enricher struct {
	model   ChatModel
	log     logrus.FieldLogger
	timeout time.Duration
}

func NewEnricher(model ChatModel, log logrus.FieldLogger) *Enricher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Enricher{model: model, log: log, timeout: DefaultTimeout}
}

// WithTimeout overrides the per-call timeout. Zero keeps the default.
func (e *Enricher) WithTimeout(d time.Duration) *Enricher {
	if d > 0 {
		e.timeout = d
	}
	return e
}

type modelResponse struct {
	Summary    string `json:"summary"`
	Severity   string `json:"severity"`
	Suggestion string `json:"suggestion"`
	DocExcerpt string `json:"doc_excerpt"`
}

// Enrich annotates one candidate. The candidate's severity and kind are
// copied through untouched; a model that disagrees on severity is logged
// and ignored.
func (e *Enricher) Enrich(ctx context.Context, cand drift.Candidate) drift.Issue {
	issue := drift.Issue{Candidate: cand, Provider: e.model.Name()}

	cctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.model.Chat(cctx, systemPrompt, buildUserPrompt(cand))
	if err != nil {
		e.log.WithError(err).WithField("symbol", cand.Change.Name).Warn("LLM suggestion failed, using fallback")
		return fallback(issue)
	}

	var resp modelResponse
	if err := json.Unmarshal([]byte(stripFences(raw)), &resp); err != nil {
		e.log.WithError(err).WithField("symbol", cand.Change.Name).Warn("unparseable LLM response, using fallback")
		return fallback(issue)
	}

	issue.Summary = firstNonEmpty(resp.Summary, cand.Description)
	issue.Suggestion = firstNonEmpty(resp.Suggestion, fallbackSuggestion)
	issue.DocExcerpt = resp.DocExcerpt

	if sev, err := drift.ParseSeverity(resp.Severity); err == nil && sev != cand.Severity {
		e.log.WithFields(logrus.Fields{
			"symbol":    cand.Change.Name,
			"heuristic": cand.Severity,
			"model":     sev,
		}).Debug("model disagrees on severity, keeping heuristic")
	}
	return issue
}

func fallback(issue drift.Issue) drift.Issue {
	issue.Summary = issue.Description
	issue.Suggestion = fallbackSuggestion
	return issue
}

// stripFences removes a surrounding markdown code fence, with or without
// a language tag, from a model response.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if i := strings.Index(text, "\n"); i >= 0 && !strings.ContainsAny(text[:i], "{}") {
		text = text[i+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
