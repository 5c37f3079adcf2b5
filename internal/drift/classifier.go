package drift

import (
	"fmt"
	"strings"

	"github.com/Adjoshi06/driftguard/internal/diff"
	"github.com/Adjoshi06/driftguard/internal/docindex"
)

// ReferenceSource yields documentation references for a symbol leaf name.
// *docindex.Index satisfies it.
type ReferenceSource interface {
	Lookup(name string) []docindex.Reference
}

// behaviorKeywords flag prose that describes what a symbol does rather
// than merely naming it. A body change next to such prose deserves a look.
var behaviorKeywords = []string{
	"return",
	"raise",
	"behavior",
	"behaviour",
	"side effect",
	"side-effect",
	"default",
	"output",
	"result",
	"guarantee",
}

// Classify applies the drift rules to each change record in input order,
// so a sorted change list yields a deterministic candidate sequence.
// Exactly one rule can claim a record; records matching none produce
// nothing.
func Classify(changes []diff.Change, refs ReferenceSource, opts Options) []Candidate {
	candidates := make([]Candidate, 0)
	for _, change := range changes {
		if opts.IgnorePrivate && isPrivate(change) {
			continue
		}
		if cand, ok := classifyChange(change, refs); ok {
			candidates = append(candidates, cand)
		}
	}
	return candidates
}

func classifyChange(change diff.Change, source ReferenceSource) (Candidate, bool) {
	refs := source.Lookup(leafName(change.Name))

	switch change.Kind {
	case diff.Added:
		if change.New != nil && !change.New.Documented() {
			return Candidate{
				Change:      change,
				References:  refs,
				Severity:    SeverityMedium,
				Kind:        KindMissingDocstring,
				Description: fmt.Sprintf("%s `%s` was added without a docstring", change.New.Kind, change.Name),
			}, true
		}
	case diff.SignatureChanged:
		if len(refs) > 0 && signatureStale(change, refs) {
			return Candidate{
				Change:      change,
				References:  refs,
				Severity:    SeverityCritical,
				Kind:        KindStaleSignature,
				Description: fmt.Sprintf("signature of `%s` changed but its documentation still describes the old parameters", change.Name),
			}, true
		}
	case diff.Removed:
		if len(refs) > 0 {
			return Candidate{
				Change:      change,
				References:  refs,
				Severity:    SeverityCritical,
				Kind:        KindDanglingDocs,
				Description: fmt.Sprintf("`%s` was removed but documentation still references it", change.Name),
			}, true
		}
	case diff.BodyChanged:
		if len(refs) > 0 && anyMentionsBehavior(refs) {
			return Candidate{
				Change:      change,
				References:  refs,
				Severity:    SeverityLow,
				Kind:        KindBehavioralDrift,
				Description: fmt.Sprintf("implementation of `%s` changed and nearby documentation describes its behavior", change.Name),
			}, true
		}
	}
	return Candidate{}, false
}

// signatureStale decides whether every reference still reads like the old
// parameter list. A reference is stale when it mentions a dropped
// parameter, or when parameters were added and it mentions none of them.
// Signature changes that do not touch parameter names (annotations,
// defaults, class bases) are not decidable from prose and never flag.
func signatureStale(change diff.Change, refs []docindex.Reference) bool {
	if change.Old == nil || change.New == nil {
		return false
	}
	oldOnly, newOnly := paramDelta(change.Old.ParamNames(), change.New.ParamNames())
	if len(oldOnly) == 0 && len(newOnly) == 0 {
		return false
	}
	for _, ref := range refs {
		if !referenceStale(ref, oldOnly, newOnly) {
			return false
		}
	}
	return true
}

func referenceStale(ref docindex.Reference, oldOnly, newOnly []string) bool {
	for _, tok := range oldOnly {
		if docindex.ContainsWord(ref.Excerpt, tok) {
			return true
		}
	}
	if len(newOnly) == 0 {
		return false
	}
	for _, tok := range newOnly {
		if docindex.ContainsWord(ref.Excerpt, tok) {
			return false
		}
	}
	return true
}

func paramDelta(oldParams, newParams []string) (oldOnly, newOnly []string) {
	oldSet := toSet(oldParams)
	newSet := toSet(newParams)
	for _, p := range oldParams {
		if !newSet[p] {
			oldOnly = append(oldOnly, p)
		}
	}
	for _, p := range newParams {
		if !oldSet[p] {
			newOnly = append(newOnly, p)
		}
	}
	return oldOnly, newOnly
}

func anyMentionsBehavior(refs []docindex.Reference) bool {
	for _, ref := range refs {
		excerpt := strings.ToLower(ref.Excerpt)
		for _, kw := range behaviorKeywords {
			if strings.Contains(excerpt, kw) {
				return true
			}
		}
	}
	return false
}

func isPrivate(change diff.Change) bool {
	sym := change.Symbol()
	return sym != nil && sym.Private
}

func leafName(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

func toSet(values []string) map[string]bool {
	out := make(map[string]bool, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		out[v] = true
	}
	return out
}
