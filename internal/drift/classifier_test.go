package drift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adjoshi06/driftguard/internal/diff"
	"github.com/Adjoshi06/driftguard/internal/docindex"
	"github.com/Adjoshi06/driftguard/internal/extractor"
)

// staticRefs is a ReferenceSource backed by a plain map.
type staticRefs map[string][]docindex.Reference

func (s staticRefs) Lookup(name string) []docindex.Reference { return s[name] }

func symbol(qualified, leaf, kind, docstring string, params ...string) *extractor.Symbol {
	ps := make([]extractor.Param, 0, len(params))
	for _, p := range params {
		ps = append(ps, extractor.Param{Name: p})
	}
	return &extractor.Symbol{
		QualifiedName: qualified,
		Name:          leaf,
		Kind:          kind,
		Path:          "svc.py",
		Params:        ps,
		Docstring:     docstring,
		Private:       leaf[0] == '_',
	}
}

func ref(excerpt string) docindex.Reference {
	return docindex.Reference{Path: "README.md", Line: 1, Excerpt: excerpt}
}

func TestClassify_AddedWithoutDocstring(t *testing.T) {
	changes := []diff.Change{{
		Name: "svc.create",
		Kind: diff.Added,
		New:  symbol("svc.create", "create", extractor.KindFunction, "", "name"),
	}}

	cands := Classify(changes, staticRefs{}, Options{})
	require.Len(t, cands, 1)
	assert.Equal(t, KindMissingDocstring, cands[0].Kind)
	assert.Equal(t, SeverityMedium, cands[0].Severity)
}

func TestClassify_AddedWithDocstringIsClean(t *testing.T) {
	changes := []diff.Change{{
		Name: "svc.create",
		Kind: diff.Added,
		New:  symbol("svc.create", "create", extractor.KindFunction, "Create an account.", "name"),
	}}

	assert.Empty(t, Classify(changes, staticRefs{}, Options{}))
}

func TestClassify_StaleSignatureDocs(t *testing.T) {
	changes := []diff.Change{{
		Name: "svc.create",
		Kind: diff.SignatureChanged,
		Old:  symbol("svc.create", "create", extractor.KindFunction, "", "name", "email"),
		New:  symbol("svc.create", "create", extractor.KindFunction, "", "name", "email", "role"),
	}}
	refs := staticRefs{"create": {ref("Call create(name, email) to add an account.")}}

	cands := Classify(changes, refs, Options{})
	require.Len(t, cands, 1)
	assert.Equal(t, KindStaleSignature, cands[0].Kind)
	assert.Equal(t, SeverityCritical, cands[0].Severity)
}

func TestClassify_SignatureChangeWithUpdatedDocsIsClean(t *testing.T) {
	changes := []diff.Change{{
		Name: "svc.create",
		Kind: diff.SignatureChanged,
		Old:  symbol("svc.create", "create", extractor.KindFunction, "", "name", "email"),
		New:  symbol("svc.create", "create", extractor.KindFunction, "", "name", "email", "role"),
	}}
	// The doc line already mentions the new role parameter.
	refs := staticRefs{"create": {ref("Call create(name, email, role) to add an account.")}}

	assert.Empty(t, Classify(changes, refs, Options{}))
}

func TestClassify_SignatureChangeWithoutDocsIsClean(t *testing.T) {
	changes := []diff.Change{{
		Name: "svc.create",
		Kind: diff.SignatureChanged,
		Old:  symbol("svc.create", "create", extractor.KindFunction, "", "name"),
		New:  symbol("svc.create", "create", extractor.KindFunction, "", "name", "email"),
	}}

	assert.Empty(t, Classify(changes, staticRefs{}, Options{}))
}

func TestClassify_RemovedButStillReferenced(t *testing.T) {
	changes := []diff.Change{{
		Name: "svc.legacy_export",
		Kind: diff.Removed,
		Old:  symbol("svc.legacy_export", "legacy_export", extractor.KindFunction, ""),
	}}
	refs := staticRefs{"legacy_export": {ref("call legacy_export() to dump data")}}

	cands := Classify(changes, refs, Options{})
	require.Len(t, cands, 1)
	assert.Equal(t, KindDanglingDocs, cands[0].Kind)
	assert.Equal(t, SeverityCritical, cands[0].Severity)
}

func TestClassify_RemovedWithoutReferencesIsClean(t *testing.T) {
	changes := []diff.Change{{
		Name: "svc.gone",
		Kind: diff.Removed,
		Old:  symbol("svc.gone", "gone", extractor.KindFunction, ""),
	}}

	assert.Empty(t, Classify(changes, staticRefs{}, Options{}))
}

func TestClassify_BodyChangeNeedsBehaviorProse(t *testing.T) {
	changes := []diff.Change{{
		Name: "svc.compute",
		Kind: diff.BodyChanged,
		Old:  symbol("svc.compute", "compute", extractor.KindFunction, "", "x"),
		New:  symbol("svc.compute", "compute", extractor.KindFunction, "", "x"),
	}}

	// No references at all.
	assert.Empty(t, Classify(changes, staticRefs{}, Options{}))

	// A reference that merely names the symbol.
	naming := staticRefs{"compute": {ref("See compute in the API listing.")}}
	assert.Empty(t, Classify(changes, naming, Options{}))

	// A reference that describes behavior.
	behavioral := staticRefs{"compute": {ref("compute returns the normalized score.")}}
	cands := Classify(changes, behavioral, Options{})
	require.Len(t, cands, 1)
	assert.Equal(t, KindBehavioralDrift, cands[0].Kind)
	assert.Equal(t, SeverityLow, cands[0].Severity)
}

func TestClassify_UnchangedAndDocstringFlipsYieldNothing(t *testing.T) {
	sym := symbol("svc.keep", "keep", extractor.KindFunction, "Keep.", "x")
	changes := []diff.Change{
		{Name: "svc.keep", Kind: diff.Unchanged, Old: sym, New: sym},
		{Name: "svc.docd", Kind: diff.DocstringAdded,
			Old: symbol("svc.docd", "docd", extractor.KindFunction, ""),
			New: symbol("svc.docd", "docd", extractor.KindFunction, "Now documented.")},
	}
	refs := staticRefs{"keep": {ref("keep returns its input")}}

	assert.Empty(t, Classify(changes, refs, Options{}))
}

func TestClassify_IgnorePrivateSkipsBeforeRules(t *testing.T) {
	changes := []diff.Change{{
		Name: "svc._internal_helper",
		Kind: diff.Added,
		New:  symbol("svc._internal_helper", "_internal_helper", extractor.KindFunction, ""),
	}}

	assert.Empty(t, Classify(changes, staticRefs{}, Options{IgnorePrivate: true}))

	cands := Classify(changes, staticRefs{}, Options{IgnorePrivate: false})
	require.Len(t, cands, 1)
	assert.Equal(t, KindMissingDocstring, cands[0].Kind)
}

func TestFilter_Monotone(t *testing.T) {
	issues := []Issue{
		{Candidate: Candidate{Severity: SeverityLow}},
		{Candidate: Candidate{Severity: SeverityMedium}},
		{Candidate: Candidate{Severity: SeverityCritical}},
	}

	low := Filter(issues, SeverityLow)
	medium := Filter(issues, SeverityMedium)
	critical := Filter(issues, SeverityCritical)

	assert.Len(t, low, 3)
	assert.Len(t, medium, 2)
	assert.Len(t, critical, 1)
	assert.GreaterOrEqual(t, len(low), len(medium))
	assert.GreaterOrEqual(t, len(medium), len(critical))
}

func TestParseSeverity(t *testing.T) {
	sev, err := ParseSeverity(" CRITICAL ")
	require.NoError(t, err)
	assert.Equal(t, SeverityCritical, sev)

	_, err = ParseSeverity("urgent")
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Issue{
		{Candidate: Candidate{Severity: SeverityCritical}},
		{Candidate: Candidate{Severity: SeverityCritical}},
		{Candidate: Candidate{Severity: SeverityLow}},
	})
	assert.Equal(t, Summary{Total: 3, Critical: 2, Low: 1}, s)
}
