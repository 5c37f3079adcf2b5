package docindex

import (
	"sort"
	"strings"

	"github.com/Adjoshi06/driftguard/internal/corpus"
)

type Source string

const (
	SourceDoc     Source = "doc"
	SourceExample Source = "example"
	SourceComment Source = "comment"
)

// Reference is one located mention of a symbol name inside the corpus.
// Confidence orders references for display; the classification rules never
// consult it.
type Reference struct {
	Path       string  `json:"path"`
	Line       int     `json:"line"`
	Symbol     string  `json:"symbol"`
	Token      string  `json:"token"`
	Qualified  bool    `json:"qualified"`
	Source     Source  `json:"source"`
	Excerpt    string  `json:"excerpt"`
	Changed    bool    `json:"changed"`
	Confidence float64 `json:"confidence"`
}

// Options controls which corpus sections contribute references. Disabling
// a section only shrinks the reference set.
type Options struct {
	IncludeExamples bool
	IncludeComments bool
}

// Index maps symbol leaf names to the places that mention them.
type Index struct {
	refs map[string][]Reference
}

// Lookup returns every reference whose mention resolves to the given leaf
// name. Identically named symbols in different modules share references;
// that over-match is intentional, under-reporting drift is worse.
func (ix *Index) Lookup(leaf string) []Reference {
	return ix.refs[leaf]
}

// Size returns the total number of references in the index.
func (ix *Index) Size() int {
	n := 0
	for _, refs := range ix.refs {
		n += len(refs)
	}
	return n
}

// Build scans the new revision's corpus for mentions of any known symbol.
// oldFiles supplies the previous revision's content so each reference
// records whether its file changed between the two revisions.
func Build(symbols *SymbolSet, sets corpus.Sets, oldFiles map[string]string, opts Options) *Index {
	ix := &Index{refs: make(map[string][]Reference)}
	if symbols == nil || symbols.Empty() {
		return ix
	}

	ix.scanProse(symbols, sets.Docs, oldFiles, SourceDoc)
	if opts.IncludeExamples {
		ix.scanProse(symbols, sets.Examples, oldFiles, SourceExample)
	}
	if opts.IncludeComments {
		ix.scanComments(symbols, sets.Sources, oldFiles)
	}

	for leaf := range ix.refs {
		refs := ix.refs[leaf]
		sort.SliceStable(refs, func(i, j int) bool {
			if refs[i].Confidence != refs[j].Confidence {
				return refs[i].Confidence > refs[j].Confidence
			}
			if refs[i].Path != refs[j].Path {
				return refs[i].Path < refs[j].Path
			}
			return refs[i].Line < refs[j].Line
		})
		ix.refs[leaf] = refs
	}
	return ix
}

func (ix *Index) scanProse(symbols *SymbolSet, files map[string]string, oldFiles map[string]string, src Source) {
	for _, path := range sortedPaths(files) {
		content := files[path]
		changed := fileChanged(oldFiles, path, content)
		for i, line := range strings.Split(content, "\n") {
			for _, m := range symbols.matchLine(line) {
				ix.add(Reference{
					Path:       path,
					Line:       i + 1,
					Symbol:     m.leaf,
					Token:      m.token,
					Qualified:  m.qualified,
					Source:     src,
					Excerpt:    clipExcerpt(line),
					Changed:    changed,
					Confidence: CalibrateConfidence(src, m.qualified),
				})
			}
		}
	}
}

// scanComments looks for mentions inside the # tail of source lines. The
// split is textual, a # inside a string literal is treated as a comment
// start; that over-match is acceptable for reference gathering.
func (ix *Index) scanComments(symbols *SymbolSet, files map[string]string, oldFiles map[string]string) {
	for _, path := range sortedPaths(files) {
		content := files[path]
		changed := fileChanged(oldFiles, path, content)
		for i, line := range strings.Split(content, "\n") {
			hash := strings.Index(line, "#")
			if hash < 0 {
				continue
			}
			tail := line[hash+1:]
			for _, m := range symbols.matchLine(tail) {
				ix.add(Reference{
					Path:       path,
					Line:       i + 1,
					Symbol:     m.leaf,
					Token:      m.token,
					Qualified:  m.qualified,
					Source:     SourceComment,
					Excerpt:    clipExcerpt(tail),
					Changed:    changed,
					Confidence: CalibrateConfidence(SourceComment, m.qualified),
				})
			}
		}
	}
}

func (ix *Index) add(ref Reference) {
	ix.refs[ref.Symbol] = append(ix.refs[ref.Symbol], ref)
}

func fileChanged(oldFiles map[string]string, path, content string) bool {
	oldContent, ok := oldFiles[path]
	return !ok || oldContent != content
}

func sortedPaths(files map[string]string) []string {
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

const maxExcerptLen = 240

func clipExcerpt(line string) string {
	s := strings.TrimSpace(line)
	runes := []rune(s)
	if len(runes) <= maxExcerptLen {
		return s
	}
	return string(runes[:maxExcerptLen])
}
