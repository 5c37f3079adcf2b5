package docindex

import (
	"regexp"
	"strings"

	"github.com/Adjoshi06/driftguard/internal/extractor"
)

// identChainRe matches identifiers and dotted identifier chains like
// `create` or `accounts.service.create`. Scanning chains instead of bare
// words keeps `create` inside `recreate` from matching while still
// catching attribute-style mentions.
var identChainRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*`)

// SymbolSet is the name universe the index scans for: every leaf and
// qualified name from both revisions, so mentions of removed symbols are
// still found.
type SymbolSet struct {
	leaves    map[string]struct{}
	qualified map[string][]string
}

func NewSymbolSet(tables ...*extractor.Table) *SymbolSet {
	s := &SymbolSet{
		leaves:    make(map[string]struct{}),
		qualified: make(map[string][]string),
	}
	for _, table := range tables {
		if table == nil {
			continue
		}
		for _, sym := range table.Symbols {
			if _, seen := s.leaves[sym.Name]; !seen {
				s.leaves[sym.Name] = struct{}{}
			}
			if !contains(s.qualified[sym.Name], sym.QualifiedName) {
				s.qualified[sym.Name] = append(s.qualified[sym.Name], sym.QualifiedName)
			}
		}
	}
	return s
}

func (s *SymbolSet) Empty() bool {
	return len(s.leaves) == 0
}

type match struct {
	leaf      string
	token     string
	qualified bool
}

// matchLine returns at most one match per known symbol mentioned in the
// line, preferring qualified mentions over bare leaf mentions.
func (s *SymbolSet) matchLine(line string) []match {
	if len(s.leaves) == 0 {
		return nil
	}

	best := make(map[string]match)
	var order []string

	for _, chain := range identChainRe.FindAllString(line, -1) {
		segs := strings.Split(chain, ".")
		for _, seg := range segs {
			if _, known := s.leaves[seg]; !known {
				continue
			}
			m := match{leaf: seg, token: seg}
			if len(segs) > 1 && segs[len(segs)-1] == seg && s.isQualifiedMention(chain, seg) {
				m.token = chain
				m.qualified = true
			}
			prev, seen := best[seg]
			if !seen {
				best[seg] = m
				order = append(order, seg)
				continue
			}
			if m.qualified && !prev.qualified {
				best[seg] = m
			}
		}
	}

	out := make([]match, 0, len(order))
	for _, leaf := range order {
		out = append(out, best[leaf])
	}
	return out
}

// isQualifiedMention reports whether the dotted chain lines up with the
// tail of any known qualified name for the leaf.
func (s *SymbolSet) isQualifiedMention(chain, leaf string) bool {
	for _, qn := range s.qualified[leaf] {
		if qn == chain || strings.HasSuffix(qn, "."+chain) {
			return true
		}
	}
	return false
}

// ContainsWord reports whether token appears in text as a whole word,
// using the same identifier tokenization as reference matching.
func ContainsWord(text, token string) bool {
	for _, chain := range identChainRe.FindAllString(text, -1) {
		for _, seg := range strings.Split(chain, ".") {
			if seg == token {
				return true
			}
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
