package diff

import (
	"fmt"
	"sort"

	"github.com/Adjoshi06/driftguard/internal/extractor"
)

// Kind classifies how a symbol differs between two revisions.
type Kind string

const (
	Added            Kind = "added"
	Removed          Kind = "removed"
	SignatureChanged Kind = "signature-changed"
	BodyChanged      Kind = "body-changed"
	DocstringAdded   Kind = "docstring-added"
	DocstringRemoved Kind = "docstring-removed"
	Unchanged        Kind = "unchanged"
)

// Change records the difference of one qualified name between the old and
// new revision. Old is nil for added symbols, New is nil for removed ones,
// both are set otherwise.
type Change struct {
	Name string           `json:"name"`
	Kind Kind             `json:"kind"`
	Old  *extractor.Symbol `json:"old,omitempty"`
	New  *extractor.Symbol `json:"new,omitempty"`
}

// Symbol returns the most current side of the change: the new symbol when
// it exists, the old one for removals.
func (c Change) Symbol() *extractor.Symbol {
	if c.New != nil {
		return c.New
	}
	return c.Old
}

// Path returns the file the symbol lives in (lived in, for removals).
func (c Change) Path() string {
	if sym := c.Symbol(); sym != nil {
		return sym.Path
	}
	return ""
}

// Summary renders a one-line human description of the change.
func (c Change) Summary() string {
	sym := c.Symbol()
	if sym == nil {
		return string(c.Kind)
	}
	switch c.Kind {
	case Added:
		return fmt.Sprintf("%s %s was added (%s)", sym.Kind, c.Name, sym.Signature)
	case Removed:
		return fmt.Sprintf("%s %s was removed (was %s)", sym.Kind, c.Name, sym.Signature)
	case SignatureChanged:
		return fmt.Sprintf("%s %s signature changed from `%s` to `%s`", sym.Kind, c.Name, c.Old.Signature, c.New.Signature)
	case BodyChanged:
		return fmt.Sprintf("%s %s implementation changed without a signature change", sym.Kind, c.Name)
	case DocstringAdded:
		return fmt.Sprintf("%s %s gained a docstring", sym.Kind, c.Name)
	case DocstringRemoved:
		return fmt.Sprintf("%s %s lost its docstring", sym.Kind, c.Name)
	default:
		return fmt.Sprintf("%s %s is unchanged", sym.Kind, c.Name)
	}
}

// Tables aligns two symbol tables and emits exactly one Change per
// qualified name in the union of both key sets, ordered lexicographically
// so repeated runs produce identical sequences.
func Tables(oldTable, newTable *extractor.Table) []Change {
	union := make(map[string]struct{}, oldTable.Len()+newTable.Len())
	for name := range oldTable.Symbols {
		union[name] = struct{}{}
	}
	for name := range newTable.Symbols {
		union[name] = struct{}{}
	}

	names := make([]string, 0, len(union))
	for name := range union {
		names = append(names, name)
	}
	sort.Strings(names)

	changes := make([]Change, 0, len(names))
	for _, name := range names {
		oldSym := oldTable.Symbols[name]
		newSym := newTable.Symbols[name]
		changes = append(changes, Change{
			Name: name,
			Kind: classify(oldSym, newSym),
			Old:  oldSym,
			New:  newSym,
		})
	}
	return changes
}

// classify picks the change kind with the documented precedence: a
// signature change outranks everything, a body change outranks a docstring
// flip that happened alongside it.
func classify(oldSym, newSym *extractor.Symbol) Kind {
	if oldSym == nil {
		return Added
	}
	if newSym == nil {
		return Removed
	}

	switch {
	case oldSym.Signature != newSym.Signature:
		return SignatureChanged
	case oldSym.BodyDigest != newSym.BodyDigest:
		return BodyChanged
	case oldSym.Documented() != newSym.Documented():
		if newSym.Documented() {
			return DocstringAdded
		}
		return DocstringRemoved
	default:
		return Unchanged
	}
}
