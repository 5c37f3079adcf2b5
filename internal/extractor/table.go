package extractor

import "sort"

// Table holds every symbol extracted from one revision, keyed by qualified
// name. Files counts source files that produced a usable parse; the engine
// uses it to tell an empty tree apart from a tree full of syntax errors.
type Table struct {
	Symbols map[string]*Symbol
	Files   int
}

func NewTable() *Table {
	return &Table{Symbols: make(map[string]*Symbol)}
}

// Add inserts a symbol. A later definition of the same qualified name
// replaces the earlier one, matching runtime shadowing semantics.
func (t *Table) Add(sym *Symbol) {
	if sym == nil {
		return
	}
	t.Symbols[sym.QualifiedName] = sym
}

func (t *Table) Get(name string) (*Symbol, bool) {
	sym, ok := t.Symbols[name]
	return sym, ok
}

func (t *Table) Len() int {
	return len(t.Symbols)
}

// Names returns all qualified names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.Symbols))
	for name := range t.Symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Warning records a file that could not contribute symbols. Warnings are
// reported alongside results and never abort an analysis.
type Warning struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}
