package extractor

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

const (
	KindFunction = "function"
	KindMethod   = "method"
	KindClass    = "class"
)

// Symbol is the structural record of one extracted definition. Symbols are
// built once per revision and never mutated afterwards.
type Symbol struct {
	QualifiedName string   `json:"qualified_name"`
	Name          string   `json:"name"`
	Kind          string   `json:"kind"`
	Path          string   `json:"path"`
	StartLine     int      `json:"start_line"`
	EndLine       int      `json:"end_line"`
	Signature     string   `json:"signature"`
	Params        []Param  `json:"params,omitempty"`
	Returns       string   `json:"returns,omitempty"`
	Bases         []string `json:"bases,omitempty"`
	Docstring     string   `json:"docstring,omitempty"`
	BodyDigest    string   `json:"-"`
	Private       bool     `json:"private"`
	Source        string   `json:"-"`
}

// Param represents a single parameter of a function or method. Annotation
// and Default hold source text; a parameter has a default exactly when
// Default is non-empty.
type Param struct {
	Name       string `json:"name"`
	Annotation string `json:"annotation,omitempty"`
	Default    string `json:"default,omitempty"`
}

func (p Param) String() string {
	s := p.Name
	if p.Annotation != "" {
		s += ": " + p.Annotation
	}
	if p.Default != "" {
		if p.Annotation != "" {
			s += " = " + p.Default
		} else {
			s += "=" + p.Default
		}
	}
	return s
}

// Documented reports whether the symbol carries a docstring.
func (s *Symbol) Documented() bool {
	return strings.TrimSpace(s.Docstring) != ""
}

// ParamNames returns the parameter names in declaration order, skipping
// separator markers like * and /.
func (s *Symbol) ParamNames() []string {
	names := make([]string, 0, len(s.Params))
	for _, p := range s.Params {
		name := strings.TrimLeft(p.Name, "*")
		if name == "" || name == "/" {
			continue
		}
		names = append(names, name)
	}
	return names
}

// LanguageExtractor defines the interface that each language parser must implement.
type LanguageExtractor interface {
	GetLanguage() *sitter.Language
	GetQuery() string
	ExtractSymbol(captureName string, node *sitter.Node, source []byte, path string, module string) *Symbol
}
