package extractor

import (
	"context"
	"errors"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
)

// Extractor orchestrates the extraction process using language-specific extractors.
type Extractor struct {
	langExtractor LanguageExtractor
	langName      string
}

// NewExtractor creates a new extractor for a given language.
func NewExtractor(lang string) (*Extractor, error) {
	var langExt LanguageExtractor
	switch lang {
	case "python":
		langExt = &PythonExtractor{}
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
	return &Extractor{langExtractor: langExt, langName: lang}, nil
}

// ExtractSource parses one file's content and extracts every function,
// method, and class definition, including nested ones. A file whose parse
// tree is all errors yields an error; a file with recoverable errors still
// contributes the symbols that survived.
func (e *Extractor) ExtractSource(ctx context.Context, path string, source []byte) ([]*Symbol, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(e.langExtractor.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	module := e.detectModule(path)

	query, err := sitter.NewQuery([]byte(e.langExtractor.GetQuery()), e.langExtractor.GetLanguage())
	if err != nil {
		return nil, fmt.Errorf("failed to create query: %w", err)
	}

	var symbols []*Symbol
	qc := sitter.NewQueryCursor()
	qc.Exec(query, tree.RootNode())

	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			captureName := query.CaptureNameForId(c.Index)
			sym := e.langExtractor.ExtractSymbol(captureName, c.Node, source, path, module)
			if sym != nil {
				symbols = append(symbols, sym)
			}
		}
	}

	if tree.RootNode().HasError() && len(symbols) == 0 {
		return nil, errors.New("syntax errors prevented extraction")
	}
	return symbols, nil
}

func (e *Extractor) detectModule(path string) string {
	// Module naming is path-derived for Python. Other languages would
	// resolve it from the AST instead.
	if e.langName == "python" {
		return PythonModulePath(path)
	}
	return ""
}

// ExtractTable builds the symbol table for a whole revision. files maps
// repository-relative paths to source text. Per-file failures become
// warnings; they never abort the pass.
func (e *Extractor) ExtractTable(ctx context.Context, files map[string]string) (*Table, []Warning) {
	table := NewTable()
	var warnings []Warning

	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		symbols, err := e.ExtractSource(ctx, path, []byte(files[path]))
		if err != nil {
			warnings = append(warnings, Warning{Path: path, Message: err.Error()})
			continue
		}
		table.Files++
		for _, sym := range symbols {
			table.Add(sym)
		}
	}
	return table, warnings
}
