package extractor

import (
	"path"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// PythonExtractor implements LanguageExtractor for Python.
type PythonExtractor struct{}

func (p *PythonExtractor) GetLanguage() *sitter.Language {
	return python.GetLanguage()
}

func (p *PythonExtractor) GetQuery() string {
	return `
		(function_definition) @function
		(class_definition) @class
	`
}

func (p *PythonExtractor) ExtractSymbol(captureName string, node *sitter.Node, source []byte, filePath string, module string) *Symbol {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nameNode.Content(source)

	sym := &Symbol{
		QualifiedName: qualifiedName(module, node, name, source),
		Name:          name,
		Path:          filePath,
		StartLine:     int(node.StartPoint().Row + 1),
		EndLine:       int(node.EndPoint().Row + 1),
		Private:       isPrivateName(name),
		Source:        node.Content(source),
	}

	body := node.ChildByFieldName("body")
	doc := docstringStatement(body)
	if doc != nil {
		sym.Docstring = cleanDocstring(doc.NamedChild(0).Content(source))
	}
	sym.BodyDigest = bodyDigest(body, doc, source)

	switch captureName {
	case "class":
		sym.Kind = KindClass
		if sup := node.ChildByFieldName("superclasses"); sup != nil {
			sym.Bases = extractBases(sup, source)
		}
		sym.Signature = renderClassSignature(name, sym.Bases)
	default:
		sym.Kind = KindFunction
		if definedInClassBody(node) {
			sym.Kind = KindMethod
		}
		if params := node.ChildByFieldName("parameters"); params != nil {
			sym.Params = extractParams(params, source)
		}
		if ret := node.ChildByFieldName("return_type"); ret != nil {
			sym.Returns = canonicalize(ret.Content(source))
		}
		sym.Signature = renderFunctionSignature(node, name, sym.Params, sym.Returns)
	}
	return sym
}

// PythonModulePath converts a repository-relative file path to a dotted
// module path. __init__.py collapses to its package directory; a top-level
// __init__.py yields an empty module prefix.
func PythonModulePath(filePath string) string {
	p := strings.TrimSuffix(path.Clean(strings.ReplaceAll(filePath, "\\", "/")), ".py")
	if p == "__init__" {
		return ""
	}
	p = strings.TrimSuffix(p, "/__init__")
	return strings.ReplaceAll(p, "/", ".")
}

// qualifiedName joins the module path with the chain of enclosing
// definitions, outermost first.
func qualifiedName(module string, node *sitter.Node, name string, source []byte) string {
	parts := []string{name}
	for cur := node.Parent(); cur != nil; cur = cur.Parent() {
		t := cur.Type()
		if t != "function_definition" && t != "class_definition" {
			continue
		}
		if owner := cur.ChildByFieldName("name"); owner != nil {
			parts = append([]string{owner.Content(source)}, parts...)
		}
	}
	if module != "" {
		parts = append([]string{module}, parts...)
	}
	return strings.Join(parts, ".")
}

// definedInClassBody reports whether the nearest enclosing definition is a
// class. A def nested inside a method counts as a plain function again.
func definedInClassBody(node *sitter.Node) bool {
	for cur := node.Parent(); cur != nil; cur = cur.Parent() {
		switch cur.Type() {
		case "class_definition":
			return true
		case "function_definition":
			return false
		}
	}
	return false
}

// isPrivateName follows the underscore convention: a single leading
// underscore marks a symbol private, dunder names stay public.
func isPrivateName(name string) bool {
	if !strings.HasPrefix(name, "_") {
		return false
	}
	if strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__") && len(name) > 4 {
		return false
	}
	return true
}

func extractParams(params *sitter.Node, source []byte) []Param {
	out := []Param{}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		child := params.NamedChild(i)
		switch child.Type() {
		case "identifier":
			out = append(out, Param{Name: child.Content(source)})
		case "typed_parameter":
			p := Param{}
			if tn := child.ChildByFieldName("type"); tn != nil {
				p.Annotation = canonicalize(tn.Content(source))
			}
			for j := 0; j < int(child.NamedChildCount()); j++ {
				c := child.NamedChild(j)
				if c.Type() == "type" {
					continue
				}
				p.Name = c.Content(source)
				break
			}
			out = append(out, p)
		case "default_parameter", "typed_default_parameter":
			p := Param{}
			if n := child.ChildByFieldName("name"); n != nil {
				p.Name = n.Content(source)
			}
			if tn := child.ChildByFieldName("type"); tn != nil {
				p.Annotation = canonicalize(tn.Content(source))
			}
			if v := child.ChildByFieldName("value"); v != nil {
				p.Default = canonicalize(v.Content(source))
			}
			out = append(out, p)
		case "list_splat_pattern", "dictionary_splat_pattern":
			out = append(out, Param{Name: canonicalize(child.Content(source))})
		case "keyword_separator":
			out = append(out, Param{Name: "*"})
		case "positional_separator":
			out = append(out, Param{Name: "/"})
		default:
			out = append(out, Param{Name: canonicalize(child.Content(source))})
		}
	}
	return out
}

func extractBases(args *sitter.Node, source []byte) []string {
	bases := []string{}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		bases = append(bases, canonicalize(args.NamedChild(i).Content(source)))
	}
	return bases
}

func renderFunctionSignature(node *sitter.Node, name string, params []Param, returns string) string {
	var b strings.Builder
	if isAsyncDef(node) {
		b.WriteString("async ")
	}
	b.WriteString("def ")
	b.WriteString(name)
	b.WriteString("(")
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(")")
	if returns != "" {
		b.WriteString(" -> " + returns)
	}
	return b.String()
}

func renderClassSignature(name string, bases []string) string {
	if len(bases) == 0 {
		return "class " + name
	}
	return "class " + name + "(" + strings.Join(bases, ", ") + ")"
}

func isAsyncDef(node *sitter.Node) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		switch node.Child(i).Type() {
		case "async":
			return true
		case "def":
			return false
		}
	}
	return false
}

// docstringStatement returns the body's leading string expression
// statement, if the definition has one.
func docstringStatement(body *sitter.Node) *sitter.Node {
	if body == nil || body.NamedChildCount() == 0 {
		return nil
	}
	first := body.NamedChild(0)
	if first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return nil
	}
	if first.NamedChild(0).Type() != "string" {
		return nil
	}
	return first
}

// cleanDocstring strips quoting and literal prefixes (r, b, f) from a
// docstring token, leaving the prose.
func cleanDocstring(raw string) string {
	s := strings.TrimSpace(raw)
	for len(s) > 0 && s[0] != '"' && s[0] != '\'' {
		s = s[1:]
	}
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 2*len(q) {
			s = s[len(q) : len(s)-len(q)]
			break
		}
	}
	return strings.TrimSpace(s)
}
