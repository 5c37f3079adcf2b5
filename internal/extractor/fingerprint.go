package extractor

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

func canonicalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return whitespaceRe.ReplaceAllString(s, " ")
}

// bodyDigest hashes the normalized token stream of a definition body.
// Comments, the docstring statement, and nested definitions are excluded,
// so the digest only moves when the symbol's own executable statements
// change. Pure formatting edits leave it stable.
func bodyDigest(body, docstring *sitter.Node, source []byte) string {
	var tokens []string
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "comment":
			return
		case "function_definition", "class_definition", "decorated_definition":
			// Nested definitions are tracked as symbols of their own.
			return
		}
		if docstring != nil && n.StartByte() == docstring.StartByte() && n.EndByte() == docstring.EndByte() {
			return
		}
		if n.ChildCount() == 0 {
			if tok := canonicalize(n.Content(source)); tok != "" {
				tokens = append(tokens, tok)
			}
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	if body != nil {
		for i := 0; i < int(body.ChildCount()); i++ {
			walk(body.Child(i))
		}
	}

	sum := sha256.Sum256([]byte(strings.Join(tokens, " ")))
	return hex.EncodeToString(sum[:])
}
