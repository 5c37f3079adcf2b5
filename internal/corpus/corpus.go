package corpus

import (
	"path"
	"strings"
)

// Sets partitions one revision's snapshot into the trees the analysis
// consumes: parseable sources, prose documentation, and example programs.
type Sets struct {
	Sources  map[string]string
	Docs     map[string]string
	Examples map[string]string
}

var ignoredDirs = []string{
	".git", "venv", ".venv", "node_modules", "__pycache__",
	"build", "dist", ".tox", ".mypy_cache",
}

var docExtensions = []string{".md", ".rst", ".txt"}

// Split classifies every file of a snapshot by naming convention:
// README variants and the docs tree are documentation, anything under an
// examples directory is example material, and remaining .py files are
// sources. Example files are kept out of Sources so demo scripts document
// the API instead of contributing symbols to it.
func Split(files map[string]string) Sets {
	sets := Sets{
		Sources:  make(map[string]string),
		Docs:     make(map[string]string),
		Examples: make(map[string]string),
	}

	for p, content := range files {
		clean := path.Clean(strings.ReplaceAll(p, "\\", "/"))
		if hasIgnoredDir(clean) {
			continue
		}
		switch {
		case underDir(clean, "examples"):
			sets.Examples[clean] = content
		case isDocFile(clean):
			sets.Docs[clean] = content
		case strings.HasSuffix(clean, ".py"):
			sets.Sources[clean] = content
		}
	}
	return sets
}

func hasIgnoredDir(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		for _, ign := range ignoredDirs {
			if seg == ign {
				return true
			}
		}
	}
	return false
}

// underDir reports whether any directory segment of the path equals name.
func underDir(p, name string) bool {
	segs := strings.Split(p, "/")
	for _, seg := range segs[:len(segs)-1] {
		if seg == name {
			return true
		}
	}
	return false
}

func isDocFile(p string) bool {
	base := strings.ToLower(path.Base(p))
	if strings.HasPrefix(base, "readme") {
		return true
	}
	if underDir(p, "docs") {
		for _, ext := range docExtensions {
			if strings.HasSuffix(base, ext) {
				return true
			}
		}
	}
	// Top-level prose like CONTRIBUTING.md or CHANGELOG.md.
	return !strings.Contains(p, "/") && strings.HasSuffix(base, ".md")
}
