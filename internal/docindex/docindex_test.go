package docindex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adjoshi06/driftguard/internal/corpus"
	"github.com/Adjoshi06/driftguard/internal/extractor"
)

func extractTable(t *testing.T, files map[string]string) *extractor.Table {
	t.Helper()
	ext, err := extractor.NewExtractor("python")
	require.NoError(t, err)
	table, warnings := ext.ExtractTable(context.Background(), files)
	require.Empty(t, warnings)
	return table
}

const readme = `# Service
Call create(name, email) to add an account.
The svc.create helper validates input.
Do not confuse recreate with create_all.
Create accounts early.
call legacy_export() to dump data
`

func buildFixtureIndex(t *testing.T, opts Options) *Index {
	t.Helper()

	oldTable := extractTable(t, map[string]string{
		"svc.py": "def create(name, email):\n    return name\n\ndef legacy_export():\n    pass\n",
	})
	newTable := extractTable(t, map[string]string{
		"svc.py": "def create(name, email, role=\"user\"):\n    return name\n",
	})

	sets := corpus.Sets{
		Docs: map[string]string{
			"README.md": readme,
		},
		Examples: map[string]string{
			"examples/usage.py": "print(create('a', 'b'))\n",
		},
		Sources: map[string]string{
			"svc.py": "x = 1  # create is called here\n",
		},
	}
	oldFiles := map[string]string{
		"README.md": readme,
	}

	return Build(NewSymbolSet(oldTable, newTable), sets, oldFiles, opts)
}

func TestBuild_References(t *testing.T) {
	ix := buildFixtureIndex(t, Options{IncludeExamples: true, IncludeComments: true})

	t.Run("Leaf and qualified mentions", func(t *testing.T) {
		refs := ix.Lookup("create")
		require.Len(t, refs, 4)

		// Qualified doc mention ranks first.
		assert.Equal(t, "svc.create", refs[0].Token)
		assert.True(t, refs[0].Qualified)
		assert.Equal(t, SourceDoc, refs[0].Source)
		assert.Equal(t, 3, refs[0].Line)

		lines := map[int]bool{}
		for _, ref := range refs {
			if ref.Path == "README.md" {
				lines[ref.Line] = true
			}
		}
		assert.True(t, lines[2])
		assert.True(t, lines[3])
		assert.False(t, lines[4], "recreate and create_all must not match as whole words")
		assert.False(t, lines[5], "matching is case-sensitive")
	})

	t.Run("Removed symbols still resolve", func(t *testing.T) {
		refs := ix.Lookup("legacy_export")
		require.Len(t, refs, 1)
		assert.Equal(t, "README.md", refs[0].Path)
		assert.Equal(t, 6, refs[0].Line)
		assert.Contains(t, refs[0].Excerpt, "legacy_export() to dump data")
	})

	t.Run("Source kinds", func(t *testing.T) {
		var sources []Source
		for _, ref := range ix.Lookup("create") {
			sources = append(sources, ref.Source)
		}
		assert.Contains(t, sources, SourceDoc)
		assert.Contains(t, sources, SourceExample)
		assert.Contains(t, sources, SourceComment)
	})

	t.Run("Changed flags", func(t *testing.T) {
		for _, ref := range ix.Lookup("create") {
			switch ref.Path {
			case "README.md":
				assert.False(t, ref.Changed, "identical doc content should not be flagged")
			case "examples/usage.py", "svc.py":
				assert.True(t, ref.Changed, "files absent from the old revision count as changed")
			}
		}
	})

	t.Run("Unknown symbol", func(t *testing.T) {
		assert.Empty(t, ix.Lookup("recreate"))
		assert.Empty(t, ix.Lookup("nothing_here"))
	})
}

func TestBuild_Toggles(t *testing.T) {
	t.Run("Examples off", func(t *testing.T) {
		ix := buildFixtureIndex(t, Options{IncludeExamples: false, IncludeComments: true})
		for _, ref := range ix.Lookup("create") {
			assert.NotEqual(t, SourceExample, ref.Source)
		}
	})

	t.Run("Comments off", func(t *testing.T) {
		ix := buildFixtureIndex(t, Options{IncludeExamples: true, IncludeComments: false})
		for _, ref := range ix.Lookup("create") {
			assert.NotEqual(t, SourceComment, ref.Source)
		}
	})

	t.Run("Everything off shrinks but keeps docs", func(t *testing.T) {
		ix := buildFixtureIndex(t, Options{})
		refs := ix.Lookup("create")
		require.NotEmpty(t, refs)
		for _, ref := range refs {
			assert.Equal(t, SourceDoc, ref.Source)
		}
	})
}

func TestBuild_Deterministic(t *testing.T) {
	a := buildFixtureIndex(t, Options{IncludeExamples: true, IncludeComments: true})
	b := buildFixtureIndex(t, Options{IncludeExamples: true, IncludeComments: true})
	assert.Equal(t, a.Lookup("create"), b.Lookup("create"))
	assert.Equal(t, a.Size(), b.Size())
}

func TestBuild_EmptySymbolSet(t *testing.T) {
	ix := Build(NewSymbolSet(), corpus.Sets{Docs: map[string]string{"README.md": "create"}}, nil, Options{})
	assert.Equal(t, 0, ix.Size())
}

func TestContainsWord(t *testing.T) {
	assert.True(t, ContainsWord("create(name, email)", "email"))
	assert.True(t, ContainsWord("svc.create helper", "create"))
	assert.False(t, ContainsWord("emails are queued", "email"))
	assert.False(t, ContainsWord("Create early", "create"))
}
