package git

import (
	"context"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initMemRepo(t *testing.T) (*gogit.Repository, billy.Filesystem) {
	t.Helper()
	fs := memfs.New()
	repo, err := gogit.Init(memory.NewStorage(), fs)
	require.NoError(t, err)
	return repo, fs
}

func commitFiles(t *testing.T, repo *gogit.Repository, fs billy.Filesystem, msg string, files map[string][]byte) plumbing.Hash {
	t.Helper()
	wt, err := repo.Worktree()
	require.NoError(t, err)
	for path, content := range files {
		require.NoError(t, util.WriteFile(fs, path, content, 0o644))
		_, err := wt.Add(path)
		require.NoError(t, err)
	}
	hash, err := wt.Commit(msg, &gogit.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return hash
}

func TestOpen_NotARepository(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.ErrorIs(t, err, ErrNotRepository)
}

func TestSnapshot_MaterializesCommittedTree(t *testing.T) {
	repo, fs := initMemRepo(t)
	commitFiles(t, repo, fs, "initial", map[string][]byte{
		"svc.py":    []byte("def create(name):\n    return name\n"),
		"README.md": []byte("Call create(name).\n"),
	})

	snap, err := Wrap(repo).Snapshot(context.Background(), "HEAD")
	require.NoError(t, err)

	assert.Len(t, snap, 2)
	assert.Contains(t, snap["svc.py"], "def create(name):")
	assert.Contains(t, snap["README.md"], "create(name)")
}

func TestSnapshot_PreviousRevision(t *testing.T) {
	repo, fs := initMemRepo(t)
	commitFiles(t, repo, fs, "v1", map[string][]byte{
		"svc.py": []byte("def create(name):\n    return name\n"),
	})
	commitFiles(t, repo, fs, "v2", map[string][]byte{
		"svc.py": []byte("def create(name, email):\n    return name\n"),
	})

	r := Wrap(repo)

	oldSnap, err := r.Snapshot(context.Background(), "HEAD~1")
	require.NoError(t, err)
	assert.Contains(t, oldSnap["svc.py"], "def create(name):")

	newSnap, err := r.Snapshot(context.Background(), "HEAD")
	require.NoError(t, err)
	assert.Contains(t, newSnap["svc.py"], "def create(name, email):")
}

func TestSnapshot_SkipsBinaryFiles(t *testing.T) {
	repo, fs := initMemRepo(t)
	commitFiles(t, repo, fs, "mixed", map[string][]byte{
		"svc.py":    []byte("def create(name):\n    return name\n"),
		"logo.png":  {0x89, 0x50, 0x4e, 0x47, 0x00, 0x01, 0x02, 0x03},
		"notes.txt": []byte("plain text\n"),
	})

	snap, err := Wrap(repo).Snapshot(context.Background(), "HEAD")
	require.NoError(t, err)

	assert.NotContains(t, snap, "logo.png")
	assert.Contains(t, snap, "svc.py")
	assert.Contains(t, snap, "notes.txt")
}

func TestSnapshot_UnknownRevision(t *testing.T) {
	repo, fs := initMemRepo(t)
	commitFiles(t, repo, fs, "initial", map[string][]byte{"a.py": []byte("x = 1\n")})

	_, err := Wrap(repo).Snapshot(context.Background(), "no-such-branch")
	assert.Error(t, err)
}

func TestResolveRange_Precedence(t *testing.T) {
	cases := []struct {
		name                    string
		from, to, since, branch string
		wantOld, wantNew        string
	}{
		{name: "from and to", from: "abc123", to: "def456", wantOld: "abc123", wantNew: "def456"},
		{name: "from defaults to HEAD", from: "abc123", wantOld: "abc123", wantNew: "HEAD"},
		{name: "from beats since", from: "abc123", since: "HEAD~3", wantOld: "abc123", wantNew: "HEAD"},
		{name: "since", since: "HEAD~3", wantOld: "HEAD~3", wantNew: "HEAD"},
		{name: "since beats branch", since: "HEAD~3", branch: "main", wantOld: "HEAD~3", wantNew: "HEAD"},
		{name: "branch", branch: "main", wantOld: "main", wantNew: "HEAD"},
		{name: "default", wantOld: "HEAD~1", wantNew: "HEAD"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			oldRev, newRev := ResolveRange(tc.from, tc.to, tc.since, tc.branch)
			assert.Equal(t, tc.wantOld, oldRev)
			assert.Equal(t, tc.wantNew, newRev)
		})
	}
}
