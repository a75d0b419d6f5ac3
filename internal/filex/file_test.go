package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureSubdDir_DefaultsToCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureSubdDir("", "downloads")
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(filepath.Join(tmp, "downloads"))
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	require.Equal(t, want, gotResolved)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureSubdDir_ExplicitParentAndIdempotent(t *testing.T) {
	tmp := t.TempDir()

	first, err := EnsureSubdDir(tmp, "data")
	require.NoError(t, err)
	second, err := EnsureSubdDir(tmp, "data")
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, filepath.Join(tmp, "data"), first)
}

func TestEnsureSubdDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "data"), []byte("x"), 0o660))

	_, err := EnsureSubdDir(tmp, "data")
	require.Error(t, err)
}

func TestWriteUnique_AddsSuffixOnCollision(t *testing.T) {
	dir := t.TempDir()

	p1, err := WriteUnique(dir, "invoice.pdf", []byte("one"))
	require.NoError(t, err)
	p2, err := WriteUnique(dir, "invoice.pdf", []byte("two"))
	require.NoError(t, err)

	require.Equal(t, filepath.Join(dir, "invoice.pdf"), p1)
	require.Equal(t, filepath.Join(dir, "invoice (1).pdf"), p2)

	b, err := os.ReadFile(p2)
	require.NoError(t, err)
	require.Equal(t, "two", string(b))
}

func TestWriteUnique_StripsDirectories(t *testing.T) {
	dir := t.TempDir()

	p, err := WriteUnique(dir, "../../etc/passwd", []byte("x"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "passwd"), p)
}
