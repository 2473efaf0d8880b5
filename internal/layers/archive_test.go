package layers

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectFilesSkipsExcludedAndTemp(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "python", "b.py"), "b")
	writeFile(t, filepath.Join(dir, "python", "a.py"), "a")
	writeFile(t, filepath.Join(dir, "layer.zip"), "zip")
	writeFile(t, filepath.Join(dir, ".layer.zip.hxr-tmp-123"), "tmp")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0o755))

	files, err := collectFiles(RealSystem{}, dir, map[string]struct{}{
		filepath.Join(dir, "layer.zip"): {},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"python/a.py", "python/b.py"}, files)
}

func TestCollectFilesMissingDir(t *testing.T) {
	_, err := collectFiles(RealSystem{}, filepath.Join(t.TempDir(), "missing"), nil)
	require.Error(t, err)
}

func TestWriteArchiveReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "python", "a.py"), "print('a')\n")
	archivePath := filepath.Join(t.TempDir(), "out", "layer.zip")
	writeFile(t, archivePath, "not a zip")

	require.NoError(t, writeArchive(RealSystem{}, dir, []string{"python/a.py"}, archivePath))

	r, err := zip.OpenReader(archivePath)
	require.NoError(t, err)
	defer func() {
		_ = r.Close()
	}()
	require.Len(t, r.File, 1)
	assert.Equal(t, "python/a.py", r.File[0].Name)
	assert.True(t, r.File[0].Modified.Equal(archiveEpoch))

	entries, err := os.ReadDir(filepath.Dir(archivePath))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteArchiveIsWorldReadable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "python", "a.py"), "print('a')\n")
	archivePath := filepath.Join(t.TempDir(), "layer.zip")

	require.NoError(t, writeArchive(RealSystem{}, dir, []string{"python/a.py"}, archivePath))
	info, err := os.Stat(archivePath)
	require.NoError(t, err)
	assert.Equal(t, archiveMode, info.Mode().Perm())
}

func TestWriteArchiveMissingFileLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	archivePath := filepath.Join(out, "layer.zip")

	require.Error(t, writeArchive(RealSystem{}, dir, []string{"python/missing.py"}, archivePath))
	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListIfExists(t *testing.T) {
	files, exists, err := listIfExists(filepath.Join(t.TempDir(), "none.zip"))
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Nil(t, files)

	bad := filepath.Join(t.TempDir(), "bad.zip")
	writeFile(t, bad, "garbage")
	_, exists, err = listIfExists(bad)
	require.Error(t, err)
	assert.True(t, exists)
}

func TestMembershipDiff(t *testing.T) {
	diff := MembershipDiff("layer.zip", []string{"a", "b"}, []string{"a", "c"})
	assert.Contains(t, diff, "--- layer.zip (previous)")
	assert.Contains(t, diff, "+++ layer.zip")
	assert.Contains(t, diff, "-b")
	assert.Contains(t, diff, "+c")
	assert.Empty(t, MembershipDiff("layer.zip", []string{"a"}, []string{"a"}))
}
