package fileutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMkdirPIsIdempotent(t *testing.T) {
	target := filepath.Join(t.TempDir(), "some", "nested", "dir")

	require.Nil(t, MkdirP(target))
	assert.True(t, DirExists(target))

	first, err := os.Stat(target)
	require.NoError(t, err)

	// a second call is a successful no-op
	require.Nil(t, MkdirP(target))
	second, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, first.Mode(), second.Mode())
	assert.Equal(t, first.ModTime(), second.ModTime())
}

func TestMkdirPInvalidPath(t *testing.T) {
	fail := MkdirP("")
	require.NotNil(t, fail)
	assert.True(t, fail.Type.Matches(FailMkdir))

	fail = MkdirP("foo\x00bar")
	require.NotNil(t, fail)
	assert.True(t, fail.Type.Matches(FailMkdir))
}

func TestMkdir(t *testing.T) {
	base := t.TempDir()
	require.Nil(t, Mkdir(base, "sub", "path"))
	assert.True(t, DirExists(filepath.Join(base, "sub", "path")))
}

func TestRmRFMissingPathIsNoop(t *testing.T) {
	target := filepath.Join(t.TempDir(), "never-created")
	require.Nil(t, RmRF(target))
	assert.False(t, TargetExists(target))
}

func TestRmRFRemovesTree(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "tree")
	require.Nil(t, MkdirP(filepath.Join(target, "a", "b")))
	require.Nil(t, Touch(filepath.Join(target, "a", "file.txt")))
	require.Nil(t, Touch(filepath.Join(target, "a", "b", "file.txt")))

	require.Nil(t, RmRF(target))
	assert.False(t, TargetExists(target))
	assert.True(t, DirExists(base), "only the target is removed")
}

func TestRmRFRemovesFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "file.txt")
	require.Nil(t, Touch(target))

	require.Nil(t, RmRF(target))
	assert.False(t, TargetExists(target))
}

func TestRmRFInvalidPath(t *testing.T) {
	fail := RmRF("")
	require.NotNil(t, fail)
	assert.True(t, fail.Type.Matches(FailRemove))
}

func TestTouch(t *testing.T) {
	target := filepath.Join(t.TempDir(), "deep", "file.txt")
	require.Nil(t, Touch(target))
	assert.True(t, FileExists(target))
	assert.False(t, DirExists(target))
}

func TestTempFilePath(t *testing.T) {
	a := TempFilePath("", ".txt")
	b := TempFilePath("", ".txt")
	assert.NotEqual(t, a, b)
	assert.False(t, TargetExists(a))

	dir := t.TempDir()
	c := TempFilePath(dir, "")
	assert.Equal(t, dir, filepath.Dir(c))
}
