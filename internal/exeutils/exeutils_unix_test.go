// +build !windows

package exeutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskrig/taskkit/internal/failures"
	"github.com/taskrig/taskkit/internal/fileutils"
)

func touchExecutable(t *testing.T, dir, name string) string {
	t.Helper()
	fpath := filepath.Join(dir, name)
	require.Nil(t, fileutils.Touch(fpath))
	require.NoError(t, os.Chmod(fpath, 0755))
	return fpath
}

func TestFindExecutableOnPath(t *testing.T) {
	tmpdir := t.TempDir()

	exe := touchExecutable(t, tmpdir, "sometool")
	assert.Equal(t, exe, FindExecutableOnPath("sometool", "/other_path:"+tmpdir))
	assert.Equal(t, "", FindExecutableOnPath("non-existent", "/other_path:"+tmpdir))
	assert.Equal(t, "", FindExecutableOnPath("sometool", "/other_path"))
}

func TestFindExecutableOnPathSkipsNonExecutable(t *testing.T) {
	tmpdir := t.TempDir()

	fpath := filepath.Join(tmpdir, "notatool")
	require.Nil(t, fileutils.Touch(fpath))

	assert.Equal(t, "", FindExecutableOnPath("notatool", tmpdir))
}

func TestWhich(t *testing.T) {
	tmpdir := t.TempDir()
	exe := touchExecutable(t, tmpdir, "sometool")

	t.Setenv("PATH", tmpdir)

	resolved, fail := Which("sometool")
	require.Nil(t, fail)
	assert.Equal(t, exe, resolved)
	assert.True(t, filepath.IsAbs(resolved))

	_, fail = Which("non-existent")
	require.NotNil(t, fail)
	assert.True(t, fail.Type.Matches(failures.FailNotFound))
}

func TestWhichExplicitPath(t *testing.T) {
	tmpdir := t.TempDir()
	exe := touchExecutable(t, tmpdir, "sometool")

	resolved, fail := Which(exe)
	require.Nil(t, fail)
	assert.Equal(t, exe, resolved)

	_, fail = Which(filepath.Join(tmpdir, "non-existent"))
	require.NotNil(t, fail)
}

func TestWhichOptional(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	assert.Equal(t, "", WhichOptional("non-existent"))
}
