// +build windows

package fileutils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/taskrig/taskkit/internal/errs"
	"github.com/taskrig/taskkit/internal/logging"
)

const LineEnd = "\r\n"

// IsExecutable determines if the file at the given path has any execute permissions.
// This function does not care whether the current user has enough privilege to
// execute the file.
func IsExecutable(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".exe" {
		return true
	}

	pathExts := strings.Split(os.Getenv("PATHEXT"), ";")
	for _, pe := range pathExts {
		// pathext entries have `.` and are capitalized
		if ext == strings.ToLower(pe) {
			return true
		}
	}
	return false
}

// checkPathChars rejects characters NTFS cannot store. A colon is only legal as part of the
// drive specifier (second character).
func checkPathChars(path string) error {
	if i := strings.IndexAny(path, `<>"|?*`); i != -1 {
		return errs.New("Path contains illegal character '%c'", path[i])
	}
	if i := strings.Index(path, ":"); i != -1 && i != 1 {
		return errs.New("Path contains a colon outside the drive specifier")
	}
	return nil
}

// removeTree has to contend with mandatory file locks as well as the read-only attribute, which
// blocks deletion even for the owner. Open handles below path cause the removal to fail with the
// tree left intact, the caller has to close the handle and retry.
func removeTree(path string) error {
	err := os.RemoveAll(path)
	if err == nil {
		return nil
	}

	// A failed removal may be caused by read-only attributes rather than locks, clear them and
	// retry once before reporting the failure.
	logging.Debug("RemoveAll failed, clearing read-only attributes under %s and retrying: %v", path, err)
	walkErr := filepath.Walk(path, func(fpath string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // entry already gone
		}
		if info.Mode().Perm()&0200 == 0 {
			_ = os.Chmod(fpath, info.Mode().Perm()|0200)
		}
		return nil
	})
	if walkErr != nil {
		logging.Debug("Could not walk %s: %v", path, walkErr)
	}

	return os.RemoveAll(path)
}
