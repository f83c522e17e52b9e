package fileutils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/taskrig/taskkit/internal/errs"
	"github.com/taskrig/taskkit/internal/failures"
	"github.com/taskrig/taskkit/internal/logging"
)

// DirMode is the mode used when creating directories
const DirMode = os.FileMode(0755)

// FileMode is the mode used when creating files
const FileMode = os.FileMode(0644)

var (
	// FailMkdir identifies a failure to create a directory structure
	FailMkdir = failures.Type("fileutils.fail.mkdir", failures.FailIO)

	// FailRemove identifies a failure to remove a file or directory tree
	FailRemove = failures.Type("fileutils.fail.remove", failures.FailIO)
)

// TargetExists checks if the given file or directory exists
func TargetExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// FileExists checks if the given file (not directory) exists
func FileExists(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}

// DirExists checks if the given directory exists
func DirExists(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.IsDir()
}

// IsDir returns true if the given path is a directory
func IsDir(path string) bool {
	return DirExists(path)
}

// MkdirP creates the given directory and every missing ancestor. It is idempotent, a second call
// on the same path is a successful no-op. Creation is best-effort, ancestors created before a
// failing step are not rolled back.
func MkdirP(path string) *failures.Failure {
	if err := validatePath(path); err != nil {
		return FailMkdir.New("err_mkdir_invalid_path", path)
	}
	if DirExists(path) {
		return nil
	}
	if err := os.MkdirAll(path, DirMode); err != nil {
		return FailMkdir.Wrap(err)
	}
	return nil
}

// Mkdir is a small helper to create a directory structure below a base path
func Mkdir(path string, subpath ...string) *failures.Failure {
	if len(subpath) > 0 {
		path = filepath.Join(path, filepath.Join(subpath...))
	}
	return MkdirP(path)
}

// RmRF removes the given file or entire directory tree. A path that does not exist is a
// successful no-op. Behavior with open file handles below path is platform specific: on
// exclusive-lock platforms (windows) the removal fails and the tree is left intact, the caller
// has to close the handle and retry. On unlink platforms the removal succeeds and open handles
// keep referencing the unlinked data until they are closed.
func RmRF(path string) *failures.Failure {
	if err := validatePath(path); err != nil {
		return FailRemove.Wrap(err)
	}
	if !TargetExists(path) {
		return nil
	}
	if err := removeTree(path); err != nil {
		logging.Debug("Could not remove %s: %v", path, err)
		return FailRemove.Wrap(err)
	}
	return nil
}

// Touch creates an empty file at the given path, creating missing parent directories
func Touch(path string) *failures.Failure {
	if fail := MkdirP(filepath.Dir(path)); fail != nil {
		return fail
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, FileMode)
	if err != nil {
		return failures.FailIO.Wrap(err)
	}
	if err := file.Close(); err != nil {
		return failures.FailIO.Wrap(err)
	}
	return nil
}

// TempFilePath returns a unique, not yet existing path below dir, or below the system temp
// directory if dir is empty
func TempFilePath(dir, suffix string) string {
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, uuid.New().String()+suffix)
}

// validatePath checks for input that no filesystem can accept, platform specific character rules
// are implemented by checkPathChars
func validatePath(path string) error {
	if path == "" {
		return errs.New("Path is empty")
	}
	if strings.ContainsRune(path, 0) {
		return errs.New("Path contains a NUL character")
	}
	return checkPathChars(path)
}
