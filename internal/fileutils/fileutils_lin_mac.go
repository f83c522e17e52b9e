// +build !windows

package fileutils

import (
	"os"

	"github.com/phayes/permbits"
)

const LineEnd = "\n"

// IsExecutable determines if the file at the given path has any execute permissions.
// This function does not care whether the current user has enough privilege to
// execute the file.
func IsExecutable(path string) bool {
	bits, err := permbits.Stat(path)
	if err != nil {
		return false
	}
	return bits.UserExecute() || bits.GroupExecute() || bits.OtherExecute()
}

// checkPathChars implements the unix rules, anything besides NUL (checked by the caller) goes
func checkPathChars(path string) error {
	return nil
}

// removeTree implements unlink semantics, removal succeeds regardless of open handles below path
func removeTree(path string) error {
	return os.RemoveAll(path)
}
