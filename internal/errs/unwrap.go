package errs

import (
	"errors"
)

// Unpack walks the Unwrap stack of the given error and returns every error it encounters, starting with the outermost
func Unpack(err error) []error {
	result := []error{}
	for err != nil {
		result = append(result, err)
		err = errors.Unwrap(err)
	}
	return result
}

// UnwrapExitCode checks if any error in the chain carries an exit code and returns it, defaulting to 1 for
// errors that don't and 0 for nil
func UnwrapExitCode(err error) int {
	if err == nil {
		return 0
	}

	var eerr ExitCodeable
	if errors.As(err, &eerr) {
		return eerr.ExitCode()
	}

	return 1
}
