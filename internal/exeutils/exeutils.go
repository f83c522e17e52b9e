package exeutils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/thoas/go-funk"

	"github.com/taskrig/taskkit/internal/failures"
	"github.com/taskrig/taskkit/internal/fileutils"
	"github.com/taskrig/taskkit/internal/logging"
)

// FailNotFound identifies a failure to resolve an executable name
var FailNotFound = failures.Type("exeutils.fail.notfound", failures.FailNotFound)

// Resolution walks PATH on every call, which CI tasks tend to do in tight loops for the same
// handful of tools. Entries are keyed on name plus the PATH value, so PATH changes bypass
// stale entries.
var resolveCache = cache.New(30*time.Second, time.Minute)

// pathExts returns the lower-cased PATHEXT entries, empty outside windows
func pathExts() []string {
	pathext := os.Getenv("PATHEXT")
	if pathext == "" {
		return nil
	}
	return strings.Split(strings.ToLower(pathext), ";")
}

// candidates returns the file names the command shell would consider for the given name.
// On windows a name without a recognized extension is expanded through PATHEXT, earlier
// entries win.
func candidates(name string) []string {
	if runtime.GOOS != "windows" {
		return []string{name}
	}

	exts := pathExts()
	ext := strings.ToLower(filepath.Ext(name))

	// We only treat the suffix as an executable extension if PATHEXT lists it, names can
	// legitimately contain periods.
	if ext != "" && funk.Contains(exts, ext) {
		return []string{name}
	}

	result := make([]string, 0, len(exts))
	for _, e := range exts {
		result = append(result, name+e)
	}
	return result
}

// FindExecutableOnPath returns the first executable matching name on the given PATH-style list,
// or an empty string when there is no match
func FindExecutableOnPath(name, path string) string {
	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		for _, candidate := range candidates(name) {
			fpath := filepath.Join(dir, candidate)
			if fileutils.FileExists(fpath) && fileutils.IsExecutable(fpath) {
				return fpath
			}
		}
	}
	return ""
}

// Which resolves the given executable name against the current PATH and returns its absolute
// path. A name containing a path separator bypasses the search and is validated directly.
func Which(name string) (string, *failures.Failure) {
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, os.PathSeparator) {
		if fileutils.FileExists(name) && fileutils.IsExecutable(name) {
			abs, err := filepath.Abs(name)
			if err == nil {
				return abs, nil
			}
			logging.Debug("Could not absolutize %s: %v", name, err)
		}
		return "", FailNotFound.New("err_exec_not_found", name)
	}

	path := os.Getenv("PATH")
	key := name + "\x00" + path
	if cached, exists := resolveCache.Get(key); exists {
		return cached.(string), nil
	}

	fpath := FindExecutableOnPath(name, path)
	if fpath == "" {
		return "", FailNotFound.New("err_exec_not_found", name)
	}

	abs, err := filepath.Abs(fpath)
	if err != nil {
		return "", FailNotFound.Wrap(err)
	}

	resolveCache.Set(key, abs, cache.DefaultExpiration)
	return abs, nil
}

// WhichOptional is the non-required variant of Which, an unresolvable name yields an empty
// string without failing
func WhichOptional(name string) string {
	fpath, fail := Which(name)
	if fail != nil {
		logging.Debug("Optional resolution of %s failed: %v", name, fail)
		return ""
	}
	return fpath
}
