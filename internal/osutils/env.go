package osutils

import (
	"fmt"
	"sort"
	"strings"
)

// EnvSliceToMap converts an environment in the format used by os.Environ() to a map
func EnvSliceToMap(env []string) map[string]string {
	result := map[string]string{}
	for _, kv := range env {
		eq := strings.Index(kv, "=")
		if eq == -1 {
			result[kv] = ""
			continue
		}
		result[kv[:eq]] = kv[eq+1:]
	}
	return result
}

// EnvMapToSlice converts an environment map to the format expected by exec.Cmd.Env
func EnvMapToSlice(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for k, v := range env {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(result) // deterministic ordering, mainly to keep tests sane
	return result
}
