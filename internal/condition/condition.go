package condition

import (
	"os"
	"strings"
)

var inTest = strings.HasSuffix(strings.TrimSuffix(os.Args[0], ".exe"), ".test") ||
	strings.Contains(os.Args[0], "/_test/")

// InTest returns true when the toolkit is being tested
func InTest() bool {
	return inTest
}

// OnCI returns true when we are running on a CI host
func OnCI() bool {
	return os.Getenv("CI") != "" || os.Getenv("BUILD_BUILDID") != ""
}
