package locale

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/nicksnyder/go-i18n/i18n"
	"github.com/thoas/go-funk"
)

// Supported languages
var Supported = []string{"en-US"}

var translateFunction i18n.TranslateFunc

func init() {
	path := getLocalePath()

	funk.ForEach(Supported, func(x string) {
		i18n.MustLoadTranslationFile(filepath.Join(path, strings.ToLower(x)+".yaml"))
	})

	locale := os.Getenv("TASKKIT_LOCALE")
	if locale == "" {
		locale = Supported[0]
	}

	Set(locale)
}

// getLocalePath exists to facilitate running Go test scripts from their sub-directories, if no tests are being ran
// this just returns `locale/`
func getLocalePath() string {
	path := "locale"

	if flag.Lookup("test.v") == nil && fileExists(path) {
		return path
	}

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		log.Panic("Could not call Caller(0)")
	}

	abs, err := filepath.Abs(filepath.Join(filepath.Dir(file), "..", ".."))
	if err != nil {
		log.Panic(err)
	}

	return filepath.Join(abs, path)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Set the active language to the given locale
func Set(localeName string) {
	if !funk.Contains(Supported, localeName) {
		log.Panicf("Locale does not exist: %s", localeName)
	}

	translateFunction = i18n.MustTfunc(localeName)
}

// T aliases to i18n.Tfunc()
func T(translationID string, args ...interface{}) string {
	return translateFunction(translationID, args...)
}

// Tl is like T, but it accepts a fallback string that is used when the translation ID has no translation,
// arguments are exposed to the translation as {{.V0}}, {{.V1}}, etc.
func Tl(translationID, fallback string, args ...string) string {
	input := map[string]interface{}{}
	for k, v := range args {
		input["V"+strconv.Itoa(k)] = v
	}

	translation := translateFunction(translationID, input)
	if translation == translationID {
		translation = fallback
		for k, v := range input {
			translation = strings.ReplaceAll(translation, "{{."+k+"}}", v.(string))
		}
	}

	return translation
}
