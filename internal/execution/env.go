package execution

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// baseEnvironment returns the parent environment plus the variables of the
// dotenv file at path that the parent does not already set. A missing file
// is not an error.
func baseEnvironment(path string, log logrus.FieldLogger) []string {
	env := os.Environ()
	if path == "" {
		return env
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.WithError(err).Warnf("Ignoring env file %s", path)
		}
		return env
	}

	set := make(map[string]bool, len(env))
	for _, kv := range env {
		if k, _, ok := strings.Cut(kv, "="); ok {
			set[k] = true
		}
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		if !set[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, fmt.Sprintf("%s=%s", k, vars[k]))
	}
	log.WithField("vars", len(keys)).Debugf("Loaded env file %s", path)
	return env
}
