package env

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Load reads a dotenv file (e.g. ".env") and exports each KEY=VALUE line into the
// process environment. Variables already present in the environment win over the file,
// so a shell export can always override a checked-in default.
// Blank lines, "#" comments and an optional leading "export " are ignored.
// A missing file is not an error. Returns the keys that were set from the file.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "env: open %s", path)
	}
	defer f.Close()

	var set []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return set, errors.Wrapf(err, "env: set %s", key)
		}
		set = append(set, key)
	}
	if err := scanner.Err(); err != nil {
		return set, errors.Wrapf(err, "env: read %s", path)
	}
	return set, nil
}

// parseLine splits one dotenv line. Surrounding single or double quotes are removed from the value.
func parseLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")
	i := strings.Index(line, "=")
	if i <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:i])
	value = strings.TrimSpace(line[i+1:])
	if key == "" {
		return "", "", false
	}
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			value = value[1 : len(value)-1]
		}
	}
	return key, value, true
}

// First returns the value of the first variable in keys that is set and non-empty.
func First(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}
