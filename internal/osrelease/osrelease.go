// Package osrelease reads the os-release file (KEY=VALUE lines, optionally
// quoted) to identify the running distribution.
package osrelease

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Path is the canonical os-release location.
const Path = "/etc/os-release"

// Load reads and parses the os-release file at path.
func Load(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// Parse reads os-release content into a key-value map. Blank lines and
// comments are skipped; values may be wrapped in single or double quotes.
func Parse(content string) (map[string]string, error) {
	values := make(map[string]string)
	if content == "" {
		return values, nil
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: missing '='", lineNo)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("line %d: empty key", lineNo)
		}
		values[key] = unquote(strings.TrimSpace(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return values, nil
}

// PrettyName returns PRETTY_NAME, falling back to NAME, then the empty string.
func PrettyName(values map[string]string) string {
	if name := values["PRETTY_NAME"]; name != "" {
		return name
	}
	return values["NAME"]
}

func unquote(value string) string {
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}
