package envscript

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const header = "// Generated by frontenv from the container environment. Do not edit.\n"

// Collect selects entries from environ (formatted as "NAME=value", the shape
// of os.Environ) whose names match one of the whitelisted prefixes. With exact
// set, a name must equal a whitelist entry; otherwise any name starting with
// an entry matches, which mirrors the historical behaviour of shell-based
// injectors (STAGE also admits STAGE_ANYTHING).
func Collect(environ []string, prefixes []string, exact bool) map[string]string {
	values := make(map[string]string)
	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			continue
		}
		if matches(name, prefixes, exact) {
			values[name] = value
		}
	}
	return values
}

func matches(name string, prefixes []string, exact bool) bool {
	for _, prefix := range prefixes {
		if prefix == "" {
			continue
		}
		if exact {
			if name == prefix {
				return true
			}
			continue
		}
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Render produces the configuration script: a single assignment of a JSON
// object literal to window.<global>. JSON serialization gives deterministic
// key order and proper escaping of quotes, backslashes and control characters
// in the values, so the output is loadable script for any environment,
// including an empty one (which renders "{}").
func Render(global string, values map[string]string) ([]byte, error) {
	if values == nil {
		values = map[string]string{}
	}
	obj, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize values: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	fmt.Fprintf(&buf, "window.%s = %s;\n", global, obj)
	return buf.Bytes(), nil
}

// Write renders the configuration script and writes it to path, creating the
// parent directory when absent. Any previous file at path is fully replaced.
// The write must succeed before the server is allowed to start; callers treat
// an error here as fatal.
func Write(path, global string, values map[string]string) error {
	data, err := Render(global, values)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config script: %w", err)
	}
	return nil
}
