package resolver

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrMalformedScript indicates the configuration script does not contain the
// expected global assignment.
var ErrMalformedScript = errors.New("config script does not assign the expected global object")

// Resolver answers configuration lookups from two immutable snapshots with a
// fixed precedence: values baked in at build time win over values injected at
// container start. Both maps are read-only after construction.
type Resolver struct {
	static  map[string]string
	runtime map[string]string
}

// New builds a Resolver over the given snapshots. Nil maps are allowed.
func New(static, runtime map[string]string) *Resolver {
	return &Resolver{static: static, runtime: runtime}
}

// Lookup resolves key, reporting whether any source provided it. A missing
// key is not an error; callers that require the value decide the severity.
func (r *Resolver) Lookup(key string) (string, bool) {
	if v, ok := r.static[key]; ok {
		return v, true
	}
	if v, ok := r.runtime[key]; ok {
		return v, true
	}
	return "", false
}

// Value resolves key, returning the empty string when no source provides it.
func (r *Resolver) Value(key string) string {
	v, _ := r.Lookup(key)
	return v
}

// ParseScript extracts the configuration object from a script generated by the
// startup generator. It verifies the assignment target matches the expected
// global name and decodes the object literal, which the generator emits as
// JSON. Comment lines before the assignment are skipped.
func ParseScript(data []byte, global string) (map[string]string, error) {
	assign := "window." + global + " ="
	text := string(data)

	idx := strings.Index(text, assign)
	if idx < 0 {
		return nil, fmt.Errorf("%w: want %q", ErrMalformedScript, assign)
	}

	body := strings.TrimSpace(text[idx+len(assign):])
	body = strings.TrimSuffix(strings.TrimSpace(body), ";")

	values := make(map[string]string)
	if err := json.Unmarshal([]byte(body), &values); err != nil {
		return nil, fmt.Errorf("decode config object: %w", err)
	}
	return values, nil
}

// Load reads the generated script at path and parses it. A missing file
// resolves to an empty snapshot: the container may legitimately run without
// any injected configuration.
func Load(path, global string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config script: %w", err)
	}
	return ParseScript(data, global)
}

// ParseStatic decodes a comma-separated KEY=VALUE list into the build-time
// table. The format is what -ldflags -X can carry in a single string.
func ParseStatic(s string) map[string]string {
	values := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || name == "" {
			continue
		}
		values[name] = value
	}
	return values
}
