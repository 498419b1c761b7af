package injector

import (
	"fmt"
	"os"
	"strings"
)

// ScriptTag returns the script element referencing the runtime config file.
func ScriptTag(src string) string {
	return fmt.Sprintf(`<script src=%q></script>`, src)
}

// Inject replaces every occurrence of the placeholder marker in the HTML
// document with a script tag referencing src. The second return value reports
// whether the marker was found. An absent marker is not an error: the document
// is returned unchanged so a build can run the transform unconditionally.
func Inject(html, marker, src string) (string, bool) {
	if marker == "" || !strings.Contains(html, marker) {
		return html, false
	}
	return strings.ReplaceAll(html, marker, ScriptTag(src)), true
}

// InjectFile reads the HTML document at inPath, applies Inject, and writes the
// result to outPath. Pass the same path for both to transform in place. The
// output file is written even when the marker is absent, so outPath always
// ends up holding the (possibly unchanged) document.
func InjectFile(inPath, outPath, marker, src string) (bool, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return false, fmt.Errorf("read document: %w", err)
	}

	out, injected := Inject(string(data), marker, src)

	if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
		return injected, fmt.Errorf("write document: %w", err)
	}
	return injected, nil
}
