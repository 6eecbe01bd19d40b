package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// shotDirFor returns the screenshots directory for a spec file: the
// configured override, or a screenshots/ directory next to the spec.
func shotDirFor(specPath, override string) string {
	if override != "" {
		return override
	}
	return filepath.Join(filepath.Dir(specPath), "screenshots")
}

// failureShotName derives the deterministic screenshot file name for a
// failed scenario from the spec file's base name and the scenario name.
func failureShotName(specPath, scenario string) string {
	base := strings.TrimSuffix(filepath.Base(specPath), filepath.Ext(specPath))
	return base + "_" + slug(scenario) + ".png"
}

// slug lower-cases a name and replaces whitespace runs with
// underscores, keeping filenames shell-friendly.
func slug(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), "_"))
}

// writeScreenshot writes a PNG into dir, creating it on demand, and
// returns the written path.
func writeScreenshot(dir, name string, png []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create screenshot dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", fmt.Errorf("write screenshot %s: %w", path, err)
	}
	return path, nil
}
