package site

import (
	"fmt"
	"os"
	"path/filepath"
)

// ensureDir creates dir and its parents. Failures are ignored here; the
// following write reports them.
func ensureDir(dir string) {
	_ = os.MkdirAll(dir, 0o755)
}

// writePage writes content to outputDir/rel, replacing any previous file.
func writePage(outputDir, rel string, content []byte) error {
	full := filepath.Join(outputDir, filepath.FromSlash(rel))
	ensureDir(filepath.Dir(full))
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}
