package site

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// skippedDirs are never descended into when copying assets.
var skippedDirs = []string{".git", "node_modules", ".idea", ".vscode"}

// matchesAny reports whether relPath matches one of the glob patterns as a
// full path (with ** support). With baseNames set, a pattern without a slash
// is also tried against the base name.
func matchesAny(relPath string, patterns []string, baseNames bool) bool {
	normalized := filepath.ToSlash(relPath)
	base := filepath.Base(normalized)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}
		if !baseNames || strings.Contains(pattern, "/") {
			continue
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}

// shouldCopy applies the include then exclude patterns. Includes are anchored
// at root, so "*.html" never reaches generated pages in subdirectories.
// Slash-free excludes such as "*.md" apply at any depth. An empty include
// list copies nothing.
func shouldCopy(relPath string, include, exclude []string) bool {
	if len(include) == 0 || !matchesAny(relPath, include, false) {
		return false
	}
	return !matchesAny(relPath, exclude, true)
}

// copyAssets copies the static site files under root into outputDir. It is
// a no-op when both point at the same directory. The output directory is
// skipped if it sits inside root. Returns the copied paths, relative to root.
func copyAssets(root, outputDir string, include, exclude []string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving assets root: %w", err)
	}
	absOut, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("resolving output dir: %w", err)
	}
	if absRoot == absOut {
		return nil, nil
	}

	var copied []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == absOut || (path != absRoot && isSkippedDir(d.Name())) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !shouldCopy(rel, include, exclude) {
			return nil
		}
		if err := copyFile(path, filepath.Join(absOut, filepath.FromSlash(rel))); err != nil {
			return fmt.Errorf("copying %s: %w", rel, err)
		}
		copied = append(copied, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return copied, nil
}

func isSkippedDir(name string) bool {
	for _, s := range skippedDirs {
		if strings.EqualFold(name, s) {
			return true
		}
	}
	return false
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	ensureDir(filepath.Dir(dst))
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
