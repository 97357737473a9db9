package fs

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/snapdiff"
)

// listFiles walks root and returns slash-separated paths relative to it.
// Directories the filter ignores are skipped entirely.
func listFiles(root string, filter snapdiff.PathFilter) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, notFound(err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			// If error is on the root path, return it (don't continue walking)
			if path == root {
				return err
			}
			return nil
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if filter != nil && filter.IsIgnored(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

// resolve joins a listed relative path onto root, refusing paths that
// escape it.
func resolve(root, rel string) (string, error) {
	clean := snapdiff.CleanPath(rel)
	if clean == "" || strings.HasPrefix(clean, "/") || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("invalid path %q", rel)
	}
	return filepath.Join(root, filepath.FromSlash(clean)), nil
}

// notFound maps missing-file errors onto snapdiff.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, iofs.ErrNotExist) {
		return fmt.Errorf("%w: %w", snapdiff.ErrNotFound, err)
	}
	return err
}
