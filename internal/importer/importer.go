// Package importer loads bank CSV exports from disk.
package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ImportDir is the workspace subdirectory scanned for exports.
const ImportDir = "import"

// processedSubdir receives exports after a successful run.
const processedSubdir = "processed"

// FileInfo describes a CSV file waiting in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// Stem returns the file name without its extension, used for account routing.
func (f FileInfo) Stem() string {
	return strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
}

// Scan returns the CSV files directly inside <root>/import, sorted by name.
// A missing import directory yields no files.
func Scan(root string) ([]FileInfo, error) {
	dir := filepath.Join(root, ImportDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	slices.SortFunc(files, func(a, b FileInfo) int { return strings.Compare(a.Name, b.Name) })
	return files, nil
}

// MarkProcessed moves <root>/import/<name> into <root>/import/processed.
func MarkProcessed(root, name string) error {
	src := filepath.Join(root, ImportDir, name)
	dstDir := filepath.Join(root, ImportDir, processedSubdir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}
	if err := os.Rename(src, filepath.Join(dstDir, name)); err != nil {
		return fmt.Errorf("moving %s to processed: %w", name, err)
	}
	return nil
}
