// Package scanner discovers Finanzguru CSV exports in a directory. Exports
// are timestamped downloads, so callers usually want the newest one.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/geldfluss/sankey/internal/finanzguru"
)

// Scanner walks a directory tree and finds CSV exports.
type Scanner struct {
	rootDir string
}

// New creates a scanner for the given root directory.
func New(rootDir string) *Scanner {
	return &Scanner{rootDir: rootDir}
}

// Export is a discovered CSV export.
type Export struct {
	Path    string
	Size    int64
	ModTime int64 // unix seconds
}

// Scan walks the directory tree and returns all parseable exports, newest
// first. Files with a .csv extension whose header is not semicolon-delimited
// are skipped silently.
func (s *Scanner) Scan() ([]Export, error) {
	rootDir := s.expandHome(s.rootDir)

	var exports []Export
	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !s.isExport(path) {
			return nil
		}
		exports = append(exports, Export{
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime().Unix(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	sort.Slice(exports, func(i, j int) bool {
		if exports[i].ModTime != exports[j].ModTime {
			return exports[i].ModTime > exports[j].ModTime
		}
		return exports[i].Path < exports[j].Path
	})
	return exports, nil
}

// FindLatest returns the most recently modified export under the root.
func (s *Scanner) FindLatest() (Export, error) {
	exports, err := s.Scan()
	if err != nil {
		return Export{}, err
	}
	if len(exports) == 0 {
		return Export{}, fmt.Errorf("no CSV exports found in %s", s.rootDir)
	}
	return exports[0], nil
}

// isExport sniffs the file header to decide whether this is a parseable
// export. Read errors are treated as "not an export".
func (s *Scanner) isExport(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	header := make([]byte, 512)
	n, err := f.Read(header)
	if n == 0 && err != nil {
		return false
	}
	return finanzguru.CanParse(path, header[:n])
}

// expandHome expands ~ to the home directory.
func (s *Scanner) expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
