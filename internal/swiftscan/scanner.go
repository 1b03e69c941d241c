// Package swiftscan discovers Swift test files under a project root
// and extracts the candidate suite, class, and function names used
// for status attribution.
package swiftscan

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoTestFiles means the walk found no Swift test files at all.
var ErrNoTestFiles = errors.New("no Swift test files found")

// FileInfo holds the candidate tokens extracted from one test file.
// Funcs is only populated when the file declares no suites and no
// XCTest classes; suite-level identity always takes precedence.
type FileInfo struct {
	// Path is the file path relative to the scan root.
	Path string `json:"path"`

	// Suites lists @Suite type names in file order.
	Suites []string `json:"suites,omitempty"`

	// Classes lists XCTestCase subclass names in file order.
	Classes []string `json:"classes,omitempty"`

	// Funcs lists top-level @Test function names, fallback only.
	Funcs []string `json:"funcs,omitempty"`
}

// ScanOptions configures a Scan invocation.
type ScanOptions struct {
	// Exclude lists path glob patterns (matched against the
	// root-relative path of each candidate file) to skip.
	Exclude []string
}

// Scan walks root for Swift test files and extracts their candidate
// tokens. Unreadable files are scanned as empty rather than aborting
// the walk. Returns ErrNoTestFiles when nothing qualified.
func Scan(root string, opts ScanOptions) ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			base := d.Name()
			if strings.HasPrefix(base, ".") && base != "." {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if !IsTestFile(filepath.Dir(rel), d.Name()) {
			return nil
		}
		if excluded(rel, opts.Exclude) {
			return nil
		}

		src, readErr := os.ReadFile(path)
		if readErr != nil {
			// Skip unreadable files rather than aborting the scan.
			src = nil
		}

		files = append(files, scanSource(rel, string(src)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoTestFiles
	}
	return files, nil
}

// scanSource extracts candidates from one file's source text.
func scanSource(rel, src string) FileInfo {
	info := FileInfo{
		Path:    rel,
		Suites:  Suites(src),
		Classes: XCTestClasses(src),
	}
	// Only fall back to @Test functions when the file has no
	// suite-level identity of its own.
	if len(info.Suites) == 0 && len(info.Classes) == 0 {
		info.Funcs = TestFuncs(src)
	}
	return info
}

// IsTestFile reports whether a file looks like a Swift test file: it
// must end in .swift and either live under a *Tests directory or be
// named *Tests.swift / *UITests.swift.
func IsTestFile(dir, name string) bool {
	if !strings.HasSuffix(name, ".swift") {
		return false
	}
	for _, part := range strings.Split(dir, string(os.PathSeparator)) {
		if strings.HasSuffix(part, "Tests") && part != "" {
			return true
		}
	}
	return strings.HasSuffix(name, "Tests.swift") ||
		strings.HasSuffix(name, "UITests.swift")
}

func excluded(rel string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := filepath.Match(p, rel); err == nil && ok {
			return true
		}
	}
	return false
}
