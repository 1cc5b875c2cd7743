package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Scanner finds suite files on disk
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directory names to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// IsPattern reports whether path should be treated as a glob
func IsPattern(path string) bool {
	return strings.Contains(path, "*")
}

// Scan returns every file below root, skipping hidden and ignored directories
func (s *Scanner) Scan(root string) ([]string, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("suites path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("suites path is not a directory: %s", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && s.skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		files = append(files, path)
		return nil
	})
	return files, err
}

// Glob returns the files matching pattern. "*" stays within one path
// segment, "**" spans zero or more directories. node_modules is never
// searched.
func (s *Scanner) Glob(pattern string) ([]string, error) {
	pattern = filepath.ToSlash(filepath.Clean(pattern))
	g, err := glob.Compile(anyDepth(pattern), '/')
	if err != nil {
		return nil, fmt.Errorf("invalid suites pattern %q: %w", pattern, err)
	}

	root := staticRoot(pattern)
	if _, err := os.Stat(root); err != nil {
		// Nothing can match below a missing directory.
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}
		if g.Match(filepath.ToSlash(path)) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// anyDepth rewrites "**/" segments so they also match no directory at all,
// e.g. "e2e/**/*.cy.js" matches "e2e/a.cy.js".
func anyDepth(pattern string) string {
	if strings.HasPrefix(pattern, "**/") {
		pattern = "{,**/}" + strings.TrimPrefix(pattern, "**/")
	}
	return strings.ReplaceAll(pattern, "/**/", "{/,/**/}")
}

func (s *Scanner) skipDir(name string) bool {
	if strings.HasPrefix(name, ".") && name != "." && name != ".." {
		return true
	}
	return s.skipDirs[name]
}

// staticRoot returns the leading directories of pattern that hold no glob
// syntax; the walk starts there.
func staticRoot(pattern string) string {
	segments := strings.Split(pattern, "/")
	var static []string
	for _, seg := range segments[:len(segments)-1] {
		if strings.ContainsAny(seg, "*?[{") {
			break
		}
		static = append(static, seg)
	}
	root := strings.Join(static, "/")
	switch {
	case root == "" && strings.HasPrefix(pattern, "/"):
		return "/"
	case root == "":
		return "."
	}
	return filepath.FromSlash(root)
}
