package scanner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Language represents a source language the parser has a grammar for
type Language string

const (
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguageTSX        Language = "tsx"
	LanguageUnknown    Language = "unknown"
)

// LibraryName is the npm package whose sources are audited
const LibraryName = "thu-info-lib"

// FileInfo contains information about a file to be scanned
type FileInfo struct {
	Name     string // Base name, used for the skip-list
	Path     string // Full path, used when reporting
	Language Language
}

// Scanner handles file discovery and filtering
type Scanner struct {
	excludeGlobs []glob.Glob
	includeGlobs []glob.Glob
}

// NewScanner creates a new scanner
func NewScanner() *Scanner {
	return &Scanner{}
}

// SetExcludeGlobs sets glob patterns to exclude
func (s *Scanner) SetExcludeGlobs(patterns []string) error {
	globs, err := compileGlobs(patterns)
	if err != nil {
		return err
	}
	s.excludeGlobs = globs
	return nil
}

// SetIncludeGlobs sets glob patterns to include (overrides excludes)
func (s *Scanner) SetIncludeGlobs(patterns []string) error {
	globs, err := compileGlobs(patterns)
	if err != nil {
		return err
	}
	s.includeGlobs = globs
	return nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// detectLanguage determines the language from file extension
func detectLanguage(path string) Language {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".js", ".jsx", ".mjs", ".cjs":
		return LanguageJavaScript
	case ".ts", ".mts", ".cts":
		return LanguageTypeScript
	case ".tsx":
		return LanguageTSX
	default:
		return LanguageUnknown
	}
}

// matchesGlob checks if a file name matches any of the glob patterns
func matchesGlob(name string, globs []glob.Glob) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// shouldInclude checks if a file should be included based on include/exclude globs
func (s *Scanner) shouldInclude(name string) bool {
	// If include globs are specified, file must match at least one
	if len(s.includeGlobs) > 0 {
		return matchesGlob(name, s.includeGlobs)
	}
	if len(s.excludeGlobs) > 0 {
		return !matchesGlob(name, s.excludeGlobs)
	}
	return true
}

// Scan lists the source files directly inside root, in directory order.
// The library keeps its sources in one flat directory, so subdirectories
// are not descended into.
func (s *Scanner) Scan(root string) ([]FileInfo, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		lang := detectLanguage(name)
		if lang == LanguageUnknown {
			continue
		}
		if !s.shouldInclude(name) {
			continue
		}
		files = append(files, FileInfo{
			Name:     name,
			Path:     filepath.Join(root, name),
			Language: lang,
		})
	}
	return files, nil
}

// FindSourceRoot returns the directory holding the library sources for the
// project in projectDir: src/lib when the project is the library itself,
// otherwise the copy installed under node_modules.
func FindSourceRoot(projectDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(projectDir, "package.json"))
	if err != nil {
		return "", fmt.Errorf("failed to read package.json: %w", err)
	}

	var pkg struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return "", fmt.Errorf("failed to parse package.json: %w", err)
	}

	if pkg.Name == LibraryName {
		return filepath.Join(projectDir, "src", "lib"), nil
	}

	modulePath := filepath.Join(projectDir, "node_modules", LibraryName)
	if _, err := os.Stat(modulePath); os.IsNotExist(err) {
		return "", fmt.Errorf("cannot find `%s` in `node_modules`", LibraryName)
	}
	return filepath.Join(modulePath, "src", "lib"), nil
}
