package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path     string
		expected Language
	}{
		{"test.js", LanguageJavaScript},
		{"test.jsx", LanguageJavaScript},
		{"test.mjs", LanguageJavaScript},
		{"test.cjs", LanguageJavaScript},
		{"test.ts", LanguageTypeScript},
		{"test.TS", LanguageTypeScript},
		{"test.mts", LanguageTypeScript},
		{"test.cts", LanguageTypeScript},
		{"test.tsx", LanguageTSX},
		{"test.go", LanguageUnknown},
		{"test.txt", LanguageUnknown},
		{"test", LanguageUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			result := detectLanguage(tt.path)
			if result != tt.expected {
				t.Errorf("detectLanguage(%q) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestScanner_Scan(t *testing.T) {
	tmpDir := t.TempDir()

	writeFile(t, filepath.Join(tmpDir, "card.ts"), "export const a = 1;")
	writeFile(t, filepath.Join(tmpDir, "basics.ts"), "export const b = 2;")
	writeFile(t, filepath.Join(tmpDir, "legacy.js"), "module.exports = {};")
	writeFile(t, filepath.Join(tmpDir, "readme.md"), "# readme")
	// Nested sources are not part of the flat library directory
	writeFile(t, filepath.Join(tmpDir, "utils", "nested.ts"), "export const c = 3;")

	files, err := NewScanner().Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(files) != 3 {
		t.Fatalf("Expected 3 files, got %d: %v", len(files), files)
	}

	// os.ReadDir returns entries sorted by name
	wantNames := []string{"basics.ts", "card.ts", "legacy.js"}
	for i, want := range wantNames {
		if files[i].Name != want {
			t.Errorf("files[%d].Name = %q, want %q", i, files[i].Name, want)
		}
		if files[i].Path != filepath.Join(tmpDir, want) {
			t.Errorf("files[%d].Path = %q, want %q", i, files[i].Path, filepath.Join(tmpDir, want))
		}
	}
	if files[2].Language != LanguageJavaScript {
		t.Errorf("Expected JavaScript for legacy.js, got %v", files[2].Language)
	}
}

func TestScanner_ExcludeGlobs(t *testing.T) {
	tmpDir := t.TempDir()

	writeFile(t, filepath.Join(tmpDir, "test.ts"), "test")
	writeFile(t, filepath.Join(tmpDir, "test.js"), "test")

	scanner := NewScanner()
	if err := scanner.SetExcludeGlobs([]string{"*.js"}); err != nil {
		t.Fatalf("SetExcludeGlobs failed: %v", err)
	}

	files, err := scanner.Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(files) != 1 {
		t.Fatalf("Expected 1 file, got %d", len(files))
	}
	if files[0].Language != LanguageTypeScript {
		t.Errorf("Expected TypeScript file, got %v", files[0].Language)
	}
}

func TestScanner_IncludeGlobsOverrideExcludes(t *testing.T) {
	tmpDir := t.TempDir()

	writeFile(t, filepath.Join(tmpDir, "library.ts"), "test")
	writeFile(t, filepath.Join(tmpDir, "network.ts"), "test")

	scanner := NewScanner()
	if err := scanner.SetExcludeGlobs([]string{"*.ts"}); err != nil {
		t.Fatalf("SetExcludeGlobs failed: %v", err)
	}
	if err := scanner.SetIncludeGlobs([]string{"lib*"}); err != nil {
		t.Fatalf("SetIncludeGlobs failed: %v", err)
	}

	files, err := scanner.Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(files) != 1 || files[0].Name != "library.ts" {
		t.Errorf("Expected only library.ts, got %v", files)
	}
}

func TestScanner_MissingRoot(t *testing.T) {
	if _, err := NewScanner().Scan(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected an error for a missing root")
	}
}

func TestFindSourceRoot(t *testing.T) {
	t.Run("library itself", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "package.json"), `{"name": "thu-info-lib", "version": "1.0.0"}`)

		root, err := FindSourceRoot(dir)
		if err != nil {
			t.Fatalf("FindSourceRoot failed: %v", err)
		}
		if want := filepath.Join(dir, "src", "lib"); root != want {
			t.Errorf("root = %q, want %q", root, want)
		}
	})

	t.Run("dependent project", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "package.json"), `{"name": "thu-info-app"}`)
		writeFile(t, filepath.Join(dir, "node_modules", "thu-info-lib", "package.json"), `{}`)

		root, err := FindSourceRoot(dir)
		if err != nil {
			t.Fatalf("FindSourceRoot failed: %v", err)
		}
		if want := filepath.Join(dir, "node_modules", "thu-info-lib", "src", "lib"); root != want {
			t.Errorf("root = %q, want %q", root, want)
		}
	})

	t.Run("library not installed", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "package.json"), `{"name": "thu-info-app"}`)

		if _, err := FindSourceRoot(dir); err == nil {
			t.Error("Expected an error when thu-info-lib is not installed")
		}
	})

	t.Run("no package.json", func(t *testing.T) {
		if _, err := FindSourceRoot(t.TempDir()); err == nil {
			t.Error("Expected an error without package.json")
		}
	})
}
