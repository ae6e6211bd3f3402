package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/thu-info-community/thu-info-code-scan/internal/scanner"
)

// LanguageLoader interface for loading language grammars
type LanguageLoader interface {
	LoadJavaScript() (*sitter.Language, error)
	LoadTypeScript() (*sitter.Language, error)
	LoadTSX() (*sitter.Language, error)
}

// DefaultLanguageLoader loads the grammars linked into the binary
type DefaultLanguageLoader struct{}

func (l *DefaultLanguageLoader) LoadJavaScript() (*sitter.Language, error) {
	langPtr := tree_sitter_javascript.Language()
	if langPtr == nil {
		return nil, fmt.Errorf("failed to load JavaScript language grammar")
	}
	return sitter.NewLanguage(langPtr), nil
}

func (l *DefaultLanguageLoader) LoadTypeScript() (*sitter.Language, error) {
	langPtr := tree_sitter_typescript.LanguageTypescript()
	if langPtr == nil {
		return nil, fmt.Errorf("failed to load TypeScript language grammar")
	}
	return sitter.NewLanguage(langPtr), nil
}

func (l *DefaultLanguageLoader) LoadTSX() (*sitter.Language, error) {
	langPtr := tree_sitter_typescript.LanguageTSX()
	if langPtr == nil {
		return nil, fmt.Errorf("failed to load TSX language grammar")
	}
	return sitter.NewLanguage(langPtr), nil
}

var defaultLoader LanguageLoader = &DefaultLanguageLoader{}

// SetLanguageLoader sets a custom language loader
func SetLanguageLoader(loader LanguageLoader) {
	defaultLoader = loader
}

// loadLanguage loads the Tree-Sitter language grammar for the given language
func loadLanguage(lang scanner.Language) (*sitter.Language, error) {
	switch lang {
	case scanner.LanguageJavaScript:
		return defaultLoader.LoadJavaScript()
	case scanner.LanguageTypeScript:
		return defaultLoader.LoadTypeScript()
	case scanner.LanguageTSX:
		return defaultLoader.LoadTSX()
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}
