package parser

import (
	"fmt"
	"os"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/thu-info-community/thu-info-code-scan/internal/scanner"
	"github.com/thu-info-community/thu-info-code-scan/internal/syntax"
)

// File is a parsed source file
type File struct {
	Name   string      // Base name, as listed in the source root
	Path   string      // Path used when reporting locations
	Source string      // Raw file content
	Root   syntax.Node // Root of the syntax tree
}

// Parser handles Tree-Sitter parsing of source files
type Parser struct {
	languages map[scanner.Language]*sitter.Language
	mu        sync.RWMutex
	debug     bool
}

// NewParser creates a new parser instance
func NewParser() *Parser {
	return &Parser{
		languages: make(map[scanner.Language]*sitter.Language),
		debug:     false,
	}
}

// SetDebug enables or disables debug logging
func (p *Parser) SetDebug(debug bool) {
	p.debug = debug
}

// getLanguage returns a language grammar for the given language, loading it if needed
func (p *Parser) getLanguage(lang scanner.Language) (*sitter.Language, error) {
	p.mu.RLock()
	if language, ok := p.languages[lang]; ok {
		p.mu.RUnlock()
		return language, nil
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	// Double-check after acquiring write lock
	if language, ok := p.languages[lang]; ok {
		return language, nil
	}

	language, err := loadLanguage(lang)
	if err != nil {
		return nil, fmt.Errorf("failed to load language %s: %w", lang, err)
	}

	p.languages[lang] = language
	return language, nil
}

// ParseFile reads and parses a file found by the scanner
func (p *Parser) ParseFile(info scanner.FileInfo) (*File, error) {
	content, err := os.ReadFile(info.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", info.Path, err)
	}
	return p.Parse(info, content)
}

// Parse parses content as the file described by info
func (p *Parser) Parse(info scanner.FileInfo, content []byte) (*File, error) {
	language, err := p.getLanguage(info.Language)
	if err != nil {
		return nil, err
	}

	// Tree-sitter parsers are not thread-safe, so each file gets its own
	tsParser := sitter.NewParser()
	defer tsParser.Close()
	if err := tsParser.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language %s: %w", info.Language, err)
	}

	tree := tsParser.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s", info.Path)
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if rootNode == nil {
		return nil, fmt.Errorf("failed to parse %s: no root node", info.Path)
	}
	if rootNode.HasError() && p.debug {
		// Tree-sitter recovers from syntax errors; the file is still analysed
		fmt.Fprintf(os.Stderr, "[DEBUG] Syntax errors in %s, continuing with the recovered tree\n", info.Path)
	}

	return &File{
		Name:   info.Name,
		Path:   info.Path,
		Source: string(content),
		Root:   convert(rootNode, content),
	}, nil
}
