package analyzer

import (
	"fmt"
	"os"

	"github.com/thu-info-community/thu-info-code-scan/internal/parser"
	"github.com/thu-info-community/thu-info-code-scan/internal/registry"
	"github.com/thu-info-community/thu-info-code-scan/internal/scanner"
)

// FileParser turns a scanned file into a syntax tree
type FileParser interface {
	ParseFile(scanner.FileInfo) (*parser.File, error)
}

// matcher finds one class of usage in a file
type matcher func(*parser.File, *registry.Registry, Sink) error

// matchers run in this order against every file
var matchers = []struct {
	name string
	fn   matcher
}{
	{"identifier", scanIdentifiers},
	{"login", scanLogins},
	{"password", scanPasswords},
}

// Analyzer runs every matcher over every file and hands each usage to the
// sink as soon as it is found
type Analyzer struct {
	registry *registry.Registry
	sink     Sink
	debug    bool
}

// New creates an analyzer reporting to sink
func New(reg *registry.Registry, sink Sink) *Analyzer {
	return &Analyzer{registry: reg, sink: sink}
}

// SetDebug enables or disables debug logging
func (a *Analyzer) SetDebug(debug bool) {
	a.debug = debug
}

// Run parses and analyses files in order. It stops at the first error;
// usages of earlier files have already been reported by then.
func (a *Analyzer) Run(files []scanner.FileInfo, p FileParser) error {
	for _, info := range files {
		file, err := p.ParseFile(info)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", info.Path, err)
		}
		if err := a.AnalyzeFile(file); err != nil {
			return err
		}
	}
	return nil
}

// AnalyzeFile runs the three matchers against a parsed file
func (a *Analyzer) AnalyzeFile(file *parser.File) error {
	for _, m := range matchers {
		if a.debug {
			fmt.Fprintf(os.Stderr, "[DEBUG] Running %s matcher on %s\n", m.name, file.Path)
		}
		if err := m.fn(file, a.registry, a.sink); err != nil {
			return err
		}
	}
	return nil
}
