package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/thu-info-community/thu-info-code-scan/internal/analyzer"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

// ColorSupported reports whether f is a terminal that renders ANSI colors
func ColorSupported(f *os.File) bool {
	if !term.IsTerminal(int(f.Fd())) {
		return false
	}
	// On Windows, enable ANSI escape sequences (handled in formatter_windows.go)
	return enableANSI(f)
}

// Labels of the report block
const (
	actionExternalAuth = "通过统一认证接口访问"
	actionLogin        = "登录"
	labelURL           = "访问网址"
	labelLocation      = "代码位置"
)

func action(kind analyzer.Kind) string {
	if kind == analyzer.KindExternalAuth {
		return actionExternalAuth
	}
	return actionLogin
}

// TextReporter writes one block per usage:
//
//	登录 清华大学WebVPN
//	    访问网址 https://webvpn.tsinghua.edu.cn/login
//	    代码位置 /path/to/lib/basics.ts:12:27
//
// Each block ends with a blank line.
type TextReporter struct {
	w     io.Writer
	color bool
}

// NewTextReporter creates a text reporter writing to w
func NewTextReporter(w io.Writer, color bool) *TextReporter {
	return &TextReporter{w: w, color: color}
}

// getColor returns the color code if colors are enabled, empty string otherwise
func (r *TextReporter) getColor(code string) string {
	if r.color {
		return code
	}
	return ""
}

// Report implements analyzer.Sink
func (r *TextReporter) Report(u analyzer.Usage) error {
	_, err := fmt.Fprintf(r.w, "%s %s%s%s\n    %s%s%s %s\n    %s%s%s %s%s%s\n\n",
		action(u.Kind), r.getColor(colorBold), u.Descriptor.Title, r.getColor(colorReset),
		r.getColor(colorGray), labelURL, r.getColor(colorReset), u.Descriptor.URL,
		r.getColor(colorGray), labelLocation, r.getColor(colorReset),
		r.getColor(colorCyan), u.Location, r.getColor(colorReset),
	)
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// JSONUsage is the JSON form of a usage, one object per line
type JSONUsage struct {
	Kind   analyzer.Kind `json:"kind"`
	Title  string        `json:"title"`
	URL    string        `json:"url"`
	File   string        `json:"file"`
	Line   int           `json:"line"`
	Column int           `json:"column"`
}

// JSONReporter writes usages as JSON lines
type JSONReporter struct {
	encoder *json.Encoder
}

// NewJSONReporter creates a JSON lines reporter writing to w
func NewJSONReporter(w io.Writer) *JSONReporter {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	return &JSONReporter{encoder: encoder}
}

// Report implements analyzer.Sink
func (r *JSONReporter) Report(u analyzer.Usage) error {
	err := r.encoder.Encode(JSONUsage{
		Kind:   u.Kind,
		Title:  u.Descriptor.Title,
		URL:    u.Descriptor.URL,
		File:   u.Location.File,
		Line:   u.Location.Line,
		Column: u.Location.Column,
	})
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Counter forwards usages to another sink and counts them by kind
type Counter struct {
	next   analyzer.Sink
	counts map[analyzer.Kind]int
}

// NewCounter wraps next
func NewCounter(next analyzer.Sink) *Counter {
	return &Counter{next: next, counts: make(map[analyzer.Kind]int)}
}

// Report implements analyzer.Sink
func (c *Counter) Report(u analyzer.Usage) error {
	if err := c.next.Report(u); err != nil {
		return err
	}
	c.counts[u.Kind]++
	return nil
}

// Count returns the number of usages of a kind reported so far
func (c *Counter) Count(kind analyzer.Kind) int {
	return c.counts[kind]
}

// Total returns the number of usages reported so far
func (c *Counter) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Summary describes the counts, e.g. "7 usages (5 external auth, 1 vpn login, 1 password login)"
func (c *Counter) Summary() string {
	return fmt.Sprintf("%d usages (%d external auth, %d vpn login, %d password login)",
		c.Total(),
		c.Count(analyzer.KindExternalAuth),
		c.Count(analyzer.KindVPNLogin),
		c.Count(analyzer.KindPasswordLogin),
	)
}

// FormatError formats an error message
func FormatError(err error) string {
	return fmt.Sprintf("Error: %s\n", err)
}
