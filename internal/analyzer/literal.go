package analyzer

import (
	"strconv"
	"strings"

	"github.com/thu-info-community/thu-info-code-scan/internal/syntax"
)

const (
	kindCallExpression = "call_expression"
	kindArguments      = "arguments"
	kindString         = "string"
	kindStringFragment = "string_fragment"
	kindEscapeSequence = "escape_sequence"
)

// stringValue returns the value of a string literal node
func stringValue(n syntax.Node) (string, bool) {
	if n == nil || n.Kind() != kindString {
		return "", false
	}
	var b strings.Builder
	for _, c := range n.Children() {
		switch c.Kind() {
		case kindStringFragment:
			b.WriteString(c.Text())
		case kindEscapeSequence:
			b.WriteString(unescape(c.Text()))
		}
	}
	return b.String(), true
}

// unescape decodes one escape sequence such as \n, \x41 or \u{1F600}
func unescape(seq string) string {
	if strings.HasPrefix(seq, `\u{`) && strings.HasSuffix(seq, "}") {
		if r, err := strconv.ParseInt(seq[3:len(seq)-1], 16, 32); err == nil {
			return string(rune(r))
		}
	}
	if s, err := strconv.Unquote(`"` + seq + `"`); err == nil {
		return s
	}
	// Line continuations produce nothing; \' and \` are the character itself
	switch seq {
	case "\\\n", "\\\r\n", "\\\r", "\\\u2028", "\\\u2029":
		return ""
	case `\0`:
		return "\x00"
	}
	return strings.TrimPrefix(seq, `\`)
}

// call is a call_expression split into callee text and arguments
type call struct {
	node   syntax.Node
	callee string
	args   []syntax.Node
}

// asCall splits a call_expression. Tagged templates have no arguments node
// and yield ok=false.
func asCall(n syntax.Node) (call, bool) {
	children := n.Children()
	if len(children) == 0 {
		return call{}, false
	}
	args := syntax.ChildOfKind(n, kindArguments)
	if args == nil {
		return call{}, false
	}
	return call{
		node:   n,
		callee: children[0].Text(),
		args:   syntax.NamedChildren(args),
	}, true
}

// arg returns the i-th argument or nil
func (c call) arg(i int) syntax.Node {
	if i < len(c.args) {
		return c.args[i]
	}
	return nil
}
