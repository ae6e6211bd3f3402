package analyzer

import (
	"github.com/thu-info-community/thu-info-code-scan/internal/parser"
	"github.com/thu-info-community/thu-info-code-scan/internal/registry"
	"github.com/thu-info-community/thu-info-code-scan/internal/syntax"
)

// scanLogins reports the WebVPN login, uFetch(DO_LOGIN_URL, ...). The first
// argument is compared as written: a renamed or re-exported constant is not
// recognised.
func scanLogins(file *parser.File, reg *registry.Registry, sink Sink) error {
	return syntax.Walk(file.Root, kindCallExpression, func(n syntax.Node) error {
		c, ok := asCall(n)
		if !ok || c.callee != reg.LoginCallee() {
			return nil
		}
		first := c.arg(0)
		if first == nil || first.Text() != reg.LoginArgument() {
			return nil
		}
		return sink.Report(Usage{
			Kind:       KindVPNLogin,
			Descriptor: reg.VPN(),
			Location:   locate(file, n),
		})
	})
}
