package analyzer

import (
	"strings"

	"github.com/thu-info-community/thu-info-code-scan/internal/parser"
	"github.com/thu-info-community/thu-info-code-scan/internal/registry"
	"github.com/thu-info-community/thu-info-code-scan/internal/syntax"
)

// scanIdentifiers reports calls to the roaming wrappers that log in through
// the unified identity service:
//
//	roam(helper, "id", "<md5>/<path>")
//	roam(helper, "gitlab", ...)
func scanIdentifiers(file *parser.File, reg *registry.Registry, sink Sink) error {
	return syntax.Walk(file.Root, kindCallExpression, func(n syntax.Node) error {
		c, ok := asCall(n)
		if !ok || !reg.IsWrapper(c.callee) {
			return nil
		}
		policy, ok := stringValue(c.arg(1))
		if !ok {
			return nil
		}

		switch policy {
		case reg.IDPolicy():
			id, ok := stringValue(c.arg(2))
			if !ok {
				got := "<missing>"
				if a := c.arg(2); a != nil {
					got = a.Text()
				}
				return newError(MalformedArguments,
					"expected a string literal as the third argument of "+c.callee+", got: "+got,
					locate(file, n))
			}
			return reportIdentifier(file, reg, sink, n, id)
		case reg.GitlabPolicy():
			return reportIdentifier(file, reg, sink, n, reg.GitlabIdentifier())
		}
		return nil
	})
}

func reportIdentifier(file *parser.File, reg *registry.Registry, sink Sink, n syntax.Node, id string) error {
	key, _, _ := strings.Cut(id, "/")
	title, ok := reg.Identifier(key)
	if !ok {
		return newError(UnrecognizedIdentifier, key, locate(file, n))
	}
	return sink.Report(Usage{
		Kind:       KindExternalAuth,
		Descriptor: registry.Descriptor{Title: title, URL: reg.IdentifierURL(id)},
		Location:   locate(file, n),
	})
}

func locate(file *parser.File, n syntax.Node) syntax.Location {
	return syntax.Locate(file.Path, file.Source, n)
}
