package analyzer

import (
	"github.com/thu-info-community/thu-info-code-scan/internal/registry"
	"github.com/thu-info-community/thu-info-code-scan/internal/syntax"
)

// Kind classifies how an external resource is reached
type Kind string

const (
	KindExternalAuth  Kind = "external_auth"  // Through the unified identity login
	KindVPNLogin      Kind = "vpn_login"      // Through the WebVPN login form
	KindPasswordLogin Kind = "password_login" // By sending the user's password directly
)

// Usage is a single touch-point between the library and an external resource
type Usage struct {
	Kind       Kind
	Descriptor registry.Descriptor
	Location   syntax.Location
}

// Sink receives usages as soon as they are found
type Sink interface {
	Report(Usage) error
}

// SinkFunc adapts a function to a Sink
type SinkFunc func(Usage) error

func (f SinkFunc) Report(u Usage) error { return f(u) }
