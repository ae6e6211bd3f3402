package registry

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed registry.yaml
var embedded []byte

// Descriptor names an external resource and the address it is reached at
type Descriptor struct {
	Title string `yaml:"title" json:"title"`
	URL   string `yaml:"url" json:"url"`
}

// document mirrors registry.yaml
type document struct {
	Identifiers struct {
		URLPrefix string            `yaml:"urlPrefix"`
		Gitlab    string            `yaml:"gitlab"`
		Entries   map[string]string `yaml:"entries"`
	} `yaml:"identifiers"`
	VPN       Descriptor            `yaml:"vpn"`
	Passwords map[string]Descriptor `yaml:"passwords"`
	Matchers  struct {
		Wrappers       []string `yaml:"wrappers"`
		IDPolicy       string   `yaml:"idPolicy"`
		GitlabPolicy   string   `yaml:"gitlabPolicy"`
		LoginCallee    string   `yaml:"loginCallee"`
		LoginArgument  string   `yaml:"loginArgument"`
		PasswordMarker string   `yaml:"passwordMarker"`
		Skip           []string `yaml:"skip"`
	} `yaml:"matchers"`
}

// Registry holds the lookup tables and fixed names the matchers consult.
// It is built once by Load or Parse and never modified afterwards, so a
// single *Registry may be shared freely.
type Registry struct {
	urlPrefix   string
	gitlab      string
	identifiers map[string]string
	vpn         Descriptor
	passwords   map[string]Descriptor

	wrappers       map[string]bool
	idPolicy       string
	gitlabPolicy   string
	loginCallee    string
	loginArgument  string
	passwordMarker string
	skip           map[string]bool
}

// Load decodes the registry compiled into the binary
func Load() (*Registry, error) {
	return Parse(embedded)
}

// Parse decodes and validates a registry document
func Parse(data []byte) (*Registry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse registry: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("invalid registry: %w", err)
	}

	r := &Registry{
		urlPrefix:      doc.Identifiers.URLPrefix,
		gitlab:         doc.Identifiers.Gitlab,
		identifiers:    make(map[string]string, len(doc.Identifiers.Entries)),
		vpn:            doc.VPN,
		passwords:      make(map[string]Descriptor, len(doc.Passwords)),
		wrappers:       toSet(doc.Matchers.Wrappers),
		idPolicy:       doc.Matchers.IDPolicy,
		gitlabPolicy:   doc.Matchers.GitlabPolicy,
		loginCallee:    doc.Matchers.LoginCallee,
		loginArgument:  doc.Matchers.LoginArgument,
		passwordMarker: doc.Matchers.PasswordMarker,
		skip:           toSet(doc.Matchers.Skip),
	}
	for k, v := range doc.Identifiers.Entries {
		r.identifiers[k] = v
	}
	for k, v := range doc.Passwords {
		r.passwords[k] = v
	}
	return r, nil
}

func (d *document) validate() error {
	if len(d.Identifiers.Entries) == 0 {
		return fmt.Errorf("no identifiers")
	}
	for key, title := range d.Identifiers.Entries {
		if strings.Contains(key, "/") {
			return fmt.Errorf("identifier %q must not contain '/'", key)
		}
		if strings.TrimSpace(title) == "" {
			return fmt.Errorf("identifier %q has no title", key)
		}
	}
	if _, ok := d.Identifiers.Entries[d.Identifiers.Gitlab]; !ok {
		return fmt.Errorf("gitlab identifier %q is not a registered identifier", d.Identifiers.Gitlab)
	}
	if d.VPN.Title == "" || d.VPN.URL == "" {
		return fmt.Errorf("vpn descriptor needs a title and a url")
	}
	for name, p := range d.Passwords {
		if p.Title == "" || p.URL == "" {
			return fmt.Errorf("password login %q needs a title and a url", name)
		}
	}

	m := d.Matchers
	if len(m.Wrappers) == 0 {
		return fmt.Errorf("no wrapper functions")
	}
	required := map[string]string{
		"idPolicy":       m.IDPolicy,
		"gitlabPolicy":   m.GitlabPolicy,
		"loginCallee":    m.LoginCallee,
		"loginArgument":  m.LoginArgument,
		"passwordMarker": m.PasswordMarker,
	}
	for field, value := range required {
		if value == "" {
			return fmt.Errorf("matchers.%s is empty", field)
		}
	}
	return nil
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// Identifier returns the system registered under an identifier key
func (r *Registry) Identifier(key string) (string, bool) {
	title, ok := r.identifiers[key]
	return title, ok
}

// IdentifierURL is the login address for a full identifier string
func (r *Registry) IdentifierURL(id string) string {
	return r.urlPrefix + id
}

// GitlabIdentifier is the identifier used by the "gitlab" policy
func (r *Registry) GitlabIdentifier() string {
	return r.gitlab
}

// VPN describes the WebVPN login
func (r *Registry) VPN() Descriptor {
	return r.vpn
}

// Password returns the login registered for a declared variable name
func (r *Registry) Password(name string) (Descriptor, bool) {
	d, ok := r.passwords[name]
	return d, ok
}

// IsWrapper reports whether fn is one of the roaming wrapper functions
func (r *Registry) IsWrapper(fn string) bool {
	return r.wrappers[fn]
}

// IDPolicy is the sentinel selecting identifier-based authentication
func (r *Registry) IDPolicy() string { return r.idPolicy }

// GitlabPolicy is the sentinel selecting the code hosting login
func (r *Registry) GitlabPolicy() string { return r.gitlabPolicy }

// LoginCallee is the fetch wrapper used for the WebVPN login
func (r *Registry) LoginCallee() string { return r.loginCallee }

// LoginArgument is the identifier passed to LoginCallee for the WebVPN login
func (r *Registry) LoginArgument() string { return r.loginArgument }

// PasswordMarker is the text that marks a declaration as a password login
func (r *Registry) PasswordMarker() string { return r.passwordMarker }

// Skipped reports whether a file is exempt from the top-level shape check
func (r *Registry) Skipped(fileName string) bool {
	return r.skip[fileName]
}

// IdentifierKeys returns the registered identifier keys, sorted
func (r *Registry) IdentifierKeys() []string {
	keys := make([]string, 0, len(r.identifiers))
	for k := range r.identifiers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PasswordNames returns the registered password login names, sorted
func (r *Registry) PasswordNames() []string {
	names := make([]string, 0, len(r.passwords))
	for k := range r.passwords {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
