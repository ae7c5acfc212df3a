package explorer

import (
	"sort"
	"strings"
	"unicode"

	"github.com/insightone/insightone-mcp/pkg/client"
)

// Kind is the form control a parameter renders as.
type Kind string

const (
	KindText Kind = "text"
	KindEnum Kind = "enum"
)

const (
	literalPrefix = "typing.Literal["
	literalSuffix = "]"
	classPrefix   = "<class '"
	classSuffix   = "'>"
)

// Parameter is a normalized endpoint parameter.
type Parameter struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
	// Options is non-empty iff Kind is KindEnum.
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
	Value    string   `json:"value"`
	// Default is the value Reset restores: the catalog default, or the
	// first option of an enum without one.
	Default     string `json:"reset_value,omitempty"`
	DisplayType string `json:"display_type"`
}

// HeaderField is a request header shown alongside the parameters.
type HeaderField struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

// Endpoint is a display-ready endpoint built from a catalog descriptor.
type Endpoint struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Path       string        `json:"path"`
	Method     string        `json:"method"`
	Summary    string        `json:"summary,omitempty"`
	Category   client.Tier   `json:"category"`
	Parameters []Parameter   `json:"parameters"`
	Headers    []HeaderField `json:"headers"`
}

// NormalizeParameter converts a raw descriptor parameter. It never fails:
// type strings that match neither the literal nor the class form are kept
// verbatim as an opaque display type.
func NormalizeParameter(raw client.Parameter) Parameter {
	p := Parameter{
		Name:     raw.Name,
		Kind:     KindText,
		Required: !raw.Default.Truthy(),
	}

	if options, ok := parseLiteral(raw.Type); ok {
		p.Kind = KindEnum
		p.Options = options
		p.DisplayType = "enum"
	} else {
		p.DisplayType = strings.TrimSuffix(strings.TrimPrefix(raw.Type, classPrefix), classSuffix)
	}

	switch {
	case raw.Default.Truthy():
		p.Default = raw.Default.String()
	case p.Kind == KindEnum && len(p.Options) > 0:
		p.Default = p.Options[0]
	}
	p.Value = p.Default

	return p
}

// parseLiteral extracts the options of a typing.Literal[...] annotation.
func parseLiteral(typ string) ([]string, bool) {
	if !strings.HasPrefix(typ, literalPrefix) || !strings.HasSuffix(typ, literalSuffix) ||
		len(typ) < len(literalPrefix)+len(literalSuffix) {
		return nil, false
	}

	inner := typ[len(literalPrefix) : len(typ)-len(literalSuffix)]
	if strings.TrimSpace(inner) == "" {
		return nil, false
	}
	pieces := strings.Split(inner, ",")
	options := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		options = append(options, unquote(strings.TrimSpace(piece)))
	}
	return options, true
}

// unquote strips one pair of matching ' or " quotes.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// EndpointID derives the identifier of an endpoint from its name: lowercased,
// with every run of whitespace replaced by a single underscore. Unicode
// spaces such as U+00A0 count as whitespace.
func EndpointID(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	inSpace := false
	for _, r := range strings.ToLower(name) {
		if isSpace(r) {
			if !inSpace {
				b.WriteByte('_')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

func isSpace(r rune) bool {
	return (unicode.IsSpace(r) && r != '\u0085') || r == '\uFEFF'
}

// NormalizeEndpoint converts a raw descriptor listed under category.
func NormalizeEndpoint(raw client.Endpoint, category client.Tier) Endpoint {
	method := "GET"
	if len(raw.Methods) > 0 && raw.Methods[0] != "" {
		method = strings.ToUpper(raw.Methods[0])
	}

	params := make([]Parameter, 0, len(raw.Parameters))
	for _, rp := range raw.Parameters {
		params = append(params, NormalizeParameter(rp))
	}

	return Endpoint{
		ID:         EndpointID(raw.Name),
		Name:       raw.Name,
		Path:       raw.Path,
		Method:     method,
		Summary:    raw.Summary,
		Category:   category,
		Parameters: params,
		Headers: []HeaderField{{
			Name:        "accept",
			Value:       "application/json",
			Required:    true,
			Description: "Response format",
		}},
	}
}

// Clone returns a deep copy of e.
func (e *Endpoint) Clone() *Endpoint {
	c := *e
	c.Parameters = make([]Parameter, len(e.Parameters))
	for i, p := range e.Parameters {
		p.Options = append([]string(nil), p.Options...)
		c.Parameters[i] = p
	}
	c.Headers = append([]HeaderField(nil), e.Headers...)
	return &c
}

// Reset restores every parameter value to its default.
func (e *Endpoint) Reset() {
	for i := range e.Parameters {
		e.Parameters[i].Value = e.Parameters[i].Default
	}
}

// Param returns the parameter called name.
func (e *Endpoint) Param(name string) (*Parameter, bool) {
	for i := range e.Parameters {
		if e.Parameters[i].Name == name {
			return &e.Parameters[i], true
		}
	}
	return nil, false
}

// SetValues assigns caller-supplied values and returns the sorted names that
// match no parameter. Values are not checked against enum options.
func (e *Endpoint) SetValues(values map[string]string) []string {
	var unknown []string
	for name, v := range values {
		p, ok := e.Param(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		p.Value = v
	}
	sort.Strings(unknown)
	return unknown
}

// MissingRequired lists required parameters whose value is empty.
// The executor does not enforce this; callers may surface it as a hint.
func (e *Endpoint) MissingRequired() []string {
	var missing []string
	for _, p := range e.Parameters {
		if p.Required && p.Value == "" {
			missing = append(missing, p.Name)
		}
	}
	return missing
}
