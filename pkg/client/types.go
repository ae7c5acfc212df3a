package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Tier is a subscription level. Every catalog endpoint belongs to exactly one.
type Tier string

const (
	TierBasique    Tier = "basique"
	TierPro        Tier = "pro"
	TierEntreprise Tier = "entreprise"
)

// Tiers lists the subscription levels in catalog order.
var Tiers = []Tier{TierBasique, TierPro, TierEntreprise}

// ParseTier returns the tier named s.
func ParseTier(s string) (Tier, bool) {
	for _, t := range Tiers {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Catalog is the payload of the catalog route: endpoint descriptors grouped by tier.
type Catalog struct {
	Basique    []Endpoint `json:"basique"`
	Pro        []Endpoint `json:"pro"`
	Entreprise []Endpoint `json:"entreprise"`
}

// Tier returns the descriptors listed under t.
func (c *Catalog) Tier(t Tier) []Endpoint {
	switch t {
	case TierBasique:
		return c.Basique
	case TierPro:
		return c.Pro
	case TierEntreprise:
		return c.Entreprise
	}
	return nil
}

// Len returns the number of descriptors across all tiers.
func (c *Catalog) Len() int {
	return len(c.Basique) + len(c.Pro) + len(c.Entreprise)
}

// Endpoint is an endpoint descriptor as served by the catalog.
type Endpoint struct {
	Name       string      `json:"name"`
	Path       string      `json:"path"`
	Methods    []string    `json:"methods"`
	Summary    string      `json:"summary,omitempty"`
	Parameters []Parameter `json:"parameters,omitempty"`
}

// Parameter is a raw parameter descriptor. Type uses Python annotation
// syntax, e.g. "<class 'str'>" or "typing.Literal['json','csv']".
type Parameter struct {
	Name    string       `json:"name"`
	Type    string       `json:"type"`
	Default DefaultValue `json:"default"`
}

// DefaultValue is a parameter default of any JSON scalar type.
//
// The catalog treats null, "", 0 and false as "no default". Truthy reports
// that distinction; String returns the value as it is sent in a query string.
type DefaultValue struct {
	text   string
	truthy bool
	set    bool
}

// NewDefault returns a string default.
func NewDefault(s string) DefaultValue {
	return DefaultValue{text: s, truthy: s != "", set: true}
}

// String returns the textual form of the default.
func (d DefaultValue) String() string {
	return d.text
}

// Truthy reports whether the default counts as present.
func (d DefaultValue) Truthy() bool {
	return d.truthy
}

// IsSet reports whether the descriptor carried a non-null default key.
func (d DefaultValue) IsSet() bool {
	return d.set
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DefaultValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*d = DefaultValue{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding default: %w", err)
		}
		*d = NewDefault(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("decoding default: %w", err)
		}
		*d = DefaultValue{text: strconv.FormatBool(b), truthy: b, set: true}
	case '{', '[':
		// Objects and arrays are always truthy; keep their JSON text.
		*d = DefaultValue{text: string(data), truthy: true, set: true}
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("decoding default: %w", err)
		}
		f, err := n.Float64()
		if err != nil {
			return fmt.Errorf("decoding default: %w", err)
		}
		*d = DefaultValue{text: n.String(), truthy: f != 0, set: true}
	}
	return nil
}

// MarshalJSON implements json.Marshaler. Unset defaults encode as null.
func (d DefaultValue) MarshalJSON() ([]byte, error) {
	if !d.set {
		return []byte("null"), nil
	}
	return json.Marshal(d.text)
}

// APIError represents an error response from the InsightOne API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("insightone API error %d: %s", e.StatusCode, e.Message)
}

// errorResponse covers both error envelopes the API produces.
type errorResponse struct {
	Error  string `json:"error"`
	Detail any    `json:"detail"`
}

func (r errorResponse) message() string {
	if r.Error != "" {
		return r.Error
	}
	switch d := r.Detail.(type) {
	case nil:
		return ""
	case string:
		return d
	default:
		b, err := json.Marshal(d)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
