package entities

import "encoding/json"

// Component represents a software component in the SBOM.
// The raw JSON object is kept so that a merged document reproduces the
// component exactly as it was read.
type Component struct {
	BOMRef             string              `json:"bom-ref,omitempty"`
	Type               string              `json:"type,omitempty"`
	Group              string              `json:"group,omitempty"`
	Name               string              `json:"name"`
	Version            string              `json:"version,omitempty"`
	Purl               string              `json:"purl,omitempty"`
	Licenses           []LicenseChoice     `json:"licenses,omitempty"`
	ExternalReferences []ExternalReference `json:"externalReferences,omitempty"`

	raw json.RawMessage
}

// componentFields avoids recursion in the JSON methods
type componentFields Component

// UnmarshalJSON implements json.Unmarshaler
func (c *Component) UnmarshalJSON(data []byte) error {
	var fields componentFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*c = Component(fields)
	c.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON implements json.Marshaler
func (c Component) MarshalJSON() ([]byte, error) {
	if len(c.raw) > 0 {
		return c.raw, nil
	}
	return json.Marshal(componentFields(c))
}

// Key returns the identity key used to deduplicate components:
// the purl when present, otherwise group/name@version.
func (c Component) Key() string {
	if c.Purl != "" {
		return c.Purl
	}
	return c.Group + "/" + c.Name + "@" + c.Version
}

// DisplayName returns group/name@version, omitting the group when empty
func (c Component) DisplayName() string {
	name := c.Name + "@" + c.Version
	if c.Group != "" {
		return c.Group + "/" + name
	}
	return name
}

// Ref returns the reference used by dependency edges: the bom-ref when set,
// otherwise the display name.
func (c Component) Ref() string {
	if c.BOMRef != "" {
		return c.BOMRef
	}
	return c.DisplayName()
}

// LicenseEntries flattens the CycloneDX license choices into tagged entries
func (c Component) LicenseEntries() []LicenseEntry {
	entries := make([]LicenseEntry, 0, len(c.Licenses))
	for _, choice := range c.Licenses {
		entries = append(entries, choice.Entries()...)
	}
	return entries
}

// Entries converts a single license choice into tagged entries.
// A nested license object may carry an id, an expression and a name at
// once; the name only counts when there is no id.
func (lc LicenseChoice) Entries() []LicenseEntry {
	if lc.License != nil {
		entries := make([]LicenseEntry, 0, 2)
		if lc.License.ID != "" {
			entries = append(entries, LicenseEntry{Kind: LicenseKindID, Value: lc.License.ID})
		}
		if lc.License.Expression != "" {
			entries = append(entries, LicenseEntry{Kind: LicenseKindExpression, Value: lc.License.Expression})
		}
		if lc.License.Name != "" && lc.License.ID == "" {
			entries = append(entries, LicenseEntry{Kind: LicenseKindName, Value: lc.License.Name})
		}
		return entries
	}
	if lc.Expression != "" {
		return []LicenseEntry{{Kind: LicenseKindExpression, Value: lc.Expression}}
	}
	if lc.Name != "" {
		return []LicenseEntry{{Kind: LicenseKindName, Value: lc.Name}}
	}
	return nil
}

// LicenseKind tags which arm of a LicenseEntry is populated
type LicenseKind string

// License entry kinds
const (
	LicenseKindID         LicenseKind = "id"
	LicenseKindExpression LicenseKind = "expression"
	LicenseKindName       LicenseKind = "name"
)

// LicenseEntry is a single license statement of a component
type LicenseEntry struct {
	Kind  LicenseKind
	Value string
}

// IsUnknown reports whether the entry is the free-text "Unknown" sentinel
func (e LicenseEntry) IsUnknown() bool {
	return e.Kind == LicenseKindName && e.Value == UnknownLicense
}
