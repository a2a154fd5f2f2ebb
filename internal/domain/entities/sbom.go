package entities

import "encoding/json"

// CycloneDX constants used for the merged document
const (
	BOMFormat       = "CycloneDX"
	SpecVersion     = "1.6"
	BOMSchemaURL    = "http://cyclonedx.org/schema/bom-1.6.schema.json"
	UnknownLicense  = "Unknown"
	applicationType = "application"
)

// Document represents a CycloneDX SBOM document
type Document struct {
	Schema       string       `json:"$schema,omitempty"`
	BOMFormat    string       `json:"bomFormat"`
	SpecVersion  string       `json:"specVersion"`
	SerialNumber string       `json:"serialNumber,omitempty"`
	Version      int          `json:"version"`
	Metadata     Metadata     `json:"metadata"`
	Components   []Component  `json:"components"`
	Dependencies []Dependency `json:"dependencies"`
}

// Metadata holds the document metadata. Fields other than timestamp and
// component are carried through untouched.
type Metadata struct {
	Timestamp string
	Component *MetadataComponent
	Extra     map[string]json.RawMessage
}

// MetadataComponent describes the project the SBOM is about
type MetadataComponent struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	BOMRef  string `json:"bom-ref,omitempty"`
}

// NewProjectComponent builds the metadata component for a project identity
func NewProjectComponent(project ProjectIdentity) *MetadataComponent {
	return &MetadataComponent{
		Type:    applicationType,
		Name:    project.Name,
		Version: project.Version,
		BOMRef:  project.Name + "@" + project.Version,
	}
}

// ProjectIdentity names the project a merged SBOM describes
type ProjectIdentity struct {
	Name    string
	Version string
}

// UnmarshalJSON implements json.Unmarshaler
func (m *Metadata) UnmarshalJSON(data []byte) error {
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if raw, ok := fields["timestamp"]; ok {
		if err := json.Unmarshal(raw, &m.Timestamp); err != nil {
			return err
		}
		delete(fields, "timestamp")
	}

	if raw, ok := fields["component"]; ok {
		var component MetadataComponent
		if err := json.Unmarshal(raw, &component); err == nil {
			m.Component = &component
			delete(fields, "component")
		}
	}

	m.Extra = fields
	return nil
}

// MarshalJSON implements json.Marshaler. Keys are emitted in sorted order.
func (m Metadata) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Extra)+2)
	for k, v := range m.Extra {
		out[k] = v
	}
	if m.Timestamp != "" {
		out["timestamp"] = m.Timestamp
	}
	if m.Component != nil {
		out["component"] = m.Component
	}
	return json.Marshal(out)
}

// Clone returns a deep copy of the metadata
func (m Metadata) Clone() Metadata {
	clone := Metadata{Timestamp: m.Timestamp}
	if m.Component != nil {
		c := *m.Component
		clone.Component = &c
	}
	if m.Extra != nil {
		clone.Extra = make(map[string]json.RawMessage, len(m.Extra))
		for k, v := range m.Extra {
			clone.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return clone
}

// Dependency is an edge set in the dependency graph
type Dependency struct {
	Ref       string   `json:"ref"`
	DependsOn []string `json:"dependsOn,omitempty"`
}

// ExternalReference is a CycloneDX external reference
type ExternalReference struct {
	Type    string `json:"type,omitempty"`
	URL     string `json:"url,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// License is the nested license object of a CycloneDX license choice
type License struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name,omitempty"`
	Expression string `json:"expression,omitempty"`
}

// LicenseChoice is one element of a component's licenses array
type LicenseChoice struct {
	License    *License `json:"license,omitempty"`
	Expression string   `json:"expression,omitempty"`
	Name       string   `json:"name,omitempty"`
}
