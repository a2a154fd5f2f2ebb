// Package schema generates the JSON schema of the licensing configuration file.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/ochairo/licensure/internal/external-adapters/yaml"
)

// PolicySchemaID identifies the generated schema
const PolicySchemaID = "https://github.com/ochairo/licensure/licensing-config.schema.json"

// GenerateSchema creates a JSON schema from a Go struct
func GenerateSchema(v any) ([]byte, error) {
	return marshal(reflect(v))
}

// GeneratePolicySchema returns the schema of licensing-config.yaml
func GeneratePolicySchema() ([]byte, error) {
	schema := reflect(&yaml.PolicyDocument{})
	schema.ID = jsonschema.ID(PolicySchemaID)
	schema.Title = "licensure licensing configuration"
	return marshal(schema)
}

func reflect(v any) *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	return reflector.Reflect(v)
}

func marshal(schema *jsonschema.Schema) ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return jsonBytes, nil
}
