// Package yaml provides YAML-based licensing policy parsing and repository implementations.
package yaml

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ochairo/licensure/internal/domain/entities"
	domainerrors "github.com/ochairo/licensure/internal/domain/errors"
)

// PolicyDocument is the raw licensing configuration file.
// JSON is a subset of YAML, so the same structure parses both.
type PolicyDocument struct {
	LicensesToInclude []IncludedLicenseDocument `yaml:"licensesToInclude" json:"licensesToInclude" validate:"required,dive" jsonschema:"required,description=Licenses rendered into the third-party notice in this order"`
	LicenseVariations map[string]string         `yaml:"licenseVariations" json:"licenseVariations,omitempty" validate:"omitempty,dive,keys,required,endkeys,required" jsonschema:"description=Alias identifier to base identifier"`
	Categorization    *CategorizationDocument   `yaml:"categorization" json:"categorization" validate:"required" jsonschema:"required"`
}

// IncludedLicenseDocument is one licensesToInclude entry
type IncludedLicenseDocument struct {
	ID          string `yaml:"id" json:"id" validate:"required" jsonschema:"required"`
	DisplayName string `yaml:"displayName" json:"displayName,omitempty"`
	Text        string `yaml:"text" json:"text,omitempty" jsonschema:"description=Full license text; a placeholder is rendered when empty"`
}

// CategorizationDocument holds the three policy tiers
type CategorizationDocument struct {
	AllowLicenses           []string `yaml:"allowLicenses" json:"allowLicenses,omitempty" validate:"dive,required"`
	ReviewRequiredLicenses  []string `yaml:"reviewRequiredLicenses" json:"reviewRequiredLicenses,omitempty" validate:"dive,required"`
	CounselRequiredLicenses []string `yaml:"counselRequiredLicenses" json:"counselRequiredLicenses,omitempty" validate:"dive,required"`
}

// validate is the package-wide validator instance
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their configuration key
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// PolicyParser parses licensing configuration files
type PolicyParser struct{}

// NewPolicyParser creates a new policy parser
func NewPolicyParser() *PolicyParser {
	return &PolicyParser{}
}

// ParseFile parses a licensing configuration file into a Policy entity
func (p *PolicyParser) ParseFile(filePath string) (*entities.Policy, error) {
	//nolint:gosec // G304: filePath is the user-selected licensing configuration
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML or JSON bytes into a Policy entity
func (p *PolicyParser) Parse(data []byte) (*entities.Policy, error) {
	var doc PolicyDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &domainerrors.ConfigError{Err: fmt.Errorf("failed to parse YAML: %w", err)}
	}

	if err := validate.Struct(&doc); err != nil {
		return nil, toConfigError(err)
	}

	return &entities.Policy{
		LicensesToInclude: convertIncluded(doc.LicensesToInclude),
		LicenseVariations: convertVariations(doc.LicenseVariations),
		Categorization:    convertCategorization(doc.Categorization),
	}, nil
}

// toConfigError reports the first failed field
func toConfigError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &domainerrors.ConfigError{Err: err}
	}

	fe := verrs[0]
	// Drop the root type name from the namespace
	_, field, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		field = fe.Field()
	}
	return &domainerrors.ConfigError{
		Field: field,
		Err:   fmt.Errorf("failed on the %q rule", fe.Tag()),
	}
}

func convertIncluded(docs []IncludedLicenseDocument) []entities.IncludedLicense {
	included := make([]entities.IncludedLicense, 0, len(docs))
	for _, d := range docs {
		included = append(included, entities.IncludedLicense{
			ID:          strings.TrimSpace(d.ID),
			DisplayName: d.DisplayName,
			Text:        d.Text,
		})
	}
	return included
}

func convertVariations(variations map[string]string) map[string]string {
	out := make(map[string]string, len(variations))
	for alias, base := range variations {
		out[alias] = base
	}
	return out
}

func convertCategorization(doc *CategorizationDocument) entities.Categorization {
	return entities.Categorization{
		Allow:           doc.AllowLicenses,
		ReviewRequired:  doc.ReviewRequiredLicenses,
		CounselRequired: doc.CounselRequiredLicenses,
	}
}
