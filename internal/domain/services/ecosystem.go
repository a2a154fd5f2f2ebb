package services

import (
	"strings"

	"github.com/package-url/packageurl-go"

	"github.com/ochairo/licensure/internal/domain/entities"
)

const localPackageSource = "PackageSource: Local"

// DetectEcosystem infers the ecosystem of a component.
// A purl decides on its own; without one the bom-ref shape and external
// reference hints are consulted, and anything else is Unknown.
func DetectEcosystem(c entities.Component) entities.Ecosystem {
	if c.Purl != "" {
		purl, err := packageurl.FromString(c.Purl)
		if err != nil {
			return entities.EcosystemUnknown
		}
		switch purl.Type {
		case packageurl.TypeNPM:
			return entities.EcosystemNPM
		case packageurl.TypeCargo:
			return entities.EcosystemRust
		case packageurl.TypePyPi:
			return entities.EcosystemPython
		default:
			return entities.EcosystemUnknown
		}
	}

	// pip style name==version refs
	if strings.Contains(c.BOMRef, "==") && !strings.Contains(c.BOMRef, "@") {
		return entities.EcosystemPython
	}

	for _, ref := range c.ExternalReferences {
		if ref.URL == "" {
			continue
		}
		if strings.Contains(ref.URL, "/python/") || strings.Contains(ref.URL, "pypi") || ref.Comment == localPackageSource {
			return entities.EcosystemPython
		}
	}
	return entities.EcosystemUnknown
}
