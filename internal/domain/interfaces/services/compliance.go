// Package services defines interfaces for domain service contracts.
package services

import "github.com/ochairo/licensure/internal/domain/entities"

// ComplianceService defines the license compliance operations over SBOM documents
type ComplianceService interface {
	// Merge combines documents into one SBOM describing project
	Merge(docs []*entities.Document, project entities.ProjectIdentity) (*entities.Document, error)

	// Report categorizes the licenses of a merged document
	Report(doc *entities.Document) *entities.LicenseReport

	// Notice assembles the third-party license text of a merged document
	Notice(doc *entities.Document) (*entities.ThirdPartyNotice, error)
}
