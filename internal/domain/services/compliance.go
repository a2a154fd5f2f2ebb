// Package services implements domain business logic and use cases.
package services

import (
	"github.com/ochairo/licensure/internal/domain/entities"
	"github.com/ochairo/licensure/internal/domain/interfaces/services"
)

// complianceService implements ComplianceService with pure business logic
type complianceService struct {
	merger     *MergeEngine
	reporter   *ReportBuilder
	aggregator *NoticeAggregator
}

// NewComplianceService creates a compliance service bound to a policy
func NewComplianceService(policy *entities.Policy, opts ...MergeOption) services.ComplianceService {
	return &complianceService{
		merger:     NewMergeEngine(opts...),
		reporter:   NewReportBuilder(policy),
		aggregator: NewNoticeAggregator(policy),
	}
}

// Merge combines documents into one SBOM
func (s *complianceService) Merge(docs []*entities.Document, project entities.ProjectIdentity) (*entities.Document, error) {
	return s.merger.Merge(docs, project)
}

// Report categorizes the licenses of doc
func (s *complianceService) Report(doc *entities.Document) *entities.LicenseReport {
	return s.reporter.Build(doc)
}

// Notice assembles the third-party license text of doc
func (s *complianceService) Notice(doc *entities.Document) (*entities.ThirdPartyNotice, error) {
	return s.aggregator.Aggregate(doc)
}
