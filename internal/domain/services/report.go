package services

import "github.com/ochairo/licensure/internal/domain/entities"

// ReportBuilder produces the categorized license report of a document
type ReportBuilder struct {
	analyzer    *ExpressionAnalyzer
	categorizer *Categorizer
}

// NewReportBuilder creates a report builder for a policy
func NewReportBuilder(policy *entities.Policy) *ReportBuilder {
	return &ReportBuilder{
		analyzer:    NewExpressionAnalyzer(policy.Categorization),
		categorizer: NewCategorizer(policy.Categorization),
	}
}

// Build analyzes every component of doc against the policy tiers
func (b *ReportBuilder) Build(doc *entities.Document) *entities.LicenseReport {
	inv := BuildInventory(doc, b.analyzer)
	flagged := FlagComponents(doc)

	report := &entities.LicenseReport{
		UniqueLicenseCount: inv.IDs.Len(),
		Licenses:           inv.IDs.Elements(),
		CounselComponents:  flagged,
		Warnings:           inv.Warnings,
		Expressions:        inv.Expressions,
		Names:              inv.Names,
	}

	summary := entities.ReportSummary{
		TotalComponents:   len(doc.Components),
		TotalDependencies: len(doc.Dependencies),
		CounselRequired:   len(flagged),
	}
	for _, comp := range inv.Components {
		if len(comp.Entries) == 0 {
			summary.WithoutLicenses++
		}
		if comp.HasUnknown() {
			summary.UnknownLicenses++
		}
	}
	summary.WithLicenses = summary.TotalComponents - summary.WithoutLicenses
	report.Summary = summary

	tiers := entities.TierBreakdown{
		Allow:           []entities.LicenseUsage{},
		ReviewRequired:  []entities.LicenseUsage{},
		CounselRequired: []entities.LicenseUsage{},
		Uncategorized:   []entities.LicenseUsage{},
	}
	for _, id := range report.Licenses {
		tiers.Add(b.categorizer.Classify(id), entities.LicenseUsage{ID: id, Components: inv.Counts[id]})
	}
	report.Tiers = tiers
	return report
}
