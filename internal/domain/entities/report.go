package entities

// LicenseReport is the machine-consumable result of a license analysis
type LicenseReport struct {
	Summary            ReportSummary      `json:"summary"`
	UniqueLicenseCount int                `json:"uniqueLicenseCount"`
	Licenses           []string           `json:"licenses"`
	Tiers              TierBreakdown      `json:"tiers"`
	CounselComponents  []FlaggedComponent `json:"counselComponents"`
	Warnings           []Warning          `json:"warnings"`
	Expressions        []string           `json:"expressions"`
	Names              []string           `json:"names"`
}

// ReportSummary holds the headline counts of a report
type ReportSummary struct {
	TotalComponents   int `json:"totalComponents"`
	TotalDependencies int `json:"totalDependencies"`
	WithLicenses      int `json:"withLicenses"`
	WithoutLicenses   int `json:"withoutLicenses"`
	UnknownLicenses   int `json:"unknownLicenses"`
	CounselRequired   int `json:"counselRequired"`
}

// TierBreakdown lists the license identifiers found in each tier
type TierBreakdown struct {
	Allow           []LicenseUsage `json:"allow"`
	ReviewRequired  []LicenseUsage `json:"reviewRequired"`
	CounselRequired []LicenseUsage `json:"counselRequired"`
	Uncategorized   []LicenseUsage `json:"uncategorized"`
}

// Add records a usage under its tier
func (b *TierBreakdown) Add(tier Tier, usage LicenseUsage) {
	switch tier {
	case TierAllow:
		b.Allow = append(b.Allow, usage)
	case TierReviewRequired:
		b.ReviewRequired = append(b.ReviewRequired, usage)
	case TierCounselRequired:
		b.CounselRequired = append(b.CounselRequired, usage)
	default:
		b.Uncategorized = append(b.Uncategorized, usage)
	}
}

// LicenseUsage is a license identifier and the number of components using it
type LicenseUsage struct {
	ID         string `json:"id"`
	Components int    `json:"components"`
}

// FlagReason explains why a component needs legal counsel
type FlagReason string

// Flag reasons
const (
	FlagUnknownLicense FlagReason = "Unknown license"
	FlagNoLicense      FlagReason = "No license"
)

// FlaggedComponent is a component requiring counsel regardless of its license ids
type FlaggedComponent struct {
	Name           string     `json:"name"`
	BOMRef         string     `json:"bomRef"`
	Purl           string     `json:"purl,omitempty"`
	Ecosystem      Ecosystem  `json:"ecosystem"`
	Reason         FlagReason `json:"reason"`
	Dependents     []string   `json:"dependents"`
	MoreDependents int        `json:"moreDependents"`
}

// TotalDependents returns the full reverse-dependency count
func (f FlaggedComponent) TotalDependents() int {
	return len(f.Dependents) + f.MoreDependents
}

// WarningKind classifies a non-fatal finding
type WarningKind string

// Warning kinds
const (
	WarningNoLicense         WarningKind = "no-license"
	WarningUnknownLicense    WarningKind = "unknown-license"
	WarningUnusualExpression WarningKind = "unusual-expression"
	WarningFreeTextLicense   WarningKind = "free-text-license"
)

// Warning is a partial-data finding recorded for caller and legal visibility
type Warning struct {
	Kind      WarningKind `json:"kind"`
	Component string      `json:"component"`
	BOMRef    string      `json:"bomRef"`
	Ecosystem Ecosystem   `json:"ecosystem"`
	Detail    string      `json:"detail,omitempty"`
}
