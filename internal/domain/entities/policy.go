package entities

// Policy is the license policy a compliance run is evaluated against
type Policy struct {
	LicensesToInclude []IncludedLicense
	LicenseVariations map[string]string
	Categorization    Categorization
}

// IncludedLicense is a license rendered into the third-party notice
type IncludedLicense struct {
	ID          string
	DisplayName string // Optional, used when reporting unused entries
	Text        string // Optional, a placeholder is rendered when empty
}

// Categorization holds the three policy tiers. The lists are disjoint by intent.
type Categorization struct {
	Allow           []string
	ReviewRequired  []string
	CounselRequired []string
}

// All returns every configured identifier across the tiers
func (c Categorization) All() []string {
	all := make([]string, 0, len(c.Allow)+len(c.ReviewRequired)+len(c.CounselRequired))
	all = append(all, c.Allow...)
	all = append(all, c.ReviewRequired...)
	all = append(all, c.CounselRequired...)
	return all
}

// Tier is the policy tier a license identifier is classified into
type Tier string

// Policy tiers, in matching precedence order
const (
	TierAllow           Tier = "allow"
	TierReviewRequired  Tier = "review-required"
	TierCounselRequired Tier = "counsel-required"
	TierUncategorized   Tier = "uncategorized"
)
