package services

import (
	"regexp"
	"strings"

	"github.com/ochairo/licensure/internal/domain/entities"
)

// maxListedDependents caps the reverse dependencies shown per flagged component
const maxListedDependents = 10

var (
	majorMinorPattern = regexp.MustCompile(`\d+\.\d+`)
	numberPattern     = regexp.MustCompile(`\d+`)
)

// Categorizer classifies license identifiers into policy tiers
type Categorizer struct {
	categorization entities.Categorization
}

// NewCategorizer creates a categorizer for the given policy tiers
func NewCategorizer(categorization entities.Categorization) *Categorizer {
	return &Categorizer{categorization: categorization}
}

// Classify returns the first tier with a matching entry, in the order
// Allow, ReviewRequired, CounselRequired. Uncategorized otherwise.
func (c *Categorizer) Classify(id string) entities.Tier {
	switch {
	case c.Matches(id, c.categorization.Allow):
		return entities.TierAllow
	case c.Matches(id, c.categorization.ReviewRequired):
		return entities.TierReviewRequired
	case c.Matches(id, c.categorization.CounselRequired):
		return entities.TierCounselRequired
	default:
		return entities.TierUncategorized
	}
}

// Matches reports whether license matches any entry of list, accepting
// version and suffix variants of the same family.
func (c *Categorizer) Matches(license string, list []string) bool {
	for _, allowed := range list {
		if matchesEntry(license, allowed) {
			return true
		}
	}
	return false
}

func matchesEntry(license, allowed string) bool {
	if allowed == "" {
		return false
	}
	if license == allowed || strings.EqualFold(license, allowed) {
		return true
	}

	lowerLicense := strings.ToLower(license)
	lowerAllowed := strings.ToLower(allowed)
	suffixed := strings.Contains(license, "-or-later") || strings.Contains(license, "-only")

	family, _, _ := strings.Cut(lowerAllowed, "-")
	if strings.HasPrefix(lowerLicense, family) {
		if sameToken(majorMinorPattern, license, allowed) || suffixed {
			return true
		}
	}

	switch {
	case strings.HasPrefix(lowerAllowed, "bsd-") && strings.HasPrefix(lowerLicense, "bsd-"):
		return sameToken(numberPattern, license, allowed)
	case strings.HasPrefix(lowerAllowed, "lgpl-") && strings.HasPrefix(lowerLicense, "lgpl-"):
		return sameToken(majorMinorPattern, license, allowed) || strings.Contains(license, "-or-later")
	case strings.HasPrefix(lowerAllowed, "gpl-") && strings.HasPrefix(lowerLicense, "gpl-"),
		strings.HasPrefix(lowerAllowed, "agpl-") && strings.HasPrefix(lowerLicense, "agpl-"):
		return sameToken(majorMinorPattern, license, allowed) || suffixed
	}
	return false
}

// sameToken reports whether both strings carry the same first match of pattern
func sameToken(pattern *regexp.Regexp, a, b string) bool {
	ta := pattern.FindString(a)
	tb := pattern.FindString(b)
	return ta != "" && ta == tb
}

// FlagComponents returns the components requiring counsel regardless of
// their identifiers: no license entries at all, or only the Unknown sentinel.
// Each carries its direct reverse dependencies for impact reporting.
func FlagComponents(doc *entities.Document) []entities.FlaggedComponent {
	names := make(map[string]string, len(doc.Components))
	for _, comp := range doc.Components {
		if comp.BOMRef != "" {
			names[comp.BOMRef] = comp.DisplayName()
		}
	}
	dependents := reverseDependencies(doc.Dependencies)

	var unknown, unlicensed []entities.FlaggedComponent
	for _, comp := range doc.Components {
		reason, flagged := flagReason(comp.LicenseEntries())
		if !flagged {
			continue
		}
		flag := entities.FlaggedComponent{
			Name:       comp.DisplayName(),
			BOMRef:     comp.Ref(),
			Purl:       comp.Purl,
			Ecosystem:  DetectEcosystem(comp),
			Reason:     reason,
			Dependents: []string{},
		}
		refs := dependents[comp.Ref()]
		for i, ref := range refs {
			if i == maxListedDependents {
				flag.MoreDependents = len(refs) - maxListedDependents
				break
			}
			if name, ok := names[ref]; ok {
				ref = name
			}
			flag.Dependents = append(flag.Dependents, ref)
		}
		if reason == entities.FlagUnknownLicense {
			unknown = append(unknown, flag)
		} else {
			unlicensed = append(unlicensed, flag)
		}
	}
	return append(unknown, unlicensed...)
}

func flagReason(entries []entities.LicenseEntry) (entities.FlagReason, bool) {
	if len(entries) == 0 {
		return entities.FlagNoLicense, true
	}
	for _, entry := range entries {
		if !entry.IsUnknown() {
			return "", false
		}
	}
	return entities.FlagUnknownLicense, true
}

// reverseDependencies maps each ref to the refs depending on it, in edge order
func reverseDependencies(deps []entities.Dependency) map[string][]string {
	reverse := make(map[string][]string)
	for _, dep := range deps {
		for _, target := range dep.DependsOn {
			reverse[target] = append(reverse[target], dep.Ref)
		}
	}
	return reverse
}
