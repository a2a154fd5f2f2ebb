package services

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ochairo/licensure/internal/domain/entities"
	domainerrors "github.com/ochairo/licensure/internal/domain/errors"
)

var (
	blankLinesPattern   = regexp.MustCompile(`\n{3,}`)
	splitVersionPattern = regexp.MustCompile(`(\d)\s+(\d)`)
	lineTerminators     = strings.NewReplacer("\u2028", "\n", "\u2029", "\n", "\r\n", "\n", "\r", "\n")
	noticeBanner        = strings.Repeat("=", 72)
)

// NoticeAggregator assembles the third-party license text of a document
type NoticeAggregator struct {
	policy     *entities.Policy
	analyzer   *ExpressionAnalyzer
	aliasOrder []string
}

// NewNoticeAggregator creates an aggregator for a policy
func NewNoticeAggregator(policy *entities.Policy) *NoticeAggregator {
	aliases := make([]string, 0, len(policy.LicenseVariations))
	for alias := range policy.LicenseVariations {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)

	return &NoticeAggregator{
		policy:     policy,
		analyzer:   NewExpressionAnalyzer(policy.Categorization),
		aliasOrder: aliases,
	}
}

// Aggregate renders one numbered section per observed license variant that
// the policy includes, and reports the identifiers it could not place.
func (a *NoticeAggregator) Aggregate(doc *entities.Document) (*entities.ThirdPartyNotice, error) {
	if doc == nil {
		return nil, &domainerrors.InputError{Index: -1, Err: fmt.Errorf("merged document is nil")}
	}

	inv := BuildInventory(doc, a.analyzer)
	notice := &entities.ThirdPartyNotice{
		Missing:  []string{},
		Unused:   []string{},
		Sections: []entities.NoticeSection{},
		Usage:    make(map[string]int, len(inv.Counts)),
	}

	groups := make(map[int][]string)
	for _, id := range inv.IDs.Elements() {
		notice.Usage[id] = inv.Counts[id]
		idx := a.includeIndex(id)
		if idx < 0 {
			notice.Missing = append(notice.Missing, id)
			continue
		}
		groups[idx] = append(groups[idx], id)
	}

	for idx, included := range a.policy.LicensesToInclude {
		for _, id := range groups[idx] {
			name := FormatDisplayName(id)
			notice.Sections = append(notice.Sections, entities.NoticeSection{
				Number:      len(notice.Sections) + 1,
				ID:          id,
				BaseID:      included.ID,
				DisplayName: name,
				Placeholder: included.Text == "",
			})
		}
		if _, found := lookupFold(inv.IDs, included.ID); !found {
			notice.Unused = append(notice.Unused, included.ID)
		}
	}

	notice.Document = a.render(notice)
	return notice, nil
}

// ResolveAlias maps an identifier through the variation table: exact key
// first, then the first case-insensitive key in sorted order.
func (a *NoticeAggregator) ResolveAlias(id string) string {
	if base, ok := a.policy.LicenseVariations[id]; ok {
		return base
	}
	for _, alias := range a.aliasOrder {
		if strings.EqualFold(alias, id) {
			return a.policy.LicenseVariations[alias]
		}
	}
	return id
}

// includeIndex returns the policy entry an identifier is rendered under, or -1.
// An identifier listed in the policy itself is never shadowed by an alias.
func (a *NoticeAggregator) includeIndex(id string) int {
	if idx := a.findInclude(a.ResolveAlias(id)); idx >= 0 {
		return idx
	}
	return a.findInclude(id)
}

func (a *NoticeAggregator) findInclude(id string) int {
	for i, included := range a.policy.LicensesToInclude {
		if strings.EqualFold(included.ID, id) {
			return i
		}
	}
	return -1
}

func (a *NoticeAggregator) render(notice *entities.ThirdPartyNotice) string {
	var b strings.Builder

	writeBanner(&b, "LICENSE-THIRD-PARTY.txt")
	b.WriteString("This file includes the full text of open-source licenses that apply to certain " +
		"third-party components used or distributed with this project. All respective copyrights " +
		"are retained by their owners.\n\n")

	if len(notice.Missing) > 0 {
		writeBanner(&b, "⚠️  WARNING: MISSING LICENSES")
		b.WriteString("The following licenses were found in the project dependencies but are NOT " +
			"included in this file. Their full texts need to be added:\n\n")
		for _, id := range notice.Missing {
			fmt.Fprintf(&b, "  - %s - used by %d component(s)\n", id, notice.Usage[id])
		}
		b.WriteString("\nPlease add these licenses to the licensesToInclude section of the licensing " +
			"configuration with their full license texts.\n\n")
	}

	texts := make(map[string]string, len(a.policy.LicensesToInclude))
	for _, included := range a.policy.LicensesToInclude {
		if included.Text != "" {
			texts[included.ID] = NormalizeText(included.Text)
		}
	}

	for _, section := range notice.Sections {
		writeBanner(&b, fmt.Sprintf("%d. %s", section.Number, section.DisplayName))
		text, ok := texts[section.BaseID]
		if !ok {
			text = placeholderText(section.DisplayName)
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}

	b.WriteString(noticeBanner + "\nEND OF LICENSE-THIRD-PARTY.txt\n" + noticeBanner + "\n")
	return lineTerminators.Replace(b.String())
}

func writeBanner(b *strings.Builder, title string) {
	b.WriteString(noticeBanner + "\n" + title + "\n" + noticeBanner + "\n\n")
}

func placeholderText(displayName string) string {
	return "This license applies to components using the " + displayName +
		". For the full license text, please refer to the official license documentation."
}

// NormalizeText converts every line terminator variant to \n and collapses
// runs of blank lines to one.
func NormalizeText(text string) string {
	return blankLinesPattern.ReplaceAllString(lineTerminators.Replace(text), "\n\n")
}

// FormatDisplayName turns a license identifier into a readable name,
// e.g. LGPL-3.0-or-later becomes "LGPL 3.0 or later".
func FormatDisplayName(id string) string {
	name := strings.ReplaceAll(id, "-or-later", " or later")
	name = strings.ReplaceAll(name, "-only", " only")
	name = strings.ReplaceAll(name, "-", " ")
	name = splitVersionPattern.ReplaceAllString(name, "$1.$2")
	return strings.Join(strings.Fields(name), " ")
}
