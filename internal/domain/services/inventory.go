package services

import (
	"fmt"
	"strings"

	"bitbucket.org/creachadair/stringset"

	"github.com/ochairo/licensure/internal/domain/entities"
)

// Inventory is every license statement found in a document.
// It is built in two passes so the result does not depend on component
// order: bare identifiers first, then AND/WITH expressions decomposed
// against the complete first-pass set.
type Inventory struct {
	IDs         stringset.Set
	Counts      map[string]int // distinct components per identifier
	Expressions []string       // distinct, first-seen order
	Names       []string       // distinct free-text names, first-seen order
	Components  []ComponentLicenses
	Warnings    []entities.Warning
}

// ComponentLicenses holds the license data of a single component
type ComponentLicenses struct {
	Component entities.Component
	Ecosystem entities.Ecosystem
	Entries   []entities.LicenseEntry
	IDs       stringset.Set
}

// HasUnknown reports whether any entry is the Unknown sentinel
func (c ComponentLicenses) HasUnknown() bool {
	for _, entry := range c.Entries {
		if entry.IsUnknown() {
			return true
		}
	}
	return false
}

// BuildInventory enumerates the license identifiers of every component
func BuildInventory(doc *entities.Document, analyzer *ExpressionAnalyzer) *Inventory {
	inv := &Inventory{
		IDs:         stringset.New(),
		Counts:      make(map[string]int),
		Expressions: []string{},
		Names:       []string{},
		Warnings:    []entities.Warning{},
	}
	seenExpressions := stringset.New()
	seenNames := stringset.New()

	for _, comp := range doc.Components {
		entry := ComponentLicenses{
			Component: comp,
			Ecosystem: DetectEcosystem(comp),
			Entries:   comp.LicenseEntries(),
			IDs:       stringset.New(),
		}
		for _, le := range entry.Entries {
			switch le.Kind {
			case entities.LicenseKindID:
				entry.IDs.Add(le.Value)
			case entities.LicenseKindExpression:
				if seenExpressions.Add(le.Value) {
					inv.Expressions = append(inv.Expressions, le.Value)
				}
				if analyzer.IsSingleID(le.Value) {
					entry.IDs.Add(strings.TrimSpace(le.Value))
				}
			case entities.LicenseKindName:
				if seenNames.Add(le.Value) {
					inv.Names = append(inv.Names, le.Value)
				}
			}
		}
		inv.IDs.Add(entry.IDs.Elements()...)
		inv.Components = append(inv.Components, entry)
	}

	known := inv.IDs.Clone()
	for i := range inv.Components {
		entry := &inv.Components[i]
		for _, le := range entry.Entries {
			if le.Kind != entities.LicenseKindExpression || !analyzer.HasAndOrWith(le.Value) {
				continue
			}
			extracted := analyzer.ExtractIDs(le.Value, known)
			entry.IDs.Add(extracted.Elements()...)
			inv.IDs.Add(extracted.Elements()...)
			// the component still uses the alternatives known from elsewhere
			entry.IDs.Add(analyzer.KnownAlternatives(le.Value, known)...)
		}
	}

	for _, entry := range inv.Components {
		for id := range entry.IDs {
			inv.Counts[id]++
		}
		inv.Warnings = append(inv.Warnings, componentWarnings(entry, analyzer)...)
	}
	return inv
}

func componentWarnings(entry ComponentLicenses, analyzer *ExpressionAnalyzer) []entities.Warning {
	base := entities.Warning{
		Component: entry.Component.DisplayName(),
		BOMRef:    entry.Component.Ref(),
		Ecosystem: entry.Ecosystem,
	}
	if len(entry.Entries) == 0 {
		w := base
		w.Kind = entities.WarningNoLicense
		if n := len(entry.Component.Licenses); n > 0 {
			w.Detail = fmt.Sprintf("%d license choice(s) without id, expression or name", n)
		}
		return []entities.Warning{w}
	}

	var warnings []entities.Warning
	for _, le := range entry.Entries {
		w := base
		switch {
		case le.IsUnknown():
			w.Kind = entities.WarningUnknownLicense
		case le.Kind == entities.LicenseKindName:
			w.Kind = entities.WarningFreeTextLicense
			w.Detail = le.Value
		case le.Kind == entities.LicenseKindExpression && !analyzer.IsSingleID(le.Value):
			w.Kind = entities.WarningUnusualExpression
			w.Detail = le.Value
		default:
			continue
		}
		warnings = append(warnings, w)
	}
	return warnings
}
