package services

import (
	"reflect"
	"testing"

	"github.com/ochairo/licensure/internal/domain/entities"
)

func TestBuildInventory_OrderIndependent(t *testing.T) {
	choiceFirst := mustDocument(t, `{"components": [
    {"bom-ref": "a", "name": "a", "version": "1", "licenses": [{"expression": "MIT OR (GPL-2.0 WITH Classpath-exception-2.0)"}]},
    {"bom-ref": "b", "name": "b", "version": "1", "licenses": [{"license": {"id": "MIT"}}]}
  ]}`)
	idFirst := mustDocument(t, `{"components": [
    {"bom-ref": "b", "name": "b", "version": "1", "licenses": [{"license": {"id": "MIT"}}]},
    {"bom-ref": "a", "name": "a", "version": "1", "licenses": [{"expression": "MIT OR (GPL-2.0 WITH Classpath-exception-2.0)"}]}
  ]}`)

	analyzer := NewExpressionAnalyzer(entities.Categorization{})
	want := []string{"GPL-2.0", "MIT"}

	for name, doc := range map[string]*entities.Document{"choice first": choiceFirst, "id first": idFirst} {
		t.Run(name, func(t *testing.T) {
			inv := BuildInventory(doc, analyzer)
			if got := inv.IDs.Elements(); !reflect.DeepEqual(got, want) {
				t.Errorf("IDs = %v, want %v", got, want)
			}
			if inv.Counts["MIT"] != 2 || inv.Counts["GPL-2.0"] != 1 {
				t.Errorf("unexpected counts %v", inv.Counts)
			}
		})
	}
}

func TestBuildInventory_KnownAlternativeCounts(t *testing.T) {
	doc := mustDocument(t, `{"components": [
    {"bom-ref": "a", "name": "a", "version": "1", "licenses": [{"license": {"id": "MIT"}}]},
    {"bom-ref": "b", "name": "b", "version": "1", "licenses": [{"expression": "mit OR (GPL-2.0 WITH Classpath-exception-2.0)"}]},
    {"bom-ref": "c", "name": "c", "version": "1", "licenses": [{"expression": "ISC OR (GPL-2.0 WITH Classpath-exception-2.0)"}]}
  ]}`)

	inv := BuildInventory(doc, NewExpressionAnalyzer(entities.Categorization{}))

	if got, want := inv.IDs.Elements(), []string{"Classpath-exception-2.0", "GPL-2.0", "ISC", "MIT"}; !reflect.DeepEqual(got, want) {
		t.Errorf("IDs = %v, want %v", got, want)
	}
	wantCounts := map[string]int{"MIT": 2, "GPL-2.0": 2, "ISC": 1, "Classpath-exception-2.0": 1}
	if !reflect.DeepEqual(inv.Counts, wantCounts) {
		t.Errorf("Counts = %v, want %v", inv.Counts, wantCounts)
	}
	if inv.Components[1].IDs.Contains("mit") {
		t.Error("known alternative should be counted under its known spelling")
	}
}

func TestBuildInventory_Collections(t *testing.T) {
	doc := mustDocument(t, `{"components": [
    {"bom-ref": "a", "name": "a", "version": "1", "licenses": [{"license": {"id": "MIT", "name": "MIT License"}}]},
    {"bom-ref": "b", "name": "b", "version": "1", "licenses": [{"license": {"expression": " ISC "}}]},
    {"bom-ref": "c", "name": "c", "version": "1", "licenses": [{"expression": "MIT OR Apache-2.0"}]},
    {"bom-ref": "d", "name": "d", "version": "1", "licenses": [{"expression": "Apache-2.0 WITH LLVM-exception"}]},
    {"bom-ref": "e", "name": "e", "version": "1", "licenses": [{"name": "Custom EULA"}]},
    {"bom-ref": "f", "name": "f", "version": "1", "licenses": [{"license": {"name": "Unknown"}}]},
    {"bom-ref": "g", "name": "g", "version": "1"},
    {"bom-ref": "h", "name": "h", "version": "1", "licenses": [{"license": {"id": "MIT"}}, {"expression": "MIT"}]}
  ]}`)

	inv := BuildInventory(doc, NewExpressionAnalyzer(entities.Categorization{}))

	if got, want := inv.IDs.Elements(), []string{"Apache-2.0", "ISC", "LLVM-exception", "MIT"}; !reflect.DeepEqual(got, want) {
		t.Errorf("IDs = %v, want %v", got, want)
	}
	if inv.Counts["MIT"] != 2 {
		t.Errorf("expected MIT counted once per component (2), got %d", inv.Counts["MIT"])
	}
	if got, want := inv.Expressions, []string{" ISC ", "MIT OR Apache-2.0", "Apache-2.0 WITH LLVM-exception", "MIT"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Expressions = %v, want %v", got, want)
	}
	if got, want := inv.Names, []string{"Custom EULA", "Unknown"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}

	kinds := make(map[string]entities.WarningKind)
	for _, w := range inv.Warnings {
		kinds[w.BOMRef] = w.Kind
	}
	wantKinds := map[string]entities.WarningKind{
		"c": entities.WarningUnusualExpression,
		"d": entities.WarningUnusualExpression,
		"e": entities.WarningFreeTextLicense,
		"f": entities.WarningUnknownLicense,
		"g": entities.WarningNoLicense,
	}
	if !reflect.DeepEqual(kinds, wantKinds) {
		t.Errorf("warnings = %v, want %v", kinds, wantKinds)
	}
}
