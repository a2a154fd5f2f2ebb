package services

import (
	"encoding/json"
	"testing"

	"github.com/ochairo/licensure/internal/domain/entities"
)

func mustDocument(t *testing.T, raw string) *entities.Document {
	t.Helper()
	var doc entities.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("failed to parse document: %v", err)
	}
	return &doc
}

func testPolicy() *entities.Policy {
	return &entities.Policy{
		LicensesToInclude: []entities.IncludedLicense{
			{ID: "MIT", DisplayName: "MIT License", Text: "MIT text\r\n\r\n\r\n\r\nend"},
			{ID: "Apache-2.0", DisplayName: "Apache License 2.0"},
			{ID: "GPL-2.0", DisplayName: "GNU GPL v2", Text: "GPL text"},
			{ID: "ISC", DisplayName: "ISC License", Text: "ISC text"},
		},
		LicenseVariations: map[string]string{
			"GPL-2.0-or-later": "GPL-2.0",
			"GPL-2.0-only":     "GPL-2.0",
		},
		Categorization: entities.Categorization{
			Allow:           []string{"MIT", "Apache-2.0", "ISC", "BSD-3-Clause"},
			ReviewRequired:  []string{"LGPL-2.1", "MPL-2.0"},
			CounselRequired: []string{"GPL-2.0", "AGPL-3.0"},
		},
	}
}
