package gateways

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	domainerrors "github.com/ochairo/licensure/internal/domain/errors"
)

const testSBOM = `{
  "bomFormat": "CycloneDX",
  "specVersion": "1.5",
  "version": 1,
  "metadata": {"timestamp": "2024-01-01T00:00:00Z", "tools": [{"name": "cdxgen"}]},
  "components": [
    {"bom-ref": "pkg:npm/left-pad@1.3.0", "name": "left-pad", "version": "1.3.0", "purl": "pkg:npm/left-pad@1.3.0",
     "licenses": [{"license": {"id": "MIT"}}]}
  ],
  "dependencies": [{"ref": "pkg:npm/left-pad@1.3.0"}]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}

// TestSBOMSource_Load tests loading CycloneDX documents
func TestSBOMSource_Load(t *testing.T) {
	tmpDir := t.TempDir()
	first := writeFile(t, tmpDir, "npm.json", testSBOM)
	second := writeFile(t, tmpDir, "empty.json", `{"bomFormat":"CycloneDX","specVersion":"1.6","version":1}`)

	docs, err := NewSBOMSource(nil).Load(context.Background(), []string{first, second})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("Load() returned %d documents, want 2", len(docs))
	}

	doc := docs[0]
	if len(doc.Components) != 1 || doc.Components[0].Name != "left-pad" {
		t.Errorf("Components = %+v, want left-pad", doc.Components)
	}
	if got := doc.Components[0].LicenseEntries(); len(got) != 1 || got[0].Value != "MIT" {
		t.Errorf("LicenseEntries() = %+v, want MIT", got)
	}
	if doc.Metadata.Timestamp != "2024-01-01T00:00:00Z" {
		t.Errorf("Metadata.Timestamp = %v", doc.Metadata.Timestamp)
	}
	if _, ok := doc.Metadata.Extra["tools"]; !ok {
		t.Error("Metadata.Extra should keep tools")
	}
	if len(docs[1].Components) != 0 {
		t.Errorf("second document Components = %+v, want none", docs[1].Components)
	}
}

// TestSBOMSource_LoadErrors tests that failures name the offending document
func TestSBOMSource_LoadErrors(t *testing.T) {
	tmpDir := t.TempDir()
	valid := writeFile(t, tmpDir, "valid.json", testSBOM)
	broken := writeFile(t, tmpDir, "broken.json", `{"bomFormat": `)
	spdx := writeFile(t, tmpDir, "spdx.json", `{"bomFormat":"SPDX"}`)

	tests := []struct {
		name      string
		paths     []string
		wantIndex int
		wantPath  string
		wantField string
	}{
		{name: "no paths", paths: nil, wantIndex: -1},
		{name: "missing file", paths: []string{valid, filepath.Join(tmpDir, "nope.json")}, wantIndex: 1, wantPath: filepath.Join(tmpDir, "nope.json")},
		{name: "invalid JSON", paths: []string{broken}, wantIndex: 0, wantPath: broken},
		{name: "wrong format", paths: []string{valid, valid, spdx}, wantIndex: 2, wantPath: spdx, wantField: "bomFormat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSBOMSource(nil).Load(context.Background(), tt.paths)
			if err == nil {
				t.Fatal("Load() should return error")
			}

			var inputErr *domainerrors.InputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("Load() error = %T, want *InputError", err)
			}
			if inputErr.Index != tt.wantIndex {
				t.Errorf("Index = %d, want %d", inputErr.Index, tt.wantIndex)
			}
			if inputErr.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", inputErr.Path, tt.wantPath)
			}
			if inputErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", inputErr.Field, tt.wantField)
			}
		})
	}
}

// TestSBOMSource_LoadCancelled tests that a cancelled context stops loading
func TestSBOMSource_LoadCancelled(t *testing.T) {
	path := writeFile(t, t.TempDir(), "sbom.json", testSBOM)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewSBOMSource(nil).Load(ctx, []string{path}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}
