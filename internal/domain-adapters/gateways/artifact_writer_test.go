package gateways

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ochairo/licensure/internal/domain/entities"
)

// TestArtifactWriter_WriteJSON tests JSON output with checksum sidecar
func TestArtifactWriter_WriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.json")
	writer := NewArtifactWriter(nil)

	value := map[string]any{"url": "https://example.com/?a=1&b=2", "count": 3}
	artifact, err := writer.WriteJSON(context.Background(), entities.ArtifactReport, path, value)
	if err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	if artifact.Kind != entities.ArtifactReport || artifact.Path != path {
		t.Errorf("artifact = %+v", artifact)
	}
	if len(artifact.SHA256) != 64 {
		t.Errorf("SHA256 length = %d, want 64", len(artifact.SHA256))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"count\": 3") {
		t.Errorf("output is not 2-space indented:\n%s", data)
	}
	if !strings.Contains(string(data), "a=1&b=2") {
		t.Errorf("output escaped HTML characters:\n%s", data)
	}
	if !strings.HasSuffix(string(data), "}\n") {
		t.Error("output should end with a newline")
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Errorf("output is not valid JSON: %v", err)
	}

	if err := NewChecksumVerifier().VerifySidecar(context.Background(), path); err != nil {
		t.Errorf("VerifySidecar() error = %v", err)
	}
	if artifact.ChecksumPath != path+ChecksumExtension {
		t.Errorf("ChecksumPath = %v", artifact.ChecksumPath)
	}
}

// TestArtifactWriter_WriteText tests verbatim text output
func TestArtifactWriter_WriteText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "THIRD_PARTY_LICENSES.txt")
	content := "MIT License\r\n\nPermission is hereby granted\n"

	artifact, err := NewArtifactWriter(nil).WriteText(context.Background(), entities.ArtifactNotice, path, content)
	if err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if string(data) != content {
		t.Errorf("content = %q, want %q", data, content)
	}

	sum, err := NewChecksumVerifier().CalculateChecksum(path)
	if err != nil {
		t.Fatal(err)
	}
	if artifact.SHA256 != sum {
		t.Errorf("SHA256 = %v, want %v", artifact.SHA256, sum)
	}
}

// TestArtifactWriter_Cancelled tests that nothing is written after cancellation
func TestArtifactWriter_Cancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sbom.json")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewArtifactWriter(nil).WriteText(ctx, entities.ArtifactMergedSBOM, path, "{}"); err == nil {
		t.Error("WriteText() should fail on cancelled context")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file should not exist, stat error = %v", err)
	}
}
