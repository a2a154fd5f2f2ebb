package gateways

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestCalculateChecksum tests SHA256 checksum calculation
func TestCalculateChecksum(t *testing.T) {
	tests := []struct {
		name         string
		content      []byte
		wantChecksum string
	}{
		{
			name:         "empty file",
			content:      []byte(""),
			wantChecksum: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:         "simple content",
			content:      []byte("Hello, World!"),
			wantChecksum: "dffd6021bb2bd5b0af676290809ec3a53191dd81c7f70a4b28688a362182986f",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFile := filepath.Join(t.TempDir(), "THIRD_PARTY_LICENSES.txt")
			if err := os.WriteFile(testFile, tt.content, 0600); err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}

			checksum, err := NewChecksumVerifier().CalculateChecksum(testFile)
			if err != nil {
				t.Fatalf("CalculateChecksum() error = %v", err)
			}
			if checksum != tt.wantChecksum {
				t.Errorf("CalculateChecksum() = %v, want %v", checksum, tt.wantChecksum)
			}
		})
	}
}

// TestChecksumSidecar tests writing and verifying .sha256 sidecars
func TestChecksumSidecar(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "sbom.json")
	if err := os.WriteFile(testFile, []byte(`{"bomFormat":"CycloneDX"}`), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	verifier := NewChecksumVerifier()
	sum, err := verifier.CalculateChecksum(testFile)
	if err != nil {
		t.Fatalf("CalculateChecksum() error = %v", err)
	}

	checksumPath, err := verifier.WriteSidecar(testFile, sum)
	if err != nil {
		t.Fatalf("WriteSidecar() error = %v", err)
	}
	if checksumPath != testFile+ChecksumExtension {
		t.Errorf("WriteSidecar() path = %v, want %v", checksumPath, testFile+ChecksumExtension)
	}

	data, err := os.ReadFile(checksumPath)
	if err != nil {
		t.Fatalf("Failed to read sidecar: %v", err)
	}
	if want := sum + "  sbom.json\n"; string(data) != want {
		t.Errorf("sidecar content = %q, want %q", string(data), want)
	}

	t.Run("valid sidecar", func(t *testing.T) {
		if err := verifier.VerifySidecar(context.Background(), testFile); err != nil {
			t.Errorf("VerifySidecar() error = %v", err)
		}
	})

	t.Run("uppercase checksum", func(t *testing.T) {
		if err := verifier.VerifyChecksum(context.Background(), testFile, strings.ToUpper(sum)); err != nil {
			t.Errorf("VerifyChecksum() error = %v", err)
		}
	})

	t.Run("modified file", func(t *testing.T) {
		if err := os.WriteFile(testFile, []byte(`{"bomFormat":"SPDX"}`), 0600); err != nil {
			t.Fatal(err)
		}
		err := verifier.VerifySidecar(context.Background(), testFile)
		if err == nil || !strings.Contains(err.Error(), "checksum mismatch") {
			t.Errorf("VerifySidecar() error = %v, want checksum mismatch", err)
		}
	})

	t.Run("missing sidecar", func(t *testing.T) {
		if err := verifier.VerifySidecar(context.Background(), filepath.Join(tmpDir, "other.json")); err == nil {
			t.Error("VerifySidecar() without sidecar should return error")
		}
	})

	t.Run("empty sidecar", func(t *testing.T) {
		empty := filepath.Join(tmpDir, "empty.json")
		if err := os.WriteFile(empty, []byte("{}"), 0600); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(empty+ChecksumExtension, []byte("  \n"), 0600); err != nil {
			t.Fatal(err)
		}
		if err := verifier.VerifySidecar(context.Background(), empty); err == nil {
			t.Error("VerifySidecar() with empty sidecar should return error")
		}
	})
}

// TestVerifyChecksum_NonExistentFile tests verification of a missing file
func TestVerifyChecksum_NonExistentFile(t *testing.T) {
	err := NewChecksumVerifier().VerifyChecksum(context.Background(), "/nonexistent/file.txt", "00")
	if err == nil {
		t.Error("VerifyChecksum() with non-existent file should return error")
	}
}
