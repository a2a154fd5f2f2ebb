package gateways

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ChecksumExtension is appended to an artifact path to name its checksum sidecar
const ChecksumExtension = ".sha256"

// checksumVerifier computes and checks SHA256 sidecars of output artifacts
type checksumVerifier struct{}

// NewChecksumVerifier creates a new checksum verifier
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewChecksumVerifier() *checksumVerifier {
	return &checksumVerifier{}
}

// CalculateChecksum calculates the SHA256 checksum of a file
func (v *checksumVerifier) CalculateChecksum(filePath string) (string, error) {
	//nolint:gosec // G304: File path is an output artifact written by this tool
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// WriteSidecar writes "<sum>  <name>" next to filePath, sha256sum compatible
func (v *checksumVerifier) WriteSidecar(filePath, sum string) (string, error) {
	checksumPath := filePath + ChecksumExtension
	content := fmt.Sprintf("%s  %s\n", sum, filepath.Base(filePath))

	//nolint:gosec // G306: checksum files are published with the artifacts
	if err := os.WriteFile(checksumPath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write SHA256 file: %w", err)
	}
	return checksumPath, nil
}

// VerifyChecksum verifies a file's SHA256 checksum
func (v *checksumVerifier) VerifyChecksum(_ context.Context, filePath, expectedSum string) error {
	actualSum, err := v.CalculateChecksum(filePath)
	if err != nil {
		return err
	}

	if !strings.EqualFold(actualSum, expectedSum) {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expectedSum, actualSum)
	}

	return nil
}

// VerifySidecar verifies filePath against its .sha256 sidecar
func (v *checksumVerifier) VerifySidecar(ctx context.Context, filePath string) error {
	//nolint:gosec // G304: sidecar of a user-provided artifact
	data, err := os.ReadFile(filePath + ChecksumExtension)
	if err != nil {
		return fmt.Errorf("failed to read checksum file: %w", err)
	}

	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return fmt.Errorf("checksum file %s is empty", filePath+ChecksumExtension)
	}

	return v.VerifyChecksum(ctx, filePath, fields[0])
}
