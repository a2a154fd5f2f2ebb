package yaml

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	domainerrors "github.com/ochairo/licensure/internal/domain/errors"
)

func TestPolicyRepository_GetPolicy_Success(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "licensing-config.yaml")

	testYAML := []byte(`licensesToInclude:
  - id: MIT
categorization:
  allowLicenses: [MIT]
`)
	if err := os.WriteFile(path, testYAML, 0600); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	repo := NewPolicyRepository(path)
	policy, err := repo.GetPolicy(context.Background())
	if err != nil {
		t.Fatalf("GetPolicy() error = %v", err)
	}

	if len(policy.LicensesToInclude) != 1 || policy.LicensesToInclude[0].ID != "MIT" {
		t.Errorf("GetPolicy() licensesToInclude = %+v", policy.LicensesToInclude)
	}
}

func TestPolicyRepository_GetPolicy_NotFound(t *testing.T) {
	repo := NewPolicyRepository(filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := repo.GetPolicy(context.Background())
	if !domainerrors.IsConfigError(err) {
		t.Errorf("GetPolicy() should return ConfigError for a missing file, got %v", err)
	}
}

func TestPolicyRepository_GetPolicy_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "licensing-config.yaml")
	if err := os.WriteFile(path, []byte("licensesToInclude: []\n"), 0600); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err := NewPolicyRepository(path).GetPolicy(context.Background())
	if !domainerrors.IsConfigError(err) {
		t.Errorf("GetPolicy() should return ConfigError, got %v", err)
	}
}

func TestPolicyRepository_DefaultPath(t *testing.T) {
	if got := NewPolicyRepository("").Path(); got != DefaultPolicyFile {
		t.Errorf("Path() = %s, want %s", got, DefaultPolicyFile)
	}
}

func TestPolicyRepository_GetPolicy_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewPolicyRepository("").GetPolicy(ctx); err == nil {
		t.Error("GetPolicy() should fail on a cancelled context")
	}
}
