package yaml

import (
	"context"
	"fmt"
	"os"

	"github.com/ochairo/licensure/internal/domain/entities"
	domainerrors "github.com/ochairo/licensure/internal/domain/errors"
)

// DefaultPolicyFile is the configuration file looked up when none is given
const DefaultPolicyFile = "licensing-config.yaml"

// PolicyRepository implements repositories.PolicyRepository using a YAML or JSON file
type PolicyRepository struct {
	path   string
	parser *PolicyParser
}

// NewPolicyRepository creates a new file-based policy repository
func NewPolicyRepository(path string) *PolicyRepository {
	if path == "" {
		path = DefaultPolicyFile
	}
	return &PolicyRepository{
		path:   path,
		parser: NewPolicyParser(),
	}
}

// Path returns the configuration file the repository reads
func (r *PolicyRepository) Path() string {
	return r.path
}

// GetPolicy loads and validates the licensing policy
func (r *PolicyRepository) GetPolicy(ctx context.Context) (*entities.Policy, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Check if file exists
	if _, err := os.Stat(r.path); os.IsNotExist(err) {
		return nil, &domainerrors.ConfigError{Err: fmt.Errorf("licensing configuration not found: %s", r.path)}
	}

	policy, err := r.parser.ParseFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", r.path, err)
	}
	return policy, nil
}
