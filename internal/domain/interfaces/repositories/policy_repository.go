// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/ochairo/licensure/internal/domain/entities"
)

// PolicyRepository defines the interface for accessing the licensing policy
type PolicyRepository interface {
	// GetPolicy loads and validates the policy. Missing required fields are a ConfigError.
	GetPolicy(ctx context.Context) (*entities.Policy, error)
}
