// Package gateways implements the domain gateway interfaces over the local filesystem.
package gateways

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ochairo/licensure/internal/domain/entities"
	domainerrors "github.com/ochairo/licensure/internal/domain/errors"
	"github.com/ochairo/licensure/internal/domain/interfaces"
)

// sbomSource reads CycloneDX JSON documents from disk
type sbomSource struct {
	logger interfaces.Logger
}

// NewSBOMSource creates a new file-based SBOM source
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewSBOMSource(logger interfaces.Logger) *sbomSource {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &sbomSource{logger: logger}
}

// Load reads every path in order. The first unusable document aborts the load.
func (s *sbomSource) Load(ctx context.Context, paths []string) ([]*entities.Document, error) {
	if len(paths) == 0 {
		return nil, &domainerrors.InputError{Index: -1, Err: domainerrors.ErrNoInput}
	}

	docs := make([]*entities.Document, 0, len(paths))
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := s.LoadFile(i, path)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("loaded SBOM",
			interfaces.F("index", i),
			interfaces.F("path", path),
			interfaces.F("components", len(doc.Components)),
			interfaces.F("dependencies", len(doc.Dependencies)),
		)
		docs = append(docs, doc)
	}
	return docs, nil
}

// LoadFile reads and decodes a single document
func (s *sbomSource) LoadFile(index int, path string) (*entities.Document, error) {
	//nolint:gosec // G304: path is a user-provided SBOM
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domainerrors.NewInputError(index, path, fmt.Errorf("failed to read file: %w", err))
	}

	var doc entities.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, domainerrors.NewInputError(index, path, fmt.Errorf("failed to parse JSON: %w", err))
	}

	if doc.BOMFormat != "" && doc.BOMFormat != entities.BOMFormat {
		return nil, &domainerrors.InputError{
			Index: index,
			Path:  path,
			Field: "bomFormat",
			Err:   fmt.Errorf("unsupported format %q", doc.BOMFormat),
		}
	}

	return &doc, nil
}
