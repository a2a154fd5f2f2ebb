// Package gateways defines interfaces for external service adapters.
package gateways

import (
	"context"

	"github.com/ochairo/licensure/internal/domain/entities"
)

// SBOMSource loads CycloneDX documents.
// Failures are reported as InputError naming the document index and path.
type SBOMSource interface {
	// Load reads every path in order
	Load(ctx context.Context, paths []string) ([]*entities.Document, error)
}

// SignatureVerifier checks detached signatures of input files
type SignatureVerifier interface {
	// ImportKeyring loads trusted public keys from an armored keyring file
	ImportKeyring(ctx context.Context, keyringPath string) error

	// VerifyDetached verifies filePath against <filePath>.asc or <filePath>.sig
	VerifyDetached(ctx context.Context, filePath string) error
}

// ArtifactWriter persists compliance outputs with a checksum sidecar
type ArtifactWriter interface {
	WriteJSON(ctx context.Context, kind entities.ArtifactKind, path string, v any) (*entities.Artifact, error)
	WriteText(ctx context.Context, kind entities.ArtifactKind, path, content string) (*entities.Artifact, error)
}
