package gateways

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ochairo/licensure/internal/domain/entities"
	"github.com/ochairo/licensure/internal/domain/interfaces"
)

// artifactWriter writes compliance outputs, each with a .sha256 sidecar
type artifactWriter struct {
	checksums *checksumVerifier
	logger    interfaces.Logger
}

// NewArtifactWriter creates a new artifact writer
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewArtifactWriter(logger interfaces.Logger) *artifactWriter {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &artifactWriter{
		checksums: NewChecksumVerifier(),
		logger:    logger,
	}
}

// WriteJSON writes v as 2-space indented JSON
func (w *artifactWriter) WriteJSON(ctx context.Context, kind entities.ArtifactKind, path string, v any) (*entities.Artifact, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", kind, err)
	}
	return w.write(ctx, kind, path, buf.Bytes())
}

// WriteText writes content verbatim
func (w *artifactWriter) WriteText(ctx context.Context, kind entities.ArtifactKind, path, content string) (*entities.Artifact, error) {
	return w.write(ctx, kind, path, []byte(content))
}

func (w *artifactWriter) write(ctx context.Context, kind entities.ArtifactKind, path string, data []byte) (*entities.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	//nolint:gosec // G306: outputs are published alongside the project
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", kind, err)
	}

	sum, err := w.checksums.CalculateChecksum(path)
	if err != nil {
		return nil, fmt.Errorf("failed to checksum %s: %w", kind, err)
	}
	checksumPath, err := w.checksums.WriteSidecar(path, sum)
	if err != nil {
		return nil, err
	}

	w.logger.Debug("wrote artifact",
		interfaces.F("kind", kind),
		interfaces.F("path", path),
		interfaces.F("sha256", sum),
	)

	return &entities.Artifact{
		Kind:         kind,
		Path:         path,
		SHA256:       sum,
		ChecksumPath: checksumPath,
	}, nil
}
