// Package entities defines core domain models and data structures.
package entities

// ArtifactKind names an output produced by a compliance run
type ArtifactKind string

// Output artifact kinds
const (
	ArtifactMergedSBOM ArtifactKind = "sbom"
	ArtifactReport     ArtifactKind = "report"
	ArtifactNotice     ArtifactKind = "third-party-notice"
)

// Artifact represents an output file written to disk
type Artifact struct {
	Kind         ArtifactKind
	Path         string
	SHA256       string
	ChecksumPath string
}
