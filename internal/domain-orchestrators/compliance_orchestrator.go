// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ochairo/licensure/internal/domain/entities"
	domainerrors "github.com/ochairo/licensure/internal/domain/errors"
	"github.com/ochairo/licensure/internal/domain/interfaces"
	"github.com/ochairo/licensure/internal/domain/interfaces/gateways"
	"github.com/ochairo/licensure/internal/domain/interfaces/repositories"
	"github.com/ochairo/licensure/internal/domain/services"
)

// Default output file names
const (
	DefaultMergedSBOMFile = "sbom.cyclonedx.json"
	DefaultReportFile     = "license-report.json"
	DefaultNoticeFile     = "LICENSE-THIRD-PARTY.txt"
)

// ComplianceOrchestrator coordinates the complete license compliance workflow:
// load -> verify -> merge -> report -> notice -> write
type ComplianceOrchestrator struct {
	source   gateways.SBOMSource
	policies repositories.PolicyRepository
	verifier gateways.SignatureVerifier
	writer   gateways.ArtifactWriter
	logger   interfaces.Logger
	config   ComplianceOrchestratorConfig
}

// ComplianceOrchestratorConfig holds configuration for the orchestrator.
// An empty output file name disables writing that artifact.
type ComplianceOrchestratorConfig struct {
	OutputDir         string
	MergedSBOMFile    string
	ReportFile        string
	NoticeFile        string
	KeyringPath       string
	RequireSignatures bool
	MergeOptions      []services.MergeOption
}

// NewComplianceOrchestrator creates a new compliance orchestrator.
// policies, verifier and writer may be nil when the matching stages are not used.
func NewComplianceOrchestrator(
	source gateways.SBOMSource,
	policies repositories.PolicyRepository,
	verifier gateways.SignatureVerifier,
	writer gateways.ArtifactWriter,
	logger interfaces.Logger,
	config ComplianceOrchestratorConfig,
) *ComplianceOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	if config.OutputDir == "" {
		config.OutputDir = "."
	}

	return &ComplianceOrchestrator{
		source:   source,
		policies: policies,
		verifier: verifier,
		writer:   writer,
		logger:   logger,
		config:   config,
	}
}

// RunRequest selects the inputs and stages of a compliance run
type RunRequest struct {
	Paths   []string
	Project entities.ProjectIdentity
	Report  bool
	Notice  bool
}

// RunResult contains the complete compliance run results
type RunResult struct {
	Merged    *entities.Document
	Report    *entities.LicenseReport
	Notice    *entities.ThirdPartyNotice
	Artifacts []*entities.Artifact
	Warnings  []entities.Warning
	Verified  []string
	Unsigned  []string
	Duration  time.Duration
}

// Run executes the compliance workflow. Configuration and input failures
// abort the run; partial-data findings are collected in the result.
func (o *ComplianceOrchestrator) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	startTime := time.Now()
	result := &RunResult{}

	// Step 1: Load the policy before touching any input
	policy := &entities.Policy{}
	if req.Report || req.Notice {
		if o.policies == nil {
			return nil, &domainerrors.ConfigError{Err: errors.New("no licensing configuration supplied")}
		}
		loaded, err := o.policies.GetPolicy(ctx)
		if err != nil {
			return nil, err
		}
		policy = loaded
	}
	service := services.NewComplianceService(policy, o.config.MergeOptions...)

	// Step 2: Verify detached signatures of the inputs
	if err := o.verifyInputs(ctx, req.Paths, result); err != nil {
		return nil, err
	}

	// Step 3: Load SBOM documents
	docs, err := o.source.Load(ctx, req.Paths)
	if err != nil {
		return nil, err
	}

	// Step 4: Merge
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	merged, err := service.Merge(docs, req.Project)
	if err != nil {
		return nil, fmt.Errorf("merge failed: %w", err)
	}
	result.Merged = merged
	o.logger.Info("merged SBOMs",
		interfaces.F("documents", len(docs)),
		interfaces.F("components", len(merged.Components)),
		interfaces.F("dependencies", len(merged.Dependencies)),
	)

	// Step 5: License report
	if req.Report {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Report = service.Report(merged)
		result.Warnings = append(result.Warnings, result.Report.Warnings...)
		o.logger.Info("built license report",
			interfaces.F("licenses", result.Report.UniqueLicenseCount),
			interfaces.F("counselRequired", result.Report.Summary.CounselRequired),
			interfaces.F("warnings", len(result.Report.Warnings)),
		)
	}

	// Step 6: Third-party notice
	if req.Notice {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		notice, err := service.Notice(merged)
		if err != nil {
			return nil, fmt.Errorf("notice aggregation failed: %w", err)
		}
		result.Notice = notice
		for _, id := range notice.Missing {
			o.logger.Warn("license text not configured", interfaces.F("license", id))
		}
		o.logger.Info("aggregated third-party notice",
			interfaces.F("sections", len(notice.Sections)),
			interfaces.F("missing", len(notice.Missing)),
			interfaces.F("unused", len(notice.Unused)),
		)
	}

	// Step 7: Write artifacts
	if err := o.writeArtifacts(ctx, result); err != nil {
		return nil, err
	}

	result.Duration = time.Since(startTime)
	return result, nil
}

// verifyInputs checks each input against its detached signature. Verification
// only runs when a keyring is configured; unsigned inputs are tolerated unless
// signatures are required.
func (o *ComplianceOrchestrator) verifyInputs(ctx context.Context, paths []string, result *RunResult) error {
	if o.config.KeyringPath == "" {
		if o.config.RequireSignatures {
			return &domainerrors.ConfigError{Field: "keyring", Err: errors.New("required when signatures are required")}
		}
		return nil
	}
	if o.verifier == nil {
		return &domainerrors.ConfigError{Field: "keyring", Err: errors.New("no signature verifier available")}
	}

	if err := o.verifier.ImportKeyring(ctx, o.config.KeyringPath); err != nil {
		return &domainerrors.ConfigError{Field: "keyring", Err: err}
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := o.verifier.VerifyDetached(ctx, path)
		switch {
		case err == nil:
			result.Verified = append(result.Verified, path)
			o.logger.Debug("signature verified", interfaces.F("path", path))
		case errors.Is(err, domainerrors.ErrUnsigned) && !o.config.RequireSignatures:
			result.Unsigned = append(result.Unsigned, path)
			o.logger.Warn("input is not signed", interfaces.F("path", path))
		default:
			return err
		}
	}
	return nil
}

func (o *ComplianceOrchestrator) writeArtifacts(ctx context.Context, result *RunResult) error {
	if o.writer == nil {
		return nil
	}

	type output struct {
		kind entities.ArtifactKind
		file string
		json any
		text *string
	}

	var outputs []output
	if o.config.MergedSBOMFile != "" {
		outputs = append(outputs, output{kind: entities.ArtifactMergedSBOM, file: o.config.MergedSBOMFile, json: result.Merged})
	}
	if result.Report != nil && o.config.ReportFile != "" {
		outputs = append(outputs, output{kind: entities.ArtifactReport, file: o.config.ReportFile, json: result.Report})
	}
	if result.Notice != nil && o.config.NoticeFile != "" {
		outputs = append(outputs, output{kind: entities.ArtifactNotice, file: o.config.NoticeFile, text: &result.Notice.Document})
	}

	for _, out := range outputs {
		path := filepath.Join(o.config.OutputDir, out.file)

		var (
			artifact *entities.Artifact
			err      error
		)
		if out.text != nil {
			artifact, err = o.writer.WriteText(ctx, out.kind, path, *out.text)
		} else {
			artifact, err = o.writer.WriteJSON(ctx, out.kind, path, out.json)
		}
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", out.kind, err)
		}

		result.Artifacts = append(result.Artifacts, artifact)
		o.logger.Info("wrote artifact", interfaces.F("kind", artifact.Kind), interfaces.F("path", artifact.Path))
	}
	return nil
}

// FailCondition names a finding that should fail a run
type FailCondition string

// Fail conditions accepted by --fail-on
const (
	FailOnCounsel       FailCondition = "counsel"
	FailOnUncategorized FailCondition = "uncategorized"
	FailOnMissing       FailCondition = "missing"
)

// ParseFailConditions parses a list of fail conditions, rejecting unknown names
func ParseFailConditions(values []string) ([]FailCondition, error) {
	conds := make([]FailCondition, 0, len(values))
	for _, v := range values {
		cond := FailCondition(strings.ToLower(strings.TrimSpace(v)))
		switch cond {
		case FailOnCounsel, FailOnUncategorized, FailOnMissing:
			conds = append(conds, cond)
		case "":
		default:
			return nil, fmt.Errorf("unknown fail condition %q (want counsel, uncategorized or missing)", v)
		}
	}
	return conds, nil
}

// Violations returns a description of every fail condition the result meets
func (r *RunResult) Violations(conds []FailCondition) []string {
	var violations []string
	for _, cond := range conds {
		switch cond {
		case FailOnCounsel:
			if r.Report != nil && r.Report.Summary.CounselRequired > 0 {
				violations = append(violations, fmt.Sprintf("%d components require legal counsel", r.Report.Summary.CounselRequired))
			}
		case FailOnUncategorized:
			if r.Report != nil && len(r.Report.Tiers.Uncategorized) > 0 {
				violations = append(violations, fmt.Sprintf("%d licenses are not categorized", len(r.Report.Tiers.Uncategorized)))
			}
		case FailOnMissing:
			if r.Notice != nil && len(r.Notice.Missing) > 0 {
				violations = append(violations, fmt.Sprintf("%d licenses have no configured text: %s",
					len(r.Notice.Missing), strings.Join(r.Notice.Missing, ", ")))
			}
		}
	}
	return violations
}

// Summary generates a human-readable run summary
func (r *RunResult) Summary() string {
	var b strings.Builder
	if r.Merged != nil {
		fmt.Fprintf(&b, "✅ Merged SBOM: %d components, %d dependencies\n", len(r.Merged.Components), len(r.Merged.Dependencies))
	}
	if len(r.Verified) > 0 || len(r.Unsigned) > 0 {
		fmt.Fprintf(&b, "   Signatures: %d verified, %d unsigned\n", len(r.Verified), len(r.Unsigned))
	}
	if r.Report != nil {
		fmt.Fprintf(&b, "   Licenses: %d unique, %d components require counsel\n",
			r.Report.UniqueLicenseCount, r.Report.Summary.CounselRequired)
	}
	if r.Notice != nil {
		fmt.Fprintf(&b, "   Notice: %d sections, %d missing, %d unused\n",
			len(r.Notice.Sections), len(r.Notice.Missing), len(r.Notice.Unused))
	}
	if len(r.Warnings) > 0 {
		fmt.Fprintf(&b, "   Warnings: %d\n", len(r.Warnings))
	}
	fmt.Fprintf(&b, "   Duration: %v", r.Duration)
	return b.String()
}
