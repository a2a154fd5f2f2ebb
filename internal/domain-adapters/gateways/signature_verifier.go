package gateways

import (
	"context"
	"fmt"
	"strings"

	domainerrors "github.com/ochairo/licensure/internal/domain/errors"
	"github.com/ochairo/licensure/internal/external-adapters/gpg"
)

// signatureVerifier wraps the external OpenPGP adapter to implement the domain gateway interface
type signatureVerifier struct {
	verifier *gpg.Verifier
}

// NewSignatureVerifier creates a new signature verifier gateway
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewSignatureVerifier() *signatureVerifier {
	return &signatureVerifier{
		verifier: gpg.NewVerifier(),
	}
}

// ImportKeyring loads public keys from a local keyring file or an https KEYS URL
func (s *signatureVerifier) ImportKeyring(ctx context.Context, keyringPath string) error {
	var err error
	if strings.HasPrefix(keyringPath, "https://") || strings.HasPrefix(keyringPath, "http://") {
		err = s.verifier.ImportKeysFromURL(ctx, keyringPath)
	} else {
		err = s.verifier.ImportKeyFromFile(keyringPath)
	}
	if err != nil {
		return fmt.Errorf("failed to import keyring %s: %w", keyringPath, err)
	}
	return nil
}

// VerifyDetached verifies filePath against <filePath>.asc or <filePath>.sig
func (s *signatureVerifier) VerifyDetached(ctx context.Context, filePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sigPath, err := gpg.FindSignature(filePath)
	if err != nil {
		return &domainerrors.SignatureError{Path: filePath, Err: fmt.Errorf("%w: %w", domainerrors.ErrUnsigned, err)}
	}

	if err := s.verifier.VerifySignatureFromFile(filePath, sigPath); err != nil {
		return &domainerrors.SignatureError{Path: filePath, Err: err}
	}
	return nil
}

// KeyringSize returns the number of keys loaded
func (s *signatureVerifier) KeyringSize() int {
	return s.verifier.GetKeyringSize()
}
