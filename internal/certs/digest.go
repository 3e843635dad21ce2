package certs

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"

	cberrors "certbook/internal/errors"
)

// Algorithm names the one-way hash applied to the concatenated record fields.
type Algorithm string

const (
	AlgorithmSHA256 Algorithm = "SHA256"
	AlgorithmSHA512 Algorithm = "SHA512"
)

// ParseAlgorithm validates a submitted algorithm value.
func ParseAlgorithm(value string) (Algorithm, error) {
	switch Algorithm(strings.TrimSpace(value)) {
	case AlgorithmSHA256:
		return AlgorithmSHA256, nil
	case AlgorithmSHA512:
		return AlgorithmSHA512, nil
	default:
		return "", fmt.Errorf("%q: %w", value, cberrors.ErrUnknownAlgorithm)
	}
}

// ComputeDigest returns the lowercase hex digest of the five fields concatenated
// in fixed order, each in its submitted text form. The digest is an integrity
// fingerprint of the submitted data, not a signature; it carries no authenticity
// guarantee.
func ComputeDigest(company, domain, issueDate, expiryDate, issuer string, algorithm Algorithm) (string, error) {
	data := []byte(company + domain + issueDate + expiryDate + issuer)
	switch algorithm {
	case AlgorithmSHA256:
		sum := sha256.Sum256(data)
		return hex.EncodeToString(sum[:]), nil
	case AlgorithmSHA512:
		sum := sha512.Sum512(data)
		return hex.EncodeToString(sum[:]), nil
	default:
		return "", fmt.Errorf("%q: %w", algorithm, cberrors.ErrUnknownAlgorithm)
	}
}
