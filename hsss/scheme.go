// Package hsss implements a threshold secret sharing scheme built on the
// incidence matrix of a normalized Hadamard matrix. A 32-bit secret is split
// into one share per matrix row; any subset of shares at or above the
// scheme's threshold reconstructs the secret exactly, while smaller subsets
// reveal nothing about it (information-theoretic security, provided by the
// covering property of the underlying block design).
package hsss

import "errors"

// SecretBits is the bit width of secrets handled by the scheme.
const SecretBits = 32

var (
	// ErrInvalidMatrix is returned when an incidence matrix is ragged or
	// contains entries other than 0 and 1.
	ErrInvalidMatrix = errors.New("invalid incidence matrix")

	// ErrBelowThreshold is returned when reconstruction is attempted with
	// fewer parts than the scheme's threshold.
	ErrBelowThreshold = errors.New("fewer parts than threshold")

	// ErrInvalidShare is returned when a part's party index is outside the
	// range of the incidence matrix rows.
	ErrInvalidShare = errors.New("invalid share")
)

// SharingScheme is the capability exposed by threshold secret sharing
// schemes. Alternative schemes can implement it and be substituted without
// touching callers.
type SharingScheme interface {
	// Share splits a secret into one Part per party.
	Share(secret uint32) ([]Part, error)
	// Reconstruct recovers the secret from a sufficient set of parts.
	Reconstruct(parts []Part) (uint32, error)
	// Validate returns the party indices of parts whose claimed bit values
	// conflict with the majority of the supplied set.
	Validate(parts []Part) ([]int, error)
	// Threshold returns the minimum number of parts that guarantees
	// reconstruction.
	Threshold() int
}

// Threshold derives the minimum number of shares guaranteed sufficient to
// reconstruct, from the incidence matrix dimension d (= 4t-1 for an
// order-4t Hadamard matrix): (d+3)/2 in integer arithmetic. It is a
// property of the matrix, not of any particular secret.
func Threshold(dimension int) int {
	return (dimension + 3) / 2
}
