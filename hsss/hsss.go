package hsss

import (
	"fmt"

	"github.com/izouxv/goHSSS/hadamard"
)

// Scheme is a Hadamard threshold secret sharing scheme: an Engine built from
// the incidence matrix of a validated, normalized Hadamard matrix, plus the
// precomputed reconstruction threshold. Immutable after construction.
type Scheme struct {
	engine    *Engine
	threshold int
}

var _ SharingScheme = (*Scheme)(nil)

// NewScheme builds a Scheme from a caller-supplied candidate Hadamard
// matrix. The candidate is validated, copied, normalized, and reduced to its
// incidence matrix. Construction fails if the candidate is not a Hadamard
// matrix; no partial scheme is produced.
func NewScheme(rows [][]int) (*Scheme, error) {
	mtx, err := hadamard.New(rows)
	if err != nil {
		return nil, err
	}
	incidence := mtx.Normalize().Incidence()
	engine, err := NewEngine(incidence)
	if err != nil {
		return nil, fmt.Errorf("failed to build sharing engine: %w", err)
	}
	return &Scheme{
		engine:    engine,
		threshold: Threshold(len(incidence)),
	}, nil
}

// Share splits a secret into one Part per party.
func (s *Scheme) Share(secret uint32) ([]Part, error) {
	return s.engine.Share(secret)
}

// Reconstruct recovers the secret from the supplied parts. It fails with
// ErrBelowThreshold when fewer parts than the scheme's threshold are
// supplied, and otherwise delegates to the engine.
func (s *Scheme) Reconstruct(parts []Part) (uint32, error) {
	if len(parts) < s.threshold {
		return 0, fmt.Errorf("%w: have %d parts, need %d", ErrBelowThreshold, len(parts), s.threshold)
	}
	return s.engine.Reconstruct(parts)
}

// Validate returns the party indices of supplied parts that conflict with
// the majority. An empty result means no detected inconsistency.
func (s *Scheme) Validate(parts []Part) ([]int, error) {
	return s.engine.Validate(parts)
}

// Threshold returns the minimum number of parts that guarantees
// reconstruction.
func (s *Scheme) Threshold() int {
	return s.threshold
}

// Parties returns the number of parts a secret is split into.
func (s *Scheme) Parties() int {
	return s.engine.Parties()
}
