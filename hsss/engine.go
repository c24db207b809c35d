package hsss

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/izouxv/goHSSS/utils"
)

// Engine splits, reconstructs and validates secrets at the bit level using a
// 0/1 incidence matrix as the bit-selection mask. It performs no threshold
// checking; that is the Scheme's job. An Engine owns its matrix exclusively
// and is safe for concurrent use after construction.
type Engine struct {
	mtx [][]int
}

// NewEngine copies the incidence matrix into a new Engine. The matrix must
// be square with entries in {0, 1}; a zero-dimension matrix is accepted but
// yields a degenerate engine that produces no shares.
func NewEngine(incidence [][]int) (*Engine, error) {
	n := len(incidence)
	mtx := make([][]int, n)
	for i, row := range incidence {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrInvalidMatrix, i, len(row), n)
		}
		mtx[i] = make([]int, n)
		for j, v := range row {
			if v != 0 && v != 1 {
				return nil, fmt.Errorf("%w: entry (%d,%d) is %d, want 0 or 1", ErrInvalidMatrix, i, j, v)
			}
			mtx[i][j] = v
		}
	}
	return &Engine{mtx: mtx}, nil
}

// Parties returns the number of shares a secret is split into.
func (e *Engine) Parties() int {
	return len(e.mtx)
}

// blocks is the number of size-n column windows needed to cover all
// SecretBits bit positions.
func (e *Engine) blocks() int {
	n := len(e.mtx)
	return (SecretBits + n - 1) / n
}

// Share splits a secret into one Part per matrix row. For row i and global
// bit index jid = j + b*n below SecretBits: where the row holds 1, the
// part's bit jid carries the secret's bit jid; where it holds 0, the bit is
// drawn uniformly at random. The masking bits are the source of the
// scheme's secrecy and come from crypto/rand.
func (e *Engine) Share(secret uint32) ([]Part, error) {
	n := len(e.mtx)
	if n == 0 {
		return nil, nil
	}
	blocks := e.blocks()
	parts := make([]Part, n)
	for i := range parts {
		var seed [4]byte
		if _, err := rand.Read(seed[:]); err != nil {
			return nil, fmt.Errorf("failed to draw masking bits: %w", err)
		}
		filler := binary.BigEndian.Uint32(seed[:])
		utils.Zeroize(seed[:])
		parts[i].Number = i
		for b := 0; b < blocks; b++ {
			for j := 0; j < n; j++ {
				jid := j + b*n
				if jid >= SecretBits {
					continue
				}
				bit := uint32(1) << jid
				if e.mtx[i][j] == 1 {
					parts[i].Data |= bit & secret
				} else {
					parts[i].Data |= bit & filler
				}
			}
		}
	}
	return parts, nil
}

// Reconstruct accumulates the secret from the supplied parts by ORing, for
// every part, the payload bits at positions its row attests to. Rows that
// carry a given true bit all agree when the parts are authentic, so ORing
// takes their common value. No consistency checking is performed and no
// threshold is enforced; with too few parts the result can be wrong.
func (e *Engine) Reconstruct(parts []Part) (uint32, error) {
	n := len(e.mtx)
	if n == 0 {
		return 0, nil
	}
	blocks := e.blocks()
	var res uint32
	for _, p := range parts {
		if p.Number < 0 || p.Number >= n {
			return 0, fmt.Errorf("%w: party index %d out of range [0, %d)", ErrInvalidShare, p.Number, n)
		}
		for b := 0; b < blocks; b++ {
			for j := 0; j < n; j++ {
				jid := j + b*n
				if jid >= SecretBits {
					continue
				}
				if e.mtx[p.Number][j] == 1 {
					res |= (uint32(1) << jid) & p.Data
				}
			}
		}
	}
	return res, nil
}

// Validate flags parts whose attested bit values conflict with the majority.
// For every secret bit position the row indices voting 0 and voting 1 are
// collected; when both sets are non-empty the strictly smaller one is marked
// suspicious, and on a tie the zero-voter set is marked. The returned party
// indices are distinct and ascending. A flagged part is inconsistent with
// the rest of the set, not proven malicious; an empty result does not rule
// out collusion below the threshold.
func (e *Engine) Validate(parts []Part) ([]int, error) {
	n := len(e.mtx)
	if n == 0 {
		return nil, nil
	}
	blocks := e.blocks()
	var voters [SecretBits][2][]int
	for _, p := range parts {
		if p.Number < 0 || p.Number >= n {
			return nil, fmt.Errorf("%w: party index %d out of range [0, %d)", ErrInvalidShare, p.Number, n)
		}
		for b := 0; b < blocks; b++ {
			for j := 0; j < n; j++ {
				jid := j + b*n
				if jid >= SecretBits {
					continue
				}
				if e.mtx[p.Number][j] == 1 {
					bit := (p.Data >> jid) & 1
					voters[jid][bit] = append(voters[jid][bit], p.Number)
				}
			}
		}
	}

	suspicious := make([]bool, n)
	for pos := 0; pos < SecretBits; pos++ {
		zeros, ones := voters[pos][0], voters[pos][1]
		if len(zeros) == 0 || len(ones) == 0 {
			continue
		}
		flagged := zeros
		if len(zeros) > len(ones) {
			flagged = ones
		}
		for _, ind := range flagged {
			suspicious[ind] = true
		}
	}

	var res []int
	for i, s := range suspicious {
		if s {
			res = append(res, i)
		}
	}
	return res, nil
}
