// Package hadamard validates, normalizes and derives block designs from
// Hadamard matrices, the combinatorial structure behind the hsss sharing scheme.
package hadamard

import (
	"errors"
	"fmt"

	"github.com/izouxv/goHSSS/utils"
)

// ErrInvalidMatrix is returned when a candidate matrix is not a Hadamard matrix.
var ErrInvalidMatrix = errors.New("invalid Hadamard matrix")

// Matrix holds an owned, validated Hadamard matrix. The only mutation after
// construction is Normalize, which sign-flips rows and columns in place.
type Matrix struct {
	mtx [][]int
}

// New validates a candidate and copies it into an owned Matrix.
// The candidate must be square, non-empty, contain only -1 and +1 entries,
// and satisfy H * H^T = n * I.
func New(rows [][]int) (*Matrix, error) {
	if err := check(rows); err != nil {
		return nil, err
	}
	n := len(rows)
	mtx := make([][]int, n)
	for i, row := range rows {
		mtx[i] = make([]int, n)
		copy(mtx[i], row)
	}
	return &Matrix{mtx: mtx}, nil
}

// IsHadamard reports whether rows form a valid Hadamard matrix.
func IsHadamard(rows [][]int) bool {
	return check(rows) == nil
}

func check(rows [][]int) error {
	n := len(rows)
	if n < 1 {
		return fmt.Errorf("%w: matrix is empty", ErrInvalidMatrix)
	}
	for i, row := range rows {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d entries, want %d", ErrInvalidMatrix, i, len(row), n)
		}
		for j, v := range row {
			if v != -1 && v != 1 {
				return fmt.Errorf("%w: entry (%d,%d) is %d, want -1 or 1", ErrInvalidMatrix, i, j, v)
			}
		}
	}
	// H * H^T must equal n * I: distinct rows orthogonal, every row of squared norm n.
	for i := 0; i < n; i++ {
		for k := i; k < n; k++ {
			dot := 0
			for j := 0; j < n; j++ {
				dot += rows[i][j] * rows[k][j]
			}
			want := 0
			if i == k {
				want = n
			}
			if dot != want {
				return fmt.Errorf("%w: rows %d and %d have inner product %d, want %d", ErrInvalidMatrix, i, k, dot, want)
			}
		}
	}
	return nil
}

// Normalize sign-flips rows and columns so that the first row and first
// column consist entirely of +1, and returns the receiver for chaining.
// Within a single pass over i, the row pivot is tested and flipped before
// the column pivot, each against the current matrix state. Sign flips
// preserve the Hadamard property, so normalizing is always safe.
func (m *Matrix) Normalize() *Matrix {
	n := len(m.mtx)
	for i := 0; i < n; i++ {
		if m.mtx[i][0] == -1 {
			for j := 0; j < n; j++ {
				m.mtx[i][j] = -m.mtx[i][j]
			}
		}
		if m.mtx[0][i] == -1 {
			for j := 0; j < n; j++ {
				m.mtx[j][i] = -m.mtx[j][i]
			}
		}
	}
	return m
}

// Incidence derives the 0/1 incidence matrix of the block design associated
// with the matrix: the interior submatrix without row 0 and column 0, with
// entries mapped by (v+1)/2. For an order-4t matrix this corresponds to a
// 2-(4t-1, 2t-1, t-1) design. Only meaningful after Normalize. A fresh
// matrix is allocated on every call.
func (m *Matrix) Incidence() [][]int {
	n := len(m.mtx)
	inc := make([][]int, n-1)
	for i := 1; i < n; i++ {
		inc[i-1] = make([]int, n-1)
		for j := 1; j < n; j++ {
			inc[i-1][j-1] = (m.mtx[i][j] + 1) / 2
		}
	}
	return inc
}

// Order returns the dimension n of the matrix.
func (m *Matrix) Order() int {
	return len(m.mtx)
}

// Rows returns a defensive copy of the matrix entries.
func (m *Matrix) Rows() [][]int {
	rows := make([][]int, len(m.mtx))
	for i, row := range m.mtx {
		rows[i] = make([]int, len(row))
		copy(rows[i], row)
	}
	return rows
}

// Zeroize scrubs the matrix storage. The Matrix must not be used afterwards.
func (m *Matrix) Zeroize() {
	utils.ZeroizeInts(m.mtx)
	m.mtx = nil
}

// Sylvester constructs the Hadamard matrix of the given order using the
// Sylvester doubling construction. The order must be a power of two.
func Sylvester(order int) (*Matrix, error) {
	if order < 1 || order&(order-1) != 0 {
		return nil, fmt.Errorf("%w: order %d is not a power of two", ErrInvalidMatrix, order)
	}
	mtx := [][]int{{1}}
	for n := 1; n < order; n *= 2 {
		next := make([][]int, 2*n)
		for i := range next {
			next[i] = make([]int, 2*n)
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				next[i][j] = mtx[i][j]
				next[i][j+n] = mtx[i][j]
				next[i+n][j] = mtx[i][j]
				next[i+n][j+n] = -mtx[i][j]
			}
		}
		mtx = next
	}
	return &Matrix{mtx: mtx}, nil
}
