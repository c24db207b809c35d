package hadamard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order4() [][]int {
	return [][]int{
		{1, 1, 1, 1},
		{1, -1, 1, -1},
		{1, 1, -1, -1},
		{1, -1, -1, 1},
	}
}

func order8() [][]int {
	return [][]int{
		{1, 1, 1, 1, 1, 1, 1, 1},
		{1, -1, 1, -1, 1, -1, 1, -1},
		{1, 1, -1, -1, 1, 1, -1, -1},
		{1, -1, -1, 1, 1, -1, -1, 1},
		{1, 1, 1, 1, -1, -1, -1, -1},
		{1, -1, 1, -1, -1, 1, -1, 1},
		{1, 1, -1, -1, -1, -1, 1, 1},
		{1, -1, -1, 1, -1, 1, 1, -1},
	}
}

func TestIsHadamard(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.True(t, IsHadamard([][]int{{1}}))
		assert.True(t, IsHadamard([][]int{{1, 1}, {1, -1}}))
		assert.True(t, IsHadamard([][]int{{-1, -1}, {-1, 1}}))
		assert.True(t, IsHadamard(order4()))
		assert.True(t, IsHadamard(order8()))
	})

	t.Run("invalid", func(t *testing.T) {
		assert.False(t, IsHadamard(nil), "empty matrix")
		assert.False(t, IsHadamard([][]int{{}}), "degenerate row")
		assert.False(t, IsHadamard([][]int{{1, 1}}), "non-square")
		assert.False(t, IsHadamard([][]int{{1, 1}, {1}}), "ragged")
		assert.False(t, IsHadamard([][]int{{1, 2}, {3, 4}}), "entries outside {-1,1}")
		assert.False(t, IsHadamard([][]int{{1, 0}, {0, 1}}), "identity matrix")
		assert.False(t, IsHadamard([][]int{{-1, -1}, {1, 1}}), "non-orthogonal rows")
	})
}

func TestNew(t *testing.T) {
	t.Run("rejects non-Hadamard candidates", func(t *testing.T) {
		for _, rows := range [][][]int{
			nil,
			{{1, 2}, {3, 4}},
			{{1, 0}, {0, 1}},
			{{-1, -1}, {1, 1}},
		} {
			_, err := New(rows)
			require.ErrorIs(t, err, ErrInvalidMatrix)
		}
	})

	t.Run("copies the candidate", func(t *testing.T) {
		rows := order4()
		mtx, err := New(rows)
		require.NoError(t, err)

		rows[0][0] = -7
		assert.Equal(t, order4(), mtx.Rows(), "mutating the candidate must not affect the matrix")
	})

	t.Run("Rows returns a defensive copy", func(t *testing.T) {
		mtx, err := New(order4())
		require.NoError(t, err)

		got := mtx.Rows()
		got[1][1] = 0
		assert.Equal(t, order4(), mtx.Rows())
	})
}

func TestNormalize(t *testing.T) {
	t.Run("flips negative pivot rows and columns", func(t *testing.T) {
		mtx, err := New([][]int{{-1, -1}, {-1, 1}})
		require.NoError(t, err)
		assert.Equal(t, [][]int{{1, 1}, {1, -1}}, mtx.Normalize().Rows())

		mtx, err = New([][]int{{-1, 1}, {1, 1}})
		require.NoError(t, err)
		assert.Equal(t, [][]int{{1, 1}, {1, -1}}, mtx.Normalize().Rows())
	})

	t.Run("forces first row and column to +1 and preserves the Hadamard property", func(t *testing.T) {
		rows := order8()
		// Scramble signs: negate row 3 and column 2.
		for j := range rows[3] {
			rows[3][j] = -rows[3][j]
		}
		for i := range rows {
			rows[i][2] = -rows[i][2]
		}
		require.True(t, IsHadamard(rows))

		mtx, err := New(rows)
		require.NoError(t, err)
		normalized := mtx.Normalize().Rows()

		require.True(t, IsHadamard(normalized))
		for i := 0; i < 8; i++ {
			assert.Equal(t, 1, normalized[0][i])
			assert.Equal(t, 1, normalized[i][0])
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		mtx, err := New(order8())
		require.NoError(t, err)

		once := mtx.Normalize().Rows()
		again := mtx.Normalize().Rows()
		assert.Equal(t, once, again)
		assert.Equal(t, order8(), again, "an already-normalized matrix must not change")
	})
}

func TestIncidence(t *testing.T) {
	t.Run("maps the interior submatrix to 0/1", func(t *testing.T) {
		mtx, err := New([][]int{{1, 1}, {1, -1}})
		require.NoError(t, err)
		assert.Equal(t, [][]int{{0}}, mtx.Incidence())

		mtx, err = New(order4())
		require.NoError(t, err)
		assert.Equal(t, [][]int{
			{0, 1, 0},
			{1, 0, 0},
			{0, 0, 1},
		}, mtx.Incidence())
	})

	t.Run("dimension zero for a 1x1 matrix", func(t *testing.T) {
		mtx, err := New([][]int{{1}})
		require.NoError(t, err)
		assert.Len(t, mtx.Incidence(), 0)
	})

	t.Run("deterministic and freshly allocated", func(t *testing.T) {
		mtx, err := New(order8())
		require.NoError(t, err)
		mtx.Normalize()

		first := mtx.Incidence()
		second := mtx.Incidence()
		assert.Equal(t, first, second)

		first[0][0] = 9
		assert.Equal(t, second, mtx.Incidence(), "callers must not share incidence storage")
	})
}

func TestSylvester(t *testing.T) {
	t.Run("constructs valid matrices for powers of two", func(t *testing.T) {
		for _, order := range []int{1, 2, 4, 8, 16} {
			mtx, err := Sylvester(order)
			require.NoError(t, err)
			assert.Equal(t, order, mtx.Order())
			assert.True(t, IsHadamard(mtx.Rows()))
		}
	})

	t.Run("order 8 matches the reference matrix", func(t *testing.T) {
		mtx, err := Sylvester(8)
		require.NoError(t, err)
		assert.Equal(t, order8(), mtx.Rows())
	})

	t.Run("rejects non-powers of two", func(t *testing.T) {
		for _, order := range []int{0, -4, 3, 6, 12} {
			_, err := Sylvester(order)
			require.ErrorIs(t, err, ErrInvalidMatrix)
		}
	})
}

func TestZeroize(t *testing.T) {
	mtx, err := New(order4())
	require.NoError(t, err)

	mtx.Zeroize()
	assert.Equal(t, 0, mtx.Order())
}
