package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinkms/blink/sparse"
)

func TestCOOToCSR_SumsDuplicates(t *testing.T) {
	m := sparse.NewCOO(2, 2)
	m.Add(0, 0, 1.0)
	m.Add(0, 0, 2.0)
	m.Add(1, 1, 5.0)

	csr := m.ToCSR()
	require.Equal(t, 2, csr.NNZ())
	assert.Equal(t, 3.0, csr.Val[0])
}

func TestMulAligned_SelfMatchSinglePeak(t *testing.T) {
	// one bin (physical bin 0) shared between a 1-spectrum query and
	// a 1-spectrum reference, both stored with shift 0.
	q := sparse.NewCOO(1, 1)
	q.Add(0, 0, 1.0) // bin 0 x spec 0
	r := sparse.NewCOO(1, 1)
	r.Add(0, 0, 1.0)

	qCSR := q.Transpose().ToCSR() // spec x bin
	rCSR := r.ToCSR()             // bin x spec

	result := sparse.MulAligned(qCSR, 0, rCSR, 0)
	require.Equal(t, 1, result.NNZ())
	assert.Equal(t, 1.0, result.Val[0])
}

func TestMulAligned_ShiftOffsetReconciled(t *testing.T) {
	// query bin axis shifted by 3, ref bin axis shifted by 5; physical bin 2
	// is stored at query col = 2+3=5, ref row = 2+5=7.
	q := sparse.NewCOO(6, 1)
	q.Add(5, 0, 2.0) // bin 5 x spec 0
	r := sparse.NewCOO(8, 1)
	r.Add(7, 0, 4.0)

	qCSR := q.Transpose().ToCSR()
	rCSR := r.ToCSR()

	result := sparse.MulAligned(qCSR, 3, rCSR, 5)
	require.Equal(t, 1, result.NNZ())
	assert.Equal(t, 8.0, result.Val[0])
}

func TestMaximum_UnionOfSupports(t *testing.T) {
	a := sparse.NewCOO(2, 2)
	a.Add(0, 0, 0.3)
	a.Add(1, 1, 0.9)
	b := sparse.NewCOO(2, 2)
	b.Add(0, 0, 0.7)
	b.Add(0, 1, 0.2)

	out, err := sparse.Maximum(a.ToCSR(), b.ToCSR())
	require.NoError(t, err)
	require.Equal(t, 3, out.NNZ())
}

func TestMaximum_DimensionMismatchReturnsError(t *testing.T) {
	a := sparse.NewCOO(2, 2).ToCSR()
	b := sparse.NewCOO(3, 2).ToCSR()

	_, err := sparse.Maximum(a, b)
	require.ErrorIs(t, err, sparse.ErrDimensionMismatch)
}
