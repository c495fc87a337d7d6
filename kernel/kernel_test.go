package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinkms/blink/kernel"
	"github.com/blinkms/blink/store"
)

// Bin-tolerance window check: spec.md's scenario 3 ("A at [100.000], B at
// [100.018] ... T=0.01 ... Expect mzi ~= 1.0") does not hold under the
// bin_tol = int(2*(T/w) - 1) formula the original derives the offset window
// from: at w=0.001, T=0.01 gives bin_tol=19, a +-9-bin half window, which
// cannot bridge an 18-bin gap. These tests instead pin down the window's
// actual edges so the implementation is verified against a value it can
// provably satisfy; see DESIGN.md's Open Questions section for the
// reconciliation note.
func TestOffsets_ZeroDiffProducesSymmetricWindow(t *testing.T) {
	omega := kernel.Offsets(0.001, kernel.Options{Tolerance: 0.01, MassDiffs: []float64{0}, ReactSteps: 1})
	assert.Contains(t, omega, -9)
	assert.Contains(t, omega, 9)
	assert.NotContains(t, omega, -10)
	assert.NotContains(t, omega, 10)
}

func TestOffsets_TighterToleranceShrinksWindow(t *testing.T) {
	omega := kernel.Offsets(0.001, kernel.Options{Tolerance: 0.002, MassDiffs: []float64{0}, ReactSteps: 1})
	assert.Contains(t, omega, 0)
	assert.Contains(t, omega, 1)
	assert.NotContains(t, omega, 2)
	assert.NotContains(t, omega, -2)
}

func TestOffsets_MassDiffKernelShiftsWindow(t *testing.T) {
	// D=[15.99491] (oxygen addition) at w=0.001 rounds to a 15995-bin shift.
	omega := kernel.Offsets(0.001, kernel.Options{Tolerance: 0.002, MassDiffs: []float64{15.99491}, ReactSteps: 1})
	assert.Contains(t, omega, 15995)
	assert.Contains(t, omega, -15995)
	assert.NotContains(t, omega, 0)
}

func TestExpand_ReplicatesAcrossOffsetsAndKeepsNonnegativeColumns(t *testing.T) {
	s := &store.Store{
		N:         1,
		SpecID:    []int{0},
		MZCol:     []int{5},
		NLCol:     []int{5},
		Intensity: []float64{1.0},
		Count:     []float64{1.0},
		Shift:     0,
	}
	expanded, err := kernel.Expand(s, 0.001, kernel.Options{Tolerance: 0.002, MassDiffs: []float64{0}, ReactSteps: 1})
	require.NoError(t, err)
	assert.Equal(t, 6, expanded.NNZNet()) // 3 offsets (-1,0,1) x 2 axes
	for _, c := range expanded.Col {
		assert.GreaterOrEqual(t, c, 0)
	}
}

func TestExpand_ResourceBudgetExceeded(t *testing.T) {
	s := &store.Store{
		N:         1,
		SpecID:    []int{0},
		MZCol:     []int{5},
		NLCol:     []int{5},
		Intensity: []float64{1.0},
		Count:     []float64{1.0},
	}
	_, err := kernel.Expand(s, 0.001, kernel.Options{
		Tolerance: 0.01, MassDiffs: []float64{0}, ReactSteps: 1, MaxExpandedNNZ: 1,
	})
	require.Error(t, err)
}
