package signal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindMaxima(t *testing.T) {
	t.Parallel()

	t.Run("sine wave peaks", func(t *testing.T) {
		t.Parallel()
		xs := make([]float64, 60)
		for i := range xs {
			xs[i] = math.Sin(2 * math.Pi * float64(i) / 20)
		}
		assert.Equal(t, []int{5, 25, 45}, FindMaxima(xs, 10, 0.5))
	})

	t.Run("separation keeps the stronger peak", func(t *testing.T) {
		t.Parallel()
		xs := []float64{0, 1, 0, 2, 0}
		assert.Equal(t, []int{1, 3}, FindMaxima(xs, 2, 0.5))
		assert.Equal(t, []int{3}, FindMaxima(xs, 3, 0.5))
	})

	t.Run("prominence rejects jitter", func(t *testing.T) {
		t.Parallel()
		xs := []float64{0, 0.05, 0, 1, 0}
		assert.Equal(t, []int{3}, FindMaxima(xs, 1, 0.5))
	})

	t.Run("boundary-unbounded side does not cap prominence", func(t *testing.T) {
		t.Parallel()
		// The strong peak at 1 never meets a higher sample on either side;
		// its prominence is the drop to the global valley.
		xs := []float64{0, 5, 1, 2, 1}
		assert.Equal(t, []int{1}, FindMaxima(xs, 1, 3))
	})

	t.Run("NaN samples never form extrema", func(t *testing.T) {
		t.Parallel()
		xs := []float64{0, math.NaN(), 5, math.NaN(), 0}
		assert.Empty(t, FindMaxima(xs, 1, 0))
	})

	t.Run("plateau contributes its leftmost sample", func(t *testing.T) {
		t.Parallel()
		xs := []float64{0, 2, 2, 2, 0}
		assert.Equal(t, []int{1}, FindMaxima(xs, 1, 0.5))
	})

	t.Run("monotonic signal has no peaks", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, FindMaxima([]float64{1, 2, 3, 4}, 1, 0))
	})
}

func TestFindMinima(t *testing.T) {
	t.Parallel()

	t.Run("sine wave troughs", func(t *testing.T) {
		t.Parallel()
		xs := make([]float64, 60)
		for i := range xs {
			xs[i] = math.Sin(2 * math.Pi * float64(i) / 20)
		}
		assert.Equal(t, []int{15, 35, 55}, FindMinima(xs, 10, 0.5))
	})

	t.Run("valley between peaks", func(t *testing.T) {
		t.Parallel()
		xs := []float64{1, 0, 1, 0.5, 1}
		assert.Equal(t, []int{1, 3}, FindMinima(xs, 1, 0.4))
	})
}
