package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDiminishingReturns verifies the diminishing returns formula
func TestDiminishingReturns(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		scale    float64
		expected float64
	}{
		{
			name:     "zero value returns zero",
			value:    0,
			scale:    100,
			expected: 0,
		},
		{
			name:     "negative value returns zero",
			value:    -50,
			scale:    100,
			expected: 0,
		},
		{
			name:     "value equals scale gives 0.5",
			value:    100,
			scale:    100,
			expected: 0.5,
		},
		{
			name:     "very large value approaches 1",
			value:    10000,
			scale:    10,
			expected: 0.9990009990009990,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DiminishingReturns(tt.value, tt.scale)
			assert.InDelta(t, tt.expected, result, 0.0001)

			assert.GreaterOrEqual(t, result, 0.0, "Result should never be negative")
			assert.LessOrEqual(t, result, 1.0, "Result should never exceed 1")
		})
	}
}

// TestRandomInt tests the random integer generator
func TestRandomInt(t *testing.T) {
	t.Run("returns value within range", func(t *testing.T) {
		min, max := 1, 10

		for i := 0; i < 100; i++ {
			result := RandomInt(min, max)
			assert.GreaterOrEqual(t, result, min)
			assert.LessOrEqual(t, result, max)
		}
	})

	t.Run("handles min equals max", func(t *testing.T) {
		assert.Equal(t, 42, RandomInt(42, 42))
	})

	t.Run("handles inverted range gracefully", func(t *testing.T) {
		// When min > max, should return min
		assert.Equal(t, 10, RandomInt(10, 5))
	})
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(5, 0, 10))
	assert.Equal(t, 0, Clamp(-3, 0, 10))
	assert.Equal(t, 10, Clamp(99, 0, 10))
}

func TestClampFloat(t *testing.T) {
	assert.Equal(t, 0.5, ClampFloat(0.5, 0, 1))
	assert.Equal(t, 0.0, ClampFloat(-0.1, 0, 1))
	assert.Equal(t, 1.0, ClampFloat(1.7, 0, 1))
}
