package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChebyshev(t *testing.T) {
	tests := []struct {
		name                   string
		x1, y1, x2, y2, expect int
	}{
		{"same point", 2, 2, 2, 2, 0},
		{"orthogonal", 0, 0, 3, 0, 3},
		{"diagonal counts once", 0, 0, 3, 3, 3},
		{"mixed", 1, 5, 4, 3, 3},
		{"negative delta", 5, 5, 2, 7, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Chebyshev(tt.x1, tt.y1, tt.x2, tt.y2))
		})
	}
}

func TestWithinChebyshev(t *testing.T) {
	assert.True(t, WithinChebyshev(0, 0, 2, 2, 2))
	assert.False(t, WithinChebyshev(0, 0, 2, 3, 2))
	assert.True(t, WithinChebyshev(1, 1, 1, 1, 0))
}

func TestTeamOpponent(t *testing.T) {
	assert.Equal(t, Red, Blue.Opponent())
	assert.Equal(t, Blue, Red.Opponent())
	assert.Equal(t, "BLUE", Blue.String())
	assert.Equal(t, "RED", Red.String())
}

func TestDirectionOffset(t *testing.T) {
	x, y := UpRight.Offset(3, 4)
	assert.Equal(t, 4, x)
	assert.Equal(t, 5, y)

	x, y = Stay.Offset(3, 4)
	assert.Equal(t, 3, x)
	assert.Equal(t, 4, y)
	assert.True(t, Stay.IsStay())
	assert.False(t, Down.IsStay())
	assert.Len(t, Directions, 9)
}
