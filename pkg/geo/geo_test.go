package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMicroDegrees(t *testing.T) {
	assert.Equal(t, 48856600, ToMicroDegrees(48.8566))
	assert.Equal(t, -2352200, ToMicroDegrees(-2.3522))
	assert.InDelta(t, 48.8566, FromMicroDegrees(48856600), 1e-9)
}

func TestGreatCircleMeters(t *testing.T) {
	// paris -> lyon kira-kira 392 km
	d := GreatCircleMeters(48856600, 2352200, 45764000, 4835700)
	assert.InDelta(t, 392000, d, 3000)
	assert.Equal(t, 0.0, GreatCircleMeters(1, 1, 1, 1))
	assert.InDelta(t, d, GreatCircleMeters(45764000, 4835700, 48856600, 2352200), 1e-6)
}
