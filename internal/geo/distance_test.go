package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKilometersToMeters(t *testing.T) {
	assert.Equal(t, 5000.0, KilometersToMeters(5))
	assert.Equal(t, 0.0, KilometersToMeters(0))
	assert.Equal(t, 500.0, KilometersToMeters(0.5))
}

func TestHaversineMeters(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		expected               float64
		tolerance              float64
	}{
		{
			name: "same point",
			lat1: 6.5244, lon1: 3.3792,
			lat2: 6.5244, lon2: 3.3792,
			expected:  0,
			tolerance: 0.001,
		},
		{
			name: "lagos island to ikeja",
			lat1: 6.4541, lon1: 3.3947,
			lat2: 6.6018, lon2: 3.3515,
			expected:  17100,
			tolerance: 200,
		},
		{
			name: "london to paris",
			lat1: 51.5074, lon1: -0.1278,
			lat2: 48.8566, lon2: 2.3522,
			expected:  343500,
			tolerance: 1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineMeters(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.expected, got, tt.tolerance)
		})
	}
}
