package geo_test

import (
	"math"
	"testing"

	"dine-api/internal/geo"

	"github.com/stretchr/testify/assert"
)

func TestDistanceZero(t *testing.T) {
	assert.Equal(t, 0.0, geo.Distance(0, 0, 0, 0))
	assert.Equal(t, 0.0, geo.Distance(39.9087, 116.3975, 39.9087, 116.3975))
}

func TestDistanceOneDegreeOnEquator(t *testing.T) {
	// 赤道上经度 1 度的弧长 = R * π/180
	assert.Equal(t, 111319.0, geo.Distance(0, 0, 0, 1))
	assert.Equal(t, 111319.0, geo.Distance(0, 0, 1, 0))
}

func TestDistanceSymmetric(t *testing.T) {
	cases := [][4]float64{
		{39.9087, 116.3975, 31.2304, 121.4737},
		{22.5431, 114.0579, 23.1291, 113.2644},
		{-33.8688, 151.2093, 51.5074, -0.1278},
	}
	for _, c := range cases {
		assert.Equal(t,
			geo.Distance(c[0], c[1], c[2], c[3]),
			geo.Distance(c[2], c[3], c[0], c[1]))
	}
}

func TestDistanceNaNPropagates(t *testing.T) {
	assert.True(t, math.IsNaN(geo.Distance(math.NaN(), 0, 0, 0)))
}
