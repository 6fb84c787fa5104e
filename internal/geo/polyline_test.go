package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolylineRoundTrip(t *testing.T) {
	points := [][]float64{
		{2.3522, 48.8566},
		{-0.1278, 51.5074},
		{13.405, 52.52},
		{-73.98542, 40.74846},
	}

	decoded := DecodePolyline(EncodePolyline(points))
	require.Len(t, decoded, len(points))
	for i, p := range points {
		assert.InDelta(t, p[0], decoded[i][0], 1e-4, "lon at %d", i)
		assert.InDelta(t, p[1], decoded[i][1], 1e-4, "lat at %d", i)
	}
}

// Reference vector from the polyline format documentation,
// expressed here as [lon, lat] pairs.
func TestPolylineKnownEncoding(t *testing.T) {
	points := [][]float64{
		{-120.2, 38.5},
		{-120.95, 40.7},
		{-126.453, 43.252},
	}

	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", EncodePolyline(points))

	decoded := DecodePolyline("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	require.Len(t, decoded, 3)
	for i, p := range points {
		assert.InDelta(t, p[0], decoded[i][0], 1e-5)
		assert.InDelta(t, p[1], decoded[i][1], 1e-5)
	}
}

func TestDecodePolylineEmpty(t *testing.T) {
	decoded := DecodePolyline("")
	require.NotNil(t, decoded)
	assert.Empty(t, decoded)
}

func TestEncodePolylineEmpty(t *testing.T) {
	assert.Equal(t, "", EncodePolyline(nil))
	assert.Equal(t, "", EncodePolyline([][]float64{}))
}
