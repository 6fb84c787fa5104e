package geo

import (
	"math"
	"strings"
)

// Precision factor of the encoded polyline format (5 decimal places).
const polylinePrecision = 1e5

// EncodePolyline encodes a sequence of [lon, lat] pairs into the compact
// delta-encoded string format used by routing providers for path geometry.
func EncodePolyline(points [][]float64) string {
	var b strings.Builder
	var prevLat, prevLon int64

	for _, p := range points {
		if len(p) < 2 {
			continue
		}
		lat := int64(math.Round(p[1] * polylinePrecision))
		lon := int64(math.Round(p[0] * polylinePrecision))
		encodePolylineValue(&b, lat-prevLat)
		encodePolylineValue(&b, lon-prevLon)
		prevLat, prevLon = lat, lon
	}

	return b.String()
}

// DecodePolyline decodes an encoded polyline into [lon, lat] pairs.
// An empty input yields an empty (non-nil) sequence; a truncated trailing
// chunk is dropped rather than treated as an error.
func DecodePolyline(s string) [][]float64 {
	points := [][]float64{}
	var lat, lon int64

	i := 0
	for i < len(s) {
		dLat, n, ok := decodePolylineValue(s[i:])
		if !ok {
			break
		}
		i += n
		lat += dLat

		dLon, n, ok := decodePolylineValue(s[i:])
		if !ok {
			break
		}
		i += n
		lon += dLon

		points = append(points, []float64{
			float64(lon) / polylinePrecision,
			float64(lat) / polylinePrecision,
		})
	}

	return points
}

// encodePolylineValue writes one zigzag-encoded value as 5-bit chunks,
// least significant first, each offset by 63 into printable ASCII.
func encodePolylineValue(b *strings.Builder, v int64) {
	u := v << 1
	if v < 0 {
		u = ^u
	}
	for u >= 0x20 {
		b.WriteByte(byte(0x20|(u&0x1f)) + 63)
		u >>= 5
	}
	b.WriteByte(byte(u) + 63)
}

// decodePolylineValue reads one value, returning it, the number of bytes
// consumed, and whether a complete chunk sequence was present.
func decodePolylineValue(s string) (int64, int, bool) {
	var result int64
	var shift uint

	for i := 0; i < len(s); i++ {
		c := int64(s[i]) - 63
		result |= (c & 0x1f) << shift
		if c < 0x20 {
			v := result >> 1
			if result&1 != 0 {
				v = ^v
			}
			return v, i + 1, true
		}
		shift += 5
	}

	return 0, len(s), false
}
