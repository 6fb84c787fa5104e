package services

import (
	"math"
	"strconv"
	"strings"

	"route-optimizer-service/internal/domain"
)

// Fingerprint derives the deterministic route-cache key for a request:
// each stop's coordinates rounded to 4 decimal places in request order,
// plus vehicle type, optimization method, and loop flag. Rounding keeps
// sub-meter GPS jitter from defeating the cache.
func Fingerprint(stops []domain.Stop, vehicle domain.VehicleType, method domain.Method, loop bool) string {
	var b strings.Builder

	for _, s := range stops {
		if s.Coords == nil {
			b.WriteString("?;")
			continue
		}
		b.WriteString(formatRounded(s.Coords.Lat))
		b.WriteByte(',')
		b.WriteString(formatRounded(s.Coords.Lon))
		b.WriteByte(';')
	}

	b.WriteByte('|')
	b.WriteString(string(vehicle))
	b.WriteByte('|')
	b.WriteString(string(method))
	b.WriteByte('|')
	b.WriteString(strconv.FormatBool(loop))

	return b.String()
}

func formatRounded(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}
