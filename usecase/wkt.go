package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"solar-site-area/model"
)

// RingToPolygonWKT converts a single ring to a POLYGON WKT string for GEOS
// input, closing the ring if needed. Coordinates are written at full float64
// precision so round-tripping through GEOS does not move vertices.
func RingToPolygonWKT(ring model.Ring) string {
	closed := CloseRing(ring)

	coords := make([]string, 0, len(closed.Coordinates))
	for _, point := range closed.Coordinates {
		coords = append(coords, fmt.Sprintf("%s %s",
			strconv.FormatFloat(point.Longitude, 'f', -1, 64),
			strconv.FormatFloat(point.Latitude, 'f', -1, 64)))
	}

	return fmt.Sprintf("POLYGON((%s))", strings.Join(coords, ", "))
}
