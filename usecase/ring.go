package usecase

import "solar-site-area/model"

// MinRingVertices is the minimum number of distinct vertices a ring needs
// to bound any area.
const MinRingVertices = 3

// DistinctVertexCount counts unique coordinate pairs in the ring, not
// counting a closing duplicate of the first vertex.
func DistinctVertexCount(ring model.Ring) int {
	seen := make(map[model.Point]struct{}, len(ring.Coordinates))
	for _, p := range ring.Coordinates {
		seen[p] = struct{}{}
	}
	return len(seen)
}

// CloseRing appends a copy of the first vertex when the ring is open.
func CloseRing(ring model.Ring) model.Ring {
	if len(ring.Coordinates) == 0 || ring.Closed() {
		return ring
	}
	closed := make([]model.Point, 0, len(ring.Coordinates)+1)
	closed = append(closed, ring.Coordinates...)
	closed = append(closed, ring.Coordinates[0])
	return model.Ring{Coordinates: closed}
}

// ValidateRing returns the closed ring and true when the ring has at least
// MinRingVertices distinct vertices, or the zero ring and false otherwise.
// Callers drop invalid rings and keep going; a bad ring never aborts the
// rest of the input.
func ValidateRing(ring model.Ring) (model.Ring, bool) {
	if DistinctVertexCount(ring) < MinRingVertices {
		return model.Ring{}, false
	}
	return CloseRing(ring), true
}

// ValidRings filters a ring collection down to its valid, closed members.
func ValidRings(rings []model.Ring) []model.Ring {
	valid := make([]model.Ring, 0, len(rings))
	for _, ring := range rings {
		if closed, ok := ValidateRing(ring); ok {
			valid = append(valid, closed)
		}
	}
	return valid
}
