package service

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geos"
	"go.uber.org/zap"

	"solar-site-area/model"
	"solar-site-area/usecase"
)

// go-geos panics when GEOS reports an error on an operation, so every
// geometry call the engine makes is routed through a recovering wrapper.
// A failed step is skipped or reported as an error, never propagated as a
// panic.

func safeUnion(acc, next *geos.Geom) (g *geos.Geom, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = eris.Errorf("service: union failed: %v", r)
		}
	}()
	return acc.Union(next), nil
}

func safeIntersection(a, b *geos.Geom) (g *geos.Geom, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = eris.Errorf("service: intersection failed: %v", r)
		}
	}()
	return a.Intersection(b), nil
}

func safeGeoJSON(g *geos.Geom) (doc string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = eris.Errorf("service: encode geojson failed: %v", r)
		}
	}()
	return g.ToGeoJSON(0), nil
}

// ringGeom parses one validated ring into a GEOS polygon. Rings GEOS
// rejects or marks invalid (self-intersection the vertex-count check
// cannot see) are reported so the caller can skip them.
func ringGeom(ring model.Ring) (g *geos.Geom, err error) {
	defer func() {
		if r := recover(); r != nil {
			g, err = nil, eris.Errorf("service: parse ring: %v", r)
		}
	}()

	g, err = geos.NewGeomFromWKT(usecase.RingToPolygonWKT(ring))
	if err != nil {
		return nil, eris.Wrap(err, "service: parse ring")
	}
	if !g.IsValid() {
		return nil, eris.New("service: ring is not a valid polygon")
	}
	return g, nil
}

// unifyRings validates every ring and folds a pairwise union across the
// survivors, carrying the accumulator as whatever geometry type the union
// returns. A ring that fails to parse, or a union step that fails, is
// skipped and the fold continues; nil is returned when nothing usable
// remains.
func unifyRings(rings []model.Ring) *geos.Geom {
	var acc *geos.Geom
	for i, ring := range rings {
		valid, ok := usecase.ValidateRing(ring)
		if !ok {
			zap.L().Debug("service: dropping degenerate ring", zap.Int("index", i))
			continue
		}

		g, err := ringGeom(valid)
		if err != nil {
			zap.L().Debug("service: skipping unparseable ring",
				zap.Int("index", i), zap.Error(err))
			continue
		}

		if acc == nil {
			acc = g
			continue
		}

		merged, err := safeUnion(acc, g)
		if err != nil {
			zap.L().Debug("service: skipping ring after failed union step",
				zap.Int("index", i), zap.Error(err))
			continue
		}
		acc = merged
	}
	return acc
}

// clip restricts the exclusion geometry to the boundary geometry. Either
// side being nil, or an empty or failed intersection, yields nil.
func clip(exclusion, boundary *geos.Geom) (*geos.Geom, error) {
	if exclusion == nil || boundary == nil {
		return nil, nil
	}
	clipped, err := safeIntersection(exclusion, boundary)
	if err != nil {
		return nil, err
	}
	if clipped == nil || clipped.IsEmpty() {
		return nil, nil
	}
	return clipped, nil
}

// regionGeoJSON is a variable so tests can force the exact pipeline to
// fail; well-formed ring input cannot otherwise reach the degraded path.
var regionGeoJSON = safeGeoJSON

// decodeRegion converts a GEOS geometry into the engine's tagged Region.
// nil decodes as the empty region.
func decodeRegion(g *geos.Geom) (model.Region, error) {
	if g == nil || g.IsEmpty() {
		return model.Region{Kind: model.RegionEmpty}, nil
	}
	doc, err := regionGeoJSON(g)
	if err != nil {
		return model.Region{}, err
	}
	return usecase.DecodeRegion([]byte(doc))
}

// UnifyBoundaries unions boundary rings into one region. Exported for the
// CLI's region export; the resolver uses the same fold internally.
func UnifyBoundaries(boundaries []model.BoundaryPolygon) (model.Region, error) {
	rings := make([]model.Ring, 0, len(boundaries))
	for _, b := range boundaries {
		rings = append(rings, b.Ring)
	}
	return decodeRegion(unifyRings(rings))
}

// UnifyExclusions unions exclusion rings into one region, collapsing
// overlap between zones so it is counted once.
func UnifyExclusions(exclusions []model.ExclusionZone) (model.Region, error) {
	rings := make([]model.Ring, 0, len(exclusions))
	for _, z := range exclusions {
		rings = append(rings, z.Ring)
	}
	return decodeRegion(unifyRings(rings))
}

// ClipExclusions returns the unified exclusion region restricted to the
// unified boundary region. Used by the CLI's region export; the resolver
// runs the same steps without re-decoding intermediates.
func ClipExclusions(boundaries []model.BoundaryPolygon, exclusions []model.ExclusionZone) (model.Region, error) {
	boundaryRings := make([]model.Ring, 0, len(boundaries))
	for _, b := range boundaries {
		boundaryRings = append(boundaryRings, b.Ring)
	}
	exclusionRings := make([]model.Ring, 0, len(exclusions))
	for _, z := range exclusions {
		exclusionRings = append(exclusionRings, z.Ring)
	}

	clipped, err := clip(unifyRings(exclusionRings), unifyRings(boundaryRings))
	if err != nil {
		return model.Region{}, err
	}
	return decodeRegion(clipped)
}
