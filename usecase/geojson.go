package usecase

import (
	geojson "github.com/paulmach/go.geojson"
	"github.com/rotisserie/eris"

	"solar-site-area/model"
)

// RingToPositions converts a ring to GeoJSON positions ([lon, lat] order).
func RingToPositions(ring model.Ring) [][]float64 {
	positions := make([][]float64, 0, len(ring.Coordinates))
	for _, point := range ring.Coordinates {
		positions = append(positions, []float64{point.Longitude, point.Latitude})
	}
	return positions
}

// PositionsToRing converts GeoJSON positions ([lon, lat]) to a ring.
// Positions with fewer than two ordinates are skipped.
func PositionsToRing(positions [][]float64) model.Ring {
	coords := make([]model.Point, 0, len(positions))
	for _, pos := range positions {
		if len(pos) < 2 {
			continue
		}
		coords = append(coords, model.Point{Latitude: pos[1], Longitude: pos[0]})
	}
	return model.Ring{Coordinates: coords}
}

func positionsToPolygon(rings [][][]float64) (model.Polygon, bool) {
	if len(rings) == 0 || len(rings[0]) == 0 {
		return model.Polygon{}, false
	}
	polygon := model.Polygon{Shell: PositionsToRing(rings[0])}
	for _, hole := range rings[1:] {
		polygon.Holes = append(polygon.Holes, PositionsToRing(hole))
	}
	return polygon, true
}

// geometryPolygons collects the areal parts of a decoded geometry,
// recursing into collections. Points and lines that GEOS sometimes emits
// for degenerate intersections are ignored.
func geometryPolygons(g *geojson.Geometry) []model.Polygon {
	if g == nil {
		return nil
	}
	var polygons []model.Polygon
	switch g.Type {
	case geojson.GeometryPolygon:
		if polygon, ok := positionsToPolygon(g.Polygon); ok {
			polygons = append(polygons, polygon)
		}
	case geojson.GeometryMultiPolygon:
		for _, rings := range g.MultiPolygon {
			if polygon, ok := positionsToPolygon(rings); ok {
				polygons = append(polygons, polygon)
			}
		}
	case geojson.GeometryCollection:
		for _, member := range g.Geometries {
			polygons = append(polygons, geometryPolygons(member)...)
		}
	}
	return polygons
}

// DecodeRegion parses a GeoJSON geometry document (the form GEOS emits)
// into a tagged Region. Non-areal geometries decode as empty.
func DecodeRegion(data []byte) (model.Region, error) {
	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return model.Region{}, eris.Wrap(err, "usecase: decode region geojson")
	}

	polygons := geometryPolygons(g)
	switch len(polygons) {
	case 0:
		return model.Region{Kind: model.RegionEmpty}, nil
	case 1:
		return model.Region{Kind: model.RegionSingle, Polygons: polygons}, nil
	default:
		return model.Region{Kind: model.RegionMulti, Polygons: polygons}, nil
	}
}

func polygonPositions(polygon model.Polygon) [][][]float64 {
	rings := make([][][]float64, 0, 1+len(polygon.Holes))
	rings = append(rings, RingToPositions(polygon.Shell))
	for _, hole := range polygon.Holes {
		rings = append(rings, RingToPositions(hole))
	}
	return rings
}

// RegionFeature builds a GeoJSON feature for a region, as a Polygon for
// single regions and a MultiPolygon otherwise. Empty regions yield an
// empty Polygon feature.
func RegionFeature(region model.Region) *geojson.Feature {
	switch region.Kind {
	case model.RegionSingle:
		return geojson.NewPolygonFeature(polygonPositions(region.Polygons[0]))
	case model.RegionMulti:
		polygons := make([][][][]float64, 0, len(region.Polygons))
		for _, polygon := range region.Polygons {
			polygons = append(polygons, polygonPositions(polygon))
		}
		return geojson.NewFeature(geojson.NewMultiPolygonGeometry(polygons...))
	default:
		return geojson.NewPolygonFeature([][][]float64{})
	}
}
