// Package importer reads site boundary and exclusion rings from the file
// formats the project pipeline produces: KML exports from the mapping
// tools, GeoJSON, and ESRI shapefiles for parcel data.
package importer

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"solar-site-area/model"
	"solar-site-area/usecase"
)

// ImportedRing is one named ring read from a site file. Rings are passed
// to the engine as-is; validation happens there so a bad ring in a file
// never blocks its neighbors.
type ImportedRing struct {
	Name string
	Ring model.Ring
}

// ReadRings reads all rings from path, dispatching on the file extension.
func ReadRings(path string) ([]ImportedRing, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".kml":
		return readKML(path)
	case ".geojson", ".json":
		return readGeoJSON(path)
	case ".shp":
		return readShapefile(path)
	default:
		return nil, eris.Errorf("importer: unsupported file type %q", filepath.Ext(path))
	}
}

// Boundaries wraps imported rings as site boundary polygons.
func Boundaries(rings []ImportedRing) []model.BoundaryPolygon {
	boundaries := make([]model.BoundaryPolygon, 0, len(rings))
	for _, r := range rings {
		boundaries = append(boundaries, model.BoundaryPolygon{Name: r.Name, Ring: r.Ring})
	}
	return boundaries
}

// Exclusions wraps imported rings as exclusion zones, inferring the zone
// type from the ring name and precomputing each zone's raw footprint. The
// raw area is what the engine's fallback path sums when exact clipping is
// impossible.
func Exclusions(rings []ImportedRing) []model.ExclusionZone {
	zones := make([]model.ExclusionZone, 0, len(rings))
	for _, r := range rings {
		zones = append(zones, model.ExclusionZone{
			Name:    r.Name,
			Type:    InferZoneType(r.Name),
			Ring:    r.Ring,
			RawArea: usecase.RingArea(r.Ring),
		})
	}
	return zones
}

// InferZoneType maps a ring name to a zone type by keyword.
func InferZoneType(name string) model.ZoneType {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "wetland"):
		return model.ZoneWetland
	case strings.Contains(lower, "setback"):
		return model.ZoneSetback
	case strings.Contains(lower, "easement"):
		return model.ZoneEasement
	case strings.Contains(lower, "buffer"):
		return model.ZoneBuffer
	default:
		return model.ZoneOther
	}
}
