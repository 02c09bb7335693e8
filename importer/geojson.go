package importer

import (
	"fmt"
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"solar-site-area/usecase"
)

// readGeoJSON reads the outer ring of every polygonal feature in a GeoJSON
// FeatureCollection. Interior rings are ignored: site files describe each
// boundary and exclusion as a simple ring, and holes drawn in source data
// are handled by the engine's union, not the import.
func readGeoJSON(path string) ([]ImportedRing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "importer: read %s", path)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, eris.Wrapf(err, "importer: parse geojson %s", path)
	}

	var rings []ImportedRing
	for i, feature := range fc.Features {
		name := featureName(feature, i)

		var polygons [][][][]float64
		switch {
		case feature.Geometry == nil:
			continue
		case feature.Geometry.Type == geojson.GeometryPolygon:
			polygons = [][][][]float64{feature.Geometry.Polygon}
		case feature.Geometry.Type == geojson.GeometryMultiPolygon:
			polygons = feature.Geometry.MultiPolygon
		default:
			zap.L().Debug("importer: skipping non-polygon feature",
				zap.String("name", name),
				zap.String("type", string(feature.Geometry.Type)))
			continue
		}

		for _, polygon := range polygons {
			if len(polygon) == 0 {
				continue
			}
			rings = append(rings, ImportedRing{
				Name: name,
				Ring: usecase.PositionsToRing(polygon[0]),
			})
		}
	}
	return rings, nil
}

func featureName(feature *geojson.Feature, index int) string {
	for _, key := range []string{"name", "Name", "zone_type"} {
		if s, err := feature.PropertyString(key); err == nil && s != "" {
			return s
		}
	}
	return fmt.Sprintf("feature-%d", index)
}
