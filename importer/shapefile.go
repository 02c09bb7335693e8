package importer

import (
	"fmt"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	geom "github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"solar-site-area/model"
)

// readShapefile reads polygon records from an ESRI shapefile. Each outer
// part becomes one imported ring; hole parts (counter-clockwise in the
// shapefile convention) are dropped. Records are named from a name-like
// attribute when the DBF carries one.
func readShapefile(path string) ([]ImportedRing, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "importer: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	nameIdx := -1
	for i, field := range reader.Fields() {
		name := strings.ToLower(strings.TrimRight(field.String(), "\x00"))
		if name == "name" || name == "zone" || name == "label" {
			nameIdx = i
			break
		}
	}

	var rings []ImportedRing
	var skipped int
	record := 0

	for reader.Next() {
		_, shape := reader.Shape()
		record++

		polygon, ok := shape.(*shp.Polygon)
		if !ok {
			skipped++
			continue
		}

		mp := polygonToMultiPolygon(polygon)
		if mp == nil {
			skipped++
			continue
		}

		name := fmt.Sprintf("record-%d", record)
		if nameIdx >= 0 {
			if attr := strings.TrimSpace(strings.TrimRight(reader.Attribute(nameIdx), "\x00")); attr != "" {
				name = attr
			}
		}

		for i := 0; i < mp.NumPolygons(); i++ {
			shell := mp.Polygon(i).LinearRing(0)
			ring := model.Ring{Coordinates: make([]model.Point, 0, shell.NumCoords())}
			for _, coord := range shell.Coords() {
				ring.Coordinates = append(ring.Coordinates, model.Point{
					Latitude:  coord[1],
					Longitude: coord[0],
				})
			}
			rings = append(rings, ImportedRing{Name: name, Ring: ring})
		}
	}

	// Next returns false on both clean EOF and a read failure; a
	// truncated file must not pass for a short ring set.
	if err := reader.Err(); err != nil {
		return nil, eris.Wrapf(err, "importer: read shapefile %s", path)
	}

	if skipped > 0 {
		zap.L().Debug("importer: skipped shapefile records",
			zap.String("path", path),
			zap.Int("skipped", skipped))
	}

	return rings, nil
}

// polygonToMultiPolygon converts a shapefile Polygon to a go-geom
// MultiPolygon of its outer parts, skipping malformed parts.
func polygonToMultiPolygon(p *shp.Polygon) *geom.MultiPolygon {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY).SetSRID(4326)

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		var end int32
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		} else {
			end = int32(len(p.Points))
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}

		// Shapefile outer rings wind clockwise; counter-clockwise
		// parts are holes in a preceding outer ring.
		if signedPartArea(flat) > 0 {
			continue
		}

		ring := geom.NewLinearRingFlat(geom.XY, flat)
		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(ring); err != nil {
			zap.L().Debug("importer: skipping malformed polygon ring",
				zap.Int32("part", i), zap.Error(err))
			continue
		}

		if err := mp.Push(poly); err != nil {
			zap.L().Debug("importer: skipping malformed polygon part",
				zap.Int32("part", i), zap.Error(err))
			continue
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}

// signedPartArea is the planar shoelace sum over flat XY pairs; positive
// for counter-clockwise winding.
func signedPartArea(flat []float64) float64 {
	n := len(flat) / 2
	if n < 3 {
		return 0
	}
	area := 0.0
	j := n - 1
	for i := 0; i < n; i++ {
		area += (flat[2*j] + flat[2*i]) * (flat[2*i+1] - flat[2*j+1])
		j = i
	}
	return area / 2
}
