package importer

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"solar-site-area/model"
)

// Minimal KML document shape: placemarks holding polygons, possibly nested
// in folders or grouped under MultiGeometry. Only outer boundaries are
// read, matching the GeoJSON importer.

type kmlRoot struct {
	XMLName  xml.Name  `xml:"kml"`
	Document kmlFolder `xml:"Document"`
	// Some exporters omit the Document wrapper.
	Placemarks []kmlPlacemark `xml:"Placemark"`
}

type kmlFolder struct {
	Name       string         `xml:"name"`
	Folders    []kmlFolder    `xml:"Folder"`
	Placemarks []kmlPlacemark `xml:"Placemark"`
}

type kmlPlacemark struct {
	Name          string            `xml:"name"`
	Polygon       *kmlPolygon       `xml:"Polygon"`
	MultiGeometry *kmlMultiGeometry `xml:"MultiGeometry"`
}

type kmlMultiGeometry struct {
	Polygons []kmlPolygon `xml:"Polygon"`
}

type kmlPolygon struct {
	Outer kmlBoundary `xml:"outerBoundaryIs"`
}

type kmlBoundary struct {
	Ring kmlLinearRing `xml:"LinearRing"`
}

type kmlLinearRing struct {
	Coordinates string `xml:"coordinates"`
}

func readKML(path string) ([]ImportedRing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "importer: read %s", path)
	}

	var root kmlRoot
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, eris.Wrapf(err, "importer: parse kml %s", path)
	}

	var rings []ImportedRing
	collectPlacemarks(root.Placemarks, &rings)
	collectFolder(root.Document, &rings)
	return rings, nil
}

func collectFolder(folder kmlFolder, rings *[]ImportedRing) {
	collectPlacemarks(folder.Placemarks, rings)
	for _, sub := range folder.Folders {
		collectFolder(sub, rings)
	}
}

func collectPlacemarks(placemarks []kmlPlacemark, rings *[]ImportedRing) {
	for i, placemark := range placemarks {
		name := placemark.Name
		if name == "" {
			name = fmt.Sprintf("placemark-%d", i)
		}

		var polygons []kmlPolygon
		if placemark.Polygon != nil {
			polygons = append(polygons, *placemark.Polygon)
		}
		if placemark.MultiGeometry != nil {
			polygons = append(polygons, placemark.MultiGeometry.Polygons...)
		}

		for _, polygon := range polygons {
			ring, err := parseCoordinates(polygon.Outer.Ring.Coordinates)
			if err != nil {
				zap.L().Debug("importer: skipping unparseable kml ring",
					zap.String("name", name), zap.Error(err))
				continue
			}
			*rings = append(*rings, ImportedRing{Name: name, Ring: ring})
		}
	}
}

// parseCoordinates reads a KML coordinate string: whitespace-separated
// "lon,lat[,alt]" tuples. Elevation is discarded.
func parseCoordinates(raw string) (model.Ring, error) {
	var coords []model.Point
	for _, tuple := range strings.Fields(raw) {
		parts := strings.Split(tuple, ",")
		if len(parts) < 2 {
			return model.Ring{}, eris.Errorf("importer: bad kml coordinate tuple %q", tuple)
		}
		lon, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return model.Ring{}, eris.Wrapf(err, "importer: bad kml longitude %q", parts[0])
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return model.Ring{}, eris.Wrapf(err, "importer: bad kml latitude %q", parts[1])
		}
		coords = append(coords, model.Point{Latitude: lat, Longitude: lon})
	}
	return model.Ring{Coordinates: coords}, nil
}
