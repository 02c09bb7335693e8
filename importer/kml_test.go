package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-site-area/model"
)

const siteKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <name>Site Export</name>
    <Placemark>
      <name>Boundary</name>
      <Polygon>
        <outerBoundaryIs>
          <LinearRing>
            <coordinates>
              -121.70,38.50,0 -121.69,38.50,0 -121.69,38.51,0 -121.70,38.51,0 -121.70,38.50,0
            </coordinates>
          </LinearRing>
        </outerBoundaryIs>
      </Polygon>
    </Placemark>
    <Folder>
      <name>Exclusions</name>
      <Placemark>
        <name>Wetland A</name>
        <MultiGeometry>
          <Polygon>
            <outerBoundaryIs>
              <LinearRing>
                <coordinates>-121.695,38.502 -121.694,38.502 -121.694,38.503 -121.695,38.502</coordinates>
              </LinearRing>
            </outerBoundaryIs>
          </Polygon>
          <Polygon>
            <outerBoundaryIs>
              <LinearRing>
                <coordinates>-121.698,38.505 -121.697,38.505 -121.697,38.506 -121.698,38.505</coordinates>
              </LinearRing>
            </outerBoundaryIs>
          </Polygon>
        </MultiGeometry>
      </Placemark>
    </Folder>
  </Document>
</kml>`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadRings_KML(t *testing.T) {
	rings, err := ReadRings(writeTemp(t, "site.kml", siteKML))

	require.NoError(t, err)
	require.Len(t, rings, 3)

	assert.Equal(t, "Boundary", rings[0].Name)
	assert.Len(t, rings[0].Ring.Coordinates, 5)
	assert.Equal(t, model.Point{Latitude: 38.50, Longitude: -121.70}, rings[0].Ring.Coordinates[0])

	assert.Equal(t, "Wetland A", rings[1].Name)
	assert.Equal(t, "Wetland A", rings[2].Name)
}

func TestReadRings_KMLWithoutDocumentWrapper(t *testing.T) {
	kml := `<kml><Placemark><name>Parcel</name><Polygon><outerBoundaryIs><LinearRing>
		<coordinates>0,0 1,0 1,1 0,0</coordinates>
	</LinearRing></outerBoundaryIs></Polygon></Placemark></kml>`

	rings, err := ReadRings(writeTemp(t, "bare.kml", kml))

	require.NoError(t, err)
	require.Len(t, rings, 1)
	assert.Equal(t, "Parcel", rings[0].Name)
}

func TestReadRings_KMLSkipsBadRing(t *testing.T) {
	kml := `<kml><Document>
	<Placemark><name>bad</name><Polygon><outerBoundaryIs><LinearRing>
		<coordinates>not-a-number,38 -121,38</coordinates>
	</LinearRing></outerBoundaryIs></Polygon></Placemark>
	<Placemark><name>good</name><Polygon><outerBoundaryIs><LinearRing>
		<coordinates>0,0 1,0 1,1 0,0</coordinates>
	</LinearRing></outerBoundaryIs></Polygon></Placemark>
	</Document></kml>`

	rings, err := ReadRings(writeTemp(t, "mixed.kml", kml))

	require.NoError(t, err)
	require.Len(t, rings, 1)
	assert.Equal(t, "good", rings[0].Name)
}

func TestReadRings_MalformedKML(t *testing.T) {
	_, err := ReadRings(writeTemp(t, "broken.kml", "<kml><Document>"))
	assert.Error(t, err)
}

func TestParseCoordinates_DropsElevation(t *testing.T) {
	ring, err := parseCoordinates("10,20,300 11,21")

	require.NoError(t, err)
	require.Len(t, ring.Coordinates, 2)
	assert.Equal(t, model.Point{Latitude: 20, Longitude: 10}, ring.Coordinates[0])
	assert.Equal(t, model.Point{Latitude: 21, Longitude: 11}, ring.Coordinates[1])
}

func TestParseCoordinates_BadTuple(t *testing.T) {
	_, err := parseCoordinates("10")
	assert.Error(t, err)
}
