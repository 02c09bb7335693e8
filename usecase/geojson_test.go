package usecase

import (
	"testing"

	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-site-area/model"
)

func TestDecodeRegion_Polygon(t *testing.T) {
	doc := `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}`

	region, err := DecodeRegion([]byte(doc))

	require.NoError(t, err)
	assert.Equal(t, model.RegionSingle, region.Kind)
	require.Len(t, region.Polygons, 1)
	assert.Len(t, region.Polygons[0].Shell.Coordinates, 5)
	assert.Empty(t, region.Polygons[0].Holes)
}

func TestDecodeRegion_PolygonWithHole(t *testing.T) {
	doc := `{"type":"Polygon","coordinates":[
		[[0,0],[10,0],[10,10],[0,10],[0,0]],
		[[4,4],[6,4],[6,6],[4,6],[4,4]]
	]}`

	region, err := DecodeRegion([]byte(doc))

	require.NoError(t, err)
	require.Len(t, region.Polygons, 1)
	assert.Len(t, region.Polygons[0].Holes, 1)
}

func TestDecodeRegion_MultiPolygon(t *testing.T) {
	doc := `{"type":"MultiPolygon","coordinates":[
		[[[0,0],[1,0],[1,1],[0,0]]],
		[[[5,5],[6,5],[6,6],[5,5]]]
	]}`

	region, err := DecodeRegion([]byte(doc))

	require.NoError(t, err)
	assert.Equal(t, model.RegionMulti, region.Kind)
	assert.Len(t, region.Polygons, 2)
}

func TestDecodeRegion_EmptyPolygon(t *testing.T) {
	region, err := DecodeRegion([]byte(`{"type":"Polygon","coordinates":[]}`))

	require.NoError(t, err)
	assert.True(t, region.Empty())
}

func TestDecodeRegion_CollectionFiltersNonAreal(t *testing.T) {
	// Degenerate intersections come back as collections mixing points
	// and lines with the polygons that matter.
	doc := `{"type":"GeometryCollection","geometries":[
		{"type":"Point","coordinates":[1,2]},
		{"type":"LineString","coordinates":[[0,0],[1,1]]},
		{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}
	]}`

	region, err := DecodeRegion([]byte(doc))

	require.NoError(t, err)
	assert.Equal(t, model.RegionSingle, region.Kind)
}

func TestDecodeRegion_PointOnlyIsEmpty(t *testing.T) {
	region, err := DecodeRegion([]byte(`{"type":"Point","coordinates":[1,2]}`))

	require.NoError(t, err)
	assert.True(t, region.Empty())
}

func TestDecodeRegion_Malformed(t *testing.T) {
	_, err := DecodeRegion([]byte(`{"type":`))
	assert.Error(t, err)
}

func TestRegionFeature_SingleIsPolygon(t *testing.T) {
	region := model.Region{Kind: model.RegionSingle, Polygons: []model.Polygon{
		{Shell: CloseRing(triangle())},
	}}

	feature := RegionFeature(region)

	require.NotNil(t, feature.Geometry)
	assert.Equal(t, geojson.GeometryPolygon, feature.Geometry.Type)
	assert.Len(t, feature.Geometry.Polygon, 1)
}

func TestRegionFeature_MultiIsMultiPolygon(t *testing.T) {
	region := model.Region{Kind: model.RegionMulti, Polygons: []model.Polygon{
		{Shell: CloseRing(triangle())},
		{Shell: CloseRing(triangle())},
	}}

	feature := RegionFeature(region)

	require.NotNil(t, feature.Geometry)
	assert.Equal(t, geojson.GeometryMultiPolygon, feature.Geometry.Type)
	assert.Len(t, feature.Geometry.MultiPolygon, 2)
}

func TestRegionFeature_EmptyRegion(t *testing.T) {
	feature := RegionFeature(model.Region{})

	require.NotNil(t, feature.Geometry)
	assert.Equal(t, geojson.GeometryPolygon, feature.Geometry.Type)
	assert.Empty(t, feature.Geometry.Polygon)
}

func TestPositionsToRing_SkipsShortPositions(t *testing.T) {
	ring := PositionsToRing([][]float64{{1, 2}, {3}, {4, 5, 6}})

	require.Len(t, ring.Coordinates, 2)
	assert.Equal(t, model.Point{Latitude: 2, Longitude: 1}, ring.Coordinates[0])
	assert.Equal(t, model.Point{Latitude: 5, Longitude: 4}, ring.Coordinates[1])
}

func TestRingPositionsRoundTrip(t *testing.T) {
	ring := CloseRing(triangle())

	assert.Equal(t, ring, PositionsToRing(RingToPositions(ring)))
}
