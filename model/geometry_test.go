package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRingClosed(t *testing.T) {
	open := Ring{Coordinates: []Point{{Latitude: 0, Longitude: 0}, {Latitude: 1, Longitude: 1}, {Latitude: 1, Longitude: 0}}}
	closed := Ring{Coordinates: append(open.Coordinates, open.Coordinates[0])}

	assert.False(t, open.Closed())
	assert.True(t, closed.Closed())
	assert.False(t, Ring{}.Closed())
	assert.False(t, Ring{Coordinates: []Point{{Latitude: 1, Longitude: 1}}}.Closed())
}

func TestRegionEmpty(t *testing.T) {
	assert.True(t, Region{}.Empty())
	assert.True(t, Region{Kind: RegionEmpty}.Empty())
	assert.True(t, Region{Kind: RegionSingle}.Empty())
	assert.False(t, Region{Kind: RegionSingle, Polygons: []Polygon{{}}}.Empty())
}
