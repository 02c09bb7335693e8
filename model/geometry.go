package model

// Point is a geographic coordinate in degrees. No elevation.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Ring is an ordered vertex list describing a simple polygon boundary.
// The first and last vertex need not be equal on input; validation closes
// open rings.
type Ring struct {
	Coordinates []Point
}

// Closed reports whether the first and last vertices are coordinate-equal.
func (r Ring) Closed() bool {
	n := len(r.Coordinates)
	if n < 2 {
		return false
	}
	return r.Coordinates[0] == r.Coordinates[n-1]
}

// BoundaryPolygon is one ring of a site's outer perimeter. A site may have
// several disjoint boundary polygons (split parcels).
type BoundaryPolygon struct {
	Name string
	Ring Ring
}

// ZoneType classifies an exclusion zone.
type ZoneType string

const (
	ZoneWetland  ZoneType = "wetland"
	ZoneSetback  ZoneType = "setback"
	ZoneEasement ZoneType = "easement"
	ZoneBuffer   ZoneType = "buffer"
	ZoneOther    ZoneType = "other"
)

// ExclusionZone is an interior no-build ring. RawArea is the zone's own
// footprint in m², precomputed by the import pipeline; it is used only by
// the fallback path, which sums raw areas without deduplicating overlap.
type ExclusionZone struct {
	Name    string
	Type    ZoneType
	Ring    Ring
	RawArea float64
}

// Polygon is an areal shape: one shell ring and zero or more hole rings.
type Polygon struct {
	Shell Ring
	Holes []Ring
}

// RegionKind tags the shape of a Region.
type RegionKind int

const (
	RegionEmpty RegionKind = iota
	RegionSingle
	RegionMulti
)

// Region is a unified geometry: empty, a single polygon, or a set of
// disjoint polygons. Downstream operations switch on Kind rather than
// guessing at the shape a union happened to return.
type Region struct {
	Kind     RegionKind
	Polygons []Polygon
}

// Empty reports whether the region covers no area.
func (r Region) Empty() bool {
	return r.Kind == RegionEmpty || len(r.Polygons) == 0
}

// Quality distinguishes an exact usable-area computation from the
// conservative fallback estimate.
type Quality string

const (
	// QualityExact means the union-then-clip pipeline completed.
	QualityExact Quality = "exact"
	// QualityFallback means a geometric failure forced the raw-area
	// approximation, which may double-count overlapping exclusions.
	QualityFallback Quality = "fallback"
)

// AreaResult is the engine's output, both values in m².
type AreaResult struct {
	TotalArea  float64 `json:"totalArea"`
	UsableArea float64 `json:"usableArea"`
	Quality    Quality `json:"quality"`
}
