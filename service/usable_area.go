package service

import (
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"solar-site-area/model"
	"solar-site-area/usecase"
)

// ComputeUsableArea is the engine entry point. It returns the site's total
// and usable area in m², where usable area is the boundary-union area minus
// the exclusion-union area clipped to the boundary. totalArea, when
// non-nil, overrides the measured boundary-union area (sites that were
// already surveyed keep their stored figure).
//
// No failure propagates to the caller: if the exact union-then-clip
// pipeline cannot complete, the result degrades to subtracting the sum of
// the zones' precomputed raw areas and is marked QualityFallback.
func ComputeUsableArea(boundaries []model.BoundaryPolygon, exclusions []model.ExclusionZone, totalArea *float64) model.AreaResult {
	result, err := computeExact(boundaries, exclusions, totalArea)
	if err == nil {
		return result
	}

	zap.L().Warn("service: usable-area computation degraded to raw-area fallback",
		zap.Int("boundaries", len(boundaries)),
		zap.Int("exclusions", len(exclusions)),
		zap.Error(err))
	return fallbackResult(boundaries, exclusions, totalArea)
}

func computeExact(boundaries []model.BoundaryPolygon, exclusions []model.ExclusionZone, totalArea *float64) (result model.AreaResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = model.AreaResult{}, eris.Errorf("service: usable-area computation panicked: %v", r)
		}
	}()

	// Nothing to clip and nothing to measure.
	if len(exclusions) == 0 && totalArea != nil {
		return exactResult(*totalArea, *totalArea), nil
	}

	boundaryRings := make([]model.Ring, 0, len(boundaries))
	for _, b := range boundaries {
		boundaryRings = append(boundaryRings, b.Ring)
	}
	boundaryGeom := unifyRings(boundaryRings)
	boundaryRegion, err := decodeRegion(boundaryGeom)
	if err != nil {
		return model.AreaResult{}, err
	}

	total := usecase.RegionArea(boundaryRegion)
	if totalArea != nil {
		total = *totalArea
	}

	// Without both sides there is nothing to clip against.
	if len(exclusions) == 0 || boundaryRegion.Empty() {
		return exactResult(total, total), nil
	}

	exclusionRings := make([]model.Ring, 0, len(exclusions))
	for _, z := range exclusions {
		exclusionRings = append(exclusionRings, z.Ring)
	}
	exclusionGeom := unifyRings(exclusionRings)

	clipped, err := clip(exclusionGeom, boundaryGeom)
	if err != nil {
		return model.AreaResult{}, err
	}
	clippedRegion, err := decodeRegion(clipped)
	if err != nil {
		return model.AreaResult{}, err
	}

	usable := total - usecase.RegionArea(clippedRegion)
	return exactResult(total, usable), nil
}

func exactResult(total, usable float64) model.AreaResult {
	return model.AreaResult{
		TotalArea:  total,
		UsableArea: clampArea(usable, total),
		Quality:    model.QualityExact,
	}
}

// fallbackResult subtracts the sum of the zones' own precomputed areas,
// without deduplicating overlap. Deliberately conservative: overlapping
// zones may be double-counted, so the usable figure can only be an
// underestimate.
func fallbackResult(boundaries []model.BoundaryPolygon, exclusions []model.ExclusionZone, totalArea *float64) model.AreaResult {
	total := 0.0
	if totalArea != nil {
		total = *totalArea
	} else if region, err := UnifyBoundaries(boundaries); err == nil {
		total = usecase.RegionArea(region)
	}

	raw := 0.0
	for _, zone := range exclusions {
		raw += math.Max(0, zone.RawArea)
	}

	return model.AreaResult{
		TotalArea:  total,
		UsableArea: clampArea(total-raw, total),
		Quality:    model.QualityFallback,
	}
}

// clampArea keeps usable inside [0, total] even for odd inputs such as a
// negative supplied total.
func clampArea(usable, total float64) float64 {
	if usable < 0 {
		return 0
	}
	if total >= 0 && usable > total {
		return total
	}
	return usable
}
