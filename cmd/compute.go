package main

import (
	"encoding/json"
	"fmt"
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"solar-site-area/importer"
	"solar-site-area/model"
	"solar-site-area/service"
	"solar-site-area/usecase"
)

var (
	boundaryPaths  []string
	exclusionPaths []string
	knownTotalArea float64
	geojsonOutPath string
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute a site's total and usable area",
	RunE: func(cmd *cobra.Command, args []string) error {
		var boundaries []model.BoundaryPolygon
		for _, path := range boundaryPaths {
			rings, err := importer.ReadRings(path)
			if err != nil {
				return err
			}
			boundaries = append(boundaries, importer.Boundaries(rings)...)
		}

		var exclusions []model.ExclusionZone
		for _, path := range exclusionPaths {
			rings, err := importer.ReadRings(path)
			if err != nil {
				return err
			}
			exclusions = append(exclusions, importer.Exclusions(rings)...)
		}

		var totalArea *float64
		if cmd.Flags().Changed("total-area") {
			totalArea = &knownTotalArea
		}

		result := service.ComputeUsableArea(boundaries, exclusions, totalArea)

		zap.L().Info("computed usable area",
			zap.Float64("total_m2", result.TotalArea),
			zap.Float64("usable_m2", result.UsableArea),
			zap.String("quality", string(result.Quality)))

		if geojsonOutPath != "" {
			if err := writeRegions(geojsonOutPath, boundaries, exclusions, result); err != nil {
				return err
			}
		}

		return printResult(result)
	},
}

func init() {
	computeCmd.Flags().StringSliceVar(&boundaryPaths, "boundary", nil, "boundary file (.kml/.geojson/.shp), repeatable")
	computeCmd.Flags().StringSliceVar(&exclusionPaths, "exclusions", nil, "exclusion-zone file (.kml/.geojson/.shp), repeatable")
	computeCmd.Flags().Float64Var(&knownTotalArea, "total-area", 0, "previously surveyed total area in m² (skips re-measuring)")
	computeCmd.Flags().StringVar(&geojsonOutPath, "geojson-out", "", "write unified regions as a GeoJSON FeatureCollection")
	_ = computeCmd.MarkFlagRequired("boundary")
	rootCmd.AddCommand(computeCmd)
}

func printResult(result model.AreaResult) error {
	if cfg.Output.Format == "text" {
		fmt.Printf("total:  %.*f m²\n", cfg.Output.Precision, result.TotalArea)
		fmt.Printf("usable: %.*f m²\n", cfg.Output.Precision, result.UsableArea)
		fmt.Printf("quality: %s\n", result.Quality)
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return eris.Wrap(err, "encode result")
	}
	return nil
}

// writeRegions exports the unified boundary, unified exclusion, and
// clipped exclusion regions for inspection in mapping tools.
func writeRegions(path string, boundaries []model.BoundaryPolygon, exclusions []model.ExclusionZone, result model.AreaResult) error {
	fc := geojson.NewFeatureCollection()

	add := func(region model.Region, role string) {
		feature := usecase.RegionFeature(region)
		feature.SetProperty("role", role)
		feature.SetProperty("area_m2", usecase.RegionArea(region))
		fc.AddFeature(feature)
	}

	boundaryRegion, err := service.UnifyBoundaries(boundaries)
	if err != nil {
		return err
	}
	add(boundaryRegion, "boundary")

	exclusionRegion, err := service.UnifyExclusions(exclusions)
	if err != nil {
		return err
	}
	add(exclusionRegion, "exclusion")

	clippedRegion, err := service.ClipExclusions(boundaries, exclusions)
	if err != nil {
		return err
	}
	add(clippedRegion, "clipped-exclusion")

	fc.Features[0].SetProperty("usable_m2", result.UsableArea)
	fc.Features[0].SetProperty("quality", string(result.Quality))

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return eris.Wrap(err, "encode regions")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "write %s", path)
	}

	zap.L().Info("wrote region geojson", zap.String("path", path))
	return nil
}
