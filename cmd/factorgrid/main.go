// Command factorgrid rasterizes the projection distortion of a map extent.
//
// It runs the sampling pipeline against the standalone host and prints the
// written GeoTIFF and VRT paths. The direct PROJ backend is available when
// the binary is built with the "proj" tag and -useproj=false is given.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/terrascope/geometry"

	"github.com/geoviz/projfactors"
	"github.com/geoviz/projfactors/backend"
	_ "github.com/geoviz/projfactors/backend/projlib"
	"github.com/geoviz/projfactors/crs"
	"github.com/geoviz/projfactors/host/standalone"
)

func main() {
	var (
		extentStr = flag.String("extent", "", "canvas extent as minX,minY,maxX,maxY in CRS units")
		crsStr    = flag.String("crs", "EPSG:3857", "canvas CRS: authority ID or proj4 string")
		width     = flag.Int("width", 256, "raster width in pixels")
		height    = flag.Int("height", 256, "raster height in pixels")
		useProj   = flag.Bool("useproj", true, "true: host-delegated factors; false: direct PROJ backend")
		outDir    = flag.String("out", "", "output directory (default: temporary directory)")
		preview   = flag.Bool("preview", false, "render a pseudocolor preview PNG")
		verbose   = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		projfactors.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	extent, err := parseExtent(*extentStr)
	if err != nil {
		log.Fatalf("Invalid -extent: %v", err)
	}

	c, err := parseCRS(*crsStr)
	if err != nil {
		log.Fatalf("Invalid -crs: %v", err)
	}

	h := standalone.New(extent, *width, *height, c,
		standalone.WithUseProj(*useProj),
		standalone.WithPreview(*preview),
	)

	ev, err := backend.New(backend.FromSettings(h.Settings()), h)
	if err != nil {
		log.Fatalf("Backend unavailable: %v", err)
	}

	opts := []projfactors.Option{projfactors.WithEvaluator(ev)}
	if *outDir != "" {
		opts = append(opts, projfactors.WithOutputDir(*outDir))
	}

	layer, err := projfactors.Run(h, opts...)
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	fmt.Printf("Raster written to %s\n", layer.RasterPath)
	fmt.Printf("Layer %q published via %s\n", layer.Name, layer.Path)
}

func parseExtent(s string) (geometry.BoundingBox, error) {
	if s == "" {
		return geometry.BoundingBox{}, fmt.Errorf("extent is required")
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geometry.BoundingBox{}, fmt.Errorf("want 4 comma-separated values, got %d", len(parts))
	}
	var vals [4]float64
	for i, p := range parts {
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%g", &vals[i]); err != nil {
			return geometry.BoundingBox{}, fmt.Errorf("value %q: %w", p, err)
		}
	}
	return geometry.BBox(vals[0], vals[1], vals[2], vals[3]), nil
}

func parseCRS(s string) (crs.CRS, error) {
	if strings.HasPrefix(strings.TrimSpace(s), "+") {
		return crs.FromProj4(s), nil
	}
	return crs.FromAuthID(s)
}
