package standalone

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"strings"

	"golang.org/x/image/draw"

	"github.com/geoviz/projfactors"
	"github.com/geoviz/projfactors/raster"
)

// previewMaxDim caps the preview edge length; larger rasters are
// downsampled.
const previewMaxDim = 512

// writePreview renders the first raster band as a pseudocolor PNG next to
// the raster file, the standalone stand-in for the host's single band
// pseudocolor renderer. Nodata cells come out transparent.
func writePreview(layer *projfactors.Layer) error {
	ds, err := raster.ReadGeoTIFF(layer.RasterPath)
	if err != nil {
		return err
	}
	if len(ds.Bands) == 0 {
		return fmt.Errorf("standalone: raster has no bands")
	}

	img := renderBand(ds.Bands[0], ds.Width, ds.Height)
	img = resample(img)

	path := strings.TrimSuffix(layer.RasterPath, ".tif") + ".png"
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, img)
}

// renderBand maps band values onto a blue-white-red ramp spanning the
// band's finite value range.
func renderBand(band []float64, width, height int) *image.RGBA {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range band {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, v := range band {
		x, y := i%width, i/width
		if math.IsNaN(v) || math.IsInf(v, 0) || lo > hi {
			img.SetRGBA(x, y, color.RGBA{})
			continue
		}
		t := 0.5
		if hi > lo {
			t = (v - lo) / (hi - lo)
		}
		img.SetRGBA(x, y, ramp(t))
	}
	return img
}

// ramp interpolates blue (t=0) through white (t=0.5) to red (t=1).
func ramp(t float64) color.RGBA {
	lerp := func(a, b float64, f float64) uint8 {
		return uint8(math.Round(a + (b-a)*f))
	}
	if t < 0.5 {
		f := t * 2
		return color.RGBA{R: lerp(49, 255, f), G: lerp(54, 255, f), B: lerp(149, 255, f), A: 255}
	}
	f := (t - 0.5) * 2
	return color.RGBA{R: lerp(255, 165, f), G: lerp(255, 0, f), B: lerp(255, 38, f), A: 255}
}

// resample scales the preview down to previewMaxDim on its longer edge.
func resample(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= previewMaxDim && h <= previewMaxDim {
		return img
	}
	scale := float64(previewMaxDim) / float64(max(w, h))
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
