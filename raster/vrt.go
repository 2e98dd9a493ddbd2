package raster

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
)

// VRTOptions carries the metadata the wrapper attaches on top of the
// raster file.
type VRTOptions struct {
	// SRS is the spatial reference text, e.g. "EPSG:25832" or a proj4
	// string.
	SRS string
	// BandNames are the per-band descriptions in band order. Missing names
	// leave the band undescribed.
	BandNames []string
}

// vrtDataset mirrors the GDAL VRT XML schema, reduced to what the band
// naming wrapper needs: one SimpleSource per band pointing at the
// underlying raster, plus a Description element carrying the band name.
type vrtDataset struct {
	XMLName      xml.Name  `xml:"VRTDataset"`
	RasterXSize  int       `xml:"rasterXSize,attr"`
	RasterYSize  int       `xml:"rasterYSize,attr"`
	SRS          string    `xml:"SRS,omitempty"`
	GeoTransform string    `xml:"GeoTransform,omitempty"`
	Bands        []vrtBand `xml:"VRTRasterBand"`
}

type vrtBand struct {
	DataType    string    `xml:"dataType,attr"`
	Band        int       `xml:"band,attr"`
	Description string    `xml:"Description,omitempty"`
	NoDataValue string    `xml:"NoDataValue,omitempty"`
	Source      vrtSource `xml:"SimpleSource"`
}

type vrtSource struct {
	Filename   vrtFilename `xml:"SourceFilename"`
	SourceBand int         `xml:"SourceBand"`
}

type vrtFilename struct {
	RelativeToVRT int    `xml:"relativeToVRT,attr"`
	Value         string `xml:",chardata"`
}

// WriteVRT writes the band-naming wrapper for a raster file.
//
// The VRT is a thin reference: it points at rasterPath (relative to the
// VRT's own directory) and overrides band names, nothing is copied. Hosts
// without the band-name limitation can open the raster directly and skip
// this layer.
func WriteVRT(vrtPath, rasterPath string, d *Dataset, opts VRTOptions) error {
	if err := d.Validate(); err != nil {
		return err
	}

	ds := vrtDataset{
		RasterXSize: d.Width,
		RasterYSize: d.Height,
		SRS:         opts.SRS,
		GeoTransform: fmt.Sprintf("%.17g, %.17g, 0.0, %.17g, 0.0, %.17g",
			d.Origin[0], d.PixelScale[0], d.Origin[1], -d.PixelScale[1]),
	}
	for i := range d.Bands {
		band := vrtBand{
			DataType:    "Float64",
			Band:        i + 1,
			NoDataValue: NoDataValue,
			Source: vrtSource{
				Filename:   vrtFilename{RelativeToVRT: 1, Value: filepath.Base(rasterPath)},
				SourceBand: i + 1,
			},
		}
		if i < len(opts.BandNames) {
			band.Description = opts.BandNames[i]
		}
		ds.Bands = append(ds.Bands, band)
	}

	out, err := xml.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("raster: marshal VRT: %w", err)
	}
	if err := os.WriteFile(vrtPath, append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("raster: write %s: %w", vrtPath, err)
	}
	return nil
}
