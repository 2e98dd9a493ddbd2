// Package raster writes the factor bands to disk and wraps them for the
// host.
//
// The on-disk artifact is a classic little-endian GeoTIFF: Float64 samples,
// band-sequential (one strip per band), pixel-scale/tiepoint georeferencing,
// a minimal GeoKey directory and a GDAL-style nodata declaration. A
// companion VRT file references the GeoTIFF and attaches per-band display
// names, which the raster format alone cannot carry through the host.
package raster

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
)

// Common errors.
var (
	// ErrEmptyDataset is returned when a dataset has no bands or no cells.
	ErrEmptyDataset = errors.New("raster: empty dataset")

	// ErrBandShape is returned when a band length does not match the
	// dataset dimensions.
	ErrBandShape = errors.New("raster: band length does not match dimensions")

	// ErrUnsupported is returned by the reader for TIFF files outside the
	// subset this package writes.
	ErrUnsupported = errors.New("raster: unsupported TIFF layout")
)

// NoDataValue is the nodata declaration written for every band. NaN marks
// cells where no valid measurement exists.
const NoDataValue = "nan"

// Dataset is an in-memory multi-band Float64 raster with georeferencing.
// Bands are row-major, top row first, all of identical length
// Width × Height.
type Dataset struct {
	Width  int
	Height int
	Bands  [][]float64

	// Origin is the top-left corner of the top-left pixel in CRS units.
	Origin [2]float64
	// PixelScale is the cell size in CRS units per pixel (x, y; both
	// positive).
	PixelScale [2]float64

	// EPSG is the numeric EPSG code of the CRS, 0 when unknown.
	EPSG int
	// Geographic marks an unprojected longitude/latitude CRS.
	Geographic bool
}

// Validate checks dimensions and band shapes.
func (d *Dataset) Validate() error {
	if d.Width <= 0 || d.Height <= 0 || len(d.Bands) == 0 {
		return fmt.Errorf("%w: %dx%d, %d bands", ErrEmptyDataset, d.Width, d.Height, len(d.Bands))
	}
	for i, b := range d.Bands {
		if len(b) != d.Width*d.Height {
			return fmt.Errorf("%w: band %d has %d values, want %d", ErrBandShape, i+1, len(b), d.Width*d.Height)
		}
	}
	return nil
}

// TIFF tags used by the writer, ascending.
const (
	tagImageWidth    = 256
	tagImageLength   = 257
	tagBitsPerSample = 258
	tagCompression   = 259
	tagPhotometric   = 262
	tagStripOffsets  = 273
	tagSamplesPerPix = 277
	tagRowsPerStrip  = 278
	tagStripCounts   = 279
	tagPlanarConfig  = 284
	tagSampleFormat  = 339
	tagPixelScale    = 33550 // GeoTIFF ModelPixelScaleTag
	tagTiepoint      = 33922 // GeoTIFF ModelTiepointTag
	tagGeoKeys       = 34735 // GeoTIFF GeoKeyDirectoryTag
	tagGDALNoData    = 42113 // GDAL_NODATA
)

// TIFF field types.
const (
	typeASCII  = 2
	typeShort  = 3
	typeLong   = 4
	typeDouble = 12
)

// GeoKey IDs for the minimal key directory.
const (
	keyModelType     = 1024
	keyRasterType    = 1025
	keyGeographicCS  = 2048
	keyProjectedCS   = 3072
	modelProjected   = 1
	modelGeographic  = 2
	rasterPixelIsArea = 1

	// userDefined is the GeoTIFF placeholder code for systems without a
	// registered EPSG entry.
	userDefined = 32767
)

const tiffHeaderSize = 8

// ifdEntry is one 12-byte IFD field. Value holds either the inlined value
// bytes or the little-endian offset of the external data.
type ifdEntry struct {
	tag   uint16
	typ   uint16
	count uint32
	value [4]byte
}

// WriteGeoTIFF writes the dataset to path.
//
// Layout: 8-byte header, band strips in band order, external tag values,
// IFD. Each band is one strip (PlanarConfiguration = 2), Float64
// little-endian, with NaN declared as nodata for every band.
func WriteGeoTIFF(path string, d *Dataset) error {
	if err := d.Validate(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: create %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	w := bufio.NewWriter(f)
	if err := writeTIFF(w, d); err != nil {
		return fmt.Errorf("raster: write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("raster: write %s: %w", path, err)
	}
	return nil
}

func writeTIFF(w *bufio.Writer, d *Dataset) error {
	nb := len(d.Bands)
	stripLen := uint32(d.Width * d.Height * 8)
	dataStart := uint32(tiffHeaderSize)
	dataEnd := dataStart + uint32(nb)*stripLen

	// External tag values live in an arena between the strips and the IFD.
	arena := &bytes.Buffer{}
	arenaBase := dataEnd
	external := func(write func(*bytes.Buffer)) [4]byte {
		off := arenaBase + uint32(arena.Len())
		write(arena)
		var v [4]byte
		binary.LittleEndian.PutUint32(v[:], off)
		return v
	}

	shorts := func(vals ...uint16) func(*bytes.Buffer) {
		return func(b *bytes.Buffer) {
			for _, v := range vals {
				_ = binary.Write(b, binary.LittleEndian, v)
			}
		}
	}
	longs := func(vals ...uint32) func(*bytes.Buffer) {
		return func(b *bytes.Buffer) {
			for _, v := range vals {
				_ = binary.Write(b, binary.LittleEndian, v)
			}
		}
	}
	doubles := func(vals ...float64) func(*bytes.Buffer) {
		return func(b *bytes.Buffer) {
			for _, v := range vals {
				_ = binary.Write(b, binary.LittleEndian, v)
			}
		}
	}

	inlineShort := func(v uint16) [4]byte {
		var b [4]byte
		binary.LittleEndian.PutUint16(b[:2], v)
		return b
	}
	inlineLong := func(v uint32) [4]byte {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		return b
	}

	// Values that fit in the 4-byte field are stored inline, as the TIFF
	// spec requires; only larger values go to the arena.
	shortTag := func(vals ...uint16) [4]byte {
		if len(vals) <= 2 {
			var b [4]byte
			for i, v := range vals {
				binary.LittleEndian.PutUint16(b[i*2:], v)
			}
			return b
		}
		return external(shorts(vals...))
	}
	longTag := func(vals ...uint32) [4]byte {
		if len(vals) == 1 {
			return inlineLong(vals[0])
		}
		return external(longs(vals...))
	}

	bits := make([]uint16, nb)
	formats := make([]uint16, nb)
	offsets := make([]uint32, nb)
	counts := make([]uint32, nb)
	for i := 0; i < nb; i++ {
		bits[i] = 64
		formats[i] = 3 // IEEE floating point
		offsets[i] = dataStart + uint32(i)*stripLen
		counts[i] = stripLen
	}

	entries := []ifdEntry{
		{tagImageWidth, typeLong, 1, inlineLong(uint32(d.Width))},
		{tagImageLength, typeLong, 1, inlineLong(uint32(d.Height))},
		{tagBitsPerSample, typeShort, uint32(nb), shortTag(bits...)},
		{tagCompression, typeShort, 1, inlineShort(1)},
		{tagPhotometric, typeShort, 1, inlineShort(1)},
		{tagStripOffsets, typeLong, uint32(nb), longTag(offsets...)},
		{tagSamplesPerPix, typeShort, 1, inlineShort(uint16(nb))},
		{tagRowsPerStrip, typeLong, 1, inlineLong(uint32(d.Height))},
		{tagStripCounts, typeLong, uint32(nb), longTag(counts...)},
		{tagPlanarConfig, typeShort, 1, inlineShort(2)},
		{tagSampleFormat, typeShort, uint32(nb), shortTag(formats...)},
		{tagPixelScale, typeDouble, 3, external(doubles(d.PixelScale[0], d.PixelScale[1], 0))},
		{tagTiepoint, typeDouble, 6, external(doubles(0, 0, 0, d.Origin[0], d.Origin[1], 0))},
		{tagGeoKeys, typeShort, uint32(len(geoKeys(d))), external(shorts(geoKeys(d)...))},
		{tagGDALNoData, typeASCII, 4, [4]byte{'n', 'a', 'n', 0}},
	}

	ifdOffset := dataEnd + uint32(arena.Len())

	// Header.
	if _, err := w.Write([]byte{'I', 'I', 42, 0}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, ifdOffset); err != nil {
		return err
	}

	// Band strips.
	for _, band := range d.Bands {
		if err := binary.Write(w, binary.LittleEndian, band); err != nil {
			return err
		}
	}

	// Arena.
	if _, err := w.Write(arena.Bytes()); err != nil {
		return err
	}

	// IFD.
	if err := binary.Write(w, binary.LittleEndian, uint16(len(entries))); err != nil {
		return err
	}
	for _, e := range entries {
		if err := binary.Write(w, binary.LittleEndian, e.tag); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, e.typ); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, e.count); err != nil {
			return err
		}
		if _, err := w.Write(e.value[:]); err != nil {
			return err
		}
	}
	// No further IFDs.
	return binary.Write(w, binary.LittleEndian, uint32(0))
}

// geoKeys builds the minimal GeoKey directory for the dataset CRS.
func geoKeys(d *Dataset) []uint16 {
	type key struct{ id, val uint16 }
	keys := []key{
		{keyRasterType, rasterPixelIsArea},
	}
	if d.Geographic {
		keys = append([]key{{keyModelType, modelGeographic}}, keys...)
		code := uint16(userDefined)
		if d.EPSG > 0 && d.EPSG <= math.MaxUint16 {
			code = uint16(d.EPSG)
		}
		keys = append(keys, key{keyGeographicCS, code})
	} else {
		keys = append([]key{{keyModelType, modelProjected}}, keys...)
		code := uint16(userDefined)
		if d.EPSG > 0 && d.EPSG <= math.MaxUint16 {
			code = uint16(d.EPSG)
		}
		keys = append(keys, key{keyProjectedCS, code})
	}

	dir := []uint16{1, 1, 0, uint16(len(keys))}
	for _, k := range keys {
		dir = append(dir, k.id, 0, 1, k.val)
	}
	return dir
}
