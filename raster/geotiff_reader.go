package raster

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// ReadGeoTIFF reads a GeoTIFF written by WriteGeoTIFF back into memory.
//
// Only the subset this package writes is handled: little-endian classic
// TIFF, uncompressed Float64 samples, band-sequential with one strip per
// band. Anything else returns ErrUnsupported. The reader exists so results
// can be verified cell by cell after writing.
func ReadGeoTIFF(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("raster: read %s: %w", path, err)
	}
	d, err := parseTIFF(raw)
	if err != nil {
		return nil, fmt.Errorf("raster: parse %s: %w", path, err)
	}
	return d, nil
}

type rawEntry struct {
	typ   uint16
	count uint32
	value [4]byte
}

func parseTIFF(raw []byte) (*Dataset, error) {
	le := binary.LittleEndian
	if len(raw) < tiffHeaderSize || raw[0] != 'I' || raw[1] != 'I' || le.Uint16(raw[2:4]) != 42 {
		return nil, fmt.Errorf("%w: not a little-endian TIFF", ErrUnsupported)
	}
	ifdOffset := le.Uint32(raw[4:8])
	if int(ifdOffset)+2 > len(raw) {
		return nil, fmt.Errorf("%w: IFD offset out of range", ErrUnsupported)
	}

	count := int(le.Uint16(raw[ifdOffset : ifdOffset+2]))
	entries := map[uint16]rawEntry{}
	pos := int(ifdOffset) + 2
	for i := 0; i < count; i++ {
		if pos+12 > len(raw) {
			return nil, fmt.Errorf("%w: truncated IFD", ErrUnsupported)
		}
		tag := le.Uint16(raw[pos : pos+2])
		e := rawEntry{
			typ:   le.Uint16(raw[pos+2 : pos+4]),
			count: le.Uint32(raw[pos+4 : pos+8]),
		}
		copy(e.value[:], raw[pos+8:pos+12])
		entries[tag] = e
		pos += 12
	}

	shortsOf := func(tag uint16) []uint16 {
		e, ok := entries[tag]
		if !ok || e.typ != typeShort {
			return nil
		}
		if e.count <= 2 {
			out := make([]uint16, e.count)
			for i := range out {
				out[i] = le.Uint16(e.value[i*2:])
			}
			return out
		}
		off := le.Uint32(e.value[:])
		out := make([]uint16, e.count)
		for i := range out {
			out[i] = le.Uint16(raw[off+uint32(i)*2:])
		}
		return out
	}
	longsOf := func(tag uint16) []uint32 {
		e, ok := entries[tag]
		if !ok {
			return nil
		}
		if e.typ == typeShort {
			s := shortsOf(tag)
			out := make([]uint32, len(s))
			for i, v := range s {
				out[i] = uint32(v)
			}
			return out
		}
		if e.typ != typeLong {
			return nil
		}
		if e.count == 1 {
			return []uint32{le.Uint32(e.value[:])}
		}
		off := le.Uint32(e.value[:])
		out := make([]uint32, e.count)
		for i := range out {
			out[i] = le.Uint32(raw[off+uint32(i)*4:])
		}
		return out
	}
	doublesOf := func(tag uint16) []float64 {
		e, ok := entries[tag]
		if !ok || e.typ != typeDouble {
			return nil
		}
		off := le.Uint32(e.value[:])
		out := make([]float64, e.count)
		for i := range out {
			out[i] = math.Float64frombits(le.Uint64(raw[off+uint32(i)*8:]))
		}
		return out
	}
	firstLong := func(tag uint16) uint32 {
		v := longsOf(tag)
		if len(v) == 0 {
			return 0
		}
		return v[0]
	}

	width := int(firstLong(tagImageWidth))
	height := int(firstLong(tagImageLength))
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: missing dimensions", ErrUnsupported)
	}
	if c := firstLong(tagCompression); c != 1 {
		return nil, fmt.Errorf("%w: compression %d", ErrUnsupported, c)
	}
	if pc := firstLong(tagPlanarConfig); pc != 2 {
		return nil, fmt.Errorf("%w: planar configuration %d", ErrUnsupported, pc)
	}
	nb := int(firstLong(tagSamplesPerPix))
	for _, b := range shortsOf(tagBitsPerSample) {
		if b != 64 {
			return nil, fmt.Errorf("%w: %d bits per sample", ErrUnsupported, b)
		}
	}
	for _, f := range shortsOf(tagSampleFormat) {
		if f != 3 {
			return nil, fmt.Errorf("%w: sample format %d", ErrUnsupported, f)
		}
	}

	offsets := longsOf(tagStripOffsets)
	counts := longsOf(tagStripCounts)
	if nb == 0 || len(offsets) != nb || len(counts) != nb {
		return nil, fmt.Errorf("%w: %d bands with %d strips", ErrUnsupported, nb, len(offsets))
	}

	d := &Dataset{Width: width, Height: height, Bands: make([][]float64, nb)}
	cells := width * height
	for i := 0; i < nb; i++ {
		if counts[i] != uint32(cells*8) {
			return nil, fmt.Errorf("%w: band %d strip holds %d bytes, want %d", ErrUnsupported, i+1, counts[i], cells*8)
		}
		if int(offsets[i])+cells*8 > len(raw) {
			return nil, fmt.Errorf("%w: band %d strip out of range", ErrUnsupported, i+1)
		}
		band := make([]float64, cells)
		for j := range band {
			band[j] = math.Float64frombits(le.Uint64(raw[int(offsets[i])+j*8:]))
		}
		d.Bands[i] = band
	}

	if scale := doublesOf(tagPixelScale); len(scale) >= 2 {
		d.PixelScale = [2]float64{scale[0], scale[1]}
	}
	if tie := doublesOf(tagTiepoint); len(tie) >= 5 {
		d.Origin = [2]float64{tie[3], tie[4]}
	}
	if keys := shortsOf(tagGeoKeys); len(keys) >= 4 {
		n := int(keys[3])
		for i := 0; i < n && 4+i*4+3 < len(keys); i++ {
			id, val := keys[4+i*4], keys[4+i*4+3]
			switch id {
			case keyModelType:
				d.Geographic = val == modelGeographic
			case keyGeographicCS, keyProjectedCS:
				if val != userDefined {
					d.EPSG = int(val)
				}
			}
		}
	}
	return d, nil
}
