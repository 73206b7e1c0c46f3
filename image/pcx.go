package image

import (
	"bytes"
	"encoding/binary"

	"goquake2/enginectx"
)

type pcxHeader struct {
	Manufacturer  uint8
	Version       uint8
	Encoding      uint8
	BitsPerPixel  uint8
	XMin, YMin    uint16
	XMax, YMax    uint16
	HDpi, VDpi    uint16
	Colormap      [48]byte
	Reserved      uint8
	NPlanes       uint8
	BytesPerLine  uint16
	PaletteType   uint16
	HScrSize      uint16
	VScrSize      uint16
	Filler        [54]byte
}

// decodePCX handles the 8-bit-paletted RLE PCX variant used for
// console pics and the colormap, per spec.md §6. The trailing 256x3
// palette (if present) is applied directly; without one every pixel
// decodes to black RGB (index 255 still gets alpha 0) and the palette
// indices are not kept.
func decodePCX(name string, b []byte) (*NRGBA, error) {
	r := bytes.NewReader(b)
	var hdr pcxHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, enginectx.Wrap(enginectx.MalformedAsset, name, err)
	}
	if hdr.Manufacturer != 0x0a || hdr.Encoding != 1 || hdr.BitsPerPixel != 8 || hdr.NPlanes != 1 {
		return nil, enginectx.Wrapf(enginectx.MalformedAsset, name, "unsupported pcx variant")
	}
	w := int(hdr.XMax-hdr.XMin) + 1
	h := int(hdr.YMax-hdr.YMin) + 1
	if w <= 0 || h <= 0 {
		return nil, enginectx.Wrapf(enginectx.MalformedAsset, name, "bad pcx dimensions")
	}

	indexed := make([]byte, w*h)
	pos := 0
	data := b[128:] // header is fixed 128 bytes
	di := 0
	for y := 0; y < h; y++ {
		x := 0
		for x < int(hdr.BytesPerLine) {
			if di >= len(data) {
				return nil, enginectx.Wrapf(enginectx.MalformedAsset, name, "truncated pcx scanline data")
			}
			b0 := data[di]
			di++
			var runLen int
			var value byte
			if b0&0xc0 == 0xc0 {
				runLen = int(b0 & 0x3f)
				if di >= len(data) {
					return nil, enginectx.Wrapf(enginectx.MalformedAsset, name, "truncated pcx rle")
				}
				value = data[di]
				di++
			} else {
				runLen = 1
				value = b0
			}
			for i := 0; i < runLen; i++ {
				if x < w {
					indexed[pos] = value
					pos++
				}
				x++
			}
		}
	}

	// trailing 769-byte palette block: 0x0c marker + 256*3 RGB.
	var palette [256 * 3]byte
	havePalette := false
	if len(b) >= 769 {
		tail := b[len(b)-769:]
		if tail[0] == 0x0c {
			copy(palette[:], tail[1:])
			havePalette = true
		}
	}

	out := newNRGBA(w, h)
	for i, idx := range indexed {
		var r8, g8, b8 byte
		if havePalette {
			r8, g8, b8 = palette[idx*3], palette[idx*3+1], palette[idx*3+2]
		}
		o := i * 4
		out.Pix[o+0] = r8
		out.Pix[o+1] = g8
		out.Pix[o+2] = b8
		out.Pix[o+3] = 255
		if idx == 255 {
			out.Pix[o+3] = 0
		}
	}
	out.classifyAlpha()
	return out, nil
}
