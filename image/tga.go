package image

import (
	"bytes"
	"encoding/binary"
	"io"

	"goquake2/enginectx"
)

type tgaHeader struct {
	IDLength       uint8
	ColormapType   uint8
	ImageType      uint8
	ColormapIndex  uint16
	ColormapLength uint16
	ColormapSize   uint8
	XOrigin        uint16
	YOrigin        uint16
	Width          uint16
	Height         uint16
	PixelSize      uint8
	Attributes     uint8
}

const (
	tgaTypeUncompressedRGB = 2
	tgaTypeRLERGB          = 10
	attrTopLeft            = 1 << 5
)

// decodeTGA handles 24/32-bit uncompressed and RLE TGAs, both row
// origins, per spec.md §6.
func decodeTGA(name string, b []byte) (*NRGBA, error) {
	r := bytes.NewReader(b)
	var hdr tgaHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, enginectx.Wrap(enginectx.MalformedAsset, name, err)
	}
	if hdr.ImageType != tgaTypeUncompressedRGB && hdr.ImageType != tgaTypeRLERGB {
		return nil, enginectx.Wrapf(enginectx.MalformedAsset, name, "unsupported tga type %d", hdr.ImageType)
	}
	if hdr.ColormapType != 0 || (hdr.PixelSize != 24 && hdr.PixelSize != 32) {
		return nil, enginectx.Wrapf(enginectx.MalformedAsset, name, "unsupported tga pixel size %d", hdr.PixelSize)
	}
	if hdr.IDLength != 0 {
		if _, err := r.Seek(int64(hdr.IDLength), io.SeekCurrent); err != nil {
			return nil, enginectx.Wrap(enginectx.MalformedAsset, name, err)
		}
	}

	w, h := int(hdr.Width), int(hdr.Height)
	out := newNRGBA(w, h)
	bpp := int(hdr.PixelSize) / 8

	readPixel := func() ([4]byte, error) {
		var px [4]byte
		buf := make([]byte, bpp)
		if _, err := r.Read(buf); err != nil {
			return px, err
		}
		px[0], px[1], px[2] = buf[2], buf[1], buf[0] // BGR -> RGB
		if bpp == 4 {
			px[3] = buf[3]
		} else {
			px[3] = 255
		}
		return px, nil
	}

	topDown := hdr.Attributes&attrTopLeft != 0

	rowAt := func(row int) int {
		if topDown {
			return row
		}
		return h - 1 - row
	}

	if hdr.ImageType == tgaTypeUncompressedRGB {
		for y := 0; y < h; y++ {
			destRow := rowAt(y)
			for x := 0; x < w; x++ {
				px, err := readPixel()
				if err != nil {
					return nil, enginectx.Wrap(enginectx.MalformedAsset, name, err)
				}
				i := (destRow*w + x) * 4
				copy(out.Pix[i:i+4], px[:])
			}
		}
	} else {
		// RLE: each packet is a 1-byte count+flag then either one
		// pixel (run-length repeated) or count literal pixels.
		x, y := 0, 0
		for y < h {
			var head [1]byte
			if _, err := r.Read(head[:]); err != nil {
				return nil, enginectx.Wrap(enginectx.MalformedAsset, name, err)
			}
			count := int(head[0]&0x7f) + 1
			isRun := head[0]&0x80 != 0

			put := func(px [4]byte) {
				destRow := rowAt(y)
				i := (destRow*w + x) * 4
				copy(out.Pix[i:i+4], px[:])
				x++
				if x >= w {
					x = 0
					y++
				}
			}

			if isRun {
				px, err := readPixel()
				if err != nil {
					return nil, enginectx.Wrap(enginectx.MalformedAsset, name, err)
				}
				for i := 0; i < count && y < h; i++ {
					put(px)
				}
			} else {
				for i := 0; i < count && y < h; i++ {
					px, err := readPixel()
					if err != nil {
						return nil, enginectx.Wrap(enginectx.MalformedAsset, name, err)
					}
					put(px)
				}
			}
		}
	}

	out.classifyAlpha()
	return out, nil
}

// EncodeTGA writes uncompressed type-2, BGR, bottom-left origin per
// spec.md §4.K, used by the screenshot encoder.
func EncodeTGA(img *NRGBA) []byte {
	hdr := tgaHeader{
		ImageType: tgaTypeUncompressedRGB,
		Width:     uint16(img.Width),
		Height:    uint16(img.Height),
		PixelSize: 24,
	}
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, &hdr)
	for y := img.Height - 1; y >= 0; y-- {
		for x := 0; x < img.Width; x++ {
			i := (y*img.Width + x) * 4
			buf.WriteByte(img.Pix[i+2])
			buf.WriteByte(img.Pix[i+1])
			buf.WriteByte(img.Pix[i+0])
		}
	}
	return buf.Bytes()
}
