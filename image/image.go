// Package image decodes the pixel formats component B consumes:
// PCX, TGA (24/32-bit truecolor, RLE and uncompressed, both row
// origins; 8/15/16-bit and colormapped TGAs are rejected as
// MalformedAsset), PNG (via the standard library), and the Quake II WAL mip
// format. Output is always a common NRGBA buffer. Grounded on the
// teacher's image package (loadTGA shape), extended to the formats
// the teacher's snapshot left unimplemented.
package image

import (
	"bytes"
	"image/png"
	"strings"

	"goquake2/enginectx"
	"goquake2/filesystem"
)

// NRGBA is a decoded image: 4 bytes/pixel, row-major, top-left origin.
type NRGBA struct {
	Width, Height int
	Pix           []byte
	HasAlpha      bool
}

func newNRGBA(w, h int) *NRGBA {
	return &NRGBA{Width: w, Height: h, Pix: make([]byte, w*h*4)}
}

// classifyAlpha scans for any non-255 alpha byte, per spec.md §4.B.
func (n *NRGBA) classifyAlpha() {
	for i := 3; i < len(n.Pix); i += 4 {
		if n.Pix[i] != 255 {
			n.HasAlpha = true
			return
		}
	}
	n.HasAlpha = false
}

// Find resolves name by extension priority PNG, then TGA, then the
// name as given (covers .pcx/.wal), per component B's contract.
func Find(loader filesystem.Loader, name string) (*NRGBA, error) {
	for _, ext := range []string{".png", ".tga"} {
		if b, err := loader.GetFileContents(name + ext); err == nil {
			return decodeByExt(name+ext, b)
		}
	}
	if b, err := loader.GetFileContents(name); err == nil {
		return decodeByExt(name, b)
	}
	return nil, enginectx.Wrap(enginectx.MalformedAsset, name, errNotFound(name))
}

type notFoundErr string

func (e notFoundErr) Error() string { return "image not found: " + string(e) }
func errNotFound(name string) error { return notFoundErr(name) }

func decodeByExt(name string, b []byte) (*NRGBA, error) {
	switch {
	case strings.HasSuffix(name, ".png"):
		return decodePNG(name, b)
	case strings.HasSuffix(name, ".tga"):
		return decodeTGA(name, b)
	case strings.HasSuffix(name, ".pcx"):
		return decodePCX(name, b)
	case strings.HasSuffix(name, ".wal"):
		return nil, enginectx.Wrapf(enginectx.MalformedAsset, name, "wal requires a palette, use wal.Decode")
	default:
		return decodeTGA(name, b)
	}
}

func decodePNG(name string, b []byte) (*NRGBA, error) {
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, enginectx.Wrap(enginectx.MalformedAsset, name, err)
	}
	bounds := img.Bounds()
	out := newNRGBA(bounds.Dx(), bounds.Dy())
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			out.Pix[i+0] = uint8(r >> 8)
			out.Pix[i+1] = uint8(g >> 8)
			out.Pix[i+2] = uint8(bl >> 8)
			out.Pix[i+3] = uint8(a >> 8)
			i += 4
		}
	}
	out.classifyAlpha()
	return out, nil
}
