// Package screenshot implements component K: a linear-RGBA readback,
// optional inverse-gamma correction, and TGA/PNG/JPEG encode under the
// classic `quakeNN.ext` naming scheme. Grounded on the original
// source's GL_ScreenShot_f (ref_gl/gl_rmisc.c, scrnshot directory and
// first-free-NN scan) and its Rust successor vk_rmisc.rs
// (gl_screenshot_format/gl_screenshot_quality cvar selection between
// tga/png/jpg), with the stdlib image/png + image/jpeg usage following
// the same pattern avatar29A-midgard-ro's debug.ScreenshotCapture uses.
package screenshot

import (
	"bytes"
	goimg "image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"goquake2/enginectx"
	img "goquake2/image"
)

// Format selects the on-disk encoding, matching gl_screenshot_format's
// tga/png/jpg choices.
type Format int

const (
	FormatTGA Format = iota
	FormatPNG
	FormatJPEG
)

func ParseFormat(s string) Format {
	switch s {
	case "png":
		return FormatPNG
	case "jpg", "jpeg":
		return FormatJPEG
	default:
		return FormatTGA
	}
}

func (f Format) ext() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpg"
	default:
		return "tga"
	}
}

// Readback is one captured frame: bottom-up RGBA rows as the GPU
// handed them back, matching GL's bottom-left origin convention. Every
// encoder path flips it to top-down rows first.
type Readback struct {
	Width, Height int
	RGBA          []byte // width*height*4, row 0 = bottom row
}

// ApplyInverseGamma undoes a display gamma ramp in place before
// encode, for backends that read back post-gamma framebuffer data;
// table[i] maps an input byte to its linear-corrected value.
func ApplyInverseGamma(r *Readback, table [256]byte) {
	for i := 0; i < len(r.RGBA); i += 4 {
		r.RGBA[i+0] = table[r.RGBA[i+0]]
		r.RGBA[i+1] = table[r.RGBA[i+1]]
		r.RGBA[i+2] = table[r.RGBA[i+2]]
	}
}

// NextFreeName scans quake00..quake99 under dir/scrnshot for the
// first name not already on disk, per GL_ScreenShot_f's checkname
// loop. Returns an error once all 100 slots are taken.
func NextFreeName(gameDir string, ext string) (string, error) {
	dir := filepath.Join(gameDir, "scrnshot")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", enginectx.Wrap(enginectx.IOFailure, dir, err)
	}
	for i := 0; i < 100; i++ {
		name := filepath.Join(dir, sprintfQuakeName(i, ext))
		if _, err := os.Stat(name); os.IsNotExist(err) {
			return name, nil
		}
	}
	return "", enginectx.Wrapf(enginectx.IOFailure, dir, "all 100 screenshot slots taken")
}

func sprintfQuakeName(n int, ext string) string {
	digits := [2]byte{byte('0' + n/10), byte('0' + n%10)}
	return "quake" + string(digits[:]) + "." + ext
}

// Encode renders r to bytes in the requested format; quality is used
// only for FormatJPEG, clamped to [1,100] per gl_screenshot_quality.
func Encode(r *Readback, format Format, quality int) ([]byte, error) {
	switch format {
	case FormatTGA:
		return img.EncodeTGA(toNRGBA(r)), nil
	case FormatPNG:
		var buf bytes.Buffer
		if err := png.Encode(&buf, toGoImage(r)); err != nil {
			return nil, enginectx.Wrap(enginectx.IOFailure, "screenshot.png", err)
		}
		return buf.Bytes(), nil
	case FormatJPEG:
		if quality < 1 {
			quality = 1
		}
		if quality > 100 {
			quality = 100
		}
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, toGoImage(r), &jpeg.Options{Quality: quality}); err != nil {
			return nil, enginectx.Wrap(enginectx.IOFailure, "screenshot.jpg", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, enginectx.Wrapf(enginectx.MalformedAsset, "screenshot", "unknown format %d", format)
	}
}

// toNRGBA flips the bottom-up readback into image.NRGBA's top-down
// row order, which EncodeTGA writes back out bottom-left first.
func toNRGBA(r *Readback) *img.NRGBA {
	out := &img.NRGBA{Width: r.Width, Height: r.Height, Pix: make([]byte, len(r.RGBA))}
	stride := r.Width * 4
	for y := 0; y < r.Height; y++ {
		srcY := r.Height - 1 - y
		copy(out.Pix[y*stride:y*stride+stride], r.RGBA[srcY*stride:srcY*stride+stride])
	}
	return out
}

// toGoImage flips the bottom-up readback into stdlib image's
// top-down row order for png/jpeg encode.
func toGoImage(r *Readback) *goimg.NRGBA {
	out := goimg.NewNRGBA(goimg.Rect(0, 0, r.Width, r.Height))
	stride := r.Width * 4
	for y := 0; y < r.Height; y++ {
		srcY := r.Height - 1 - y
		copy(out.Pix[y*out.Stride:y*out.Stride+stride], r.RGBA[srcY*stride:srcY*stride+stride])
	}
	return out
}

// Capture is the convenience entry point Write wires cmd/q2core's
// "screenshot" command to: pick a free filename, encode, write.
func Capture(gameDir string, r *Readback, format Format, quality int) (string, error) {
	name, err := NextFreeName(gameDir, format.ext())
	if err != nil {
		return "", err
	}
	data, err := Encode(r, format, quality)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return "", enginectx.Wrap(enginectx.IOFailure, name, err)
	}
	return name, nil
}
