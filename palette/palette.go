// Package palette holds the 256-entry indexed-color palette that
// drives 8-bit image uploads (component B). Index 255 is reserved as
// transparent. Indices are desaturated with the DMP formula so lava
// and other bright colors survive gamma/intensity scaling without
// blowing out.
package palette

import (
	"goquake2/enginectx"
	"goquake2/filesystem"
)

const (
	entries    = 256
	bytesPerRGBA = 4
)

// Palette is the RGBA table plus its desaturated variant used before
// 8-bit uploads are gamma/intensity scaled.
type Palette struct {
	Table        [entries * bytesPerRGBA]uint8
	Desaturated  [entries * bytesPerRGBA]uint8
}

// Load reads the 256x3 RGB colormap (pics/colormap.pcx per spec.md §6)
// via loader and builds both tables.
func Load(loader filesystem.Loader, path string) (*Palette, error) {
	b, err := loader.GetFileContents(path)
	if err != nil {
		return nil, enginectx.Wrap(enginectx.MalformedAsset, path, err)
	}
	if len(b) < entries*3 {
		return nil, enginectx.Wrapf(enginectx.MalformedAsset, path,
			"palette has wrong size: %d", len(b))
	}
	p := &Palette{}
	for i := 0; i < entries; i++ {
		r, g, bl := b[i*3], b[i*3+1], b[i*3+2]
		pi := i * bytesPerRGBA
		p.Table[pi+0] = r
		p.Table[pi+1] = g
		p.Table[pi+2] = bl
		p.Table[pi+3] = 255

		dr, dg, db := desaturate(r, g, bl)
		p.Desaturated[pi+0] = dr
		p.Desaturated[pi+1] = dg
		p.Desaturated[pi+2] = db
		p.Desaturated[pi+3] = 255
	}
	// index 255 is the transparent/alpha-punch color.
	p.Table[255*bytesPerRGBA+3] = 0
	p.Desaturated[255*bytesPerRGBA+3] = 0
	return p, nil
}

// desaturate applies sat_out = 1 - (max_gun_delta/255) * 0.25 per
// spec.md §4.B so lava and other saturated colors stay vivid after
// the later gamma/intensity pass.
func desaturate(r, g, b uint8) (uint8, uint8, uint8) {
	max := func(a, c uint8) uint8 {
		if a > c {
			return a
		}
		return c
	}
	hi := max(max(r, g), b)
	lo := func(a, c uint8) uint8 {
		if a < c {
			return a
		}
		return c
	}
	lowest := lo(lo(r, g), b)
	delta := hi - lowest
	satOut := 1 - (float32(delta)/255)*0.25

	blend := func(c uint8) uint8 {
		gray := (float32(r) + float32(g) + float32(b)) / 3
		v := gray + (float32(c)-gray)*satOut
		if v > 255 {
			return 255
		}
		if v < 0 {
			return 0
		}
		return uint8(v)
	}
	return blend(r), blend(g), blend(b)
}
