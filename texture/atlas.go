package texture

import (
	img "goquake2/image"

	"github.com/gogpu/gputypes"
)

// atlasPage is one 256x256 skyline-packed page shared by small UI
// pics, avoiding a draw-call-per-pic cost at console/HUD time.
type atlasPage struct {
	handle Handle
	skyline []int32 // skyline[x] = next free y for column x
}

func newAtlasPage(handle Handle) *atlasPage {
	p := &atlasPage{handle: handle, skyline: make([]int32, atlasPageSize)}
	return p
}

// fit finds the lowest-y placement for a w x h rect via the classic
// skyline search: scan every starting column, take the max skyline
// height across its span, keep the minimum such max.
func (p *atlasPage) fit(w, h int32) (x, y int32, ok bool) {
	best := int32(-1)
	bestX := int32(-1)
	for sx := int32(0); sx+w <= atlasPageSize; sx++ {
		maxY := int32(0)
		for i := sx; i < sx+w; i++ {
			if p.skyline[i] > maxY {
				maxY = p.skyline[i]
			}
		}
		if maxY+h > atlasPageSize {
			continue
		}
		if best == -1 || maxY < best {
			best = maxY
			bestX = sx
		}
	}
	if best == -1 {
		return 0, 0, false
	}
	return bestX, best, true
}

func (p *atlasPage) place(x, y, w, h int32) {
	for i := x; i < x+w; i++ {
		p.skyline[i] = y + h
	}
}

// allocAtlas finds room for a w x h pic, opening a new page only when
// every existing page is exhausted. Returns AtlasFull (ok=false) when
// a fresh page would still not help a request that exceeds the page
// size; the caller falls back to a dedicated texture.
func (m *Manager) allocAtlas(w, h int32) (page, x, y int32, ok bool) {
	if w > atlasPageSize || h > atlasPageSize {
		return 0, 0, 0, false
	}
	for i, p := range m.atlasPages {
		if x, y, fits := p.fit(w, h); fits {
			p.place(x, y, w, h)
			return int32(i), x, y, true
		}
	}
	handle, err := m.dev.CreateTexture(TextureDescriptor{
		Label: "atlas",
		Size:  gputypes.Extent3D{Width: atlasPageSize, Height: atlasPageSize, DepthOrArrayLayers: 1},
		MipLevelCount: 1, SampleCount: 1,
		Dimension: gputypes.TextureDimension2D,
		Format:    gputypes.TextureFormatRGBA8Unorm,
		Usage:     gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return 0, 0, 0, false
	}
	p := newAtlasPage(handle)
	m.atlasPages = append(m.atlasPages, p)
	px, py, fits := p.fit(w, h)
	if !fits {
		return 0, 0, 0, false
	}
	p.place(px, py, w, h)
	return int32(len(m.atlasPages) - 1), px, py, true
}

func (m *Manager) uploadToAtlas(t *Texture, decoded *img.NRGBA) error {
	page := m.atlasPages[t.AtlasPage]
	return m.dev.Upload(page.handle, t.AtlasX, t.AtlasY, int32(decoded.Width), int32(decoded.Height), decoded.Pix)
}
