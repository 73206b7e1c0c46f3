// Package texture implements the second half of component B: the
// registration-sequence-aware GPU texture cache, the UI-pic atlas,
// and the upload policy (POT rounding, gamma/intensity pre-scale,
// anisotropy clamp, alpha classification). Grounded on the teacher's
// quakelib/texture_manager.go and palette/palette.go, retargeted from
// direct gl.* calls to the externally-provided GPU device abstraction
// (github.com/gogpu/gpucontext, github.com/gogpu/gputypes).
package texture

import (
	stdimage "image"

	"goquake2/enginectx"
	img "goquake2/image"

	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"
)

// Pref is the upload-preference bitfield, mirroring the teacher's
// TexPref flags.
type Pref uint32

const (
	PrefMipMap Pref = 1 << iota
	PrefLinear
	PrefNearest
	PrefAlpha
	PrefPersist
	PrefNoPicMip
	PrefFullBright
	PrefConChars
	PrefNone Pref = 0
)

// Type classifies an image per spec.md §3: pic implies no mipmap and
// atlas candidacy; wall/skin imply mipmapping and gamma pre-scale.
type Type int

const (
	TypeWall Type = iota
	TypeSkin
	TypeSprite
	TypePic
	TypeSky
)

// Handle is an opaque GPU texture reference, a small integer id
// rather than a pointer, matching the bindless handle idiom the
// Rust renderer in original_source/crates/myq2-renderer/src/vulkan
// (bindless.go's BindlessTextureHandle) uses for the same reason:
// indices survive across the Go/native boundary cheaply.
type Handle uint32

// Texture is one cached GPU-resident image.
type Texture struct {
	Name      string
	Type      Type
	Width, Height int32 // upload dims, rounded to POT where mipmapped
	SrcWidth, SrcHeight int32
	HasAlpha  bool
	AtlasPage int32 // -1 if not atlased
	AtlasX, AtlasY int32
	RegSeq    int
	Format    gputypes.TextureFormat
	Handle    Handle
}

func (t *Texture) Mipmapped() bool {
	return t.Type == TypeWall || t.Type == TypeSkin
}

// Uploader is the narrow surface the cache needs from the GPU device
// abstraction: allocate a texture and stream pixels into it. A real
// backend implements this over gpucontext.Device/Queue; tests use a
// recording fake.
type Uploader interface {
	CreateTexture(desc TextureDescriptor) (Handle, error)
	Upload(h Handle, x, y, w, h2 int32, rgba []byte) error
	Destroy(h Handle)
	MaxTextureSize() int32
	MaxAnisotropy() float32
}

// TextureDescriptor mirrors the shape backend/native's own
// TextureDescriptor uses in the gogpu-gg examples (Label/Size as a
// gputypes.Extent3D/MipLevelCount/SampleCount/Dimension/Format/Usage).
type TextureDescriptor struct {
	Label         string
	Size          gputypes.Extent3D
	MipLevelCount uint32
	SampleCount   uint32
	Dimension     gputypes.TextureDimension
	Format        gputypes.TextureFormat
	Usage         gputypes.TextureUsage
}

// Manager owns the cache, the atlas pages, and the registration
// sequence used for map-boundary eviction.
type Manager struct {
	dev Uploader

	byName map[string]*Texture
	active []*Texture

	regSeq int

	atlasPages []*atlasPage

	gammaTable    [256]byte
	intensityTable [256]byte
	anisotropy    float32
	roundDown     bool // gl_round_down equivalent
}

const atlasPageSize = 256

func NewManager(dev Uploader) *Manager {
	m := &Manager{
		dev:    dev,
		byName: make(map[string]*Texture),
	}
	for i := range m.gammaTable {
		m.gammaTable[i] = byte(i)
	}
	for i := range m.intensityTable {
		m.intensityTable[i] = byte(i)
	}
	m.anisotropy = 1
	return m
}

// SetGamma rebuilds the gamma LUT from vid_gamma, applied before
// upload for non-UI images per spec.md §4.B.
func (m *Manager) SetGamma(gamma float32) {
	if gamma <= 0 {
		gamma = 1
	}
	for i := 0; i < 256; i++ {
		v := pow8(float32(i)/255, 1/gamma)
		m.gammaTable[i] = v
	}
}

// SetIntensity rebuilds the intensity LUT from the intensity scalar.
func (m *Manager) SetIntensity(scale float32) {
	for i := 0; i < 256; i++ {
		v := pow8(float32(i)/255*scale, 1)
		m.intensityTable[i] = v
	}
}

// SetAnisotropy records r_anisotropy clamped to the device's max, per
// spec.md §4.B's "anisotropy is clamped to device max."
func (m *Manager) SetAnisotropy(v float32) {
	if max := m.dev.MaxAnisotropy(); v > max {
		v = max
	}
	if v < 1 {
		v = 1
	}
	m.anisotropy = v
}

// Anisotropy reports the clamped value SetAnisotropy last recorded.
func (m *Manager) Anisotropy() float32 { return m.anisotropy }

// SetRoundDown records gl_round_down: when true, potDims rounds a
// mipmapped texture's dimensions down to the nearest power-of-two
// instead of up.
func (m *Manager) SetRoundDown(v bool) {
	m.roundDown = v
}

func pow8(v float32, exp float32) byte {
	if v < 0 {
		v = 0
	}
	r := math32.Pow(v, exp) * 255
	if r > 255 {
		return 255
	}
	if r < 0 {
		return 0
	}
	return byte(r)
}

// BeginRegistration bumps the sequence at map load; assets touched
// after this call survive the next Sweep.
func (m *Manager) BeginRegistration() {
	m.regSeq++
}

// Sweep evicts every texture whose RegSeq differs from the current
// sequence, per component B's contract. Idempotent: calling it twice
// in a row with no new assets is a no-op (spec.md §8).
func (m *Manager) Sweep() {
	kept := m.active[:0]
	for _, t := range m.active {
		if t.RegSeq != m.regSeq {
			m.dev.Destroy(t.Handle)
			delete(m.byName, t.Name)
			continue
		}
		kept = append(kept, t)
	}
	m.active = kept
}

// Find resolves name via image.Find's extension priority, then
// uploads and caches it under typ's policy.
func (m *Manager) Find(loader imageLoader, name string, typ Type) (*Texture, error) {
	if t, ok := m.byName[name]; ok {
		t.RegSeq = m.regSeq
		return t, nil
	}
	decoded, err := img.Find(loader, name)
	if err != nil {
		return nil, err
	}
	return m.upload(name, decoded, typ)
}

type imageLoader interface {
	GetFileContents(path string) ([]byte, error)
}

// UploadPic is the direct-data entry point for already-decoded raw
// RGBA (e.g. from the alias-skin or particle generators).
func (m *Manager) UploadPic(name string, rgba []byte, w, h int, typ Type) (*Texture, error) {
	if t, ok := m.byName[name]; ok {
		t.RegSeq = m.regSeq
		return t, nil
	}
	decoded := &img.NRGBA{Width: w, Height: h, Pix: rgba}
	return m.upload(name, decoded, typ)
}

func (m *Manager) upload(name string, decoded *img.NRGBA, typ Type) (*Texture, error) {
	t := &Texture{
		Name: name, Type: typ,
		SrcWidth: int32(decoded.Width), SrcHeight: int32(decoded.Height),
		HasAlpha: decoded.HasAlpha,
		AtlasPage: -1,
		RegSeq:   m.regSeq,
	}

	small := decoded.Width < 64 && decoded.Height < 64 && typ == TypePic
	if small {
		if page, x, y, ok := m.allocAtlas(int32(decoded.Width), int32(decoded.Height)); ok {
			t.AtlasPage = page
			t.AtlasX, t.AtlasY = x, y
			t.Width, t.Height = int32(decoded.Width), int32(decoded.Height)
			if err := m.uploadToAtlas(t, decoded); err != nil {
				return nil, err
			}
			m.finishRegister(t)
			return t, nil
		}
		// AtlasFull: fall back to a dedicated image, logged once by caller.
	}

	w, h := potDims(int32(decoded.Width), int32(decoded.Height), t.Mipmapped() && m.roundDown, m.dev.MaxTextureSize())
	t.Width, t.Height = w, h

	pixels := decoded.Pix
	if typ != TypePic && typ != TypeSprite {
		pixels = m.applyGammaIntensity(pixels)
	}
	if w != int32(decoded.Width) || h != int32(decoded.Height) {
		pixels = resamplePOT(pixels, int32(decoded.Width), int32(decoded.Height), w, h)
	}

	format := gputypes.TextureFormatRGBA8Unorm
	mips := uint32(1)
	if t.Mipmapped() {
		mips = mipLevels(w, h)
	}
	handle, err := m.dev.CreateTexture(TextureDescriptor{
		Label: name,
		Size:  gputypes.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
		MipLevelCount: mips, SampleCount: 1,
		Dimension: gputypes.TextureDimension2D,
		Format:    format,
		Usage:     gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, enginectx.Wrap(enginectx.OutOfMemory, name, err)
	}
	t.Handle = handle
	t.Format = format
	if err := m.dev.Upload(handle, 0, 0, w, h, pixels); err != nil {
		return nil, enginectx.Wrap(enginectx.MalformedAsset, name, err)
	}
	m.finishRegister(t)
	return t, nil
}

func (m *Manager) finishRegister(t *Texture) {
	m.byName[t.Name] = t
	m.active = append(m.active, t)
}

func (m *Manager) applyGammaIntensity(pix []byte) []byte {
	out := make([]byte, len(pix))
	for i := 0; i < len(pix); i += 4 {
		for c := 0; c < 3; c++ {
			out[i+c] = m.gammaTable[m.intensityTable[pix[i+c]]]
		}
		out[i+3] = pix[i+3]
	}
	return out
}

// potDims rounds up (or down, if roundDown) to the nearest
// power-of-two, clamped to the device's max texture size.
func potDims(w, h int32, roundDown bool, maxSize int32) (int32, int32) {
	pw := nextPOT(w, roundDown)
	ph := nextPOT(h, roundDown)
	if pw > maxSize {
		pw = maxSize
	}
	if ph > maxSize {
		ph = maxSize
	}
	return pw, ph
}

func nextPOT(v int32, roundDown bool) int32 {
	if v <= 0 {
		return 1
	}
	p := int32(1)
	for p < v {
		p <<= 1
	}
	if roundDown && p != v && p > 1 {
		p >>= 1
	}
	return p
}

// resamplePOT stretches src pixels (NRGBA, row-major) from srcW x srcH
// up to dstW x dstH so the whole POT-sized texture the device just
// allocated is actually filled, not just its top-left corner.
func resamplePOT(pix []byte, srcW, srcH, dstW, dstH int32) []byte {
	src := &stdimage.NRGBA{
		Pix:    pix,
		Stride: int(srcW) * 4,
		Rect:   stdimage.Rect(0, 0, int(srcW), int(srcH)),
	}
	dst := stdimage.NewNRGBA(stdimage.Rect(0, 0, int(dstW), int(dstH)))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst.Pix
}

func mipLevels(w, h int32) uint32 {
	levels := uint32(1)
	for w > 1 || h > 1 {
		w >>= 1
		h >>= 1
		levels++
	}
	return levels
}
