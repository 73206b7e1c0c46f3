package image

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"testing"

	"goquake2/enginectx"
	"goquake2/filesystem"
	"goquake2/palette"
)

func buildPCX(w, h int, indexed []byte, pal *[256 * 3]byte) []byte {
	hdr := pcxHeader{
		Manufacturer: 0x0a,
		Version:      5,
		Encoding:     1,
		BitsPerPixel: 8,
		XMin:         0,
		YMin:         0,
		XMax:         uint16(w - 1),
		YMax:         uint16(h - 1),
		NPlanes:      1,
		BytesPerLine: uint16(w),
	}
	buf := &bytes.Buffer{}
	_ = binary.Write(buf, binary.LittleEndian, &hdr)
	buf.Write(indexed)
	for buf.Len() < 128+len(indexed) {
		buf.WriteByte(0)
	}
	if pal != nil {
		buf.WriteByte(0x0c)
		buf.Write(pal[:])
	}
	return buf.Bytes()
}

func TestDecodePCXAppliesTrailingPalette(t *testing.T) {
	var pal [256 * 3]byte
	pal[1*3+0], pal[1*3+1], pal[1*3+2] = 10, 20, 30
	b := buildPCX(2, 2, []byte{1, 1, 1, 1}, &pal)

	out, err := decodePCX("test.pcx", b)
	if err != nil {
		t.Fatalf("decodePCX: %v", err)
	}
	if out.Width != 2 || out.Height != 2 {
		t.Fatalf("expected 2x2, got %dx%d", out.Width, out.Height)
	}
	if out.Pix[0] != 10 || out.Pix[1] != 20 || out.Pix[2] != 30 || out.Pix[3] != 255 {
		t.Errorf("unexpected pixel 0: %v", out.Pix[0:4])
	}
}

func TestDecodePCXIndex255IsTransparent(t *testing.T) {
	var pal [256 * 3]byte
	// 0xC1 0xFF: a 1-byte run of value 255 — the top two bits of a
	// literal byte would otherwise be mistaken for a run marker.
	b := buildPCX(1, 1, []byte{0xc1, 0xff}, &pal)

	out, err := decodePCX("test.pcx", b)
	if err != nil {
		t.Fatalf("decodePCX: %v", err)
	}
	if out.Pix[3] != 0 {
		t.Errorf("expected index 255 to punch alpha to 0, got %d", out.Pix[3])
	}
	if !out.HasAlpha {
		t.Errorf("expected classifyAlpha to detect the punched pixel")
	}
}

func TestDecodePCXRejectsWrongVariant(t *testing.T) {
	hdr := pcxHeader{Manufacturer: 0x0a, Encoding: 2, BitsPerPixel: 8, NPlanes: 1}
	buf := &bytes.Buffer{}
	_ = binary.Write(buf, binary.LittleEndian, &hdr)
	if _, err := decodePCX("bad.pcx", buf.Bytes()); err == nil {
		t.Errorf("expected unsupported encoding to error")
	}
}

func TestDecodeTGAUncompressedTopLeft(t *testing.T) {
	hdr := tgaHeader{
		ImageType:  tgaTypeUncompressedRGB,
		Width:      2,
		Height:     1,
		PixelSize:  24,
		Attributes: attrTopLeft,
	}
	buf := &bytes.Buffer{}
	_ = binary.Write(buf, binary.LittleEndian, &hdr)
	// BGR order, two pixels.
	buf.Write([]byte{1, 2, 3, 4, 5, 6})

	out, err := decodeTGA("test.tga", buf.Bytes())
	if err != nil {
		t.Fatalf("decodeTGA: %v", err)
	}
	if out.Pix[0] != 3 || out.Pix[1] != 2 || out.Pix[2] != 1 || out.Pix[3] != 255 {
		t.Errorf("unexpected pixel 0: %v", out.Pix[0:4])
	}
	if out.Pix[4] != 6 || out.Pix[5] != 5 || out.Pix[6] != 4 {
		t.Errorf("unexpected pixel 1: %v", out.Pix[4:7])
	}
}

func TestDecodeTGARejectsUnsupportedType(t *testing.T) {
	hdr := tgaHeader{ImageType: 1, PixelSize: 24}
	buf := &bytes.Buffer{}
	_ = binary.Write(buf, binary.LittleEndian, &hdr)
	if _, err := decodeTGA("bad.tga", buf.Bytes()); err == nil {
		t.Errorf("expected unsupported image type to error")
	}
}

func TestEncodeThenDecodeTGARoundTrips(t *testing.T) {
	src := newNRGBA(2, 2)
	for i := range src.Pix {
		src.Pix[i] = byte(i * 10)
	}
	// force full alpha so the RGB round trip is exact: EncodeTGA
	// writes 24-bit only, dropping alpha.
	for i := 3; i < len(src.Pix); i += 4 {
		src.Pix[i] = 255
	}

	encoded := EncodeTGA(src)
	out, err := decodeTGA("roundtrip.tga", encoded)
	if err != nil {
		t.Fatalf("decodeTGA: %v", err)
	}
	if out.Width != 2 || out.Height != 2 {
		t.Fatalf("expected 2x2, got %dx%d", out.Width, out.Height)
	}
	for i := 0; i < len(src.Pix); i += 4 {
		if out.Pix[i] != src.Pix[i] || out.Pix[i+1] != src.Pix[i+1] || out.Pix[i+2] != src.Pix[i+2] {
			t.Errorf("pixel %d did not round trip: got %v want %v", i/4, out.Pix[i:i+3], src.Pix[i:i+3])
		}
	}
}

func TestDecodePNGViaFind(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}

	l := filesystem.NewMapLoader()
	l.Put("pics/foo.png", buf.Bytes())
	out, err := Find(l, "pics/foo")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if out.Width != 2 || out.Height != 2 {
		t.Fatalf("expected 2x2, got %dx%d", out.Width, out.Height)
	}
	if out.Pix[0] != 1 || out.Pix[1] != 2 || out.Pix[2] != 3 {
		t.Errorf("unexpected pixel 0: %v", out.Pix[0:4])
	}
}

func TestFindPrefersPNGOverTGA(t *testing.T) {
	l := filesystem.NewMapLoader()
	l.Put("pics/foo.png", func() []byte {
		img := image.NewRGBA(image.Rect(0, 0, 1, 1))
		buf := &bytes.Buffer{}
		_ = png.Encode(buf, img)
		return buf.Bytes()
	}())
	l.Put("pics/foo.tga", []byte("not a real tga, would fail to decode"))

	if _, err := Find(l, "pics/foo"); err != nil {
		t.Fatalf("expected Find to succeed via the PNG variant, got %v", err)
	}
}

func TestFindMissingReturnsMalformedAssetNotFound(t *testing.T) {
	l := filesystem.NewMapLoader()
	_, err := Find(l, "pics/nope")
	if err == nil {
		t.Fatalf("expected an error when no variant is present")
	}
	if !enginectx.As(err, enginectx.MalformedAsset) {
		t.Errorf("expected a MalformedAsset fault, got %v", err)
	}
}

func TestDecodeWALUsesDesaturatedPalette(t *testing.T) {
	pal := &palette.Palette{}
	pal.Desaturated[1*4+0] = 7
	pal.Desaturated[1*4+1] = 8
	pal.Desaturated[1*4+2] = 9
	pal.Desaturated[1*4+3] = 255

	hdr := WalHeader{Width: 1, Height: 1, Offsets: [4]uint32{100}}
	buf := &bytes.Buffer{}
	_ = binary.Write(buf, binary.LittleEndian, &hdr)
	data := buf.Bytes()
	// pad to the pixel offset, then the single indexed byte.
	for len(data) < 100 {
		data = append(data, 0)
	}
	data = append(data, 1)

	out, err := DecodeWAL("textures/test.wal", data, pal)
	if err != nil {
		t.Fatalf("DecodeWAL: %v", err)
	}
	if out.Pix[0] != 7 || out.Pix[1] != 8 || out.Pix[2] != 9 {
		t.Errorf("unexpected pixel 0: %v", out.Pix[0:4])
	}
}

func TestDecodeWALRejectsOversizedDimensions(t *testing.T) {
	hdr := WalHeader{Width: 99999, Height: 1}
	buf := &bytes.Buffer{}
	_ = binary.Write(buf, binary.LittleEndian, &hdr)
	if _, err := DecodeWAL("bad.wal", buf.Bytes(), &palette.Palette{}); err == nil {
		t.Errorf("expected oversized dimensions to error")
	}
}

func TestWalNameStopsAtNUL(t *testing.T) {
	var hdr WalHeader
	copy(hdr.Name[:], "base1/rock\x00garbage")
	if got := WalName(&hdr); got != "base1/rock" {
		t.Errorf("WalName = %q, want %q", got, "base1/rock")
	}
}
