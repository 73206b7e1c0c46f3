package image

import (
	"bytes"
	"encoding/binary"

	"goquake2/enginectx"
	"goquake2/palette"
)

// WalHeader is the Quake II mip-texture header, per spec.md §6.
type WalHeader struct {
	Name      [32]byte
	Width     uint32
	Height    uint32
	Offsets   [4]uint32
	AnimName  [32]byte
	Flags     uint32
	Contents  uint32
	Value     uint32
}

// DecodeWAL decodes mip level 0 of a WAL texture using pal for the
// palette lookup, applying the DMP desaturation table the same way
// every other 8-bit upload does.
func DecodeWAL(name string, b []byte, pal *palette.Palette) (*NRGBA, error) {
	r := bytes.NewReader(b)
	var hdr WalHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, enginectx.Wrap(enginectx.MalformedAsset, name, err)
	}
	w, h := int(hdr.Width), int(hdr.Height)
	if w <= 0 || h <= 0 || w > 4096 || h > 4096 {
		return nil, enginectx.Wrapf(enginectx.MalformedAsset, name, "bad wal dimensions %dx%d", w, h)
	}
	off := int(hdr.Offsets[0])
	if off+w*h > len(b) {
		return nil, enginectx.Wrapf(enginectx.MalformedAsset, name, "truncated wal pixel data")
	}
	indexed := b[off : off+w*h]
	out := newNRGBA(w, h)
	for i, idx := range indexed {
		o := i * 4
		copy(out.Pix[o:o+4], pal.Desaturated[int(idx)*4:int(idx)*4+4])
	}
	out.classifyAlpha()
	return out, nil
}

// WalName extracts the embedded texture name, used to cross-check
// against the BSP texinfo name.
func WalName(hdr *WalHeader) string {
	end := bytes.IndexByte(hdr.Name[:], 0)
	if end < 0 {
		end = len(hdr.Name)
	}
	return string(hdr.Name[:end])
}
