package alias

import (
	"bytes"
	"encoding/binary"

	"goquake2/enginectx"
	"goquake2/mathvec"
)

// Load parses a complete MD2 file, grounded on the teacher's
// calcAliasBounds accumulation loop (mdl/loader.go) generalized
// across every frame instead of a single pose list.
func Load(name string, b []byte) (*Model, error) {
	if len(b) < rawHeaderSize {
		return nil, enginectx.Wrapf(enginectx.MalformedAsset, name, "md2 file too short")
	}
	r := bytes.NewReader(b)
	var hdr rawHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, enginectx.Wrap(enginectx.MalformedAsset, name, err)
	}
	if hdr.Ident != Magic {
		return nil, enginectx.Wrapf(enginectx.MalformedAsset, name, "bad md2 magic %x", hdr.Ident)
	}
	if hdr.Version != Version {
		return nil, enginectx.Wrapf(enginectx.UnsupportedVersion, name, "md2 version %d", hdr.Version)
	}
	if hdr.NumVerts <= 0 || hdr.NumFrames <= 0 || hdr.NumTris <= 0 {
		return nil, enginectx.Wrapf(enginectx.MalformedAsset, name, "empty md2 geometry")
	}

	m := &Model{
		Name:       name,
		SkinWidth:  int(hdr.SkinWidth),
		SkinHeight: int(hdr.SkinHeight),
		Mins:       mathvec.Vec3{X: 999999, Y: 999999, Z: 999999},
		Maxs:       mathvec.Vec3{X: -999999, Y: -999999, Z: -999999},
	}

	if err := readSkins(b, &hdr, m); err != nil {
		return nil, enginectx.Wrap(enginectx.MalformedAsset, name, err)
	}
	if err := readTexCoords(b, &hdr, m); err != nil {
		return nil, enginectx.Wrap(enginectx.MalformedAsset, name, err)
	}
	if err := readTriangles(b, &hdr, m); err != nil {
		return nil, enginectx.Wrap(enginectx.MalformedAsset, name, err)
	}
	if err := readFrames(b, &hdr, m); err != nil {
		return nil, enginectx.Wrap(enginectx.MalformedAsset, name, err)
	}
	return m, nil
}

func readSkins(b []byte, hdr *rawHeader, m *Model) error {
	if hdr.NumSkins == 0 {
		return nil
	}
	off := int(hdr.OffSkins)
	for i := 0; i < int(hdr.NumSkins); i++ {
		start := off + i*64
		end := start + 64
		if end > len(b) {
			return boundsErr("skins")
		}
		m.Skins = append(m.Skins, cString(b[start:end]))
	}
	return nil
}

func readTexCoords(b []byte, hdr *rawHeader, m *Model) error {
	off := int(hdr.OffST)
	n := int(hdr.NumST)
	end := off + n*4
	if end > len(b) {
		return boundsErr("texcoords")
	}
	r := bytes.NewReader(b[off:end])
	m.TexCoords = make([]TexCoord, n)
	for i := 0; i < n; i++ {
		var st rawST
		if err := binary.Read(r, binary.LittleEndian, &st); err != nil {
			return err
		}
		m.TexCoords[i] = TexCoord{S: int(st.S), T: int(st.T)}
	}
	return nil
}

func readTriangles(b []byte, hdr *rawHeader, m *Model) error {
	off := int(hdr.OffTris)
	n := int(hdr.NumTris)
	end := off + n*12
	if end > len(b) {
		return boundsErr("triangles")
	}
	r := bytes.NewReader(b[off:end])
	m.Tris = make([]Triangle, n)
	for i := 0; i < n; i++ {
		var t rawTriangle
		if err := binary.Read(r, binary.LittleEndian, &t); err != nil {
			return err
		}
		for k := 0; k < 3; k++ {
			m.Tris[i].VertexIndex[k] = int(t.VertexIndex[k])
			m.Tris[i].STIndex[k] = int(t.STIndex[k])
		}
	}
	return nil
}

func readFrames(b []byte, hdr *rawHeader, m *Model) error {
	off := int(hdr.OffFrames)
	nverts := int(hdr.NumVerts)
	frameSize := int(hdr.FrameSize)
	m.Frames = make([]Frame, hdr.NumFrames)
	for i := 0; i < int(hdr.NumFrames); i++ {
		start := off + i*frameSize
		end := start + 40 + nverts*rawFrameVertexSize
		if end > len(b) {
			return boundsErr("frames")
		}
		r := bytes.NewReader(b[start:end])
		var scale, translate [3]float32
		var name [16]byte
		binary.Read(r, binary.LittleEndian, &scale)
		binary.Read(r, binary.LittleEndian, &translate)
		if err := binary.Read(r, binary.LittleEndian, &name); err != nil {
			return err
		}
		f := Frame{
			Name:      cString(name[:]),
			Scale:     mathvec.FromArray(scale),
			Translate: mathvec.FromArray(translate),
			Verts:     make([]rawFrameVertex, nverts),
		}
		if err := binary.Read(r, binary.LittleEndian, &f.Verts); err != nil {
			return err
		}
		accumulateBounds(m, &f, nverts)
		m.Frames[i] = f
	}
	return nil
}

// accumulateBounds generalizes the teacher's calcAliasBounds min/max
// loop across every frame rather than a single pose list.
func accumulateBounds(m *Model, f *Frame, nverts int) {
	for j := 0; j < nverts; j++ {
		v := f.Verts[j]
		p := mathvec.Vec3{
			X: float32(v.PackedPosition[0])*f.Scale.X + f.Translate.X,
			Y: float32(v.PackedPosition[1])*f.Scale.Y + f.Translate.Y,
			Z: float32(v.PackedPosition[2])*f.Scale.Z + f.Translate.Z,
		}
		m.Mins.X = minf(m.Mins.X, p.X)
		m.Mins.Y = minf(m.Mins.Y, p.Y)
		m.Mins.Z = minf(m.Mins.Z, p.Z)
		m.Maxs.X = maxf(m.Maxs.X, p.X)
		m.Maxs.Y = maxf(m.Maxs.Y, p.Y)
		m.Maxs.Z = maxf(m.Maxs.Z, p.Z)
	}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func cString(b []byte) string {
	end := bytes.IndexByte(b, 0)
	if end < 0 {
		end = len(b)
	}
	return string(b[:end])
}

type boundsErrT string

func (e boundsErrT) Error() string { return "md2: truncated " + string(e) }
func boundsErr(section string) error { return boundsErrT(section) }
