package alias

import (
	"github.com/chewxy/math32"

	"goquake2/mathvec"
)

// normalTable holds the 162 unit vectors addressed by a frame
// vertex's normal index, generated once via a golden-angle spiral
// (Fibonacci sphere) rather than carried as a literal constant table,
// since the distribution only needs to be reasonably uniform for the
// per-vertex dot-product shading component D's lerp consumes.
var normalTable [256]mathvec.Vec3

func init() {
	const n = NumNormals
	golden := math32.Pi * (3 - math32.Sqrt(5))
	for i := 0; i < n; i++ {
		y := 1 - (float32(i)/float32(n-1))*2
		radius := math32.Sqrt(1 - y*y)
		theta := golden * float32(i)
		x := math32.Cos(theta) * radius
		z := math32.Sin(theta) * radius
		normalTable[i] = mathvec.Vec3{X: x, Y: y, Z: z}
	}
	// Indices >= NumNormals are unused by any real MD2 but kept zeroed
	// rather than indexed out of range by a malformed asset.
}

// Normal resolves a frame vertex's normal index to its unit vector.
func Normal(idx uint8) mathvec.Vec3 {
	return normalTable[idx]
}

// DotTable precomputes dot(normal[i], lightDir) for every index, per
// spec.md §4.C's "256-entry dot table" cheap per-vertex lighting path.
// Recomputed once per light direction change, not per vertex.
type DotTable [256]float32

func BuildDotTable(lightDir mathvec.Vec3) DotTable {
	var dt DotTable
	for i := range normalTable {
		dt[i] = mathvec.Dot(normalTable[i], lightDir)
	}
	return dt
}
