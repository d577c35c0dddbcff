// Package picking holds the CPU half of color-id picking: the voxel/pixel
// encoding shared with the picking shader, and the ray tests that recover
// which face of the decoded voxel the camera ray struck.
package picking

import (
	"math"

	"mini-voxel/internal/geometry"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxEntries is the number of task entries the alpha channel can address.
const MaxEntries = 255

// quadHalf bounds the in-plane coordinates of a unit face.
const quadHalf = 0.5

// Scale is the factor between a voxel coordinate and its 0..255 channel
// value: channel = round(coord * 255 / (chunkSize-1)).
func Scale(chunkSize int) float32 {
	return float32(max(chunkSize-1, 1)) / 255
}

// EncodeVoxel packs a grid position into RGB bytes the way the picking
// shader does.
func EncodeVoxel(pos [3]int, chunkSize int) [3]uint8 {
	s := Scale(chunkSize)
	var rgb [3]uint8
	for i, c := range pos {
		rgb[i] = uint8(math.Round(float64(float32(c) / s)))
	}
	return rgb
}

// DecodeVoxel reverses EncodeVoxel. Exact for every position in
// [0, chunkSize-1] as long as chunkSize <= 256.
func DecodeVoxel(rgb [3]uint8, chunkSize int) [3]int {
	s := Scale(chunkSize)
	var pos [3]int
	for i, c := range rgb {
		pos[i] = int(math.Round(float64(float32(c) * s)))
	}
	return pos
}

// EncodeEntry returns the alpha value written for the task entry at index.
// Index MaxEntries and above cannot be encoded.
func EncodeEntry(index int) (uint8, bool) {
	if index < 0 || index >= MaxEntries {
		return 0, false
	}
	return uint8(index + 1), true
}

// Sample is one RGBA8 pixel read back from the picking target.
type Sample [4]uint8

// Decode returns the voxel and task entry encoded in the pixel. ok is false
// when alpha is zero, i.e. nothing was drawn there.
func (s Sample) Decode(chunkSize int) (voxel [3]int, entry int, ok bool) {
	if s[3] == 0 {
		return voxel, 0, false
	}
	return DecodeVoxel([3]uint8{s[0], s[1], s[2]}, chunkSize), int(s[3]) - 1, true
}

// Ray is a half line origin + t*direction, t >= 0.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// Transform maps the ray through m. Direction is not renormalized.
func (r Ray) Transform(m mgl32.Mat4) Ray {
	return Ray{
		Origin:    m.Mul4x1(r.Origin.Vec4(1)).Vec3(),
		Direction: m.Mul4x1(r.Direction.Vec4(0)).Vec3(),
	}
}

// HitFace intersects the ray with one face quad of voxel. It returns the
// hit point when the face can face the ray and the hit lies on the quad.
func HitFace(r Ray, voxel [3]int, face geometry.Face) (mgl32.Vec3, bool) {
	n := face.Normal()
	denom := r.Direction.Dot(n)
	// faces pointing away from the ray can't be seen; parallel ones never hit
	if denom >= 0 {
		return mgl32.Vec3{}, false
	}

	center := mgl32.Vec3{float32(voxel[0]), float32(voxel[1]), float32(voxel[2])}
	d := center.Add(n.Mul(0.5))
	t := d.Sub(r.Origin).Dot(n) / denom
	if t < 0 {
		return mgl32.Vec3{}, false
	}
	x := r.Origin.Add(r.Direction.Mul(t))

	e0, e1 := face.Basis()
	rel := x.Sub(d)
	u, v := rel.Dot(e0), rel.Dot(e1)
	if u < -quadHalf || u > quadHalf || v < -quadHalf || v > quadHalf {
		return mgl32.Vec3{}, false
	}
	return x, true
}

// ResolveFace picks the face of voxel struck by the ray, choosing the hit
// nearest to the ray origin when several faces pass.
func ResolveFace(r Ray, voxel [3]int) (face geometry.Face, hit mgl32.Vec3, ok bool) {
	best := float32(math.MaxFloat32)
	for _, f := range geometry.Faces {
		x, passed := HitFace(r, voxel, f)
		if !passed {
			continue
		}
		if dist := x.Sub(r.Origin).LenSqr(); dist < best {
			best, face, hit, ok = dist, f, x, true
		}
	}
	return face, hit, ok
}

// HighlightTransform places a mesh authored in the XZ plane (normal +Y) on
// a voxel face: rotate up onto the face normal, then move to the face center.
func HighlightTransform(voxel [3]int, face geometry.Face) mgl32.Mat4 {
	n := face.Normal()
	center := mgl32.Vec3{float32(voxel[0]), float32(voxel[1]), float32(voxel[2])}.Add(n.Mul(0.5))
	translate := mgl32.Translate3D(center[0], center[1], center[2])
	return translate.Mul4(rotateUpTo(n))
}

func rotateUpTo(n mgl32.Vec3) mgl32.Mat4 {
	axis := geometry.Up.Cross(n)
	if axis.Len() < 1e-6 {
		if geometry.Up.Dot(n) > 0 {
			return mgl32.Ident4()
		}
		return mgl32.HomogRotate3D(math.Pi, mgl32.Vec3{1, 0, 0})
	}
	angle := float32(math.Acos(float64(mgl32.Clamp(geometry.Up.Dot(n), -1, 1))))
	return mgl32.HomogRotate3D(angle, axis.Normalize())
}
