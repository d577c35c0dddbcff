package picking

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func BenchmarkResolveFace(b *testing.B) {
	r := Ray{Origin: mgl32.Vec3{0.3, 4, 6}, Direction: mgl32.Vec3{0, -0.5, -1}.Normalize()}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = ResolveFace(r, [3]int{0, 1, 1})
	}
}
