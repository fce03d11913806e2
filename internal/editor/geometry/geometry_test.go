package geometry

import (
	"math"
	"testing"

	"scene-editor/internal/editor/models"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func nearVec(a, b models.Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestRotateEulerInverse(t *testing.T) {
	v := models.Vec3{X: 1.2, Y: -0.7, Z: 3.1}
	r := models.Vec3{X: 0.4, Y: -1.1, Z: 2.3}

	got := InverseRotateEuler(RotateEuler(v, r), r)
	if !nearVec(got, v) {
		t.Errorf("inverse rotation drifted: %+v", got)
	}
}

func TestToWorldToLocalRoundTrip(t *testing.T) {
	tr := models.Transform{
		Position: models.Vec3{X: 3, Y: -1, Z: 2},
		Rotation: models.Vec3{Y: math.Pi / 3, Z: 0.2},
		Scale:    models.Vec3{X: 2, Y: 0.5, Z: 1.5},
	}
	p := models.Vec3{X: 0.5, Y: 0.5, Z: -0.5}

	world := ToWorld(tr, p)
	back := ToLocal(tr, world)
	if !nearVec(back, p) {
		t.Errorf("round trip gave %+v, want %+v", back, p)
	}
}

func TestComposeIdentityParent(t *testing.T) {
	child := models.Transform{
		Position: models.Vec3{X: 1, Z: 2},
		Rotation: models.Vec3{Y: 0.5},
		Scale:    models.Vec3{X: 2, Y: 2, Z: 2},
	}
	got := Compose(models.IdentityTransform(), child)
	if !nearVec(got.Position, child.Position) || !nearVec(got.Rotation, child.Rotation) || !nearVec(got.Scale, child.Scale) {
		t.Errorf("identity parent changed child: %+v", got)
	}
}

func TestComposeTranslatedParent(t *testing.T) {
	parent := models.Transform{
		Position: models.Vec3{X: 5, Y: 1},
		Scale:    models.One(),
	}
	child := models.Transform{
		Position: models.Vec3{X: -2},
		Scale:    models.One(),
	}
	got := Compose(parent, child)
	if !nearVec(got.Position, models.Vec3{X: 3, Y: 1}) {
		t.Errorf("composed position = %+v", got.Position)
	}
}

func TestIntersectTriangle(t *testing.T) {
	r := NewRay(models.Vec3{Z: -5}, models.Vec3{Z: 1})
	a := models.Vec3{X: -1, Y: -1}
	b := models.Vec3{X: 1, Y: -1}
	c := models.Vec3{Y: 1}

	tt, ok := r.IntersectTriangle(a, b, c)
	if !ok {
		t.Fatalf("ray through triangle missed")
	}
	if !near(tt, 5) {
		t.Errorf("t = %v, want 5", tt)
	}

	// Луч мимо треугольника
	miss := NewRay(models.Vec3{X: 10, Z: -5}, models.Vec3{Z: 1})
	if _, ok := miss.IntersectTriangle(a, b, c); ok {
		t.Errorf("miss ray intersected")
	}

	// Треугольник позади начала луча
	behind := NewRay(models.Vec3{Z: 5}, models.Vec3{Z: 1})
	if _, ok := behind.IntersectTriangle(a, b, c); ok {
		t.Errorf("triangle behind origin intersected")
	}
}

func TestIntersectSphere(t *testing.T) {
	r := NewRay(models.Vec3{Z: -5}, models.Vec3{Z: 1})

	tt, ok := r.IntersectSphere(models.Vec3{}, 0.5)
	if !ok {
		t.Fatalf("ray through sphere missed")
	}
	if !near(tt, 4.5) {
		t.Errorf("t = %v, want 4.5", tt)
	}

	// Начало внутри сферы — берется дальний корень
	inside := NewRay(models.Vec3{}, models.Vec3{Z: 1})
	tt, ok = inside.IntersectSphere(models.Vec3{}, 0.5)
	if !ok || !near(tt, 0.5) {
		t.Errorf("from inside: t=%v ok=%v", tt, ok)
	}

	if _, ok := r.IntersectSphere(models.Vec3{X: 3}, 0.5); ok {
		t.Errorf("offset sphere intersected")
	}
}

func TestDistanceToSegment(t *testing.T) {
	r := NewRay(models.Vec3{Z: -5}, models.Vec3{Z: 1})

	// Отрезок поперек пути луча на расстоянии 0.25 по Y
	dist, tt := r.DistanceToSegment(models.Vec3{X: -1, Y: 0.25}, models.Vec3{X: 1, Y: 0.25})
	if !near(dist, 0.25) {
		t.Errorf("dist = %v, want 0.25", dist)
	}
	if !near(tt, 5) {
		t.Errorf("t = %v, want 5", tt)
	}

	// Отрезок целиком в стороне — ближайшая точка на его конце
	dist, _ = r.DistanceToSegment(models.Vec3{X: 2}, models.Vec3{X: 3})
	if !near(dist, 2) {
		t.Errorf("dist = %v, want 2", dist)
	}
}

func TestRayToLocalUniformScale(t *testing.T) {
	tr := models.Transform{
		Position: models.Vec3{X: 2},
		Scale:    models.Vec3{X: 2, Y: 2, Z: 2},
	}
	r := NewRay(models.Vec3{X: 2, Z: -5}, models.Vec3{Z: 1})
	local := r.ToLocal(tr)

	// В локальных координатах луч идет через начало
	if !nearVec(local.Origin, models.Vec3{Z: -2.5}) {
		t.Errorf("local origin = %+v", local.Origin)
	}
	tt, ok := local.IntersectSphere(models.Vec3{}, 0.5)
	if !ok {
		t.Fatalf("local ray missed unit sphere")
	}
	hit := local.At(tt)
	world := ToWorld(tr, hit)
	// Мировая точка попадания на ближней стороне масштабированной сферы
	if !nearVec(world, models.Vec3{X: 2, Z: -1}) {
		t.Errorf("world hit = %+v", world)
	}
}
