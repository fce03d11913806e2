package geometry

import (
	"math"

	"scene-editor/internal/editor/models"
)

// ============================================================
// Ray
// ============================================================

const rayEpsilon = 1e-9

// Ray луч пика от внешнего рендера. Dir должен быть нормализован.
type Ray struct {
	Origin models.Vec3
	Dir    models.Vec3
}

func NewRay(origin, dir models.Vec3) Ray {
	return Ray{Origin: origin, Dir: dir.Normalize()}
}

func (r Ray) At(t float64) models.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// ToLocal переводит луч в локальное пространство трансформа.
// Направление не нормализуется — параметр t теряет мировой смысл,
// поэтому расстояния сравниваем по мировой точке попадания.
func (r Ray) ToLocal(tr models.Transform) Ray {
	return Ray{
		Origin: ToLocal(tr, r.Origin),
		Dir:    InverseRotateEuler(r.Dir, tr.Rotation).DivVec(tr.Scale),
	}
}

// IntersectTriangle — Möller–Trumbore. Возвращает t вдоль луча.
func (r Ray) IntersectTriangle(a, b, c models.Vec3) (float64, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < rayEpsilon {
		return 0, false
	}
	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < rayEpsilon {
		return 0, false
	}
	return t, true
}

// IntersectSphere пересечение с сферой (центр c, радиус rad).
func (r Ray) IntersectSphere(c models.Vec3, rad float64) (float64, bool) {
	oc := r.Origin.Sub(c)
	a := r.Dir.Dot(r.Dir)
	b := 2 * oc.Dot(r.Dir)
	cc := oc.Dot(oc) - rad*rad
	disc := b*b - 4*a*cc
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := (-b - sq) / (2 * a)
	if t < rayEpsilon {
		t = (-b + sq) / (2 * a)
	}
	if t < rayEpsilon {
		return 0, false
	}
	return t, true
}

// DistanceToSegment минимальное расстояние от луча до отрезка [a, b].
// Возвращает расстояние и параметр t вдоль луча для ближайшей точки.
func (r Ray) DistanceToSegment(a, b models.Vec3) (float64, float64) {
	d1 := r.Dir
	d2 := b.Sub(a)
	rr := r.Origin.Sub(a)

	a11 := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(rr)

	var s, t float64
	if e < rayEpsilon {
		// Вырожденный отрезок — точка
		t = math.Max(-d1.Dot(rr)/a11, 0)
		closest := r.At(t)
		return closest.Sub(a).Length(), t
	}

	c := d1.Dot(rr)
	bb := d1.Dot(d2)
	denom := a11*e - bb*bb

	if denom > rayEpsilon {
		t = (bb*f - c*e) / denom
	}
	if t < 0 {
		t = 0
	}
	s = (bb*t + f) / e
	if s < 0 {
		s = 0
		t = math.Max(-c/a11, 0)
	} else if s > 1 {
		s = 1
		t = math.Max((bb-c)/a11, 0)
	}

	p1 := r.At(t)
	p2 := a.Add(d2.Mul(s))
	return p1.Sub(p2).Length(), t
}
