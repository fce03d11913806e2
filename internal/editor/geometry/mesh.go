package geometry

import (
	"math"

	"scene-editor/internal/editor/models"
)

// ============================================================
// Pick meshes
// ============================================================

type SurfaceRole int

const (
	// RoleHull внешняя оболочка основного меша — попадание дает
	// гранулярность shape.
	RoleHull SurfaceRole = iota
	// RoleFace вторичная поверхность (крышки призмы/цилиндра) —
	// попадание дает гранулярность face.
	RoleFace
)

type Triangle struct {
	A, B, C models.Vec3
}

type Segment struct {
	A, B models.Vec3
}

func (s Segment) Midpoint() models.Vec3 {
	return s.A.Add(s.B).Mul(0.5)
}

type Surface struct {
	Role  SurfaceRole
	Index int
	Tris  []Triangle
}

// Mesh геометрия пика в локальных координатах сущности.
// Сфера меша не имеет — она пересекается аналитически.
type Mesh struct {
	Surfaces []Surface
	Edges    []Segment
}

// ForEntity строит меш пика для сущности. Группы и сферы
// возвращают nil: группы обходятся рекурсивно, сферы аналитически.
func ForEntity(e *models.Entity, circleSegments int) *Mesh {
	switch e.Kind {
	case models.KindPrimitive:
		switch e.Primitive.Type {
		case models.PrimitiveBox:
			return prism(squareProfile(0.5), 1, -0.5, RoleHull, RoleHull)
		case models.PrimitiveCylinder:
			return prism(circleProfile(0.5, circleSegments), 1, -0.5, RoleHull, RoleFace)
		case models.PrimitiveSphere:
			return nil
		}
	case models.KindExtruded:
		return prism(e.Extruded.Profile, e.Extruded.Depth, 0, RoleHull, RoleFace)
	case models.KindGroup:
		return nil
	}
	return nil
}

func squareProfile(half float64) []models.Vec3 {
	return []models.Vec3{
		{X: -half, Z: -half},
		{X: half, Z: -half},
		{X: half, Z: half},
		{X: -half, Z: half},
	}
}

func circleProfile(radius float64, segments int) []models.Vec3 {
	if segments < 3 {
		segments = 3
	}
	pts := make([]models.Vec3, 0, segments)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts = append(pts, models.Vec3{X: radius * math.Cos(a), Z: radius * math.Sin(a)})
	}
	return pts
}

// prism выдавливает замкнутый профиль (Y=0) вдоль Y на depth.
// yOffset сдвигает основание (куб центрируется, призма стоит на земле).
// Боковые стенки получают sideRole, крышки capRole.
func prism(profile []models.Vec3, depth, yOffset float64, sideRole, capRole SurfaceRole) *Mesh {
	n := len(profile)
	if n < 3 {
		return &Mesh{}
	}

	bottom := make([]models.Vec3, n)
	top := make([]models.Vec3, n)
	for i, p := range profile {
		bottom[i] = models.Vec3{X: p.X, Y: yOffset, Z: p.Z}
		top[i] = models.Vec3{X: p.X, Y: yOffset + depth, Z: p.Z}
	}

	m := &Mesh{}

	// Боковые стенки: по кваду на ребро профиля
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		m.Surfaces = append(m.Surfaces, Surface{
			Role:  sideRole,
			Index: i,
			Tris: []Triangle{
				{A: bottom[i], B: bottom[j], C: top[j]},
				{A: bottom[i], B: top[j], C: top[i]},
			},
		})
	}

	// Крышки: веер от нулевой вершины
	var capBottom, capTop []Triangle
	for i := 1; i < n-1; i++ {
		capBottom = append(capBottom, Triangle{A: bottom[0], B: bottom[i+1], C: bottom[i]})
		capTop = append(capTop, Triangle{A: top[0], B: top[i], C: top[i+1]})
	}
	m.Surfaces = append(m.Surfaces,
		Surface{Role: capRole, Index: n, Tris: capBottom},
		Surface{Role: capRole, Index: n + 1, Tris: capTop},
	)

	// Ребра: нижнее кольцо, верхнее кольцо, вертикали
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		m.Edges = append(m.Edges, Segment{A: bottom[i], B: bottom[j]})
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		m.Edges = append(m.Edges, Segment{A: top[i], B: top[j]})
	}
	for i := 0; i < n; i++ {
		m.Edges = append(m.Edges, Segment{A: bottom[i], B: top[i]})
	}

	return m
}
