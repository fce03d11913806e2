package models

import "math"

// ============================================================
// Geometry primitives
// ============================================================

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Mul(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// MulVec покомпонентное умножение (масштаб)
func (v Vec3) MulVec(o Vec3) Vec3 { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }

// DivVec покомпонентное деление (обратный масштаб)
func (v Vec3) DivVec(o Vec3) Vec3 { return Vec3{v.X / o.X, v.Y / o.Y, v.Z / o.Z} }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Length() float64 { return math.Sqrt(v.Dot(v)) }

func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

// One единичный масштаб
func One() Vec3 { return Vec3{1, 1, 1} }

type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Transform позиция/поворот/масштаб сущности.
// Повороты в радианах, порядок применения X → Y → Z.
type Transform struct {
	Position Vec3 `json:"position"`
	Rotation Vec3 `json:"rotation"`
	Scale    Vec3 `json:"scale"`
}

func IdentityTransform() Transform {
	return Transform{Scale: One()}
}

// ============================================================
// Entity (tagged union)
// ============================================================

type EntityKind int

const (
	KindPrimitive EntityKind = iota
	KindExtruded
	KindGroup
)

func (k EntityKind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindExtruded:
		return "extruded"
	case KindGroup:
		return "group"
	}
	return "unknown"
}

type PrimitiveType int

const (
	PrimitiveBox PrimitiveType = iota
	PrimitiveSphere
	PrimitiveCylinder
)

func (p PrimitiveType) String() string {
	switch p {
	case PrimitiveBox:
		return "box"
	case PrimitiveSphere:
		return "sphere"
	case PrimitiveCylinder:
		return "cylinder"
	}
	return "unknown"
}

// ParsePrimitiveType неизвестные типы сводит к box — импорт должен
// переживать дрейф формата (см. codec).
func ParsePrimitiveType(s string) PrimitiveType {
	switch s {
	case "sphere":
		return PrimitiveSphere
	case "cylinder":
		return PrimitiveCylinder
	default:
		return PrimitiveBox
	}
}

// Entity верхнеуровневый объект сцены. Kind определяет, какое из
// полей Primitive/Extruded/Group заполнено; остальные всегда nil.
type Entity struct {
	ID        string
	Kind      EntityKind
	Transform Transform
	Color     string

	Primitive *PrimitiveData
	Extruded  *ExtrudedData
	Group     *GroupData
}

type PrimitiveData struct {
	Type PrimitiveType
}

// ExtrudedData профиль хранится относительно планарного центроида,
// на плоскости Y=0; призма занимает Y ∈ [0, Depth] в локальных координатах.
type ExtrudedData struct {
	Profile []Vec3
	Depth   float64
}

// GroupData позиции детей относительны позиции группы.
type GroupData struct {
	Children []*Entity
}

// Clone глубокая копия — снапшоты истории не должны делить
// состояние с живой моделью.
func (e *Entity) Clone() *Entity {
	c := *e
	if e.Primitive != nil {
		p := *e.Primitive
		c.Primitive = &p
	}
	if e.Extruded != nil {
		x := ExtrudedData{
			Profile: append([]Vec3(nil), e.Extruded.Profile...),
			Depth:   e.Extruded.Depth,
		}
		c.Extruded = &x
	}
	if e.Group != nil {
		g := GroupData{Children: make([]*Entity, 0, len(e.Group.Children))}
		for _, child := range e.Group.Children {
			g.Children = append(g.Children, child.Clone())
		}
		c.Group = &g
	}
	return &c
}

// Volume объем в локальных единицах (до масштаба).
func (e *Entity) Volume() float64 {
	switch e.Kind {
	case KindPrimitive:
		switch e.Primitive.Type {
		case PrimitiveBox:
			return 1
		case PrimitiveSphere:
			return 4.0 / 3.0 * math.Pi * 0.5 * 0.5 * 0.5
		case PrimitiveCylinder:
			return math.Pi * 0.5 * 0.5
		}
	case KindExtruded:
		return math.Abs(PolygonArea(e.Extruded.Profile)) * e.Extruded.Depth
	case KindGroup:
		var sum float64
		for _, child := range e.Group.Children {
			sum += child.Volume()
		}
		return sum
	}
	return 0
}

// PolygonArea площадь многоугольника на плоскости Y=0 (shoelace).
// Знак зависит от обхода.
func PolygonArea(points []Vec3) float64 {
	if len(points) < 3 {
		return 0
	}
	var area float64
	n := len(points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += points[i].X*points[j].Z - points[j].X*points[i].Z
	}
	return area / 2
}

// ============================================================
// Selection
// ============================================================

type Granularity int

const (
	GranularityShape Granularity = iota
	GranularityFace
	GranularityEdge
)

func (g Granularity) String() string {
	switch g {
	case GranularityShape:
		return "shape"
	case GranularityFace:
		return "face"
	case GranularityEdge:
		return "edge"
	}
	return "unknown"
}
