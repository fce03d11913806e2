package geometry

import (
	"math"

	"scene-editor/internal/editor/models"
)

// ============================================================
// Euler transforms
// ============================================================

// RotateEuler поворачивает вектор углами Эйлера, порядок X → Y → Z.
func RotateEuler(v, r models.Vec3) models.Vec3 {
	c, s := math.Cos(r.X), math.Sin(r.X)
	v = models.Vec3{X: v.X, Y: c*v.Y - s*v.Z, Z: s*v.Y + c*v.Z}

	c, s = math.Cos(r.Y), math.Sin(r.Y)
	v = models.Vec3{X: c*v.X + s*v.Z, Y: v.Y, Z: -s*v.X + c*v.Z}

	c, s = math.Cos(r.Z), math.Sin(r.Z)
	return models.Vec3{X: c*v.X - s*v.Y, Y: s*v.X + c*v.Y, Z: v.Z}
}

// InverseRotateEuler обратный поворот: Z → Y → X с отрицательными углами.
func InverseRotateEuler(v, r models.Vec3) models.Vec3 {
	c, s := math.Cos(-r.Z), math.Sin(-r.Z)
	v = models.Vec3{X: c*v.X - s*v.Y, Y: s*v.X + c*v.Y, Z: v.Z}

	c, s = math.Cos(-r.Y), math.Sin(-r.Y)
	v = models.Vec3{X: c*v.X + s*v.Z, Y: v.Y, Z: -s*v.X + c*v.Z}

	c, s = math.Cos(-r.X), math.Sin(-r.X)
	return models.Vec3{X: v.X, Y: c*v.Y - s*v.Z, Z: s*v.Y + c*v.Z}
}

// ToWorld локальная точка → мировая (масштаб, поворот, смещение).
func ToWorld(tr models.Transform, p models.Vec3) models.Vec3 {
	return tr.Position.Add(RotateEuler(p.MulVec(tr.Scale), tr.Rotation))
}

// ToLocal мировая точка → локальная.
func ToLocal(tr models.Transform, p models.Vec3) models.Vec3 {
	return InverseRotateEuler(p.Sub(tr.Position), tr.Rotation).DivVec(tr.Scale)
}

// Compose трансформ ребенка относительно родителя → мировой.
// Повороты складываются покомпонентно — для групп, созданных редактором,
// этого достаточно (группа рождается с единичным поворотом).
func Compose(parent, child models.Transform) models.Transform {
	return models.Transform{
		Position: ToWorld(parent, child.Position),
		Rotation: parent.Rotation.Add(child.Rotation),
		Scale:    parent.Scale.MulVec(child.Scale),
	}
}
