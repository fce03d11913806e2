package scene

import "scene-editor/internal/editor/models"

// ============================================================
// Transform Engine
// ============================================================

type Rotation struct {
	Axis  models.Axis `json:"axis"`
	Angle float64     `json:"angle"` // радианы, прибавляется к текущему
}

// TransformOp ровно одно из полей должно быть заполнено.
type TransformOp struct {
	Translate *models.Vec3 `json:"translate,omitempty"`
	Rotate    *Rotation    `json:"rotate,omitempty"`
	Scale     *models.Vec3 `json:"scale,omitempty"`
}

// ApplyTransform применяет операцию к каждой цели выбора независимо:
// каждая сущность вращается и масштабируется вокруг собственного
// начала координат, без общего центроида. Возвращает затронутые id;
// пустой выбор — no-op без ошибки.
func ApplyTransform(m *Model, sel *Selection, op TransformOp) ([]string, error) {
	set := 0
	if op.Translate != nil {
		set++
	}
	if op.Rotate != nil {
		set++
	}
	if op.Scale != nil {
		set++
	}
	if set != 1 {
		return nil, models.Validationf("transform op must set exactly one of translate/rotate/scale")
	}

	if op.Scale != nil && (op.Scale.X == 0 || op.Scale.Y == 0 || op.Scale.Z == 0) {
		return nil, models.Validationf("scale factor must not be zero")
	}

	targets := sel.Targets()
	if len(targets) == 0 {
		return nil, nil
	}

	affected := make([]string, 0, len(targets))
	for _, id := range targets {
		e, ok := m.Get(id)
		if !ok {
			continue
		}
		switch {
		case op.Translate != nil:
			e.Transform.Position = e.Transform.Position.Add(*op.Translate)
		case op.Rotate != nil:
			switch op.Rotate.Axis {
			case models.AxisX:
				e.Transform.Rotation.X += op.Rotate.Angle
			case models.AxisY:
				e.Transform.Rotation.Y += op.Rotate.Angle
			case models.AxisZ:
				e.Transform.Rotation.Z += op.Rotate.Angle
			}
		case op.Scale != nil:
			e.Transform.Scale = e.Transform.Scale.MulVec(*op.Scale)
		}
		affected = append(affected, id)
	}
	return affected, nil
}
