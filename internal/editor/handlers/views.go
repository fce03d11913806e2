package handlers

import "scene-editor/internal/editor/models"

// ============================================================
// Entity views
// ============================================================

// EntityView то, что нужно рендеру: трансформ и вид сущности.
type EntityView struct {
	ID       string       `json:"id"`
	Kind     string       `json:"kind"`
	Type     string       `json:"type,omitempty"` // для примитивов: box|sphere|cylinder
	Position models.Vec3  `json:"position"`
	Rotation models.Vec3  `json:"rotation"`
	Scale    models.Vec3  `json:"scale"`
	Color    string       `json:"color"`
	Depth    float64      `json:"depth,omitempty"`
	Children []EntityView `json:"children,omitempty"`
}

func entityView(e *models.Entity) EntityView {
	v := EntityView{
		ID:       e.ID,
		Kind:     e.Kind.String(),
		Position: e.Transform.Position,
		Rotation: e.Transform.Rotation,
		Scale:    e.Transform.Scale,
		Color:    e.Color,
	}
	switch e.Kind {
	case models.KindPrimitive:
		v.Type = e.Primitive.Type.String()
	case models.KindExtruded:
		v.Depth = e.Extruded.Depth
	case models.KindGroup:
		for _, child := range e.Group.Children {
			v.Children = append(v.Children, entityView(child))
		}
	}
	return v
}

func entityViews(entities []*models.Entity) []EntityView {
	out := make([]EntityView, 0, len(entities))
	for _, e := range entities {
		out = append(out, entityView(e))
	}
	return out
}
