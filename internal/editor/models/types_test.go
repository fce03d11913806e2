package models

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestPolygonArea(t *testing.T) {
	// Квадрат 2x2 против часовой стрелки (если смотреть сверху)
	square := []Vec3{{X: 0, Z: 0}, {X: 2, Z: 0}, {X: 2, Z: 2}, {X: 0, Z: 2}}
	if a := PolygonArea(square); !near(math.Abs(a), 4) {
		t.Errorf("square area = %v, want 4", a)
	}

	// Обратный обход меняет знак, не модуль
	reversed := []Vec3{{X: 0, Z: 2}, {X: 2, Z: 2}, {X: 2, Z: 0}, {X: 0, Z: 0}}
	if PolygonArea(square) != -PolygonArea(reversed) {
		t.Errorf("winding did not flip the sign")
	}

	// Вырожденные случаи
	if a := PolygonArea([]Vec3{{X: 1}, {X: 2}}); a != 0 {
		t.Errorf("two points gave area %v", a)
	}
	collinear := []Vec3{{X: 0}, {X: 1}, {X: 2}}
	if a := PolygonArea(collinear); !near(a, 0) {
		t.Errorf("collinear points gave area %v", a)
	}
}

func TestVolume(t *testing.T) {
	box := &Entity{Kind: KindPrimitive, Primitive: &PrimitiveData{Type: PrimitiveBox}}
	if v := box.Volume(); !near(v, 1) {
		t.Errorf("box volume = %v", v)
	}

	sphere := &Entity{Kind: KindPrimitive, Primitive: &PrimitiveData{Type: PrimitiveSphere}}
	if v := sphere.Volume(); !near(v, 4.0/3.0*math.Pi*0.125) {
		t.Errorf("sphere volume = %v", v)
	}

	cylinder := &Entity{Kind: KindPrimitive, Primitive: &PrimitiveData{Type: PrimitiveCylinder}}
	if v := cylinder.Volume(); !near(v, math.Pi*0.25) {
		t.Errorf("cylinder volume = %v", v)
	}

	prism := &Entity{Kind: KindExtruded, Extruded: &ExtrudedData{
		Profile: []Vec3{{X: 0, Z: 0}, {X: 2, Z: 0}, {X: 2, Z: 2}, {X: 0, Z: 2}},
		Depth:   3,
	}}
	if v := prism.Volume(); !near(v, 12) {
		t.Errorf("prism volume = %v, want 12", v)
	}

	group := &Entity{Kind: KindGroup, Group: &GroupData{Children: []*Entity{box, prism}}}
	if v := group.Volume(); !near(v, 13) {
		t.Errorf("group volume = %v, want 13", v)
	}
}

func TestCloneIsDeep(t *testing.T) {
	src := &Entity{
		ID:   "grp",
		Kind: KindGroup,
		Group: &GroupData{Children: []*Entity{
			{
				ID:   "prism",
				Kind: KindExtruded,
				Extruded: &ExtrudedData{
					Profile: []Vec3{{X: 1}, {X: 2}, {X: 2, Z: 1}},
					Depth:   1,
				},
			},
		}},
	}

	c := src.Clone()
	c.Group.Children[0].Extruded.Profile[0].X = 99
	c.Group.Children[0].ID = "mutated"

	if src.Group.Children[0].Extruded.Profile[0].X != 1 {
		t.Errorf("clone shares profile slice with source")
	}
	if src.Group.Children[0].ID != "prism" {
		t.Errorf("clone shares child with source")
	}
}

func TestParsePrimitiveType(t *testing.T) {
	if ParsePrimitiveType("sphere") != PrimitiveSphere {
		t.Errorf("sphere not parsed")
	}
	if ParsePrimitiveType("torus") != PrimitiveBox {
		t.Errorf("unknown type did not fall back to box")
	}
}
