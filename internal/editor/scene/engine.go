package scene

import (
	"math"

	"scene-editor/internal/editor/geometry"
	"scene-editor/internal/editor/models"
)

// ============================================================
// Selection Engine (pick)
// ============================================================

// Engine разрешает луч пика в сущность и гранулярность.
type Engine struct {
	model          *Model
	pickRadius     float64
	circleSegments int
}

func NewEngine(model *Model, pickRadius float64, circleSegments int) *Engine {
	return &Engine{
		model:          model,
		pickRadius:     pickRadius,
		circleSegments: circleSegments,
	}
}

type PickResult struct {
	EntityID    string             `json:"entityId"`
	Granularity models.Granularity `json:"-"`
	Distance    float64            `json:"distance"`
	FaceIndex   int                `json:"faceIndex"`
	EdgeIndex   int                `json:"edgeIndex"`
	Point       models.Vec3        `json:"point"`
}

// Pick пересекает луч со всеми верхнеуровневыми сущностями и берет
// ближайшее попадание. Дети групп разрешаются вверх к своей группе.
func (e *Engine) Pick(ray geometry.Ray) (PickResult, bool) {
	best := PickResult{Distance: math.MaxFloat64}
	// score = дистанция с бонусом ребрам: контур должен выигрывать
	// у поверхности сразу за ним
	bestScore := math.MaxFloat64
	found := false

	for _, ent := range e.model.All() {
		e.pickEntity(ray, ent, ent.Transform, ent.ID, &best, &bestScore, &found)
	}
	return best, found
}

func (e *Engine) pickEntity(ray geometry.Ray, ent *models.Entity, world models.Transform, topID string, best *PickResult, bestScore *float64, found *bool) {
	if ent.Kind == models.KindGroup {
		for _, child := range ent.Group.Children {
			e.pickEntity(ray, child, geometry.Compose(world, child.Transform), topID, best, bestScore, found)
		}
		return
	}

	if ent.Kind == models.KindPrimitive && ent.Primitive.Type == models.PrimitiveSphere {
		local := ray.ToLocal(world)
		if t, ok := local.IntersectSphere(models.Vec3{}, 0.5); ok {
			wp := geometry.ToWorld(world, local.At(t))
			dist := wp.Sub(ray.Origin).Length()
			if dist < *bestScore {
				*bestScore = dist
				*best = PickResult{
					EntityID:    topID,
					Granularity: models.GranularityShape,
					Distance:    dist,
					Point:       wp,
				}
				*found = true
			}
		}
		return
	}

	mesh := geometry.ForEntity(ent, e.circleSegments)
	if mesh == nil {
		return
	}

	// Ребра тестируем в мировых координатах, чтобы радиус пика
	// не искажался неравномерным масштабом
	for i, seg := range mesh.Edges {
		wa := geometry.ToWorld(world, seg.A)
		wb := geometry.ToWorld(world, seg.B)
		d, t := ray.DistanceToSegment(wa, wb)
		if d > e.pickRadius || t <= 0 {
			continue
		}
		score := t - e.pickRadius
		if score < *bestScore {
			*bestScore = score
			*best = PickResult{
				EntityID:    topID,
				Granularity: models.GranularityEdge,
				Distance:    t,
				EdgeIndex:   i,
				Point:       ray.At(t),
			}
			*found = true
		}
	}

	local := ray.ToLocal(world)
	for _, surf := range mesh.Surfaces {
		for _, tri := range surf.Tris {
			t, ok := local.IntersectTriangle(tri.A, tri.B, tri.C)
			if !ok {
				continue
			}
			wp := geometry.ToWorld(world, local.At(t))
			dist := wp.Sub(ray.Origin).Length()
			if dist >= *bestScore {
				continue
			}
			g := models.GranularityShape
			if surf.Role == geometry.RoleFace {
				g = models.GranularityFace
			}
			*bestScore = dist
			*best = PickResult{
				EntityID:    topID,
				Granularity: g,
				Distance:    dist,
				FaceIndex:   surf.Index,
				Point:       wp,
			}
			*found = true
		}
	}
}

// EdgeHandles материализует по ручке на середине каждого ребра сущности.
func (e *Engine) EdgeHandles(id string) []EdgeHandle {
	ent, ok := e.model.Get(id)
	if !ok {
		return nil
	}
	mesh := geometry.ForEntity(ent, e.circleSegments)
	if mesh == nil {
		return nil
	}
	handles := make([]EdgeHandle, 0, len(mesh.Edges))
	for i, seg := range mesh.Edges {
		handles = append(handles, EdgeHandle{
			EntityID:  id,
			EdgeIndex: i,
			Position:  geometry.ToWorld(ent.Transform, seg.Midpoint()),
		})
	}
	return handles
}
