package input

import (
	"scene-editor/internal/editor/models"
	"scene-editor/internal/editor/scene"
)

// ============================================================
// Drag gestures
// ============================================================

type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerDoubleClick
)

type PointerEvent struct {
	Kind  PointerKind
	Point models.Vec3 // точка на плоскости земли
	Shift bool        // модификатор мультивыбора
}

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseDone
)

// DragGesture явный автомат жеста вместо временной пары слушателей
// move+release. Одновременно активен максимум один жест — за этим
// следит владелец (сессия).
type DragGesture struct {
	phase   Phase
	start   models.Vec3
	current models.Vec3
}

func (g *DragGesture) Phase() Phase { return g.phase }

// Feed скармливает событие автомату. true — жест завершен (отпускание).
func (g *DragGesture) Feed(ev PointerEvent) bool {
	switch g.phase {
	case PhaseIdle:
		if ev.Kind == PointerDown {
			g.start = ev.Point
			g.current = ev.Point
			g.phase = PhaseDragging
		}
	case PhaseDragging:
		switch ev.Kind {
		case PointerMove:
			g.current = ev.Point
		case PointerUp:
			g.current = ev.Point
			g.phase = PhaseDone
			return true
		}
	case PhaseDone:
		// жест отработал, события игнорируются до Reset
	}
	return false
}

func (g *DragGesture) Start() models.Vec3   { return g.start }
func (g *DragGesture) Current() models.Vec3 { return g.current }

func (g *DragGesture) Delta() models.Vec3 {
	return g.current.Sub(g.start)
}

func (g *DragGesture) Reset() {
	*g = DragGesture{}
}

// ============================================================
// Edge pull
// ============================================================

// EdgePull тянет ручку ребра: планарная дельта драга отображается в
// равномерный масштаб владеющей сущности, а не в правку самого ребра.
// Это намеренно грубое приближение.
type EdgePull struct {
	DragGesture
	Handle scene.EdgeHandle
}

func NewEdgePull(h scene.EdgeHandle) *EdgePull {
	return &EdgePull{Handle: h}
}

// минимальный фактор, чтобы масштаб не обнулился
const minPullFactor = 0.05

// ScaleFactor дельта по обеим планарным осям, нормированная на
// характерный размер сущности.
func (g *EdgePull) ScaleFactor(referenceExtent float64) float64 {
	if referenceExtent <= 0 {
		referenceExtent = 1
	}
	d := g.Delta()
	f := 1 + (d.X+d.Z)/referenceExtent
	if f < minPullFactor {
		f = minPullFactor
	}
	return f
}
