package sketch

import (
	"math"

	"scene-editor/internal/editor/models"
)

// ============================================================
// Sketch-to-Solid Pipeline
// ============================================================

type State int

const (
	StateIdle State = iota
	StateAccumulating
	StateClosed
	StateExtruded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAccumulating:
		return "accumulating"
	case StateClosed:
		return "closed"
	case StateExtruded:
		return "extruded"
	}
	return "unknown"
}

const degenerateArea = 1e-9

type Config struct {
	SnapStep         float64 // шаг сетки на обеих планарных осях
	ClosureTolerance float64 // дистанция, при которой путь считается замкнутым
	CircleSegments   int     // N-gon аппроксимации круга
	DefaultDepth     float64 // глубина выдавливания по умолчанию
}

func DefaultConfig() Config {
	return Config{
		SnapStep:         0.5,
		ClosureTolerance: 0.5,
		CircleSegments:   24,
		DefaultDepth:     1.0,
	}
}

// Sketch накапливает 2D точки на плоскости земли (Y=0) и выдавливает
// замкнутый профиль в призму. Idle → Accumulating → Closed → Extruded.
type Sketch struct {
	cfg    Config
	state  State
	points []models.Vec3
}

func New(cfg Config) *Sketch {
	if cfg.SnapStep <= 0 {
		cfg.SnapStep = 0.5
	}
	if cfg.ClosureTolerance <= 0 {
		cfg.ClosureTolerance = 0.5
	}
	if cfg.CircleSegments < 3 {
		cfg.CircleSegments = 24
	}
	if cfg.DefaultDepth <= 0 {
		cfg.DefaultDepth = 1.0
	}
	return &Sketch{cfg: cfg}
}

func (s *Sketch) State() State { return s.state }

func (s *Sketch) Points() []models.Vec3 {
	return append([]models.Vec3(nil), s.points...)
}

// Snap округляет точку к ближайшему узлу сетки. Одинаковый снап на
// обеих осях дает повторяемую геометрию и точное определение замыкания.
func (s *Sketch) Snap(p models.Vec3) models.Vec3 {
	return models.Vec3{
		X: math.Round(p.X/s.cfg.SnapStep) * s.cfg.SnapStep,
		Z: math.Round(p.Z/s.cfg.SnapStep) * s.cfg.SnapStep,
	}
}

// ============================================================
// Polygon tool
// ============================================================

// AddPoint клик инструмента полигона: Idle → Accumulating.
func (s *Sketch) AddPoint(p models.Vec3) error {
	if s.state != StateIdle && s.state != StateAccumulating {
		return models.Validationf("sketch: cannot add point in state %s", s.state)
	}
	s.points = append(s.points, s.Snap(p))
	s.state = StateAccumulating
	return nil
}

// Finish замыкает накопленный путь (двойной клик / явное завершение).
// Меньше 3 точек — ошибка валидации, остаемся в Accumulating.
func (s *Sketch) Finish() error {
	if s.state != StateAccumulating {
		return models.Validationf("sketch: nothing to finish in state %s", s.state)
	}
	if len(s.points) < 3 {
		return models.Validationf("sketch: need at least 3 points, have %d", len(s.points))
	}
	first := s.points[0]
	last := s.points[len(s.points)-1]
	if last.Sub(first).Length() > s.cfg.ClosureTolerance {
		s.points = append(s.points, first)
	}
	s.state = StateClosed
	return nil
}

// ============================================================
// Rectangle / circle tools (одним жестом: Idle → Closed)
// ============================================================

// SetRectangle вся фигура из одного драга: старт и конец по диагонали.
func (s *Sketch) SetRectangle(start, end models.Vec3) error {
	if s.state != StateIdle {
		return models.Validationf("sketch: rectangle tool needs idle state, have %s", s.state)
	}
	a := s.Snap(start)
	b := s.Snap(end)
	if a.X == b.X || a.Z == b.Z {
		return models.Geometryf("sketch: rectangle is degenerate after snapping")
	}
	s.points = []models.Vec3{
		{X: a.X, Z: a.Z},
		{X: b.X, Z: a.Z},
		{X: b.X, Z: b.Z},
		{X: a.X, Z: b.Z},
	}
	s.state = StateClosed
	return nil
}

// SetCircle N-угольник вокруг центра, радиус до точки отпускания.
func (s *Sketch) SetCircle(center, edge models.Vec3) error {
	if s.state != StateIdle {
		return models.Validationf("sketch: circle tool needs idle state, have %s", s.state)
	}
	c := s.Snap(center)
	radius := s.Snap(edge).Sub(c).Length()
	if radius < degenerateArea {
		return models.Geometryf("sketch: circle radius is zero after snapping")
	}
	pts := make([]models.Vec3, 0, s.cfg.CircleSegments)
	for i := 0; i < s.cfg.CircleSegments; i++ {
		a := 2 * math.Pi * float64(i) / float64(s.cfg.CircleSegments)
		pts = append(pts, models.Vec3{
			X: c.X + radius*math.Cos(a),
			Z: c.Z + radius*math.Sin(a),
		})
	}
	s.points = pts
	s.state = StateClosed
	return nil
}

// ============================================================
// Extrude
// ============================================================

// Extrude выдавливает замкнутый профиль в призму. Сущность стоит
// основанием на земле, планарный центроид совпадает с центроидом
// профиля. При вырожденном профиле состояние эскиза сохраняется
// для повторной попытки.
func (s *Sketch) Extrude(depth float64, color string) (*models.Entity, error) {
	if s.state != StateClosed {
		return nil, models.Validationf("sketch: no closed profile to extrude (state %s)", s.state)
	}
	if depth == 0 {
		depth = s.cfg.DefaultDepth
	}
	if depth < 0 {
		return nil, models.Validationf("sketch: extrusion depth must be positive")
	}

	// Убираем дубль замыкания, если Finish его добавил
	pts := s.points
	if len(pts) > 1 {
		first, last := pts[0], pts[len(pts)-1]
		if first.X == last.X && first.Z == last.Z {
			pts = pts[:len(pts)-1]
		}
	}

	if math.Abs(models.PolygonArea(pts)) < degenerateArea {
		return nil, models.Geometryf("sketch: profile has zero area")
	}

	var cx, cz float64
	for _, p := range pts {
		cx += p.X
		cz += p.Z
	}
	cx /= float64(len(pts))
	cz /= float64(len(pts))

	profile := make([]models.Vec3, len(pts))
	for i, p := range pts {
		profile[i] = models.Vec3{X: p.X - cx, Z: p.Z - cz}
	}

	entity := &models.Entity{
		Kind: models.KindExtruded,
		Transform: models.Transform{
			Position: models.Vec3{X: cx, Y: 0, Z: cz},
			Scale:    models.One(),
		},
		Color:    color,
		Extruded: &models.ExtrudedData{Profile: profile, Depth: depth},
	}

	s.points = nil
	s.state = StateExtruded
	return entity, nil
}

// Clear явный сброс из любого состояния.
func (s *Sketch) Clear() {
	s.points = nil
	s.state = StateIdle
}
