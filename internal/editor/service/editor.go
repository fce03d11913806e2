package service

import (
	"math"

	"scene-editor/internal/editor/geometry"
	"scene-editor/internal/editor/input"
	"scene-editor/internal/editor/models"
	"scene-editor/internal/editor/scene"
	"scene-editor/internal/editor/sketch"
)

// ============================================================
// Editor operations
// ============================================================
//
// Каждая мутирующая операция завершается ровно одним history.Record.
// Операции, не тронувшие модель (пустой выбор, ошибка валидации),
// снапшот не пишут.

// Entities глубокие копии — вызывающий сериализует без блокировки.
func (s *Session) Entities() []*models.Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Snapshot()
}

// SelectionState текущий выбор для подсветки рендером.
type SelectionState struct {
	IDs         []string           `json:"ids"`
	Granularity string             `json:"granularity"`
	Active      string             `json:"active"`
	Handles     []scene.EdgeHandle `json:"handles,omitempty"`
}

func (s *Session) SelectionState() SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SelectionState{
		IDs:         s.selection.IDs(),
		Granularity: s.selection.Granularity().String(),
		Active:      s.selection.Active(),
		Handles:     s.selection.Handles(),
	}
}

// ============================================================
// Entity lifecycle
// ============================================================

func (s *Session) CreatePrimitive(t models.PrimitiveType, tr models.Transform, color string) (*models.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tr.Scale == (models.Vec3{}) {
		tr.Scale = models.One()
	}
	if color == "" {
		color = s.cfg.DefaultColor
	}
	e, err := s.model.CreatePrimitive(t, tr, color)
	if err != nil {
		return nil, err
	}
	s.record()
	return e.Clone(), nil
}

// DeleteSelection удаляет все выбранные сущности. Удаленная сущность
// тут же выпадает из выбора.
func (s *Session) DeleteSelection() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, id := range s.selection.Targets() {
		if s.model.Remove(id) {
			removed++
		}
	}
	if removed == 0 {
		return 0
	}
	s.selection.Prune(s.model)
	s.selection.SetHandles(nil)
	s.record()
	return removed
}

// Recolor перекрашивает выбор.
func (s *Session) Recolor(color string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if color == "" {
		return 0, models.Validationf("color must not be empty")
	}
	targets := s.selection.Targets()
	changed := 0
	for _, id := range targets {
		if e, ok := s.model.Get(id); ok {
			e.Color = color
			changed++
		}
	}
	if changed > 0 {
		s.record()
	}
	return changed, nil
}

// ============================================================
// Pick & selection
// ============================================================

// Pick разрешает луч в сущность и обновляет выбор. С модификатором —
// переключение в множестве, без — замена (или сброс при промахе).
// Ручки ребер пересоздаются на каждую смену подсветки.
func (s *Session) Pick(origin, dir models.Vec3, toggle bool) (*scene.PickResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ray := geometry.NewRay(origin, dir)
	res, ok := s.engine.Pick(ray)
	if !ok {
		if !toggle {
			s.selection.Clear()
		}
		return nil, false
	}

	if toggle {
		s.selection.Toggle(res.EntityID, res.Granularity)
	} else {
		s.selection.Replace(res.EntityID, res.Granularity)
	}

	if res.Granularity == models.GranularityEdge && s.selection.Contains(res.EntityID) {
		s.selection.SetHandles(s.engine.EdgeHandles(res.EntityID))
	} else {
		s.selection.SetHandles(nil)
	}
	return &res, true
}

func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Clear()
}

// ============================================================
// Transform
// ============================================================

func (s *Session) Transform(op scene.TransformOp) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transformLocked(op)
}

func (s *Session) transformLocked(op scene.TransformOp) (int, error) {
	affected, err := scene.ApplyTransform(s.model, s.selection, op)
	if err != nil {
		return 0, err
	}
	if len(affected) == 0 {
		return 0, nil
	}
	s.refreshHandles()
	s.record()
	return len(affected), nil
}

// refreshHandles ручки держат мировые позиции — после трансформа
// владельца их надо пересчитать.
func (s *Session) refreshHandles() {
	if s.selection.Granularity() != models.GranularityEdge {
		return
	}
	if active := s.selection.Active(); active != "" {
		s.selection.SetHandles(s.engine.EdgeHandles(active))
	}
}

// ============================================================
// Group / Ungroup
// ============================================================

func (s *Session) GroupSelection() (*models.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.model.Group(s.selection.IDs())
	if err != nil {
		return nil, err
	}
	s.selection.Replace(group.ID, models.GranularityShape)
	s.record()
	return group.Clone(), nil
}

func (s *Session) UngroupSelection() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.selection.Active()
	if target == "" {
		return nil, models.Validationf("ungroup: nothing selected")
	}
	restored, err := s.model.Ungroup(target)
	if err != nil {
		return nil, err
	}
	s.selection.Clear()
	ids := make([]string, 0, len(restored))
	for _, e := range restored {
		s.selection.Toggle(e.ID, models.GranularityShape)
		ids = append(ids, e.ID)
	}
	s.record()
	return ids, nil
}

// ============================================================
// History
// ============================================================

func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entities, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.model.Replace(entities)
	s.selection.Prune(s.model)
	return true
}

func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entities, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.model.Replace(entities)
	s.selection.Prune(s.model)
	return true
}

// record вызывается под мьютексом после завершенной мутации.
func (s *Session) record() {
	s.history.Record(s.model.Snapshot())
}

// ============================================================
// Sketch
// ============================================================

func (s *Session) SketchAddPoint(p models.Vec3) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sketch.AddPoint(p)
}

func (s *Session) SketchFinish() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sketch.Finish()
}

func (s *Session) SketchRectangle(start, end models.Vec3) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sketch.SetRectangle(start, end)
}

func (s *Session) SketchCircle(center, edge models.Vec3) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sketch.SetCircle(center, edge)
}

func (s *Session) SketchExtrude(depth float64, color string) (*models.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if color == "" {
		color = s.cfg.DefaultColor
	}
	entity, err := s.sketch.Extrude(depth, color)
	if err != nil {
		return nil, err
	}
	if err := s.model.Insert(entity); err != nil {
		return nil, err
	}
	s.record()
	return entity.Clone(), nil
}

func (s *Session) SketchClear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sketch.Clear()
}

func (s *Session) SketchState() (sketch.State, []models.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sketch.State(), s.sketch.Points()
}

// ============================================================
// Edge pull
// ============================================================

// EdgePullStart начинает жест на ручке ребра. Пока жест активен,
// второй не стартует.
func (s *Session) EdgePullStart(entityID string, edgeIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pull != nil && s.pull.Phase() == input.PhaseDragging {
		return models.Validationf("edge pull already in progress")
	}
	if s.selection.Granularity() != models.GranularityEdge {
		return models.Validationf("edge pull needs edge granularity")
	}
	var handle *scene.EdgeHandle
	for _, h := range s.selection.Handles() {
		if h.EntityID == entityID && h.EdgeIndex == edgeIndex {
			hh := h
			handle = &hh
			break
		}
	}
	if handle == nil {
		return models.Validationf("no edge handle %d on entity %s", edgeIndex, entityID)
	}

	s.pull = input.NewEdgePull(*handle)
	s.pull.Feed(input.PointerEvent{Kind: input.PointerDown, Point: handle.Position})
	return nil
}

func (s *Session) EdgePullMove(p models.Vec3) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pull == nil || s.pull.Phase() != input.PhaseDragging {
		return models.Validationf("no edge pull in progress")
	}
	s.pull.Feed(input.PointerEvent{Kind: input.PointerMove, Point: p})
	return nil
}

// EdgePullFinish завершает жест: планарная дельта → равномерный
// масштаб владеющей сущности.
func (s *Session) EdgePullFinish(p models.Vec3) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pull == nil || s.pull.Phase() != input.PhaseDragging {
		return 0, models.Validationf("no edge pull in progress")
	}
	s.pull.Feed(input.PointerEvent{Kind: input.PointerUp, Point: p})

	pull := s.pull
	s.pull = nil

	e, ok := s.model.Get(pull.Handle.EntityID)
	if !ok {
		return 0, models.Validationf("entity %s is gone", pull.Handle.EntityID)
	}

	ref := math.Max(math.Abs(e.Transform.Scale.X), math.Abs(e.Transform.Scale.Z))
	factor := pull.ScaleFactor(ref)
	e.Transform.Scale = e.Transform.Scale.Mul(factor)
	s.refreshHandles()
	s.record()
	return factor, nil
}

// ============================================================
// Import / Export
// ============================================================

func (s *Session) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codec.Encode(s.model.All())
}

func (s *Session) ExportGzip() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codec.EncodeGzip(s.model.All())
}

// Import атомарный: документ либо загружается целиком, либо прежняя
// сцена остается нетронутой.
func (s *Session) Import(data []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entities, err := s.codec.Decode(data)
	if err != nil {
		return 0, err
	}
	s.model.Replace(entities)
	s.selection.Clear()
	s.record()
	return len(entities), nil
}

// ImportGzip загрузка сжатого документа из библиотеки сцен.
func (s *Session) ImportGzip(data []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entities, err := s.codec.DecodeGzip(data)
	if err != nil {
		return 0, err
	}
	s.model.Replace(entities)
	s.selection.Clear()
	s.record()
	return len(entities), nil
}

// ============================================================
// Keyboard commands
// ============================================================

func (s *Session) Keymap() []input.Binding {
	return s.keymap.Bindings()
}

// ExecuteChord разрешает аккорд в команду и выполняет ее.
func (s *Session) ExecuteChord(chord input.Chord) (string, error) {
	cmd, ok := s.keymap.Lookup(chord)
	if !ok {
		return "", models.Validationf("unbound chord %q", chord.Key)
	}
	return cmd.String(), s.Execute(cmd)
}

// Execute выполняет команду клавиатуры поверх операций ядра.
func (s *Session) Execute(cmd input.Command) error {
	step := s.cfg.MoveStep
	switch cmd {
	case input.CmdMoveXNeg:
		return s.execTransform(scene.TransformOp{Translate: &models.Vec3{X: -step}})
	case input.CmdMoveXPos:
		return s.execTransform(scene.TransformOp{Translate: &models.Vec3{X: step}})
	case input.CmdMoveYNeg:
		return s.execTransform(scene.TransformOp{Translate: &models.Vec3{Y: -step}})
	case input.CmdMoveYPos:
		return s.execTransform(scene.TransformOp{Translate: &models.Vec3{Y: step}})
	case input.CmdMoveZNeg:
		return s.execTransform(scene.TransformOp{Translate: &models.Vec3{Z: -step}})
	case input.CmdMoveZPos:
		return s.execTransform(scene.TransformOp{Translate: &models.Vec3{Z: step}})
	case input.CmdRotateCCW:
		return s.execTransform(scene.TransformOp{Rotate: &scene.Rotation{Axis: models.AxisY, Angle: s.cfg.RotateStep}})
	case input.CmdRotateCW:
		return s.execTransform(scene.TransformOp{Rotate: &scene.Rotation{Axis: models.AxisY, Angle: -s.cfg.RotateStep}})
	case input.CmdScaleUp:
		f := s.cfg.ScaleStep
		return s.execTransform(scene.TransformOp{Scale: &models.Vec3{X: f, Y: f, Z: f}})
	case input.CmdScaleDown:
		f := 1 / s.cfg.ScaleStep
		return s.execTransform(scene.TransformOp{Scale: &models.Vec3{X: f, Y: f, Z: f}})
	case input.CmdDelete:
		s.DeleteSelection()
		return nil
	case input.CmdClearSelection:
		s.ClearSelection()
		return nil
	case input.CmdUndo:
		s.Undo()
		return nil
	case input.CmdRedo:
		s.Redo()
		return nil
	case input.CmdGroup:
		_, err := s.GroupSelection()
		return err
	case input.CmdUngroup:
		_, err := s.UngroupSelection()
		return err
	}
	return models.Validationf("unknown command %d", cmd)
}

func (s *Session) execTransform(op scene.TransformOp) error {
	_, err := s.Transform(op)
	return err
}
