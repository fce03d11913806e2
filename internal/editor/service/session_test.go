package service

import (
	"errors"
	"math"
	"testing"

	"scene-editor/internal/editor/models"
	"scene-editor/internal/editor/scene"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func newTestSession() *Session {
	return NewSessionManager(DefaultSessionConfig()).Create()
}

func createBox(t *testing.T, s *Session) *models.Entity {
	t.Helper()
	box, err := s.CreatePrimitive(models.PrimitiveBox, models.IdentityTransform(), "")
	if err != nil {
		t.Fatalf("create box: %v", err)
	}
	return box
}

func selectOne(s *Session, id string) {
	s.mu.Lock()
	s.selection.Replace(id, models.GranularityShape)
	s.mu.Unlock()
}

// Сценарий из спецификации поведения: бокс в начале координат,
// сдвиг на (1,0,0), undo возвращает в ноль, redo обратно.
func TestTranslateUndoRedoScenario(t *testing.T) {
	s := newTestSession()
	box := createBox(t, s)
	selectOne(s, box.ID)

	if _, err := s.Transform(scene.TransformOp{Translate: &models.Vec3{X: 1}}); err != nil {
		t.Fatalf("translate: %v", err)
	}

	pos := func() models.Vec3 {
		for _, e := range s.Entities() {
			if e.ID == box.ID {
				return e.Transform.Position
			}
		}
		t.Fatalf("box disappeared")
		return models.Vec3{}
	}

	if !near(pos().X, 1) {
		t.Fatalf("after translate x = %v, want 1", pos().X)
	}

	if !s.Undo() {
		t.Fatalf("undo failed")
	}
	if !near(pos().X, 0) {
		t.Errorf("after undo x = %v, want 0", pos().X)
	}

	if !s.Redo() {
		t.Fatalf("redo failed")
	}
	if !near(pos().X, 1) {
		t.Errorf("after redo x = %v, want 1", pos().X)
	}
}

func TestTransformEmptySelectionIsNoop(t *testing.T) {
	s := newTestSession()
	createBox(t, s)
	before := s.history.Len()

	n, err := s.Transform(scene.TransformOp{Translate: &models.Vec3{X: 1}})
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if n != 0 {
		t.Errorf("affected %d entities with empty selection", n)
	}
	if s.history.Len() != before {
		t.Errorf("no-op transform recorded a snapshot")
	}
}

func TestRotateIsAdditiveScaleIsMultiplicative(t *testing.T) {
	s := newTestSession()
	box := createBox(t, s)
	selectOne(s, box.ID)

	rot := scene.TransformOp{Rotate: &scene.Rotation{Axis: models.AxisY, Angle: 0.5}}
	if _, err := s.Transform(rot); err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if _, err := s.Transform(rot); err != nil {
		t.Fatalf("rotate: %v", err)
	}

	if _, err := s.Transform(scene.TransformOp{Scale: &models.Vec3{X: 2, Y: 2, Z: 2}}); err != nil {
		t.Fatalf("scale: %v", err)
	}
	if _, err := s.Transform(scene.TransformOp{Scale: &models.Vec3{X: 2, Y: 1, Z: 1}}); err != nil {
		t.Fatalf("scale: %v", err)
	}

	e := s.Entities()[0]
	if !near(e.Transform.Rotation.Y, 1.0) {
		t.Errorf("rotation.y = %v, want 1.0", e.Transform.Rotation.Y)
	}
	if !near(e.Transform.Scale.X, 4) || !near(e.Transform.Scale.Y, 2) || !near(e.Transform.Scale.Z, 2) {
		t.Errorf("scale = %+v", e.Transform.Scale)
	}
}

func TestGroupFailureRecordsNoSnapshot(t *testing.T) {
	s := newTestSession()
	box := createBox(t, s)
	selectOne(s, box.ID)
	before := s.history.Len()

	_, err := s.GroupSelection()
	var ve *models.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want validation error, got %v", err)
	}
	if s.history.Len() != before {
		t.Errorf("failed group recorded a snapshot")
	}
	if len(s.Entities()) != 1 {
		t.Errorf("model changed on failed group")
	}
}

func TestGroupUngroupThroughSession(t *testing.T) {
	s := newTestSession()
	a := createBox(t, s)
	b := createBox(t, s)
	s.mu.Lock()
	s.selection.Toggle(a.ID, models.GranularityShape)
	s.selection.Toggle(b.ID, models.GranularityShape)
	s.mu.Unlock()

	group, err := s.GroupSelection()
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	if len(s.Entities()) != 1 {
		t.Errorf("top level has %d entities after group", len(s.Entities()))
	}

	st := s.SelectionState()
	if len(st.IDs) != 1 || st.IDs[0] != group.ID {
		t.Errorf("selection after group = %+v", st.IDs)
	}

	ids, err := s.UngroupSelection()
	if err != nil {
		t.Fatalf("ungroup: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("restored %d entities", len(ids))
	}
	if len(s.Entities()) != 2 {
		t.Errorf("top level has %d entities after ungroup", len(s.Entities()))
	}
}

func TestDeleteSelectionPrunesAndRecords(t *testing.T) {
	s := newTestSession()
	box := createBox(t, s)
	selectOne(s, box.ID)
	before := s.history.Len()

	if n := s.DeleteSelection(); n != 1 {
		t.Fatalf("removed %d", n)
	}
	if len(s.Entities()) != 0 {
		t.Errorf("entity survived delete")
	}
	st := s.SelectionState()
	if len(st.IDs) != 0 || st.Active != "" {
		t.Errorf("selection references deleted entity: %+v", st)
	}
	if s.history.Len() != before+1 {
		t.Errorf("delete did not record exactly one snapshot")
	}

	// Повторное удаление пустого выбора — no-op
	if n := s.DeleteSelection(); n != 0 {
		t.Errorf("deleted %d from empty selection", n)
	}
}

func TestImportIsAllOrNothing(t *testing.T) {
	s := newTestSession()
	createBox(t, s)

	_, err := s.Import([]byte(`{"objects": [{"type": "box", "scale": [0, 1, 1]}]}`))
	var fe *models.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("want format error, got %v", err)
	}
	if len(s.Entities()) != 1 {
		t.Errorf("failed import changed the scene: %d entities", len(s.Entities()))
	}
}

func TestExportImportThroughSession(t *testing.T) {
	s := newTestSession()
	createBox(t, s)
	_, err := s.CreatePrimitive(models.PrimitiveSphere, models.Transform{
		Position: models.Vec3{X: 2},
		Scale:    models.One(),
	}, "#123456")
	if err != nil {
		t.Fatalf("create sphere: %v", err)
	}

	data, err := s.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	other := newTestSession()
	count, err := other.Import(data)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if count != 2 || len(other.Entities()) != 2 {
		t.Errorf("imported %d entities", count)
	}
}

func TestSketchExtrudeRegistersEntityAndSnapshot(t *testing.T) {
	s := newTestSession()
	if err := s.SketchRectangle(models.Vec3{}, models.Vec3{X: 2, Z: 2}); err != nil {
		t.Fatalf("rectangle: %v", err)
	}
	before := s.history.Len()

	entity, err := s.SketchExtrude(1.0, "")
	if err != nil {
		t.Fatalf("extrude: %v", err)
	}
	if entity.Kind != models.KindExtruded {
		t.Errorf("kind = %v", entity.Kind)
	}
	if len(s.Entities()) != 1 {
		t.Errorf("extruded solid not registered")
	}
	if s.history.Len() != before+1 {
		t.Errorf("extrude did not record exactly one snapshot")
	}
}

func TestSessionManagerLifecycle(t *testing.T) {
	m := NewSessionManager(DefaultSessionConfig())
	s := m.Create()

	if _, ok := m.Resolve(s.ID); !ok {
		t.Fatalf("session not resolvable")
	}
	if !m.Close(s.ID) {
		t.Fatalf("close failed")
	}
	if _, ok := m.Resolve(s.ID); ok {
		t.Errorf("session resolvable after close")
	}
	if m.Close(s.ID) {
		t.Errorf("second close succeeded")
	}
}
