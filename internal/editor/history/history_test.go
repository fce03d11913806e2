package history

import (
	"testing"

	"scene-editor/internal/editor/models"
)

func boxAt(id string, x float64) *models.Entity {
	return &models.Entity{
		ID:        id,
		Kind:      models.KindPrimitive,
		Primitive: &models.PrimitiveData{Type: models.PrimitiveBox},
		Transform: models.Transform{
			Position: models.Vec3{X: x},
			Scale:    models.One(),
		},
		Color: "#ff0000",
	}
}

func TestUndoAtOldestIsNoop(t *testing.T) {
	h := New(nil)
	if _, ok := h.Undo(); ok {
		t.Errorf("undo at oldest snapshot succeeded")
	}
	if h.CanUndo() {
		t.Errorf("CanUndo at oldest")
	}
}

func TestRedoAtNewestIsNoop(t *testing.T) {
	h := New(nil)
	h.Record([]*models.Entity{boxAt("a", 0)})
	if _, ok := h.Redo(); ok {
		t.Errorf("redo at newest snapshot succeeded")
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	h := New(nil)

	// N мутаций: бокс двигается по X
	const n = 4
	for i := 1; i <= n; i++ {
		h.Record([]*models.Entity{boxAt("a", float64(i))})
	}

	// N undo воспроизводят каждое предыдущее состояние
	for i := n - 1; i >= 1; i-- {
		got, ok := h.Undo()
		if !ok {
			t.Fatalf("undo %d failed", i)
		}
		if got[0].Transform.Position.X != float64(i) {
			t.Errorf("undo to x=%v, want %d", got[0].Transform.Position.X, i)
		}
	}
	got, ok := h.Undo()
	if !ok {
		t.Fatalf("final undo failed")
	}
	if len(got) != 0 {
		t.Errorf("initial state not empty: %d entities", len(got))
	}

	// N redo возвращают состояния в прямом порядке
	for i := 1; i <= n; i++ {
		got, ok := h.Redo()
		if !ok {
			t.Fatalf("redo %d failed", i)
		}
		if got[0].Transform.Position.X != float64(i) {
			t.Errorf("redo to x=%v, want %d", got[0].Transform.Position.X, i)
		}
	}
}

func TestRecordTruncatesRedoFuture(t *testing.T) {
	h := New(nil)
	h.Record([]*models.Entity{boxAt("a", 1)})
	h.Record([]*models.Entity{boxAt("a", 2)})

	if _, ok := h.Undo(); !ok {
		t.Fatalf("undo failed")
	}
	// Новое действие после undo инвалидирует ветку redo
	h.Record([]*models.Entity{boxAt("a", 7)})

	if h.CanRedo() {
		t.Errorf("redo branch survived a fresh record")
	}
	got, ok := h.Undo()
	if !ok {
		t.Fatalf("undo failed")
	}
	if got[0].Transform.Position.X != 1 {
		t.Errorf("undo after truncation gave x=%v, want 1", got[0].Transform.Position.X)
	}
}

func TestSnapshotsDoNotShareState(t *testing.T) {
	h := New(nil)
	live := boxAt("a", 1)
	h.Record([]*models.Entity{live})

	// Мутация живой сущности после записи не должна трогать снапшот
	live.Transform.Position.X = 99
	live.Color = "#000000"

	h.Record([]*models.Entity{boxAt("a", 2)})
	prev, ok := h.Undo()
	if !ok {
		t.Fatalf("undo failed")
	}
	if prev[0].Transform.Position.X != 1 {
		t.Errorf("snapshot mutated through live reference: x=%v", prev[0].Transform.Position.X)
	}
	if prev[0].Color != "#ff0000" {
		t.Errorf("snapshot color mutated: %s", prev[0].Color)
	}
}
