package history

import (
	"time"

	"scene-editor/internal/editor/models"
)

// ============================================================
// History Manager
// ============================================================

// Snapshot полная копия семантических атрибутов всех сущностей.
// Никаких ссылок на ресурсы рендера — реплей строит визуализацию заново.
type Snapshot struct {
	TakenAt  time.Time
	Entities []*models.Entity
}

// Manager хранит снапшоты и курсор. Record после каждой мутации;
// undo/redo двигают курсор и отдают копию для замены живой модели.
type Manager struct {
	snapshots []Snapshot
	cursor    int
}

// New менеджер с начальным снапшотом: undo самой первой операции
// возвращает именно это состояние.
func New(initial []*models.Entity) *Manager {
	return &Manager{
		snapshots: []Snapshot{{TakenAt: time.Now(), Entities: cloneAll(initial)}},
		cursor:    0,
	}
}

// Record добавляет снапшот, отрезая отмененное будущее: новое
// действие после undo инвалидирует ветку redo.
func (m *Manager) Record(entities []*models.Entity) {
	m.snapshots = m.snapshots[:m.cursor+1]
	m.snapshots = append(m.snapshots, Snapshot{
		TakenAt:  time.Now(),
		Entities: cloneAll(entities),
	})
	m.cursor++
}

// Undo шаг назад. На самом старом снапшоте — no-op.
func (m *Manager) Undo() ([]*models.Entity, bool) {
	if m.cursor == 0 {
		return nil, false
	}
	m.cursor--
	return cloneAll(m.snapshots[m.cursor].Entities), true
}

// Redo шаг вперед. На самом новом — no-op.
func (m *Manager) Redo() ([]*models.Entity, bool) {
	if m.cursor >= len(m.snapshots)-1 {
		return nil, false
	}
	m.cursor++
	return cloneAll(m.snapshots[m.cursor].Entities), true
}

func (m *Manager) CanUndo() bool { return m.cursor > 0 }
func (m *Manager) CanRedo() bool { return m.cursor < len(m.snapshots)-1 }

// Len количество снапшотов (включая начальный).
func (m *Manager) Len() int { return len(m.snapshots) }

// cloneAll копии в обе стороны: снапшоты не делят состояние с моделью.
func cloneAll(entities []*models.Entity) []*models.Entity {
	out := make([]*models.Entity, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.Clone())
	}
	return out
}
