package scene

import (
	"scene-editor/internal/editor/geometry"
	"scene-editor/internal/editor/models"

	"github.com/google/uuid"
)

// ============================================================
// Entity Model
// ============================================================

// Model хранит верхнеуровневые сущности сцены. Порядок создания
// сохраняется, чтобы All() и экспорт были детерминированы.
type Model struct {
	entities map[string]*models.Entity
	order    []string
}

func NewModel() *Model {
	return &Model{
		entities: make(map[string]*models.Entity),
		order:    []string{},
	}
}

// CreatePrimitive создает примитив и кладет его в модель.
func (m *Model) CreatePrimitive(t models.PrimitiveType, tr models.Transform, color string) (*models.Entity, error) {
	e := &models.Entity{
		ID:        uuid.NewString(),
		Kind:      models.KindPrimitive,
		Transform: tr,
		Color:     color,
		Primitive: &models.PrimitiveData{Type: t},
	}
	if err := m.Insert(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Insert добавляет готовую сущность (выдавливание, импорт).
// Нулевая компонента масштаба вырождает геометрию — не пускаем.
func (m *Model) Insert(e *models.Entity) error {
	if e.Transform.Scale.X == 0 || e.Transform.Scale.Y == 0 || e.Transform.Scale.Z == 0 {
		return models.Validationf("scale component must not be zero")
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if _, exists := m.entities[e.ID]; exists {
		return models.Validationf("duplicate entity id %s", e.ID)
	}
	m.entities[e.ID] = e
	m.order = append(m.order, e.ID)
	return nil
}

func (m *Model) Remove(id string) bool {
	if _, ok := m.entities[id]; !ok {
		return false
	}
	delete(m.entities, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

func (m *Model) Get(id string) (*models.Entity, bool) {
	e, ok := m.entities[id]
	return e, ok
}

func (m *Model) All() []*models.Entity {
	out := make([]*models.Entity, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.entities[id])
	}
	return out
}

func (m *Model) Count() int { return len(m.order) }

// ============================================================
// Group / Ungroup
// ============================================================

// Group собирает сущности в группу с позицией в центроиде.
// Позиции детей становятся относительными центроиду.
func (m *Model) Group(ids []string) (*models.Entity, error) {
	if len(ids) < 2 {
		return nil, models.Validationf("group needs at least 2 entities, got %d", len(ids))
	}

	members := make([]*models.Entity, 0, len(ids))
	for _, id := range ids {
		e, ok := m.entities[id]
		if !ok {
			return nil, models.Validationf("group: unknown entity %s", id)
		}
		members = append(members, e)
	}

	var centroid models.Vec3
	for _, e := range members {
		centroid = centroid.Add(e.Transform.Position)
	}
	centroid = centroid.Mul(1 / float64(len(members)))

	group := &models.Entity{
		ID:   uuid.NewString(),
		Kind: models.KindGroup,
		Transform: models.Transform{
			Position: centroid,
			Scale:    models.One(),
		},
		Group: &models.GroupData{},
	}

	for _, e := range members {
		m.Remove(e.ID)
		e.Transform.Position = e.Transform.Position.Sub(centroid)
		group.Group.Children = append(group.Group.Children, e)
	}

	if err := m.Insert(group); err != nil {
		return nil, err
	}
	return group, nil
}

// Ungroup распускает группу, возвращая детям мировые трансформы.
func (m *Model) Ungroup(id string) ([]*models.Entity, error) {
	group, ok := m.entities[id]
	if !ok {
		return nil, models.Validationf("ungroup: unknown entity %s", id)
	}
	if group.Kind != models.KindGroup {
		return nil, models.Validationf("ungroup: entity %s is not a group", id)
	}

	m.Remove(id)

	restored := make([]*models.Entity, 0, len(group.Group.Children))
	for _, child := range group.Group.Children {
		child.Transform = geometry.Compose(group.Transform, child.Transform)
		if err := m.Insert(child); err != nil {
			return nil, err
		}
		restored = append(restored, child)
	}
	return restored, nil
}

// ============================================================
// Snapshots
// ============================================================

// Snapshot глубокие копии всех сущностей — для истории.
func (m *Model) Snapshot() []*models.Entity {
	out := make([]*models.Entity, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.entities[id].Clone())
	}
	return out
}

// Replace целиком заменяет содержимое модели (undo/redo, импорт).
func (m *Model) Replace(entities []*models.Entity) {
	m.entities = make(map[string]*models.Entity, len(entities))
	m.order = m.order[:0]
	for _, e := range entities {
		m.entities[e.ID] = e
		m.order = append(m.order, e.ID)
	}
}
