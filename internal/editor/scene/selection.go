package scene

import "scene-editor/internal/editor/models"

// ============================================================
// Selection
// ============================================================

// EdgeHandle интерактивная ручка на середине ребра. Отдается рендеру
// при гранулярности edge и пересоздается при каждой смене подсветки.
type EdgeHandle struct {
	EntityID  string      `json:"entityId"`
	EdgeIndex int         `json:"edgeIndex"`
	Position  models.Vec3 `json:"position"`
}

// Selection множество выбранных сущностей плюс общая гранулярность.
// Инвариант: ссылается только на живые сущности — см. Prune.
type Selection struct {
	order       []string
	ids         map[string]struct{}
	granularity models.Granularity
	active      string
	handles     []EdgeHandle
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

func (s *Selection) IDs() []string {
	return append([]string(nil), s.order...)
}

func (s *Selection) Granularity() models.Granularity { return s.granularity }

// Active последняя выбранная сущность.
func (s *Selection) Active() string { return s.active }

func (s *Selection) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Empty() bool { return len(s.order) == 0 }

// Targets цели трансформации: выбранное множество, иначе активная
// сущность, иначе ничего.
func (s *Selection) Targets() []string {
	if len(s.order) > 0 {
		return s.IDs()
	}
	if s.active != "" {
		return []string{s.active}
	}
	return nil
}

// Replace одиночный выбор без модификатора: прежний выбор сбрасывается.
func (s *Selection) Replace(id string, g models.Granularity) {
	s.Clear()
	s.order = []string{id}
	s.ids[id] = struct{}{}
	s.granularity = g
	s.active = id
}

// Toggle мультивыбор с модификатором: добавляет/убирает, не трогая остальных.
func (s *Selection) Toggle(id string, g models.Granularity) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		for i, oid := range s.order {
			if oid == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		if s.active == id {
			s.active = ""
			if len(s.order) > 0 {
				s.active = s.order[len(s.order)-1]
			}
		}
		return
	}
	s.order = append(s.order, id)
	s.ids[id] = struct{}{}
	s.granularity = g
	s.active = id
}

func (s *Selection) Clear() {
	s.order = s.order[:0]
	s.ids = make(map[string]struct{})
	s.granularity = models.GranularityShape
	s.active = ""
	s.handles = nil
}

// Prune выкидывает из выбора сущности, которых больше нет в модели.
func (s *Selection) Prune(m *Model) {
	kept := s.order[:0]
	for _, id := range s.order {
		if _, ok := m.Get(id); ok {
			kept = append(kept, id)
		} else {
			delete(s.ids, id)
		}
	}
	s.order = kept
	if s.active != "" {
		if _, ok := m.Get(s.active); !ok {
			s.active = ""
			if len(s.order) > 0 {
				s.active = s.order[len(s.order)-1]
			}
		}
	}
	if len(s.order) == 0 && s.active == "" {
		s.handles = nil
	}
}

// SetHandles заменяет набор ручек ребер (тирдаун старых — просто замена).
func (s *Selection) SetHandles(h []EdgeHandle) { s.handles = h }

func (s *Selection) Handles() []EdgeHandle {
	return append([]EdgeHandle(nil), s.handles...)
}
