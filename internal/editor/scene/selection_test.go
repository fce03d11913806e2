package scene

import (
	"testing"

	"scene-editor/internal/editor/models"
)

func TestSelectionReplaceAndToggle(t *testing.T) {
	s := NewSelection()

	s.Replace("a", models.GranularityShape)
	if !s.Contains("a") || s.Active() != "a" {
		t.Fatalf("replace did not select a")
	}

	s.Toggle("b", models.GranularityShape)
	if !s.Contains("a") || !s.Contains("b") {
		t.Errorf("toggle cleared previous selection")
	}
	if s.Active() != "b" {
		t.Errorf("active = %q, want b", s.Active())
	}

	// Повторный toggle убирает из множества
	s.Toggle("b", models.GranularityShape)
	if s.Contains("b") {
		t.Errorf("b still selected after second toggle")
	}
	if s.Active() != "a" {
		t.Errorf("active = %q, want a", s.Active())
	}

	s.Replace("c", models.GranularityEdge)
	if s.Contains("a") {
		t.Errorf("replace kept previous selection")
	}
	if s.Granularity() != models.GranularityEdge {
		t.Errorf("granularity = %v", s.Granularity())
	}
}

func TestSelectionTargetsFallsBackToActive(t *testing.T) {
	s := NewSelection()
	if got := s.Targets(); len(got) != 0 {
		t.Fatalf("empty selection has targets: %v", got)
	}

	s.Replace("a", models.GranularityShape)
	s.Toggle("a", models.GranularityShape) // снят последний — active тоже сброшен
	if len(s.Targets()) != 0 {
		t.Errorf("targets after removing sole entity: %v", s.Targets())
	}
}

func TestSelectionPruneDropsDeadEntities(t *testing.T) {
	m := NewModel()
	a := mustBox(t, m, models.Vec3{})
	b := mustBox(t, m, models.Vec3{X: 1})

	s := NewSelection()
	s.Toggle(a.ID, models.GranularityShape)
	s.Toggle(b.ID, models.GranularityShape)

	m.Remove(b.ID)
	s.Prune(m)

	if s.Contains(b.ID) {
		t.Errorf("removed entity still selected")
	}
	if !s.Contains(a.ID) {
		t.Errorf("live entity dropped from selection")
	}
	if s.Active() != a.ID {
		t.Errorf("active = %q, want %q", s.Active(), a.ID)
	}
}
