package input

import (
	"math"
	"testing"

	"scene-editor/internal/editor/models"
	"scene-editor/internal/editor/scene"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDragGesturePhases(t *testing.T) {
	var g DragGesture

	// Move до нажатия игнорируется
	g.Feed(PointerEvent{Kind: PointerMove, Point: models.Vec3{X: 5}})
	if g.Phase() != PhaseIdle {
		t.Fatalf("phase = %v after stray move", g.Phase())
	}

	g.Feed(PointerEvent{Kind: PointerDown, Point: models.Vec3{X: 1}})
	if g.Phase() != PhaseDragging {
		t.Fatalf("phase = %v after down", g.Phase())
	}

	g.Feed(PointerEvent{Kind: PointerMove, Point: models.Vec3{X: 3, Z: 2}})
	d := g.Delta()
	if !near(d.X, 2) || !near(d.Z, 2) {
		t.Errorf("delta = %+v", d)
	}

	done := g.Feed(PointerEvent{Kind: PointerUp, Point: models.Vec3{X: 4, Z: 2}})
	if !done || g.Phase() != PhaseDone {
		t.Fatalf("up did not finish the gesture: done=%v phase=%v", done, g.Phase())
	}
	if !near(g.Delta().X, 3) {
		t.Errorf("final delta = %+v", g.Delta())
	}

	// После завершения события игнорируются до Reset
	g.Feed(PointerEvent{Kind: PointerMove, Point: models.Vec3{X: 100}})
	if !near(g.Current().X, 4) {
		t.Errorf("done gesture accepted a move")
	}

	g.Reset()
	if g.Phase() != PhaseIdle {
		t.Errorf("reset did not return to idle")
	}
}

func TestEdgePullScaleFactor(t *testing.T) {
	pull := NewEdgePull(scene.EdgeHandle{EntityID: "box-1", EdgeIndex: 3})
	pull.Feed(PointerEvent{Kind: PointerDown, Point: models.Vec3{}})
	pull.Feed(PointerEvent{Kind: PointerMove, Point: models.Vec3{X: 0.5, Z: 0.5}})

	if f := pull.ScaleFactor(2); !near(f, 1.5) {
		t.Errorf("factor = %v, want 1.5", f)
	}

	// Нулевой референс не делит на ноль
	if f := pull.ScaleFactor(0); !near(f, 2.0) {
		t.Errorf("factor with zero extent = %v, want 2.0", f)
	}
}

func TestEdgePullFactorClamped(t *testing.T) {
	pull := NewEdgePull(scene.EdgeHandle{EntityID: "box-1"})
	pull.Feed(PointerEvent{Kind: PointerDown, Point: models.Vec3{}})
	pull.Feed(PointerEvent{Kind: PointerMove, Point: models.Vec3{X: -50}})

	if f := pull.ScaleFactor(1); !near(f, 0.05) {
		t.Errorf("factor = %v, want clamp at 0.05", f)
	}
}

func TestKeymapLookup(t *testing.T) {
	k := DefaultKeymap()

	cmd, ok := k.Lookup(Chord{Key: "z", Ctrl: true})
	if !ok || cmd != CmdUndo {
		t.Errorf("ctrl+z = %v, %v", cmd, ok)
	}

	cmd, ok = k.Lookup(Chord{Key: "g", Ctrl: true, Shift: true})
	if !ok || cmd != CmdUngroup {
		t.Errorf("ctrl+shift+g = %v, %v", cmd, ok)
	}

	// Без модификатора биндинг другой
	if _, ok := k.Lookup(Chord{Key: "z"}); ok {
		t.Errorf("bare z resolved to a command")
	}
	if _, ok := k.Lookup(Chord{Key: "F13"}); ok {
		t.Errorf("unbound chord resolved")
	}
}

func TestKeymapBindingsFlat(t *testing.T) {
	k := DefaultKeymap()
	bindings := k.Bindings()
	if len(bindings) != 16 {
		t.Fatalf("default keymap has %d bindings", len(bindings))
	}
	for _, b := range bindings {
		if b.Command == "unknown" {
			t.Errorf("binding %+v has no command name", b.Chord)
		}
	}
}
