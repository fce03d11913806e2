package handlers

import (
	"encoding/json"
	"log"

	"scene-editor/internal/editor/input"
	"scene-editor/internal/editor/models"
	"scene-editor/internal/editor/scene"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Entity operations
// ============================================================

type createEntityRequest struct {
	Type     string      `json:"type"` // box | sphere | cylinder
	Position models.Vec3 `json:"position"`
	Rotation models.Vec3 `json:"rotation"`
	Scale    models.Vec3 `json:"scale"`
	Color    string      `json:"color"`
}

func (h *EditorHandler) CreateEntity(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}

	var req createEntityRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON payload"})
	}

	entity, err := sess.CreatePrimitive(models.ParsePrimitiveType(req.Type), models.Transform{
		Position: req.Position,
		Rotation: req.Rotation,
		Scale:    req.Scale,
	}, req.Color)
	if err != nil {
		return respondError(c, err)
	}

	log.Printf("[EDITOR] Created %s %s", req.Type, entity.ID)
	return c.Status(201).JSON(entityView(entity))
}

func (h *EditorHandler) ListEntities(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	return c.JSON(fiber.Map{"entities": entityViews(sess.Entities())})
}

func (h *EditorHandler) DeleteSelection(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	removed := sess.DeleteSelection()
	log.Printf("[EDITOR] Deleted %d entities", removed)
	return c.JSON(fiber.Map{"removed": removed})
}

// ============================================================
// Pick & selection
// ============================================================

type pickRequest struct {
	Origin models.Vec3 `json:"origin"`
	Dir    models.Vec3 `json:"dir"`
	Toggle bool        `json:"toggle"` // модификатор мультивыбора
}

func (h *EditorHandler) Pick(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}

	var req pickRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	if req.Dir == (models.Vec3{}) {
		return c.Status(422).JSON(fiber.Map{"error": "pick ray direction is zero"})
	}

	res, hit := sess.Pick(req.Origin, req.Dir, req.Toggle)
	if !hit {
		return c.JSON(fiber.Map{
			"hit":       false,
			"selection": sess.SelectionState(),
		})
	}
	return c.JSON(fiber.Map{
		"hit":         true,
		"entityId":    res.EntityID,
		"granularity": res.Granularity.String(),
		"distance":    res.Distance,
		"point":       res.Point,
		"selection":   sess.SelectionState(),
	})
}

func (h *EditorHandler) ClearSelection(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	sess.ClearSelection()
	return c.JSON(fiber.Map{"cleared": true})
}

// ============================================================
// Transform
// ============================================================

type transformRequest struct {
	Translate *models.Vec3 `json:"translate,omitempty"`
	Rotate    *struct {
		Axis  string  `json:"axis"` // x | y | z
		Angle float64 `json:"angle"`
	} `json:"rotate,omitempty"`
	Scale *models.Vec3 `json:"scale,omitempty"`
}

func (h *EditorHandler) Transform(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}

	var req transformRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON payload"})
	}

	op := scene.TransformOp{Translate: req.Translate, Scale: req.Scale}
	if req.Rotate != nil {
		axis := models.AxisY
		switch req.Rotate.Axis {
		case "x":
			axis = models.AxisX
		case "y":
			axis = models.AxisY
		case "z":
			axis = models.AxisZ
		default:
			return c.Status(422).JSON(fiber.Map{"error": "rotate axis must be x, y or z"})
		}
		op.Rotate = &scene.Rotation{Axis: axis, Angle: req.Rotate.Angle}
	}

	affected, err := sess.Transform(op)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"affected": affected})
}

// ============================================================
// Group / Ungroup / Recolor
// ============================================================

func (h *EditorHandler) Group(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	group, err := sess.GroupSelection()
	if err != nil {
		return respondError(c, err)
	}
	log.Printf("[EDITOR] Grouped into %s", group.ID)
	return c.Status(201).JSON(entityView(group))
}

func (h *EditorHandler) Ungroup(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	ids, err := sess.UngroupSelection()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"restored": ids})
}

type recolorRequest struct {
	Color string `json:"color"`
}

func (h *EditorHandler) Recolor(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	var req recolorRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	changed, err := sess.Recolor(req.Color)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"changed": changed})
}

// ============================================================
// History
// ============================================================

func (h *EditorHandler) Undo(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	applied := sess.Undo()
	return c.JSON(fiber.Map{
		"applied":  applied,
		"entities": entityViews(sess.Entities()),
	})
}

func (h *EditorHandler) Redo(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	applied := sess.Redo()
	return c.JSON(fiber.Map{
		"applied":  applied,
		"entities": entityViews(sess.Entities()),
	})
}

// ============================================================
// Edge pull
// ============================================================

type edgePullStartRequest struct {
	EntityID  string `json:"entityId"`
	EdgeIndex int    `json:"edgeIndex"`
}

func (h *EditorHandler) EdgePullStart(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	var req edgePullStartRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	if err := sess.EdgePullStart(req.EntityID, req.EdgeIndex); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"started": true})
}

type edgePullPointRequest struct {
	Point models.Vec3 `json:"point"`
}

func (h *EditorHandler) EdgePullMove(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	var req edgePullPointRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	if err := sess.EdgePullMove(req.Point); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"dragging": true})
}

func (h *EditorHandler) EdgePullFinish(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	var req edgePullPointRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	factor, err := sess.EdgePullFinish(req.Point)
	if err != nil {
		return respondError(c, err)
	}
	log.Printf("[EDITOR] Edge pull applied scale %.3f", factor)
	return c.JSON(fiber.Map{"factor": factor})
}

// ============================================================
// Keyboard
// ============================================================

type keyRequest struct {
	Key   string `json:"key"`
	Ctrl  bool   `json:"ctrl"`
	Shift bool   `json:"shift"`
}

// Key выполняет клавиатурную команду по аккорду.
func (h *EditorHandler) Key(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	var req keyRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	cmd, err := sess.ExecuteChord(input.Chord{Key: req.Key, Ctrl: req.Ctrl, Shift: req.Shift})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"command": cmd})
}
