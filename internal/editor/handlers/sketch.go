package handlers

import (
	"encoding/json"
	"log"

	"scene-editor/internal/editor/models"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Sketch operations
// ============================================================

type sketchPointRequest struct {
	Point models.Vec3 `json:"point"`
}

// SketchAddPoint клик инструмента полигона.
func (h *EditorHandler) SketchAddPoint(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	var req sketchPointRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	if err := sess.SketchAddPoint(req.Point); err != nil {
		return respondError(c, err)
	}
	state, points := sess.SketchState()
	return c.JSON(fiber.Map{"state": state.String(), "points": points})
}

// SketchFinish двойной клик / явное завершение пути.
func (h *EditorHandler) SketchFinish(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	if err := sess.SketchFinish(); err != nil {
		return respondError(c, err)
	}
	state, points := sess.SketchState()
	return c.JSON(fiber.Map{"state": state.String(), "points": points})
}

type sketchDragRequest struct {
	Start models.Vec3 `json:"start"`
	End   models.Vec3 `json:"end"`
}

// SketchRectangle прямоугольник одним драгом.
func (h *EditorHandler) SketchRectangle(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	var req sketchDragRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	if err := sess.SketchRectangle(req.Start, req.End); err != nil {
		return respondError(c, err)
	}
	state, points := sess.SketchState()
	return c.JSON(fiber.Map{"state": state.String(), "points": points})
}

// SketchCircle круг одним драгом: центр и точка на окружности.
func (h *EditorHandler) SketchCircle(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	var req sketchDragRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	if err := sess.SketchCircle(req.Start, req.End); err != nil {
		return respondError(c, err)
	}
	state, points := sess.SketchState()
	return c.JSON(fiber.Map{"state": state.String(), "points": points})
}

type extrudeRequest struct {
	Depth float64 `json:"depth"`
	Color string  `json:"color"`
}

// SketchExtrude замкнутый профиль → призма в сцене.
func (h *EditorHandler) SketchExtrude(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	var req extrudeRequest
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid JSON payload"})
		}
	}
	entity, err := sess.SketchExtrude(req.Depth, req.Color)
	if err != nil {
		return respondError(c, err)
	}
	log.Printf("[SKETCH] Extruded solid %s (depth %.2f)", entity.ID, entity.Extruded.Depth)
	return c.Status(201).JSON(entityView(entity))
}

// SketchClear явный сброс эскиза из любого состояния.
func (h *EditorHandler) SketchClear(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	sess.SketchClear()
	return c.JSON(fiber.Map{"state": "idle"})
}
