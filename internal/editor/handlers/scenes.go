package handlers

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Export / Import
// ============================================================

// ExportScene отдает документ сцены. ?gzip=1 — сжатый вариант.
func (h *EditorHandler) ExportScene(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}

	if c.Query("gzip") == "1" {
		data, err := sess.ExportGzip()
		if err != nil {
			return respondError(c, err)
		}
		c.Set("Content-Type", "application/gzip")
		c.Set("Content-Disposition", `attachment; filename="scene.json.gz"`)
		return c.Send(data)
	}

	data, err := sess.Export()
	if err != nil {
		return respondError(c, err)
	}
	c.Set("Content-Type", "application/json")
	return c.Send(data)
}

// ImportScene загружает документ целиком: при любой ошибке формата
// прежняя сцена остается как была.
func (h *EditorHandler) ImportScene(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	if len(c.Body()) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "body required"})
	}

	count, err := sess.Import(c.Body())
	if err != nil {
		log.Printf("[SCENE] Import failed: %v", err)
		return respondError(c, err)
	}
	log.Printf("[SCENE] Imported %d objects", count)
	return c.JSON(fiber.Map{"imported": count})
}

// ============================================================
// Scene library (SQLite)
// ============================================================

type saveSceneRequest struct {
	Name string `json:"name"`
}

// SaveScene кладет текущую сцену сессии в библиотеку под именем.
func (h *EditorHandler) SaveScene(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	var req saveSceneRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil || req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "scene name required"})
	}

	data, err := sess.ExportGzip()
	if err != nil {
		return respondError(c, err)
	}
	id, err := h.repo.Save(context.Background(), sess.ID, req.Name, data)
	if err != nil {
		log.Printf("[SCENE] Save failed: %v", err)
		return respondError(c, err)
	}
	log.Printf("[SCENE] Saved %q as %s", req.Name, id)
	return c.Status(201).JSON(fiber.Map{"id": id, "name": req.Name})
}

// LoadScene загружает сцену из библиотеки в сессию.
func (h *EditorHandler) LoadScene(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	rec, err := h.repo.Load(context.Background(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	count, err := sess.ImportGzip(rec.Data)
	if err != nil {
		return respondError(c, err)
	}
	log.Printf("[SCENE] Loaded %q (%d objects)", rec.Name, count)
	return c.JSON(fiber.Map{"loaded": count, "name": rec.Name})
}

func (h *EditorHandler) ListScenes(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	records, err := h.repo.List(context.Background(), sess.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"scenes": records})
}

func (h *EditorHandler) DeleteScene(c fiber.Ctx) error {
	if _, ok := h.session(c); !ok {
		return nil
	}
	if err := h.repo.Delete(context.Background(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": true})
}
