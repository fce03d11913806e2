package handlers

import (
	"log"

	"scene-editor/internal/editor/repository"
	"scene-editor/internal/editor/service"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Editor Handler
// ============================================================

type EditorHandler struct {
	sessions *service.SessionManager
	repo     *repository.Repository
}

func NewEditorHandler(sessions *service.SessionManager, repo *repository.Repository) *EditorHandler {
	return &EditorHandler{
		sessions: sessions,
		repo:     repo,
	}
}

// session разрешает токен из пути; при неудаче сам отвечает 404.
func (h *EditorHandler) session(c fiber.Ctx) (*service.Session, bool) {
	token := c.Params("token")
	sess, ok := h.sessions.Resolve(token)
	if !ok {
		_ = c.Status(404).JSON(fiber.Map{"error": "unknown session"})
		return nil, false
	}
	return sess, true
}

// ============================================================
// Session lifecycle
// ============================================================

// CreateSession новая сессия редактора с пустой сценой.
func (h *EditorHandler) CreateSession(c fiber.Ctx) error {
	sess := h.sessions.Create()
	log.Printf("[SESSION] Created %s (total: %d)", sess.ID, h.sessions.Count())
	return c.Status(201).JSON(fiber.Map{
		"token":     sess.ID,
		"createdAt": sess.CreatedAt,
	})
}

func (h *EditorHandler) CloseSession(c fiber.Ctx) error {
	token := c.Params("token")
	if !h.sessions.Close(token) {
		return c.Status(404).JSON(fiber.Map{"error": "unknown session"})
	}
	log.Printf("[SESSION] Closed %s", token)
	return c.JSON(fiber.Map{"closed": true})
}

// GetState полное состояние для рендера: сущности, выбор, эскиз.
func (h *EditorHandler) GetState(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	state, points := sess.SketchState()
	return c.JSON(fiber.Map{
		"entities":  entityViews(sess.Entities()),
		"selection": sess.SelectionState(),
		"sketch": fiber.Map{
			"state":  state.String(),
			"points": points,
		},
	})
}

// Keymap таблица клавиатурных биндингов по умолчанию.
func (h *EditorHandler) Keymap(c fiber.Ctx) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	return c.JSON(fiber.Map{"bindings": sess.Keymap()})
}
