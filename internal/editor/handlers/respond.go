package handlers

import (
	"errors"

	"scene-editor/internal/editor/models"
	"scene-editor/internal/editor/repository"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Error mapping
// ============================================================

// respondError отображает таксономию ошибок ядра на HTTP статусы.
// Ни одна ошибка не фатальна — редактор остается рабочим.
func respondError(c fiber.Ctx, err error) error {
	var ve *models.ValidationError
	var ge *models.GeometryError
	var fe *models.FormatError

	status := 500
	switch {
	case errors.As(err, &ve):
		status = 422
	case errors.As(err, &ge):
		status = 422
	case errors.As(err, &fe):
		status = 400
	case errors.Is(err, repository.ErrNotFound):
		status = 404
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
