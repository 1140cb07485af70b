package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Unknownlegend09/ff-tournament/internal/legacy"
	"github.com/Unknownlegend09/ff-tournament/internal/utils"
)

// LegacyHandler serves the original flat-file registration intake. It is
// unauthenticated and independent of the store-backed pipeline.
type LegacyHandler struct {
	log    *legacy.Log
	logger *zap.SugaredLogger
}

func NewLegacyHandler(log *legacy.Log, logger *zap.SugaredLogger) *LegacyHandler {
	return &LegacyHandler{log: log, logger: logger}
}

// POST /register
func (h *LegacyHandler) Submit(c *fiber.Ctx) error {
	var row legacy.Row
	if err := c.BodyParser(&row); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if row.Name == "" || row.UID == "" || row.Phone == "" {
		return utils.JSONError(c, fiber.StatusBadRequest, "Missing fields")
	}
	if err := h.log.Append(row); err != nil {
		h.logger.Errorw("legacy append failed", "err", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, "failed to save registration")
	}
	return c.JSON(fiber.Map{"message": "Registration successful"})
}
