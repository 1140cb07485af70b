package handlers

import (
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Unknownlegend09/ff-tournament/internal/middleware"
	"github.com/Unknownlegend09/ff-tournament/internal/services"
	"github.com/Unknownlegend09/ff-tournament/internal/utils"
)

type UploadHandler struct {
	svc *services.UploadService
}

func NewUploadHandler(svc *services.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// POST /api/upload (multipart/form-data 'file')
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "file missing")
	}
	f, err := fileHeader.Open()
	if err != nil {
		return utils.JSONError(c, fiber.StatusInternalServerError, "cannot open file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return utils.JSONError(c, fiber.StatusInternalServerError, "cannot read file")
	}

	ct := fileHeader.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(data)
	}

	up, err := h.svc.Store(c.Context(), middleware.UserID(c), fileHeader.Filename, ct, data)
	if err != nil {
		return utils.JSONError(c, fiber.StatusInternalServerError, "upload failed")
	}
	return c.JSON(fiber.Map{"file_url": up.URL})
}
