package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Unknownlegend09/ff-tournament/internal/middleware"
	"github.com/Unknownlegend09/ff-tournament/internal/models"
	"github.com/Unknownlegend09/ff-tournament/internal/repository"
	"github.com/Unknownlegend09/ff-tournament/internal/services"
	"github.com/Unknownlegend09/ff-tournament/internal/utils"
)

type TournamentHandler struct {
	svc *services.TournamentService
}

func NewTournamentHandler(svc *services.TournamentService) *TournamentHandler {
	return &TournamentHandler{svc: svc}
}

// POST /api/tournaments (admin)
func (h *TournamentHandler) Create(c *fiber.Ctx) error {
	var in services.CreateTournamentInput
	if err := c.BodyParser(&in); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	t, err := h.svc.Create(c.Context(), middleware.UserID(c), in)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTournament) {
			return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
		}
		return utils.JSONError(c, fiber.StatusInternalServerError, "failed to create tournament")
	}
	return c.JSON(t)
}

// GET /api/tournaments (public)
func (h *TournamentHandler) List(c *fiber.Ctx) error {
	tournaments, err := h.svc.List(c.Context())
	if err != nil {
		return utils.JSONError(c, fiber.StatusInternalServerError, "failed to list tournaments")
	}
	return c.JSON(tournaments)
}

type registerTournamentReq struct {
	MobileNumber string `json:"mobile_number"`
	PaymentProof string `json:"payment_proof"`
}

// POST /api/tournaments/:id/register (user)
//
// The original client sends payment_proof as a query parameter; the body
// field is accepted as a fallback.
func (h *TournamentHandler) Register(c *fiber.Ctx) error {
	var req registerTournamentReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if req.MobileNumber == "" {
		return utils.JSONError(c, fiber.StatusBadRequest, "mobile_number is required")
	}
	paymentProof := c.Query("payment_proof")
	if paymentProof == "" {
		paymentProof = req.PaymentProof
	}

	reg, err := h.svc.Register(c.Context(), c.Params("id"), middleware.UserID(c), req.MobileNumber, paymentProof)
	if err != nil {
		if errors.Is(err, repository.ErrTournamentNotFound) {
			return utils.JSONError(c, fiber.StatusNotFound, err.Error())
		}
		return utils.JSONError(c, fiber.StatusInternalServerError, "failed to register")
	}
	return c.JSON(reg)
}

// GET /api/registrations (admin)
func (h *TournamentHandler) ListRegistrations(c *fiber.Ctx) error {
	regs, err := h.svc.ListRegistrations(c.Context())
	if err != nil {
		return utils.JSONError(c, fiber.StatusInternalServerError, "failed to list registrations")
	}
	return c.JSON(regs)
}

// GET /api/my-registrations (user)
func (h *TournamentHandler) ListMyRegistrations(c *fiber.Ctx) error {
	regs, err := h.svc.ListUserRegistrations(c.Context(), middleware.UserID(c))
	if err != nil {
		return utils.JSONError(c, fiber.StatusInternalServerError, "failed to list registrations")
	}
	return c.JSON(regs)
}

type updateStatusReq struct {
	Status models.RegistrationStatus `json:"status"`
}

// PUT /api/registrations/:id/status (admin)
func (h *TournamentHandler) UpdateStatus(c *fiber.Ctx) error {
	var req updateStatusReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	reg, err := h.svc.UpdateRegistrationStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrRegistrationNotFound):
			return utils.JSONError(c, fiber.StatusNotFound, err.Error())
		default:
			return utils.JSONError(c, fiber.StatusInternalServerError, "failed to update status")
		}
	}
	return c.JSON(reg)
}
