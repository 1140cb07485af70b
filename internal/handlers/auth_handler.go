package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Unknownlegend09/ff-tournament/internal/services"
	"github.com/Unknownlegend09/ff-tournament/internal/utils"
)

type AuthHandler struct {
	svc *services.AuthService
}

func NewAuthHandler(svc *services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type registerReq struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	MobileNumber string `json:"mobile_number"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if req.Username == "" || req.Password == "" || req.MobileNumber == "" {
		return utils.JSONError(c, fiber.StatusBadRequest, "username, password and mobile_number are required")
	}

	token, user, err := h.svc.Register(c.Context(), req.Username, req.Password, req.MobileNumber)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return utils.JSONError(c, fiber.StatusConflict, err.Error())
		}
		return utils.JSONError(c, fiber.StatusInternalServerError, "registration failed")
	}
	return c.JSON(fiber.Map{"token": token, "user": user})
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if req.Username == "" || req.Password == "" {
		return utils.JSONError(c, fiber.StatusBadRequest, "username and password are required")
	}

	token, user, err := h.svc.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return utils.JSONError(c, fiber.StatusUnauthorized, err.Error())
		}
		return utils.JSONError(c, fiber.StatusInternalServerError, "login failed")
	}
	return c.JSON(fiber.Map{"token": token, "user": user})
}
