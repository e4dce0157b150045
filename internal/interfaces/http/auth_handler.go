package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/minierp-gateway/internal/application/dto"
	"github.com/jhoicas/minierp-gateway/internal/application/session"
)

// AuthHandler maneja login, logout y consulta de la sesión.
type AuthHandler struct {
	manager *session.Manager
}

// NewAuthHandler construye el handler.
func NewAuthHandler(m *session.Manager) *AuthHandler {
	return &AuthHandler{manager: m}
}

// Login godoc
// @Summary      Iniciar sesión contra el backend
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("INVALID_BODY", "cuerpo inválido"))
	}
	sess, err := h.manager.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.LoginResponse{Token: sess.Token, Usuario: sess.Usuario})
}

// Session godoc
// @Summary      Sesión vigente
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.LoginResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	sess, err := h.manager.Current()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.LoginResponse{Token: sess.Token, Usuario: sess.Usuario})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.manager.Logout(); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
