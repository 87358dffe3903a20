package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/dto"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/service"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/utils"
)

// AuthHandler handles login, profile and password endpoints.
type AuthHandler struct {
	auth   service.AuthService
	logger zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(auth service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger.With().Str("component", "auth_handler").Logger(),
	}
}

// RegisterPublic wires the unauthenticated auth routes. The rate limiter is
// attached to the login route only so authenticated /auth traffic is never
// throttled by the credential-guessing budget.
func (h *AuthHandler) RegisterPublic(router fiber.Router, loginRateLimit fiber.Handler) {
	if loginRateLimit != nil {
		router.Post("/login", loginRateLimit, h.login)
		return
	}
	router.Post("/login", h.login)
}

// RegisterProtected wires the routes that need a valid session. Registration
// is additionally guarded by the admin RBAC handler passed by the router.
func (h *AuthHandler) RegisterProtected(router fiber.Router, adminOnly fiber.Handler) {
	router.Get("/profile", h.profile)
	router.Put("/change-password", h.changePassword)
	router.Post("/register", adminOnly, h.register)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.auth.Login(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid credentials")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "identifier and password are required")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("login failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "login failed")
		}
	}

	return utils.SendSuccess(c, "login successful", result)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var payload dto.RegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.auth.Register(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIdentifierTaken):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, service.ErrIdentifierRequired):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid registration payload")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("registration failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "registration failed")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "user registered", result)
}

func (h *AuthHandler) profile(c *fiber.Ctx) error {
	result, err := h.auth.Profile(c.Context(), userIDFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load profile")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load profile")
	}

	return utils.SendSuccess(c, "profile retrieved", fiber.Map{"user": result})
}

func (h *AuthHandler) changePassword(c *fiber.Ctx) error {
	var payload dto.ChangePasswordRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.auth.ChangePassword(c.Context(), userIDFromContext(c), payload); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return utils.SendError(c, fiber.StatusUnauthorized, "current password is incorrect")
		case errors.Is(err, service.ErrUserNotFound):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid password payload")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to change password")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to change password")
		}
	}

	return utils.SendSuccess(c, "password updated", nil)
}
