package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/dto"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/service"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/utils"
)

// UserHandler handles account management endpoints.
type UserHandler struct {
	users  service.UserService
	auth   service.AuthService
	logger zerolog.Logger
}

// NewUserHandler constructs the handler.
func NewUserHandler(users service.UserService, auth service.AuthService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		auth:   auth,
		logger: logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register wires user management routes. Deletion and password reset are
// guarded by the admin RBAC handler passed by the router.
func (h *UserHandler) Register(router fiber.Router, adminOnly fiber.Handler) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Delete("/:id", adminOnly, h.delete)
	router.Put("/:id/reset-password", adminOnly, h.resetPassword)
}

func (h *UserHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}
	classID, err := parseQueryUint(c, "class_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid class_id")
	}

	result, err := h.users.List(c.Context(), dto.UserListRequest{
		Role:     c.Query("role"),
		ClassID:  classID,
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list users")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list users")
	}

	return utils.SendPage(c, "users retrieved", result.Items, result.Pagination)
}

func (h *UserHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	result, err := h.users.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load user")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load user")
	}

	return utils.SendSuccess(c, "user retrieved", result)
}

func (h *UserHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	if err := h.users.Delete(c.Context(), actorFromContext(c), id); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSelfDelete):
			return utils.SendError(c, fiber.StatusForbidden, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Uint("user_id", id).Msg("failed to delete user")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete user")
		}
	}

	return utils.SendSuccess(c, "user deleted", nil)
}

func (h *UserHandler) resetPassword(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	var payload dto.ResetPasswordRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(payload.NewPassword) < 6 {
		return utils.SendError(c, fiber.StatusBadRequest, "password must be at least 6 characters")
	}

	if _, err := h.users.Get(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load user")
	}

	if err := h.auth.ResetPassword(c.Context(), id, payload.NewPassword); err != nil {
		requestLogger(h.logger, c).Error().Err(err).Uint("user_id", id).Msg("failed to reset password")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to reset password")
	}

	return utils.SendSuccess(c, "password reset", nil)
}
