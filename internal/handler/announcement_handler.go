package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/dto"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/service"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/utils"
)

// AnnouncementHandler handles announcement endpoints.
type AnnouncementHandler struct {
	announcements service.AnnouncementService
	logger        zerolog.Logger
}

// NewAnnouncementHandler constructs the handler.
func NewAnnouncementHandler(announcements service.AnnouncementService, logger zerolog.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcements: announcements,
		logger:        logger.With().Str("component", "announcement_handler").Logger(),
	}
}

// Register wires announcement routes. Creation and deletion are guarded by
// the staff RBAC handler passed by the router.
func (h *AnnouncementHandler) Register(router fiber.Router, staffOnly fiber.Handler) {
	router.Get("", h.list)
	router.Post("", staffOnly, h.create)
	router.Delete("/:id", staffOnly, h.delete)
}

func (h *AnnouncementHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	result, err := h.announcements.List(c.Context(), actorFromContext(c), page, pageSize)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list announcements")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list announcements")
	}

	if result.CacheHit {
		c.Set("X-Cache-Hit", "true")
	} else {
		c.Set("X-Cache-Hit", "false")
	}

	return utils.SendPage(c, "announcements retrieved", result.Items, result.Pagination)
}

func (h *AnnouncementHandler) create(c *fiber.Ctx) error {
	var payload dto.AnnouncementCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.announcements.Create(c.Context(), actorFromContext(c), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAnnouncementTargetMissing):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid announcement payload")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to create announcement")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create announcement")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "announcement published", result)
}

func (h *AnnouncementHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid announcement id")
	}

	if err := h.announcements.Delete(c.Context(), actorFromContext(c), id); err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("announcement_id", id).Msg("failed to delete announcement")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete announcement")
	}

	return utils.SendSuccess(c, "announcement deleted", nil)
}
