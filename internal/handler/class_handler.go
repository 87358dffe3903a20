package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/dto"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/repository"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/service"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/utils"
)

// ClassHandler handles class management endpoints.
type ClassHandler struct {
	classes service.ClassService
	logger  zerolog.Logger
}

// NewClassHandler constructs the handler.
func NewClassHandler(classes service.ClassService, logger zerolog.Logger) *ClassHandler {
	return &ClassHandler{
		classes: classes,
		logger:  logger.With().Str("component", "class_handler").Logger(),
	}
}

// Register wires class routes. Creation and deletion are guarded by the
// admin RBAC handler passed by the router.
func (h *ClassHandler) Register(router fiber.Router, adminOnly fiber.Handler) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", adminOnly, h.create)
	router.Delete("/:id", adminOnly, h.delete)
}

func (h *ClassHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}
	teacherID, err := parseQueryUint(c, "teacher_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid teacher_id")
	}

	result, err := h.classes.List(c.Context(), repository.ClassFilter{
		SchoolYear: c.Query("school_year"),
		TeacherID:  teacherID,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list classes")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list classes")
	}

	return utils.SendPage(c, "classes retrieved", result.Items, result.Pagination)
}

func (h *ClassHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid class id")
	}

	result, err := h.classes.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load class")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load class")
	}

	return utils.SendSuccess(c, "class retrieved", result)
}

func (h *ClassHandler) create(c *fiber.Ctx) error {
	var payload dto.ClassCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.classes.Create(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid class payload")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create class")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create class")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "class created", result)
}

func (h *ClassHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid class id")
	}

	if err := h.classes.Delete(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrClassNotFound):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrClassNotEmpty):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Uint("class_id", id).Msg("failed to delete class")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete class")
		}
	}

	return utils.SendSuccess(c, "class deleted", nil)
}
