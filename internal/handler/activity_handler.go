package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/dto"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/service"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/utils"
)

// ActivityHandler handles activity list, submission, verification and
// deletion endpoints.
type ActivityHandler struct {
	activities   service.ActivityService
	verification service.VerificationService
	logger       zerolog.Logger
}

// NewActivityHandler constructs the handler.
func NewActivityHandler(activities service.ActivityService, verification service.VerificationService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		activities:   activities,
		verification: verification,
		logger:       logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register wires activity routes. Verification routes additionally pass the
// reviewer RBAC guard attached by the router.
func (h *ActivityHandler) Register(router fiber.Router, reviewerOnly fiber.Handler) {
	router.Get("", h.list)
	router.Post("", h.submit)
	router.Get("/pending", reviewerOnly, h.listPending)
	router.Put("/:id/verify", reviewerOnly, h.verify)
	router.Delete("/:id", h.delete)
}

func (h *ActivityHandler) list(c *fiber.Ctx) error {
	req, err := parseActivityListRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.activities.List(c.Context(), actorFromContext(c), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list activities")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list activities")
	}

	return utils.SendPage(c, "activities retrieved", result.Items, result.Pagination)
}

func (h *ActivityHandler) listPending(c *fiber.Ctx) error {
	req, err := parseActivityListRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.activities.ListPending(c.Context(), actorFromContext(c), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list pending activities")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list pending activities")
	}

	return utils.SendPage(c, "pending activities retrieved", result.Items, result.Pagination)
}

func (h *ActivityHandler) submit(c *fiber.Ctx) error {
	var payload dto.ActivitySubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.activities.Submit(c.Context(), actorFromContext(c), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubmitForbidden):
			return utils.SendError(c, fiber.StatusForbidden, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid activity payload")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to submit activity")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to submit activity")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "activity submitted", result)
}

func (h *ActivityHandler) verify(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity id")
	}

	var payload dto.VerifyRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.verification.Verify(c.Context(), actorFromContext(c), id, payload.Status, payload.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVerifyForbidden):
			return utils.SendError(c, fiber.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrInvalidDecision):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrActivityNotFound):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidTransition):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Uint("activity_id", id).Msg("failed to verify activity")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to verify activity")
		}
	}

	return utils.SendSuccess(c, "activity reviewed", result)
}

func (h *ActivityHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity id")
	}

	if err := h.verification.Delete(c.Context(), actorFromContext(c), id); err != nil {
		switch {
		case errors.Is(err, service.ErrDeleteForbidden):
			return utils.SendError(c, fiber.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrActivityNotFound):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Uint("activity_id", id).Msg("failed to delete activity")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete activity")
		}
	}

	return utils.SendSuccess(c, "activity deleted", nil)
}

func parseActivityListRequest(c *fiber.Ctx) (dto.ActivityListRequest, error) {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return dto.ActivityListRequest{}, errors.New("invalid page")
	}
	pageSize, err := parseQueryInt(c, "limit")
	if err != nil {
		return dto.ActivityListRequest{}, errors.New("invalid limit")
	}
	classID, err := parseQueryUint(c, "class_id")
	if err != nil {
		return dto.ActivityListRequest{}, errors.New("invalid class_id")
	}
	studentID, err := parseQueryUint(c, "student_id")
	if err != nil {
		return dto.ActivityListRequest{}, errors.New("invalid student_id")
	}

	return dto.ActivityListRequest{
		ClassID:   classID,
		StudentID: studentID,
		Status:    c.Query("status"),
		Search:    c.Query("search"),
		Page:      page,
		PageSize:  pageSize,
	}, nil
}
