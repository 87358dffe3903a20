package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/models"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/service"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/utils"
)

// DashboardHandler handles the per-role dashboard endpoints.
type DashboardHandler struct {
	dashboards service.DashboardService
	logger     zerolog.Logger
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(dashboards service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboards: dashboards,
		logger:     logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register wires dashboard routes, one per role.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/student", h.student)
	router.Get("/teacher", h.teacher)
	router.Get("/admin", h.admin)
}

func (h *DashboardHandler) student(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	if actor.Role != models.RoleStudent {
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	}

	result, err := h.dashboards.Student(c.Context(), actor)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build student dashboard")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build dashboard")
	}

	return utils.SendSuccess(c, "dashboard retrieved", result)
}

func (h *DashboardHandler) teacher(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	if actor.Role != models.RoleTeacher {
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	}

	result, err := h.dashboards.Teacher(c.Context(), actor)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build teacher dashboard")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build dashboard")
	}

	return utils.SendSuccess(c, "dashboard retrieved", result)
}

func (h *DashboardHandler) admin(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	if actor.Role != models.RoleAdmin {
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	}

	result, err := h.dashboards.Admin(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build admin dashboard")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build dashboard")
	}

	return utils.SendSuccess(c, "dashboard retrieved", result)
}
