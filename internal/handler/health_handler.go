package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/config"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/utils"
)

// HealthCheck reports service liveness.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "ok", fiber.Map{
			"app": cfg.AppName,
			"env": cfg.AppEnv,
		})
	}
}
