package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/utils"
)

// RequireRole ensures that the authenticated user holds one of the allowed
// roles. Roles are the plain strings the JWT middleware stores in the
// request locals, so anything else there counts as no role.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		normalized := strings.ToLower(strings.TrimSpace(role))
		if normalized != "" {
			allowed[normalized] = struct{}{}
		}
	}

	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		role = strings.ToLower(strings.TrimSpace(role))
		if _, ok := allowed[role]; !ok {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}
