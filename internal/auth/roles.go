package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// RequireRole ensures the principal has one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		profile := ProfileFromContext(c)
		if profile == nil {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[profile.Role]; !exists {
			return fiber.NewError(http.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

// RequireAgent ensures the principal works tickets (agent, supervisor or admin).
func RequireAgent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile := ProfileFromContext(c)
		if profile == nil {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if !profile.Role.IsAgent() {
			return fiber.NewError(http.StatusForbidden, "agent role required")
		}
		return c.Next()
	}
}

// RequireAssetManager allows admins and profiles carrying the manage-assets flag.
func RequireAssetManager() fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile := ProfileFromContext(c)
		if profile == nil {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if profile.Role != domain.RoleAdmin && !profile.CanManageAssets {
			return fiber.NewError(http.StatusForbidden, "asset management permission required")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures caller is authenticated regardless of role.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}
