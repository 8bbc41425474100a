package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"civicport/internal/domain/entity"
	"civicport/internal/domain/repository"
)

type RoleMiddleware struct {
	userRepo repository.UserRepository
}

func NewRoleMiddleware(userRepo repository.UserRepository) *RoleMiddleware {
	return &RoleMiddleware{
		userRepo: userRepo,
	}
}

// StaffOnly admits staff and admin accounts. It runs after Authenticate
// and stores the resolved role for downstream handlers.
func (m *RoleMiddleware) StaffOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(next, func(user *entity.User) bool {
		return user.IsStaff()
	}, "Staff privileges required")
}

func (m *RoleMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(next, func(user *entity.User) bool {
		return user.Role == entity.RoleAdmin
	}, "Admin privileges required")
}

func (m *RoleMiddleware) require(next echo.HandlerFunc, allowed func(*entity.User) bool, message string) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to verify privileges")
		}
		if !allowed(user) {
			return echo.NewHTTPError(http.StatusForbidden, message)
		}

		c.Set("role", user.Role)
		return next(c)
	}
}
