package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/astroconsulta/platform-api/internal/core/domain"
	"github.com/astroconsulta/platform-api/internal/core/ports"
)

// resolveActor loads the full acting user from the claims injected by the
// Auth middleware. The services need the persisted user, not just the token
// claims, because tenancy checks run against consultant identity and a token
// may outlive a deactivation.
func resolveActor(c echo.Context, users ports.UserRepository) (*domain.User, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	actor, err := users.FindByID(c.Request().Context(), userID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
		}
		return nil, err
	}
	if !actor.IsActive {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "account is deactivated")
	}
	return actor, nil
}
