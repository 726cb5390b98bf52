package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/teacherpoli/backoffice/core"
)

// adminMiddleware lets through tokens whose email passes the admin predicate.
func adminMiddleware(admins core.AdminChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if admins.IsAdmin(claims.Email) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}
