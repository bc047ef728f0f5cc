// Package controllers holds the fiber handlers. Handlers stay thin: they
// decode the request, call into studyplan and map the outcome onto the
// structured success/failure payload (400 validation, 404 not-found,
// 200/201 success).
package controllers

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"studyquest/backend/mailer"
	"studyquest/backend/studyplan"
	"studyquest/backend/utils"
)

// param returns a path parameter with URL escaping undone, so subject
// names with spaces survive the round trip.
func param(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// respondError maps the studyplan failure classes onto HTTP statuses.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, studyplan.ErrValidation):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, studyplan.ErrNotFound):
		return utils.NotFound(c, err.Error())
	case errors.Is(err, mailer.ErrNotConfigured):
		return utils.BadRequest(c, err.Error())
	default:
		return utils.InternalServerError(c, err.Error())
	}
}
