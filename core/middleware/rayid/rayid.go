package rayid

import (
	"bom-merger/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the request and response header carrying the RayID.
const HeaderName = "X-Ray-ID"

// New returns a middleware that assigns a RayID to every request.
// A well-formed incoming header is reused so that callers can correlate retries.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if _, err := uuid.Parse(rid); err != nil {
			rid = uuid.NewString()
		}
		c.Locals(logger.RayIDKey, rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}

// FromCtx returns the RayID assigned to the request, or "".
func FromCtx(c *fiber.Ctx) string {
	rid, _ := c.Locals(logger.RayIDKey).(string)
	return rid
}
