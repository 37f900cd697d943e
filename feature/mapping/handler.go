package mapping

import (
	"errors"
	"net/url"

	"bom-merger/core/logger"
	"bom-merger/core/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for mapping profiles.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the mapping routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/mappings")
	group.Get("/", h.HandleList)
	group.Get("/:name", h.HandleGet)
	group.Put("/:name", h.HandleSave)
	group.Delete("/:name", h.HandleDelete)
}

// HandleList lists stored profiles.
// @Summary List Mapping Profiles
// @Description Returns every stored column-mapping profile.
// @Tags mappings
// @Produce json
// @Success 200 {array} ProfileResponse
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /mappings [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	profiles, err := h.service.List(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to list profiles", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	out := make([]ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, newResponse(p, true))
	}
	return c.JSON(out)
}

// HandleGet returns one profile.
// @Summary Get Mapping Profile
// @Description Returns a profile by name. "default" falls back to the configured mapping when not stored.
// @Tags mappings
// @Produce json
// @Param name path string true "Profile name"
// @Success 200 {object} ProfileResponse
// @Failure 404 {object} map[string]string "Not Found"
// @Router /mappings/{name} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	name := pathName(c)
	p, stored, err := h.service.Get(c.Context(), name)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to get profile", zap.String("profile", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(newResponse(p, stored))
}

// HandleSave creates or replaces a profile.
// @Summary Save Mapping Profile
// @Description Creates or replaces the named profile.
// @Tags mappings
// @Accept json
// @Produce json
// @Param name path string true "Profile name"
// @Param profile body ProfileRequest true "Column mapping"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} map[string]interface{} "Validation Error"
// @Router /mappings/{name} [put]
func (h *Handler) HandleSave(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	p, err := h.service.Save(c.Context(), pathName(c), req)
	if err != nil {
		var vErr *validation.Error
		switch {
		case errors.As(err, &vErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": vErr.Fields})
		case errors.Is(err, ErrInvalidName):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		logger.WithRayID(h.service.logger, c).Error("Failed to save profile", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(newResponse(*p, true))
}

// HandleDelete removes a profile.
// @Summary Delete Mapping Profile
// @Tags mappings
// @Param name path string true "Profile name"
// @Success 204
// @Failure 404 {object} map[string]string "Not Found"
// @Router /mappings/{name} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	err := h.service.Delete(c.Context(), pathName(c))
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func pathName(c *fiber.Ctx) string {
	name := c.Params("name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}
	return name
}
