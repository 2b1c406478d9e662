package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// AdminHandler manages location and profile administration endpoints.
type AdminHandler struct {
	service *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{service: adminService}
}

// CreateLocation POST /admin/locations.
func (h *AdminHandler) CreateLocation(c *fiber.Ctx) error {
	profile := auth.ProfileFromContext(c)
	if profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateLocationRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	location, err := h.service.CreateLocation(c.Context(), profile, service.LocationInput{
		Code:         req.Code,
		Name:         req.Name,
		Address:      req.Address,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.LocationFromDomain(location)})
}

// UpdateLocation PATCH /admin/locations/:id.
func (h *AdminHandler) UpdateLocation(c *fiber.Ctx) error {
	profile := auth.ProfileFromContext(c)
	if profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateLocationRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	location, err := h.service.UpdateLocation(c.Context(), profile, c.Params("id"), service.LocationInput{
		Code:         req.Code,
		Name:         req.Name,
		Address:      req.Address,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Active:       req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LocationFromDomain(location)})
}

// ListLocations GET /admin/locations.
func (h *AdminHandler) ListLocations(c *fiber.Ctx) error {
	locations, err := h.service.ListLocations(c.Context(), c.QueryBool("include_inactive", false))
	if err != nil {
		return err
	}
	items := make([]dto.LocationResponse, 0, len(locations))
	for i := range locations {
		items = append(items, dto.LocationFromDomain(&locations[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateProfile POST /admin/profiles.
func (h *AdminHandler) CreateProfile(c *fiber.Ctx) error {
	profile := auth.ProfileFromContext(c)
	if profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	created, err := h.service.CreateProfile(c.Context(), profile, service.ProfileCreateInput{
		Name:              req.Name,
		Email:             req.Email,
		Password:          req.Password,
		Role:              req.Role,
		LocationID:        req.LocationID,
		CanViewAllReports: req.CanViewAllReports,
		CanManageAssets:   req.CanManageAssets,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.ProfileFromDomain(created)})
}

// UpdateProfile PATCH /admin/profiles/:id.
func (h *AdminHandler) UpdateProfile(c *fiber.Ctx) error {
	profile := auth.ProfileFromContext(c)
	if profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	updated, err := h.service.UpdateProfile(c.Context(), profile, c.Params("id"), service.ProfileUpdateInput{
		Name:              req.Name,
		Role:              req.Role,
		LocationID:        req.LocationID,
		CanViewAllReports: req.CanViewAllReports,
		CanManageAssets:   req.CanManageAssets,
		Active:            req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ProfileFromDomain(updated)})
}

// ListProfiles GET /admin/profiles.
func (h *AdminHandler) ListProfiles(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	profiles, err := h.service.ListProfiles(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		items = append(items, dto.ProfileFromDomain(&profiles[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// AssignLocations PUT /admin/profiles/:id/locations.
func (h *AdminHandler) AssignLocations(c *fiber.Ctx) error {
	profile := auth.ProfileFromContext(c)
	if profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AssignLocationsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.service.AssignLocations(c.Context(), profile, c.Params("id"), req.LocationIDs); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "updated"}})
}
