package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// AssetsHandler manages inventory endpoints.
type AssetsHandler struct {
	service *service.AssetService
}

// NewAssetsHandler constructs handler.
func NewAssetsHandler(assetService *service.AssetService) *AssetsHandler {
	return &AssetsHandler{service: assetService}
}

// CreateAsset POST /assets.
func (h *AssetsHandler) CreateAsset(c *fiber.Ctx) error {
	profile := auth.ProfileFromContext(c)
	if profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateAssetRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	asset, err := h.service.Create(c.Context(), profile, service.AssetCreateInput{
		Tag:        req.Tag,
		Type:       req.Type,
		Status:     req.Status,
		Specs:      req.Specs,
		LocationID: req.LocationID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.AssetFromDomain(asset)})
}

// UpdateAsset PATCH /assets/:id.
func (h *AssetsHandler) UpdateAsset(c *fiber.Ctx) error {
	profile := auth.ProfileFromContext(c)
	if profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateAssetRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	asset, err := h.service.Update(c.Context(), profile, c.Params("id"), service.AssetUpdateInput{
		Type:       req.Type,
		Status:     req.Status,
		Specs:      req.Specs,
		LocationID: req.LocationID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AssetFromDomain(asset)})
}

// AssignAsset POST /assets/:id/assign.
func (h *AssetsHandler) AssignAsset(c *fiber.Ctx) error {
	profile := auth.ProfileFromContext(c)
	if profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AssignAssetRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	asset, err := h.service.Assign(c.Context(), profile, c.Params("id"), req.ProfileID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AssetFromDomain(asset)})
}

// GetAsset GET /assets/:id.
func (h *AssetsHandler) GetAsset(c *fiber.Ctx) error {
	profile := auth.ProfileFromContext(c)
	if profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	asset, err := h.service.Get(c.Context(), profile, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AssetFromDomain(asset)})
}

// ListAssets GET /assets.
func (h *AssetsHandler) ListAssets(c *fiber.Ctx) error {
	profile := auth.ProfileFromContext(c)
	if profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	input := service.AssetListInput{}
	if t := c.Query("type"); t != "" {
		input.Type = &t
	}
	if s := c.Query("status"); s != "" {
		status := domain.AssetStatus(s)
		input.Status = &status
	}
	if p := c.Query("assigned_profile_id"); p != "" {
		input.AssignedProfileID = &p
	}
	input.Limit, input.Offset = parsePagination(c)

	assets, err := h.service.List(c.Context(), profile, input)
	if err != nil {
		return err
	}
	items := make([]dto.AssetResponse, 0, len(assets))
	for i := range assets {
		items = append(items, dto.AssetFromDomain(&assets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// QRLabel GET /assets/:id/label.png.
func (h *AssetsHandler) QRLabel(c *fiber.Ctx) error {
	profile := auth.ProfileFromContext(c)
	if profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	png, err := h.service.QRLabel(c.Context(), profile, c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
