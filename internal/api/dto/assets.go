package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateAssetRequest payload.
type CreateAssetRequest struct {
	Tag        string             `json:"tag" validate:"required,max=64"`
	Type       string             `json:"type" validate:"required,max=64"`
	Status     domain.AssetStatus `json:"status" validate:"omitempty,oneof=IN_USE IN_STORAGE IN_REPAIR RETIRED"`
	Specs      map[string]any     `json:"specs"`
	LocationID *string            `json:"location_id" validate:"omitempty,uuid4"`
}

// UpdateAssetRequest payload. Omitted fields are left unchanged.
type UpdateAssetRequest struct {
	Type       *string             `json:"type" validate:"omitempty,max=64"`
	Status     *domain.AssetStatus `json:"status" validate:"omitempty,oneof=IN_USE IN_STORAGE IN_REPAIR RETIRED"`
	Specs      map[string]any      `json:"specs"`
	LocationID *string             `json:"location_id" validate:"omitempty,uuid4"`
}

// AssignAssetRequest payload. A null profile_id returns the asset to storage.
type AssignAssetRequest struct {
	ProfileID *string `json:"profile_id" validate:"omitempty,uuid4"`
}

// AssetResponse representation.
type AssetResponse struct {
	ID                string             `json:"id"`
	Tag               string             `json:"tag"`
	Type              string             `json:"type"`
	Status            domain.AssetStatus `json:"status"`
	Specs             map[string]any     `json:"specs,omitempty"`
	AssignedProfileID *string            `json:"assigned_profile_id,omitempty"`
	LocationID        *string            `json:"location_id,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// AssetFromDomain maps an asset.
func AssetFromDomain(a *domain.Asset) AssetResponse {
	return AssetResponse{
		ID:                a.ID,
		Tag:               a.Tag,
		Type:              a.Type,
		Status:            a.Status,
		Specs:             a.Specs,
		AssignedProfileID: a.AssignedProfileID,
		LocationID:        a.LocationID,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}
