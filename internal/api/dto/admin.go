package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateLocationRequest payload.
type CreateLocationRequest struct {
	Code         string `json:"code" validate:"required,max=16"`
	Name         string `json:"name" validate:"required,max=120"`
	Address      string `json:"address" validate:"max=250"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone string `json:"contact_phone" validate:"max=32"`
}

// UpdateLocationRequest payload. Omitted fields are left unchanged.
type UpdateLocationRequest struct {
	Code         string `json:"code" validate:"omitempty,max=16"`
	Name         string `json:"name" validate:"omitempty,max=120"`
	Address      string `json:"address" validate:"max=250"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone string `json:"contact_phone" validate:"max=32"`
	Active       *bool  `json:"active"`
}

// LocationResponse representation.
type LocationResponse struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Address      string    `json:"address,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateProfileRequest payload for admin provisioning.
type CreateProfileRequest struct {
	Name              string      `json:"name" validate:"required,max=120"`
	Email             string      `json:"email" validate:"required,email"`
	Password          string      `json:"password" validate:"required,min=8"`
	Role              domain.Role `json:"role" validate:"required,oneof=requester agent_l1 agent_l2 supervisor auditor admin"`
	LocationID        *string     `json:"location_id" validate:"omitempty,uuid4"`
	CanViewAllReports bool        `json:"can_view_all_reports"`
	CanManageAssets   bool        `json:"can_manage_assets"`
}

// UpdateProfileRequest payload. Omitted fields are left unchanged.
type UpdateProfileRequest struct {
	Name              *string      `json:"name" validate:"omitempty,max=120"`
	Role              *domain.Role `json:"role" validate:"omitempty,oneof=requester agent_l1 agent_l2 supervisor auditor admin"`
	LocationID        *string      `json:"location_id" validate:"omitempty,uuid4"`
	CanViewAllReports *bool        `json:"can_view_all_reports"`
	CanManageAssets   *bool        `json:"can_manage_assets"`
	Active            *bool        `json:"active"`
}

// AssignLocationsRequest payload replacing a profile's location assignments.
type AssignLocationsRequest struct {
	LocationIDs []string `json:"location_ids" validate:"dive,uuid4"`
}

// ProfileResponse representation. Password hashes never leave the service.
type ProfileResponse struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Email             string      `json:"email"`
	Role              domain.Role `json:"role"`
	LocationID        *string     `json:"location_id,omitempty"`
	CanViewAllReports bool        `json:"can_view_all_reports"`
	CanManageAssets   bool        `json:"can_manage_assets"`
	Active            bool        `json:"active"`
	CreatedAt         time.Time   `json:"created_at"`
}

// LocationFromDomain maps a location.
func LocationFromDomain(l *domain.Location) LocationResponse {
	return LocationResponse{
		ID:           l.ID,
		Code:         l.Code,
		Name:         l.Name,
		Address:      l.Address,
		ContactEmail: l.ContactEmail,
		ContactPhone: l.ContactPhone,
		Active:       l.Active,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

// ProfileFromDomain maps a profile.
func ProfileFromDomain(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:                p.ID,
		Name:              p.Name,
		Email:             p.Email,
		Role:              p.Role,
		LocationID:        p.LocationID,
		CanViewAllReports: p.CanViewAllReports,
		CanManageAssets:   p.CanManageAssets,
		Active:            p.Active,
		CreatedAt:         p.CreatedAt,
	}
}
