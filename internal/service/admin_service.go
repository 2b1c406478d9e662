package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// AdminService covers location and profile administration. Routes restrict it
// to administrators.
type AdminService struct {
	locations  repository.LocationRepository
	profiles   repository.ProfileRepository
	audit      *AuditRecorder
	bcryptCost int
}

// AdminDependencies bundles collaborators for the admin service.
type AdminDependencies struct {
	LocationRepo repository.LocationRepository
	ProfileRepo  repository.ProfileRepository
	Audit        *AuditRecorder
	BcryptCost   int
}

// LocationInput describes location create/update payload.
type LocationInput struct {
	Code         string
	Name         string
	Address      string
	ContactEmail string
	ContactPhone string
	Active       *bool
}

// ProfileCreateInput describes staff provisioning payload.
type ProfileCreateInput struct {
	Name              string
	Email             string
	Password          string
	Role              domain.Role
	LocationID        *string
	CanViewAllReports bool
	CanManageAssets   bool
}

// ProfileUpdateInput carries mutable profile fields. Nil pointers leave the
// current value untouched.
type ProfileUpdateInput struct {
	Name              *string
	Role              *domain.Role
	LocationID        *string
	CanViewAllReports *bool
	CanManageAssets   *bool
	Active            *bool
}

// NewAdminService constructs the service.
func NewAdminService(deps AdminDependencies) *AdminService {
	cost := deps.BcryptCost
	if cost < 10 {
		cost = 12
	}
	return &AdminService{
		locations:  deps.LocationRepo,
		profiles:   deps.ProfileRepo,
		audit:      deps.Audit,
		bcryptCost: cost,
	}
}

var validRoles = map[domain.Role]bool{
	domain.RoleRequester:  true,
	domain.RoleAgentL1:    true,
	domain.RoleAgentL2:    true,
	domain.RoleSupervisor: true,
	domain.RoleAuditor:    true,
	domain.RoleAdmin:      true,
}

// CreateLocation registers a new site. Codes are unique.
func (s *AdminService) CreateLocation(ctx context.Context, actor *domain.Profile, input LocationInput) (*domain.Location, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" || strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("location code and name are required", nil)
	}
	if existing, err := s.locations.GetByCode(ctx, code); err == nil && existing != nil {
		return nil, apperrors.NewConflict("location code already in use", map[string]any{"code": code})
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}

	location := &domain.Location{
		Code:         code,
		Name:         strings.TrimSpace(input.Name),
		Address:      strings.TrimSpace(input.Address),
		ContactEmail: strings.TrimSpace(input.ContactEmail),
		ContactPhone: strings.TrimSpace(input.ContactPhone),
		Active:       true,
	}
	if input.Active != nil {
		location.Active = *input.Active
	}
	if err := s.locations.Create(ctx, location); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "location", location.ID, "created", &actor.ID, map[string]any{
		"code": location.Code,
	})
	return location, nil
}

// UpdateLocation applies changes to a site. Deactivating a location hides it
// from pickers but existing tickets keep pointing at it.
func (s *AdminService) UpdateLocation(ctx context.Context, actor *domain.Profile, locationID string, input LocationInput) (*domain.Location, error) {
	location, err := s.locations.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}

	if code := strings.ToUpper(strings.TrimSpace(input.Code)); code != "" && code != location.Code {
		if existing, err := s.locations.GetByCode(ctx, code); err == nil && existing != nil {
			return nil, apperrors.NewConflict("location code already in use", map[string]any{"code": code})
		} else if err != nil && err != pgx.ErrNoRows {
			return nil, err
		}
		location.Code = code
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		location.Name = name
	}
	if input.Address != "" {
		location.Address = strings.TrimSpace(input.Address)
	}
	if input.ContactEmail != "" {
		location.ContactEmail = strings.TrimSpace(input.ContactEmail)
	}
	if input.ContactPhone != "" {
		location.ContactPhone = strings.TrimSpace(input.ContactPhone)
	}
	if input.Active != nil {
		location.Active = *input.Active
	}
	if err := s.locations.Update(ctx, location); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "location", location.ID, "updated", &actor.ID, map[string]any{
		"code":   location.Code,
		"active": location.Active,
	})
	return location, nil
}

// ListLocations returns all sites, optionally including deactivated ones.
func (s *AdminService) ListLocations(ctx context.Context, includeInactive bool) ([]domain.Location, error) {
	return s.locations.List(ctx, includeInactive)
}

// CreateProfile provisions a staff or requester account with an explicit role.
func (s *AdminService) CreateProfile(ctx context.Context, actor *domain.Profile, input ProfileCreateInput) (*domain.Profile, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, apperrors.NewValidationError("email is required", nil)
	}
	if len(input.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	if !validRoles[input.Role] {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": input.Role})
	}
	if existing, err := s.profiles.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	profile := &domain.Profile{
		Name:              strings.TrimSpace(input.Name),
		Email:             email,
		PasswordHash:      hash,
		Role:              input.Role,
		LocationID:        input.LocationID,
		CanViewAllReports: input.CanViewAllReports,
		CanManageAssets:   input.CanManageAssets,
		Active:            true,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "profile", profile.ID, "created", &actor.ID, map[string]any{
		"role":  profile.Role,
		"email": profile.Email,
	})
	return profile, nil
}

// UpdateProfile applies partial changes to an account, including role and
// report/asset flags. Admins cannot deactivate themselves.
func (s *AdminService) UpdateProfile(ctx context.Context, actor *domain.Profile, profileID string, input ProfileUpdateInput) (*domain.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if input.Name != nil {
		profile.Name = strings.TrimSpace(*input.Name)
		changes["name"] = profile.Name
	}
	if input.Role != nil {
		if !validRoles[*input.Role] {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": *input.Role})
		}
		profile.Role = *input.Role
		changes["role"] = profile.Role
	}
	if input.LocationID != nil {
		profile.LocationID = input.LocationID
		changes["location_id"] = *input.LocationID
	}
	if input.CanViewAllReports != nil {
		profile.CanViewAllReports = *input.CanViewAllReports
		changes["can_view_all_reports"] = profile.CanViewAllReports
	}
	if input.CanManageAssets != nil {
		profile.CanManageAssets = *input.CanManageAssets
		changes["can_manage_assets"] = profile.CanManageAssets
	}
	if input.Active != nil {
		if profile.ID == actor.ID && !*input.Active {
			return nil, apperrors.NewConflict("administrators cannot deactivate their own account", nil)
		}
		profile.Active = *input.Active
		changes["active"] = profile.Active
	}
	if len(changes) == 0 {
		return profile, nil
	}
	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "profile", profile.ID, "updated", &actor.ID, changes)
	return profile, nil
}

// ListProfiles pages through accounts.
func (s *AdminService) ListProfiles(ctx context.Context, limit, offset int) ([]domain.Profile, error) {
	return s.profiles.List(ctx, limit, offset)
}

// AssignLocations replaces a profile's location assignments. Used for
// supervisors and agents covering more than their primary site.
func (s *AdminService) AssignLocations(ctx context.Context, actor *domain.Profile, profileID string, locationIDs []string) error {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return err
	}
	for _, id := range locationIDs {
		if _, err := s.locations.GetByID(ctx, id); err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewValidationError("unknown location", map[string]any{"location_id": id})
			}
			return err
		}
	}
	if err := s.profiles.ReplaceLocations(ctx, profile.ID, locationIDs); err != nil {
		return err
	}

	s.audit.Record(ctx, "profile", profile.ID, "locations_assigned", &actor.ID, map[string]any{
		"location_ids": locationIDs,
	})
	return nil
}
