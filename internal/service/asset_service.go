package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/skip2/go-qrcode"

	"github.com/spec-kit/helpdesk-service/internal/access"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// AssetService manages the hardware inventory. Route middleware restricts the
// surface to admins and profiles with the asset-manager flag; the service adds
// location scoping on top.
type AssetService struct {
	assets   repository.AssetRepository
	profiles repository.ProfileRepository
	audit    *AuditRecorder
}

// AssetDependencies bundles collaborators for the asset service.
type AssetDependencies struct {
	AssetRepo   repository.AssetRepository
	ProfileRepo repository.ProfileRepository
	Audit       *AuditRecorder
}

// AssetCreateInput describes asset registration payload.
type AssetCreateInput struct {
	Tag        string
	Type       string
	Status     domain.AssetStatus
	Specs      map[string]any
	LocationID *string
}

// AssetUpdateInput carries mutable asset fields. Nil pointers leave the
// current value untouched.
type AssetUpdateInput struct {
	Type       *string
	Status     *domain.AssetStatus
	Specs      map[string]any
	LocationID *string
}

// AssetListInput describes listing filters.
type AssetListInput struct {
	Type              *string
	Status            *domain.AssetStatus
	AssignedProfileID *string
	Limit             int
	Offset            int
}

// NewAssetService constructs the service.
func NewAssetService(deps AssetDependencies) *AssetService {
	return &AssetService{
		assets:   deps.AssetRepo,
		profiles: deps.ProfileRepo,
		audit:    deps.Audit,
	}
}

var validAssetStatuses = map[domain.AssetStatus]bool{
	domain.AssetStatusInUse:     true,
	domain.AssetStatusInStorage: true,
	domain.AssetStatusInRepair:  true,
	domain.AssetStatusRetired:   true,
}

// Create registers a new asset. Tags are unique across the fleet.
func (s *AssetService) Create(ctx context.Context, actor *domain.Profile, input AssetCreateInput) (*domain.Asset, error) {
	tag := strings.TrimSpace(input.Tag)
	if tag == "" {
		return nil, apperrors.NewValidationError("asset tag is required", nil)
	}
	status := input.Status
	if status == "" {
		status = domain.AssetStatusInStorage
	}
	if !validAssetStatuses[status] {
		return nil, apperrors.NewValidationError("invalid asset status", map[string]any{"status": status})
	}
	if existing, err := s.assets.GetByTag(ctx, tag); err == nil && existing != nil {
		return nil, apperrors.NewConflict("asset tag already registered", map[string]any{"tag": tag})
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}

	asset := &domain.Asset{
		Tag:        tag,
		Type:       strings.TrimSpace(input.Type),
		Status:     status,
		Specs:      input.Specs,
		LocationID: input.LocationID,
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "asset", asset.ID, "created", &actor.ID, map[string]any{
		"tag":  asset.Tag,
		"type": asset.Type,
	})
	return asset, nil
}

// Update applies partial changes to an asset.
func (s *AssetService) Update(ctx context.Context, actor *domain.Profile, assetID string, input AssetUpdateInput) (*domain.Asset, error) {
	asset, err := s.getScopedAsset(ctx, actor, assetID)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if input.Type != nil {
		asset.Type = strings.TrimSpace(*input.Type)
		changes["type"] = asset.Type
	}
	if input.Status != nil {
		if !validAssetStatuses[*input.Status] {
			return nil, apperrors.NewValidationError("invalid asset status", map[string]any{"status": *input.Status})
		}
		asset.Status = *input.Status
		changes["status"] = asset.Status
	}
	if input.Specs != nil {
		asset.Specs = input.Specs
		changes["specs"] = "replaced"
	}
	if input.LocationID != nil {
		asset.LocationID = input.LocationID
		changes["location_id"] = *input.LocationID
	}
	if len(changes) == 0 {
		return asset, nil
	}
	if err := s.assets.Update(ctx, asset); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "asset", asset.ID, "updated", &actor.ID, changes)
	return asset, nil
}

// Assign hands an asset to a profile, or returns it to storage when
// profileID is nil. Retired assets cannot be assigned.
func (s *AssetService) Assign(ctx context.Context, actor *domain.Profile, assetID string, profileID *string) (*domain.Asset, error) {
	asset, err := s.getScopedAsset(ctx, actor, assetID)
	if err != nil {
		return nil, err
	}

	if profileID == nil {
		asset.AssignedProfileID = nil
		if asset.Status == domain.AssetStatusInUse {
			asset.Status = domain.AssetStatusInStorage
		}
	} else {
		if asset.Status == domain.AssetStatusRetired {
			return nil, apperrors.NewConflict("retired assets cannot be assigned", nil)
		}
		holder, err := s.profiles.GetByID(ctx, *profileID)
		if err != nil {
			return nil, err
		}
		if !holder.Active {
			return nil, apperrors.NewValidationError("cannot assign an asset to an inactive profile", nil)
		}
		asset.AssignedProfileID = &holder.ID
		asset.Status = domain.AssetStatusInUse
	}
	if err := s.assets.Update(ctx, asset); err != nil {
		return nil, err
	}

	meta := map[string]any{"tag": asset.Tag}
	if profileID != nil {
		meta["assigned_profile_id"] = *profileID
	}
	s.audit.Record(ctx, "asset", asset.ID, "assignment_changed", &actor.ID, meta)
	return asset, nil
}

// Get fetches a single asset within the actor's scope.
func (s *AssetService) Get(ctx context.Context, actor *domain.Profile, assetID string) (*domain.Asset, error) {
	return s.getScopedAsset(ctx, actor, assetID)
}

// List returns assets visible to the actor.
func (s *AssetService) List(ctx context.Context, actor *domain.Profile, input AssetListInput) ([]domain.Asset, error) {
	scope, err := s.assetScope(ctx, actor)
	if err != nil {
		return nil, err
	}
	filter := repository.AssetFilter{
		Type:              input.Type,
		Status:            input.Status,
		AssignedProfileID: input.AssignedProfileID,
		Limit:             input.Limit,
		Offset:            input.Offset,
	}
	if !scope.FullAccess {
		filter.LocationScoped = true
		filter.LocationIDs = scope.LocationIDs
	}
	return s.assets.ListWithFilter(ctx, filter)
}

// QRLabel renders a printable PNG QR code carrying the asset tag for
// physical labeling.
func (s *AssetService) QRLabel(ctx context.Context, actor *domain.Profile, assetID string) ([]byte, error) {
	asset, err := s.getScopedAsset(ctx, actor, assetID)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(asset.Tag, qrcode.Medium, 256)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return png, nil
}

func (s *AssetService) assetScope(ctx context.Context, actor *domain.Profile) (access.Scope, error) {
	if actor.Role == domain.RoleAdmin {
		return access.Scope{FullAccess: true}, nil
	}
	assigned, err := s.profiles.ListLocationIDs(ctx, actor.ID)
	if err != nil {
		return access.Scope{}, err
	}
	ids := assigned
	if actor.LocationID != nil && *actor.LocationID != "" {
		ids = append(ids, *actor.LocationID)
	}
	return access.Scope{Filter: true, LocationIDs: ids}, nil
}

func (s *AssetService) getScopedAsset(ctx context.Context, actor *domain.Profile, assetID string) (*domain.Asset, error) {
	asset, err := s.assets.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	scope, err := s.assetScope(ctx, actor)
	if err != nil {
		return nil, err
	}
	if scope.FullAccess {
		return asset, nil
	}
	if asset.LocationID != nil {
		for _, id := range scope.LocationIDs {
			if id == *asset.LocationID {
				return asset, nil
			}
		}
	}
	return nil, apperrors.NewNotFound("asset", nil)
}
