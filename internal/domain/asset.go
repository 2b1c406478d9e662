package domain

import "time"

// AssetStatus enumerates inventory states.
type AssetStatus string

const (
	AssetStatusInUse     AssetStatus = "IN_USE"
	AssetStatusInStorage AssetStatus = "IN_STORAGE"
	AssetStatusInRepair  AssetStatus = "IN_REPAIR"
	AssetStatusRetired   AssetStatus = "RETIRED"
)

// Asset is an inventory record, optionally assigned to a profile and a location.
type Asset struct {
	ID                string
	Tag               string
	Type              string
	Status            AssetStatus
	Specs             map[string]any
	AssignedProfileID *string
	LocationID        *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
