package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIKey            = errors.New("no API key configured, set ROBLOX_API_KEY or run 'rbxsync config set-key'")
	ErrNoUniverseID        = errors.New("universe ID is required, set ROBLOX_UNIVERSE_ID or pass --universe")
	ErrProjectFileNotFound = errors.New("project file not found")
)

// Validation errors.
var (
	ErrUniverseIDRequired = errors.New("universe ID is required")
	ErrPlaceFileNotFound  = errors.New("place file not found")
	ErrNothingToPublish   = errors.New("no places marked for publishing")
	ErrIconFileNotFound   = errors.New("icon file not found")
	ErrCreatedWithoutID   = errors.New("created resource has no ID")
	ErrOperationNoPath    = errors.New("operation response missing path")
	ErrOperationNoAssetID = errors.New("operation completed without an asset ID")
)
