package rbxcloud

import (
	"encoding/json"
	"time"
)

// Untyped is a JSON value whose schema is not known to this package, such as
// a data store entry payload. It keeps the boundary between schema-known and
// schema-unknown data explicit instead of decoding into loose maps.
type Untyped = json.RawMessage

// ListResponse represents a single page of a list response.
//
// The Open Cloud and legacy APIs disagree on the envelope field names
// (datastores, keys, gamePasses, developerProducts, data) and on the cursor
// field (nextPageCursor, nextPageToken); decoding collapses all variants into
// Data and NextPageCursor.
type ListResponse[T any] struct {
	Data           []T    `json:"data"`
	NextPageCursor string `json:"nextPageCursor,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *ListResponse[T]) UnmarshalJSON(data []byte) error {
	var raw struct {
		Data              []T    `json:"data"`
		DataStores        []T    `json:"datastores"`
		Keys              []T    `json:"keys"`
		GamePasses        []T    `json:"gamePasses"`
		DeveloperProducts []T    `json:"developerProducts"`
		NextPageCursor    string `json:"nextPageCursor"`
		NextPageToken     string `json:"nextPageToken"`
	}

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}

	switch {
	case raw.Data != nil:
		l.Data = raw.Data
	case raw.DataStores != nil:
		l.Data = raw.DataStores
	case raw.Keys != nil:
		l.Data = raw.Keys
	case raw.GamePasses != nil:
		l.Data = raw.GamePasses
	default:
		l.Data = raw.DeveloperProducts
	}

	l.NextPageCursor = raw.NextPageCursor
	if l.NextPageCursor == "" {
		l.NextPageCursor = raw.NextPageToken
	}

	return nil
}

// DataStore represents a standard data store within a universe.
type DataStore struct {
	Name        string     `json:"name"                  yaml:"name"`
	CreatedTime *time.Time `json:"createdTime,omitempty" yaml:"created_time,omitempty"`
}

// EntryKey represents a key within a data store.
type EntryKey struct {
	Key string `json:"key" yaml:"key"`
}

// EntryVersion represents the version record returned when writing an entry.
type EntryVersion struct {
	Version     string     `json:"version"               yaml:"version"`
	CreatedTime *time.Time `json:"createdTime,omitempty" yaml:"created_time,omitempty"`
	Deleted     bool       `json:"deleted,omitempty"     yaml:"deleted,omitempty"`
}

// GamePass represents a universe game pass.
type GamePass struct {
	ID          int64  `json:"id"                    yaml:"id"`
	Name        string `json:"name"                  yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Price       *int64 `json:"price,omitempty"       yaml:"price,omitempty"`
	IsForSale   bool   `json:"isForSale,omitempty"   yaml:"is_for_sale,omitempty"`
	IconAssetID int64  `json:"iconAssetId,omitempty" yaml:"icon_asset_id,omitempty"`
}

// GamePassCreateRequest is the form payload for creating a game pass.
type GamePassCreateRequest struct {
	Name        string
	Description string
	Price       int64
	IconAssetID int64
}

// GamePassUpdateRequest is the partial form payload for updating a game pass.
// Nil fields are left untouched on the remote.
type GamePassUpdateRequest struct {
	Name        *string
	Description *string
	Price       *int64
	IconAssetID *int64
}

// DeveloperProduct represents a universe developer product.
type DeveloperProduct struct {
	ID          int64  `json:"id"                    yaml:"id"`
	Name        string `json:"name"                  yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Price       *int64 `json:"price,omitempty"       yaml:"price,omitempty"`
}

// DeveloperProductCreateRequest is the form payload for creating a developer product.
type DeveloperProductCreateRequest struct {
	Name        string
	Description string
	Price       int64
	IconAssetID int64
}

// DeveloperProductUpdateRequest is the partial form payload for updating a
// developer product. Nil fields are left untouched on the remote.
type DeveloperProductUpdateRequest struct {
	Name        *string
	Description *string
	Price       *int64
	IconAssetID *int64
}

// Badge represents a universe badge.
type Badge struct {
	ID          int64  `json:"id"                    yaml:"id"`
	Name        string `json:"name"                  yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Enabled     bool   `json:"enabled,omitempty"     yaml:"enabled,omitempty"`
	IconImageID int64  `json:"iconImageId,omitempty" yaml:"icon_image_id,omitempty"`
}

// Badge payment sources accepted by BadgeCreateRequest.
const (
	PaymentSourceUser  = "user"
	PaymentSourceGroup = "group"
)

// BadgeCreateRequest is the form payload for creating a badge.
type BadgeCreateRequest struct {
	Name        string
	Description string
	// PaymentSource is PaymentSourceUser or PaymentSourceGroup and selects
	// who pays the badge creation fee. Defaults to the user.
	PaymentSource string
}

// BadgeUpdateRequest is the partial JSON payload for updating a badge.
type BadgeUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Enabled     *bool   `json:"enabled,omitempty"`
}

// Universe represents universe settings from the cloud v2 API. Fields absent
// from the remote schema are tolerated as zero values.
type Universe struct {
	Path        string `json:"path,omitempty"        yaml:"path,omitempty"`
	DisplayName string `json:"displayName,omitempty" yaml:"display_name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Visibility  string `json:"visibility,omitempty"  yaml:"visibility,omitempty"`
}

// UniverseUpdateRequest is the patch payload for universe settings. Nil
// fields are omitted from the patch.
type UniverseUpdateRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Genre           *string  `json:"genre,omitempty"`
	PlayableDevices []string `json:"playableDevices,omitempty"`
}

// Asset creator types.
const (
	CreatorTypeUser  = "user"
	CreatorTypeGroup = "group"
)

// AssetUploadRequest describes an asset to create.
type AssetUploadRequest struct {
	// AssetType is the Open Cloud asset type, e.g. "Image".
	AssetType   string
	DisplayName string
	Description string
	// CreatorType is CreatorTypeUser or CreatorTypeGroup.
	CreatorType string
	// CreatorID is the user or group ID owning the asset.
	CreatorID string
}

// Operation represents a long-running asset operation.
type Operation struct {
	Path     string           `json:"path,omitempty"`
	Done     bool             `json:"done,omitempty"`
	Response *OperationResult `json:"response,omitempty"`
	Error    *OperationError  `json:"error,omitempty"`
}

// OperationResult carries the payload of a completed operation.
type OperationResult struct {
	AssetID string `json:"assetId,omitempty"`
}

// OperationError carries the failure of a completed operation.
type OperationError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// PlaceVersion represents a published place version.
type PlaceVersion struct {
	VersionNumber int64 `json:"versionNumber" yaml:"version_number"`
}
