package rbxcloud

import (
	"context"
	"time"
)

// DefaultBaseURL is the canonical Open Cloud origin.
const DefaultBaseURL = "https://apis.roblox.com"

// DataStoresClient provides access to standard data stores.
type DataStoresClient interface {
	List(ctx context.Context, universeID string, opts *ListOptions) (*ListResponse[DataStore], error)
	ListEntries(ctx context.Context, universeID, datastore string, opts *ListOptions) (*ListResponse[EntryKey], error)
	GetEntry(ctx context.Context, universeID, datastore, key string) (Untyped, error)
	SetEntry(ctx context.Context, universeID, datastore, key string, value interface{}) (*EntryVersion, error)
}

// GamePassesClient provides access to universe game passes.
type GamePassesClient interface {
	List(ctx context.Context, universeID string, opts *ListOptions) (*ListResponse[GamePass], error)
	Create(ctx context.Context, universeID string, request *GamePassCreateRequest) (*GamePass, error)
	Update(ctx context.Context, universeID string, gamePassID int64, request *GamePassUpdateRequest) (*GamePass, error)
}

// DeveloperProductsClient provides access to universe developer products.
type DeveloperProductsClient interface {
	List(ctx context.Context, universeID string, opts *ListOptions) (*ListResponse[DeveloperProduct], error)
	Create(ctx context.Context, universeID string, request *DeveloperProductCreateRequest) (*DeveloperProduct, error)
	Update(ctx context.Context, universeID string, productID int64, request *DeveloperProductUpdateRequest) (*DeveloperProduct, error)
}

// BadgesClient provides access to universe badges.
type BadgesClient interface {
	List(ctx context.Context, universeID string, opts *ListOptions) (*ListResponse[Badge], error)
	Create(ctx context.Context, universeID string, request *BadgeCreateRequest, icon []byte, iconFilename string) (*Badge, error)
	Update(ctx context.Context, badgeID int64, request *BadgeUpdateRequest) (*Badge, error)
	UpdateIcon(ctx context.Context, badgeID int64, icon []byte, iconFilename string) (Untyped, error)
}

// UniversesClient provides access to universe settings.
type UniversesClient interface {
	Get(ctx context.Context, universeID string) (*Universe, error)
	Update(ctx context.Context, universeID string, request *UniverseUpdateRequest) (Untyped, error)
}

// AssetsClient provides access to asset upload.
type AssetsClient interface {
	// Upload creates an image asset and waits for the resulting operation to
	// complete, returning the new asset ID.
	Upload(ctx context.Context, request *AssetUploadRequest, file []byte, filename string) (string, error)
	GetOperation(ctx context.Context, operationPath string) (*Operation, error)
}

// PlacesClient provides access to place publishing.
type PlacesClient interface {
	PublishVersion(ctx context.Context, universeID string, placeID int64, content []byte) (*PlaceVersion, error)
}

// Client is the full Open Cloud API surface exposed to callers. The CLI front
// end is only allowed to talk to the API through these resource clients.
type Client interface {
	DataStores() DataStoresClient
	GamePasses() GamePassesClient
	DeveloperProducts() DeveloperProductsClient
	Badges() BadgesClient
	Universes() UniversesClient
	Assets() AssetsClient
	Places() PlacesClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a rbxcloud.Client.
//
// Config is immutable once handed to the client constructor: the transport
// reads it at construction time and never mutates it afterwards, so a single
// client is safe for use from the single-request-at-a-time CLI flow without
// any locking.
type Config struct {
	// APIKey is the Open Cloud API key sent as the x-api-key header on every
	// request. Required; construction fails without it.
	APIKey string

	// BaseURL is the API origin. Defaults to DefaultBaseURL when empty.
	BaseURL string

	// UniverseID is the default universe operated on. Optional; individual
	// calls take an explicit universe ID.
	UniverseID string

	// Timeout bounds each request. Zero means the transport default.
	Timeout time.Duration

	// Debug enables verbose HTTP request/response logging when a Logger is
	// provided.
	Debug bool

	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger

	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
