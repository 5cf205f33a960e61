package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// UploadHTTPTimeout is used for asset and place uploads.
	UploadHTTPTimeout = 120 * time.Second
)

// Operation polling.
const (
	// DefaultPollInterval is the delay between asset operation polls.
	DefaultPollInterval = 2 * time.Second

	// DefaultOperationTimeout bounds asset operation polling.
	DefaultOperationTimeout = 60 * time.Second
)

// Pagination limits.
const (
	// MaxDataStorePageSize is the largest page the data stores API accepts.
	MaxDataStorePageSize = 100

	// MaxGamePassPageSize is the largest page the game passes API accepts.
	MaxGamePassPageSize = 100

	// MaxDeveloperProductPageSize is the largest page the developer products
	// API accepts.
	MaxDeveloperProductPageSize = 50

	// MaxBadgePageSize is the largest page the badges API accepts.
	MaxBadgePageSize = 100

	// DefaultListLimit is the page size the CLI asks for when the user does
	// not pass one.
	DefaultListLimit = 50
)

// API path prefixes. All are relative to the Open Cloud origin except
// BadgesCatalogBaseURL, the legacy host the badge listing still lives on.
const (
	DataStoresPathPrefix        = "/datastores/v1/universes/"
	GamePassesPathPrefix        = "/game-passes/v1/universes/"
	DeveloperProductsPathPrefix = "/developer-products/v2/universes/"
	LegacyBadgesPathPrefix      = "/legacy-badges/v1"
	LegacyPublishPathPrefix     = "/legacy-publish/v1"
	UniversesPathPrefix         = "/cloud/v2/universes/"
	AssetsPath                  = "/assets/v1/assets"
	AssetOperationsPathPrefix   = "/assets/v1/"

	BadgesCatalogBaseURL = "https://badges.roblox.com"
)

// Badge payment source type IDs on the legacy endpoint.
const (
	PaymentSourceTypeUser  = "1"
	PaymentSourceTypeGroup = "2"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for tabular output format.
	FormatTable = "table"
)
