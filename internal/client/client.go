// Package client implements the typed operations layer over the transport
// client: one resource client per Open Cloud API surface, each a pure
// composition of a path template, optional parameters, and a typed response
// decode.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rbxsync-io/rbxsync/internal/http"
	"github.com/rbxsync-io/rbxsync/pkg/rbxcloud"
)

// Static errors for decode failures on schema-unknown payloads.
var errNotJSON = errors.New("response body is not valid JSON")

// Client implements the rbxcloud.Client interface.
type Client struct {
	httpClient *http.Client
	config     rbxcloud.Config

	dataStores        rbxcloud.DataStoresClient
	gamePasses        rbxcloud.GamePassesClient
	developerProducts rbxcloud.DeveloperProductsClient
	badges            rbxcloud.BadgesClient
	universes         rbxcloud.UniversesClient
	assets            rbxcloud.AssetsClient
	places            rbxcloud.PlacesClient
}

// New creates a new Open Cloud API client. No network call is performed at
// construction; the only failure mode is a missing credential.
func New(config *rbxcloud.Config) (*Client, error) {
	if config == nil {
		return nil, rbxcloud.NewConfigError("config is required")
	}

	if config.APIKey == "" {
		return nil, rbxcloud.NewConfigError("API key is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = rbxcloud.DefaultBaseURL
	}

	httpOpts := createHTTPClientOptions(config)
	httpClient := http.NewClient(baseURL, config.APIKey, httpOpts...)

	client := &Client{
		httpClient: httpClient,
		config:     *config,
	}

	client.initializeResourceClients()

	return client, nil
}

// createHTTPClientOptions builds transport options from config.
func createHTTPClientOptions(config *rbxcloud.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.Timeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.Timeout))
	}

	return httpOpts
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.dataStores = NewDataStoresClient(c.httpClient)
	c.gamePasses = NewGamePassesClient(c.httpClient)
	c.developerProducts = NewDeveloperProductsClient(c.httpClient)
	c.badges = NewBadgesClient(c.httpClient)
	c.universes = NewUniversesClient(c.httpClient)
	c.assets = NewAssetsClient(c.httpClient)
	c.places = NewPlacesClient(c.httpClient)
}

// DataStores implements rbxcloud.Client.DataStores.
func (c *Client) DataStores() rbxcloud.DataStoresClient {
	return c.dataStores
}

// GamePasses implements rbxcloud.Client.GamePasses.
func (c *Client) GamePasses() rbxcloud.GamePassesClient {
	return c.gamePasses
}

// DeveloperProducts implements rbxcloud.Client.DeveloperProducts.
func (c *Client) DeveloperProducts() rbxcloud.DeveloperProductsClient {
	return c.developerProducts
}

// Badges implements rbxcloud.Client.Badges.
func (c *Client) Badges() rbxcloud.BadgesClient {
	return c.badges
}

// Universes implements rbxcloud.Client.Universes.
func (c *Client) Universes() rbxcloud.UniversesClient {
	return c.universes
}

// Assets implements rbxcloud.Client.Assets.
func (c *Client) Assets() rbxcloud.AssetsClient {
	return c.assets
}

// Places implements rbxcloud.Client.Places.
func (c *Client) Places() rbxcloud.PlacesClient {
	return c.places
}

// UniverseID returns the default universe from the client configuration.
func (c *Client) UniverseID() string {
	return c.config.UniverseID
}

// unmarshalResponse decodes a 2xx body into the expected shape, mapping
// failures to a decode-kind error. The legacy PATCH endpoints may answer
// with an empty body; that leaves the target at its zero value.
func unmarshalResponse(path string, body []byte, target interface{}) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	err := json.Unmarshal(body, target)
	if err != nil {
		return rbxcloud.NewDecodeError(path, err)
	}

	return nil
}

// untypedBody validates a schema-unknown 2xx body and hands it to the caller
// as an explicit untyped JSON value. An empty body yields nil.
func untypedBody(path string, body []byte) (rbxcloud.Untyped, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	if !json.Valid(body) {
		return nil, rbxcloud.NewDecodeError(path, errNotJSON)
	}

	return rbxcloud.Untyped(body), nil
}

// validateLimit enforces a page-size range of [1, max] before any request is
// issued. A nil limit defers to the server default; an explicit zero is an
// argument error like any other out-of-range value.
func validateLimit(limit *int, max int) error {
	if limit == nil {
		return nil
	}

	if *limit < 1 || *limit > max {
		return rbxcloud.NewInvalidArgumentError(fmt.Sprintf("limit must be between 1 and %d, got %d", max, *limit))
	}

	return nil
}

// requireArg rejects an empty required string parameter before any request
// is issued.
func requireArg(value, name string) error {
	if value == "" {
		return rbxcloud.NewInvalidArgumentError(name + " is required")
	}

	return nil
}
