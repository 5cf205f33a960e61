package client

import (
	"context"
	"strconv"

	"github.com/rbxsync-io/rbxsync/internal/http"
	"github.com/rbxsync-io/rbxsync/pkg/rbxcloud"
)

// PlacesClient implements rbxcloud.PlacesClient.
type PlacesClient struct {
	httpClient *http.Client
}

// NewPlacesClient creates a new places client.
func NewPlacesClient(httpClient *http.Client) *PlacesClient {
	return &PlacesClient{
		httpClient: httpClient,
	}
}

// PublishVersion implements rbxcloud.PlacesClient.PublishVersion. The place
// file rides as a raw binary body.
func (c *PlacesClient) PublishVersion(ctx context.Context, universeID string, placeID int64, content []byte) (*rbxcloud.PlaceVersion, error) {
	err := requireArg(universeID, "universe ID")
	if err != nil {
		return nil, err
	}

	if placeID <= 0 {
		return nil, rbxcloud.NewInvalidArgumentError("place ID is required")
	}

	if len(content) == 0 {
		return nil, rbxcloud.NewInvalidArgumentError("place file content is required")
	}

	path := "/v1/universes/" + universeID + "/places/" + strconv.FormatInt(placeID, 10) + "/versions"
	query := rbxcloud.NewQuery().With("versionType", "Published")

	resp, err := c.httpClient.PostRaw(ctx, path, query, content, "application/octet-stream")
	if err != nil {
		return nil, err
	}

	var version rbxcloud.PlaceVersion

	err = unmarshalResponse(path, resp.Body, &version)
	if err != nil {
		return nil, err
	}

	return &version, nil
}
