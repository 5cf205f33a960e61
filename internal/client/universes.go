package client

import (
	"context"

	"github.com/rbxsync-io/rbxsync/internal/constants"
	"github.com/rbxsync-io/rbxsync/internal/http"
	"github.com/rbxsync-io/rbxsync/pkg/rbxcloud"
)

// UniversesClient implements rbxcloud.UniversesClient.
type UniversesClient struct {
	httpClient *http.Client
}

// NewUniversesClient creates a new universes client.
func NewUniversesClient(httpClient *http.Client) *UniversesClient {
	return &UniversesClient{
		httpClient: httpClient,
	}
}

// Get implements rbxcloud.UniversesClient.Get.
func (c *UniversesClient) Get(ctx context.Context, universeID string) (*rbxcloud.Universe, error) {
	err := requireArg(universeID, "universe ID")
	if err != nil {
		return nil, err
	}

	path := constants.UniversesPathPrefix + universeID

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var universe rbxcloud.Universe

	err = unmarshalResponse(path, resp.Body, &universe)
	if err != nil {
		return nil, err
	}

	return &universe, nil
}

// Update implements rbxcloud.UniversesClient.Update. The patch result shape
// varies between API revisions, so it is returned untyped.
func (c *UniversesClient) Update(ctx context.Context, universeID string, request *rbxcloud.UniverseUpdateRequest) (rbxcloud.Untyped, error) {
	err := requireArg(universeID, "universe ID")
	if err != nil {
		return nil, err
	}

	if request == nil || (request.Name == nil && request.Description == nil && request.Genre == nil && request.PlayableDevices == nil) {
		return nil, rbxcloud.NewInvalidArgumentError("no universe fields to update")
	}

	path := constants.UniversesPathPrefix + universeID

	resp, err := c.httpClient.Patch(ctx, path, request)
	if err != nil {
		return nil, err
	}

	return untypedBody(path, resp.Body)
}
