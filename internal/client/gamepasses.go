package client

import (
	"context"
	"strconv"

	"github.com/rbxsync-io/rbxsync/internal/constants"
	"github.com/rbxsync-io/rbxsync/internal/http"
	"github.com/rbxsync-io/rbxsync/pkg/rbxcloud"
)

// GamePassesClient implements rbxcloud.GamePassesClient.
type GamePassesClient struct {
	httpClient *http.Client
}

// NewGamePassesClient creates a new game passes client.
func NewGamePassesClient(httpClient *http.Client) *GamePassesClient {
	return &GamePassesClient{
		httpClient: httpClient,
	}
}

// List implements rbxcloud.GamePassesClient.List.
func (c *GamePassesClient) List(ctx context.Context, universeID string, opts *rbxcloud.ListOptions) (*rbxcloud.ListResponse[rbxcloud.GamePass], error) {
	err := requireArg(universeID, "universe ID")
	if err != nil {
		return nil, err
	}

	if opts != nil {
		err = validateLimit(opts.Limit, constants.MaxGamePassPageSize)
		if err != nil {
			return nil, err
		}
	}

	path := constants.GamePassesPathPrefix + universeID + "/game-passes"

	resp, err := c.httpClient.Get(ctx, path, opts.ToQuery())
	if err != nil {
		return nil, err
	}

	var list rbxcloud.ListResponse[rbxcloud.GamePass]

	err = unmarshalResponse(path, resp.Body, &list)
	if err != nil {
		return nil, err
	}

	return &list, nil
}

// Create implements rbxcloud.GamePassesClient.Create.
func (c *GamePassesClient) Create(ctx context.Context, universeID string, request *rbxcloud.GamePassCreateRequest) (*rbxcloud.GamePass, error) {
	err := requireArg(universeID, "universe ID")
	if err != nil {
		return nil, err
	}

	if request == nil || request.Name == "" {
		return nil, rbxcloud.NewInvalidArgumentError("game pass name is required")
	}

	fields := []formField{
		{name: "name", value: request.Name},
		{name: "description", value: request.Description},
		{name: "price", value: strconv.FormatInt(request.Price, 10)},
	}
	if request.IconAssetID > 0 {
		fields = append(fields, formField{name: "iconAssetId", value: strconv.FormatInt(request.IconAssetID, 10)})
	}

	body, contentType, err := encodeFormOrError(fields, nil)
	if err != nil {
		return nil, err
	}

	path := constants.GamePassesPathPrefix + universeID + "/game-passes"

	resp, err := c.httpClient.PostRaw(ctx, path, nil, body, contentType)
	if err != nil {
		return nil, err
	}

	var gamePass rbxcloud.GamePass

	err = unmarshalResponse(path, resp.Body, &gamePass)
	if err != nil {
		return nil, err
	}

	return &gamePass, nil
}

// Update implements rbxcloud.GamePassesClient.Update. Nil request fields are
// omitted from the form and left untouched on the remote.
func (c *GamePassesClient) Update(ctx context.Context, universeID string, gamePassID int64, request *rbxcloud.GamePassUpdateRequest) (*rbxcloud.GamePass, error) {
	err := requireArg(universeID, "universe ID")
	if err != nil {
		return nil, err
	}

	if gamePassID <= 0 {
		return nil, rbxcloud.NewInvalidArgumentError("game pass ID is required")
	}

	var fields []formField

	if request != nil {
		if request.Name != nil {
			fields = append(fields, formField{name: "name", value: *request.Name})
		}

		if request.Description != nil {
			fields = append(fields, formField{name: "description", value: *request.Description})
		}

		if request.Price != nil {
			fields = append(fields, formField{name: "price", value: strconv.FormatInt(*request.Price, 10)})
		}

		if request.IconAssetID != nil {
			fields = append(fields, formField{name: "iconAssetId", value: strconv.FormatInt(*request.IconAssetID, 10)})
		}
	}

	if len(fields) == 0 {
		return nil, rbxcloud.NewInvalidArgumentError("no game pass fields to update")
	}

	body, contentType, err := encodeFormOrError(fields, nil)
	if err != nil {
		return nil, err
	}

	path := constants.GamePassesPathPrefix + universeID + "/game-passes/" + strconv.FormatInt(gamePassID, 10)

	resp, err := c.httpClient.PatchRaw(ctx, path, body, contentType)
	if err != nil {
		return nil, err
	}

	var gamePass rbxcloud.GamePass

	err = unmarshalResponse(path, resp.Body, &gamePass)
	if err != nil {
		return nil, err
	}

	return &gamePass, nil
}
