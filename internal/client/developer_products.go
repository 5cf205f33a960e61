package client

import (
	"context"
	"strconv"

	"github.com/rbxsync-io/rbxsync/internal/constants"
	"github.com/rbxsync-io/rbxsync/internal/http"
	"github.com/rbxsync-io/rbxsync/pkg/rbxcloud"
)

// DeveloperProductsClient implements rbxcloud.DeveloperProductsClient.
type DeveloperProductsClient struct {
	httpClient *http.Client
}

// NewDeveloperProductsClient creates a new developer products client.
func NewDeveloperProductsClient(httpClient *http.Client) *DeveloperProductsClient {
	return &DeveloperProductsClient{
		httpClient: httpClient,
	}
}

// List implements rbxcloud.DeveloperProductsClient.List. The creator listing
// uses pageSize/pageToken field names rather than limit/cursor.
func (c *DeveloperProductsClient) List(ctx context.Context, universeID string, opts *rbxcloud.ListOptions) (*rbxcloud.ListResponse[rbxcloud.DeveloperProduct], error) {
	err := requireArg(universeID, "universe ID")
	if err != nil {
		return nil, err
	}

	if opts != nil {
		err = validateLimit(opts.Limit, constants.MaxDeveloperProductPageSize)
		if err != nil {
			return nil, err
		}
	}

	path := constants.DeveloperProductsPathPrefix + universeID + "/developer-products/creator"

	resp, err := c.httpClient.Get(ctx, path, opts.ToPageQuery())
	if err != nil {
		return nil, err
	}

	var list rbxcloud.ListResponse[rbxcloud.DeveloperProduct]

	err = unmarshalResponse(path, resp.Body, &list)
	if err != nil {
		return nil, err
	}

	return &list, nil
}

// Create implements rbxcloud.DeveloperProductsClient.Create.
func (c *DeveloperProductsClient) Create(ctx context.Context, universeID string, request *rbxcloud.DeveloperProductCreateRequest) (*rbxcloud.DeveloperProduct, error) {
	err := requireArg(universeID, "universe ID")
	if err != nil {
		return nil, err
	}

	if request == nil || request.Name == "" {
		return nil, rbxcloud.NewInvalidArgumentError("developer product name is required")
	}

	fields := []formField{
		{name: "name", value: request.Name},
		{name: "price", value: strconv.FormatInt(request.Price, 10)},
		{name: "description", value: request.Description},
	}
	if request.IconAssetID > 0 {
		fields = append(fields, formField{name: "iconAssetId", value: strconv.FormatInt(request.IconAssetID, 10)})
	}

	body, contentType, err := encodeFormOrError(fields, nil)
	if err != nil {
		return nil, err
	}

	path := constants.DeveloperProductsPathPrefix + universeID + "/developer-products"

	resp, err := c.httpClient.PostRaw(ctx, path, nil, body, contentType)
	if err != nil {
		return nil, err
	}

	var product rbxcloud.DeveloperProduct

	err = unmarshalResponse(path, resp.Body, &product)
	if err != nil {
		return nil, err
	}

	return &product, nil
}

// Update implements rbxcloud.DeveloperProductsClient.Update.
func (c *DeveloperProductsClient) Update(ctx context.Context, universeID string, productID int64, request *rbxcloud.DeveloperProductUpdateRequest) (*rbxcloud.DeveloperProduct, error) {
	err := requireArg(universeID, "universe ID")
	if err != nil {
		return nil, err
	}

	if productID <= 0 {
		return nil, rbxcloud.NewInvalidArgumentError("developer product ID is required")
	}

	var fields []formField

	if request != nil {
		if request.Name != nil {
			fields = append(fields, formField{name: "name", value: *request.Name})
		}

		if request.Price != nil {
			fields = append(fields, formField{name: "price", value: strconv.FormatInt(*request.Price, 10)})
		}

		if request.Description != nil {
			fields = append(fields, formField{name: "description", value: *request.Description})
		}

		if request.IconAssetID != nil {
			fields = append(fields, formField{name: "iconAssetId", value: strconv.FormatInt(*request.IconAssetID, 10)})
		}
	}

	if len(fields) == 0 {
		return nil, rbxcloud.NewInvalidArgumentError("no developer product fields to update")
	}

	body, contentType, err := encodeFormOrError(fields, nil)
	if err != nil {
		return nil, err
	}

	path := constants.DeveloperProductsPathPrefix + universeID + "/developer-products/" + strconv.FormatInt(productID, 10)

	resp, err := c.httpClient.PatchRaw(ctx, path, body, contentType)
	if err != nil {
		return nil, err
	}

	var product rbxcloud.DeveloperProduct

	err = unmarshalResponse(path, resp.Body, &product)
	if err != nil {
		return nil, err
	}

	return &product, nil
}
