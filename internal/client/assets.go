package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rbxsync-io/rbxsync/internal/constants"
	"github.com/rbxsync-io/rbxsync/internal/http"
	"github.com/rbxsync-io/rbxsync/pkg/rbxcloud"
)

// AssetsClient implements rbxcloud.AssetsClient. Asset creation is
// asynchronous on the remote: the upload returns a long-running operation
// that is polled until it reports done.
type AssetsClient struct {
	httpClient   *http.Client
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// NewAssetsClient creates a new assets client.
func NewAssetsClient(httpClient *http.Client) *AssetsClient {
	return &AssetsClient{
		httpClient:   httpClient,
		pollInterval: constants.DefaultPollInterval,
		pollTimeout:  constants.DefaultOperationTimeout,
	}
}

// webAssetRequest is the JSON part of the asset creation form.
type webAssetRequest struct {
	AssetType       string                  `json:"assetType"`
	DisplayName     string                  `json:"displayName"`
	Description     string                  `json:"description"`
	CreationContext webAssetCreationContext `json:"creationContext"`
}

type webAssetCreationContext struct {
	Creator webAssetCreator `json:"creator"`
}

// webAssetCreator carries exactly one of the two owner IDs.
type webAssetCreator struct {
	UserID  string `json:"userId,omitempty"`
	GroupID string `json:"groupId,omitempty"`
}

// Upload implements rbxcloud.AssetsClient.Upload.
func (c *AssetsClient) Upload(ctx context.Context, request *rbxcloud.AssetUploadRequest, file []byte, filename string) (string, error) {
	if request == nil || request.DisplayName == "" {
		return "", rbxcloud.NewInvalidArgumentError("asset display name is required")
	}

	if request.CreatorID == "" {
		return "", rbxcloud.NewInvalidArgumentError("asset creator ID is required")
	}

	if len(file) == 0 {
		return "", rbxcloud.NewInvalidArgumentError("asset file content is required")
	}

	assetType := request.AssetType
	if assetType == "" {
		assetType = "Image"
	}

	creator := webAssetCreator{UserID: request.CreatorID}
	if request.CreatorType == rbxcloud.CreatorTypeGroup {
		creator = webAssetCreator{GroupID: request.CreatorID}
	}

	requestJSON, err := json.Marshal(webAssetRequest{
		AssetType:       assetType,
		DisplayName:     request.DisplayName,
		Description:     request.Description,
		CreationContext: webAssetCreationContext{Creator: creator},
	})
	if err != nil {
		return "", rbxcloud.NewInvalidArgumentError(fmt.Sprintf("encoding asset request: %v", err))
	}

	file2 := &filePart{
		fieldName:   "fileContent",
		filename:    filename,
		contentType: imageContentType(filename),
		content:     file,
	}

	body, contentType, err := encodeFormOrError([]formField{{name: "request", value: string(requestJSON)}}, file2)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.PostRaw(ctx, constants.AssetsPath, nil, body, contentType)
	if err != nil {
		return "", err
	}

	var operation rbxcloud.Operation

	err = unmarshalResponse(constants.AssetsPath, resp.Body, &operation)
	if err != nil {
		return "", err
	}

	if operation.Done && operation.Response != nil && operation.Response.AssetID != "" {
		return operation.Response.AssetID, nil
	}

	if operation.Path == "" {
		return "", rbxcloud.NewDecodeError(constants.AssetsPath, constants.ErrOperationNoPath)
	}

	return c.pollOperation(ctx, operation.Path)
}

// GetOperation implements rbxcloud.AssetsClient.GetOperation.
func (c *AssetsClient) GetOperation(ctx context.Context, operationPath string) (*rbxcloud.Operation, error) {
	err := requireArg(operationPath, "operation path")
	if err != nil {
		return nil, err
	}

	path := constants.AssetOperationsPathPrefix + operationPath

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var operation rbxcloud.Operation

	err = unmarshalResponse(path, resp.Body, &operation)
	if err != nil {
		return nil, err
	}

	return &operation, nil
}

// pollOperation polls the operation until it reaches a terminal state or the
// poll timeout elapses.
func (c *AssetsClient) pollOperation(ctx context.Context, operationPath string) (string, error) {
	pollCtx, cancel := context.WithTimeout(ctx, c.pollTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-pollCtx.Done():
			return "", rbxcloud.NewNetworkError(operationPath, fmt.Errorf("waiting for asset operation: %w", pollCtx.Err()))
		case <-ticker.C:
			operation, err := c.GetOperation(pollCtx, operationPath)
			if err != nil {
				return "", err
			}

			if !operation.Done {
				continue
			}

			if operation.Error != nil {
				return "", rbxcloud.NewUpstreamError(operationPath, 0, operation.Error.Message)
			}

			if operation.Response == nil || operation.Response.AssetID == "" {
				return "", rbxcloud.NewDecodeError(operationPath, constants.ErrOperationNoAssetID)
			}

			return operation.Response.AssetID, nil
		}
	}
}
