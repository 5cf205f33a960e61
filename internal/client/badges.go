package client

import (
	"context"
	"strconv"

	"github.com/rbxsync-io/rbxsync/internal/constants"
	"github.com/rbxsync-io/rbxsync/internal/http"
	"github.com/rbxsync-io/rbxsync/pkg/rbxcloud"
)

// BadgesClient implements rbxcloud.BadgesClient. Badge listing still lives on
// the legacy catalog host; creation and updates go through the Open Cloud
// legacy-badges surface.
type BadgesClient struct {
	httpClient *http.Client
}

// NewBadgesClient creates a new badges client.
func NewBadgesClient(httpClient *http.Client) *BadgesClient {
	return &BadgesClient{
		httpClient: httpClient,
	}
}

// List implements rbxcloud.BadgesClient.List.
func (c *BadgesClient) List(ctx context.Context, universeID string, opts *rbxcloud.ListOptions) (*rbxcloud.ListResponse[rbxcloud.Badge], error) {
	err := requireArg(universeID, "universe ID")
	if err != nil {
		return nil, err
	}

	if opts != nil {
		err = validateLimit(opts.Limit, constants.MaxBadgePageSize)
		if err != nil {
			return nil, err
		}
	}

	path := constants.BadgesCatalogBaseURL + "/v1/universes/" + universeID + "/badges"

	resp, err := c.httpClient.Get(ctx, path, opts.ToQuery())
	if err != nil {
		return nil, err
	}

	var list rbxcloud.ListResponse[rbxcloud.Badge]

	err = unmarshalResponse(path, resp.Body, &list)
	if err != nil {
		return nil, err
	}

	return &list, nil
}

// Create implements rbxcloud.BadgesClient.Create. The icon is optional;
// when present it rides along as a file part of the creation form.
func (c *BadgesClient) Create(ctx context.Context, universeID string, request *rbxcloud.BadgeCreateRequest, icon []byte, iconFilename string) (*rbxcloud.Badge, error) {
	err := requireArg(universeID, "universe ID")
	if err != nil {
		return nil, err
	}

	if request == nil || request.Name == "" {
		return nil, rbxcloud.NewInvalidArgumentError("badge name is required")
	}

	fields := []formField{
		{name: "name", value: request.Name},
		{name: "description", value: request.Description},
	}
	if request.PaymentSource != "" {
		fields = append(fields, formField{name: "paymentSourceType", value: paymentSourceTypeID(request.PaymentSource)})
	}

	var file *filePart
	if len(icon) > 0 {
		file = &filePart{
			fieldName:   "request.files",
			filename:    iconFilename,
			contentType: imageContentType(iconFilename),
			content:     icon,
		}
	}

	body, contentType, err := encodeFormOrError(fields, file)
	if err != nil {
		return nil, err
	}

	path := constants.LegacyBadgesPathPrefix + "/universes/" + universeID + "/badges"

	resp, err := c.httpClient.PostRaw(ctx, path, nil, body, contentType)
	if err != nil {
		return nil, err
	}

	var badge rbxcloud.Badge

	err = unmarshalResponse(path, resp.Body, &badge)
	if err != nil {
		return nil, err
	}

	return &badge, nil
}

// Update implements rbxcloud.BadgesClient.Update.
func (c *BadgesClient) Update(ctx context.Context, badgeID int64, request *rbxcloud.BadgeUpdateRequest) (*rbxcloud.Badge, error) {
	if badgeID <= 0 {
		return nil, rbxcloud.NewInvalidArgumentError("badge ID is required")
	}

	if request == nil {
		return nil, rbxcloud.NewInvalidArgumentError("no badge fields to update")
	}

	path := constants.LegacyBadgesPathPrefix + "/badges/" + strconv.FormatInt(badgeID, 10)

	resp, err := c.httpClient.Patch(ctx, path, request)
	if err != nil {
		return nil, err
	}

	var badge rbxcloud.Badge

	err = unmarshalResponse(path, resp.Body, &badge)
	if err != nil {
		return nil, err
	}

	return &badge, nil
}

// UpdateIcon implements rbxcloud.BadgesClient.UpdateIcon.
func (c *BadgesClient) UpdateIcon(ctx context.Context, badgeID int64, icon []byte, iconFilename string) (rbxcloud.Untyped, error) {
	if badgeID <= 0 {
		return nil, rbxcloud.NewInvalidArgumentError("badge ID is required")
	}

	if len(icon) == 0 {
		return nil, rbxcloud.NewInvalidArgumentError("badge icon content is required")
	}

	file := &filePart{
		fieldName:   "request.files",
		filename:    iconFilename,
		contentType: imageContentType(iconFilename),
		content:     icon,
	}

	body, contentType, err := encodeFormOrError(nil, file)
	if err != nil {
		return nil, err
	}

	path := constants.LegacyPublishPathPrefix + "/badges/" + strconv.FormatInt(badgeID, 10) + "/icon"

	resp, err := c.httpClient.PostRaw(ctx, path, nil, body, contentType)
	if err != nil {
		return nil, err
	}

	return untypedBody(path, resp.Body)
}

// paymentSourceTypeID maps the public payment source names onto the numeric
// IDs the legacy endpoint expects, defaulting to the user.
func paymentSourceTypeID(source string) string {
	if source == rbxcloud.PaymentSourceGroup {
		return constants.PaymentSourceTypeGroup
	}

	return constants.PaymentSourceTypeUser
}
