package client

import (
	"context"

	"github.com/rbxsync-io/rbxsync/internal/constants"
	"github.com/rbxsync-io/rbxsync/internal/http"
	"github.com/rbxsync-io/rbxsync/pkg/rbxcloud"
)

// DataStoresClient implements rbxcloud.DataStoresClient.
type DataStoresClient struct {
	httpClient *http.Client
}

// NewDataStoresClient creates a new data stores client.
func NewDataStoresClient(httpClient *http.Client) *DataStoresClient {
	return &DataStoresClient{
		httpClient: httpClient,
	}
}

// List implements rbxcloud.DataStoresClient.List.
func (c *DataStoresClient) List(ctx context.Context, universeID string, opts *rbxcloud.ListOptions) (*rbxcloud.ListResponse[rbxcloud.DataStore], error) {
	err := requireArg(universeID, "universe ID")
	if err != nil {
		return nil, err
	}

	if opts != nil {
		err = validateLimit(opts.Limit, constants.MaxDataStorePageSize)
		if err != nil {
			return nil, err
		}
	}

	path := constants.DataStoresPathPrefix + universeID + "/standard-datastores"

	resp, err := c.httpClient.Get(ctx, path, opts.ToQuery())
	if err != nil {
		return nil, err
	}

	var list rbxcloud.ListResponse[rbxcloud.DataStore]

	err = unmarshalResponse(path, resp.Body, &list)
	if err != nil {
		return nil, err
	}

	return &list, nil
}

// ListEntries implements rbxcloud.DataStoresClient.ListEntries.
func (c *DataStoresClient) ListEntries(ctx context.Context, universeID, datastore string, opts *rbxcloud.ListOptions) (*rbxcloud.ListResponse[rbxcloud.EntryKey], error) {
	err := requireArg(universeID, "universe ID")
	if err != nil {
		return nil, err
	}

	err = requireArg(datastore, "data store name")
	if err != nil {
		return nil, err
	}

	if opts != nil {
		err = validateLimit(opts.Limit, constants.MaxDataStorePageSize)
		if err != nil {
			return nil, err
		}
	}

	path := constants.DataStoresPathPrefix + universeID + "/standard-datastores/datastore/entries"
	query := append(rbxcloud.NewQuery().With("datastoreName", datastore), opts.ToQuery()...)

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}

	var list rbxcloud.ListResponse[rbxcloud.EntryKey]

	err = unmarshalResponse(path, resp.Body, &list)
	if err != nil {
		return nil, err
	}

	return &list, nil
}

// GetEntry implements rbxcloud.DataStoresClient.GetEntry. The entry value is
// schema-unknown and returned as an explicit untyped JSON value.
func (c *DataStoresClient) GetEntry(ctx context.Context, universeID, datastore, key string) (rbxcloud.Untyped, error) {
	err := requireArg(universeID, "universe ID")
	if err != nil {
		return nil, err
	}

	err = requireArg(datastore, "data store name")
	if err != nil {
		return nil, err
	}

	err = requireArg(key, "entry key")
	if err != nil {
		return nil, err
	}

	path := constants.DataStoresPathPrefix + universeID + "/standard-datastores/datastore/entries/entry"
	query := rbxcloud.NewQuery().
		With("datastoreName", datastore).
		With("entryKey", key)

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}

	return untypedBody(path, resp.Body)
}

// SetEntry implements rbxcloud.DataStoresClient.SetEntry.
func (c *DataStoresClient) SetEntry(ctx context.Context, universeID, datastore, key string, value interface{}) (*rbxcloud.EntryVersion, error) {
	err := requireArg(universeID, "universe ID")
	if err != nil {
		return nil, err
	}

	err = requireArg(datastore, "data store name")
	if err != nil {
		return nil, err
	}

	err = requireArg(key, "entry key")
	if err != nil {
		return nil, err
	}

	path := constants.DataStoresPathPrefix + universeID + "/standard-datastores/datastore/entries/entry"
	query := rbxcloud.NewQuery().
		With("datastoreName", datastore).
		With("entryKey", key)

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: "POST",
		Path:   path,
		Query:  query,
		Body:   value,
	})
	if err != nil {
		return nil, err
	}

	var version rbxcloud.EntryVersion

	err = unmarshalResponse(path, resp.Body, &version)
	if err != nil {
		return nil, err
	}

	return &version, nil
}
