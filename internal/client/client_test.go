package client

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalhttp "github.com/rbxsync-io/rbxsync/internal/http"
	"github.com/rbxsync-io/rbxsync/pkg/rbxcloud"
)

func newTestClient(t *testing.T, handler nethttp.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(&rbxcloud.Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	return client
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("succeeds with API key", func(t *testing.T) {
		t.Parallel()

		client, err := New(&rbxcloud.Config{APIKey: "key", UniverseID: "123"})
		require.NoError(t, err)
		assert.Equal(t, "123", client.UniverseID())
		assert.NotNil(t, client.DataStores())
		assert.NotNil(t, client.GamePasses())
		assert.NotNil(t, client.DeveloperProducts())
		assert.NotNil(t, client.Badges())
		assert.NotNil(t, client.Universes())
		assert.NotNil(t, client.Assets())
		assert.NotNil(t, client.Places())
	})

	t.Run("rejects nil config", func(t *testing.T) {
		t.Parallel()

		_, err := New(nil)
		require.Error(t, err)
		assert.True(t, rbxcloud.IsConfig(err))
	})

	t.Run("rejects empty API key", func(t *testing.T) {
		t.Parallel()

		_, err := New(&rbxcloud.Config{})
		require.Error(t, err)
		assert.True(t, rbxcloud.IsConfig(err))
	})
}

func TestDataStoresList(t *testing.T) {
	t.Parallel()

	var (
		gotPath  string
		gotQuery string
	)

	client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{
			"datastores": [{"name": "PlayerData", "createdTime": "2024-03-01T10:00:00Z"}],
			"nextPageCursor": "next"
		}`))
	})

	list, err := client.DataStores().List(context.Background(), "123",
		rbxcloud.NewListOptions().WithLimit(10).WithCursor("abc"))
	require.NoError(t, err)

	assert.Equal(t, "/datastores/v1/universes/123/standard-datastores", gotPath)
	assert.Equal(t, "limit=10&cursor=abc", gotQuery)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "PlayerData", list.Data[0].Name)
	assert.Equal(t, "next", list.NextPageCursor)
}

func TestDataStoresListLimitValidation(t *testing.T) {
	t.Parallel()

	var calls int

	client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		calls++
		_, _ = w.Write([]byte(`{}`))
	})

	for _, limit := range []int{-1, 0, 101, 5000} {
		_, err := client.DataStores().List(context.Background(), "123",
			rbxcloud.NewListOptions().WithLimit(limit))
		require.Error(t, err)
		assert.True(t, rbxcloud.IsInvalidArgument(err))
	}

	assert.Zero(t, calls, "invalid limits must not reach the wire")

	// An unset limit is valid and sends no limit parameter.
	_, err := client.DataStores().List(context.Background(), "123", rbxcloud.NewListOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDataStoresListEntries(t *testing.T) {
	t.Parallel()

	var gotQuery string

	client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"keys": [{"key": "user_1"}]}`))
	})

	keys, err := client.DataStores().ListEntries(context.Background(), "123", "PlayerData",
		rbxcloud.NewListOptions().WithLimit(5))
	require.NoError(t, err)

	assert.Equal(t, "datastoreName=PlayerData&limit=5", gotQuery)
	require.Len(t, keys.Data, 1)
	assert.Equal(t, "user_1", keys.Data[0].Key)
}

func TestDataStoresGetEntry(t *testing.T) {
	t.Parallel()

	t.Run("returns untyped value", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
			assert.Equal(t, "datastoreName=PlayerData&entryKey=user_1", r.URL.RawQuery)
			_, _ = w.Write([]byte(`{"coins": 100, "level": 7}`))
		})

		value, err := client.DataStores().GetEntry(context.Background(), "123", "PlayerData", "user_1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"coins": 100, "level": 7}`, string(value))
	})

	t.Run("non-JSON success body is a decode error", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
			_, _ = w.Write([]byte(`<html>surprise</html>`))
		})

		_, err := client.DataStores().GetEntry(context.Background(), "123", "PlayerData", "user_1")
		require.Error(t, err)
		assert.True(t, rbxcloud.IsDecode(err))
	})

	t.Run("missing arguments rejected locally", func(t *testing.T) {
		t.Parallel()

		var calls int

		client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
			calls++
		})

		_, err := client.DataStores().GetEntry(context.Background(), "", "PlayerData", "user_1")
		assert.True(t, rbxcloud.IsInvalidArgument(err))

		_, err = client.DataStores().GetEntry(context.Background(), "123", "", "user_1")
		assert.True(t, rbxcloud.IsInvalidArgument(err))

		_, err = client.DataStores().GetEntry(context.Background(), "123", "PlayerData", "")
		assert.True(t, rbxcloud.IsInvalidArgument(err))

		assert.Zero(t, calls)
	})
}

func TestDataStoresSetEntry(t *testing.T) {
	t.Parallel()

	var gotBody []byte

	client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		require.Equal(t, nethttp.MethodPost, r.Method)

		var err error

		gotBody, err = json.Marshal(decodeJSONBody(t, r))
		require.NoError(t, err)

		_, _ = w.Write([]byte(`{"version": "v2", "createdTime": "2024-03-01T10:00:00Z"}`))
	})

	version, err := client.DataStores().SetEntry(context.Background(), "123", "PlayerData", "user_1",
		map[string]int{"coins": 200})
	require.NoError(t, err)

	assert.JSONEq(t, `{"coins": 200}`, string(gotBody))
	assert.Equal(t, "v2", version.Version)
}

func decodeJSONBody(t *testing.T, r *nethttp.Request) interface{} {
	t.Helper()

	var v interface{}
	require.NoError(t, json.NewDecoder(r.Body).Decode(&v))

	return v
}

func TestGamePassesCreate(t *testing.T) {
	t.Parallel()

	var (
		gotPath   string
		gotFields map[string]string
	)

	client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotPath = r.URL.Path
		gotFields = parseFormFields(t, r)
		_, _ = w.Write([]byte(`{"id": 42, "name": "VIP"}`))
	})

	pass, err := client.GamePasses().Create(context.Background(), "123", &rbxcloud.GamePassCreateRequest{
		Name:        "VIP",
		Description: "extra perks",
		Price:       250,
		IconAssetID: 555,
	})
	require.NoError(t, err)

	assert.Equal(t, "/game-passes/v1/universes/123/game-passes", gotPath)
	assert.Equal(t, "VIP", gotFields["name"])
	assert.Equal(t, "extra perks", gotFields["description"])
	assert.Equal(t, "250", gotFields["price"])
	assert.Equal(t, "555", gotFields["iconAssetId"])
	assert.Equal(t, int64(42), pass.ID)
}

func parseFormFields(t *testing.T, r *nethttp.Request) map[string]string {
	t.Helper()

	require.NoError(t, r.ParseMultipartForm(1<<20))

	fields := make(map[string]string)
	for name, values := range r.MultipartForm.Value {
		require.Len(t, values, 1)
		fields[name] = values[0]
	}

	return fields
}

func TestGamePassesUpdate(t *testing.T) {
	t.Parallel()

	t.Run("sends only set fields", func(t *testing.T) {
		t.Parallel()

		var (
			gotPath   string
			gotMethod string
			gotFields map[string]string
		)

		client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
			gotPath = r.URL.Path
			gotMethod = r.Method
			gotFields = parseFormFields(t, r)
			_, _ = w.Write([]byte(`{"id": 42}`))
		})

		price := int64(99)

		_, err := client.GamePasses().Update(context.Background(), "123", 42,
			&rbxcloud.GamePassUpdateRequest{Price: &price})
		require.NoError(t, err)

		assert.Equal(t, "/game-passes/v1/universes/123/game-passes/42", gotPath)
		assert.Equal(t, nethttp.MethodPatch, gotMethod)
		assert.Equal(t, map[string]string{"price": "99"}, gotFields)
	})

	t.Run("empty patch rejected locally", func(t *testing.T) {
		t.Parallel()

		var calls int

		client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
			calls++
		})

		_, err := client.GamePasses().Update(context.Background(), "123", 42, &rbxcloud.GamePassUpdateRequest{})
		require.Error(t, err)
		assert.True(t, rbxcloud.IsInvalidArgument(err))
		assert.Zero(t, calls)
	})
}

func TestDeveloperProductsListUsesPageQuery(t *testing.T) {
	t.Parallel()

	var (
		gotPath  string
		gotQuery string
	)

	client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{
			"developerProducts": [{"id": 7, "name": "Coins100", "price": 10}],
			"nextPageToken": "tok"
		}`))
	})

	products, err := client.DeveloperProducts().List(context.Background(), "123",
		rbxcloud.NewListOptions().WithLimit(25).WithCursor("abc"))
	require.NoError(t, err)

	assert.Equal(t, "/developer-products/v2/universes/123/developer-products/creator", gotPath)
	assert.Equal(t, "pageSize=25&pageToken=abc", gotQuery)
	require.Len(t, products.Data, 1)
	assert.Equal(t, "tok", products.NextPageCursor)
}

func TestDeveloperProductsListLimitMax(t *testing.T) {
	t.Parallel()

	var calls int

	client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		calls++
	})

	_, err := client.DeveloperProducts().List(context.Background(), "123",
		rbxcloud.NewListOptions().WithLimit(51))
	require.Error(t, err)
	assert.True(t, rbxcloud.IsInvalidArgument(err))
	assert.Zero(t, calls)
}

func TestBadgesCreateWithIcon(t *testing.T) {
	t.Parallel()

	var (
		gotPath     string
		gotFields   map[string]string
		gotFilename string
	)

	client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotPath = r.URL.Path

		require.NoError(t, r.ParseMultipartForm(1<<20))

		gotFields = make(map[string]string)
		for name, values := range r.MultipartForm.Value {
			gotFields[name] = values[0]
		}

		files := r.MultipartForm.File["request.files"]
		require.Len(t, files, 1)
		gotFilename = files[0].Filename

		_, _ = w.Write([]byte(`{"id": 9, "name": "Winner"}`))
	})

	badge, err := client.Badges().Create(context.Background(), "123", &rbxcloud.BadgeCreateRequest{
		Name:          "Winner",
		Description:   "you won",
		PaymentSource: rbxcloud.PaymentSourceGroup,
	}, []byte("png-bytes"), "winner.png")
	require.NoError(t, err)

	assert.Equal(t, "/legacy-badges/v1/universes/123/badges", gotPath)
	assert.Equal(t, "Winner", gotFields["name"])
	assert.Equal(t, "2", gotFields["paymentSourceType"], "group pays the creation fee")
	assert.Equal(t, "winner.png", gotFilename)
	assert.Equal(t, int64(9), badge.ID)
}

func TestBadgesUpdate(t *testing.T) {
	t.Parallel()

	var (
		gotPath string
		gotBody map[string]interface{}
	)

	client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		// The legacy endpoint answers with an empty body.
		w.WriteHeader(nethttp.StatusOK)
	})

	enabled := true

	_, err := client.Badges().Update(context.Background(), 9, &rbxcloud.BadgeUpdateRequest{Enabled: &enabled})
	require.NoError(t, err)

	assert.Equal(t, "/legacy-badges/v1/badges/9", gotPath)
	assert.Equal(t, map[string]interface{}{"enabled": true}, gotBody)
}

func TestBadgesUpdateIcon(t *testing.T) {
	t.Parallel()

	var gotPath string

	client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotPath = r.URL.Path

		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Len(t, r.MultipartForm.File["request.files"], 1)

		w.WriteHeader(nethttp.StatusOK)
	})

	_, err := client.Badges().UpdateIcon(context.Background(), 9, []byte("png-bytes"), "winner.png")
	require.NoError(t, err)
	assert.Equal(t, "/legacy-publish/v1/badges/9/icon", gotPath)
}

func TestUniversesGet(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/cloud/v2/universes/123", r.URL.Path)
		_, _ = w.Write([]byte(`{"path": "universes/123", "displayName": "My Game"}`))
	})

	universe, err := client.Universes().Get(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "My Game", universe.DisplayName)
}

func TestUniversesUpdate(t *testing.T) {
	t.Parallel()

	t.Run("patches set fields", func(t *testing.T) {
		t.Parallel()

		var gotBody map[string]interface{}

		client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
			require.Equal(t, nethttp.MethodPatch, r.Method)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_, _ = w.Write([]byte(`{"displayName": "New Name"}`))
		})

		name := "New Name"

		result, err := client.Universes().Update(context.Background(), "123",
			&rbxcloud.UniverseUpdateRequest{Name: &name})
		require.NoError(t, err)

		assert.Equal(t, map[string]interface{}{"name": "New Name"}, gotBody)
		assert.JSONEq(t, `{"displayName": "New Name"}`, string(result))
	})

	t.Run("empty patch rejected locally", func(t *testing.T) {
		t.Parallel()

		var calls int

		client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
			calls++
		})

		_, err := client.Universes().Update(context.Background(), "123", &rbxcloud.UniverseUpdateRequest{})
		require.Error(t, err)
		assert.True(t, rbxcloud.IsInvalidArgument(err))
		assert.Zero(t, calls)
	})
}

func TestAssetsUpload(t *testing.T) {
	t.Parallel()

	t.Run("immediate completion", func(t *testing.T) {
		t.Parallel()

		var gotRequestPart string

		client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
			assert.Equal(t, "/assets/v1/assets", r.URL.Path)

			require.NoError(t, r.ParseMultipartForm(1<<20))
			gotRequestPart = r.MultipartForm.Value["request"][0]
			require.Len(t, r.MultipartForm.File["fileContent"], 1)

			_, _ = w.Write([]byte(`{"path": "operations/abc", "done": true, "response": {"assetId": "101"}}`))
		})

		assetID, err := client.Assets().Upload(context.Background(), &rbxcloud.AssetUploadRequest{
			DisplayName: "vip",
			CreatorType: rbxcloud.CreatorTypeUser,
			CreatorID:   "777",
		}, []byte("png-bytes"), "vip.png")
		require.NoError(t, err)
		assert.Equal(t, "101", assetID)

		var webRequest map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(gotRequestPart), &webRequest))
		assert.Equal(t, "Image", webRequest["assetType"], "asset type defaults to Image")
		assert.Equal(t, "vip", webRequest["displayName"])
	})

	t.Run("polls pending operation", func(t *testing.T) {
		t.Parallel()

		var operationCalls int

		server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			if r.Method == nethttp.MethodPost {
				_, _ = w.Write([]byte(`{"path": "operations/abc", "done": false}`))

				return
			}

			operationCalls++

			assert.Equal(t, "/assets/v1/operations/abc", r.URL.Path)

			if operationCalls < 2 {
				_, _ = w.Write([]byte(`{"path": "operations/abc", "done": false}`))

				return
			}

			_, _ = w.Write([]byte(`{"path": "operations/abc", "done": true, "response": {"assetId": "202"}}`))
		}))
		t.Cleanup(server.Close)

		assets := NewAssetsClient(internalhttp.NewClient(server.URL, "key"))
		assets.pollInterval = 5 * time.Millisecond
		assets.pollTimeout = time.Second

		assetID, err := assets.Upload(context.Background(), &rbxcloud.AssetUploadRequest{
			DisplayName: "vip",
			CreatorID:   "777",
		}, []byte("png-bytes"), "vip.png")
		require.NoError(t, err)
		assert.Equal(t, "202", assetID)
		assert.Equal(t, 2, operationCalls)
	})

	t.Run("operation failure is an upstream error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			if r.Method == nethttp.MethodPost {
				_, _ = w.Write([]byte(`{"path": "operations/abc", "done": false}`))

				return
			}

			_, _ = w.Write([]byte(`{"path": "operations/abc", "done": true, "error": {"code": "INVALID_IMAGE", "message": "bad image"}}`))
		}))
		t.Cleanup(server.Close)

		assets := NewAssetsClient(internalhttp.NewClient(server.URL, "key"))
		assets.pollInterval = 5 * time.Millisecond
		assets.pollTimeout = time.Second

		_, err := assets.Upload(context.Background(), &rbxcloud.AssetUploadRequest{
			DisplayName: "vip",
			CreatorID:   "777",
		}, []byte("png-bytes"), "vip.png")
		require.Error(t, err)
		assert.True(t, rbxcloud.IsUpstream(err))
		assert.Contains(t, err.Error(), "bad image")
	})

	t.Run("missing arguments rejected locally", func(t *testing.T) {
		t.Parallel()

		var calls int

		client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
			calls++
		})

		_, err := client.Assets().Upload(context.Background(), &rbxcloud.AssetUploadRequest{CreatorID: "777"},
			[]byte("x"), "x.png")
		assert.True(t, rbxcloud.IsInvalidArgument(err))

		_, err = client.Assets().Upload(context.Background(), &rbxcloud.AssetUploadRequest{DisplayName: "vip"},
			[]byte("x"), "x.png")
		assert.True(t, rbxcloud.IsInvalidArgument(err))

		_, err = client.Assets().Upload(context.Background(), &rbxcloud.AssetUploadRequest{
			DisplayName: "vip", CreatorID: "777",
		}, nil, "x.png")
		assert.True(t, rbxcloud.IsInvalidArgument(err))

		assert.Zero(t, calls)
	})
}

func TestPlacesPublishVersion(t *testing.T) {
	t.Parallel()

	var (
		gotPath        string
		gotQuery       string
		gotContentType string
	)

	client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{"versionNumber": 12}`))
	})

	version, err := client.Places().PublishVersion(context.Background(), "123", 456, []byte{0x01, 0x02})
	require.NoError(t, err)

	assert.Equal(t, "/v1/universes/123/places/456/versions", gotPath)
	assert.Equal(t, "versionType=Published", gotQuery)
	assert.Equal(t, "application/octet-stream", gotContentType)
	assert.Equal(t, int64(12), version.VersionNumber)
}

func TestGamePassesListDecodeError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	})

	_, err := client.GamePasses().List(context.Background(), "123", nil)
	require.Error(t, err)
	assert.True(t, rbxcloud.IsDecode(err))
}

func TestUpstreamErrorsPassThrough(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "forbidden"}`))
	})

	_, err := client.GamePasses().List(context.Background(), "123", nil)
	require.Error(t, err)
	assert.True(t, rbxcloud.IsForbidden(err))
	assert.Contains(t, err.Error(), "forbidden")
}
