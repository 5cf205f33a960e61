package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbxsync-io/rbxsync/pkg/rbxcloud"
)

func TestClientSendsAPIKeyHeader(t *testing.T) {
	t.Parallel()

	var gotKey, gotAccept, gotAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotAccept = r.Header.Get("Accept")
		gotAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-key")

	resp, err := client.Get(context.Background(), "/cloud/v2/universes/1", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "secret-key", gotKey)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "rbxsync-go", gotAgent)
}

func TestClientEncodesQueryInOrder(t *testing.T) {
	t.Parallel()

	var gotQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key")

	query := rbxcloud.NewQuery().
		With("datastoreName", "Player Data").
		With("entryKey", "user_1")

	_, err := client.Get(context.Background(), "/datastores/v1/universes/1/standard-datastores/datastore/entries/entry", query)
	require.NoError(t, err)
	assert.Equal(t, "datastoreName=Player+Data&entryKey=user_1", gotQuery)
}

func TestClientMarshalsJSONBody(t *testing.T) {
	t.Parallel()

	var (
		gotContentType string
		gotBody        []byte
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key")

	_, err := client.Patch(context.Background(), "/cloud/v2/universes/1", map[string]string{"name": "My Game"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"name":"My Game"}`, string(gotBody))
}

func TestClientRawBodyPassthrough(t *testing.T) {
	t.Parallel()

	var (
		gotContentType string
		gotMethod      string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotMethod = r.Method
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key")

	query := rbxcloud.NewQuery().With("versionType", "Published")

	_, err := client.PostRaw(context.Background(), "/v1/universes/1/places/2/versions", query,
		[]byte{0x01, 0x02}, "application/octet-stream")
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", gotContentType)
	assert.Equal(t, http.MethodPost, gotMethod)
}

func TestClientUpstreamError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"forbidden"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key")

	resp, err := client.Get(context.Background(), "/game-passes/v1/universes/1/game-passes", nil)
	require.Error(t, err)
	assert.True(t, rbxcloud.IsUpstream(err))
	assert.True(t, rbxcloud.IsForbidden(err))
	assert.Equal(t, http.StatusForbidden, rbxcloud.StatusCode(err))
	assert.Contains(t, err.Error(), "forbidden")

	// The raw response still comes back for callers that want the body.
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestClientNetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "key")

	_, err := client.Get(context.Background(), "/cloud/v2/universes/1", nil)
	require.Error(t, err)
	assert.True(t, rbxcloud.IsNetwork(err))
}

func TestClientSingleAttempt(t *testing.T) {
	t.Parallel()

	var calls int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key")

	_, err := client.Get(context.Background(), "/cloud/v2/universes/1", nil)
	require.Error(t, err)
	assert.Equal(t, 1, calls, "a failing request must not be retried")
}

func TestClientAbsoluteURLPassthrough(t *testing.T) {
	t.Parallel()

	var gotKey string

	legacy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer legacy.Close()

	client := NewClient("https://apis.example.invalid", "key")

	resp, err := client.Get(context.Background(), legacy.URL+"/v1/universes/1/badges", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "key", gotKey, "header injection applies on the legacy host too")
}

type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *recordingLogger) Debug(msg string, _ map[string]interface{}) { l.record(msg) }
func (l *recordingLogger) Info(msg string, _ map[string]interface{})  { l.record(msg) }
func (l *recordingLogger) Warn(msg string, _ map[string]interface{})  { l.record(msg) }
func (l *recordingLogger) Error(msg string, _ map[string]interface{}) { l.record(msg) }

func TestClientDebugLogging(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	logger := &recordingLogger{}
	client := NewClient(server.URL, "key", WithLogger(logger), WithDebug(true))

	_, err := client.Get(context.Background(), "/cloud/v2/universes/1", nil)
	require.NoError(t, err)

	assert.Contains(t, logger.messages, "HTTP Request")
	assert.Contains(t, logger.messages, "HTTP Response")
}

func TestClientCustomUserAgent(t *testing.T) {
	t.Parallel()

	var gotAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", WithUserAgent("rbxsync-test/1.0"))

	_, err := client.Get(context.Background(), "/x", nil)
	require.NoError(t, err)
	assert.Equal(t, "rbxsync-test/1.0", gotAgent)
}

func TestClientPerRequestTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(150 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", WithTimeout(30*time.Millisecond))

	// The client-wide timeout fires first on an ordinary request.
	_, err := client.Get(context.Background(), "/x", nil)
	require.Error(t, err)
	assert.True(t, rbxcloud.IsNetwork(err))

	// A request-level timeout replaces it for that request only.
	resp, err := client.Do(context.Background(), &Request{
		Method:  http.MethodGet,
		Path:    "/x",
		Timeout: time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, err = client.Get(context.Background(), "/x", nil)
	require.Error(t, err)
}
