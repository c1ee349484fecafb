package bungie

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"powerboard/internal/domain"
)

func TestClient_Get_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))
		w.Write([]byte(`{"Response":{"version":"v42"},"ErrorCode":1,"ErrorStatus":"Success"}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	var info manifestInfo
	require.NoError(t, c.get(context.Background(), "/Platform/Destiny2/Manifest/", "", &info))
	assert.Equal(t, "v42", info.Version)
}

func TestClient_Get_Bearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"Response":{},"ErrorCode":1}`))
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))
	require.NoError(t, c.get(context.Background(), "/x", "tok", nil))
}

func TestClient_Get_SystemDisabled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ErrorCode":5,"ErrorStatus":"SystemDisabled","Message":"down for maintenance"}`))
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))
	err := c.get(context.Background(), "/x", "", nil)

	require.Error(t, err)
	assert.Equal(t, domain.CategorySystemDisabled, domain.Classify(err))
}

func TestClient_Get_503(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))
	err := c.get(context.Background(), "/x", "", nil)

	require.Error(t, err)
	assert.Equal(t, domain.CategoryUnavailable, domain.Classify(err))
}

func TestClient_Get_PlatformError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ErrorCode":99,"ErrorStatus":"WebAuthRequired","Message":"login"}`))
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))
	err := c.get(context.Background(), "/x", "", nil)

	require.Error(t, err)
	assert.Equal(t, domain.CategoryOther, domain.Classify(err))
	assert.Contains(t, err.Error(), "WebAuthRequired")
}

func TestRGBA_Hex(t *testing.T) {
	assert.Equal(t, "#1a2b3c", rgba{Red: 0x1a, Green: 0x2b, Blue: 0x3c}.Hex())
	assert.Equal(t, "", rgba{}.Hex(), "all-zero color means no emblem data")
}
