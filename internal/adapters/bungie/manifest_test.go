package bungie

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"powerboard/internal/domain"
)

type memManifestStore struct {
	m       *domain.Manifest
	loadErr error
	saves   int
}

func (s *memManifestStore) CachedVersion() (string, error) {
	if s.m == nil {
		return "", nil
	}
	return s.m.Version, nil
}

func (s *memManifestStore) Load() (*domain.Manifest, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.m, nil
}

func (s *memManifestStore) Save(m *domain.Manifest) error {
	s.m = m
	s.saves++
	return nil
}

func manifestServer(t *testing.T, version string, fetches *int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/Platform/Destiny2/Manifest/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"Response":{"version":%q,"jsonWorldComponentContentPaths":{"en":{"DestinyClassDefinition":"/common/destiny2_content/json/classes.json"}}},"ErrorCode":1}`, version)
	})
	mux.HandleFunc("/common/destiny2_content/json/classes.json", func(w http.ResponseWriter, r *http.Request) {
		if fetches != nil {
			*fetches++
		}
		w.Write([]byte(`{
			"671679327": {"displayProperties":{"name":"Hunter"},"classType":1,"hash":671679327},
			"2271682572": {"displayProperties":{"name":"Warlock"},"classType":2,"hash":2271682572},
			"99999": {"displayProperties":{"name":""},"classType":0,"hash":99999,"redacted":true}
		}`))
	})
	return httptest.NewServer(mux)
}

func drain(ch <-chan domain.ManifestStage) []domain.ManifestStage {
	var stages []domain.ManifestStage
	for {
		select {
		case s := <-ch:
			stages = append(stages, s)
		default:
			return stages
		}
	}
}

func TestManifestService_FetchParseStore(t *testing.T) {
	var fetches int
	srv := manifestServer(t, "v1", &fetches)
	defer srv.Close()

	store := &memManifestStore{}
	svc := NewManifestService(NewClient("k", WithBaseURL(srv.URL)), store, nil)
	stages := svc.Subscribe()

	m, err := svc.GetManifest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "v1", m.Version)
	assert.Equal(t, "Hunter", m.ClassNames[671679327])
	assert.Equal(t, "Warlock", m.ClassNames[2271682572])
	assert.NotContains(t, m.ClassNames, uint32(99999), "redacted definitions are skipped")
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, m, svc.Cached())

	assert.Equal(t, []domain.ManifestStage{
		domain.StageCheckVersion,
		domain.StageFetchRemote,
		domain.StageParse,
		domain.StageStore,
		domain.StageReady,
	}, drain(stages))
}

func TestManifestService_CacheHitSkipsFetch(t *testing.T) {
	var fetches int
	srv := manifestServer(t, "v1", &fetches)
	defer srv.Close()

	store := &memManifestStore{m: &domain.Manifest{Version: "v1", ClassNames: map[uint32]string{1: "Titan"}}}
	svc := NewManifestService(NewClient("k", WithBaseURL(srv.URL)), store, nil)
	stages := svc.Subscribe()

	m, err := svc.GetManifest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Titan", m.ClassNames[1])
	assert.Equal(t, 0, fetches, "matching version must load from cache")
	assert.Equal(t, []domain.ManifestStage{
		domain.StageCheckVersion,
		domain.StageLoadCached,
		domain.StageReady,
	}, drain(stages))
}

func TestManifestService_VersionMovedRefetches(t *testing.T) {
	var fetches int
	srv := manifestServer(t, "v2", &fetches)
	defer srv.Close()

	store := &memManifestStore{m: &domain.Manifest{Version: "v1"}}
	svc := NewManifestService(NewClient("k", WithBaseURL(srv.URL)), store, nil)

	m, err := svc.GetManifest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "v2", m.Version)
	assert.Equal(t, 1, fetches)
}

func TestManifestService_CorruptCacheFallsBackToFetch(t *testing.T) {
	var fetches int
	srv := manifestServer(t, "v1", &fetches)
	defer srv.Close()

	store := &memManifestStore{m: &domain.Manifest{Version: "v1"}, loadErr: errors.New("bad blob")}
	svc := NewManifestService(NewClient("k", WithBaseURL(srv.URL)), store, nil)

	m, err := svc.GetManifest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "Hunter", m.ClassNames[671679327])
}

func TestManifestService_ErrorPublishesStageError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ErrorCode":5,"ErrorStatus":"SystemDisabled"}`))
	}))
	defer srv.Close()

	svc := NewManifestService(NewClient("k", WithBaseURL(srv.URL)), &memManifestStore{}, nil)
	stages := svc.Subscribe()

	_, err := svc.GetManifest(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.CategorySystemDisabled, domain.Classify(err))

	got := drain(stages)
	require.NotEmpty(t, got)
	assert.Equal(t, domain.StageError, got[len(got)-1])
}
