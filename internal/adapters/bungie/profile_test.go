package bungie

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"powerboard/internal/application"
	"powerboard/internal/domain"
)

type memTokenStore struct{ tok *oauth2.Token }

func (s *memTokenStore) LoadToken() (*oauth2.Token, error) { return s.tok, nil }
func (s *memTokenStore) SaveToken(tok *oauth2.Token) error { s.tok = tok; return nil }

type memMembershipStore struct {
	m   *domain.Membership
	set bool
}

func (s *memMembershipStore) LoadMembership() (domain.Membership, bool, error) {
	if !s.set {
		return domain.Membership{}, false, nil
	}
	return *s.m, true, nil
}

func (s *memMembershipStore) SaveMembership(m domain.Membership) error {
	s.m = &m
	s.set = true
	return nil
}

type noopOpener struct{}

func (noopOpener) OpenURL(string) error { return nil }

const profileBody = `{
	"Response": {
		"characters": {"data": {
			"char-hunter": {
				"characterId": "char-hunter",
				"light": 1810,
				"classHash": 671679327,
				"emblemBackgroundColor": {"red": 16, "green": 32, "blue": 48, "alpha": 255},
				"dateLastPlayed": "2026-08-27T20:00:00Z"
			},
			"char-warlock": {
				"characterId": "char-warlock",
				"light": 1815,
				"classHash": 2271682572,
				"dateLastPlayed": "2026-08-26T10:00:00Z"
			}
		}},
		"profileProgression": {"data": {"seasonalArtifact": {"powerBonus": 22}}}
	},
	"ErrorCode": 1
}`

func newTestSource(t *testing.T, baseURL string, manifest *domain.Manifest) *CharacterSource {
	t.Helper()
	client := NewClient("k", WithBaseURL(baseURL))
	gw := NewGateway(client, "client-id", &memTokenStore{}, &memMembershipStore{}, noopOpener{}, nil)
	gw.token = &oauth2.Token{AccessToken: "tok"}
	gw.SetSelectedMembership(domain.Membership{ID: "member-1", Type: 3})

	svc := NewManifestService(client, &memManifestStore{}, nil)
	svc.cached = manifest
	return NewCharacterSource(client, gw, svc, nil)
}

func TestCharacterSource_GetCharacterData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Platform/Destiny2/3/Profile/member-1/", r.URL.Path)
		assert.Equal(t, "200,104", r.URL.Query().Get("components"))
		w.Write([]byte(profileBody))
	}))
	defer srv.Close()

	manifest := &domain.Manifest{
		Version:    "v1",
		ClassNames: map[uint32]string{671679327: "Hunter", 2271682572: "Warlock"},
	}
	source := newTestSource(t, srv.URL, manifest)

	var set domain.SnapshotSet
	var fetchingSeq []bool
	err := source.GetCharacterData(context.Background(),
		func(s domain.SnapshotSet) { set = s },
		func(f bool) { fetchingSeq = append(fetchingSeq, f) },
	)
	require.NoError(t, err)

	require.Len(t, set, 2)
	// Most recently played first: that is the default display order.
	assert.Equal(t, []string{"char-hunter", "char-warlock"}, set.IDs())
	assert.Equal(t, domain.CharacterSnapshot{
		ID:            "char-hunter",
		Class:         "Hunter",
		Light:         1810,
		ArtifactBonus: 22,
		EmblemColor:   "#102030",
	}, set[0])
	assert.Equal(t, 22, set[1].ArtifactBonus, "artifact bonus is account-wide")
	assert.Equal(t, "", set[1].EmblemColor)

	assert.Equal(t, []bool{true, false}, fetchingSeq)
}

func TestCharacterSource_NoManifestFallsBackToGuardian(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(profileBody))
	}))
	defer srv.Close()

	source := newTestSource(t, srv.URL, nil)

	var set domain.SnapshotSet
	err := source.GetCharacterData(context.Background(), func(s domain.SnapshotSet) { set = s }, func(bool) {})
	require.NoError(t, err)
	assert.Equal(t, "Guardian", set[0].Class)
}

func TestCharacterSource_FetchingBracketsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	source := newTestSource(t, srv.URL, nil)

	var fetchingSeq []bool
	err := source.GetCharacterData(context.Background(),
		func(domain.SnapshotSet) { t.Fatal("no snapshot may be published on failure") },
		func(f bool) { fetchingSeq = append(fetchingSeq, f) },
	)
	require.Error(t, err)
	assert.Equal(t, domain.CategoryUnavailable, domain.Classify(err))
	assert.Equal(t, []bool{true, false}, fetchingSeq)
}

func TestCharacterSource_RequiresMembership(t *testing.T) {
	client := NewClient("k")
	gw := NewGateway(client, "client-id", &memTokenStore{}, &memMembershipStore{}, noopOpener{}, nil)
	svc := NewManifestService(client, &memManifestStore{}, nil)
	source := NewCharacterSource(client, gw, svc, nil)

	err := source.GetCharacterData(context.Background(), func(domain.SnapshotSet) {}, func(bool) {})
	assert.ErrorIs(t, err, application.ErrNoMembership)
}
