package analytics

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"powerboard/internal/domain"
)

func TestReporter_ReportSendsDimensions(t *testing.T) {
	var mu sync.Mutex
	var got []map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		hit := map[string]string{}
		for k := range r.Form {
			hit[k] = r.Form.Get(k)
		}
		mu.Lock()
		got = append(got, hit)
		mu.Unlock()
	}))
	defer srv.Close()

	r := NewReporter("UA-1", true, WithEndpoint(srv.URL))
	r.Report(domain.PowerAggregates{Overall: 720, Artifact: 50, Total: 770})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "720", got[0]["cd1"])
	assert.Equal(t, "50", got[0]["cd2"])
	assert.Equal(t, "770", got[0]["cd3"])
	assert.Equal(t, "UA-1", got[0]["tid"])
	assert.NotEmpty(t, got[0]["cid"])
}

func TestReporter_DisabledSendsNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("disabled reporter must not send")
	}))
	defer srv.Close()

	r := NewReporter("UA-1", false, WithEndpoint(srv.URL))
	r.Report(domain.PowerAggregates{Overall: 1})
	r.ReportEvent("ui", "drop", "")

	time.Sleep(50 * time.Millisecond)
}

func TestReporter_FailureIsSwallowed(t *testing.T) {
	r := NewReporter("UA-1", true, WithEndpoint("http://127.0.0.1:1")) // nothing listens

	// Must not panic or block.
	r.ReportEvent("ui", "drop", "char-1")
	time.Sleep(50 * time.Millisecond)
}
