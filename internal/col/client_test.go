package col

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileLive(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/api/cost-of-living/Austin, TX", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"city":"Austin, TX","housing":1800,"food":500,"transportation":200,"utilities":150,"healthcare":100,"other":250}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 5*time.Second)
	profile := client.Profile("Austin, TX")

	assert.Equal(t, "live", profile.Source)
	assert.Equal(t, 1800.0, profile.Housing)
	// Total is derived when the API omits it.
	assert.Equal(t, 3000.0, profile.Total)

	// Second lookup is served by the cache.
	_ = client.Profile("Austin, TX")
	assert.Equal(t, int64(1), hits.Load())
}

func TestProfileFallbackFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	fallback := filepath.Join(t.TempDir(), "col_fallback.json")
	require.NoError(t, os.WriteFile(fallback, []byte(`{
		"cities": [
			{"city": "Boise, ID", "housing": 1200, "food": 350, "transportation": 120, "utilities": 90, "healthcare": 70, "other": 120}
		]
	}`), 0o644))

	client := NewClient(srv.URL, fallback, 5*time.Second)

	// Matching is case-insensitive.
	profile := client.Profile("boise, id")
	assert.Equal(t, "fallback", profile.Source)
	assert.Equal(t, 1200.0, profile.Housing)
	assert.Equal(t, 1950.0, profile.Total)
}

func TestProfileGenericLastResort(t *testing.T) {
	// Unreachable API, no fallback file.
	client := NewClient("http://127.0.0.1:1", "", 1*time.Second)
	profile := client.Profile("Nowhere, KS")

	assert.Equal(t, "generic", profile.Source)
	assert.Equal(t, "Nowhere, KS", profile.City)
	assert.Equal(t, 2380.0, profile.Total)
}

func TestProfileFallbackCityMiss(t *testing.T) {
	fallback := filepath.Join(t.TempDir(), "col_fallback.json")
	require.NoError(t, os.WriteFile(fallback, []byte(`{"cities":[{"city":"Reno, NV","housing":1100}]}`), 0o644))

	client := NewClient("http://127.0.0.1:1", fallback, 1*time.Second)
	profile := client.Profile("Elsewhere, OR")
	assert.Equal(t, "generic", profile.Source)
}
