package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalogFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "players.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadSkipsAndCountsIncompleteRecords(t *testing.T) {
	path := writeCatalogFile(t, `[
		{"team": "Palmeiras", "pos": "GK", "name": "Weverton", "rating": 87, "market_value": 150},
		{"team": "", "pos": "ZG", "name": "Sem Clube", "rating": 70, "market_value": 50},
		{"team": "Flamengo", "pos": "CA", "name": "", "rating": 80, "market_value": 90},
		{"team": "Flamengo", "pos": "CA", "name": "Pedro", "rating": 88, "market_value": 250}
	]`)

	logger, hook := test.NewNullLogger()
	loader := NewLoader(path, logger)

	players, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, players, 2)
	assert.Equal(t, "Weverton", players[0].Name)
	assert.Equal(t, "Pedro", players[1].Name)

	var warned bool
	for _, entry := range hook.Entries {
		if entry.Level == logrus.WarnLevel {
			warned = true
			assert.Equal(t, 2, entry.Data["skipped"])
		}
	}
	assert.True(t, warned)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := writeCatalogFile(t, `{"not": "an array"`)

	logger, _ := test.NewNullLogger()
	loader := NewLoader(path, logger)

	_, err := loader.Load(context.Background())
	assert.ErrorContains(t, err, "decode")
}

func TestLoadMissingFile(t *testing.T) {
	logger, _ := test.NewNullLogger()
	loader := NewLoader(filepath.Join(t.TempDir(), "missing.json"), logger)

	_, err := loader.Load(context.Background())
	assert.Error(t, err)
}

func TestLoadFromHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"team": "Palmeiras", "pos": "GK", "name": "Weverton", "rating": 87, "market_value": 150}]`))
	}))
	defer server.Close()

	logger, _ := test.NewNullLogger()
	loader := NewLoader(server.URL, logger)

	players, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Weverton", players[0].Name)
}

func TestLoadHTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	logger, _ := test.NewNullLogger()
	loader := NewLoader(server.URL, logger)

	_, err := loader.Load(context.Background())
	assert.ErrorContains(t, err, "status 500")
}

func TestLoadBreakerOpensAfterRepeatedFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	logger, _ := test.NewNullLogger()
	loader := NewLoader(server.URL, logger)

	// Three consecutive failures push the failure ratio past the trip point.
	for i := 0; i < 3; i++ {
		_, err := loader.Load(context.Background())
		require.Error(t, err)
	}

	_, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}
