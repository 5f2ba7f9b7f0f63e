package catalog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcoutinho/valor-explorer/internal/models"
	"github.com/lcoutinho/valor-explorer/internal/services"
)

func TestRefreshReplacesCatalog(t *testing.T) {
	path := writeCatalogFile(t, `[
		{"team": "Palmeiras", "pos": "GK", "name": "Weverton", "rating": 87, "market_value": 150},
		{"team": "Flamengo", "pos": "CA", "name": "Pedro", "rating": 88, "market_value": 250}
	]`)

	logger, _ := test.NewNullLogger()
	store := NewStore()
	store.Replace([]models.Player{{Team: "Botafogo", Pos: "GK", Name: "John", Rating: 84}})

	r := NewRefresher(store, NewLoader(path, logger), services.NewCacheService(nil), logger, time.Minute)
	r.refresh()

	assert.Equal(t, 2, store.Len())
	_, found := store.Find("Botafogo", "John")
	assert.False(t, found)
}

func TestRefreshWithDisabledCacheDoesNotPanic(t *testing.T) {
	path := writeCatalogFile(t, `[
		{"team": "Palmeiras", "pos": "GK", "name": "Weverton", "rating": 87, "market_value": 150}
	]`)

	logger, _ := test.NewNullLogger()
	store := NewStore()
	cache := services.NewCacheService(nil)
	require.False(t, cache.Enabled())

	r := NewRefresher(store, NewLoader(path, logger), cache, logger, time.Minute)
	r.refresh()

	assert.Equal(t, 1, store.Len())
}

func TestRefreshKeepsCatalogOnLoadFailure(t *testing.T) {
	logger, hook := test.NewNullLogger()
	store := NewStore()
	store.Replace([]models.Player{{Team: "Palmeiras", Pos: "GK", Name: "Weverton", Rating: 87}})

	missing := filepath.Join(t.TempDir(), "missing.json")
	r := NewRefresher(store, NewLoader(missing, logger), services.NewCacheService(nil), logger, time.Minute)
	r.refresh()

	assert.Equal(t, 1, store.Len())
	require.NotEmpty(t, hook.Entries)
	assert.Contains(t, hook.LastEntry().Message, "refresh failed")
}

func TestRefresherStartRequiresPositiveInterval(t *testing.T) {
	logger, _ := test.NewNullLogger()
	r := NewRefresher(NewStore(), NewLoader("players.json", logger), services.NewCacheService(nil), logger, 0)

	assert.Error(t, r.Start())
}

func TestRefresherStartTwiceFails(t *testing.T) {
	logger, _ := test.NewNullLogger()
	r := NewRefresher(NewStore(), NewLoader("players.json", logger), services.NewCacheService(nil), logger, time.Hour)

	require.NoError(t, r.Start())
	defer r.Stop()

	assert.Error(t, r.Start())
}
