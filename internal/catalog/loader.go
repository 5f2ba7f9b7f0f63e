package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/lcoutinho/valor-explorer/internal/models"
)

// Loader reads the player catalog from a local file or an HTTP URL. Remote
// fetches go through a circuit breaker so a flapping source does not hammer
// the network on scheduled refreshes.
type Loader struct {
	source     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *logrus.Logger
}

func NewLoader(source string, logger *logrus.Logger) *Loader {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "catalog-loader",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker":    name,
				"from_state": from.String(),
				"to_state":   to.String(),
			}).Warn("Catalog loader circuit breaker state changed")
		},
	})

	return &Loader{
		source: source,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		breaker: cb,
		logger:  logger,
	}
}

// Load reads and decodes the catalog. Records with an empty team or name are
// skipped and counted; everything else is taken as-is.
func (l *Loader) Load(ctx context.Context) ([]models.Player, error) {
	data, err := l.read(ctx)
	if err != nil {
		return nil, err
	}

	var records []models.Player
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	players := make([]models.Player, 0, len(records))
	skipped := 0
	for _, r := range records {
		if r.Team == "" || r.Name == "" {
			skipped++
			continue
		}
		players = append(players, r)
	}

	if skipped > 0 {
		l.logger.WithField("skipped", skipped).Warn("Catalog contained incomplete records")
	}
	l.logger.WithFields(logrus.Fields{
		"source":  l.source,
		"players": len(players),
	}).Info("Catalog loaded")

	return players, nil
}

func (l *Loader) read(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(l.source, "http://") || strings.HasPrefix(l.source, "https://") {
		result, err := l.breaker.Execute(func() (interface{}, error) {
			return l.fetch(ctx)
		})
		if err != nil {
			return nil, err
		}
		return result.([]byte), nil
	}

	data, err := os.ReadFile(l.source)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return data, nil
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog fetch returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
