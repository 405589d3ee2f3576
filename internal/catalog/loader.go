package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/decorvista/ar-backend/internal/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// SeedLoader fetches a catalog seed list from a remote model registry.
// Callers fall back to DefaultSeed when the fetch fails.
type SeedLoader struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewSeedLoader builds a loader for the given registry base URL.
func NewSeedLoader(baseURL string, logger *zap.Logger) *SeedLoader {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Accept", "application/json")

	return &SeedLoader{
		httpClient: client,
		logger:     logger,
	}
}

// Fetch downloads the seed list. Entries missing a model id are dropped
// rather than failing the whole load.
func (l *SeedLoader) Fetch(ctx context.Context) ([]models.CatalogEntry, error) {
	var entries []models.CatalogEntry
	resp, err := l.httpClient.R().
		SetContext(ctx).
		SetResult(&entries).
		Get("/")
	if err != nil {
		return nil, fmt.Errorf("fetch catalog seed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch catalog seed: unexpected status %d", resp.StatusCode())
	}

	valid := entries[:0]
	for _, e := range entries {
		if e.ModelID == "" {
			l.logger.Warn("skipping seed entry without model_id", zap.String("name", e.Name))
			continue
		}
		valid = append(valid, e)
	}
	l.logger.Info("remote catalog seed fetched", zap.Int("entries", len(valid)))
	return valid, nil
}
