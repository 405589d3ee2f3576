package catalog

import (
	"errors"
	"strings"
	"sync"

	"github.com/decorvista/ar-backend/internal/models"

	"go.uber.org/zap"
)

// ErrNotFound is returned when no catalog entry has the requested model id.
var ErrNotFound = errors.New("catalog entry not found")

// ErrEmptyQuery is returned by Search for an empty or blank query string.
var ErrEmptyQuery = errors.New("search query must not be empty")

// Catalog is the read-only registry of furniture descriptors, loaded once at
// startup. The only mutation after seeding is the per-entry usage counter.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]*models.CatalogEntry // modelID -> entry
	order   []string                        // seed order, drives List/Search output
	logger  *zap.Logger
}

// New builds a catalog from a seed list. Later entries with a duplicate
// model id overwrite earlier ones, keeping the first position in seed order.
func New(seed []models.CatalogEntry, logger *zap.Logger) *Catalog {
	c := &Catalog{
		entries: make(map[string]*models.CatalogEntry, len(seed)),
		order:   make([]string, 0, len(seed)),
		logger:  logger,
	}
	for _, e := range seed {
		entry := e
		if _, ok := c.entries[entry.ModelID]; !ok {
			c.order = append(c.order, entry.ModelID)
		}
		c.entries[entry.ModelID] = &entry
	}
	logger.Info("model catalog loaded", zap.Int("entries", len(c.entries)))
	return c
}

// Get returns a copy of the entry for modelID.
func (c *Catalog) Get(modelID string) (models.CatalogEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[modelID]
	if !ok {
		return models.CatalogEntry{}, ErrNotFound
	}
	return *entry, nil
}

// List returns entries in seed order, filtered by category if one is given.
func (c *Catalog) List(category string) []models.CatalogEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]models.CatalogEntry, 0, len(c.order))
	for _, id := range c.order {
		entry := c.entries[id]
		if category != "" && entry.Category != category {
			continue
		}
		result = append(result, *entry)
	}
	return result
}

// Search matches the query case-insensitively against name, category and
// description, in seed order with no further ranking.
func (c *Catalog) Search(query string) ([]models.CatalogEntry, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, ErrEmptyQuery
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]models.CatalogEntry, 0)
	for _, id := range c.order {
		entry := c.entries[id]
		if strings.Contains(strings.ToLower(entry.Name), q) ||
			strings.Contains(strings.ToLower(entry.Category), q) ||
			strings.Contains(strings.ToLower(entry.Description), q) {
			result = append(result, *entry)
		}
	}
	return result, nil
}

// IncrementUsage bumps the usage counter for modelID. Unknown ids are a
// silent no-op: usage counting is advisory, not load-bearing.
func (c *Catalog) IncrementUsage(modelID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[modelID]; ok {
		entry.UsageCount++
	}
}

// Categories returns the closed category set for client pickers.
func (c *Catalog) Categories() []string {
	out := make([]string, len(models.Categories))
	copy(out, models.Categories)
	return out
}

// Len returns the number of seeded entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
