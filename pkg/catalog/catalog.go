// Package catalog loads the recipe catalog and exposes it as an immutable,
// process-wide handle. Ingredient strings are split into tokens here so that
// the matcher only ever sees discrete ingredient names.
package catalog

import (
	"errors"
	"sync"

	"github.com/korjavin/smartpantry/pkg/models"
	"github.com/korjavin/smartpantry/pkg/stats"
)

var (
	// ErrEmptyCatalog is returned when a source yields no recipes
	ErrEmptyCatalog = errors.New("catalog is empty")
	// ErrNotInitialized is returned by Current before Init was called
	ErrNotInitialized = errors.New("catalog is not initialized")
	// ErrAlreadyInitialized is returned by Init when the process catalog is already set
	ErrAlreadyInitialized = errors.New("catalog is already initialized")
)

// Catalog is a read-only collection of recipes in source order
type Catalog struct {
	recipes []models.Recipe
	byID    map[int64]int
	stats   models.CatalogStats
}

// New builds a catalog from a deep copy of recipes
func New(recipes []models.Recipe) (*Catalog, error) {
	if len(recipes) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		recipes: make([]models.Recipe, len(recipes)),
		byID:    make(map[int64]int, len(recipes)),
	}
	for i, r := range recipes {
		c.recipes[i] = cloneRecipe(r)
		c.byID[r.ID] = i
	}
	c.stats = stats.CatalogStats(c.recipes)
	return c, nil
}

// Recipes returns a copy of the recipes in catalog order
func (c *Catalog) Recipes() []models.Recipe {
	out := make([]models.Recipe, len(c.recipes))
	for i, r := range c.recipes {
		out[i] = cloneRecipe(r)
	}
	return out
}

// View returns the recipes without copying. Callers must not modify the result.
func (c *Catalog) View() []models.Recipe {
	return c.recipes
}

// Len returns the number of recipes
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// Get returns a copy of the recipe with the given ID
func (c *Catalog) Get(id int64) (models.Recipe, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Recipe{}, false
	}
	return cloneRecipe(c.recipes[i]), true
}

// Stats returns the catalog statistics computed at construction
func (c *Catalog) Stats() models.CatalogStats {
	return c.stats
}

func cloneRecipe(r models.Recipe) models.Recipe {
	r.Ingredients = append([]string(nil), r.Ingredients...)
	r.Tags = append([]string(nil), r.Tags...)
	return r
}

var (
	current *Catalog
	mu      sync.RWMutex
)

// Init sets the process-wide catalog. It must run once at startup before the first request.
func Init(c *Catalog) error {
	if c == nil {
		return ErrEmptyCatalog
	}
	mu.Lock()
	defer mu.Unlock()
	if current != nil {
		return ErrAlreadyInitialized
	}
	current = c
	return nil
}

// Current returns the process-wide catalog
func Current() (*Catalog, error) {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return nil, ErrNotInitialized
	}
	return current, nil
}

// reset clears the process-wide catalog; tests only
func reset() {
	mu.Lock()
	current = nil
	mu.Unlock()
}
