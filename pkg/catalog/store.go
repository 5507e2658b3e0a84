package catalog

import (
	"fmt"

	"github.com/korjavin/smartpantry/pkg/logger"
	"github.com/korjavin/smartpantry/pkg/models"
	"github.com/korjavin/smartpantry/pkg/storage"
	"github.com/pkg/errors"
)

const recipePrefix = "recipe:"

// Source names reported by Bootstrap
const (
	SourceFile   = "file"
	SourceStore  = "store"
	SourceSample = "sample"
)

// recipeKey keys recipes by catalog position so that a prefix scan returns them in source order
func recipeKey(position int) string {
	return fmt.Sprintf("%s%06d", recipePrefix, position)
}

// SaveToStore replaces the stored catalog with recipes
func SaveToStore(store *storage.Store, recipes []models.Recipe) error {
	keys, err := store.List(recipePrefix)
	if err != nil {
		return fmt.Errorf("failed to list stored recipes: %w", err)
	}
	for _, key := range keys {
		if err := store.Delete(key); err != nil {
			return fmt.Errorf("failed to delete stored recipe %s: %w", key, err)
		}
	}

	values := make(map[string]interface{}, len(recipes))
	for i, recipe := range recipes {
		values[recipeKey(i)] = recipe
	}
	if err := store.SetMany(values); err != nil {
		return fmt.Errorf("failed to save recipes: %w", err)
	}
	return nil
}

// LoadFromStore reads the stored catalog in source order
func LoadFromStore(store *storage.Store) ([]models.Recipe, error) {
	keys, err := store.List(recipePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list stored recipes: %w", err)
	}
	if len(keys) == 0 {
		return nil, ErrEmptyCatalog
	}

	recipes := make([]models.Recipe, 0, len(keys))
	for _, key := range keys {
		var recipe models.Recipe
		if err := store.Get(key, &recipe); err != nil {
			// A half-readable catalog is worse than none
			return nil, fmt.Errorf("failed to read stored recipe %s: %w", key, err)
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

// Bootstrap picks the catalog source: the CSV file when path is set, otherwise
// the recipes already in the store, otherwise the built-in sample, which is then
// written to the store. A nil store skips the store entirely.
func Bootstrap(store *storage.Store, path, sep string) (*Catalog, string, error) {
	log := logger.New("catalog")

	var (
		recipes []models.Recipe
		source  string
		err     error
	)

	switch {
	case path != "":
		recipes, err = LoadFile(path, sep)
		if err != nil {
			return nil, "", err
		}
		source = SourceFile
		if store != nil {
			if err := SaveToStore(store, recipes); err != nil {
				return nil, "", err
			}
		}
	case store != nil:
		recipes, err = LoadFromStore(store)
		source = SourceStore
		if errors.Is(err, ErrEmptyCatalog) {
			log.Info("No stored recipes, seeding the built-in sample catalog")
			recipes = Sample()
			source = SourceSample
			err = SaveToStore(store, recipes)
		}
		if err != nil {
			return nil, "", err
		}
	default:
		recipes = Sample()
		source = SourceSample
	}

	c, err := New(recipes)
	if err != nil {
		return nil, "", err
	}

	log.Info("Loaded %d recipes from %s", c.Len(), source)
	return c, source, nil
}
