package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/korjavin/smartpantry/pkg/config"
	"github.com/korjavin/smartpantry/pkg/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		IngredientDelimiter: ";",
		TopN:                3,
	}
}

func TestNewInMemoryUsesSamples(t *testing.T) {
	a, err := New(testConfig(), Options{InMemory: true})
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, 5, a.Catalog.Len())
	assert.Nil(t, a.AI)

	profiles, err := a.Profiles.List()
	require.NoError(t, err)
	assert.Len(t, profiles, 5)

	results := a.Suggest.Suggest([]string{"egg", "cheese"}, suggest.Options{})
	require.Len(t, results, 1)
	assert.Equal(t, "Cheese Omelette", results[0].Title)
}

func TestNewLoadsFiles(t *testing.T) {
	dir := t.TempDir()

	catalogPath := filepath.Join(dir, "recipes.csv")
	require.NoError(t, os.WriteFile(catalogPath, []byte(
		"RecipeID,Title,Ingredients,Steps,Cooking_Time,Difficulty,Tags\n"+
			"1,Toast,bread;butter,Toast the bread.,5,easy,quick\n"), 0o644))

	profilesPath := filepath.Join(dir, "profiles.csv")
	require.NoError(t, os.WriteFile(profilesPath, []byte(
		"UserID,Name,Ingredients,Preferences,Dietary_Restrictions\n"+
			"7,Sam,bread;jam,sweet,none\n"), 0o644))

	cfg := testConfig()
	cfg.CatalogPath = catalogPath
	cfg.ProfilesPath = profilesPath

	a, err := New(cfg, Options{InMemory: true})
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, 1, a.Catalog.Len())

	p, err := a.Profiles.GetByName("sam")
	require.NoError(t, err)
	assert.Equal(t, []string{"bread", "jam"}, p.Ingredients)
}

func TestNewFailsOnMissingProfilesFile(t *testing.T) {
	cfg := testConfig()
	cfg.ProfilesPath = filepath.Join(t.TempDir(), "missing.csv")

	_, err := New(cfg, Options{InMemory: true})
	assert.Error(t, err)
}
