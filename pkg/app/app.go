// Package app wires storage, catalog and services together for the binaries in cmd/.
package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/korjavin/smartpantry/pkg/catalog"
	"github.com/korjavin/smartpantry/pkg/config"
	"github.com/korjavin/smartpantry/pkg/logger"
	"github.com/korjavin/smartpantry/pkg/messages"
	"github.com/korjavin/smartpantry/pkg/models"
	"github.com/korjavin/smartpantry/pkg/openai"
	"github.com/korjavin/smartpantry/pkg/pantry"
	"github.com/korjavin/smartpantry/pkg/profile"
	"github.com/korjavin/smartpantry/pkg/stats"
	"github.com/korjavin/smartpantry/pkg/storage"
	"github.com/korjavin/smartpantry/pkg/suggest"
)

// GCInterval is how often the badger value log is collected
const GCInterval = 10 * time.Minute

// Options control how the application is assembled
type Options struct {
	// InMemory keeps everything in an in-memory store instead of DataDir
	InMemory bool
}

// App holds the wired services
type App struct {
	Config   *config.Config
	Store    *storage.Store
	Catalog  *catalog.Catalog
	AI       *openai.Client // nil when no API key is configured
	Profiles *profile.Service
	Pantry   *pantry.Service
	Stats    *stats.Service
	Suggest  *suggest.Service
	Messages *messages.Service
}

// New opens the store, loads the catalog and profiles and builds every service
func New(cfg *config.Config, opts Options) (*App, error) {
	log := logger.New("app")

	var (
		store *storage.Store
		err   error
	)
	if opts.InMemory {
		store, err = storage.NewInMemory()
	} else {
		store, err = storage.New(cfg.DataDir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	a, err := build(cfg, store)
	if err != nil {
		store.Close()
		return nil, err
	}
	log.Info("Catalog ready with %d recipes", a.Catalog.Len())
	return a, nil
}

func build(cfg *config.Config, store *storage.Store) (*App, error) {
	log := logger.New("app")

	c, source, err := catalog.Bootstrap(store, cfg.CatalogPath, cfg.IngredientDelimiter)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	log.Info("Loaded catalog from %s", source)

	if err := catalog.Init(c); errors.Is(err, catalog.ErrAlreadyInitialized) {
		// a second App in the same process keeps the first catalog as the process-wide one
		log.Warn("Catalog already initialized, keeping the existing one")
	} else if err != nil {
		return nil, err
	}

	profiles := profile.New(store)
	if err := loadProfiles(profiles, cfg.ProfilesPath, cfg.IngredientDelimiter); err != nil {
		return nil, err
	}

	var ai *openai.Client
	var generator messages.Generator
	if cfg.AIEnabled() {
		ai = openai.New(cfg.OpenAIAPIKey, cfg.OpenAIAPIBase, cfg.OpenAIModel)
		generator = ai
	}

	pantryService := pantry.New(store)
	statsService := stats.New(store)

	return &App{
		Config:   cfg,
		Store:    store,
		Catalog:  c,
		AI:       ai,
		Profiles: profiles,
		Pantry:   pantryService,
		Stats:    statsService,
		Suggest:  suggest.New(c, pantryService, statsService, cfg.TopN),
		Messages: messages.New(generator),
	}, nil
}

// loadProfiles stores the profiles from path, or seeds the built-in ones into an empty store
func loadProfiles(profiles *profile.Service, path, sep string) error {
	if path == "" {
		_, err := profiles.Seed(profile.Sample())
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open profiles file: %w", err)
	}
	defer f.Close()

	loaded, err := profile.LoadCSV(f, sep)
	if err != nil {
		return err
	}
	return saveAll(profiles, loaded)
}

func saveAll(profiles *profile.Service, list []models.Profile) error {
	for _, p := range list {
		if err := profiles.Save(p); err != nil {
			return err
		}
	}
	return nil
}

// StartBackground starts the store's periodic garbage collection
func (a *App) StartBackground() {
	a.Store.StartGCRoutine(GCInterval)
}

// Close releases the store
func (a *App) Close() error {
	return a.Store.Close()
}
