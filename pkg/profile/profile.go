// Package profile stores named user profiles: a raw ingredient list plus
// free-text preferences and dietary restrictions that the matcher does not interpret.
package profile

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/korjavin/smartpantry/pkg/catalog"
	"github.com/korjavin/smartpantry/pkg/logger"
	"github.com/korjavin/smartpantry/pkg/models"
	"github.com/korjavin/smartpantry/pkg/storage"
)

// ErrNotFound is returned when no profile has the requested name
var ErrNotFound = errors.New("profile not found")

const profilePrefix = "profile:"

var profileColumns = []string{"UserID", "Name", "Ingredients", "Preferences", "Dietary_Restrictions"}

// Sample returns the built-in demo profiles
func Sample() []models.Profile {
	return []models.Profile{
		{ID: 1, Name: "Priya", Ingredients: []string{"rice", "chicken", "onion", "tomato", "ginger"}, Preferences: "spicy_food", DietaryRestrictions: "none"},
		{ID: 2, Name: "Arjun", Ingredients: []string{"paneer", "spinach", "flour", "milk", "garlic"}, Preferences: "vegetarian", DietaryRestrictions: "lactose_sensitive"},
		{ID: 3, Name: "Neha", Ingredients: []string{"egg", "bread", "butter", "cheese", "bell_pepper"}, Preferences: "quick_breakfast", DietaryRestrictions: "none"},
		{ID: 4, Name: "Rohit", Ingredients: []string{"lentils", "rice", "turmeric", "cumin", "onion"}, Preferences: "healthy_meals", DietaryRestrictions: "gluten_free"},
		{ID: 5, Name: "Kavya", Ingredients: []string{"pasta", "mushroom", "cream", "garlic", "herbs"}, Preferences: "italian_food", DietaryRestrictions: "none"},
	}
}

// LoadCSV parses profiles from a headed CSV table
func LoadCSV(r io.Reader, sep string) ([]models.Profile, error) {
	rows, err := catalog.ReadCSV(r, profileColumns)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}

	profiles := make([]models.Profile, 0, len(rows))
	for i, row := range rows {
		id, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid UserID: %w", i+2, err)
		}
		name := strings.TrimSpace(row[1])
		if name == "" {
			return nil, fmt.Errorf("line %d: profile %d has no name", i+2, id)
		}
		profiles = append(profiles, models.Profile{
			ID:                  id,
			Name:                name,
			Ingredients:         catalog.ParseIngredients(row[2], sep),
			Preferences:         strings.TrimSpace(row[3]),
			DietaryRestrictions: strings.TrimSpace(row[4]),
		})
	}
	return profiles, nil
}

// Service provides profile lookup backed by the store
type Service struct {
	store  *storage.Store
	logger *logger.Logger
}

// New creates a new profile service
func New(store *storage.Store) *Service {
	return &Service{
		store:  store,
		logger: logger.New("profile"),
	}
}

func profileKey(name string) string {
	return profilePrefix + strings.ToLower(strings.TrimSpace(name))
}

// Save stores a profile under its name; names are unique case-insensitively
func (s *Service) Save(p models.Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("profile name is required")
	}
	if err := s.store.Set(profileKey(p.Name), p); err != nil {
		return fmt.Errorf("failed to save profile %s: %w", p.Name, err)
	}
	return nil
}

// Seed stores profiles when the store has none yet and reports how many were written
func (s *Service) Seed(profiles []models.Profile) (int, error) {
	keys, err := s.store.List(profilePrefix)
	if err != nil {
		return 0, fmt.Errorf("failed to list profiles: %w", err)
	}
	if len(keys) > 0 {
		return 0, nil
	}

	for _, p := range profiles {
		if err := s.Save(p); err != nil {
			return 0, err
		}
	}
	s.logger.Info("Seeded %d profiles", len(profiles))
	return len(profiles), nil
}

// List returns all profiles ordered by ID
func (s *Service) List() ([]models.Profile, error) {
	keys, err := s.store.List(profilePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	profiles := make([]models.Profile, 0, len(keys))
	for _, key := range keys {
		var p models.Profile
		if err := s.store.Get(key, &p); err != nil {
			s.logger.Error("Failed to get profile %s: %v", key, err)
			continue
		}
		profiles = append(profiles, p)
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].ID < profiles[j].ID
	})
	return profiles, nil
}

// GetByName looks up a profile by name, ignoring case and surrounding whitespace
func (s *Service) GetByName(name string) (*models.Profile, error) {
	var p models.Profile
	err := s.store.Get(profileKey(name), &p)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %s: %w", name, err)
	}
	return &p, nil
}
