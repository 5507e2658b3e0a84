package pantry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/korjavin/smartpantry/pkg/logger"
	"github.com/korjavin/smartpantry/pkg/matcher"
	"github.com/korjavin/smartpantry/pkg/models"
	"github.com/korjavin/smartpantry/pkg/storage"
)

// Service provides per-chat pantry management
type Service struct {
	store  *storage.Store
	logger *logger.Logger
	now    func() time.Time
}

// New creates a new pantry service
func New(store *storage.Store) *Service {
	return &Service{
		store:  store,
		logger: logger.New("pantry"),
		now:    time.Now,
	}
}

func pantryKey(chatID int64) string {
	return fmt.Sprintf("pantry:%d", chatID)
}

func (s *Service) empty(chatID int64) *models.Pantry {
	return &models.Pantry{
		ID:          pantryKey(chatID),
		ChatID:      chatID,
		Ingredients: make(map[string]models.PantryItem),
		LastUpdated: s.now(),
	}
}

// Get retrieves the pantry for a chat; a chat without one gets an empty pantry
func (s *Service) Get(chatID int64) (*models.Pantry, error) {
	var p models.Pantry
	err := s.store.Get(pantryKey(chatID), &p)
	if errors.Is(err, storage.ErrNotFound) {
		return s.empty(chatID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pantry: %w", err)
	}
	if p.Ingredients == nil {
		p.Ingredients = make(map[string]models.PantryItem)
	}
	return &p, nil
}

// Add adds ingredients to the pantry and returns how many were new.
// Names that differ only in case or surrounding whitespace count as one ingredient.
func (s *Service) Add(chatID int64, names ...string) (int, error) {
	p, err := s.Get(chatID)
	if err != nil {
		return 0, err
	}

	added := addAll(p, names, s.now())
	if added == 0 {
		return 0, nil
	}
	return added, s.save(p)
}

// Remove removes ingredients from the pantry
func (s *Service) Remove(chatID int64, names ...string) error {
	p, err := s.Get(chatID)
	if err != nil {
		return err
	}

	for _, name := range names {
		delete(p.Ingredients, matcher.Normalize(name))
	}
	return s.save(p)
}

// Replace swaps the whole pantry content for names
func (s *Service) Replace(chatID int64, names []string) error {
	p := s.empty(chatID)
	addAll(p, names, s.now())
	return s.save(p)
}

// Reset empties the pantry for a chat
func (s *Service) Reset(chatID int64) error {
	return s.save(s.empty(chatID))
}

// Names returns the ingredient names as the user entered them, sorted
func (s *Service) Names(chatID int64) ([]string, error) {
	p, err := s.Get(chatID)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(p.Ingredients))
	for _, item := range p.Ingredients {
		names = append(names, item.Name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Service) save(p *models.Pantry) error {
	p.LastUpdated = s.now()
	if err := s.store.Set(p.ID, p); err != nil {
		return fmt.Errorf("failed to save pantry: %w", err)
	}
	return nil
}

func addAll(p *models.Pantry, names []string, at time.Time) int {
	added := 0
	for _, name := range names {
		key := matcher.Normalize(name)
		if key == "" {
			continue
		}
		if _, ok := p.Ingredients[key]; ok {
			continue
		}
		p.Ingredients[key] = models.PantryItem{
			Name:    strings.TrimSpace(name),
			AddedAt: at,
		}
		added++
	}
	return added
}
