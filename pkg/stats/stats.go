package stats

import (
	"errors"
	"fmt"
	"time"

	"github.com/korjavin/smartpantry/pkg/logger"
	"github.com/korjavin/smartpantry/pkg/models"
	"github.com/korjavin/smartpantry/pkg/storage"
)

// CatalogStats computes the totals shown next to the suggestions
func CatalogStats(recipes []models.Recipe) models.CatalogStats {
	stats := models.CatalogStats{TotalRecipes: len(recipes)}
	if len(recipes) == 0 {
		return stats
	}

	var total int
	for _, recipe := range recipes {
		total += recipe.CookingTime
	}
	stats.AverageCookingTime = float64(total) / float64(len(recipes))
	return stats
}

// Service tracks suggestion usage per chat
type Service struct {
	store  *storage.Store
	logger *logger.Logger
	now    func() time.Time
}

// New creates a new statistics service
func New(store *storage.Store) *Service {
	return &Service{
		store:  store,
		logger: logger.New("stats"),
		now:    time.Now,
	}
}

func usageKey(chatID int64) string {
	return fmt.Sprintf("usage:%d", chatID)
}

// GetUsage retrieves the usage counters for a chat. Unknown chats get zero counters.
func (s *Service) GetUsage(chatID int64) (*models.Usage, error) {
	var usage models.Usage
	err := s.store.Get(usageKey(chatID), &usage)
	if errors.Is(err, storage.ErrNotFound) {
		return &models.Usage{ChatID: chatID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get usage: %w", err)
	}
	return &usage, nil
}

// RecordSuggestion counts one suggestion request and remembers the returned titles
func (s *Service) RecordSuggestion(chatID int64, results []models.MatchResult) error {
	usage, err := s.GetUsage(chatID)
	if err != nil {
		return err
	}

	usage.Requests++
	if len(results) == 0 {
		usage.EmptyResults++
	}
	usage.LastSuggested = make([]string, len(results))
	for i, r := range results {
		usage.LastSuggested[i] = r.Title
	}
	usage.LastRequestAt = s.now()

	if err := s.store.Set(usageKey(chatID), usage); err != nil {
		return fmt.Errorf("failed to save usage: %w", err)
	}
	return nil
}
