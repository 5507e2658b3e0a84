package suggest

import (
	"errors"
	"time"

	"github.com/korjavin/smartpantry/pkg/catalog"
	"github.com/korjavin/smartpantry/pkg/logger"
	"github.com/korjavin/smartpantry/pkg/matcher"
	"github.com/korjavin/smartpantry/pkg/metrics"
	"github.com/korjavin/smartpantry/pkg/models"
	"github.com/korjavin/smartpantry/pkg/pantry"
	"github.com/korjavin/smartpantry/pkg/stats"
)

// ErrNoPantry is returned by SuggestForChat when the service has no pantry backend
var ErrNoPantry = errors.New("pantry service is not configured")

// Options tune a single suggestion request
type Options struct {
	// TopN limits the number of results; zero means the service default
	TopN int
	// Tags keeps only recipes carrying every listed tag
	Tags []string
	// Source labels the caller in metrics
	Source string
}

// Service turns pantries into ranked recipe suggestions
type Service struct {
	catalog     *catalog.Catalog
	pantry      *pantry.Service
	stats       *stats.Service
	defaultTopN int
	logger      *logger.Logger
}

// New creates a new suggest service. pantry and stats may be nil for callers
// that pass ingredients directly.
func New(c *catalog.Catalog, pantryService *pantry.Service, statsService *stats.Service, defaultTopN int) *Service {
	if defaultTopN <= 0 {
		defaultTopN = matcher.DefaultTopN
	}
	metrics.CatalogRecipes.Set(float64(c.Len()))
	return &Service{
		catalog:     c,
		pantry:      pantryService,
		stats:       statsService,
		defaultTopN: defaultTopN,
		logger:      logger.New("suggest"),
	}
}

// Catalog returns the catalog the service ranks against
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Suggest ranks the catalog against the given ingredients
func (s *Service) Suggest(ingredients []string, opts Options) []models.MatchResult {
	topN := opts.TopN
	if topN == 0 {
		topN = s.defaultTopN
	}
	source := opts.Source
	if source == "" {
		source = "unknown"
	}

	recipes := s.catalog.View()
	if len(opts.Tags) > 0 {
		recipes = FilterByTags(recipes, opts.Tags)
	}

	start := time.Now()
	results := matcher.RankRecipes(ingredients, recipes, topN)
	metrics.MatchDuration.Observe(time.Since(start).Seconds())

	metrics.SuggestionRequests.WithLabelValues(source).Inc()
	metrics.SuggestionResults.WithLabelValues(source).Observe(float64(len(results)))
	if len(results) == 0 {
		metrics.EmptySuggestions.WithLabelValues(source).Inc()
	}

	s.logger.Debug("Ranked %d recipes for %d ingredients (tags %v): %d results", len(recipes), len(ingredients), opts.Tags, len(results))
	return results
}

// SuggestForChat ranks the catalog against a chat's stored pantry and records usage.
// It also returns the pantry contents that were matched.
func (s *Service) SuggestForChat(chatID int64, opts Options) ([]models.MatchResult, []string, error) {
	if s.pantry == nil {
		return nil, nil, ErrNoPantry
	}

	names, err := s.pantry.Names(chatID)
	if err != nil {
		return nil, nil, err
	}

	results := s.Suggest(names, opts)

	if s.stats != nil {
		if err := s.stats.RecordSuggestion(chatID, results); err != nil {
			s.logger.Warn("Failed to record usage for chat %d: %v", chatID, err)
		}
	}
	return results, names, nil
}

// FilterByTags keeps the recipes that carry every tag in tags, compared after normalization.
// The returned slice shares recipe values with the input and keeps its order.
func FilterByTags(recipes []models.Recipe, tags []string) []models.Recipe {
	wanted := matcher.NormalizeSet(tags)
	if len(wanted) == 0 {
		return recipes
	}

	filtered := make([]models.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		have := matcher.NormalizeSet(recipe.Tags)
		ok := true
		for tag := range wanted {
			if _, found := have[tag]; !found {
				ok = false
				break
			}
		}
		if ok {
			filtered = append(filtered, recipe)
		}
	}
	return filtered
}
