package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/korjavin/smartpantry/pkg/logger"
	"github.com/korjavin/smartpantry/pkg/messages"
	"github.com/korjavin/smartpantry/pkg/metrics"
	"github.com/korjavin/smartpantry/pkg/models"
	"github.com/korjavin/smartpantry/pkg/profile"
	"github.com/korjavin/smartpantry/pkg/suggest"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuggestionRequest is the body of POST /api/v1/suggestions
type SuggestionRequest struct {
	Ingredients []string `json:"ingredients"`
	Profile     string   `json:"profile"`
	TopN        *int     `json:"top_n"`
	Tags        []string `json:"tags"`
}

// SuggestionResponse is returned by POST /api/v1/suggestions
type SuggestionResponse struct {
	Ingredients []string             `json:"ingredients"`
	Results     []models.MatchResult `json:"results"`
	Assistant   string               `json:"assistant,omitempty"`
	Tip         string               `json:"tip,omitempty"`
}

// StepsResponse is returned by GET /api/v1/recipes/:id/steps
type StepsResponse struct {
	RecipeID int64    `json:"recipe_id"`
	Title    string   `json:"title"`
	Steps    []string `json:"steps"`
}

// Handler serves the HTTP API
type Handler struct {
	suggest  *suggest.Service
	profiles *profile.Service
	messages *messages.Service
	logger   *logger.Logger
}

// NewHandler creates the API handler. profiles may be nil, which disables profile lookups.
func NewHandler(suggestService *suggest.Service, profiles *profile.Service, messageService *messages.Service) *Handler {
	return &Handler{
		suggest:  suggestService,
		profiles: profiles,
		messages: messageService,
		logger:   logger.New("api"),
	}
}

// RegisterRoutes registers the API routes on a router group
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/recipes", h.ListRecipes)
	r.GET("/recipes/:id", h.GetRecipe)
	r.GET("/recipes/:id/steps", h.GetRecipeSteps)
	r.GET("/profiles", h.ListProfiles)
	r.GET("/profiles/:name", h.GetProfile)
	r.POST("/suggestions", h.Suggest)
	r.GET("/stats", h.Stats)
}

// ListRecipes returns the whole catalog
func (h *Handler) ListRecipes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"recipes": h.suggest.Catalog().Recipes()})
}

func (h *Handler) lookupRecipe(c *gin.Context) (models.Recipe, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid recipe id"})
		return models.Recipe{}, false
	}
	recipe, ok := h.suggest.Catalog().Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "recipe not found"})
		return models.Recipe{}, false
	}
	return recipe, true
}

// GetRecipe returns one recipe
func (h *Handler) GetRecipe(c *gin.Context) {
	recipe, ok := h.lookupRecipe(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// GetRecipeSteps returns a recipe's instructions split into steps
func (h *Handler) GetRecipeSteps(c *gin.Context) {
	recipe, ok := h.lookupRecipe(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, StepsResponse{
		RecipeID: recipe.ID,
		Title:    recipe.Title,
		Steps:    messages.FormatSteps(recipe.Steps),
	})
}

// ListProfiles returns the stored profiles
func (h *Handler) ListProfiles(c *gin.Context) {
	if h.profiles == nil {
		c.JSON(http.StatusOK, gin.H{"profiles": []models.Profile{}})
		return
	}
	profiles, err := h.profiles.List()
	if err != nil {
		h.logger.Error("Failed to list profiles: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list profiles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

// GetProfile returns one profile by name
func (h *Handler) GetProfile(c *gin.Context) {
	p, status, err := h.findProfile(c.Param("name"))
	if err != nil {
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

func (h *Handler) findProfile(name string) (*models.Profile, int, error) {
	if h.profiles == nil {
		return nil, http.StatusNotFound, profile.ErrNotFound
	}
	p, err := h.profiles.GetByName(name)
	if errors.Is(err, profile.ErrNotFound) {
		return nil, http.StatusNotFound, profile.ErrNotFound
	}
	if err != nil {
		h.logger.Error("Failed to get profile %s: %v", name, err)
		return nil, http.StatusInternalServerError, errors.New("failed to get profile")
	}
	return p, http.StatusOK, nil
}

// Suggest ranks the catalog against the request's ingredients and, optionally, a profile's
func (h *Handler) Suggest(c *gin.Context) {
	var req SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ingredients := append([]string{}, req.Ingredients...)
	if req.Profile != "" {
		p, status, err := h.findProfile(req.Profile)
		if err != nil {
			c.JSON(status, ErrorResponse{Error: err.Error()})
			return
		}
		ingredients = append(ingredients, p.Ingredients...)
	}

	opts := suggest.Options{Tags: req.Tags, Source: metrics.SourceHTTP}
	if req.TopN != nil {
		opts.TopN = *req.TopN
		if opts.TopN == 0 {
			// an explicit zero asks for nothing; Options treats 0 as "default"
			opts.TopN = -1
		}
	}

	results := h.suggest.Suggest(ingredients, opts)

	resp := SuggestionResponse{
		Ingredients: ingredients,
		Results:     results,
		Tip:         messages.ChefTip(len(ingredients)),
	}
	if len(results) > 0 && h.messages != nil {
		resp.Assistant = h.messages.AssistantResponse(c.Request.Context(), ingredients, results[0].Title)
	}
	c.JSON(http.StatusOK, resp)
}

// Stats returns catalog statistics
func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.suggest.Catalog().Stats())
}
